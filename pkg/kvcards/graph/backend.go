package graph

import (
	"context"

	"github.com/ukaji3/kvcards-go/pkg/kvcards"
	"github.com/ukaji3/kvcards-go/pkg/kvcards/models"
)

// Backend computes the graph's stages.
type Backend interface {
	Resolve(raw string) models.PathResolution
	Candidates(res models.PathResolution) ([]string, error)
	ListSheets(path string) ([]string, error)
	SheetRowCount(path, sheet string) int
	HeaderRow(path, sheet string, row int) ([]string, error)
	Extract(ctx context.Context, cfg models.Config) ([]models.Card, error)
}

type workbookBackend struct{}

// WorkbookBackend returns the Backend reading the filesystem and xlsx files.
func WorkbookBackend() Backend {
	return workbookBackend{}
}

func (workbookBackend) Resolve(raw string) models.PathResolution {
	return kvcards.Resolve(raw)
}

func (workbookBackend) Candidates(res models.PathResolution) ([]string, error) {
	return kvcards.Candidates(res)
}

func (workbookBackend) ListSheets(path string) ([]string, error) {
	return kvcards.ListSheets(path)
}

func (workbookBackend) SheetRowCount(path, sheet string) int {
	return kvcards.SheetRowCount(path, sheet)
}

func (workbookBackend) HeaderRow(path, sheet string, row int) ([]string, error) {
	return kvcards.HeaderRow(path, sheet, row)
}

func (workbookBackend) Extract(ctx context.Context, cfg models.Config) ([]models.Card, error) {
	return kvcards.Extract(ctx, cfg)
}
