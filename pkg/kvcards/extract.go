package kvcards

import (
	"context"

	"github.com/ukaji3/kvcards-go/pkg/kvcards/models"
	"github.com/ukaji3/kvcards-go/pkg/kvcards/parser"
)

// Extract reads the cards described by cfg.
// Rows are counted within the sheet's used range. Every row after the
// header row becomes a card; any failure aborts the whole extraction and no
// cards are returned.
func Extract(ctx context.Context, cfg models.Config) ([]models.Card, error) {
	f, err := openWorkbook(cfg.Path)
	if err != nil {
		return nil, NewExtractionError(cfg.Sheet, "open", err)
	}
	defer f.Close()

	if !parser.HasSheet(f, cfg.Sheet) {
		return nil, NewExtractionError(cfg.Sheet, "sheet", &SheetNotFoundError{Sheet: cfg.Sheet})
	}

	g, err := parser.ReadGrid(f, cfg.Sheet)
	if err != nil {
		return nil, NewExtractionError(cfg.Sheet, "cells", err)
	}

	titleRow := cfg.HeaderRow()
	header, ok := g.Row(titleRow)
	if !ok {
		err := &HeaderNotFoundError{Sheet: cfg.Sheet, Row: titleRow, Height: g.Height()}
		return nil, NewExtractionError(cfg.Sheet, "header", err)
	}

	firstRow := g.Range.MinRow + titleRow + 1
	cards, err := BuildCards(ctx, header, g.Rows[titleRow:], cfg.Columns, firstRow)
	if err != nil {
		return nil, NewExtractionError(cfg.Sheet, "cells", err)
	}
	return cards, nil
}

// BuildCards turns data rows into cards labelled by header.
// firstRow is the 1-based sheet row of rows[0], used in error reports.
func BuildCards(ctx context.Context, header []string, rows [][]string, columns []int, firstRow int) ([]models.Card, error) {
	cards := make([]models.Card, 0, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		kv := make([]models.Kv, 0, len(columns))
		for _, col := range columns {
			if col < 0 || col >= len(header) || col >= len(row) {
				width := min(len(header), len(row))
				return nil, &IndexOutOfRangeError{Row: firstRow + i, Column: col, Width: width}
			}
			key, value := header[col], row[col]
			if key == "" || value == "" {
				continue
			}
			kv = append(kv, models.Kv{Key: key, Value: value})
		}

		cards = append(cards, models.Card{RowIndex: i, KV: kv})
	}
	return cards, nil
}
