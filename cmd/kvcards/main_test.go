package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/kvcards-go/pkg/kvcards"
	"github.com/ukaji3/kvcards-go/pkg/kvcards/graph"
	"github.com/ukaji3/kvcards-go/pkg/kvcards/models"
	"github.com/xuri/excelize/v2"
)

func writeBook(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]any{{"id", "name", "age"}, {"1", "Ali", "30"}, {"2", "", "25"}}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(dir, "people.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCardsCommand(t *testing.T) {
	path := writeBook(t, t.TempDir())

	out, err := execute(t, "cards", path, "--sheet", "Sheet1", "--columns", "1, 2", "--title", "People")
	require.NoError(t, err)

	var set models.CardSet
	require.NoError(t, json.Unmarshal([]byte(out), &set))
	assert.Equal(t, "People", set.Title)
	assert.Equal(t, []models.Card{
		{RowIndex: 0, KV: []models.Kv{{Key: "name", Value: "Ali"}, {Key: "age", Value: "30"}}},
		{RowIndex: 1, KV: []models.Kv{{Key: "age", Value: "25"}}},
	}, set.Cards)
}

func TestCardsCommandJob(t *testing.T) {
	dir := t.TempDir()
	writeBook(t, dir)
	job := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(job, []byte("title: T\npath: people.xlsx\nsheet: Sheet1\ncolumns: [0]\n"), 0o644))

	out, err := execute(t, "cards", "--job", job, "--columns", "2", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "value: \"30\"")
	assert.NotContains(t, out, "key: id")
}

func TestCardsCommandIncomplete(t *testing.T) {
	path := writeBook(t, t.TempDir())

	_, err := execute(t, "cards", path, "--sheet", "Sheet1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no columns selected")
	assert.Contains(t, err.Error(), "no card title given")

	_, err = execute(t, "cards", path, "--sheet", "Nope", "--columns", "0", "--title", "x")
	assert.ErrorIs(t, err, kvcards.ErrSheetNotFound)

	_, err = execute(t, "cards", path, "--sheet", "Sheet1", "--columns", "0,x", "--title", "x")
	assert.ErrorContains(t, err, "invalid column index")
}

func TestHeadersCommand(t *testing.T) {
	path := writeBook(t, t.TempDir())

	out, err := execute(t, "headers", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"1", "B", "name"}, strings.Fields(lines[2]))
}

func TestHeadersCommandOffsetRange(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "B3", &[]any{"id", "name"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "B4", &[]any{"1", "Ali"}))
	path := filepath.Join(t.TempDir(), "offset.xlsx")
	require.NoError(t, f.SaveAs(path))

	out, err := execute(t, "headers", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"0", "B", "id"}, strings.Fields(lines[1]))

	out, err = execute(t, "cards", path, "--sheet", "Sheet1", "--columns", "0,1", "--title", "T")
	require.NoError(t, err)
	assert.Contains(t, out, `{"key":"name","value":"Ali"}`)
}

func TestInspectAndCompleteCommands(t *testing.T) {
	dir := t.TempDir()
	path := writeBook(t, dir)

	out, err := execute(t, "inspect", path)
	require.NoError(t, err)
	var info models.WorkbookInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	require.Len(t, info.Sheets, 1)
	assert.Equal(t, 3, info.Sheets[0].Rows)

	out, err = execute(t, "complete", filepath.Join(dir, "peo"))
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)

	out, err = execute(t, "complete", "--record", filepath.Join(dir, "peo"))
	require.NoError(t, err)
	assert.Contains(t, out, `"kind":"parent_exists"`)
}

func TestExplain(t *testing.T) {
	st := graph.State{
		Input:      graph.Input{Path: "a.csv", Sheet: "X"},
		Resolution: models.Exists("a.csv"),
		Sheets:     []string{"S"},
		Missing:    []string{"path", "title"},
	}
	assert.Equal(t, []string{
		"not an xlsx workbook: a.csv",
		"no card title given",
		`sheet "X" not in workbook (available: S)`,
	}, explain(st))
}

func TestWatchFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeBook(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, path, "", func(jobChanged bool) string {
			assert.False(t, jobChanged)
			calls.Add(1)
			return path
		})
	}()

	// the watcher registers asynchronously; touch now and then until it
	// reacts, leaving quiet gaps longer than the settle delay
	var ticks atomic.Int32
	require.Eventually(t, func() bool {
		if ticks.Add(1)%5 == 1 {
			_ = os.WriteFile(filepath.Join(dir, "other.txt"), nil, 0o644)
			_ = os.WriteFile(path, []byte("changed"), 0o644)
		}
		return calls.Load() > 0
	}, 10*time.Second, 100*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatchFollowsNewWorkbook(t *testing.T) {
	first := writeBook(t, t.TempDir())
	second := writeBook(t, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, first, "", func(bool) string {
			calls.Add(1)
			return second
		})
	}()

	touch := func(path string, want int32) {
		var ticks atomic.Int32
		require.Eventually(t, func() bool {
			if ticks.Add(1)%5 == 1 {
				_ = os.WriteFile(path, []byte("changed"), 0o644)
			}
			return calls.Load() >= want
		}, 10*time.Second, 100*time.Millisecond)
	}

	touch(first, 1)
	// only the second workbook's directory is new; a change there must fire
	touch(second, 2)

	cancel()
	require.NoError(t, <-done)
}
