package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/kvcards-go/pkg/kvcards/models"
)

func sampleSet() *models.CardSet {
	return &models.CardSet{
		Title:  "Staff",
		Config: models.Config{Path: "p.xlsx", Sheet: "S", Columns: []int{1, 2}},
		Cards: []models.Card{
			{RowIndex: 0, KV: []models.Kv{{Key: "name", Value: "Ali"}, {Key: "age", Value: "30"}}},
			{RowIndex: 1, KV: []models.Kv{}},
		},
	}
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleSet(), false)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "Staff",
		"config": {"path": "p.xlsx", "sheet": "S", "columns_indexes": [1, 2]},
		"cards": [
			{"row_index": 0, "kv": [{"key": "name", "value": "Ali"}, {"key": "age", "value": "30"}]},
			{"row_index": 1, "kv": []}
		]
	}`, string(data))

	data, err = ToJSON(models.Kv{Key: "a<b", Value: "&"}, false)
	require.NoError(t, err)
	assert.Equal(t, `{"key":"a<b","value":"&"}`, string(data))
}

func TestToYAML(t *testing.T) {
	data, err := Encode(sampleSet(), FormatYAML, false)
	require.NoError(t, err)
	assert.YAMLEq(t, `
title: Staff
config:
  path: p.xlsx
  sheet: S
  columns_indexes: [1, 2]
cards:
  - row_index: 0
    kv:
      - {key: name, value: Ali}
      - {key: age, value: "30"}
  - row_index: 1
    kv: []
`, string(data))
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "yaml": FormatYAML, "yml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
