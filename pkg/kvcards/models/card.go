// Package models defines data structures for spreadsheet card extraction.
package models

// Kv is a single header-labeled value inside a card.
type Kv struct {
	// Key is the header cell text for the column.
	Key string `json:"key" yaml:"key"`
	// Value is the data cell text for the column.
	Value string `json:"value" yaml:"value"`
}

// Card is one extracted record corresponding to a data row.
type Card struct {
	// RowIndex is the zero-based offset among rows after the header row.
	RowIndex int `json:"row_index" yaml:"row_index"`
	// KV holds the non-empty pairs in column selection order.
	KV []Kv `json:"kv" yaml:"kv"`
}

// CardSet is an extraction result together with what produced it.
type CardSet struct {
	// Title is the card title shown on every card.
	Title string `json:"title" yaml:"title"`
	// Config is the configuration the cards were extracted with.
	Config Config `json:"config" yaml:"config"`
	// Cards is the ordered card list.
	Cards []Card `json:"cards" yaml:"cards"`
}
