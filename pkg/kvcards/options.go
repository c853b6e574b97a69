// Package kvcards turns spreadsheet rows into label/value cards.
package kvcards

import "runtime"

// Options configures workbook inspection.
type Options struct {
	// Concurrency bounds the number of sheets scanned at once.
	// Zero means one worker per CPU.
	Concurrency int
	// IncludeSuggestions specifies whether to compute suggested title rows.
	// If nil, defaults to true.
	IncludeSuggestions *bool
}

// DefaultOptions returns default inspection options.
func DefaultOptions() Options {
	return Options{}
}

// Workers returns the effective concurrency limit.
func (o Options) Workers() int {
	if o.Concurrency > 0 {
		return o.Concurrency
	}
	return runtime.NumCPU()
}

// ShouldIncludeSuggestions returns whether to compute suggested title rows.
func (o Options) ShouldIncludeSuggestions() bool {
	if o.IncludeSuggestions != nil {
		return *o.IncludeSuggestions
	}
	return true
}
