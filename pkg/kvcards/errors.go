package kvcards

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOpen indicates the workbook is missing, corrupt, or unsupported.
	ErrOpen = errors.New("cannot open workbook")
	// ErrSheetNotFound indicates the named sheet is absent.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrHeaderNotFound indicates the header row lies outside the sheet.
	ErrHeaderNotFound = errors.New("header row not found")
	// ErrIndexOutOfRange indicates a column index beyond the sheet width.
	ErrIndexOutOfRange = errors.New("column index out of range")
	// ErrFilesystem indicates an I/O or permission failure.
	ErrFilesystem = errors.New("filesystem error")
	// ErrIncomplete indicates a configuration cannot be extracted yet.
	ErrIncomplete = errors.New("incomplete configuration")
)

// OpenError reports a workbook that could not be opened.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open workbook %q: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() []error {
	return []error{ErrOpen, e.Err}
}

// SheetNotFoundError reports a sheet name absent from the workbook.
type SheetNotFoundError struct {
	Sheet string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found", e.Sheet)
}

func (e *SheetNotFoundError) Unwrap() error {
	return ErrSheetNotFound
}

// HeaderNotFoundError reports a header row beyond the sheet height.
type HeaderNotFoundError struct {
	Sheet  string
	Row    int
	Height int
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("header row %d not found in sheet %q (%d rows)", e.Row, e.Sheet, e.Height)
}

func (e *HeaderNotFoundError) Unwrap() error {
	return ErrHeaderNotFound
}

// IndexOutOfRangeError reports a selected column the sheet does not have.
type IndexOutOfRangeError struct {
	// Row is the 1-based sheet row being read.
	Row    int
	Column int
	Width  int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("column index %d out of range at row %d (width %d)", e.Column, e.Row, e.Width)
}

func (e *IndexOutOfRangeError) Unwrap() error {
	return ErrIndexOutOfRange
}

// FilesystemError reports a failed filesystem operation.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() []error {
	return []error{ErrFilesystem, e.Err}
}

// IncompleteError lists the conditions a configuration still misses.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("incomplete configuration: missing %s", strings.Join(e.Missing, ", "))
}

func (e *IncompleteError) Unwrap() error {
	return ErrIncomplete
}

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	SheetName string
	Component string // "open", "sheet", "header", "cells"
	Err       error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
