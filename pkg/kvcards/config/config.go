// Package config loads card jobs and parses user-typed settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ukaji3/kvcards-go/pkg/kvcards/models"
	"gopkg.in/yaml.v3"
)

// Job is a saved card configuration.
type Job struct {
	// Title is the card title.
	Title string `yaml:"title"`
	// Path is the workbook path, relative to the job file's directory.
	Path string `yaml:"path"`
	// Sheet is the sheet name.
	Sheet string `yaml:"sheet"`
	// TitleRow is the 1-based header row; 0 or absent means the first row.
	TitleRow int `yaml:"title_row,omitempty"`
	// Columns is the ordered list of zero-based column indices.
	Columns []int `yaml:"columns"`
}

// Load reads a job file. A relative workbook path is resolved against the
// directory holding the job file.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job file %s: %w", path, err)
	}
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job file %s: %w", path, err)
	}

	if !filepath.IsAbs(job.Path) {
		job.Path = filepath.Join(filepath.Dir(path), job.Path)
	}
	return &job, nil
}

// Save writes the job as YAML. A relative workbook path is taken from the
// working directory and rewritten relative to the job file's directory, so
// Load finds the same workbook.
func (j *Job) Save(path string) error {
	out := *j
	if out.Path != "" && !filepath.IsAbs(out.Path) {
		rel, err := relativeTo(filepath.Dir(path), out.Path)
		if err != nil {
			return fmt.Errorf("failed to relocate workbook path: %w", err)
		}
		out.Path = rel
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// relativeTo expresses target, relative to the working directory, as a path
// relative to dir. It falls back to the absolute path across volumes.
func relativeTo(dir, target string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absDir, absTarget)
	if err != nil {
		return absTarget, nil
	}
	return rel, nil
}

// Validate checks values that can never produce cards.
func (j *Job) Validate() error {
	if j.Path == "" {
		return fmt.Errorf("path is required")
	}
	if j.TitleRow < 0 {
		return fmt.Errorf("title_row must be positive, got %d", j.TitleRow)
	}
	for _, c := range j.Columns {
		if c < 0 {
			return fmt.Errorf("columns must be non-negative, got %d", c)
		}
	}
	return nil
}

// Config returns the extraction configuration of the job.
func (j *Job) Config() models.Config {
	return models.Config{
		Path:          j.Path,
		Sheet:         strings.TrimSpace(j.Sheet),
		TitleRowIndex: j.TitleRow,
	}.WithColumns(j.Columns)
}

// ParseColumns parses a comma-separated list of column indices such as
// "1, 2,2". Any invalid entry fails the whole list.
func ParseColumns(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	cols := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 31)
		if err != nil {
			return nil, fmt.Errorf("invalid column index %q", strings.TrimSpace(p))
		}
		cols = append(cols, int(n))
	}
	return cols, nil
}

// FormatColumns is the inverse of ParseColumns.
func FormatColumns(cols []int) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

// ParseTitleRow parses a 1-based header row. An empty string means
// unspecified and yields 0.
func ParseTitleRow(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid title row %q (must be a positive integer)", s)
	}
	return int(n), nil
}
