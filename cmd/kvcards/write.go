package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/kvcards-go/pkg/kvcards/output"
)

// encodeFlags are shared by commands printing structured output.
type encodeFlags struct {
	outputPath string
	pretty     bool
	format     string
}

func (f *encodeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&f.pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&f.format, "format", "json", "Output format: json, yaml")
}

// write serializes v and writes it to the output file or stdout.
func (f *encodeFlags) write(cmd *cobra.Command, v any) error {
	format, err := output.ParseFormat(f.format)
	if err != nil {
		return err
	}

	data, err := output.Encode(v, format, f.pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if f.outputPath != "" {
		if err := os.WriteFile(f.outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(data), "\n"))
	return nil
}
