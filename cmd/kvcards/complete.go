package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/kvcards-go/pkg/kvcards"
	"github.com/ukaji3/kvcards-go/pkg/kvcards/models"
	"go.uber.org/zap"
)

// completeWorkbookPath offers filesystem candidates for a path argument.
func completeWorkbookPath(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return kvcards.Autocomplete(kvcards.Resolve(toComplete)), cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func newCompleteCmd() *cobra.Command {
	var (
		ef       encodeFlags
		asRecord bool
	)

	cmd := &cobra.Command{
		Use:   "complete [partial-path]",
		Short: "Resolve a partial path and list completion candidates",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := ""
			if len(args) > 0 {
				raw = args[0]
			}

			res := kvcards.Resolve(raw)
			candidates, err := kvcards.Candidates(res)
			if err != nil {
				logger.Warn("autocomplete failed", zap.Stringer("resolution", res), zap.Error(err))
				candidates = nil
			}

			if asRecord {
				return ef.write(cmd, struct {
					Resolution models.PathResolution `json:"resolution" yaml:"resolution"`
					Candidates []string                `json:"candidates" yaml:"candidates"`
				}{res, append([]string{}, candidates...)})
			}
			for _, c := range candidates {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}

	ef.register(cmd)
	cmd.Flags().BoolVar(&asRecord, "record", false, "Print the resolution and candidates as a structured record")
	return cmd
}
