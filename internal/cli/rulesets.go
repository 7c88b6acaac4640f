package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRulesetsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "rulesets",
		Short: "List known rulesets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rulesets, release, err := opts.registry(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			out := cmd.OutOrStdout()
			state := map[bool]*color.Color{
				true:  color.New(color.FgGreen),
				false: color.New(color.FgRed),
			}
			labels := map[bool]string{true: "available", false: "unavailable"}
			if opts.noColor {
				for _, c := range state {
					c.DisableColor()
				}
			}

			for _, r := range rulesets.All() {
				fmt.Fprintf(out, "  %-3d %-8s %-12s ", r.ID, r.ShortName, r.Name)
				state[r.Available].Fprintln(out, labels[r.Available])
			}
			return nil
		},
	}
}
