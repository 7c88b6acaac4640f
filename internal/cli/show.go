package cli

import (
	"github.com/spf13/cobra"

	"github.com/listenupapp/beatmap-server/internal/online"
	"github.com/listenupapp/beatmap-server/internal/overlay"
)

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <payload.json>",
		Short: "Convert a saved payload and print it",
		Long:  "Decodes a beatmap set payload from a file (or - for stdin), converts it and prints the overlay view.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			wire, err := online.Decode(data)
			if err != nil {
				return err
			}

			rulesets, release, err := opts.registry(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			set, err := wire.ToDomainSet(rulesets)
			if err != nil {
				return err
			}

			opts.log.Debug("converted beatmap set", "id", set.OnlineID, "beatmaps", len(set.Beatmaps))

			overlay.NewTerminal(cmd.OutOrStdout(), opts.noColor).Show(set)
			return nil
		},
	}
}
