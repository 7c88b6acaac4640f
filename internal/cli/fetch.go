package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/listenupapp/beatmap-server/internal/online"
	"github.com/listenupapp/beatmap-server/internal/overlay"
	"github.com/listenupapp/beatmap-server/internal/service"
	"github.com/listenupapp/beatmap-server/internal/store"
)

func newFetchCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <id>",
		Short: "Fetch a beatmap set from the online service and print it",
		Long: `Fetches a beatmap set by its online id, converts it and prints the overlay view.

With --library the set is also saved to a beatmap set library.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid beatmap set id %q", args[0])
			}

			client, err := online.New(online.ClientConfig{
				BaseURL:     opts.onlineURL,
				AccessToken: opts.token,
			}, opts.log.Logger)
			if err != nil {
				return err
			}
			defer client.Close()

			rulesets, release, err := opts.registry(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			var library service.Library
			if opts.libraryDir != "" {
				db, err := store.New(opts.libraryDir, opts.log.Logger, rulesets)
				if err != nil {
					return err
				}
				defer db.Close()
				library = db
			}

			terminal := overlay.NewTerminal(cmd.OutOrStdout(), opts.noColor)
			svc := service.NewBeatmapSetService(client, rulesets, library, terminal, opts.log.Logger)

			_, err = svc.Show(cmd.Context(), id)
			return err
		},
	}

	cmd.Flags().StringVar(&opts.onlineURL, "online-url", envOr("ONLINE_BASE_URL", "https://osu.ppy.sh"), "Base URL of the online beatmap API")
	cmd.Flags().StringVar(&opts.token, "token", os.Getenv("ONLINE_ACCESS_TOKEN"), "Bearer token for the online beatmap API")
	cmd.Flags().StringVar(&opts.libraryDir, "library", "", "Save fetched sets to the library at this path")

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
