// Package cli implements the beatmapctl command line tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/listenupapp/beatmap-server/internal/logger"
	"github.com/listenupapp/beatmap-server/internal/ruleset"
	"github.com/listenupapp/beatmap-server/internal/store/sqlite"
)

// options holds the persistent flags shared by every command.
type options struct {
	noColor    bool
	logLevel   string
	rulesetDB  string
	onlineURL  string
	token      string
	libraryDir string

	log *logger.Logger
}

// NewRootCmd builds the beatmapctl command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "beatmapctl",
		Short: "Inspect and display online beatmap sets",
		Long: `beatmapctl converts beatmap set payloads from the online service into
beatmap sets and prints them the way the overlay shows them.

Payloads can be read from a file or fetched live.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.noColor {
				color.NoColor = true
			}
			opts.log = logger.New(logger.Config{
				Writer:  cmd.ErrOrStderr(),
				Format:  "pretty",
				Level:   logger.ParseLevel(opts.logLevel),
				NoColor: opts.noColor,
			})
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.rulesetDB, "ruleset-db", "", "Ruleset database path (default: built-in rulesets)")

	cmd.AddCommand(
		newShowCmd(opts),
		newFetchCmd(opts),
		newRulesetsCmd(opts),
	)

	return cmd
}

// Execute is the entry point called from main.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}

// registry returns the ruleset catalog selected by --ruleset-db and a func
// releasing it.
func (o *options) registry(ctx context.Context) (*ruleset.Registry, func(), error) {
	if o.rulesetDB == "" {
		return ruleset.NewStaticRegistry(ruleset.Builtin()...), func() {}, nil
	}

	db, err := sqlite.Open(o.rulesetDB, o.log.Logger)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			o.log.Warn("failed to close ruleset database", "error", err)
		}
	}

	reg, err := ruleset.NewRegistry(ctx, db, o.log.Logger)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return reg, closeDB, nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return data, nil
}
