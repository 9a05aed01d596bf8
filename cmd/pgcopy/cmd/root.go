// Package cmd implements the pgcopy command line.
package cmd

import (
	"log/slog"
	"os"

	"github.com/lib/pq/oid"
	"github.com/spf13/cobra"

	"github.com/calebcase/pgcopy"
	"github.com/calebcase/pgcopy/internal/config"
)

// app is the state shared by the subcommands once the root command has
// loaded the configuration.
type app struct {
	cfg *config.Config
	log *slog.Logger
}

// NewRootCmd returns the pgcopy command tree.
func NewRootCmd() *cobra.Command {
	a := &app{
		cfg: config.DefaultConfig(),
		log: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	rootCmd := &cobra.Command{
		Use:   "pgcopy",
		Short: "Convert COPY binary streams and NUMERIC values",
		Long: `pgcopy reads and writes the COPY binary format and converts NUMERIC
field payloads to and from their decimal text form.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(
		a.numericCmd(),
		a.outCmd(),
		a.inCmd(),
	)

	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command) (err error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		a.cfg, err = config.LoadConfig(path)
		if err != nil {
			return err
		}
	}

	level, err := a.cfg.Level()
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		level = slog.LevelDebug
	}

	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	}))

	a.log.Debug("configured",
		"config", path,
		"max_digits", a.cfg.Limits.MaxDigits,
		"max_field_size", a.cfg.Limits.MaxFieldSize,
		"strict_scale", a.cfg.Limits.StrictScale,
	)

	return nil
}

func addTypesFlag(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("types", "t", nil, "Column types in order, e.g. numeric,text,int4")
	_ = cmd.MarkFlagRequired("types")
}

func types(cmd *cobra.Command) ([]oid.Oid, error) {
	names, err := cmd.Flags().GetStringSlice("types")
	if err != nil {
		return nil, err
	}

	ts := make([]oid.Oid, 0, len(names))
	for _, name := range names {
		t, err := pgcopy.ParseType(name)
		if err != nil {
			return nil, err
		}

		ts = append(ts, t)
	}

	return ts, nil
}
