package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/multicursor/internal/config"
	"github.com/dshills/multicursor/internal/log"
)

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	configPath string
	logFile    string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "multicursor",
		Short: "Replay editor commands across multiple cursors",
		Long: `multicursor drives a reference editor view with a multi-cursor selector.

It loads a text file, runs a YAML script of selection and editing steps
against it and prints the resulting text and cursors.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "",
		"settings file (.toml, .yaml or .yml)")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "",
		"append debug logs to this file")

	root.AddCommand(newRunCmd(opts), newConfigCmd(opts), newVersionCmd())
	return root
}

// setup starts logging and loads the settings.
func (o *globalOptions) setup(ctx context.Context) (*config.Config, func(), error) {
	cleanup := func() {}
	if o.logFile != "" {
		closeLog, err := log.Init(o.logFile)
		if err != nil {
			return nil, nil, err
		}
		cleanup = closeLog
	}

	var cfgOpts []config.Option
	if o.configPath != "" {
		cfgOpts = append(cfgOpts, config.WithPath(o.configPath))
	}
	cfg := config.New(cfgOpts...)
	if err := cfg.Load(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}

	if level, err := log.ParseLevel(cfg.Settings().Logging.Level); err == nil {
		log.SetMinLevel(level)
	} else {
		log.Warn(log.CatConfig, "ignoring log level", "error", err)
	}
	return cfg, cleanup, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "multicursor %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}
