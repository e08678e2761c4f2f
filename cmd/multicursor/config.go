package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/multicursor/internal/config"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings",
		Long: `Print the settings after applying defaults, the settings file and
MULTICURSOR_* environment variables.

With --watch the settings are printed again whenever the file changes,
until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, cleanup, err := opts.setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if err := printSettings(out, cfg.Settings()); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			w := config.NewWatcher(cfg, config.DefaultDebounce, func(s config.Settings, err error) {
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "reload failed: %v\n", err)
					return
				}
				fmt.Fprintln(out, "---")
				_ = printSettings(out, s)
			})
			return w.Run(ctx)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reprint the settings when the file changes")
	return cmd
}

func printSettings(w io.Writer, s config.Settings) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return enc.Close()
}
