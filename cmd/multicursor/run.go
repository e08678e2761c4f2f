package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/dshills/multicursor/internal/clipboard"
	"github.com/dshills/multicursor/internal/config"
	"github.com/dshills/multicursor/internal/engine"
	"github.com/dshills/multicursor/internal/log"
	"github.com/dshills/multicursor/internal/selector"
)

type runOptions struct {
	textPath   string
	scriptPath string
	diff       bool
	systemClip bool
	keepGoing  bool
}

func newRunCmd(global *globalOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a script against a text file",
		Long: `Load a text file into the reference view, run a YAML script of steps
and print the final text followed by the cursors.

Example script:

  steps:
    - moveCaret: 0
    - selectNext: true
      repeat: 2
    - text: "bar"
    - command: cursor.moveLeft`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, cleanup, err := global.setup(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			text, err := os.ReadFile(opts.textPath)
			if err != nil {
				return fmt.Errorf("read text: %w", err)
			}
			data, err := os.ReadFile(opts.scriptPath)
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			script, err := ParseScript(data)
			if err != nil {
				return err
			}

			e, err := newEngine(string(text), cfg.Settings(), opts.systemClip)
			if err != nil {
				return err
			}
			return runScript(cmd.OutOrStdout(), e, script, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.textPath, "text", "t", "", "text file to edit")
	cmd.Flags().StringVarP(&opts.scriptPath, "script", "s", "", "YAML script to run")
	cmd.Flags().BoolVarP(&opts.diff, "diff", "d", false, "also print a patch from the original text")
	cmd.Flags().BoolVar(&opts.systemClip, "system-clipboard", false, "use the OS clipboard")
	cmd.Flags().BoolVarP(&opts.keepGoing, "keep-going", "k", false, "continue after a failing step")
	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

// newEngine creates the view configured by settings.
func newEngine(text string, s config.Settings, systemClip bool) (*engine.Engine, error) {
	table := selector.DefaultCommandTable()
	if err := table.Apply(s.Commands); err != nil {
		return nil, fmt.Errorf("command overrides: %w", err)
	}

	opts := []engine.Option{
		engine.WithContent(text),
		engine.WithTabWidth(s.Editor.TabSize),
		engine.WithVirtualSpace(s.Editor.VirtualSpace),
		engine.WithSettings(s),
		engine.WithCommandTable(table),
	}
	if systemClip {
		if !clipboard.Available() {
			log.Warn(log.CatClipboard, "OS clipboard unavailable, using memory")
		}
		opts = append(opts, engine.WithClipboard(clipboard.NewSystem()))
	}
	return engine.New(opts...), nil
}

// runScript runs every step and writes the outcome to w.
func runScript(w io.Writer, e *engine.Engine, script *Script, opts *runOptions) error {
	before := e.Text()

	var failed error
	for i, step := range script.Steps {
		if _, err := step.Run(e); err != nil {
			err = fmt.Errorf("step %d: %w", i+1, err)
			if !opts.keepGoing {
				return err
			}
			log.ErrorErr(log.CatHost, "step failed", err)
			if failed == nil {
				failed = err
			}
		}
	}

	fmt.Fprint(w, e.Text())
	if !strings.HasSuffix(e.Text(), "\n") {
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "---")
	writeUnits(w, e)
	if opts.diff {
		fmt.Fprintln(w, "---")
		fmt.Fprint(w, textDiff(before, e.Text()))
	}
	return failed
}

// writeUnits prints one line per cursor, or the view's caret when there
// are none.
func writeUnits(w io.Writer, e *engine.Engine) {
	states := e.Selector().States()
	if len(states) == 0 {
		caret, _ := e.Caret()
		fmt.Fprintf(w, "caret %d\n", caret)
		return
	}
	for _, st := range states {
		fmt.Fprintf(w, "unit %s\n", st)
	}
}

// textDiff returns a patch turning before into after.
func textDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	patches := dmp.PatchMake(before, diffs)
	return dmp.PatchToText(patches)
}
