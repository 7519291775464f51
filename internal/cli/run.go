package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/script"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/ui"
)

func (a *app) runCmd() *cobra.Command {
	var (
		output string
		watch  bool
	)
	cmd := &cobra.Command{
		Use:   "run <script|pattern>...",
		Short: "Apply intent scripts and print the resulting list",
		Long: `Apply intent scripts in order to an empty list and print the result.

Patterns may use ** to match across directories. Files ending in .json,
.yaml or .yml hold a list of {type, text, id} records; any other file holds
one intent per line ("add <text>", "rm <id>", # comments).`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.format(output)
			if err != nil {
				return err
			}
			paths, err := script.Expand(args)
			if err != nil {
				return err
			}
			if err := a.runOnce(paths, format); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return a.watch(cmd.Context(), args, format)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: text, json or yaml")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run whenever a script changes")
	return cmd
}

func (a *app) runOnce(paths []string, format string) error {
	s, err := a.newStore()
	if err != nil {
		return err
	}
	if err := a.apply(s, paths); err != nil {
		return err
	}
	return printSnapshot(a.opt.Out, format, s.State())
}

// apply loads the scripts at paths and dispatches their intents in order.
func (a *app) apply(s *store.Store, paths []string) error {
	expanded, err := script.Expand(paths)
	if err != nil {
		return err
	}
	intents, err := script.NewLoader(a.log).LoadAll(expanded)
	if err != nil {
		return err
	}
	for _, in := range intents {
		s.Dispatch(in)
	}
	a.log.Debug("scripts applied", "files", len(expanded), "intents", len(intents), "items", s.State().Len())
	return nil
}

// watch re-runs the scripts matched by patterns until interrupted. New
// files matching a pattern join the run.
func (a *app) watch(ctx context.Context, patterns []string, format string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, err := script.NewWatcher(patterns, script.DefaultDebounce, a.log)
	if err != nil {
		return err
	}
	a.log.Info("watching scripts", "files", len(w.Paths()))
	err = w.Run(ctx, func(paths []string) {
		fmt.Fprintln(a.opt.Out)
		if err := a.runOnce(paths, format); err != nil {
			ui.Fail(a.opt.Err, err.Error())
		}
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}
