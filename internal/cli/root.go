package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/config"
	"github.com/idilsaglam/todo/internal/ui"
)

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "todo",
		Short: "todo - a tiny to-do list",
		Long: `todo keeps a to-do list in memory for the length of a session.
Every change is an intent (add or remove) applied to the current list,
producing the next one.`,
		Example: `  todo tui
  todo eval "add Buy milk" "add Walk dog" "rm 1"
  todo run "scripts/**/*.yaml" --output json
  todo repl`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errQuietUsage
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "config file (default $TADA_CONFIG or ~/.config/tada/config.yaml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVar(&a.flags.ids, "ids", "", "id scheme: counter, random or uuid")
	pf.StringVar(&a.flags.theme, "theme", "", "theme: classic, neon or mono")
	pf.StringVar(&a.flags.color, "color", "", "color output: auto, always or never")

	root.AddCommand(
		a.tuiCmd(),
		a.runCmd(),
		a.evalCmd(),
		a.replCmd(),
	)
	return root
}

// setup loads configuration, applies flag overrides and configures
// logging and styling for the subcommand about to run.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Read(a.cfgPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("ids") {
		cfg.IDs.Scheme = a.flags.ids
	}
	if cmd.Flags().Changed("theme") {
		cfg.UI.Theme = a.flags.theme
	}
	if cmd.Flags().Changed("color") {
		cfg.UI.Color = a.flags.color
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	a.cfg = cfg

	level, _ := config.ParseLevel(cfg.Log.Level)
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(a.opt.Err, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.log)

	ui.SetTheme(cfg.UI.Theme)
	return ui.SetColorMode(cfg.UI.Color, a.opt.Out)
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %v (see `%s --help`)", ErrUsage, err, cmd.CommandPath())
		}
		return nil
	}
}
