package cli

import (
	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/tui"
)

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "tui [script...]",
		Aliases: []string{"ls", "ui"},
		Short:   "Open the interactive list",
		Long: `Open the interactive list. Scripts given as arguments are applied
first, so the session starts from their result.

Keys: a add, d delete, / filter, q quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newStore()
			if err != nil {
				return err
			}
			if len(args) > 0 {
				if err := a.apply(s, args); err != nil {
					return err
				}
			}
			return tui.Run(s)
		},
	}
}
