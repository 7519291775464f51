package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/script"
	"github.com/idilsaglam/todo/internal/store"
)

func (a *app) evalCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "eval <intent>...",
		Short: "Apply intents given as arguments and print the resulting list",
		Example: `  todo eval "add Buy milk" "add Walk dog" "rm 1"
  todo eval -o yaml "add Buy milk"`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := a.format(output)
			if err != nil {
				return err
			}
			intents := make([]store.Intent, 0, len(args))
			for _, line := range args {
				in, err := parseInteractive(line)
				if err != nil {
					return err
				}
				intents = append(intents, in)
			}

			s, err := a.newStore()
			if err != nil {
				return err
			}
			for _, in := range intents {
				s.Dispatch(in)
			}
			return printSnapshot(a.opt.Out, format, s.State())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: text, json or yaml")
	return cmd
}

// parseInteractive parses an intent typed by a person. Unlike scripts, it
// rejects unknown verbs and blank item text.
func parseInteractive(line string) (store.Intent, error) {
	in, err := script.ParseLine(line)
	if err != nil {
		if errors.Is(err, script.ErrSyntax) {
			return nil, fmt.Errorf("%w: %q: %v", ErrUsage, line, err)
		}
		return nil, err
	}
	switch in := in.(type) {
	case store.Unknown:
		hint := ""
		if s := script.Suggest(in.Type); s != "" {
			hint = fmt.Sprintf(" (did you mean %q?)", s)
		}
		return nil, fmt.Errorf("%w: unknown intent %q%s", ErrUsage, in.Type, hint)
	case store.Add:
		if strings.TrimSpace(in.Text) == "" {
			return nil, fmt.Errorf("%w: add: empty text", ErrUsage)
		}
	}
	return in, nil
}
