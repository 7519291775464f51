package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/ui"
)

const replHelp = `Commands:
  add <text...>     Add a new item (text can be multiple words)
  rm <id>           Remove the item with that id (also: remove, delete)
  ls                List items
  help              Show this help
  quit              Leave (also: exit, end of input)
`

func (a *app) replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Read intents from standard input, one per line",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.newStore()
			if err != nil {
				return err
			}
			return a.repl(s, a.opt.In, a.opt.Out)
		},
	}
}

func (a *app) repl(s *store.Store, in io.Reader, out io.Writer) error {
	// The loop only reads snapshots pushed by the store.
	last := s.State()
	unsubscribe := s.Subscribe(func(st model.State) { last = st })
	defer unsubscribe()

	interactive := ui.IsTerminal(out)
	sc := bufio.NewScanner(in)
	for {
		if interactive {
			fmt.Fprint(out, "> ")
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "", "#":
			continue
		case "quit", "exit":
			return nil
		case "help", "?":
			fmt.Fprint(out, replHelp)
			continue
		case "ls", "list":
			ui.Snapshot(out, last)
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		intent, err := parseInteractive(line)
		if err != nil {
			ui.Fail(out, strings.TrimPrefix(err.Error(), ErrUsage.Error()+": "))
			continue
		}
		before := last
		s.Dispatch(intent)
		switch intent := intent.(type) {
		case store.Add:
			ui.OK(out, "added #"+string(last.Items[last.Len()-1].ID))
		case store.Remove:
			if before.Len() == last.Len() {
				ui.Fail(out, "rm: no item #"+string(intent.ID))
			} else {
				ui.OK(out, "removed #"+string(intent.ID))
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
