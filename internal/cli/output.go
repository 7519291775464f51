package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/ui"
)

// listing is the machine-readable form of a snapshot.
type listing struct {
	Items []model.Item `json:"items" yaml:"items"`
}

func (a *app) format(flag string) (string, error) {
	f := strings.ToLower(flag)
	if f == "" {
		f = strings.ToLower(a.cfg.Output.Format)
	}
	switch f {
	case "text", "json", "yaml":
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown output format %q (want text, json or yaml)", ErrUsage, flag)
}

func printSnapshot(w io.Writer, format string, st model.State) error {
	items := st.Items
	if items == nil {
		items = []model.Item{}
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(listing{Items: items}); err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(listing{Items: items}); err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
	default:
		ui.Snapshot(w, st)
	}
	return nil
}
