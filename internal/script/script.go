package script

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
)

// An intent script is a file listing intents to apply in order.
// .json/.yaml/.yml files hold a list of records; anything else is read as
// one intent line per line ("add <text>", "rm <id>").

var (
	// ErrUnknownFormat is returned for a format name Decode does not know.
	ErrUnknownFormat = errors.New("unknown script format")
	// ErrSyntax is returned for an intent line that cannot be parsed.
	ErrSyntax = errors.New("syntax error")
)

// Format is the encoding of a script.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatLines Format = "lines"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatLines
}

// Record is one structured script entry. Both the flat shape
// {type, text, id} and the action shape {type, payload} are accepted.
type Record struct {
	Type    string `json:"type" yaml:"type"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty"`
	ID      any    `json:"id,omitempty" yaml:"id,omitempty"`
	Payload any    `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Intent converts the record. Unrecognized types become store.Unknown.
func (r Record) Intent() store.Intent {
	switch KindOf(r.Type) {
	case store.KindAdd:
		text := r.Text
		if p, ok := r.Payload.(map[string]any); ok && text == "" {
			text = scalar(p["text"])
		}
		return store.Add{Text: text}
	case store.KindRemove:
		id := scalar(r.ID)
		if id == "" {
			if p, ok := r.Payload.(map[string]any); ok {
				id = scalar(p["id"])
			} else {
				id = scalar(r.Payload)
			}
		}
		return store.Remove{ID: model.ID(id)}
	}
	return store.Unknown{Type: r.Type}
}

// scalar renders a decoded JSON/YAML scalar as an id or text.
func scalar(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case json.Number:
		return v.String()
	}
	return fmt.Sprint(v)
}

// ParseLine parses one intent line. Unknown verbs yield store.Unknown so
// callers can decide whether to warn or fail.
func ParseLine(line string) (store.Intent, error) {
	line = strings.TrimSpace(line)
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	if verb == "" {
		return nil, fmt.Errorf("%w: empty line", ErrSyntax)
	}
	switch KindOf(verb) {
	case store.KindAdd:
		return store.Add{Text: rest}, nil
	case store.KindRemove:
		fields := strings.Fields(rest)
		if len(fields) != 1 {
			return nil, fmt.Errorf("%w: usage: rm <id>", ErrSyntax)
		}
		return store.Remove{ID: model.ID(fields[0])}, nil
	}
	return store.Unknown{Type: verb}, nil
}

// Loader reads scripts and reports suspicious entries through its logger.
type Loader struct {
	log *slog.Logger
}

// NewLoader returns a Loader. A nil logger uses slog.Default().
func NewLoader(log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{log: log}
}

// Load reads the script at path, picking the format from its extension.
func (l *Loader) Load(path string) ([]store.Intent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	intents, err := l.Decode(f, FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.log.Debug("script loaded", "path", path, "intents", len(intents))
	return intents, nil
}

// LoadAll loads every path in order and concatenates the intents.
func (l *Loader) LoadAll(paths []string) ([]store.Intent, error) {
	var all []store.Intent
	for _, p := range paths {
		intents, err := l.Load(p)
		if err != nil {
			return nil, err
		}
		all = append(all, intents...)
	}
	return all, nil
}

// Decode reads a script in the given format.
func (l *Loader) Decode(r io.Reader, format Format) ([]store.Intent, error) {
	var (
		intents []store.Intent
		err     error
	)
	switch format {
	case FormatJSON, FormatYAML:
		intents, err = decodeRecords(r, format)
	case FormatLines:
		intents, err = decodeLines(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	for i, in := range intents {
		if u, ok := in.(store.Unknown); ok {
			l.warnUnknown(i+1, u.Type)
		}
	}
	return intents, nil
}

func (l *Loader) warnUnknown(entry int, name string) {
	attrs := []any{"entry", entry, "type", name}
	if s := Suggest(name); s != "" {
		attrs = append(attrs, "did_you_mean", s)
	}
	l.log.Warn("ignoring unknown intent", attrs...)
}

func decodeRecords(r io.Reader, format Format) ([]store.Intent, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []store.Intent{}, nil
	}
	var recs []Record
	if format == FormatJSON {
		// Numbers stay json.Number so 64-bit ids keep every digit.
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		err = dec.Decode(&recs)
		if err == nil && dec.More() {
			err = errors.New("unexpected data after the intent list")
		}
	} else {
		err = yaml.Unmarshal(b, &recs)
	}
	if err != nil {
		return nil, fmt.Errorf("%s unmarshal: %w", format, err)
	}
	out := make([]store.Intent, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.Intent())
	}
	return out, nil
}

func decodeLines(r io.Reader) ([]store.Intent, error) {
	out := []store.Intent{}
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		in, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, in)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return out, nil
}
