// Package script replays a JSON list of store operations without a terminal.
//
// A script looks like
//
//	{"commands": [
//	  {"op": "add", "text": "Buy milk"},
//	  {"op": "toggle", "ref": "#1"},
//	  {"op": "reorder", "ref": "Walk dog", "target": "#1"}
//	]}
//
// ref and target name an item by id, by "#N" (1-based position when the
// command runs) or by its exact text. A name that matches nothing is passed to
// the store as is, where it is ignored like any unknown id.
package script

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

//go:embed schema.json
var schemaText string

var schema = jsonschema.MustCompileString("tada-script.schema.json", schemaText)

// Command is one script step.
type Command struct {
	Op     store.Op `json:"op"`
	Text   string   `json:"text,omitempty"`
	Ref    string   `json:"ref,omitempty"`
	Target string   `json:"target,omitempty"`
}

// Script is a decoded script document.
type Script struct {
	Commands []Command `json:"commands"`
}

// Result records what a command did.
type Result struct {
	Command Command
	Applied bool
}

// ErrNoScript is returned by LoadFile when the path does not exist.
var ErrNoScript = errors.New("script not found")

// LoadFile reads a script from path, or from stdin when path is "-".
func LoadFile(path string, stdin io.Reader) (Script, error) {
	if path == "-" {
		return Load(stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Script{}, fmt.Errorf("%w: %s", ErrNoScript, path)
		}
		return Script{}, fmt.Errorf("read file: %w", err)
	}
	return Parse(b)
}

// Load reads and parses a script from r.
func Load(r io.Reader) (Script, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return Script{}, fmt.Errorf("read script: %w", err)
	}
	return Parse(b)
}

// Parse validates b against the script schema and decodes it.
func Parse(b []byte) (Script, error) {
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return Script{}, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return Script{}, fmt.Errorf("invalid script: %w", err)
	}
	var sc Script
	if err := json.Unmarshal(b, &sc); err != nil {
		return Script{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return sc, nil
}

// Apply runs every command against s in order.
func Apply(s *store.Store, sc Script, logger *log.Logger) []Result {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	results := make([]Result, 0, len(sc.Commands))
	for i, c := range sc.Commands {
		applied := apply(s, c)
		logger.Info("command", "n", i+1, "op", c.Op, "applied", applied)
		results = append(results, Result{Command: c, Applied: applied})
	}
	return results
}

func apply(s *store.Store, c Command) bool {
	switch c.Op {
	case store.OpAdd:
		_, ok := s.Add(c.Text)
		return ok
	case store.OpToggle:
		return s.Toggle(Resolve(s.Items(), c.Ref))
	case store.OpDelete:
		return s.Delete(Resolve(s.Items(), c.Ref))
	case store.OpReorder:
		items := s.Items()
		return s.Reorder(Resolve(items, c.Ref), Resolve(items, c.Target))
	}
	return false
}

// Resolve maps a ref to an item id in l. Unmatched refs come back unchanged.
func Resolve(l model.List, ref string) string {
	if l.IndexOf(ref) >= 0 {
		return ref
	}
	if n, ok := position(ref); ok && n <= len(l) {
		return l[n-1].ID
	}
	want := strings.TrimSpace(ref)
	for _, it := range l {
		if it.Text == want {
			return it.ID
		}
	}
	return ref
}

func position(ref string) (int, bool) {
	rest, ok := strings.CutPrefix(ref, "#")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// WriteJSON writes l as indented JSON.
func WriteJSON(w io.Writer, l model.List) error {
	if l == nil {
		l = model.List{}
	}
	b, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
