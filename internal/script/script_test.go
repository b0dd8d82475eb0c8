package script

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

func newStore() *store.Store {
	return store.New(store.WithIDGenerator(&store.CounterGenerator{}))
}

func texts(l model.List) []string {
	out := make([]string, 0, len(l))
	for _, it := range l {
		out = append(out, it.Text)
	}
	return out
}

func TestParse_Valid(t *testing.T) {
	sc, err := Parse([]byte(`{"commands":[
		{"op":"add","text":"Buy milk"},
		{"op":"toggle","ref":"#1"},
		{"op":"reorder","ref":"a","target":"b"}
	]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []Command{
		{Op: store.OpAdd, Text: "Buy milk"},
		{Op: store.OpToggle, Ref: "#1"},
		{Op: store.OpReorder, Ref: "a", Target: "b"},
	}
	if !reflect.DeepEqual(sc.Commands, want) {
		t.Errorf("expected %+v, got %+v", want, sc.Commands)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "not json", doc: `{`, want: "json unmarshal"},
		{name: "missing commands", doc: `{}`, want: "invalid script"},
		{name: "unknown op", doc: `{"commands":[{"op":"rename","ref":"x"}]}`, want: "invalid script"},
		{name: "add without text", doc: `{"commands":[{"op":"add"}]}`, want: "invalid script"},
		{name: "toggle without ref", doc: `{"commands":[{"op":"toggle"}]}`, want: "invalid script"},
		{name: "reorder without target", doc: `{"commands":[{"op":"reorder","ref":"x"}]}`, want: "invalid script"},
		{name: "extra field", doc: `{"commands":[{"op":"add","text":"x","due":"today"}]}`, want: "invalid script"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in error, got %v", tt.want, err)
			}
		})
	}
}

func TestApply_Scenario(t *testing.T) {
	s := newStore()
	sc := Script{Commands: []Command{
		{Op: store.OpAdd, Text: "Buy milk"},
		{Op: store.OpAdd, Text: "Walk dog"},
		{Op: store.OpToggle, Ref: "Buy milk"},
		{Op: store.OpDelete, Ref: "Walk dog"},
	}}
	results := Apply(s, sc, nil)
	for i, r := range results {
		if !r.Applied {
			t.Errorf("command %d (%s) was not applied", i+1, r.Command.Op)
		}
	}
	got := s.Items()
	if len(got) != 1 || got[0].Text != "Buy milk" || !got[0].Completed {
		t.Errorf("expected one completed 'Buy milk', got %+v", got)
	}
}

func TestApply_NoOps(t *testing.T) {
	s := newStore()
	sc := Script{Commands: []Command{
		{Op: store.OpAdd, Text: "A"},
		{Op: store.OpAdd, Text: "   "},
		{Op: store.OpDelete, Ref: "#5"},
		{Op: store.OpToggle, Ref: "ghost"},
		{Op: store.OpReorder, Ref: "#1", Target: "A"},
		{Op: store.OpDelete, Ref: "#1"},
		{Op: store.OpDelete, Ref: "1"},
	}}
	results := Apply(s, sc, nil)
	want := []bool{true, false, false, false, false, true, false}
	for i, r := range results {
		if r.Applied != want[i] {
			t.Errorf("command %d: expected applied=%v, got %v", i+1, want[i], r.Applied)
		}
	}
	if s.Len() != 0 {
		t.Errorf("expected empty list, got %+v", s.Items())
	}
}

func TestApply_ReorderByPosition(t *testing.T) {
	s := newStore()
	sc := Script{Commands: []Command{
		{Op: store.OpAdd, Text: "A"},
		{Op: store.OpAdd, Text: "B"},
		{Op: store.OpAdd, Text: "C"},
		{Op: store.OpReorder, Ref: "#3", Target: "#1"},
	}}
	Apply(s, sc, nil)
	if got := texts(s.Items()); !reflect.DeepEqual(got, []string{"C", "A", "B"}) {
		t.Errorf("expected [C A B], got %v", got)
	}
}

func TestResolve(t *testing.T) {
	l := model.List{{ID: "x1", Text: "Buy milk"}, {ID: "x2", Text: "#2"}}
	tests := []struct{ ref, want string }{
		{"x2", "x2"},
		{"#1", "x1"},
		{"#2", "x2"},
		{"#3", "#3"},
		{"#0", "#0"},
		{"Buy milk", "x1"},
		{"nothing", "nothing"},
	}
	for _, tt := range tests {
		if got := Resolve(l, tt.ref); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.json")
	if err := os.WriteFile(path, []byte(`{"commands":[{"op":"add","text":"x"}]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sc, err := LoadFile(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(sc.Commands) != 1 {
		t.Errorf("expected 1 command, got %d", len(sc.Commands))
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.json"), nil); !errors.Is(err, ErrNoScript) {
		t.Errorf("expected ErrNoScript, got %v", err)
	}

	sc, err = LoadFile("-", strings.NewReader(`{"commands":[]}`))
	if err != nil {
		t.Fatalf("load stdin: %v", err)
	}
	if len(sc.Commands) != 0 {
		t.Errorf("expected no commands, got %d", len(sc.Commands))
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	l := model.List{{ID: "1", Text: "Buy milk", Completed: true}}
	if err := WriteJSON(&buf, l); err != nil {
		t.Fatalf("write: %v", err)
	}
	var back model.List
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(back, l) {
		t.Errorf("expected %+v, got %+v", l, back)
	}

	buf.Reset()
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("write empty: %v", err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("expected empty array, got %q", buf.String())
	}
}
