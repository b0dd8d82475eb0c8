package store

import (
	"reflect"
	"testing"

	"github.com/Makepad-fr/tada/internal/model"
)

func letters(ids ...string) model.List {
	l := make(model.List, 0, len(ids))
	for _, id := range ids {
		l = append(l, model.Item{ID: id, Text: id})
	}
	return l
}

func ids(l model.List) []string {
	out := make([]string, 0, len(l))
	for _, it := range l {
		out = append(out, it.ID)
	}
	return out
}

func TestMove(t *testing.T) {
	tests := []struct {
		name           string
		source, target string
		want           []string
	}{
		{name: "forward by one", source: "a", target: "b", want: []string{"b", "a", "c", "d", "e"}},
		{name: "forward across", source: "b", target: "d", want: []string{"a", "c", "d", "b", "e"}},
		{name: "to end", source: "a", target: "e", want: []string{"b", "c", "d", "e", "a"}},
		{name: "backward across", source: "d", target: "b", want: []string{"a", "d", "b", "c", "e"}},
		{name: "to front", source: "e", target: "a", want: []string{"e", "a", "b", "c", "d"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := letters("a", "b", "c", "d", "e")
			got, ok := Move(in, tt.source, tt.target)
			if !ok {
				t.Fatalf("expected move to apply")
			}
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("expected %v, got %v", tt.want, ids(got))
			}
			if !reflect.DeepEqual(ids(in), []string{"a", "b", "c", "d", "e"}) {
				t.Errorf("input was modified: %v", ids(in))
			}
		})
	}
}

func TestMove_IndexShift(t *testing.T) {
	const n = 6
	all := []string{"0", "1", "2", "3", "4", "5"}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			got, ok := Move(letters(all...), all[i], all[j])
			if !ok {
				t.Fatalf("move %d->%d: expected change", i, j)
			}
			if got[j].ID != all[i] {
				t.Errorf("move %d->%d: expected moved item at %d, got %v", i, j, j, ids(got))
			}
			lo, hi := i, j
			shift := -1
			if i > j {
				lo, hi = j, i
				shift = 1
			}
			for k := 0; k < n; k++ {
				if k == i {
					continue
				}
				want := k
				if k >= lo && k <= hi {
					want = k + shift
				}
				if got[want].ID != all[k] {
					t.Errorf("move %d->%d: expected item %d at %d, got %v", i, j, k, want, ids(got))
				}
			}
		}
	}
}

func TestToggleRemoveAppend_DoNotWriteInput(t *testing.T) {
	in := letters("a", "b")
	toggled, _ := Toggle(in, "a")
	removed, _ := Remove(in, "a")
	appended := Append(in, model.Item{ID: "c"})

	if in[0].Completed {
		t.Errorf("Toggle wrote to its input")
	}
	if !reflect.DeepEqual(ids(in), []string{"a", "b"}) {
		t.Errorf("input changed: %v", ids(in))
	}
	if !toggled[0].Completed {
		t.Errorf("expected toggled copy to be completed")
	}
	if !reflect.DeepEqual(ids(removed), []string{"b"}) {
		t.Errorf("expected [b], got %v", ids(removed))
	}
	if !reflect.DeepEqual(ids(appended), []string{"a", "b", "c"}) {
		t.Errorf("expected [a b c], got %v", ids(appended))
	}
}

func TestNewIDGenerator(t *testing.T) {
	g, err := NewIDGenerator("counter")
	if err != nil {
		t.Fatalf("counter: %v", err)
	}
	if a, b := g.NewID(), g.NewID(); a != "1" || b != "2" {
		t.Errorf("expected 1, 2; got %q, %q", a, b)
	}
	if g, err := NewIDGenerator(""); err != nil || g.NewID() == "" {
		t.Errorf("expected default uuid generator, got err %v", err)
	}
	if _, err := NewIDGenerator("snowflake"); err == nil {
		t.Errorf("expected error for unknown scheme")
	}
}
