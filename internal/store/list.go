package store

import "github.com/Makepad-fr/tada/internal/model"

// The functions in this file never write to their input list. Each returns a
// fresh slice so a caller holding the previous snapshot keeps seeing it intact.

// Append returns l with it added at the end.
func Append(l model.List, it model.Item) model.List {
	out := make(model.List, 0, len(l)+1)
	out = append(out, l...)
	return append(out, it)
}

// Toggle flips Completed on the item with id.
// It reports false, and returns l unchanged, when id is not present.
func Toggle(l model.List, id string) (model.List, bool) {
	i := l.IndexOf(id)
	if i < 0 {
		return l, false
	}
	out := l.Clone()
	out[i].Completed = !out[i].Completed
	return out, true
}

// Remove drops the item with id, keeping the order of the rest.
func Remove(l model.List, id string) (model.List, bool) {
	i := l.IndexOf(id)
	if i < 0 {
		return l, false
	}
	out := make(model.List, 0, len(l)-1)
	out = append(out, l[:i]...)
	out = append(out, l[i+1:]...)
	return out, true
}

// Move takes the item sourceID out of the list and reinserts it at the index
// targetID occupied, shifting the items in between by one slot.
// Unknown ids and sourceID == targetID leave l unchanged.
func Move(l model.List, sourceID, targetID string) (model.List, bool) {
	if sourceID == targetID {
		return l, false
	}
	from, to := l.IndexOf(sourceID), l.IndexOf(targetID)
	if from < 0 || to < 0 {
		return l, false
	}
	moved := l[from]

	rest := make(model.List, 0, len(l)-1)
	rest = append(rest, l[:from]...)
	rest = append(rest, l[from+1:]...)

	// After removal, index `to` in rest is exactly where the target sat
	// in the original list for both directions of travel.
	out := make(model.List, 0, len(l))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	return out, true
}
