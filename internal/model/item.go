package model

// Item is the domain model for a todo entry.
// ID is assigned once at creation and never reused within a session.
type Item struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// List is the ordered collection of items. Order is display order.
type List []Item

// IndexOf returns the position of the item with id, or -1.
func (l List) IndexOf(id string) int {
	for i, it := range l {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy that shares nothing with l.
func (l List) Clone() List {
	if l == nil {
		return List{}
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Stats counts completed and pending items.
func (l List) Stats() (done, pending int) {
	for _, it := range l {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
