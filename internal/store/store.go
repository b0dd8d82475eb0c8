// Package store holds the in-memory todo list and the operations that change it.
//
// A Store is single-writer: its methods are meant to be called one at a time
// from UI events and take no locks. Every mutation replaces the current list
// with a new slice, so a snapshot obtained from Items stays valid after later
// changes.
package store

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
)

// Op names a store mutation.
type Op string

const (
	OpAdd     Op = "add"
	OpToggle  Op = "toggle"
	OpDelete  Op = "delete"
	OpReorder Op = "reorder"
)

// Change is delivered to observers after a mutation took effect.
// Items is the list as it is after the change.
type Change struct {
	Op     Op
	ID     string
	Target string // reorder only
	Items  model.List
}

// Observer is called synchronously after each effective mutation.
type Observer func(Change)

// Store owns the ordered todo list and the pending draft text.
type Store struct {
	items model.List
	draft string

	ids    IDGenerator
	issued map[string]struct{}
	logger *log.Logger

	observers map[int]Observer
	nextObs   int
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default uuid generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithLogger sets the logger used for mutation tracing.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		items:     model.List{},
		ids:       UUIDGenerator{},
		issued:    map[string]struct{}{},
		logger:    log.New(io.Discard),
		observers: map[int]Observer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Items returns a copy of the current list.
func (s *Store) Items() model.List { return s.items.Clone() }

// Len returns the number of items.
func (s *Store) Len() int { return len(s.items) }

// Get looks up an item by id.
func (s *Store) Get(id string) (model.Item, bool) {
	i := s.items.IndexOf(id)
	if i < 0 {
		return model.Item{}, false
	}
	return s.items[i], true
}

// Add trims text and appends a new, not completed item. Blank text is a no-op
// and reports false.
func (s *Store) Add(text string) (model.Item, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.Debug("add ignored", "reason", "blank text")
		return model.Item{}, false
	}
	it := model.Item{ID: s.newID(), Text: text}
	s.commit(Append(s.items, it), Change{Op: OpAdd, ID: it.ID})
	return it, true
}

// Toggle flips the completed flag of the item with id.
// Unknown ids are ignored and report false.
func (s *Store) Toggle(id string) bool {
	next, ok := Toggle(s.items, id)
	if !ok {
		s.logger.Debug("toggle ignored", "id", id, "reason", "unknown id")
		return false
	}
	s.commit(next, Change{Op: OpToggle, ID: id})
	return true
}

// Delete removes the item with id. Deleting an id that is already gone is a
// no-op, so a late duplicate event is harmless.
func (s *Store) Delete(id string) bool {
	next, ok := Remove(s.items, id)
	if !ok {
		s.logger.Debug("delete ignored", "id", id, "reason", "unknown id")
		return false
	}
	s.commit(next, Change{Op: OpDelete, ID: id})
	return true
}

// Reorder moves sourceID to the position targetID currently holds.
// See Move for the exact semantics.
func (s *Store) Reorder(sourceID, targetID string) bool {
	next, ok := Move(s.items, sourceID, targetID)
	if !ok {
		s.logger.Debug("reorder ignored", "source", sourceID, "target", targetID)
		return false
	}
	s.commit(next, Change{Op: OpReorder, ID: sourceID, Target: targetID})
	return true
}

// Draft returns the pending input text.
func (s *Store) Draft() string { return s.draft }

// SetDraft replaces the pending input text.
func (s *Store) SetDraft(text string) { s.draft = text }

// SubmitDraft adds the draft as a new item and clears it. The draft is
// cleared even when the text was blank and nothing was added.
func (s *Store) SubmitDraft() (model.Item, bool) {
	text := s.draft
	s.draft = ""
	return s.Add(text)
}

// Subscribe registers fn for change notifications and returns a func that
// removes it again.
func (s *Store) Subscribe(fn Observer) func() {
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() { delete(s.observers, id) }
}

func (s *Store) commit(next model.List, c Change) {
	s.items = next
	s.logger.Debug("applied", "op", c.Op, "id", c.ID, "len", len(next))
	if len(s.observers) == 0 {
		return
	}
	c.Items = next.Clone()
	for i := 0; i < s.nextObs; i++ {
		if fn, ok := s.observers[i]; ok {
			fn(c)
		}
	}
}

func (s *Store) newID() string {
	id := s.ids.NewID()
	for n := 1; ; n++ {
		if _, taken := s.issued[id]; !taken && id != "" {
			break
		}
		id = fmt.Sprintf("%s-%d", s.ids.NewID(), n)
	}
	s.issued[id] = struct{}{}
	return id
}
