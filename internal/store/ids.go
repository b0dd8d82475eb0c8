package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// IDGenerator hands out item ids. Every id returned within one session must be
// distinct; nothing relies on ids sorting in creation order.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator produces random v4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// CounterGenerator produces "1", "2", ... and is handy when output has to be
// reproducible, as in scripts and tests.
type CounterGenerator struct {
	n uint64
}

func (g *CounterGenerator) NewID() string {
	g.n++
	return strconv.FormatUint(g.n, 10)
}

// Scheme names accepted by NewIDGenerator.
const (
	SchemeUUID    = "uuid"
	SchemeCounter = "counter"
)

// NewIDGenerator returns the generator for a scheme name. Empty means uuid.
func NewIDGenerator(scheme string) (IDGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(scheme)) {
	case "", SchemeUUID:
		return UUIDGenerator{}, nil
	case SchemeCounter:
		return &CounterGenerator{}, nil
	}
	return nil, fmt.Errorf("unknown id scheme %q (want %s or %s)", scheme, SchemeUUID, SchemeCounter)
}
