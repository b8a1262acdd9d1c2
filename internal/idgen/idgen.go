// Package idgen supplies candidate identifiers. The generator is injected
// rather than global so tests and callers control id scoping; the old
// file-backed counter scheme is intentionally gone.
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator produces unique candidate ids.
type Generator interface {
	Next() string
}

// UUID generates random ids.
type UUID struct{}

// NewUUID creates a UUID-backed generator.
func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) Next() string {
	return uuid.New().String()
}

// Sequence generates prefixed, monotonically increasing ids from an
// in-memory atomic counter. Safe for concurrent use.
type Sequence struct {
	prefix  string
	counter atomic.Uint64
}

// NewSequence creates a sequence generator with the given id prefix.
func NewSequence(prefix string) *Sequence {
	if prefix == "" {
		prefix = "cand"
	}
	return &Sequence{prefix: prefix}
}

func (g *Sequence) Next() string {
	return fmt.Sprintf("%s-%03d", g.prefix, g.counter.Add(1))
}
