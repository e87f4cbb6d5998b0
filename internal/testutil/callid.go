package testutil

import (
	"fmt"
	"sync"
)

// SequentialCallIDs generates "call-0001", "call-0002", ... so ledger
// traces and transfer ids are reproducible.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequentialCallIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialCallIDs creates a generator. An empty prefix means "call".
func NewSequentialCallIDs(prefix string) *SequentialCallIDs {
	if prefix == "" {
		prefix = "call"
	}
	return &SequentialCallIDs{prefix: prefix}
}

// Generate returns the next id.
func (g *SequentialCallIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}
