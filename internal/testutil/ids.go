package testutil

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// runNamespace seeds SeededIDs.
var runNamespace = uuid.MustParse("6f1c2a8e-1d7b-4c55-9a0e-3b8f5d2c7e41")

// SeededIDs hands out name-based UUIDs derived from a seed and a counter,
// so two generators with the same seed produce the same run IDs. It
// satisfies store.IDGenerator.
type SeededIDs struct {
	mu   sync.Mutex
	seed string
	n    int
}

// NewSeededIDs returns a generator for seed.
func NewSeededIDs(seed string) *SeededIDs {
	return &SeededIDs{seed: seed}
}

// NewID returns the next ID.
func (g *SeededIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return uuid.NewSHA1(runNamespace, []byte(g.seed+"/"+strconv.Itoa(g.n))).String()
}
