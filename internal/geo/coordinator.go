package geo

import (
	"errors"
	"sync"
)

// ErrStale marks a lookup result that was superseded by a newer request
// for the same key before it arrived.
var ErrStale = errors.New("lookup superseded by a newer request")

// Coordinator serializes concurrent lookups per dropdown. Changing a
// parent dropdown fires a new lookup for each child; when responses
// arrive out of order, only the one matching the latest request may be
// applied. Keys identify a dropdown instance, typically
// "<locationID>:<level>".
type Coordinator struct {
	mu   sync.Mutex
	seqs map[string]uint64
}

// NewCoordinator builds an empty coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{seqs: make(map[string]uint64)}
}

// Begin registers a new lookup for the key and returns its sequence
// number. Any lookup with a lower number for the same key is now stale.
func (c *Coordinator) Begin(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seqs[key]++
	return c.seqs[key]
}

// Latest reports whether seq is still the newest lookup for the key.
func (c *Coordinator) Latest(key string, seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seqs[key] == seq
}

// Apply runs fn only when seq is still the latest lookup for the key,
// returning ErrStale otherwise. The check and the application run under
// the coordinator's lock, so a result can never be applied after a newer
// request has begun.
func (c *Coordinator) Apply(key string, seq uint64, fn func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seqs[key] != seq {
		return ErrStale
	}
	fn()
	return nil
}

// Forget drops the key's sequence state, for dropdowns that no longer
// exist (a removed location's row, for example).
func (c *Coordinator) Forget(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.seqs, key)
}
