// Package gc implements the expiry-ordered registry that reclaims
// DateExpiryTAI leases once they elapse: a min-heap of (expiry, locator) entries that Tick sweeps one at a time,
// removing the matching record from the secret store as it goes.
package gc

import (
	"bytes"
	"container/heap"
	"context"
	"fmt"
	"sync"

	"github.com/suleymanmyradov/schemeguardian/store"
	"github.com/suleymanmyradov/schemeguardian/tai64"
)

// Locator names the record a registry entry's expiry governs: which
// backend/database it lives in (informational, for multi-store
// deployments), the document or table it belongs to, and the store key
// itself.
type Locator struct {
	Database string
	Document string
	Key      []byte
}

type entry struct {
	expiry  tai64.Timestamp
	locator Locator
	index   int
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool { return h[i].expiry.Before(h[j].expiry) }
func (h entryHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index, h[j].index = i, j
}
func (h *entryHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// TickResult classifies what a single Tick call did.
type TickResult uint8

const (
	// Miss reports that the registry is non-empty but its earliest entry
	// has not yet expired — nothing was removed.
	Miss TickResult = iota
	// Empty reports that the registry holds no entries at all.
	Empty
	// Removed reports that the earliest entry had expired and was
	// removed from both the registry and the backing store.
	Removed
	// MalformedOperation reports that the earliest entry had expired but
	// removing it from the backing store failed; the entry is left in
	// place for a future Tick to retry rather than dropped silently.
	MalformedOperation
)

// Registry is the expiry-ordered index. Its mutex is distinct from the
// backing store's own locking: the two are never held at the same time,
// so a slow store call during Tick can't block a concurrent Insert or
// Remove.
type Registry struct {
	mu    sync.Mutex
	heap  entryHeap
	store store.SecretStore
}

// New constructs an empty Registry backed by s. Tick removes expired
// entries from s as it sweeps.
func New(s store.SecretStore) *Registry {
	return &Registry{store: s}
}

// Insert adds an entry expiring at expiry for locator. Safe for
// concurrent use.
func (r *Registry) Insert(expiry tai64.Timestamp, locator Locator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	heap.Push(&r.heap, &entry{expiry: expiry, locator: locator})
}

// Remove drops every entry for locator's key ahead of its natural expiry
// — used when a token is revoked before its lease would otherwise retire
// it. Returns the number of entries removed (ordinarily 0 or 1).
func (r *Registry) Remove(key []byte) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	kept := r.heap[:0]
	for _, e := range r.heap {
		if bytes.Equal(e.locator.Key, key) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	r.heap = kept
	heap.Init(&r.heap)
	return removed
}

// Len reports the number of entries currently registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.heap.Len()
}

// Tick inspects the earliest entry and, if its expiry has passed as of
// now, removes it from both the store and the registry. It processes at
// most one entry per call — callers drive a ticker loop to drain a batch
// of simultaneously-expired entries.
func (r *Registry) Tick(ctx context.Context, now tai64.Timestamp) (TickResult, error) {
	r.mu.Lock()
	if r.heap.Len() == 0 {
		r.mu.Unlock()
		return Empty, nil
	}
	earliest := r.heap[0]
	if !earliest.expiry.Before(now) && !earliest.expiry.Equal(now) {
		r.mu.Unlock()
		return Miss, nil
	}
	r.mu.Unlock()

	// The store call happens with the registry mutex released, per the
	// package's locking discipline: never hold the registry lock and make
	// a (potentially slow) store call at the same time.
	res, err := r.store.Remove(ctx, earliest.locator.Key)
	if err != nil {
		return MalformedOperation, fmt.Errorf("gc: failed to remove expired record: %w", err)
	}
	if res != store.ResultDeleted && res != store.ResultKeyNotFound {
		return MalformedOperation, fmt.Errorf("gc: unexpected store result %s removing expired record", res)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// The earliest entry may have been removed or reordered by a
	// concurrent Insert/Remove while the store call was in flight; only
	// pop if it's still at the front.
	if r.heap.Len() > 0 && bytes.Equal(r.heap[0].locator.Key, earliest.locator.Key) {
		heap.Pop(&r.heap)
	} else {
		r.removeByKeyLocked(earliest.locator.Key)
	}
	return Removed, nil
}

func (r *Registry) removeByKeyLocked(key []byte) {
	kept := r.heap[:0]
	for _, e := range r.heap {
		if bytes.Equal(e.locator.Key, key) {
			continue
		}
		kept = append(kept, e)
	}
	r.heap = kept
	heap.Init(&r.heap)
}

