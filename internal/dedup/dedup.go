// Package dedup implements the keyed TTL set that stops the evaluator
// from firing twice on the same opportunity within its cooldown window
// (spec §4.6, §5; Open Question decision (b)).
package dedup

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
)

// Key builds the deduplicator key committed to by this implementation:
// the minor mint plus the sorted set of participating pool addresses, so
// the same opportunity re-derived with pools in a different order still
// collides.
func Key(minorMint solana.PublicKey, pools []solana.PublicKey) string {
	addrs := make([]string, len(pools))
	for i, p := range pools {
		addrs[i] = p.String()
	}
	sort.Strings(addrs)
	return minorMint.String() + "|" + strings.Join(addrs, ",")
}

// Set is a keyed TTL set: Seen marks a key as fired and reports whether it
// was already seen within the window; entries expire and are swept lazily
// on access.
type Set struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]time.Time
	now     func() time.Time
}

// New builds a Set with the given cooldown window.
func New(ttl time.Duration) *Set {
	return &Set{
		ttl:     ttl,
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Seen reports whether key was already recorded within the TTL window. If
// not, it records key as seen (starting a fresh window) and returns false.
func (s *Set) Seen(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if expiresAt, ok := s.entries[key]; ok && now.Before(expiresAt) {
		return true
	}

	s.entries[key] = now.Add(s.ttl)
	s.sweepLocked(now)
	return false
}

// sweepLocked drops expired entries. Called under mu on every Seen so the
// map never grows unbounded between accesses.
func (s *Set) sweepLocked(now time.Time) {
	for k, expiresAt := range s.entries {
		if now.After(expiresAt) {
			delete(s.entries, k)
		}
	}
}

// Len reports the current number of tracked (possibly expired) keys,
// useful for tests and metrics.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
