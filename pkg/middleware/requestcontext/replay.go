package requestcontext

import (
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const replayPruneInterval = time.Second

// replayCache remembers signed requests until their signing time falls out of the accepted window.
// TODO: keep seen requests in postgres so replicas behind one load balancer share them.
type replayCache struct {
	mu        sync.Mutex
	entries   map[chainhash.Hash]time.Time
	lastPrune time.Time
}

func newReplayCache() *replayCache {
	return &replayCache{entries: make(map[chainhash.Hash]time.Time)}
}

// add records key until expiresAt. It returns false if key is already recorded.
func (r *replayCache) add(key chainhash.Hash, expiresAt time.Time, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if now.Sub(r.lastPrune) >= replayPruneInterval {
		for k, exp := range r.entries {
			if !exp.After(now) {
				delete(r.entries, k)
			}
		}
		r.lastPrune = now
	}

	if exp, ok := r.entries[key]; ok && exp.After(now) {
		return false
	}
	r.entries[key] = expiresAt
	return true
}
