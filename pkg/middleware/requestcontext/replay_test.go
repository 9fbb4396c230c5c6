package requestcontext

import (
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
)

func TestReplayCache(t *testing.T) {
	cache := newReplayCache()
	now := time.Unix(1_700_000_000, 0)
	key := chainhash.HashH([]byte("POST /v1/sale/buy"))
	other := chainhash.HashH([]byte("POST /v1/sale/deposit"))

	assert.True(t, cache.add(key, now.Add(time.Minute), now))
	assert.False(t, cache.add(key, now.Add(time.Minute), now.Add(30*time.Second)))
	assert.True(t, cache.add(other, now.Add(time.Minute), now.Add(30*time.Second)))

	// expired entries are dropped
	assert.True(t, cache.add(key, now.Add(3*time.Minute), now.Add(2*time.Minute)))
	assert.Len(t, cache.entries, 1)
}

func TestCallerMessage(t *testing.T) {
	message := CallerMessage("post", "/v1/sale/buy?x=1", 1700000000, []byte(`{}`))
	assert.Equal(t, "POST /v1/sale/buy?x=1\n1700000000\n44136fa355b3678a1146ad16f7e8649e94fb4fc21fe77e8310c060f61caaff8a", message)
}
