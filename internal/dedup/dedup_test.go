package dedup

import (
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
)

func TestKeyIsOrderIndependent(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	a := solana.NewWallet().PublicKey()
	b := solana.NewWallet().PublicKey()

	k1 := Key(mint, []solana.PublicKey{a, b})
	k2 := Key(mint, []solana.PublicKey{b, a})
	assert.Equal(t, k1, k2)
}

func TestSetDropsRepeatedFireWithinWindow(t *testing.T) {
	s := New(time.Minute)
	clock := time.Now()
	s.now = func() time.Time { return clock }

	assert.False(t, s.Seen("k"), "first sighting is new")
	assert.True(t, s.Seen("k"), "second sighting within window is a duplicate")
}

func TestSetAllowsFireAgainAfterExpiry(t *testing.T) {
	s := New(time.Minute)
	clock := time.Now()
	s.now = func() time.Time { return clock }

	assert.False(t, s.Seen("k"))
	clock = clock.Add(2 * time.Minute)
	assert.False(t, s.Seen("k"), "expired entry is no longer a duplicate")
}
