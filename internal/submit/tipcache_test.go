package submit

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type erroringTransport struct{}

func (erroringTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("tip floor endpoint unreachable")
}

func TestTipCacheFallsBackToDurableSampleOnFetchFailure(t *testing.T) {
	st := &fakeStore{}
	tc := NewTipCache(75, time.Minute, st)
	tc.httpClient.Transport = erroringTransport{}

	require.NoError(t, tc.durable.Write(context.Background(), tc.percentileKey(), 12345))

	got := tc.TipLamports(context.Background(), 999)
	assert.Equal(t, uint64(12345), got)
}

func TestTipCacheUsesCallerFallbackWhenNothingDurable(t *testing.T) {
	st := &fakeStore{}
	tc := NewTipCache(75, time.Minute, st)
	tc.httpClient.Transport = erroringTransport{}

	got := tc.TipLamports(context.Background(), 999)
	assert.Equal(t, uint64(999), got)
}
