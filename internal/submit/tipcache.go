package submit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/solarbx/mevcore/internal/cache"
	"github.com/solarbx/mevcore/internal/store"
)

// tipFloorCacheType namespaces the durable copy of the last-known tip
// floor in the kv_cache table, so a restart has a real sample to fall back
// on before the first live fetch from tipFloorEndpoint completes.
const tipFloorCacheType = "tip_floor_lamports"

// tipFloorEndpoint is Jito's public bundle tip-floor stats endpoint. The
// jito-go-rpc client we already depend on for SendBundle/GetRandomTipAccount
// does not expose tip-floor percentiles, so this one read-only GET is
// issued with net/http directly rather than pulling in a second HTTP
// client library for a single call.
const tipFloorEndpoint = "https://bundles.jito.wtf/api/v1/bundles/tip_floor"

type tipFloorStats struct {
	LandedTips25thPercentile float64 `json:"landed_tips_25th_percentile"`
	LandedTips50thPercentile float64 `json:"landed_tips_50th_percentile"`
	LandedTips75thPercentile float64 `json:"landed_tips_75th_percentile"`
	LandedTips95thPercentile float64 `json:"landed_tips_95th_percentile"`
	LandedTips99thPercentile float64 `json:"landed_tips_99th_percentile"`
	EMALandedTips50thPercentile float64 `json:"ema_landed_tips_50th_percentile"`
}

func (s tipFloorStats) atPercentile(p int) float64 {
	switch {
	case p >= 99:
		return s.LandedTips99thPercentile
	case p >= 95:
		return s.LandedTips95thPercentile
	case p >= 75:
		return s.LandedTips75thPercentile
	case p >= 50:
		return s.LandedTips50thPercentile
	default:
		return s.LandedTips25thPercentile
	}
}

const lamportsPerSOL = 1_000_000_000

// TipCache is a single-key TTL cache over the current bundle-tip
// percentile, refreshed lazily every interval (spec §4.7: "a freshly
// cached bundle-tip percentile ... refreshed on a 30-second periodic
// tick").
type TipCache struct {
	percentile int
	httpClient *http.Client
	cache      *cache.TTL[int, uint64]
	durable    *store.KVAdapter[uint64]
}

// NewTipCache builds a TipCache that serves the given percentile,
// refreshing from tipFloorEndpoint at most once per refresh interval. kv is
// the durable kv_cache table; a process restart reads the last-known tip
// floor back from it instead of going straight to the caller's fallback.
func NewTipCache(percentile int, refresh time.Duration, kv store.KVCache) *TipCache {
	tc := &TipCache{
		percentile: percentile,
		httpClient: &http.Client{Timeout: 2 * time.Second},
		durable:    store.NewKVAdapter[uint64](kv, tipFloorCacheType, 10*refresh),
	}
	tc.cache = cache.NewTTL[int, uint64](refresh, tc.load)
	return tc
}

func (tc *TipCache) load(ctx context.Context, _ int) (uint64, bool, error) {
	lamports, err := tc.fetch(ctx)
	if err != nil {
		return 0, false, err
	}
	// A durable write failure should not fail the live fetch: the fresh
	// sample is still good for this process, just not for the next restart.
	_ = tc.durable.Write(ctx, tc.percentileKey(), lamports)
	return lamports, true, nil
}

func (tc *TipCache) fetch(ctx context.Context) (uint64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tipFloorEndpoint, nil)
	if err != nil {
		return 0, err
	}
	resp, err := tc.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("tip floor endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	var stats []tipFloorStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return 0, err
	}
	if len(stats) == 0 {
		return 0, fmt.Errorf("tip floor endpoint returned no samples")
	}

	solAmount := stats[0].atPercentile(tc.percentile)
	return uint64(solAmount * lamportsPerSOL), nil
}

func (tc *TipCache) percentileKey() string {
	return fmt.Sprintf("p%d", tc.percentile)
}

// TipLamports returns the current tip-per-bundle in lamports, fetching a
// fresh sample if the cached one has expired. On fetch failure it falls
// back to the last durably-persisted sample, then to fallbackLamports,
// rather than blocking the fire stage.
func (tc *TipCache) TipLamports(ctx context.Context, fallbackLamports uint64) uint64 {
	v, err := tc.cache.GetOrLoad(ctx, tc.percentile)
	if err == nil {
		return v
	}
	if durable, found, durableErr := tc.durable.Read(ctx, tc.percentileKey()); durableErr == nil && found {
		return durable
	}
	return fallbackLamports
}
