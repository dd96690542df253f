package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// ttl bounds how long a cached threshold map survives without an
// explicit invalidation, in case an invalidation call is ever missed.
const ttl = 30 * time.Minute

// ThresholdCache fronts a fiscal year's resolved threshold map (code ->
// COP comparand, including the reserved uvt_value entry) with Redis, so
// repeated evaluations against the same fiscal year skip the threshold
// join. It must be invalidated on any Threshold write or rule-set
// publication for that fiscal year.
type ThresholdCache struct {
	client *redis.Client
}

// NewThresholdCache wraps a Redis client.
func NewThresholdCache(addr, password string, db int) *ThresholdCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &ThresholdCache{client: client}
}

func cacheKey(fiscalYearID string) string {
	return fmt.Sprintf("threshold_map:%s", fiscalYearID)
}

// Get returns the cached threshold map for fiscalYearID, or ok=false on
// a miss or any Redis error (a cache is best-effort; callers fall back
// to the repository on a miss).
func (c *ThresholdCache) Get(ctx context.Context, fiscalYearID string) (map[string]decimal.Decimal, bool) {
	raw, err := c.client.Get(ctx, cacheKey(fiscalYearID)).Bytes()
	if err != nil {
		return nil, false
	}

	var asStrings map[string]string
	if err := json.Unmarshal(raw, &asStrings); err != nil {
		return nil, false
	}

	out := make(map[string]decimal.Decimal, len(asStrings))
	for code, v := range asStrings {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, false
		}
		out[code] = d
	}
	return out, true
}

// Set stores the fiscal year's threshold map, serializing decimals as
// strings so repeated Get/Set round trips never lose precision.
func (c *ThresholdCache) Set(ctx context.Context, fiscalYearID string, thresholds map[string]decimal.Decimal) error {
	asStrings := make(map[string]string, len(thresholds))
	for code, v := range thresholds {
		asStrings[code] = v.String()
	}

	raw, err := json.Marshal(asStrings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(fiscalYearID), raw, ttl).Err()
}

// Invalidate drops the cached threshold map for fiscalYearID. Called
// after any Threshold write or rule-set publish affecting that year.
func (c *ThresholdCache) Invalidate(ctx context.Context, fiscalYearID string) error {
	return c.client.Del(ctx, cacheKey(fiscalYearID)).Err()
}
