// internal/adapter/cache/redis.go

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"

	"chezvous/internal/domain/report"
)

// DefaultTTL is how long a cached report stays valid when no TTL is
// configured.
const DefaultTTL = 24 * time.Hour

// ReportCache stores completed neighborhood reports in Redis so repeat
// lookups of the same address skip every external call.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a new report cache
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &ReportCache{
		client: client,
		ttl:    ttl,
	}
}

// ReportKey generates a deterministic cache key from the normalized address.
func ReportKey(address string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(address), " "))
	hash := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("report:v1:%x", hash[:8])
}

// Get retrieves a cached report. A cache miss returns (nil, nil).
func (c *ReportCache) Get(ctx context.Context, key string) (*report.NeighborhoodReport, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, eris.Wrap(err, "cache: get report")
	}

	var r report.NeighborhoodReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, eris.Wrap(err, "cache: unmarshal cached report")
	}

	return &r, nil
}

// Set caches a report under the configured TTL.
func (c *ReportCache) Set(ctx context.Context, key string, r *report.NeighborhoodReport) error {
	data, err := json.Marshal(r)
	if err != nil {
		return eris.Wrap(err, "cache: marshal report")
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return eris.Wrap(err, "cache: set report")
	}

	return nil
}

// Delete removes a cached report.
func (c *ReportCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return eris.Wrap(err, "cache: delete report")
	}
	return nil
}

// HealthCheck pings Redis.
func (c *ReportCache) HealthCheck(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return eris.Wrap(err, "cache: redis ping failed")
	}
	return nil
}
