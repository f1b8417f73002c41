package analysis

import (
	"context"
	"sync"
	"time"
)

// CachedClient wraps a Client and memoizes TimeEstimate, which is a pure
// UI-guidance call and does not need to hit the analyzer on every request.
// Analyze is passed through untouched.
type CachedClient struct {
	Client

	ttl time.Duration

	mu        sync.Mutex
	estimate  time.Duration
	fetchedAt time.Time
}

// NewCachedClient wraps client with a TimeEstimate memo of the given TTL
func NewCachedClient(client Client, ttl time.Duration) *CachedClient {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedClient{Client: client, ttl: ttl}
}

func (c *CachedClient) TimeEstimate(ctx context.Context) (time.Duration, error) {
	c.mu.Lock()
	if !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < c.ttl {
		estimate := c.estimate
		c.mu.Unlock()
		return estimate, nil
	}
	c.mu.Unlock()

	estimate, err := c.Client.TimeEstimate(ctx)
	if err != nil {
		return estimate, err
	}

	c.mu.Lock()
	c.estimate = estimate
	c.fetchedAt = time.Now()
	c.mu.Unlock()
	return estimate, nil
}
