package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingClient struct {
	Client
	calls int
}

func (c *countingClient) TimeEstimate(ctx context.Context) (time.Duration, error) {
	c.calls++
	return 30 * time.Second, nil
}

func TestCachedClientMemoizesTimeEstimate(t *testing.T) {
	inner := &countingClient{}
	cached := NewCachedClient(inner, time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		estimate, err := cached.TimeEstimate(ctx)
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, estimate)
	}

	assert.Equal(t, 1, inner.calls)
}

func TestCachedClientRefreshesAfterTTL(t *testing.T) {
	inner := &countingClient{}
	cached := NewCachedClient(inner, time.Millisecond)
	ctx := context.Background()

	_, err := cached.TimeEstimate(ctx)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = cached.TimeEstimate(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}
