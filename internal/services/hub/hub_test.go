package hub

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/simeon-code254/matobev-apps/internal/models"
)

func testCard(playerID string) *models.PlayerCard {
	return &models.PlayerCard{
		PlayerID:      playerID,
		OverallRating: 80,
		LastUpdated:   time.Now().UTC(),
	}
}

func TestHub_PublishReachesAllSubscribers(t *testing.T) {
	h := New()

	var got1, got2 []string
	h.Subscribe(func(playerID string, card *models.PlayerCard) {
		got1 = append(got1, playerID)
	})
	h.Subscribe(func(playerID string, card *models.PlayerCard) {
		got2 = append(got2, playerID)
	})

	h.Publish("player-1", testCard("player-1"))

	assert.Equal(t, []string{"player-1"}, got1)
	assert.Equal(t, []string{"player-1"}, got2)
}

func TestHub_Unsubscribe(t *testing.T) {
	h := New()

	calls := 0
	token := h.Subscribe(func(playerID string, card *models.PlayerCard) {
		calls++
	})

	h.Publish("player-1", testCard("player-1"))
	h.Unsubscribe(token)
	h.Publish("player-1", testCard("player-1"))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, h.Len())

	// Unknown token is a no-op
	h.Unsubscribe(999)
}

func TestHub_PanickingSubscriberDoesNotBlockOthers(t *testing.T) {
	h := New()

	h.Subscribe(func(playerID string, card *models.PlayerCard) {
		panic("subscriber bug")
	})

	var got *models.PlayerCard
	h.Subscribe(func(playerID string, card *models.PlayerCard) {
		got = card
	})

	assert.NotPanics(t, func() {
		h.Publish("player-1", testCard("player-1"))
	})
	assert.NotNil(t, got)
	assert.Equal(t, "player-1", got.PlayerID)
}

func TestHub_LateSubscriberMissesEarlierPublish(t *testing.T) {
	h := New()

	h.Publish("player-1", testCard("player-1"))

	calls := 0
	h.Subscribe(func(playerID string, card *models.PlayerCard) {
		calls++
	})

	// No replay of earlier events
	assert.Equal(t, 0, calls)

	h.Publish("player-1", testCard("player-1"))
	assert.Equal(t, 1, calls)
}

func TestHub_ConcurrentPublishAndSubscribe(t *testing.T) {
	h := New()

	var mu sync.Mutex
	seen := 0
	h.Subscribe(func(playerID string, card *models.PlayerCard) {
		mu.Lock()
		seen++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			h.Publish("player-1", testCard("player-1"))
		}()
		go func() {
			defer wg.Done()
			token := h.Subscribe(func(string, *models.PlayerCard) {})
			h.Unsubscribe(token)
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, seen)
}
