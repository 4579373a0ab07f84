package live

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drained(c <-chan struct{}) bool {
	select {
	case <-c:
		return true
	default:
		return false
	}
}

func TestPublishSignalsSubscribers(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("courts")
	defer sub.Cancel()

	hub.Publish("courts")
	require.True(t, drained(sub.C), "subscriber should receive a signal")
}

func TestPublishCoalescesPendingSignals(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("courts")
	defer sub.Cancel()

	hub.Publish("courts")
	hub.Publish("courts")
	hub.Publish("courts")

	assert.True(t, drained(sub.C), "one pending signal expected")
	assert.False(t, drained(sub.C), "signals should coalesce into one")
}

func TestPublishIsScopedToTopic(t *testing.T) {
	hub := NewHub()
	courts := hub.Subscribe("courts")
	offers := hub.Subscribe("offers")
	defer courts.Cancel()
	defer offers.Cancel()

	hub.Publish("offers")

	assert.False(t, drained(courts.C))
	assert.True(t, drained(offers.C))
}

func TestCancelStopsDelivery(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe("bookings")
	sub.Cancel()
	sub.Cancel()

	hub.Publish("bookings")
	assert.False(t, drained(sub.C))
}

func TestPublishWithoutSubscribers(t *testing.T) {
	hub := NewHub()
	assert.NotPanics(t, func() { hub.Publish("features") })
}
