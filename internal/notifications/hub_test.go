package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventuallyTimeout = time.Second
	testPollInterval      = 10 * time.Millisecond
)

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub()
	a, err := hub.Register("u1", nil)
	require.NoError(t, err)
	b, err := hub.Register("u2", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, hub.Count())

	hub.BroadcastAll(`{"type":"post_created"}`)
	assert.Equal(t, `{"type":"post_created"}`, string(<-a.Send))
	assert.Equal(t, `{"type":"post_created"}`, string(<-b.Send))

	hub.UnregisterClient(a)
	hub.UnregisterClient(a)
	assert.Equal(t, 1, hub.Count())

	require.NoError(t, hub.Shutdown(context.Background()))
	assert.Equal(t, 0, hub.Count())
}

func TestHub_PerViewerLimit(t *testing.T) {
	hub := NewHub()
	for i := 0; i < maxConnsPerViewer; i++ {
		_, err := hub.Register("u1", nil)
		require.NoError(t, err)
	}
	_, err := hub.Register("u1", nil)
	assert.Error(t, err)
	_, err = hub.Register("u2", nil)
	assert.NoError(t, err)
}

func TestClient_TrySendDropsWhenFull(t *testing.T) {
	hub := NewHub()
	c := &Client{Hub: hub, ViewerID: "u1", Send: make(chan []byte, 1)}

	c.TrySend([]byte("first"))
	c.TrySend([]byte("second"))
	assert.Equal(t, "first", string(<-c.Send))
	assert.Empty(t, c.Send)

	close(c.Send)
	assert.NotPanics(t, func() { c.TrySend([]byte("late")) })
}

func TestBroadcaster_LocalDelivery(t *testing.T) {
	hub := NewHub()
	client, err := hub.Register("u1", nil)
	require.NoError(t, err)

	b := NewBroadcaster(hub, NewNotifier(nil))
	b.Publish(context.Background(), EventPollVoted, map[string]string{"poll_id": "poll1"})

	var ev struct {
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(<-client.Send, &ev))
	assert.Equal(t, EventPollVoted, ev.Type)
	assert.Equal(t, "poll1", ev.Payload["poll_id"])
}

func TestBroadcaster_ThroughRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	hub := NewHub()
	client, err := hub.Register("u1", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	b := NewBroadcaster(hub, NewNotifier(rdb))
	require.NoError(t, b.Start(ctx))
	b.Publish(ctx, EventStoryCreated, map[string]string{"id": "s_1"})

	assert.Eventually(t, func() bool { return len(client.Send) == 1 }, testEventuallyTimeout, testPollInterval)
	assert.Contains(t, string(<-client.Send), EventStoryCreated)
	assert.Never(t, func() bool { return len(client.Send) > 0 }, 5*testPollInterval, testPollInterval)
}

func TestNilBroadcasterIsSafe(t *testing.T) {
	var b *Broadcaster
	assert.NotPanics(t, func() { b.Publish(context.Background(), EventPostCreated, nil) })
	assert.NoError(t, b.Start(context.Background()))
}
