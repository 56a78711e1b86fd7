package notifications

import (
	"context"
	"encoding/json"
	"log"
)

// Event type constants prevent typos in event names.
const (
	EventPostCreated         = "post_created"
	EventPollCreated         = "poll_created"
	EventItemReactionUpdated = "item_reaction_updated"
	EventCommentCreated      = "comment_created"
	EventReplyCreated        = "reply_created"
	EventPollVoted           = "poll_voted"
	EventStoryCreated        = "story_created"
	EventProfileUpdated      = "profile_updated"
	EventMessagesDropped     = "messages_dropped"
)

// Event is the envelope written to websocket clients.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Broadcaster delivers events to local websocket clients. With Redis it goes
// through the notifier instead, and the hub receives it back from the
// subscription, so every instance sees each event exactly once.
type Broadcaster struct {
	hub      *Hub
	notifier *Notifier
}

func NewBroadcaster(hub *Hub, notifier *Notifier) *Broadcaster {
	return &Broadcaster{hub: hub, notifier: notifier}
}

// Publish marshals and delivers one event. Failures are logged, never returned:
// a missed live update does not undo the mutation that caused it.
func (b *Broadcaster) Publish(ctx context.Context, eventType string, payload any) {
	if b == nil {
		return
	}
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("failed to marshal %s event: %v", eventType, err)
		return
	}
	message := string(data)

	if b.notifier.Enabled() {
		err := b.notifier.PublishBroadcast(ctx, message)
		if err == nil {
			return
		}
		log.Printf("failed to publish %s broadcast event: %v", eventType, err)
	}
	if b.hub != nil {
		b.hub.BroadcastAll(message)
	}
}

// Start wires the Redis subscription into the hub.
func (b *Broadcaster) Start(ctx context.Context) error {
	if b == nil || b.hub == nil {
		return nil
	}
	return b.notifier.StartSubscriber(ctx, b.hub.BroadcastAll)
}
