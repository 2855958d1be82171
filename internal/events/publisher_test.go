package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_FillsEnvelope(t *testing.T) {
	event := New(TypeGuessSubmitted, GuessSubmittedData{GuessID: 1, GuesserID: 2, TargetID: 3, Correct: true})

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, TypeGuessSubmitted, event.Type)
	assert.Equal(t, Source, event.Source)
	assert.Equal(t, Version, event.Version)
	assert.False(t, event.Timestamp.IsZero())
}

func TestWatermillPublisher_GoChannelRoundTrip(t *testing.T) {
	logger := testLogger()
	pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 8}, watermill.NewSlogLogger(logger))
	publisher := NewWatermillPublisher(pubsub, "masq.events", logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubsub.Subscribe(ctx, "masq.events")
	require.NoError(t, err)

	event := New(TypeMessageSent, MessageSentData{MessageID: 9, SenderID: 1, ReceiverID: 2})
	require.NoError(t, publisher.Publish(ctx, event))

	select {
	case msg := <-messages:
		msg.Ack()
		assert.Equal(t, TypeMessageSent, msg.Metadata.Get("event_type"))

		var got Event
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, Source, got.Source)
		assert.Equal(t, Version, got.Version)

		data, ok := got.Data.(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(9), data["message_id"])
	case <-time.After(5 * time.Second):
		t.Fatal("no event received on the topic")
	}

	require.NoError(t, publisher.Close())
}

func TestMockEventPublisher_RecordsAndClears(t *testing.T) {
	mock := NewMockEventPublisher(testLogger())
	ctx := context.Background()

	require.NoError(t, mock.Publish(ctx, New(TypeUserRegistered, UserRegisteredData{UserID: 1, Username: "ana"})))
	require.NoError(t, mock.Publish(ctx, New(TypeMessagesRead, MessagesReadData{SenderID: 1, ReceiverID: 2})))

	recorded := mock.GetPublishedEvents()
	require.Len(t, recorded, 2)
	assert.Equal(t, TypeUserRegistered, recorded[0].Type)
	assert.Equal(t, TypeMessagesRead, recorded[1].Type)

	mock.ClearEvents()
	assert.Empty(t, mock.GetPublishedEvents())
}
