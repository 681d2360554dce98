package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatermillPublisherDeliversJSON(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, TopicPaymentRecorded)
	require.NoError(t, err)

	publisher := NewWatermillPublisher(pubSub, logger)
	event := NewEvent("created", "payment", 12, map[string]interface{}{"amount": 250.0})
	require.NoError(t, publisher.Publish(ctx, TopicPaymentRecorded, event))

	select {
	case msg := <-messages:
		var got Event
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, event.ID, got.ID)
		assert.Equal(t, "12", got.EntityID)
		assert.Equal(t, 250.0, got.Data["amount"])
		assert.Equal(t, "payment", msg.Metadata.Get("entity"))
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("message not delivered")
	}

	require.NoError(t, publisher.Close())
}

func TestMockEventPublisher(t *testing.T) {
	mock := NewMockEventPublisher(slog.Default())
	ctx := context.Background()

	require.NoError(t, mock.Publish(ctx, TopicRecordDeleted, NewEvent("deleted", "student", 1, nil)))
	published := mock.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, TopicRecordDeleted, published[0].Topic)

	boom := errors.New("broker down")
	mock.FailWith(boom)
	assert.ErrorIs(t, mock.Publish(ctx, TopicRecordDeleted, NewEvent("deleted", "student", 2, nil)), boom)
	assert.Len(t, mock.GetPublishedEvents(), 1)
}
