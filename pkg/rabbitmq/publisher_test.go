package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChannel struct {
	publishFn func(ctx context.Context, exchange, key string, msg amqp.Publishing) error
	closed    bool
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	return m.publishFn(ctx, exchange, key, msg)
}

func (m *mockChannel) Close() error {
	m.closed = true
	return nil
}

func newTestPublisher(ch channel) *Publisher {
	return &Publisher{
		channel: ch,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) },
	}
}

func TestPublish_Success(t *testing.T) {
	var (
		gotExchange, gotKey string
		gotMsg              amqp.Publishing
	)
	ch := &mockChannel{
		publishFn: func(ctx context.Context, exchange, key string, msg amqp.Publishing) error {
			gotExchange, gotKey, gotMsg = exchange, key, msg
			return nil
		},
	}

	err := newTestPublisher(ch).Publish(context.Background(), "room.checked_out", map[string]int{"roomId": 4})

	require.NoError(t, err)
	assert.Equal(t, ExchangeName, gotExchange)
	assert.Equal(t, "room.checked_out", gotKey)
	assert.Equal(t, "application/json", gotMsg.ContentType)
	assert.NotEmpty(t, gotMsg.MessageId)
	assert.Equal(t, "room.checked_out", gotMsg.Type)

	var body map[string]int
	require.NoError(t, json.Unmarshal(gotMsg.Body, &body))
	assert.Equal(t, 4, body["roomId"])
}

func TestPublish_UniqueMessageIDs(t *testing.T) {
	ids := map[string]bool{}
	ch := &mockChannel{
		publishFn: func(_ context.Context, _, _ string, msg amqp.Publishing) error {
			ids[msg.MessageId] = true
			return nil
		},
	}
	p := newTestPublisher(ch)

	for i := 0; i < 3; i++ {
		require.NoError(t, p.Publish(context.Background(), "booking.created", i))
	}

	assert.Len(t, ids, 3)
}

func TestPublish_ChannelError(t *testing.T) {
	ch := &mockChannel{
		publishFn: func(context.Context, string, string, amqp.Publishing) error {
			return errors.New("channel closed")
		},
	}

	err := newTestPublisher(ch).Publish(context.Background(), "booking.created", "x")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}

func TestPublish_MarshalError(t *testing.T) {
	ch := &mockChannel{
		publishFn: func(context.Context, string, string, amqp.Publishing) error {
			t.Fatal("should not publish")
			return nil
		},
	}

	err := newTestPublisher(ch).Publish(context.Background(), "booking.created", make(chan int))

	assert.Error(t, err)
}

func TestClose_ClosesChannel(t *testing.T) {
	ch := &mockChannel{}

	newTestPublisher(ch).Close()

	assert.True(t, ch.closed)
}
