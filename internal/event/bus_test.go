package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicMatches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{TopicBufferChanged, TopicBufferChanged, true},
		{TopicPaletteOpened, "palette.*", true},
		{TopicBufferChanged, "palette.*", false},
		{TopicDocumentSaved, "*", true},
		{"a.b.c", "a.*", false},
		{"a.b.c", "a.*.c", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.topic.Matches(tt.pattern), "%s ~ %s", tt.topic, tt.pattern)
	}
}

func TestBusDeliversInPriorityOrder(t *testing.T) {
	bus := NewBus()
	var order []string
	record := func(name string) HandlerFunc {
		return func(context.Context, Topic, any) error {
			order = append(order, name)
			return nil
		}
	}

	_, err := bus.Subscribe(TopicBufferChanged, record("low"), WithPriority(PriorityLow))
	require.NoError(t, err)
	_, err = bus.Subscribe("buffer.*", record("normal"))
	require.NoError(t, err)
	_, err = bus.Subscribe("*", record("high"), WithPriority(PriorityHigh))
	require.NoError(t, err)
	_, err = bus.Subscribe(TopicPaletteOpened, record("other"))
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), TopicBufferChanged, BufferChanged{Source: "test"}))
	assert.Equal(t, []string{"high", "normal", "low"}, order)
	assert.Equal(t, uint64(1), bus.Published())
}

func TestBusPayload(t *testing.T) {
	bus := NewBus()
	var got BufferChanged
	_, err := bus.Subscribe(TopicBufferChanged, func(_ context.Context, _ Topic, payload any) error {
		got = payload.(BufferChanged)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, bus.Publish(context.Background(), TopicBufferChanged, BufferChanged{Source: "autoformat", Markup: "<p>x</p>"}))
	assert.Equal(t, "autoformat", got.Source)
	assert.Equal(t, "<p>x</p>", got.Markup)
}

func TestBusErrorsAndPanics(t *testing.T) {
	bus := NewBus()
	boom := errors.New("boom")
	ran := false

	_, _ = bus.Subscribe("*", func(context.Context, Topic, any) error { return boom })
	_, _ = bus.Subscribe("*", func(context.Context, Topic, any) error { panic("bad handler") })
	_, _ = bus.Subscribe("*", func(context.Context, Topic, any) error { ran = true; return nil })

	err := bus.Publish(context.Background(), TopicDocumentSaved, nil)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, ErrHandlerPanic)
	assert.True(t, ran, "later handlers still run")
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0
	sub, err := bus.Subscribe(TopicBufferChanged, func(context.Context, Topic, any) error { calls++; return nil })
	require.NoError(t, err)

	assert.True(t, bus.Unsubscribe(sub))
	assert.False(t, bus.Unsubscribe(sub))
	require.NoError(t, bus.Publish(context.Background(), TopicBufferChanged, nil))
	assert.Zero(t, calls)
}

func TestBusValidation(t *testing.T) {
	bus := NewBus()
	_, err := bus.Subscribe("", func(context.Context, Topic, any) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidTopic)
	_, err = bus.Subscribe("x", nil)
	assert.ErrorIs(t, err, ErrNilHandler)
	assert.ErrorIs(t, bus.Publish(context.Background(), "", nil), ErrInvalidTopic)
}
