package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventHubPublish(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()
	assert.Equal(t, 1, h.Subscribers())

	h.Publish(TrainingSummary, TrainingSummaryEvent{TrainingType: "Running", Calories: 699.75})

	ev := <-ch
	assert.Equal(t, TrainingSummary, ev.Name)

	payload, err := DecodeAs[TrainingSummaryEvent](ev)
	require.NoError(t, err)
	assert.Equal(t, "Running", payload.TrainingType)
	assert.InDelta(t, 699.75, payload.Calories, 1e-9)

	h.Unsubscribe(ch)
	_, ok := <-ch
	assert.False(t, ok)
	assert.Equal(t, 0, h.Subscribers())

	// Unsubscribing twice and publishing afterwards must be harmless.
	h.Unsubscribe(ch)
	h.Publish(TrainingFailure, TrainingFailureEvent{Type: "XYZ"})
}

func TestEventHubDropsForSlowSubscriber(t *testing.T) {
	h := NewEventHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	for i := 0; i < 100; i++ {
		h.Publish(TrainingFailure, TrainingFailureEvent{Type: "XYZ"})
	}
	assert.Len(t, ch, cap(ch))
}

func TestNilHubPublish(t *testing.T) {
	var h *EventHub
	assert.NotPanics(t, func() {
		h.Publish(TrainingSummary, nil)
	})
	assert.Equal(t, 0, h.Subscribers())
}

func TestDecodeAsEmpty(t *testing.T) {
	v, err := DecodeAs[TrainingFailureEvent](Event{Name: TrainingFailure})
	require.NoError(t, err)
	assert.Equal(t, TrainingFailureEvent{}, v)
}
