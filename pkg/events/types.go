package events

import "encoding/json"

// Event name constants
const (
	TrainingSummary = "training.summary"
	TrainingFailure = "training.failure"
)

// Event is a generic SSE event from daemon.
type Event struct {
	Name string          // SSE event name
	Data json.RawMessage // Raw JSON payload
}

// TrainingSummaryEvent is the typed payload for training.summary.
type TrainingSummaryEvent struct {
	RequestID    string  `json:"requestId"`
	TrainingType string  `json:"trainingType"`
	Duration     float64 `json:"duration"`
	Distance     float64 `json:"distance"`
	Speed        float64 `json:"speed"`
	Calories     float64 `json:"calories"`
	Ts           int64   `json:"ts"`
}

// TrainingFailureEvent is the typed payload for training.failure.
type TrainingFailureEvent struct {
	RequestID string `json:"requestId"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Ts        int64  `json:"ts"`
}

// DecodeAs decodes the event payload into the caller-specified generic type T.
// It ignores the event name. If Data is empty, it returns the zero value of T
// with a nil error.
//
// Example:
//
//	payload, err := events.DecodeAs[events.TrainingSummaryEvent](ev)
//	if err != nil { /* handle */ }
//	fmt.Println(payload.TrainingType, payload.Calories)
func DecodeAs[T any](e Event) (T, error) {
	var zero T
	if len(e.Data) == 0 {
		return zero, nil
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, err
	}
	return v, nil
}
