package types

import "github.com/charlie0129/ftracker/pkg/training"

// These structs are shared between the daemon and client packages.

// WorkoutKind describes a supported training type.
type WorkoutKind struct {
	Code   string   `json:"code"`
	Name   string   `json:"name"`
	Params []string `json:"params"`
}

// SummaryResponse is returned by POST /summary.
type SummaryResponse struct {
	training.InfoMessage
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}

// ErrorResponse carries the same user-facing text the CLI prints.
type ErrorResponse struct {
	Error string `json:"error"`
}
