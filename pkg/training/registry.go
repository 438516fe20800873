package training

import (
	"math"
	"sort"

	pkgerrors "github.com/pkg/errors"
)

// Code is the three-letter training type code sent by the tracker.
type Code string

const (
	CodeRunning  Code = "RUN"
	CodeWalking  Code = "WLK"
	CodeSwimming Code = "SWM"
)

// Kind describes a registered training type.
type Kind struct {
	Code Code
	Name string
	// Params lists the positional parameter names in constructor order.
	Params []string

	construct func(p []float64) (Training, error)
}

var registry = map[Code]Kind{
	CodeRunning: {
		Code:   CodeRunning,
		Name:   "Running",
		Params: []string{"action", "duration", "weight"},
		construct: func(p []float64) (Training, error) {
			action, err := count(p[0], "action")
			if err != nil {
				return nil, err
			}
			return NewRunning(action, p[1], p[2]), nil
		},
	},
	CodeWalking: {
		Code:   CodeWalking,
		Name:   "SportsWalking",
		Params: []string{"action", "duration", "weight", "height"},
		construct: func(p []float64) (Training, error) {
			action, err := count(p[0], "action")
			if err != nil {
				return nil, err
			}
			return NewSportsWalking(action, p[1], p[2], p[3]), nil
		},
	},
	CodeSwimming: {
		Code:   CodeSwimming,
		Name:   "Swimming",
		Params: []string{"action", "duration", "weight", "length_pool", "count_pool"},
		construct: func(p []float64) (Training, error) {
			action, err := count(p[0], "action")
			if err != nil {
				return nil, err
			}
			laps, err := count(p[4], "count_pool")
			if err != nil {
				return nil, err
			}
			return NewSwimming(action, p[1], p[2], p[3], laps), nil
		},
	},
}

// Lookup returns the registered kind for code.
func Lookup(code string) (Kind, bool) {
	k, ok := registry[Code(code)]
	return k, ok
}

// Kinds returns all registered kinds ordered by code.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for _, k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i].Code < kinds[j].Code
	})
	return kinds
}

// ReadPackage builds the training registered for code from positional sensor params.
func ReadPackage(code string, params []float64) (Training, error) {
	kind, ok := Lookup(code)
	if !ok {
		return nil, pkgerrors.Wrapf(ErrUnknownTraining, "type %q", code)
	}

	if len(params) != len(kind.Params) {
		return nil, pkgerrors.Wrapf(ErrInvalidParams, "%s expects %d params, got %d",
			kind.Code, len(kind.Params), len(params))
	}

	for i, v := range params {
		if !finite(v) {
			return nil, pkgerrors.Wrapf(ErrInvalidParams, "%s %s must be a finite number, got %v",
				kind.Code, kind.Params[i], v)
		}
	}

	return kind.construct(params)
}

// count converts a counter reading, which must be a non-negative whole number.
func count(v float64, name string) (int, error) {
	if v < 0 || v != math.Trunc(v) || v >= math.MaxInt {
		return 0, pkgerrors.Wrapf(ErrInvalidParams, "%s must be a non-negative integer, got %v", name, v)
	}
	return int(v), nil
}
