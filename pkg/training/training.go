// Package training computes workout statistics from raw fitness tracker
// sensor readings.
package training

import (
	"errors"
	"math"

	pkgerrors "github.com/pkg/errors"
)

const (
	lenStep = 0.65
	mInKm   = 1000
	minInH  = 60
)

var (
	// ErrUnknownTraining is returned when a package carries an unsupported training type code.
	ErrUnknownTraining = errors.New("unknown training type")

	// ErrInvalidParams is returned when sensor parameters do not fit the training constructor.
	ErrInvalidParams = errors.New("invalid training parameters")

	// ErrSensorFault is returned when sensor data leads to a division by zero
	// or to a result that is not a finite number.
	ErrSensorFault = errors.New("sensor fault")

	// ErrCaloriesUnavailable is the panic value of SpentCalories on a bare Base.
	ErrCaloriesUnavailable = errors.New("calorie calculation is unavailable")
)

// Training is implemented by every workout kind.
type Training interface {
	// Name is the display name used in the training info message.
	Name() string
	// Hours is the training duration in hours.
	Hours() float64
	// Distance in km.
	Distance() float64
	// MeanSpeed in km/h.
	MeanSpeed() (float64, error)
	// SpentCalories in kcal.
	SpentCalories() (float64, error)
}

// Base holds the readings shared by all trainings and the generic formulas.
// It is meant to be embedded; a bare Base cannot compute calories.
type Base struct {
	Action   int
	Duration float64
	Weight   float64

	name    string
	lenStep float64
}

func newBase(name string, action int, duration, weight float64) Base {
	return Base{
		Action:   action,
		Duration: duration,
		Weight:   weight,
		name:     name,
		lenStep:  lenStep,
	}
}

func (b *Base) Name() string {
	return b.name
}

func (b *Base) Hours() float64 {
	return b.Duration
}

func (b *Base) Distance() float64 {
	return float64(b.Action) * b.lenStep / mInKm
}

func (b *Base) MeanSpeed() (float64, error) {
	return divide(b.Distance(), b.Duration)
}

func (b *Base) SpentCalories() (float64, error) {
	panic(ErrCaloriesUnavailable)
}

// ShowTrainingInfo computes all statistics of t and returns them as an InfoMessage.
func ShowTrainingInfo(t Training) (InfoMessage, error) {
	speed, err := t.MeanSpeed()
	if err != nil {
		return InfoMessage{}, err
	}

	calories, err := t.SpentCalories()
	if err != nil {
		return InfoMessage{}, err
	}
	if !finite(calories) {
		return InfoMessage{}, pkgerrors.Wrapf(ErrSensorFault, "%s calories overflow", t.Name())
	}

	return InfoMessage{
		TrainingType: t.Name(),
		Duration:     t.Hours(),
		Distance:     t.Distance(),
		Speed:        speed,
		Calories:     calories,
	}, nil
}

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrSensorFault
	}
	q := a / b
	if !finite(q) {
		return 0, pkgerrors.Wrapf(ErrSensorFault, "%v / %v is not finite", a, b)
	}
	return q, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// floorDivide divides a by b rounding the quotient toward negative infinity.
// The quotient is derived from fmod so results match floating-point floor
// division exactly, including cases where a/b rounds up to an integer.
func floorDivide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrSensorFault
	}
	if !finite(a / b) {
		return 0, pkgerrors.Wrapf(ErrSensorFault, "%v // %v is not finite", a, b)
	}

	mod := math.Mod(a, b)
	div := (a - mod) / b
	if mod != 0 && (b < 0) != (mod < 0) {
		div -= 1.0
	}

	if div == 0 {
		return math.Copysign(0, a/b), nil
	}

	floor := math.Floor(div)
	if div-floor > 0.5 {
		floor += 1.0
	}
	return floor, nil
}
