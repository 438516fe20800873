package training

const (
	runningCaloriesMeanSpeedMultiplier = 18
	runningCaloriesMeanSpeedShift      = 20
)

// Running is a run tracked by a step counter.
type Running struct {
	Base
}

func NewRunning(action int, duration, weight float64) *Running {
	return &Running{Base: newBase("Running", action, duration, weight)}
}

func (r *Running) SpentCalories() (float64, error) {
	speed, err := r.MeanSpeed()
	if err != nil {
		return 0, err
	}
	return (runningCaloriesMeanSpeedMultiplier*speed - runningCaloriesMeanSpeedShift) *
		r.Weight / mInKm * r.Duration * minInH, nil
}
