package training

const (
	swimmingLenStep                  = 1.38
	swimmingCaloriesMeanSpeedShift   = 1.1
	swimmingCaloriesWeightMultiplier = 2
)

// Swimming is a pool swim. Action counts strokes, LengthPool is in meters.
type Swimming struct {
	Base
	LengthPool float64
	CountPool  int
}

func NewSwimming(action int, duration, weight, lengthPool float64, countPool int) *Swimming {
	b := newBase("Swimming", action, duration, weight)
	b.lenStep = swimmingLenStep
	return &Swimming{
		Base:       b,
		LengthPool: lengthPool,
		CountPool:  countPool,
	}
}

// MeanSpeed is derived from the pool length and lap count, not from Distance.
func (s *Swimming) MeanSpeed() (float64, error) {
	return divide(s.LengthPool*float64(s.CountPool)/mInKm, s.Duration)
}

func (s *Swimming) SpentCalories() (float64, error) {
	speed, err := s.MeanSpeed()
	if err != nil {
		return 0, err
	}
	return (speed + swimmingCaloriesMeanSpeedShift) * swimmingCaloriesWeightMultiplier * s.Weight, nil
}
