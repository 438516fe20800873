package training

const (
	walkingCaloriesWeightMultiplier = 0.035
	walkingSpeedHeightMultiplier    = 0.029
)

// SportsWalking is a walk tracked by a step counter. Height is in cm.
type SportsWalking struct {
	Base
	Height float64
}

func NewSportsWalking(action int, duration, weight, height float64) *SportsWalking {
	return &SportsWalking{
		Base:   newBase("SportsWalking", action, duration, weight),
		Height: height,
	}
}

// SpentCalories floor-divides the squared speed by height before scaling it,
// so small speeds contribute nothing beyond the weight term.
func (w *SportsWalking) SpentCalories() (float64, error) {
	speed, err := w.MeanSpeed()
	if err != nil {
		return 0, err
	}

	ratio, err := floorDivide(speed*speed, w.Height)
	if err != nil {
		return 0, err
	}

	return (walkingCaloriesWeightMultiplier*w.Weight +
		ratio*walkingSpeedHeightMultiplier*w.Weight) * w.Duration * minInH, nil
}
