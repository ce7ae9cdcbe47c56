package colorspace

import "math"

// Levels is a contrast stretch between two byte thresholds with a gamma
// curve applied to the stretched range. Build it once per run with
// NewLevels; Adjust is called for every pixel.
type Levels struct {
	min, max float64
	invGamma float64
}

// NewLevels normalizes the thresholds to [0, 1]. It assumes
// minLevel < maxLevel and gamma > 0.
func NewLevels(minLevel, maxLevel uint8, gamma float64) Levels {
	return Levels{
		min:      float64(minLevel) / 255,
		max:      float64(maxLevel) / 255,
		invGamma: 1 / gamma,
	}
}

// Adjust maps v onto the stretched range. Values at or below the low
// threshold become 0, values at or above the high threshold become 1.
func (l Levels) Adjust(v float64) float64 {
	switch {
	case v <= l.min:
		return 0
	case v >= l.max:
		return 1
	default:
		return math.Pow((v-l.min)/(l.max-l.min), l.invGamma)
	}
}

// AdjustLevel is the single-call form of Levels.Adjust.
func AdjustLevel(v float64, minLevel, maxLevel uint8, gamma float64) float64 {
	return NewLevels(minLevel, maxLevel, gamma).Adjust(v)
}
