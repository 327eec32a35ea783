package scoring

import (
	"math"
	"time"
)

// MinutesBetween returns the absolute difference between two instants in minutes,
// at millisecond resolution.
func MinutesBetween(a, b time.Time) float64 {
	return math.Abs(float64(a.UnixMilli()-b.UnixMilli())) / float64(time.Minute/time.Millisecond)
}
