package stats

import (
	"math"
	"time"
)

// Percentage returns part/whole*100, or 0 for an empty whole.
func Percentage(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// DaysBetween returns the whole number of days between two instants, rounded.
func DaysBetween(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Hours() / 24))
}
