package utils

import (
	"fmt"
	"math"
	"strconv"
)

// Placeholder is printed for nutrition values the menu does not publish.
const Placeholder = "—"

// FormatNumber prints a nutrition value without trailing zeros.
// Example: 12 -> "12", 0.5 -> "0.5"
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatAmount prints an optional value with its unit, or the placeholder.
// Example: 12, "g" -> "12g"; nil -> Placeholder
func FormatAmount(v *float64, suffix string) string {
	if v == nil {
		return Placeholder
	}
	return FormatNumber(*v) + suffix
}

// RoundedRatio is calories per gram of protein rounded to the nearest whole
// number. The second result is false when protein is zero or the ratio does
// not fit in an int.
func RoundedRatio(calories, protein float64) (int, bool) {
	if protein == 0 {
		return 0, false
	}
	r := math.Round(calories / protein)
	if math.IsInf(r, 0) || math.IsNaN(r) || math.Abs(r) >= float64(math.MaxInt) {
		return 0, false
	}
	return int(r), true
}

// FormatRatio prints a calorie:protein ratio such as "12:1".
func FormatRatio(calories, protein float64) string {
	r, ok := RoundedRatio(calories, protein)
	if !ok {
		return Placeholder
	}
	return fmt.Sprintf("%d:1", r)
}

// FormatRank prints a zero-based rank index as a two digit position.
// Example: 0 -> "01", 11 -> "12"
func FormatRank(index int) string {
	return fmt.Sprintf("%02d", index+1)
}
