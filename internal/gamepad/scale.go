package gamepad

import (
	"math"
	"strconv"
)

// Idle values reported by a centered stick.
const (
	MidAnalog  = 128
	MidDigital = 127
)

// AnalogXYToScratch maps a raw axis byte to [-100, 100] around mid.
// Values above mid map linearly onto (0, 100], values below onto [-100, 0),
// mid itself yields 0. negate flips the sign so that "up" is positive.
// No clamping is applied; inputs outside 0..255 give outputs outside the range.
func AnalogXYToScratch(value int, negate bool, mid int) float64 {
	var result float64

	if value > mid {
		result = float64(100*(value-mid)) / float64(255-mid)
	}
	if value < mid {
		result = -100 + float64(100*value)/float64(mid)
	}

	if negate {
		result *= -1
	}
	return result
}

// XYToAngle returns the stick direction in degrees, 0 being straight up and
// 90 to the right. A centered stick reports 90. Results can differ from a
// browser's Math.atan2 in the last bits of the mantissa.
func XYToAngle(x, y float64) float64 {
	if x == 0 && y == 0 {
		return 90
	}
	result := 180 * math.Atan2(x, y) / math.Pi
	if math.IsNaN(result) {
		return 90
	}
	return result
}

// FormatNumber renders v the way Scratch expects: shortest round-trip decimal,
// no exponent, negative zero as "0".
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
