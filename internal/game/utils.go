package game

import (
	"fmt"
	"math"
)

const radToDeg = 180 / math.Pi

// displayAngle folds an accumulated angle into [0, 2π) for display.
func displayAngle(a float64) float64 {
	return math.Mod(math.Abs(a), 2*math.Pi)
}

// formatAngle renders the overlay text, degrees first.
func formatAngle(a float64) string {
	w := displayAngle(a)
	return fmt.Sprintf("Angle: %.3f\nRads: %.3f", w*radToDeg, w)
}

// seconds converts a ticks-per-second rate to a per-tick time step.
func seconds(tps int) float64 {
	if tps <= 0 {
		return 0
	}
	return 1 / float64(tps)
}
