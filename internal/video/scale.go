package video

import (
	"os"
	"strconv"
)

// scaleEnv lists environment variables consulted before the display DPI.
var scaleEnv = []string{"GOSDL_SCALE", "GTK_SCALE", "GDK_SCALE", "QT_SCALE_FACTOR"}

func calculateScale(dpi float32, getenv func(string) string) float32 {
	for _, name := range scaleEnv {
		if scale := envScale(getenv(name)); scale > 0 {
			return roundScale(scale)
		}
	}
	if dpi > 0 {
		return roundScale(dpi / 96.0)
	}
	return 1.0
}

// roundScale snaps to a common scale factor when within 0.1 of one and
// otherwise clamps to [0.5, 4].
func roundScale(scale float32) float32 {
	commonScales := []float32{0.75, 1.0, 1.25, 1.5, 1.75, 2.0, 2.5, 3.0, 4.0}

	bestScale := float32(1.0)
	minDiff := float32(1000.0)
	for _, cs := range commonScales {
		diff := abs(scale - cs)
		if diff < minDiff {
			minDiff = diff
			bestScale = cs
		}
	}
	if minDiff < 0.1 {
		return bestScale
	}

	if scale < 0.5 {
		return 0.5
	} else if scale > 4.0 {
		return 4.0
	}
	return scale
}

func envScale(val string) float32 {
	if val == "" {
		return 0
	}
	scale, err := strconv.ParseFloat(val, 32)
	if err != nil || scale <= 0 {
		return 0
	}
	return float32(scale)
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

var getenv = os.Getenv
