package dashboard

import (
	"fmt"
	"math"
	"strconv"
)

const (
	colorSaturation       = 70
	colorLightness        = 60
	flaggedColorLightness = 50
)

// GenerateColors returns n hsl() colors with hues spread evenly around the
// wheel: hue(i) = (i * 360 / n) mod 360.
func GenerateColors(n int) []string {
	return generatePalette(n, colorLightness)
}

// GenerateFlaggedColors is GenerateColors with the darker lightness used for
// profanity charts.
func GenerateFlaggedColors(n int) []string {
	return generatePalette(n, flaggedColorLightness)
}

func generatePalette(n, lightness int) []string {
	if n <= 0 {
		return []string{}
	}

	colors := make([]string, n)
	for i := range colors {
		hue := math.Mod(float64(i)*360/float64(n), 360)
		colors[i] = fmt.Sprintf("hsl(%s, %d%%, %d%%)",
			strconv.FormatFloat(hue, 'f', -1, 64), colorSaturation, lightness)
	}
	return colors
}
