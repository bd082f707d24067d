package animation

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Easing maps linear progress in [0, 1] to eased progress. Every easing satisfies f(0) = 0 and f(1) = 1.
type Easing func(x float32) float32

// Linear returns x unchanged.
func Linear(x float32) float32 {
	return x
}

// EaseIn is a quadratic ease-in.
func EaseIn(x float32) float32 {
	return x * x
}

// EaseOut is a quadratic ease-out.
func EaseOut(x float32) float32 {
	return 1 - (1-x)*(1-x)
}

// EaseInOut is a cubic ease-in-out.
func EaseInOut(x float32) float32 {
	if x < 0.5 {
		return 4 * x * x * x
	}
	return 1 - math32.Pow(-2*x+2, 3)/2
}

// Smoothstep is the Hermite polynomial 3x² - 2x³.
func Smoothstep(x float32) float32 {
	return x * x * (3 - 2*x)
}

// Smootherstep is Perlin's 6x⁵ - 15x⁴ + 10x³, with zero first and second derivatives at both ends.
func Smootherstep(x float32) float32 {
	return x * x * x * (x*(x*6-15) + 10)
}

var easings = map[string]Easing{
	"linear":       Linear,
	"ease_in":      EaseIn,
	"ease_out":     EaseOut,
	"ease_in_out":  EaseInOut,
	"smoothstep":   Smoothstep,
	"smootherstep": Smootherstep,
}

// EasingByName looks up an easing function by its configuration name.
// Names are case-insensitive; "-" and "_" are interchangeable.
//
// Parameters:
//   - name: one of linear, ease_in, ease_out, ease_in_out, smoothstep, smootherstep
//
// Returns:
//   - Easing: the matching function
//   - error: an error if the name is unknown
func EasingByName(name string) (Easing, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	if e, ok := easings[key]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("unknown easing %q", name)
}
