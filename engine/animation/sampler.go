package animation

import (
	"errors"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrTooFewKeys is returned when a sampler is built from fewer keys than it needs.
var ErrTooFewKeys = errors.New("animation: too few keys")

// Lerper is implemented by values that interpolate toward another value of the same type.
// camera.Pose and camera.PerspectiveProjection both satisfy it.
type Lerper[T any] interface {
	Lerp(other T, amount float32) T
}

// Sampler maps normalized progress in [0, 1] to a value.
type Sampler[T any] interface {
	// Sample returns the value at progress v.
	//
	// Parameters:
	//   - v: normalized progress
	//
	// Returns:
	//   - T: the sampled value
	Sample(v float32) T
}

// SamplerFunc adapts a plain function to the Sampler interface.
type SamplerFunc[T any] func(v float32) T

// Sample calls f(v).
func (f SamplerFunc[T]) Sample(v float32) T {
	return f(v)
}

var _ Sampler[float32] = SamplerFunc[float32](nil)

// Transition eases between two values.
type Transition[T Lerper[T]] struct {
	From   T
	To     T
	Easing Easing
}

// NewTransition creates a Transition. A nil easing is treated as Linear.
//
// Parameters:
//   - from: the value at progress 0
//   - to: the value at progress 1
//   - easing: the easing applied to progress
//
// Returns:
//   - *Transition[T]: the transition
func NewTransition[T Lerper[T]](from, to T, easing Easing) *Transition[T] {
	if easing == nil {
		easing = Linear
	}
	return &Transition[T]{From: from, To: to, Easing: easing}
}

// Sample returns From.Lerp(To, Easing(v)) with v clamped to [0, 1].
func (t *Transition[T]) Sample(v float32) T {
	return t.From.Lerp(t.To, t.Easing(mgl32.Clamp(v, 0, 1)))
}

// Key is a control point of a Spline. Easing shapes the segment that starts at this key.
type Key[T any] struct {
	Time   float32
	Value  T
	Easing Easing
}

// Spline interpolates piecewise between keys sorted by time.
// Sampling before the first key or after the last returns the end value.
type Spline[T Lerper[T]] struct {
	keys []Key[T]
}

// NewSpline creates a Spline from keys. Keys are sorted by Time; nil easings become Linear.
//
// Parameters:
//   - keys: at least one control point
//
// Returns:
//   - *Spline[T]: the spline
//   - error: ErrTooFewKeys if keys is empty
func NewSpline[T Lerper[T]](keys ...Key[T]) (*Spline[T], error) {
	if len(keys) == 0 {
		return nil, ErrTooFewKeys
	}
	sorted := make([]Key[T], len(keys))
	copy(sorted, keys)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	for i := range sorted {
		if sorted[i].Easing == nil {
			sorted[i].Easing = Linear
		}
	}
	return &Spline[T]{keys: sorted}, nil
}

// Len returns the number of keys.
func (s *Spline[T]) Len() int {
	return len(s.keys)
}

// Sample returns the interpolated value at time v.
func (s *Spline[T]) Sample(v float32) T {
	first, last := s.keys[0], s.keys[len(s.keys)-1]
	if v <= first.Time {
		return first.Value
	}
	if v >= last.Time {
		return last.Value
	}

	// Index of the first key strictly after v; v lies in [keys[i-1], keys[i]).
	i := sort.Search(len(s.keys), func(i int) bool { return s.keys[i].Time > v })
	a, b := s.keys[i-1], s.keys[i]
	span := b.Time - a.Time
	if span <= 0 {
		return b.Value
	}
	return a.Value.Lerp(b.Value, a.Easing((v-a.Time)/span))
}
