package animation

import (
	"sync"
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type animationImpl[T any] struct {
	mu *sync.Mutex

	duration float32 // seconds
	timeLeft float32 // seconds
	looping  bool
	sampler  Sampler[T]
}

// Animation plays a Sampler over a fixed duration.
// Time counts down from the duration; progress is 1 - timeLeft/duration.
// A looping animation wraps its remaining time and never reports Done.
type Animation[T any] interface {
	// Update advances the animation by dt and returns the sampled value at the new progress.
	//
	// Parameters:
	//   - dt: elapsed time since the previous update
	//
	// Returns:
	//   - T: the value at the new progress
	Update(dt time.Duration) T

	// Done reports whether a non-looping animation has reached its end.
	Done() bool

	// Progress returns the normalized playback position in [0, 1].
	Progress() float32

	// SetProgress jumps to a normalized playback position. v is clamped to [0, 1].
	SetProgress(v float32)

	// Duration returns the length of one pass.
	Duration() time.Duration

	// SetDuration changes the length of one pass, keeping the current progress.
	SetDuration(duration time.Duration)

	// Looping reports whether the animation wraps at its end.
	Looping() bool
}

var _ Animation[float32] = &animationImpl[float32]{}

// NewAnimation creates an animation that plays sampler over duration.
// A non-positive duration produces an animation that is already complete.
//
// Parameters:
//   - duration: length of one pass
//   - looping: whether to wrap at the end
//   - sampler: the value source
//
// Returns:
//   - Animation[T]: the animation, at progress 0
func NewAnimation[T any](duration time.Duration, looping bool, sampler Sampler[T]) Animation[T] {
	d := float32(duration.Seconds())
	return &animationImpl[T]{
		mu:       &sync.Mutex{},
		duration: d,
		timeLeft: math32.Max(d, 0),
		looping:  looping,
		sampler:  sampler,
	}
}

func (a *animationImpl[T]) Update(dt time.Duration) T {
	a.mu.Lock()
	defer a.mu.Unlock()

	step := float32(dt.Seconds())
	left := a.timeLeft - step
	switch {
	case left >= 0:
		a.timeLeft = left
	case a.looping && a.duration > 0:
		a.timeLeft = math32.Mod(left, a.duration) + a.duration
		if a.timeLeft > a.duration {
			a.timeLeft -= a.duration
		}
	default:
		a.timeLeft = 0
	}

	return a.sampler.Sample(a.progress())
}

func (a *animationImpl[T]) Done() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.looping && a.timeLeft <= 0
}

func (a *animationImpl[T]) Progress() float32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.progress()
}

func (a *animationImpl[T]) SetProgress(v float32) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.timeLeft = a.duration * (1 - mgl32.Clamp(v, 0, 1))
}

func (a *animationImpl[T]) Duration() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	return time.Duration(float64(a.duration) * float64(time.Second))
}

func (a *animationImpl[T]) SetDuration(duration time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p := a.progress()
	a.duration = float32(duration.Seconds())
	a.timeLeft = math32.Max(a.duration*(1-p), 0)
}

func (a *animationImpl[T]) Looping() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.looping
}

// progress returns 1 - timeLeft/duration, or 1 for a zero-length animation.
// Caller must hold the mutex.
func (a *animationImpl[T]) progress() float32 {
	if a.duration <= 0 {
		return 1
	}
	return mgl32.Clamp(1-a.timeLeft/a.duration, 0, 1)
}
