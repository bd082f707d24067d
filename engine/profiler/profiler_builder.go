package profiler

import "time"

// ProfilerOption configures a Profiler at construction time.
type ProfilerOption func(*Profiler)

// WithInterval sets how often stats are summarised and logged.
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithClock replaces time.Now as the profiler's time source.
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// WithLogging toggles the periodic log line. Stats are still collected when disabled.
func WithLogging(enabled bool) ProfilerOption {
	return func(p *Profiler) {
		p.logging = enabled
	}
}
