package profiler

import (
	"log"
	"runtime"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Stats summarises the frames seen during one profiler interval.
type Stats struct {
	// FPS counts every tick, redrawn or not.
	FPS float64
	// MeanFrameMs and StdDevFrameMs cover redrawn frames only.
	MeanFrameMs   float64
	StdDevFrameMs float64
	Redraws       int
	Idle          int
}

// Profiler tracks frame rate, redraw ratio and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	redraws        int
	frameTimesMs   []float64
	lastTime       time.Time
	updateInterval time.Duration
	now            func() time.Time
	logging        bool
	last           Stats
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler with the provided options applied.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options such as WithInterval
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		logging:        true,
		memStats:       runtime.MemStats{},
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per engine frame.
// Logs performance statistics when the update interval has elapsed: FPS, redraw vs idle frames,
// frame time mean/stddev, heap usage, allocation rate, GC count/pause times and total memory.
//
// Parameters:
//   - redrawn: whether this frame was actually rendered
//   - frameTime: how long the render took; ignored for idle frames
//
// Returns:
//   - bool: true if the interval closed on this tick, false otherwise
func (p *Profiler) Tick(redrawn bool, frameTime time.Duration) bool {
	p.frameCount++
	if redrawn {
		p.redraws++
		p.frameTimesMs = append(p.frameTimesMs, float64(frameTime)/float64(time.Millisecond))
	}

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	s := Stats{
		FPS:     float64(p.frameCount) / elapsed.Seconds(),
		Redraws: p.redraws,
		Idle:    p.frameCount - p.redraws,
	}
	switch len(p.frameTimesMs) {
	case 0:
	case 1:
		s.MeanFrameMs = p.frameTimesMs[0]
	default:
		s.MeanFrameMs, s.StdDevFrameMs = stat.MeanStdDev(p.frameTimesMs, nil)
	}
	p.last = s

	if p.logging {
		p.logStats(s, elapsed)
	}

	p.frameCount = 0
	p.redraws = 0
	p.frameTimesMs = p.frameTimesMs[:0]
	p.lastTime = currentTime
	return true
}

// Stats returns the summary of the last completed interval.
//
// Returns:
//   - Stats: zero until the first interval closes
func (p *Profiler) Stats() Stats {
	return p.last
}

func (p *Profiler) logStats(s Stats, elapsed time.Duration) {
	runtime.ReadMemStats(&p.memStats)
	// Alloc is live heap, TotalAlloc only grows and tracks churn, Sys is the process footprint.
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of last 256 GC pauses
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	log.Printf("[Profiler] FPS: %.2f | Redraws: %d Idle: %d | Frame: %.2f ± %.2f ms | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		s.FPS, s.Redraws, s.Idle, s.MeanFrameMs, s.StdDevFrameMs, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
}
