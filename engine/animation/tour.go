package animation

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
)

// TourStyle selects how a bookmark tour moves between poses.
type TourStyle int

const (
	// TourGlide passes through every pose on a closed Catmull-Rom loop without stopping.
	TourGlide TourStyle = iota
	// TourHop eases into and out of every pose, settling briefly at each one.
	TourHop
)

func (ts TourStyle) String() string {
	switch ts {
	case TourGlide:
		return "glide"
	case TourHop:
		return "hop"
	}
	return fmt.Sprintf("TourStyle(%d)", int(ts))
}

// TourStyleByName looks up a tour style by its configuration name.
func TourStyleByName(name string) (TourStyle, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "glide", "":
		return TourGlide, nil
	case "hop":
		return TourHop, nil
	}
	return TourGlide, fmt.Errorf("unknown tour style %q", name)
}

// NewTour builds a looping sampler through poses in the given style.
// Each pose occupies an equal share of progress; progress 1 returns to the first pose.
//
// Parameters:
//   - style: glide or hop
//   - easing: the per-leg easing used by TourHop (nil means Smoothstep)
//   - poses: at least two control poses
//
// Returns:
//   - Sampler[camera.Pose]: the tour
//   - int: the number of legs
//   - error: ErrTooFewKeys if fewer than two poses are given
func NewTour(style TourStyle, easing Easing, poses ...camera.Pose) (Sampler[camera.Pose], int, error) {
	if style == TourGlide {
		shot, err := NewTrackingShot(poses...)
		if err != nil {
			return nil, 0, err
		}
		return shot, shot.Len(), nil
	}

	if len(poses) < 2 {
		return nil, 0, fmt.Errorf("tour needs at least 2 poses, got %d: %w", len(poses), ErrTooFewKeys)
	}
	if easing == nil {
		easing = Smoothstep
	}
	n := len(poses)
	keys := make([]Key[camera.Pose], 0, n+1)
	for i, p := range poses {
		keys = append(keys, Key[camera.Pose]{Time: float32(i) / float32(n), Value: p, Easing: easing})
	}
	keys = append(keys, Key[camera.Pose]{Time: 1, Value: poses[0]})
	spline, err := NewSpline(keys...)
	if err != nil {
		return nil, 0, err
	}
	return spline, n, nil
}
