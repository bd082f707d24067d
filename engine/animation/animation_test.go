package animation

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scalar is a float32 that satisfies Lerper.
type scalar float32

func (s scalar) Lerp(other scalar, amount float32) scalar {
	return s + (other-s)*scalar(amount)
}

func TestEasings_Endpoints(t *testing.T) {
	for name, e := range easings {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 0, e(0), 1e-6)
			assert.InDelta(t, 1, e(1), 1e-6)
			assert.InDelta(t, 0.5, e(0.5), 0.26)
		})
	}
}

func TestEasingByName(t *testing.T) {
	e, err := EasingByName("bounce")
	require.Error(t, err)
	assert.Nil(t, e)

	e, err = EasingByName("Ease-In-Out")
	require.NoError(t, err)
	assert.InDelta(t, EaseInOut(0.3), e(0.3), 1e-7)

	e, err = EasingByName(" SMOOTHSTEP ")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, e(0.5), 1e-6)
}

func TestTransition(t *testing.T) {
	tr := NewTransition[scalar](2, 6, nil)

	assert.Equal(t, scalar(2), tr.Sample(0))
	assert.Equal(t, scalar(4), tr.Sample(0.5))
	assert.Equal(t, scalar(6), tr.Sample(1))
	assert.Equal(t, scalar(6), tr.Sample(2), "progress is clamped")

	eased := NewTransition[scalar](0, 1, EaseIn)
	assert.InDelta(t, 0.25, float32(eased.Sample(0.5)), 1e-6)
}

func TestSpline(t *testing.T) {
	s, err := NewSpline(
		Key[scalar]{Time: 1, Value: 10},
		Key[scalar]{Time: 0, Value: 0},
		Key[scalar]{Time: 2, Value: 0, Easing: EaseIn},
	)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	assert.Equal(t, scalar(0), s.Sample(-1))
	assert.Equal(t, scalar(5), s.Sample(0.5))
	assert.Equal(t, scalar(10), s.Sample(1))
	// The segment starting at t=1 uses that key's easing (Linear), not the last key's.
	assert.InDelta(t, 5, float32(s.Sample(1.5)), 1e-5)
	assert.Equal(t, scalar(0), s.Sample(3))
}

func TestSpline_PerKeyEasing(t *testing.T) {
	s, err := NewSpline(
		Key[scalar]{Time: 0, Value: 0, Easing: EaseIn},
		Key[scalar]{Time: 1, Value: 1},
	)
	require.NoError(t, err)

	assert.InDelta(t, 0.25, float32(s.Sample(0.5)), 1e-6)
}

func TestSpline_NoKeys(t *testing.T) {
	_, err := NewSpline[scalar]()
	assert.ErrorIs(t, err, ErrTooFewKeys)
}

func TestAnimation_Update(t *testing.T) {
	a := NewAnimation[scalar](time.Second, false, NewTransition[scalar](0, 10, nil))

	assert.Equal(t, float32(0), a.Progress())
	assert.False(t, a.Done())

	v := a.Update(250 * time.Millisecond)
	assert.InDelta(t, 2.5, float32(v), 1e-5)
	assert.InDelta(t, 0.25, a.Progress(), 1e-6)

	v = a.Update(2 * time.Second)
	assert.Equal(t, scalar(10), v)
	assert.True(t, a.Done())
	assert.Equal(t, float32(1), a.Progress())
}

func TestAnimation_Looping(t *testing.T) {
	a := NewAnimation[scalar](2*time.Second, true, NewTransition[scalar](0, 1, nil))

	a.Update(1500 * time.Millisecond)
	a.Update(time.Second)

	assert.False(t, a.Done())
	assert.InDelta(t, 0.25, a.Progress(), 1e-5)
	assert.True(t, a.Looping())
}

func TestAnimation_SetProgressAndDuration(t *testing.T) {
	a := NewAnimation[scalar](4*time.Second, false, NewTransition[scalar](0, 1, nil))

	a.SetProgress(0.5)
	assert.InDelta(t, 0.5, a.Progress(), 1e-6)

	a.SetDuration(8 * time.Second)
	assert.Equal(t, 8*time.Second, a.Duration())
	assert.InDelta(t, 0.5, a.Progress(), 1e-6)

	a.SetProgress(7)
	assert.Equal(t, float32(1), a.Progress())
	assert.True(t, a.Done())
}

func TestAnimation_ZeroDuration(t *testing.T) {
	a := NewAnimation[scalar](0, false, NewTransition[scalar](3, 7, nil))

	assert.True(t, a.Done())
	assert.Equal(t, scalar(7), a.Update(time.Millisecond))
}

func TestAnimation_PoseTransition(t *testing.T) {
	from := camera.NewCamera(camera.WithPosition(mgl32.Vec3{0, 0, -5}), camera.WithLookAt(mgl32.Vec3{}, common.UnitY)).Pose()
	to := camera.NewCamera(camera.WithPosition(mgl32.Vec3{5, 0, 0}), camera.WithLookAt(mgl32.Vec3{}, common.UnitY)).Pose()

	a := NewAnimation[camera.Pose](time.Second, false, NewTransition(from, to, Smoothstep))
	mid := a.Update(500 * time.Millisecond)

	assert.InDelta(t, 2.5, mid.Position.X(), 1e-5)
	assert.InDelta(t, -2.5, mid.Position.Z(), 1e-5)
	assert.InDelta(t, 1, mid.Rotation.Len(), 1e-5)
}

func TestTrackingShot(t *testing.T) {
	poses := make([]camera.Pose, 4)
	for i := range poses {
		angle := float32(i) * math32.Pi / 2
		pos := mgl32.Vec3{5 * math32.Sin(angle), 1, -5 * math32.Cos(angle)}
		poses[i] = camera.NewCamera(camera.WithPosition(pos), camera.WithLookAt(mgl32.Vec3{}, common.UnitY)).Pose()
	}

	shot, err := NewTrackingShot(poses...)
	require.NoError(t, err)
	assert.Equal(t, 4, shot.Len())

	for i, p := range poses {
		got := shot.Sample(float32(i) / 4)
		for c := range 3 {
			assert.InDelta(t, p.Position[c], got.Position[c], 1e-4, "pose %d", i)
		}
		assert.InDelta(t, 1, math32.Abs(got.Rotation.Dot(p.Rotation)), 1e-4, "pose %d", i)
	}

	// Closed loop: progress 1 returns to the start.
	end := shot.Sample(1)
	for c := range 3 {
		assert.InDelta(t, poses[0].Position[c], end.Position[c], 1e-4)
	}

	mid := shot.Sample(0.125)
	assert.InDelta(t, 1, mid.Rotation.Len(), 1e-5)
	assert.Greater(t, mid.Position.Len(), float32(4))
}

func TestTrackingShot_TooFewPoses(t *testing.T) {
	_, err := NewTrackingShot(camera.NewCamera().Pose())
	assert.ErrorIs(t, err, ErrTooFewKeys)
}

func TestNewTour(t *testing.T) {
	a := camera.NewCamera(camera.WithPosition(mgl32.Vec3{0, 0, -5}), camera.WithLookAt(mgl32.Vec3{}, common.UnitY)).Pose()
	b := camera.NewCamera(camera.WithPosition(mgl32.Vec3{5, 0, 0}), camera.WithLookAt(mgl32.Vec3{}, common.UnitY)).Pose()
	c := camera.NewCamera(camera.WithPosition(mgl32.Vec3{0, 0, 5}), camera.WithLookAt(mgl32.Vec3{}, common.UnitY)).Pose()

	for _, style := range []TourStyle{TourGlide, TourHop} {
		t.Run(style.String(), func(t *testing.T) {
			tour, legs, err := NewTour(style, nil, a, b, c)
			require.NoError(t, err)
			assert.Equal(t, 3, legs)

			for i, p := range []camera.Pose{a, b, c, a} {
				got := tour.Sample(float32(i) / 3)
				for k := range 3 {
					assert.InDelta(t, p.Position[k], got.Position[k], 1e-4, "key %d", i)
				}
			}
		})
	}

	// Hop eases out of each pose, so it lags the glide early in a leg.
	glide, _, err := NewTour(TourGlide, nil, a, b, c)
	require.NoError(t, err)
	hop, _, err := NewTour(TourHop, nil, a, b, c)
	require.NoError(t, err)
	early := float32(0.05)
	assert.Less(t, hop.Sample(early).Position.Sub(a.Position).Len(), glide.Sample(early).Position.Sub(a.Position).Len())

	_, _, err = NewTour(TourHop, nil, a)
	assert.ErrorIs(t, err, ErrTooFewKeys)
}

func TestTourStyleByName(t *testing.T) {
	style, err := TourStyleByName("Hop")
	require.NoError(t, err)
	assert.Equal(t, TourHop, style)

	style, err = TourStyleByName("")
	require.NoError(t, err)
	assert.Equal(t, TourGlide, style)

	_, err = TourStyleByName("warp")
	assert.Error(t, err)
}
