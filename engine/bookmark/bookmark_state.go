package bookmark

import (
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

type fileState struct {
	Bookmarks []bookmarkState `yaml:"bookmarks"`
}

type bookmarkState struct {
	Name       string                       `yaml:"name"`
	Position   [3]float32                   `yaml:"position,flow"`
	Rotation   [4]float32                   `yaml:"rotation,flow"` // w, x, y, z
	Center     [3]float32                   `yaml:"center,flow"`
	Up         *[3]float32                  `yaml:"up,omitempty,flow"`
	Projection camera.PerspectiveProjection `yaml:"projection"`
}

func newBookmarkState(b Bookmark) bookmarkState {
	q := b.Pose.Rotation
	bs := bookmarkState{
		Name:       b.Name,
		Position:   b.Pose.Position,
		Rotation:   [4]float32{q.W, q.V[0], q.V[1], q.V[2]},
		Center:     b.Center,
		Projection: b.Pose.Projection,
	}
	if up, ok := b.Up.Vector(); ok {
		v := [3]float32(up)
		bs.Up = &v
	}
	return bs
}

func (bs bookmarkState) bookmark() Bookmark {
	up := camera.AutoUp()
	if bs.Up != nil {
		up = camera.FixedUp(mgl32.Vec3(*bs.Up))
	}
	rotation := mgl32.Quat{W: bs.Rotation[0], V: mgl32.Vec3{bs.Rotation[1], bs.Rotation[2], bs.Rotation[3]}}
	if rotation.Len() == 0 {
		rotation = mgl32.QuatIdent()
	}
	return Bookmark{
		Name: bs.Name,
		Pose: camera.Pose{
			Position:   bs.Position,
			Rotation:   rotation.Normalize(),
			Projection: bs.Projection,
		},
		Center: bs.Center,
		Up:     up,
	}
}
