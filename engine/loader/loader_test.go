package loader

import (
	"encoding/binary"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// positionsDocument builds a single-mesh document whose POSITION accessor has no min/max,
// so bounds must be computed from the buffer data.
func positionsDocument(positions []mgl32.Vec3, node *gltf.Node) *gltf.Document {
	data := make([]byte, 0, len(positions)*12)
	for _, p := range positions {
		for _, c := range p {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(c))
		}
	}

	view := 0
	mesh := 0
	if node == nil {
		node = &gltf.Node{}
	}
	node.Mesh = &mesh

	scene := 0
	return &gltf.Document{
		Asset:       gltf.Asset{Version: "2.0"},
		Buffers:     []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{{Buffer: 0, ByteLength: len(data)}},
		Accessors: []*gltf.Accessor{{
			BufferView:    &view,
			ComponentType: gltf.ComponentFloat,
			Count:         len(positions),
			Type:          gltf.AccessorVec3,
		}},
		Meshes: []*gltf.Mesh{{
			Name:       "tri",
			Primitives: []*gltf.Primitive{{Attributes: map[string]int{gltf.POSITION: 0}}},
		}},
		Nodes:  []*gltf.Node{node},
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
		Scene:  &scene,
	}
}

var triangle = []mgl32.Vec3{{-1, 0, 0}, {1, 2, 0}, {0, -1, 3}}

func TestDocumentBounds_ScansPositions(t *testing.T) {
	b, err := DocumentBounds(positionsDocument(triangle, nil))

	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{-1, -1, 0}, b.Min)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, b.Max)
}

func TestDocumentBounds_NodeTranslationAndScale(t *testing.T) {
	node := &gltf.Node{Translation: [3]float64{10, 0, 0}, Scale: [3]float64{2, 2, 2}}

	b, err := DocumentBounds(positionsDocument(triangle, node))

	require.NoError(t, err)
	assertVecNear(t, mgl32.Vec3{8, -2, 0}, b.Min)
	assertVecNear(t, mgl32.Vec3{12, 4, 6}, b.Max)
}

func TestDocumentBounds_NestedNodeMatrix(t *testing.T) {
	doc := positionsDocument(triangle, nil)
	// Parent translates by +5 on Y via an explicit column-major matrix.
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Matrix:   [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 5, 0, 1},
		Children: []int{0},
	})
	doc.Scenes[0].Nodes = []int{1}

	b, err := DocumentBounds(doc)

	require.NoError(t, err)
	assertVecNear(t, mgl32.Vec3{-1, 4, 0}, b.Min)
	assertVecNear(t, mgl32.Vec3{1, 7, 3}, b.Max)
}

func TestDocumentBounds_StridedBuffer(t *testing.T) {
	doc := positionsDocument([]mgl32.Vec3{{1, 1, 1}, {9, 9, 9}, {2, 2, 2}, {9, 9, 9}}, nil)
	// Read every other vec3 so the 9s are skipped.
	doc.BufferViews[0].ByteStride = 24
	doc.Accessors[0].Count = 2

	b, err := DocumentBounds(doc)

	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, b.Min)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, b.Max)
}

func TestDocumentBounds_PrefersAccessorMinMax(t *testing.T) {
	doc := positionsDocument(triangle, nil)
	doc.Accessors[0].Min = []float64{-5, -5, -5}
	doc.Accessors[0].Max = []float64{5, 5, 5}

	b, err := DocumentBounds(doc)

	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{-5, -5, -5}, b.Min)
	assert.Equal(t, mgl32.Vec3{5, 5, 5}, b.Max)
}

func TestDocumentBounds_UnplacedMeshes(t *testing.T) {
	doc := positionsDocument(triangle, nil)
	doc.Nodes = nil
	doc.Scenes = nil
	doc.Scene = nil

	b, err := DocumentBounds(doc)

	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{-1, -1, 0}, b.Min)
}

func TestDocumentBounds_NoGeometry(t *testing.T) {
	doc := &gltf.Document{
		Meshes: []*gltf.Mesh{{Primitives: []*gltf.Primitive{{Attributes: map[string]int{}}}}},
	}

	_, err := DocumentBounds(doc)

	assert.ErrorIs(t, err, ErrNoGeometry)
}

func TestDocumentBounds_TruncatedBuffer(t *testing.T) {
	doc := positionsDocument(triangle, nil)
	doc.Accessors[0].Count = 10

	_, err := DocumentBounds(doc)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds buffer view length")
}

func TestLoader_LoadBoundsFromFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.glb")
	b := filepath.Join(dir, "b.glb")
	require.NoError(t, gltf.SaveBinary(positionsDocument(triangle, nil), a))
	require.NoError(t, gltf.SaveBinary(positionsDocument(triangle, &gltf.Node{Translation: [3]float64{0, 0, 10}}), b))

	l := NewLoader(BackendTypeGLTF, WithWorkers(2))
	total, err := l.LoadBounds(a, b)

	require.NoError(t, err)
	assertVecNear(t, mgl32.Vec3{-1, -1, 0}, total.Min)
	assertVecNear(t, mgl32.Vec3{1, 2, 13}, total.Max)

	cached, ok := l.Bounds(b)
	require.True(t, ok)
	assertVecNear(t, mgl32.Vec3{-1, -1, 10}, cached.Min)
}

func TestLoader_LoadBoundsUsesCache(t *testing.T) {
	box := common.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}
	l := NewLoader(BackendTypeGLTF, WithBounds("missing.glb", box))

	total, err := l.LoadBounds("missing.glb")

	require.NoError(t, err)
	assert.Equal(t, box, total)
}

func TestLoader_LoadBoundsErrors(t *testing.T) {
	l := NewLoader(BackendTypeGLTF)

	_, err := l.LoadBounds("scene.obj")
	assert.ErrorContains(t, err, "unsupported scene format")

	_, err = l.LoadBounds(filepath.Join(t.TempDir(), "nope.gltf"))
	assert.Error(t, err)

	_, err = l.LoadBounds()
	assert.ErrorIs(t, err, ErrNoGeometry)
}

func TestLoader_LoadBoundsReader(t *testing.T) {
	doc := `{
		"asset": {"version": "2.0"},
		"accessors": [{"componentType": 5126, "count": 3, "type": "VEC3", "min": [-1, -2, -3], "max": [1, 2, 3]}],
		"meshes": [{"primitives": [{"attributes": {"POSITION": 0}}]}],
		"nodes": [{"mesh": 0, "translation": [10, 0, 0]}],
		"scenes": [{"nodes": [0]}],
		"scene": 0
	}`
	l := NewLoader(BackendTypeGLTF)

	b, err := l.LoadBoundsReader("inline", strings.NewReader(doc))

	require.NoError(t, err)
	assertVecNear(t, mgl32.Vec3{9, -2, -3}, b.Min)
	assertVecNear(t, mgl32.Vec3{11, 2, 3}, b.Max)

	cached, ok := l.Bounds("inline")
	assert.True(t, ok)
	assert.Equal(t, b, cached)
}

func TestFrameBounds(t *testing.T) {
	cam := camera.NewCamera()
	bounds := common.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}

	require.NoError(t, FrameBounds(cam, bounds))

	assert.InDelta(t, 0, cam.Position().X(), 1e-5)
	assert.Less(t, cam.Position().Z(), float32(-1))
	for _, c := range bounds.Corners() {
		assert.True(t, cam.Frustum().ContainsPoint(c), "corner %v outside frustum", c)
	}
	assert.Greater(t, cam.Projection().ZNear, float32(0))
}

func TestFrameBounds_Empty(t *testing.T) {
	assert.ErrorIs(t, FrameBounds(camera.NewCamera(), common.EmptyAABB()), ErrNoGeometry)
}

func assertVecNear(t *testing.T, expected, actual mgl32.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, expected[i], actual[i], 1e-4, "expected %v, got %v", expected, actual)
	}
}
