package loader

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// DocumentBounds returns the world-space bounds of every mesh instance in doc.
// Meshes are placed by walking the default scene (or every scene, or every root node when no scene
// is declared). A document whose meshes are not referenced by any node is measured in mesh space.
//
// Parameters:
//   - doc: a decoded glTF document with buffer data loaded
//
// Returns:
//   - common.AABB: the bounds
//   - error: ErrNoGeometry if no primitive has POSITION data, or an accessor read error
func DocumentBounds(doc *gltf.Document) (common.AABB, error) {
	meshBounds := make([]common.AABB, len(doc.Meshes))
	for i := range doc.Meshes {
		b, err := gltfMeshBounds(doc, i)
		if err != nil {
			return common.EmptyAABB(), err
		}
		meshBounds[i] = b
	}

	total := common.EmptyAABB()
	placed := false
	var visit func(nodeIndex int, parent mgl32.Mat4, depth int)
	visit = func(nodeIndex int, parent mgl32.Mat4, depth int) {
		// Guard against malformed documents with cyclic node graphs.
		if nodeIndex < 0 || nodeIndex >= len(doc.Nodes) || depth > len(doc.Nodes) {
			return
		}
		node := doc.Nodes[nodeIndex]
		world := parent.Mul4(gltfNodeMatrix(node))
		if node.Mesh != nil && *node.Mesh >= 0 && *node.Mesh < len(meshBounds) {
			placed = true
			total = total.Union(transformAABB(meshBounds[*node.Mesh], world))
		}
		for _, child := range node.Children {
			visit(child, world, depth+1)
		}
	}

	for _, root := range gltfRootNodes(doc) {
		visit(root, mgl32.Ident4(), 0)
	}

	if !placed {
		for _, b := range meshBounds {
			total = total.Union(b)
		}
	}

	if total.IsEmpty() {
		return total, ErrNoGeometry
	}
	return total, nil
}

// gltfRootNodes returns the nodes to start traversal from.
func gltfRootNodes(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	if len(doc.Scenes) > 0 {
		var roots []int
		for _, s := range doc.Scenes {
			roots = append(roots, s.Nodes...)
		}
		return roots
	}

	// No scenes: every node that is nobody's child is a root.
	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// gltfNodeMatrix returns the local transform of a node. A non-zero, non-identity Matrix takes precedence
// over TRS; zero-valued rotation and scale fall back to identity.
func gltfNodeMatrix(node *gltf.Node) mgl32.Mat4 {
	var m mgl32.Mat4
	for i, v := range node.Matrix {
		m[i] = float32(v)
	}
	if m != (mgl32.Mat4{}) && m != mgl32.Ident4() {
		return m
	}

	t := node.Translation
	r := node.Rotation
	s := node.Scale

	rotation := mgl32.QuatIdent()
	if r != ([4]float64{}) {
		rotation = mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}.Normalize()
	}
	scale := mgl32.Vec3{1, 1, 1}
	if s != ([3]float64{}) {
		scale = mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}
	}

	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rotation.Mat4()).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// transformAABB returns the axis-aligned box enclosing b after transforming it by m.
func transformAABB(b common.AABB, m mgl32.Mat4) common.AABB {
	if b.IsEmpty() {
		return b
	}
	out := common.EmptyAABB()
	for _, c := range b.Corners() {
		out = out.Extend(mgl32.TransformCoordinate(c, m))
	}
	return out
}

// gltfMeshBounds returns the mesh-space bounds of all primitives of a mesh.
func gltfMeshBounds(doc *gltf.Document, meshIndex int) (common.AABB, error) {
	total := common.EmptyAABB()
	mesh := doc.Meshes[meshIndex]
	for primIndex, prim := range mesh.Primitives {
		posIndex, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		b, err := gltfAccessorBounds(doc, posIndex)
		if err != nil {
			return common.EmptyAABB(), fmt.Errorf("mesh %d (%q) primitive %d: %w", meshIndex, mesh.Name, primIndex, err)
		}
		total = total.Union(b)
	}
	return total, nil
}

// gltfAccessorBounds returns the bounds of a VEC3 position accessor. The accessor's declared min/max are
// used when present (glTF 2.0 requires them for POSITION); otherwise the float data is scanned.
func gltfAccessorBounds(doc *gltf.Document, accessorIndex int) (common.AABB, error) {
	if accessorIndex < 0 || accessorIndex >= len(doc.Accessors) {
		return common.EmptyAABB(), fmt.Errorf("accessor %d out of range", accessorIndex)
	}
	acc := doc.Accessors[accessorIndex]
	if acc.Count == 0 {
		return common.EmptyAABB(), nil
	}

	if len(acc.Min) >= 3 && len(acc.Max) >= 3 {
		return common.AABB{
			Min: mgl32.Vec3{float32(acc.Min[0]), float32(acc.Min[1]), float32(acc.Min[2])},
			Max: mgl32.Vec3{float32(acc.Max[0]), float32(acc.Max[1]), float32(acc.Max[2])},
		}, nil
	}

	positions, err := gltfReadVec3(doc, acc)
	if err != nil {
		return common.EmptyAABB(), fmt.Errorf("accessor %d: %w", accessorIndex, err)
	}
	out := common.EmptyAABB()
	for _, p := range positions {
		out = out.Extend(p)
	}
	return out, nil
}

// gltfReadVec3 reads a tightly packed or strided float32 VEC3 accessor.
func gltfReadVec3(doc *gltf.Document, acc *gltf.Accessor) ([]mgl32.Vec3, error) {
	if acc.Type != gltf.AccessorVec3 || acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("unsupported position format %v/%v", acc.Type, acc.ComponentType)
	}
	if acc.BufferView == nil {
		return nil, fmt.Errorf("accessor without buffer view needs min/max")
	}
	if *acc.BufferView < 0 || *acc.BufferView >= len(doc.BufferViews) {
		return nil, fmt.Errorf("buffer view %d out of range", *acc.BufferView)
	}
	view := doc.BufferViews[*acc.BufferView]
	if view.Buffer < 0 || view.Buffer >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer %d out of range", view.Buffer)
	}
	data := doc.Buffers[view.Buffer].Data
	if view.ByteOffset+view.ByteLength > len(data) {
		return nil, fmt.Errorf("buffer view %d exceeds buffer data (%d > %d)", *acc.BufferView, view.ByteOffset+view.ByteLength, len(data))
	}
	data = data[view.ByteOffset : view.ByteOffset+view.ByteLength]

	stride := view.ByteStride
	if stride == 0 {
		stride = 12
	}

	out := make([]mgl32.Vec3, acc.Count)
	for i := range out {
		offset := i*stride + acc.ByteOffset
		if offset+12 > len(data) {
			return nil, fmt.Errorf("vertex %d at byte %d exceeds buffer view length %d", i, offset, len(data))
		}
		out[i] = mgl32.Vec3{
			math.Float32frombits(binary.LittleEndian.Uint32(data[offset+0:])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[offset+4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[offset+8:])),
		}
	}
	return out, nil
}
