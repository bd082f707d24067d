package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (272 bytes, std140 aligned).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer.
// Matches the WGSL CameraUniform struct layout exactly (see GPUCameraUniformSource).
// Size: 272 bytes.
type GPUCameraUniform struct {
	View        mgl32.Mat4 // offset   0: world-to-view matrix
	ViewInverse mgl32.Mat4 // offset  64: view-to-world matrix
	Proj        mgl32.Mat4 // offset 128: projection matrix
	ProjInverse mgl32.Mat4 // offset 192: inverse projection matrix
	Viewport    [2]float32 // offset 256: viewport size in pixels
	Focal       [2]float32 // offset 264: focal lengths in pixels
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (272)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	offset := 0
	put := func(v float32) {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v))
		offset += 4
	}
	for _, m := range [4]mgl32.Mat4{g.View, g.ViewInverse, g.Proj, g.ProjInverse} {
		for i := range 16 {
			put(m[i])
		}
	}
	put(g.Viewport[0])
	put(g.Viewport[1])
	put(g.Focal[0])
	put(g.Focal[1])
	return buf
}
