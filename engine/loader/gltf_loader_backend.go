package loader

import (
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/qmuntal/gltf"
)

// gltfLoaderBackendImpl is the implementation of gltfLoaderBackend.
type gltfLoaderBackendImpl struct{}

// gltfLoaderBackend is a loaderBackend implementation for glTF/GLB files.
// Documents are decoded with qmuntal/gltf and handed to DocumentBounds.
type gltfLoaderBackend interface {
	loaderBackend
}

var _ gltfLoaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Returns:
//   - gltfLoaderBackend: the loader backend for glTF/GLB files
func newGLTFLoaderBackend() gltfLoaderBackend {
	return &gltfLoaderBackendImpl{}
}

func (b *gltfLoaderBackendImpl) Bounds(path string) (common.AABB, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return common.EmptyAABB(), fmt.Errorf("failed to open glTF: %w", err)
	}
	return DocumentBounds(doc)
}

func (b *gltfLoaderBackendImpl) BoundsReader(r io.Reader) (common.AABB, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return common.EmptyAABB(), fmt.Errorf("failed to decode glTF: %w", err)
	}
	return DocumentBounds(doc)
}
