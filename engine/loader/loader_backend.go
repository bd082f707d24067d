package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-orbit/common"
)

// loaderBackend defines the generic interface for reading scene bounds from files or streams.
// Concrete implementations (e.g., gltfLoaderBackendImpl) handle format-specific details.
type loaderBackend interface {
	// Bounds reads the file at path and returns the world-space bounds of its geometry.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - common.AABB: the bounds
	//   - error: ErrNoGeometry if the file has no POSITION data, or a read/parse error
	Bounds(path string) (common.AABB, error)

	// BoundsReader reads a document from a stream and returns its bounds.
	// Text and binary documents are told apart by their leading bytes.
	//
	// Parameters:
	//   - r: the reader providing document data
	//
	// Returns:
	//   - common.AABB: the bounds
	//   - error: error if loading fails
	BoundsReader(r io.Reader) (common.AABB, error)
}
