package loader

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-orbit/common"
)

// ErrNoGeometry is returned when a document, or a whole LoadBounds call, contains no POSITION data.
var ErrNoGeometry = errors.New("no geometry")

// LoaderBackendType identifies the scene file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	workers int
	pool    worker.DynamicWorkerPool

	boundsCache map[string]common.AABB

	backend loaderBackend
}

// Loader reads scene files and reports their world-space bounds, which the viewer uses to place
// the camera and fit its clip planes. Results are cached by path.
type Loader interface {
	// LoadBounds reads every path in parallel and returns the union of their bounds.
	// Files already in the cache are not read again.
	//
	// Parameters:
	//   - paths: glTF or GLB files
	//
	// Returns:
	//   - common.AABB: the union of all bounds
	//   - error: the first load failure, or ErrNoGeometry if nothing had POSITION data
	LoadBounds(paths ...string) (common.AABB, error)

	// LoadBoundsReader reads a single glTF or GLB document from r and caches its bounds under name.
	//
	// Parameters:
	//   - name: the cache key
	//   - r: the reader providing document data
	//
	// Returns:
	//   - common.AABB: the document bounds
	//   - error: error if loading fails
	LoadBoundsReader(name string, r io.Reader) (common.AABB, error)

	// Bounds returns cached bounds for a path or name.
	//
	// Parameters:
	//   - name: the cache key
	//
	// Returns:
	//   - common.AABB: the cached bounds
	//   - bool: false if nothing is cached under name
	Bounds(name string) (common.AABB, bool)
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:          sync.RWMutex{},
		workers:     runtime.NumCPU(),
		boundsCache: make(map[string]common.AABB),
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}

	// Workers idle-exit after a second, so a loader that is done loading holds no goroutines.
	l.pool = worker.NewDynamicWorkerPool(max(l.workers, 1), 256, 1*time.Second)
	return l
}

func (l *loader) LoadBounds(paths ...string) (common.AABB, error) {
	results := make([]common.AABB, len(paths))
	errs := make([]error, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		if cached, ok := l.Bounds(path); ok {
			results[i] = cached
			continue
		}

		backend, err := l.resolveBackend(path)
		if err != nil {
			errs[i] = err
			continue
		}

		wg.Add(1)
		id, p := i, path
		l.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				start := time.Now()
				b, err := backend.Bounds(p)
				if err != nil {
					errs[id] = fmt.Errorf("failed to load %s: %w", p, err)
					return nil, errs[id]
				}
				results[id] = b
				log.Printf("[Loader] %s: center %v radius %.3f (%s)", filepath.Base(p), b.Center(), b.Radius(), time.Since(start).Round(time.Millisecond))
				return b, nil
			},
		})
	}
	wg.Wait()

	total := common.EmptyAABB()
	for i, path := range paths {
		if errs[i] != nil {
			if errors.Is(errs[i], ErrNoGeometry) {
				log.Printf("[Loader] %s: skipped, no geometry", path)
				continue
			}
			return common.EmptyAABB(), errs[i]
		}
		l.mu.Lock()
		l.boundsCache[path] = results[i]
		l.mu.Unlock()
		total = total.Union(results[i])
	}

	if total.IsEmpty() {
		return total, ErrNoGeometry
	}
	return total, nil
}

func (l *loader) LoadBoundsReader(name string, r io.Reader) (common.AABB, error) {
	if cached, ok := l.Bounds(name); ok {
		return cached, nil
	}

	b, err := l.backend.BoundsReader(r)
	if err != nil {
		return common.EmptyAABB(), fmt.Errorf("failed to load from reader %q: %w", name, err)
	}

	l.mu.Lock()
	l.boundsCache[name] = b
	l.mu.Unlock()
	return b, nil
}

func (l *loader) Bounds(name string) (common.AABB, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	b, ok := l.boundsCache[name]
	return b, ok
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only glTF/GLB is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported scene format: %q", ext)
	}
}
