package loader

import (
	"github.com/Carmen-Shannon/oxy-orbit/common"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithWorkers is an option builder that sets the maximum number of files read concurrently.
//
// Parameters:
//   - n: the worker count (values below 1 are treated as 1)
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker count to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = n
	}
}

// WithBounds is an option builder that pre-populates the bounds cache.
//
// Parameters:
//   - key: the cache key (usually a file path)
//   - bounds: the bounds to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the cache entry to a loader
func WithBounds(key string, bounds common.AABB) LoaderBuilderOption {
	return func(l *loader) {
		l.boundsCache[key] = bounds
	}
}
