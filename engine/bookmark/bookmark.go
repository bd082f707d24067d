package bookmark

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"github.com/Carmen-Shannon/oxy-orbit/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// ErrBookmarkNotFound is returned by Get for an index outside the store.
var ErrBookmarkNotFound = errors.New("bookmark not found")

// Bookmark is a named camera pose together with the controller state needed to resume orbiting from it.
type Bookmark struct {
	Name   string
	Pose   camera.Pose
	Center mgl32.Vec3
	Up     camera.UpAxis
}

type storeImpl struct {
	mu        *sync.Mutex
	bookmarks []Bookmark
}

// Store is an ordered, file-backed collection of bookmarks.
type Store interface {
	// Add appends a bookmark. An empty name is replaced with "bookmark-N".
	//
	// Parameters:
	//   - b: the bookmark to add
	//
	// Returns:
	//   - int: the index of the new bookmark
	Add(b Bookmark) int

	// Get returns the bookmark at index.
	//
	// Parameters:
	//   - index: zero-based position
	//
	// Returns:
	//   - Bookmark: the bookmark
	//   - error: ErrBookmarkNotFound if index is out of range
	Get(index int) (Bookmark, error)

	// Len returns the number of bookmarks.
	Len() int

	// All returns a copy of every bookmark in order.
	All() []Bookmark

	// Load replaces the store contents with the bookmarks in the YAML file at path.
	// A missing file leaves the store empty and is not an error.
	//
	// Parameters:
	//   - path: the YAML file to read
	//
	// Returns:
	//   - error: an error if the file exists but cannot be read or parsed
	Load(path string) error

	// Save writes every bookmark to path as YAML, creating parent directories as needed.
	//
	// Parameters:
	//   - path: the YAML file to write
	//
	// Returns:
	//   - error: an error if the file cannot be written
	Save(path string) error
}

var _ Store = &storeImpl{}

// NewStore creates an empty bookmark store.
func NewStore(bookmarks ...Bookmark) Store {
	s := &storeImpl{mu: &sync.Mutex{}}
	for _, b := range bookmarks {
		s.Add(b)
	}
	return s
}

func (s *storeImpl) Add(b Bookmark) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.Name = common.Coalesce(b.Name, fmt.Sprintf("bookmark-%d", len(s.bookmarks)+1))
	s.bookmarks = append(s.bookmarks, b)
	return len(s.bookmarks) - 1
}

func (s *storeImpl) Get(index int) (Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.bookmarks) {
		return Bookmark{}, fmt.Errorf("index %d of %d: %w", index, len(s.bookmarks), ErrBookmarkNotFound)
	}
	return s.bookmarks[index], nil
}

func (s *storeImpl) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookmarks)
}

func (s *storeImpl) All() []Bookmark {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Bookmark, len(s.bookmarks))
	copy(out, s.bookmarks)
	return out
}

func (s *storeImpl) Load(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.mu.Lock()
		s.bookmarks = nil
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read bookmarks %q: %w", path, err)
	}

	var state fileState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to parse bookmarks %q: %w", path, err)
	}

	loaded := make([]Bookmark, 0, len(state.Bookmarks))
	for _, bs := range state.Bookmarks {
		loaded = append(loaded, bs.bookmark())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarks = loaded
	return nil
}

func (s *storeImpl) Save(path string) error {
	s.mu.Lock()
	state := fileState{Bookmarks: make([]bookmarkState, 0, len(s.bookmarks))}
	for _, b := range s.bookmarks {
		state.Bookmarks = append(state.Bookmarks, newBookmarkState(b))
	}
	s.mu.Unlock()

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create bookmark directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create bookmarks %q: %w", path, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&state); err != nil {
		return fmt.Errorf("failed to encode bookmarks: %w", err)
	}
	return enc.Close()
}
