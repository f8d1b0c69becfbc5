package nvram

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ardnew/amigakey/pkg"
)

// DefaultSize is the size of the converter's non-volatile region in bytes.
const DefaultSize = 1024

// Store is a fixed-size, byte-addressable non-volatile store. The macro
// engine is its only client.
type Store interface {
	io.ReaderAt
	io.WriterAt

	// Size returns the store capacity in bytes.
	Size() int64
}

// MemStore is a fixed-size in-memory store for tests and simulation.
type MemStore struct {
	mutex sync.Mutex
	buf   [DefaultSize]byte
}

// NewMemStore creates a zeroed in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// ReadAt implements Store.
func (s *MemStore) ReadAt(p []byte, off int64) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if off < 0 || off >= int64(len(s.buf)) {
		return 0, io.EOF
	}
	n := copy(p, s.buf[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements Store.
func (s *MemStore) WriteAt(p []byte, off int64) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if off < 0 || off+int64(len(p)) > int64(len(s.buf)) {
		return 0, pkg.ErrStoreTooSmall
	}
	return copy(s.buf[off:], p), nil
}

// Size implements Store.
func (s *MemStore) Size() int64 {
	return int64(len(s.buf))
}

// Corrupt flips one bit at the given offset. Test hook for integrity checks.
func (s *MemStore) Corrupt(off int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.buf[off] ^= 0x01
}

// FileStore is a file-backed store holding a fixed-size image. Every write
// persists the full image atomically via a temporary file and rename, so a
// crash mid-save leaves the previous image intact.
type FileStore struct {
	mutex sync.Mutex
	path  string
	img   []byte
}

// NewFileStore opens (or creates) a file-backed store of DefaultSize bytes.
// An existing file shorter than the store size is padded with zeros; content
// validation is the client's concern.
func NewFileStore(path string) (*FileStore, error) {
	img := make([]byte, DefaultSize)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		copy(img, data)
	case os.IsNotExist(err):
		pkg.LogInfo(pkg.ComponentNVRAM, "creating store", "path", path)
	default:
		return nil, fmt.Errorf("read store: %w", err)
	}
	return &FileStore{path: path, img: img}, nil
}

// ReadAt implements Store.
func (s *FileStore) ReadAt(p []byte, off int64) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if off < 0 || off >= int64(len(s.img)) {
		return 0, io.EOF
	}
	n := copy(p, s.img[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// WriteAt implements Store.
func (s *FileStore) WriteAt(p []byte, off int64) (int, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if off < 0 || off+int64(len(p)) > int64(len(s.img)) {
		return 0, pkg.ErrStoreTooSmall
	}
	n := copy(s.img[off:], p)
	if err := s.persist(); err != nil {
		return 0, err
	}
	return n, nil
}

// persist writes the full image atomically. Caller holds the mutex.
func (s *FileStore) persist() error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, s.img, 0o644); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename store: %w", err)
	}
	return nil
}

// Size implements Store.
func (s *FileStore) Size() int64 {
	return int64(len(s.img))
}

// Compile-time interface checks
var (
	_ Store = (*MemStore)(nil)
	_ Store = (*FileStore)(nil)
)
