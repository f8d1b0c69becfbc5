package nvram

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/amigakey/pkg"
)

func TestMemStoreReadWrite(t *testing.T) {
	s := NewMemStore()
	if s.Size() != DefaultSize {
		t.Fatalf("Size() = %d, want %d", s.Size(), DefaultSize)
	}

	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if n, err := s.WriteAt(data, 16); err != nil || n != len(data) {
		t.Fatalf("WriteAt = %d, %v", n, err)
	}

	buf := make([]byte, len(data))
	if n, err := s.ReadAt(buf, 16); err != nil || n != len(buf) {
		t.Fatalf("ReadAt = %d, %v", n, err)
	}
	if !bytes.Equal(buf, data) {
		t.Errorf("ReadAt = %x, want %x", buf, data)
	}
}

func TestMemStoreBounds(t *testing.T) {
	s := NewMemStore()

	if _, err := s.WriteAt([]byte{1}, DefaultSize); !errors.Is(err, pkg.ErrStoreTooSmall) {
		t.Errorf("WriteAt past end = %v, want ErrStoreTooSmall", err)
	}
	if _, err := s.WriteAt(make([]byte, 2), DefaultSize-1); !errors.Is(err, pkg.ErrStoreTooSmall) {
		t.Errorf("WriteAt spanning end = %v, want ErrStoreTooSmall", err)
	}
	if _, err := s.ReadAt(make([]byte, 1), DefaultSize); err == nil {
		t.Error("ReadAt past end succeeded")
	}
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macros.bin")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	data := []byte{0x02, 0x01, 0x00}
	if _, err := s.WriteAt(data, 0); err != nil {
		t.Fatalf("WriteAt: %v", err)
	}

	// Reopening reads the persisted image back.
	s2, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore reopen: %v", err)
	}
	buf := make([]byte, len(data))
	if _, err := s2.ReadAt(buf, 0); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if !bytes.Equal(buf, data) {
		t.Errorf("reopened store = %x, want %x", buf, data)
	}

	// No temporary file is left behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file remains: %v", err)
	}
}

func TestFileStoreShortFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "macros.bin")
	if err := os.WriteFile(path, []byte{0xAA}, 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if s.Size() != DefaultSize {
		t.Errorf("Size() = %d, want %d", s.Size(), DefaultSize)
	}
	buf := make([]byte, 2)
	if _, err := s.ReadAt(buf, 0); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if buf[0] != 0xAA || buf[1] != 0x00 {
		t.Errorf("ReadAt = %x, want aa00", buf)
	}
}
