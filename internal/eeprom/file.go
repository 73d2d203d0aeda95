package eeprom

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sweeney/sunrise-clock/internal/logic"
)

// FileStore keeps the image in a file. Saves go through a temporary file
// and a rename, so a power cut leaves either the old or the new image.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the image at path. The file and
// its directory are created on the first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the image location.
func (f *FileStore) Path() string {
	return f.path
}

// IsInitialized reports whether the image exists and carries the marker.
func (f *FileStore) IsInitialized() (bool, error) {
	img, err := f.read()
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(img) > MarkerAddr && img[MarkerAddr] == Marker, nil
}

// Load decodes the configuration from the image.
func (f *FileStore) Load() (logic.Configuration, error) {
	img, err := f.read()
	if errors.Is(err, fs.ErrNotExist) {
		return logic.Configuration{}, ErrNotInitialized
	}
	if err != nil {
		return logic.Configuration{}, err
	}
	return Decode(img)
}

// Save writes cfg and the marker.
func (f *FileStore) Save(cfg logic.Configuration) error {
	return f.write(Encode(cfg))
}

// InitializeDefaults writes the default configuration and the marker.
func (f *FileStore) InitializeDefaults() error {
	return f.write(Encode(logic.DefaultConfiguration()))
}

func (f *FileStore) read() ([]byte, error) {
	img, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return img, nil
}

func (f *FileStore) write(img []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp image: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(img); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp image: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp image: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename image: %w", err)
	}
	return nil
}
