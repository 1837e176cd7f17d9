package pipeline

import "os"

// Storage is where the strategies read sources from and write thumbnails
// to. Production runs use the disk; tests plug in instrumented fakes.
type Storage interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

// Resizer is the pure transform applied to every payload. It must be safe
// for concurrent use.
type Resizer interface {
	Resize(raw []byte) ([]byte, error)
}

// Disk is the Storage used outside of tests.
type Disk struct{}

func (Disk) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (Disk) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
