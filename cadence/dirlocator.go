package cadence

import (
	"io"
	"os"
	"path/filepath"
)

// DirLocator is a FileLocator backed by a directory on disk holding the
// three Cadence project files at its root.
type DirLocator struct {
	Dir string
}

func (d DirLocator) Open(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(d.Dir, name))
}
