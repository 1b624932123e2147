package cfb

import (
	"fmt"
	"os"
)

// OpenFile loads the whole file at path into memory and parses it as a
// compound file. Spec §4.1: "loads the whole file into memory".
func OpenFile(path string) (*Reader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cfb: reading %s: %w", path, err)
	}
	return Open(data)
}
