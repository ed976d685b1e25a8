package datfile

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
)

// File is one .dat file read up front. A file that does not exist is not an
// error: it comes back with Exists=false and no data.
type File struct {
	Name   string
	Path   string
	Exists bool
	Data   []byte
}

// Read loads path in one go. Only I/O failures other than "not found" are
// returned as errors.
func Read(path string) (File, error) {
	f := File{Name: filepath.Base(path), Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return f, fmt.Errorf("read %s: %w", path, err)
	}
	f.Exists = true
	f.Data = data
	return f, nil
}

// Size returns the file length in bytes.
func (f File) Size() int {
	return len(f.Data)
}

// Digest returns the hex BLAKE2b-256 of the file contents, or "" when the
// file is absent. Two reads with the same digest decode identically.
func (f File) Digest() string {
	if !f.Exists {
		return ""
	}
	sum := blake2b.Sum256(f.Data)
	return hex.EncodeToString(sum[:])
}
