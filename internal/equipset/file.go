package equipset

import (
	"context"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vanatools/vanainv/internal/datfile"
)

// File is the decode result of one es<N>.dat file.
type File struct {
	Filename  string
	FileIndex int
	Exists    bool
	Size      int
	Digest    string
	Header    []byte
	Sets      []Set
}

// RangeStart returns the first global set number covered by the file.
func (f File) RangeStart() int {
	return f.FileIndex*SetCount + 1
}

// RangeEnd returns the last global set number covered by the file.
func (f File) RangeEnd() int {
	return (f.FileIndex + 1) * SetCount
}

// HeaderHex returns the raw header as hex.
func (f File) HeaderHex() string {
	return hex.EncodeToString(f.Header)
}

// Filename returns the name of the n-th file of the family.
func Filename(fileIndex int) string {
	return fmt.Sprintf("es%d.dat", fileIndex)
}

// FileIndexFromName parses the index out of an es<N>.dat file name.
func FileIndexFromName(name string) (int, bool) {
	stem := strings.TrimSuffix(strings.ToLower(filepath.Base(name)), ".dat")
	if !strings.HasPrefix(stem, "es") || len(stem) == 2 {
		return 0, false
	}
	n, err := strconv.Atoi(stem[2:])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// DecodeFile decodes an already-read file. An absent file yields Exists=false
// and no sets.
func DecodeFile(f datfile.File, fileIndex int) File {
	out := File{
		Filename:  f.Name,
		FileIndex: fileIndex,
		Exists:    f.Exists,
	}
	if !f.Exists {
		return out
	}
	out.Size = f.Size()
	out.Digest = f.Digest()
	header := f.Data
	if len(header) > HeaderSize {
		header = header[:HeaderSize]
	}
	out.Header = append([]byte(nil), header...)
	out.Sets = Decode(f.Data, fileIndex)
	return out
}

// LoadAll reads and decodes es0.dat..es9.dat from dir. Files are read in
// parallel; the result is always FileCount entries in file-index order.
// Only I/O errors other than a missing file are returned.
func LoadAll(ctx context.Context, dir string) ([]File, error) {
	files := make([]File, FileCount)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < FileCount; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			name := Filename(i)
			f, err := datfile.Read(filepath.Join(dir, name))
			if err != nil {
				return err
			}
			f.Name = name
			files[i] = DecodeFile(f, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load equipment sets: %w", err)
	}
	return files, nil
}
