package storage

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vanatools/vanainv/internal/datfile"
	"go.uber.org/zap"
)

// fileLabels maps every known container file to its display label, in
// report order.
var fileLabels = []struct {
	Filename string
	Label    string
}{
	{"is.dat", "Inventory"},
	{"bs.dat", "Safe"},
	{"b2.dat", "Safe2"},
	{"cl.dat", "Storage"},
	{"mb.dat", "Locker"},
	{"sb.dat", "Satchel"},
	{"sk.dat", "Sack"},
	{"ca.dat", "Case"},
	{"d.dat", "Recycle Bin"},
	{"wr.dat", "Mog Wardrobe 1"},
	{"wr_2.dat", "Mog Wardrobe 2"},
	{"wr_3.dat", "Mog Wardrobe 3"},
	{"wr_4.dat", "Mog Wardrobe 4"},
	{"wr_5.dat", "Mog Wardrobe 5"},
	{"wr_6.dat", "Mog Wardrobe 6"},
	{"wr_7.dat", "Mog Wardrobe 7"},
	{"wr_8.dat", "Mog Wardrobe 8"},
}

// Filenames returns the known container files in report order.
func Filenames() []string {
	names := make([]string, len(fileLabels))
	for i, fl := range fileLabels {
		names[i] = fl.Filename
	}
	return names
}

// LabelFor returns the container label for a file name (case-insensitive).
func LabelFor(filename string) (string, bool) {
	for _, fl := range fileLabels {
		if strings.EqualFold(fl.Filename, filename) {
			return fl.Label, true
		}
	}
	return "", false
}

// Container is one decoded container file.
type Container struct {
	Filename string
	Label    string
	File     datfile.File
	Records  []Record
}

// NewContainer decodes f and sorts its records by slot. Unknown file names
// get the file name as label.
func NewContainer(f datfile.File) *Container {
	label, ok := LabelFor(f.Name)
	if !ok {
		label = f.Name
	}
	c := &Container{
		Filename: f.Name,
		Label:    label,
		File:     f,
		Records:  Decode(f.Data),
	}
	SortRecords(c.Records)
	return c
}

// SortRecords orders records by slot; slot-unknown records keep file order
// after all positioned ones.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		ki, kj := records[i].SortKey(), records[j].SortKey()
		if ki != kj {
			return ki < kj
		}
		return records[i].Index < records[j].Index
	})
}

// Character is every non-empty container of one character folder.
type Character struct {
	ID         string
	Dir        string
	Containers []*Container
}

// ItemCount returns the total number of records across containers.
func (c *Character) ItemCount() int {
	n := 0
	for _, ct := range c.Containers {
		n += len(ct.Records)
	}
	return n
}

// ScanCharacter reads every known container file under dir. Missing files and
// files with no occupied records are left out.
func ScanCharacter(dir string, log *zap.Logger) (*Character, error) {
	ch := &Character{ID: filepath.Base(dir), Dir: dir}
	for _, fl := range fileLabels {
		f, err := datfile.Read(filepath.Join(dir, fl.Filename))
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", ch.ID, err)
		}
		if !f.Exists {
			log.Debug("container file absent", zap.String("file", fl.Filename))
			continue
		}
		c := NewContainer(f)
		if len(c.Records) == 0 {
			continue
		}
		log.Debug("container decoded",
			zap.String("label", c.Label),
			zap.Int("records", len(c.Records)),
			zap.Int("size", f.Size()),
		)
		ch.Containers = append(ch.Containers, c)
	}
	return ch, nil
}
