package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/vanatools/vanainv/internal/data"
	"github.com/vanatools/vanainv/internal/equipset"
	"github.com/vanatools/vanainv/internal/item"
)

type slotJSON struct {
	StorageID    uint8  `json:"storage_id"`
	StorageName  string `json:"storage_name"`
	StorageMatch string `json:"storage_match"`
	BagIndex     uint8  `json:"bag_index"`
	ItemID       uint16 `json:"item_id"`
	ItemName     string `json:"item_name,omitempty"`
	Raw          string `json:"raw"`
	Empty        bool   `json:"empty"`
}

type setJSON struct {
	Index       int                 `json:"index"`
	GlobalIndex int                 `json:"global_index"`
	Name        string              `json:"name"`
	Error       string              `json:"error,omitempty"`
	Slots       map[string]slotJSON `json:"slots"`
}

type fileJSON struct {
	Filename      string    `json:"filename"`
	FileIndex     int       `json:"file_index"`
	Exists        bool      `json:"exists"`
	FileSize      int       `json:"file_size,omitempty"`
	Digest        string    `json:"digest,omitempty"`
	SetRangeStart int       `json:"set_range_start"`
	SetRangeEnd   int       `json:"set_range_end"`
	Header        string    `json:"header,omitempty"`
	Sets          []setJSON `json:"sets,omitempty"`
}

func equipSetsJSON(files []equipset.File, l data.Lookup, lang data.Language) []fileJSON {
	out := make([]fileJSON, 0, len(files))
	for _, f := range files {
		fj := fileJSON{
			Filename:      f.Filename,
			FileIndex:     f.FileIndex,
			Exists:        f.Exists,
			FileSize:      f.Size,
			Digest:        f.Digest,
			SetRangeStart: f.RangeStart(),
			SetRangeEnd:   f.RangeEnd(),
			Header:        f.HeaderHex(),
		}
		for _, s := range f.Sets {
			sj := setJSON{
				Index:       s.Index,
				GlobalIndex: s.GlobalIndex,
				Name:        s.Name,
				Slots:       make(map[string]slotJSON, len(s.Slots)),
			}
			if s.Err != nil {
				sj.Error = s.Err.Error()
			}
			for _, sl := range s.Slots {
				slj := slotJSON{
					StorageID:    sl.StorageID,
					StorageName:  sl.Storage.String(),
					StorageMatch: sl.Storage.Kind.String(),
					BagIndex:     sl.BagIndex,
					ItemID:       sl.ItemID,
					Raw:          sl.RawHex(),
					Empty:        sl.Empty(),
				}
				if it, ok := item.FromEquipSlot(sl, l, lang); ok {
					slj.StorageName = it.Container
					slj.ItemName = it.Name
				}
				sj.Slots[sl.Kind.Key()] = slj
			}
			fj.Sets = append(fj.Sets, sj)
		}
		out = append(out, fj)
	}
	return out
}

// WriteEquipSetsJSON writes the equipment-set analysis as indented JSON.
func WriteEquipSetsJSON(w io.Writer, files []equipset.File, l data.Lookup, lang data.Language) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(equipSetsJSON(files, l, lang)); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// ExportEquipSetsJSON writes the analysis to path, zstd-compressed when path
// ends in ".zst".
func ExportEquipSetsJSON(path string, files []equipset.File, l data.Lookup, lang data.Language) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if !strings.HasSuffix(strings.ToLower(path), ".zst") {
		return WriteEquipSetsJSON(f, files, l, lang)
	}

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if err := WriteEquipSetsJSON(zw, files, l, lang); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("zstd close: %w", err)
	}
	return nil
}
