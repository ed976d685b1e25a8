// Package report renders decoded containers and equipment sets as text, CSV
// and JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/vanatools/vanainv/internal/data"
	"github.com/vanatools/vanainv/internal/equipset"
	"github.com/vanatools/vanainv/internal/item"
	"github.com/vanatools/vanainv/internal/storage"
)

// Options controls text rendering.
type Options struct {
	Lang      data.Language
	Organize  bool // organize order instead of slot order
	ShowEmpty bool // include empty sets and slots
	Color     bool
}

func (o Options) paint(code, s string) string {
	if !o.Color {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

func slotText(slot int) string {
	if slot <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d", slot)
}

// Inventory writes every container of ch grouped in label order.
func Inventory(w io.Writer, ch *storage.Character, l data.Lookup, opts Options) error {
	bw := &errWriter{w: w}
	bw.printf("%s\n", opts.paint("1", fmt.Sprintf("Character Inventory: %s", ch.ID)))
	bw.printf("%d items in %d containers\n", ch.ItemCount(), len(ch.Containers))

	for _, c := range ch.Containers {
		items := item.FromContainer(c, l, opts.Lang)
		if opts.Organize {
			item.Organize(items)
		}
		bw.printf("\n%s\n", opts.paint("33", fmt.Sprintf("── %s (%s) - %d items, %s",
			c.Label, c.Filename, len(items), humanize.Bytes(uint64(c.File.Size())))))
		bw.printf("  %-5s %-6s %-7s %-6s %-6s %s\n", "Slot", "ID", "Hex", "Index", "Param1", "Name")
		for _, it := range items {
			bw.printf("  %-5s %-6d %-7s %-6d %-6d %s\n",
				slotText(it.Slot), it.ID, it.HexID(), it.Index, it.Aux1, it.Name)
		}
	}
	return bw.err
}

// EquipSets writes the equipment-set analysis of a file family.
func EquipSets(w io.Writer, files []equipset.File, l data.Lookup, opts Options) error {
	bw := &errWriter{w: w}
	rule := strings.Repeat("=", 70)
	bw.printf("%s\n", opts.paint("1", "Equipment Set Analysis"))

	for _, f := range files {
		bw.printf("\n%s\nFile: %s\nSet Range: %d - %d\n%s\n", rule, f.Filename, f.RangeStart(), f.RangeEnd(), rule)
		if !f.Exists {
			bw.printf("  (file not found)\n")
			continue
		}
		bw.printf("  File Size: %s (%s bytes)\n", humanize.Bytes(uint64(f.Size)), humanize.Comma(int64(f.Size)))

		for _, s := range f.Sets {
			if s.Err != nil {
				if opts.ShowEmpty {
					bw.printf("\n  --- Set #%d: %s\n", s.GlobalIndex, opts.paint("31", s.Err.Error()))
				}
				continue
			}
			if !s.HasItems() && !opts.ShowEmpty {
				continue
			}
			name := s.Name
			if name == "" {
				name = "(unnamed)"
			}
			bw.printf("\n  --- Set #%d: %s ---\n", s.GlobalIndex, opts.paint("36", name))
			for _, sl := range s.Slots {
				writeSlot(bw, sl, l, opts)
			}
		}
	}
	return bw.err
}

func writeSlot(bw *errWriter, sl equipset.Slot, l data.Lookup, opts Options) {
	if sl.Empty() {
		if opts.ShowEmpty {
			bw.printf("    %-6s: (empty)\n", sl.Kind.Key())
		}
		return
	}
	name := ""
	storageText := sl.Storage.String()
	if it, ok := item.FromEquipSlot(sl, l, opts.Lang); ok {
		name = " [" + it.Name + "]"
		storageText = it.Container
	}
	if !sl.Storage.Confident() {
		storageText = opts.paint("35", storageText)
	}
	bw.printf("    %-6s: ID=%5d%s\n", sl.Kind.Key(), sl.ItemID, name)
	bw.printf("            Storage=%s, Idx=%d\n", storageText, sl.BagIndex)
}

// errWriter keeps the first write error so report code can print freely.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
