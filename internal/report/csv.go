package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/vanatools/vanainv/internal/data"
	"github.com/vanatools/vanainv/internal/item"
	"github.com/vanatools/vanainv/internal/storage"
)

var csvHeader = []string{"Storage", "Filename", "Slot", "ItemID", "HexID", "Name", "RecordIndex", "Param1"}

// CSV writes one row per item of ch. Slot is blank when unknown.
func CSV(w io.Writer, ch *storage.Character, l data.Lookup, lang data.Language) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, c := range ch.Containers {
		for _, it := range item.FromContainer(c, l, lang) {
			slot := ""
			if it.Slot > 0 {
				slot = strconv.Itoa(it.Slot)
			}
			row := []string{
				c.Label,
				c.Filename,
				slot,
				strconv.Itoa(int(it.ID)),
				it.HexID(),
				it.Name,
				strconv.Itoa(it.Index),
				strconv.Itoa(int(it.Aux1)),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
