package storage

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vanatools/vanainv/internal/datfile"
)

type rawRecord struct {
	id   uint16
	aux1 uint16
	aux2 uint32
}

func buildStorage(recs ...rawRecord) []byte {
	buf := make([]byte, HeaderSize, HeaderSize+len(recs)*RecordSize)
	for i := range buf {
		buf[i] = 0xAA
	}
	for _, r := range recs {
		var b [RecordSize]byte
		binary.LittleEndian.PutUint16(b[0:], r.id)
		binary.LittleEndian.PutUint16(b[2:], r.aux1)
		binary.LittleEndian.PutUint32(b[4:], r.aux2)
		buf = append(buf, b[:]...)
	}
	return buf
}

func TestDecode_Fields(t *testing.T) {
	data := buildStorage(rawRecord{id: 0x1234, aux1: 5, aux2: 0xDEADBEEF})

	recs := Decode(data)

	require.Len(t, recs, 1)
	assert.Equal(t, uint16(0x1234), recs[0].ItemID)
	assert.Equal(t, uint16(5), recs[0].Aux1)
	assert.Equal(t, uint32(0xDEADBEEF), recs[0].Aux2)
	assert.Equal(t, 0, recs[0].Index)
	assert.Equal(t, 5, recs[0].Slot())
}

func TestDecode_SkipsSentinels(t *testing.T) {
	data := buildStorage(
		rawRecord{id: 0},
		rawRecord{id: 4096, aux1: 1},
		rawRecord{id: 0xFFFF, aux1: 2},
		rawRecord{id: 12345, aux1: 3},
	)

	recs := Decode(data)

	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.NotEqual(t, uint16(0), r.ItemID)
		assert.NotEqual(t, uint16(0xFFFF), r.ItemID)
	}
	assert.Equal(t, 1, recs[0].Index)
	assert.Equal(t, 3, recs[1].Index)
}

func TestDecode_TrailingBytesIgnored(t *testing.T) {
	base := buildStorage(rawRecord{id: 1, aux1: 1}, rawRecord{id: 2, aux1: 2})
	for extra := 0; extra < RecordSize; extra++ {
		data := append(append([]byte{}, base...), make([]byte, extra)...)
		for i := len(base); i < len(data); i++ {
			data[i] = 0x7F
		}
		assert.Equal(t, 2, RecordCount(len(data)))
		assert.Len(t, Decode(data), 2, "extra=%d", extra)
	}
}

func TestRecordCount(t *testing.T) {
	tests := []struct {
		length int
		want   int
	}{
		{0, 0},
		{15, 0},
		{16, 0},
		{23, 0},
		{24, 1},
		{16 + 8*80, 80},
		{16 + 8*80 + 7, 80},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RecordCount(tt.length), "length=%d", tt.length)
	}
}

func TestDecode_EmptyAndShortInput(t *testing.T) {
	assert.Empty(t, Decode(nil))
	assert.Empty(t, Decode([]byte{1, 2, 3}))
	assert.Empty(t, Decode(make([]byte, HeaderSize)))
}

func TestDecode_Deterministic(t *testing.T) {
	data := buildStorage(rawRecord{id: 10, aux1: 90, aux2: 1}, rawRecord{id: 11, aux1: 4})
	assert.Equal(t, Decode(data), Decode(data))
}

func TestRecord_Slot(t *testing.T) {
	tests := []struct {
		aux1    uint16
		slot    int
		sortKey int
	}{
		{1, 1, 1},
		{80, 80, 80},
		{81, SlotUnknown, unknownSlotKey},
		{0xFFFF, SlotUnknown, unknownSlotKey},
		{0, 0, unknownSlotKey},
	}
	for _, tt := range tests {
		r := Record{ItemID: 1, Aux1: tt.aux1}
		assert.Equal(t, tt.slot, r.Slot(), "aux1=%d", tt.aux1)
		assert.Equal(t, tt.sortKey, r.SortKey(), "aux1=%d", tt.aux1)
	}
}

func TestNewContainer_SortsBySlotThenIndex(t *testing.T) {
	data := buildStorage(
		rawRecord{id: 100, aux1: 500}, // unknown, index 0
		rawRecord{id: 101, aux1: 3},
		rawRecord{id: 102, aux1: 200}, // unknown, index 2
		rawRecord{id: 103, aux1: 1},
	)

	c := NewContainer(datfile.File{Name: "bs.dat", Exists: true, Data: data})

	assert.Equal(t, "Safe", c.Label)
	var ids []uint16
	for _, r := range c.Records {
		ids = append(ids, r.ItemID)
	}
	assert.Equal(t, []uint16{103, 101, 100, 102}, ids)
}

func TestLabelFor(t *testing.T) {
	label, ok := LabelFor("WR_3.DAT")
	require.True(t, ok)
	assert.Equal(t, "Mog Wardrobe 3", label)

	_, ok = LabelFor("es0.dat")
	assert.False(t, ok)

	assert.Len(t, Filenames(), 17)
}

func TestScanCharacter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "12345")
	require.NoError(t, os.Mkdir(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "is.dat"),
		buildStorage(rawRecord{id: 4096, aux1: 2}, rawRecord{id: 4097, aux1: 1}), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wr.dat"),
		buildStorage(rawRecord{id: 12000, aux1: 1}), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bs.dat"), buildStorage(rawRecord{id: 0}), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mb.dat"), nil, 0o644))

	ch, err := ScanCharacter(dir, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, "12345", ch.ID)
	require.Len(t, ch.Containers, 2)
	assert.Equal(t, "Inventory", ch.Containers[0].Label)
	assert.Equal(t, uint16(4097), ch.Containers[0].Records[0].ItemID)
	assert.Equal(t, "Mog Wardrobe 1", ch.Containers[1].Label)
	assert.Equal(t, 3, ch.ItemCount())
}

func TestScanCharacter_MissingDir(t *testing.T) {
	ch, err := ScanCharacter(filepath.Join(t.TempDir(), "nope"), zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, ch.Containers)
}
