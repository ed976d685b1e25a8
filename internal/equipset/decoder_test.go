package equipset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanatools/vanainv/internal/datfile"
)

func buildSet(name string, slots map[SlotKind][SlotSize]byte) []byte {
	b := make([]byte, SetSize)
	copy(b[:SetNameSize], name)
	for k, raw := range slots {
		off := equipmentStart + int(k)*SlotSize
		copy(b[off:off+SlotSize], raw[:])
	}
	return b
}

func buildFile(sets ...[]byte) []byte {
	data := make([]byte, HeaderSize)
	for i := range data {
		data[i] = byte(i)
	}
	for i := 0; i < SetCount; i++ {
		if i < len(sets) {
			data = append(data, sets[i]...)
		} else {
			data = append(data, make([]byte, SetSize)...)
		}
	}
	return data
}

func TestDecodeSet_Name(t *testing.T) {
	s := DecodeSet(buildSet(" TP Set \x00junk", nil), 0, 0)
	require.NoError(t, s.Err)
	assert.Equal(t, "TP Set", s.Name)
	assert.Equal(t, 1, s.GlobalIndex)
}

func TestDecodeSlot(t *testing.T) {
	empty := DecodeSlot(SlotMain, []byte{0x00, 0x00, 0x00, 0x00})
	assert.True(t, empty.Empty())

	s := DecodeSlot(SlotHead, []byte{0x01, 0x05, 0x34, 0x12})
	assert.False(t, s.Empty())
	assert.Equal(t, uint8(1), s.StorageID)
	assert.Equal(t, uint8(5), s.BagIndex)
	assert.Equal(t, uint16(0x1234), s.ItemID)
	assert.Equal(t, "01053412", s.RawHex())
	assert.Equal(t, "Safe", s.Storage.String())
	assert.Equal(t, SlotHead, s.Kind)

	short := DecodeSlot(SlotBack, []byte{0x01})
	assert.True(t, short.Empty())
}

func TestSlot_EmptyNeedsBothZero(t *testing.T) {
	// storage 0 is the inventory; an item there is not empty
	s := DecodeSlot(SlotMain, []byte{0x00, 0x03, 0x10, 0x00})
	assert.False(t, s.Empty())
	assert.Equal(t, "Inventory", s.Storage.String())

	s = DecodeSlot(SlotMain, []byte{0x08, 0x00, 0x00, 0x00})
	assert.False(t, s.Empty())
}

func TestDecode_FullFile(t *testing.T) {
	first := buildSet("TP Set", map[SlotKind][SlotSize]byte{
		SlotMain: {0x00, 0x01, 0x34, 0x12},
		SlotBack: {0x28, 0x07, 0x01, 0x30},
	})
	second := buildSet("WS", nil)
	data := buildFile(first, second)

	sets := Decode(data, 3)

	require.Len(t, sets, SetCount)
	assert.Equal(t, "TP Set", sets[0].Name)
	assert.Equal(t, 1, sets[0].Index)
	assert.Equal(t, 61, sets[0].GlobalIndex)
	assert.Equal(t, 80, sets[19].GlobalIndex)
	assert.NoError(t, sets[0].Err)
	assert.True(t, sets[0].HasItems())
	assert.False(t, sets[1].HasItems())
	assert.Equal(t, "WS", sets[1].Name)

	main := sets[0].Slots[SlotMain]
	assert.Equal(t, uint16(0x1234), main.ItemID)
	assert.Equal(t, uint8(1), main.BagIndex)

	back := sets[0].Slots[SlotBack]
	assert.Equal(t, SlotBack, back.Kind)
	assert.Equal(t, uint8(7), back.BagIndex)
	assert.Equal(t, ResolveOffset, back.Storage.Kind)
	assert.Equal(t, "Wardrobe 1 (+0x20)", back.Storage.String())

	for k, s := range sets[1].Slots {
		assert.Equal(t, SlotKind(k), s.Kind)
		assert.True(t, s.Empty())
	}
}

func TestDecode_TruncatedSetsAreLocal(t *testing.T) {
	data := buildFile(buildSet("Idle", nil), buildSet("Nuke", nil))
	data = data[:HeaderSize+SetSize+SetSize/2]

	sets := Decode(data, 0)

	require.Len(t, sets, SetCount)
	assert.NoError(t, sets[0].Err)
	assert.Equal(t, "Idle", sets[0].Name)
	for i := 1; i < SetCount; i++ {
		assert.True(t, errors.Is(sets[i].Err, ErrTruncated), "set %d", i)
		assert.Equal(t, i+1, sets[i].GlobalIndex)
		assert.Equal(t, SlotBack, sets[i].Slots[SlotBack].Kind)
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	assert.Empty(t, Decode(nil, 0))
	assert.Empty(t, Decode([]byte{}, 3))
}

func TestDecode_ShortHeaderOnly(t *testing.T) {
	sets := Decode(make([]byte, HeaderSize), 0)
	require.Len(t, sets, SetCount)
	for _, s := range sets {
		assert.ErrorIs(t, s.Err, ErrTruncated)
	}
}

func TestDecodeFile_ZeroLength(t *testing.T) {
	f := DecodeFile(datfile.File{Name: "es0.dat", Exists: true, Data: []byte{}}, 0)
	assert.True(t, f.Exists)
	assert.Zero(t, f.Size)
	assert.Empty(t, f.Sets)
	assert.Empty(t, f.Header)
}

func TestDecode_Deterministic(t *testing.T) {
	data := buildFile(buildSet("A", map[SlotKind][SlotSize]byte{SlotRing1: {0x01, 0x02, 0x03, 0x04}}))
	assert.Equal(t, Decode(data, 1), Decode(data, 1))
}

func TestFileIndexFromName(t *testing.T) {
	tests := []struct {
		name string
		want int
		ok   bool
	}{
		{"es0.dat", 0, true},
		{"ES9.DAT", 9, true},
		{"/x/y/es7.dat", 7, true},
		{"es.dat", 0, false},
		{"esx.dat", 0, false},
		{"is.dat", 0, false},
	}
	for _, tt := range tests {
		got, ok := FileIndexFromName(tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

func TestDecodeFile(t *testing.T) {
	data := buildFile(buildSet("Melee", nil))
	f := DecodeFile(datfile.File{Name: "es2.dat", Exists: true, Data: data}, 2)

	assert.True(t, f.Exists)
	assert.Equal(t, HeaderSize+SetCount*SetSize, f.Size)
	assert.Equal(t, 41, f.RangeStart())
	assert.Equal(t, 60, f.RangeEnd())
	assert.Len(t, f.Header, HeaderSize)
	assert.Equal(t, "000102030405060708090a0b0c0d0e0f1011121314151617", f.HeaderHex())
	require.Len(t, f.Sets, SetCount)
	assert.Equal(t, 41, f.Sets[0].GlobalIndex)

	missing := DecodeFile(datfile.File{Name: "es3.dat"}, 3)
	assert.False(t, missing.Exists)
	assert.Empty(t, missing.Sets)
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "es0.dat"), buildFile(buildSet("First", nil)), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "es4.dat"), buildFile(buildSet("Fifth", nil)), 0o644))

	files, err := LoadAll(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, files, FileCount)

	for i, f := range files {
		assert.Equal(t, i, f.FileIndex)
		assert.Equal(t, Filename(i), f.Filename)
		switch i {
		case 0, 4:
			assert.True(t, f.Exists)
			require.Len(t, f.Sets, SetCount)
		default:
			assert.False(t, f.Exists)
		}
	}
	assert.Equal(t, "First", files[0].Sets[0].Name)
	assert.Equal(t, "Fifth", files[4].Sets[0].Name)
	assert.Equal(t, 81, files[4].Sets[0].GlobalIndex)
}
