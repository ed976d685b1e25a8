package datfile

import (
	"encoding/binary"
	"strings"

	"golang.org/x/text/encoding/japanese"
)

// Reader reads fixed-layout little-endian fields from a .dat byte slice.
// Reads past the end return zero values instead of failing; callers check
// Remaining() when a short read matters.
type Reader struct {
	data []byte
	off  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the current read position.
func (r *Reader) Offset() int {
	return r.off
}

// Skip advances the read position by n bytes, clamped to the end of data.
func (r *Reader) Skip(n int) {
	r.off += n
	if r.off > len(r.data) {
		r.off = len(r.data)
	}
}

// ReadC reads 1 unsigned byte.
func (r *Reader) ReadC() byte {
	if r.off >= len(r.data) {
		return 0
	}
	v := r.data[r.off]
	r.off++
	return v
}

// ReadH reads 2 bytes as little-endian uint16.
func (r *Reader) ReadH() uint16 {
	if r.off+2 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	v := binary.LittleEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v
}

// ReadD reads 4 bytes as little-endian uint32.
func (r *Reader) ReadD() uint32 {
	if r.off+4 > len(r.data) {
		r.off = len(r.data)
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

// ReadFixedS reads an n-byte NUL-padded Shift-JIS field and returns UTF-8.
// Everything after the first NUL is discarded.
func (r *Reader) ReadFixedS(n int) string {
	return DecodeShiftJIS(r.ReadBytes(n))
}

// ReadBytes reads n raw bytes.
func (r *Reader) ReadBytes(n int) []byte {
	if r.off+n > len(r.data) {
		remaining := r.data[r.off:]
		r.off = len(r.data)
		return remaining
	}
	b := make([]byte, n)
	copy(b, r.data[r.off:r.off+n])
	r.off += n
	return b
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.off
}

// DecodeShiftJIS converts a NUL-terminated Shift-JIS field to a trimmed UTF-8
// string. Invalid sequences become U+FFFD.
func DecodeShiftJIS(raw []byte) string {
	for i, b := range raw {
		if b == 0 {
			raw = raw[:i]
			break
		}
	}
	if len(raw) == 0 {
		return ""
	}
	// Fast path: if all bytes are ASCII, no conversion needed
	allASCII := true
	for _, b := range raw {
		if b >= 0x80 {
			allASCII = false
			break
		}
	}
	if allASCII {
		return strings.TrimSpace(string(raw))
	}
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.TrimSpace(strings.ToValidUTF8(string(raw), "�"))
	}
	return strings.TrimSpace(string(decoded))
}
