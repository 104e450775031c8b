package binary

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReader(data []byte) *SafeReader {
	return NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.bin")
}

func TestSafeReader_ReadAt(t *testing.T) {
	sr := newReader([]byte{0x01, 0x02, 0x03, 0x04})

	buf := make([]byte, 2)
	require.NoError(t, sr.ReadAt(buf, 1, "middle bytes"))
	assert.Equal(t, []byte{0x02, 0x03}, buf)
}

func TestSafeReader_Bounds(t *testing.T) {
	sr := newReader([]byte{0x01, 0x02, 0x03, 0x04})

	tests := []struct {
		name   string
		length int
		offset int64
	}{
		{name: "negative offset", length: 1, offset: -1},
		{name: "offset at end", length: 1, offset: 4},
		{name: "offset past end", length: 1, offset: 100},
		{name: "read crosses end", length: 3, offset: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sr.ReadAt(make([]byte, tt.length), tt.offset, "probe")
			require.Error(t, err)
			// Errors name the path and what was being read.
			assert.Contains(t, err.Error(), "test.bin")
			assert.Contains(t, err.Error(), "probe")
		})
	}
}

func TestRead_Endianness(t *testing.T) {
	sr := newReader([]byte{0x12, 0x34, 0x56, 0x78})

	be, err := ReadBE[uint32](sr, 0, "value")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), be)

	le, err := ReadLE[uint32](sr, 0, "value")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x78563412), le)

	be16, err := ReadBE[uint16](sr, 2, "value")
	require.NoError(t, err)
	assert.Equal(t, uint16(0x5678), be16)

	b, err := ReadBE[uint8](sr, 3, "value")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x78), b)
}

func TestRead_OutOfBounds(t *testing.T) {
	sr := newReader([]byte{0x12, 0x34})

	_, err := ReadBE[uint32](sr, 0, "too wide")
	require.Error(t, err)
}

func TestReadString(t *testing.T) {
	sr := newReader([]byte("RIFFdata"))

	s, err := sr.ReadString(0, 4, "magic")
	require.NoError(t, err)
	assert.Equal(t, "RIFF", s)

	_, err = sr.ReadString(6, 4, "tail")
	require.Error(t, err)
}

func TestSafeReader_Accessors(t *testing.T) {
	sr := newReader([]byte("abc"))
	assert.Equal(t, "test.bin", sr.Path())
	assert.Equal(t, int64(3), sr.Size())
}
