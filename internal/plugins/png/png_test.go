package png

import (
	"bytes"
	"context"
	stdbinary "encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmeta/metascope/internal/binary"
)

var signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

func chunk(ctype string, data []byte) []byte {
	buf := stdbinary.BigEndian.AppendUint32(nil, uint32(len(data)))
	buf = append(buf, ctype...)
	buf = append(buf, data...)
	return append(buf, 0, 0, 0, 0) // CRC is never verified
}

func ihdr(width, height uint32, depth, colorType, interlace uint8) []byte {
	data := stdbinary.BigEndian.AppendUint32(nil, width)
	data = stdbinary.BigEndian.AppendUint32(data, height)
	return append(data, depth, colorType, 0, 0, interlace)
}

func extract(t *testing.T, data []byte) map[string]any {
	t.Helper()
	sr := binary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.png")
	result, err := (&plugin{}).Extract(context.Background(), sr)
	require.NoError(t, err)

	fields := make(map[string]any, len(result.Fields))
	for _, f := range result.Fields {
		fields[f.Name] = f.Value
	}
	return fields
}

func TestExtract_Geometry(t *testing.T) {
	data := append(append([]byte{}, signature...), chunk("IHDR", ihdr(640, 480, 8, 2, 0))...)
	data = append(data, chunk("IEND", nil)...)

	fields := extract(t, data)
	assert.Equal(t, 640, fields["png:width"])
	assert.Equal(t, 480, fields["png:height"])
	assert.Equal(t, 8, fields["png:bit_depth"])
	assert.Equal(t, "rgb", fields["png:color_type"])
	assert.Equal(t, false, fields["png:interlace"])
}

func TestExtract_InterlacedPalette(t *testing.T) {
	data := append(append([]byte{}, signature...), chunk("IHDR", ihdr(16, 16, 4, 3, 1))...)
	data = append(data, chunk("IEND", nil)...)

	fields := extract(t, data)
	assert.Equal(t, "palette", fields["png:color_type"])
	assert.Equal(t, true, fields["png:interlace"])
}

func TestExtract_UnknownColorType(t *testing.T) {
	data := append(append([]byte{}, signature...), chunk("IHDR", ihdr(1, 1, 8, 9, 0))...)
	data = append(data, chunk("IEND", nil)...)

	fields := extract(t, data)
	assert.Equal(t, "unknown(9)", fields["png:color_type"])
}

func TestExtract_ChunkInventory(t *testing.T) {
	data := append(append([]byte{}, signature...), chunk("IHDR", ihdr(1, 1, 8, 0, 0))...)
	data = append(data, chunk("gAMA", []byte{0, 1, 134, 160})...)
	data = append(data, chunk("IDAT", []byte{0})...)
	data = append(data, chunk("IEND", nil)...)

	fields := extract(t, data)
	assert.Equal(t, []string{"IHDR", "gAMA", "IDAT", "IEND"}, fields["png:chunks"])
}

func TestExtract_TextChunk(t *testing.T) {
	data := append(append([]byte{}, signature...), chunk("IHDR", ihdr(1, 1, 8, 0, 0))...)
	data = append(data, chunk("tEXt", []byte("Software\x00pngcrush"))...)
	data = append(data, chunk("IEND", nil)...)

	fields := extract(t, data)
	assert.Equal(t, "pngcrush", fields["png:text.software"])
}

func TestExtract_InternationalTextChunk(t *testing.T) {
	data := append(append([]byte{}, signature...), chunk("IHDR", ihdr(1, 1, 8, 0, 0))...)
	// keyword \0 flag method language \0 translated keyword \0 text
	data = append(data, chunk("iTXt", []byte("Title\x00\x00\x00de\x00Titel\x00Sonnenaufgang"))...)
	data = append(data, chunk("IEND", nil)...)

	fields := extract(t, data)
	assert.Equal(t, "Sonnenaufgang", fields["png:text.title"])
}

func TestExtract_CompressedTextChunkSkipped(t *testing.T) {
	data := append(append([]byte{}, signature...), chunk("IHDR", ihdr(1, 1, 8, 0, 0))...)
	data = append(data, chunk("iTXt", []byte("Title\x00\x01\x00\x00\x00\x78\x9c"))...)
	data = append(data, chunk("IEND", nil)...)

	fields := extract(t, data)
	assert.NotContains(t, fields, "png:text.title")
}

func TestExtract_WalkStopsAtIEND(t *testing.T) {
	data := append(append([]byte{}, signature...), chunk("IHDR", ihdr(1, 1, 8, 0, 0))...)
	data = append(data, chunk("IEND", nil)...)
	// Trailing garbage after IEND must not enter the inventory.
	data = append(data, chunk("junk", []byte{1, 2, 3})...)

	fields := extract(t, data)
	assert.Equal(t, []string{"IHDR", "IEND"}, fields["png:chunks"])
}

func TestExtract_FirstChunkNotIHDR(t *testing.T) {
	data := append(append([]byte{}, signature...), chunk("gAMA", []byte{0, 0, 0, 0})...)

	sr := binary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.png")
	_, err := (&plugin{}).Extract(context.Background(), sr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IHDR")
}

func TestExtract_Truncated(t *testing.T) {
	data := append(append([]byte{}, signature...), 0, 0, 0, 13, 'I', 'H', 'D', 'R', 0, 0)

	sr := binary.NewSafeReader(bytes.NewReader(data), int64(len(data)), "test.png")
	_, err := (&plugin{}).Extract(context.Background(), sr)
	require.Error(t, err)
}
