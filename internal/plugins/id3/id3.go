// Package id3 decodes ID3v2.3 and ID3v2.4 tags from MP3 files: the tag
// header, the common text frames, and the frame inventory.
package id3

import (
	"context"
	stdbinary "encoding/binary"
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/openmeta/metascope/internal/binary"
	"github.com/openmeta/metascope/internal/registry"
	"github.com/openmeta/metascope/internal/types"
)

func init() {
	registry.Register(&plugin{})
}

// maxFrameSize rejects frames larger than any sane text frame.
const maxFrameSize = 1 << 20

type plugin struct{}

func (p *plugin) Name() string { return "id3v2" }

func (p *plugin) Formats() []types.Format {
	return []types.Format{types.FormatMP3}
}

// FieldCount reports the distinct cataloged fields this plugin can emit.
func (p *plugin) FieldCount() int { return 10 }

// textFrames maps ID3v2 text frame IDs to qualified field names.
var textFrames = map[string]string{
	"TIT2": "id3v2:title",
	"TPE1": "id3v2:artist",
	"TALB": "id3v2:album",
	"TYER": "id3v2:year", // ID3v2.3
	"TDRC": "id3v2:year", // ID3v2.4 recording time
	"TRCK": "id3v2:track",
	"TCON": "id3v2:genre",
	"TSSE": "id3v2:encoder",
}

func (p *plugin) Extract(ctx context.Context, sr *binary.SafeReader) (*types.Result, error) {
	header := make([]byte, 10)
	if err := sr.ReadAt(header, 0, "ID3v2 header"); err != nil {
		return nil, err
	}
	if string(header[0:3]) != "ID3" {
		// Bare MP3 frames carry no tag; that is a valid empty result.
		return &types.Result{}, nil
	}

	version := header[3]
	revision := header[4]
	flags := header[5]
	tagSize := decodeSynchsafe(header[6:10])

	if version != 3 && version != 4 {
		return nil, fmt.Errorf("%s: unsupported ID3v2 version 2.%d", sr.Path(), version)
	}

	result := &types.Result{}
	result.Add("id3v2:version", fmt.Sprintf("2.%d.%d", version, revision))
	result.Add("id3v2:tag_size", int(tagSize))

	// Skip the extended header if present.
	offset := int64(10)
	if flags&0x40 != 0 {
		extBuf := make([]byte, 4)
		if err := sr.ReadAt(extBuf, offset, "extended header size"); err == nil {
			if version == 4 {
				offset += int64(decodeSynchsafe(extBuf))
			} else {
				offset += int64(stdbinary.BigEndian.Uint32(extBuf)) + 4
			}
		}
	}

	tagEnd := int64(10 + tagSize)
	if tagEnd > sr.Size() {
		tagEnd = sr.Size()
	}

	var frameIDs []string
	for offset+10 <= tagEnd {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		frameHeader := make([]byte, 10)
		if err := sr.ReadAt(frameHeader, offset, "frame header"); err != nil {
			break
		}
		// Padding after the last frame.
		if frameHeader[0] == 0 {
			break
		}

		frameID := string(frameHeader[0:4])
		var frameSize uint32
		if version == 4 {
			frameSize = decodeSynchsafe(frameHeader[4:8])
		} else {
			frameSize = stdbinary.BigEndian.Uint32(frameHeader[4:8])
		}
		if frameSize == 0 || frameSize > maxFrameSize {
			break
		}
		frameIDs = append(frameIDs, frameID)

		if name, ok := textFrames[frameID]; ok {
			data := make([]byte, frameSize)
			if err := sr.ReadAt(data, offset+10, frameID+" frame data"); err == nil && len(data) > 1 {
				if text := decodeText(data[1:], data[0]); text != "" {
					result.Add(name, strings.TrimRight(text, "\x00"))
				}
			}
		}

		offset += 10 + int64(frameSize)
	}
	result.Add("id3v2:frame_ids", frameIDs)

	return result, nil
}

// decodeSynchsafe decodes a synchsafe integer (7 bits per byte).
func decodeSynchsafe(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// decodeText decodes frame text per the ID3v2 encoding byte.
func decodeText(data []byte, encoding byte) string {
	if len(data) == 0 {
		return ""
	}
	switch encoding {
	case 1: // UTF-16 with BOM
		if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
			return decodeUTF16(data[2:], stdbinary.LittleEndian)
		}
		if len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF {
			return decodeUTF16(data[2:], stdbinary.BigEndian)
		}
		return decodeUTF16(data, stdbinary.BigEndian)
	case 2: // UTF-16BE (ID3v2.4)
		return decodeUTF16(data, stdbinary.BigEndian)
	default: // ISO-8859-1 and UTF-8 pass through
		return string(data)
	}
}

// decodeUTF16 decodes UTF-16 text with the given byte order.
func decodeUTF16(data []byte, order stdbinary.ByteOrder) string {
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}
	u16 := make([]uint16, len(data)/2)
	for i := range u16 {
		u16[i] = order.Uint16(data[i*2 : i*2+2])
	}
	return string(utf16.Decode(u16))
}
