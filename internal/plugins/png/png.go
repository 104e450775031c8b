// Package png decodes metadata from PNG images: IHDR geometry, textual
// chunks, and the chunk inventory.
package png

import (
	"context"
	"fmt"
	"strings"

	"github.com/openmeta/metascope/internal/binary"
	"github.com/openmeta/metascope/internal/registry"
	"github.com/openmeta/metascope/internal/types"
)

func init() {
	registry.Register(&plugin{})
}

// signatureLen is the fixed PNG signature length.
const signatureLen = 8

// maxChunks bounds the chunk walk against hostile files.
const maxChunks = 256

type plugin struct{}

func (p *plugin) Name() string { return "png" }

func (p *plugin) Formats() []types.Format {
	return []types.Format{types.FormatPNG}
}

// FieldCount reports the distinct cataloged fields this plugin can emit.
func (p *plugin) FieldCount() int { return 6 }

// colorTypeNames maps IHDR color type codes to names.
var colorTypeNames = map[uint8]string{
	0: "grayscale",
	2: "rgb",
	3: "palette",
	4: "grayscale_alpha",
	6: "rgba",
}

func (p *plugin) Extract(ctx context.Context, sr *binary.SafeReader) (*types.Result, error) {
	result := &types.Result{}

	// IHDR is required to be the first chunk, directly after the signature.
	ihdrType, err := sr.ReadString(signatureLen+4, 4, "IHDR chunk type")
	if err != nil {
		return nil, err
	}
	if ihdrType != "IHDR" {
		return nil, fmt.Errorf("%s: first chunk is %q, want IHDR", sr.Path(), ihdrType)
	}

	width, err := binary.ReadBE[uint32](sr, signatureLen+8, "IHDR width")
	if err != nil {
		return nil, err
	}
	height, err := binary.ReadBE[uint32](sr, signatureLen+12, "IHDR height")
	if err != nil {
		return nil, err
	}
	bitDepth, err := binary.ReadBE[uint8](sr, signatureLen+16, "IHDR bit depth")
	if err != nil {
		return nil, err
	}
	colorType, err := binary.ReadBE[uint8](sr, signatureLen+17, "IHDR color type")
	if err != nil {
		return nil, err
	}
	interlace, err := binary.ReadBE[uint8](sr, signatureLen+20, "IHDR interlace")
	if err != nil {
		return nil, err
	}

	result.Add("png:width", int(width))
	result.Add("png:height", int(height))
	result.Add("png:bit_depth", int(bitDepth))
	if name, ok := colorTypeNames[colorType]; ok {
		result.Add("png:color_type", name)
	} else {
		result.Add("png:color_type", fmt.Sprintf("unknown(%d)", colorType))
	}
	result.Add("png:interlace", interlace == 1)

	// Walk the chunk sequence for the inventory and textual chunks.
	var chunks []string
	offset := int64(signatureLen)
	for i := 0; i < maxChunks && offset+8 <= sr.Size(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		length, err := binary.ReadBE[uint32](sr, offset, "chunk length")
		if err != nil {
			break
		}
		ctype, err := sr.ReadString(offset+4, 4, "chunk type")
		if err != nil {
			break
		}
		chunks = append(chunks, ctype)

		if (ctype == "tEXt" || ctype == "iTXt") && length > 0 && length < 1<<16 {
			if text, err := sr.ReadString(offset+8, int(length), ctype+" data"); err == nil {
				if key, value, ok := decodeTextChunk(ctype, text); ok {
					result.Add("png:text."+strings.ToLower(key), value)
				}
			}
		}

		if ctype == "IEND" {
			break
		}
		// length + type + data + CRC
		offset += 8 + int64(length) + 4
	}
	result.Add("png:chunks", chunks)

	return result, nil
}

// decodeTextChunk splits a tEXt or iTXt payload into keyword and value.
// Compressed iTXt payloads are skipped.
func decodeTextChunk(ctype, text string) (key, value string, ok bool) {
	key, rest, ok := strings.Cut(text, "\x00")
	if !ok || key == "" {
		return "", "", false
	}
	if ctype == "tEXt" {
		return key, rest, true
	}

	// iTXt: compression flag, compression method, language tag \0,
	// translated keyword \0, UTF-8 text.
	if len(rest) < 2 || rest[0] != 0 {
		return "", "", false
	}
	rest = rest[2:]
	if _, rest, ok = strings.Cut(rest, "\x00"); !ok {
		return "", "", false
	}
	if _, rest, ok = strings.Cut(rest, "\x00"); !ok {
		return "", "", false
	}
	return key, rest, true
}
