// Package riff decodes metadata from RIFF/WAVE audio: the fmt chunk's
// technical properties and LIST/INFO description strings.
package riff

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

// maxChunks bounds the chunk walk against hostile files.
const maxChunks = 256

type plugin struct{}

func (p *plugin) Name() string { return "riff" }

func (p *plugin) Formats() []types.Format {
	return []types.Format{types.FormatWAV}
}

// FieldCount reports the distinct cataloged fields this plugin can emit.
func (p *plugin) FieldCount() int { return 10 }

// codecNames maps WAVE format tags to codec names.
var codecNames = map[uint16]string{
	0x0001: "pcm",
	0x0003: "ieee_float",
	0x0006: "alaw",
	0x0007: "mulaw",
	0x0055: "mp3",
	0xFFFE: "extensible",
}

// infoFields maps LIST/INFO chunk IDs to qualified field names.
var infoFields = map[string]string{
	"INAM": "riff-info:title",
	"IART": "riff-info:artist",
	"ISFT": "riff-info:software",
	"ICRD": "riff-info:creation_date",
	"ICMT": "riff-info:comment",
}

func (p *plugin) Extract(ctx context.Context, sr *binary.SafeReader) (*types.Result, error) {
	head, err := sr.ReadString(0, 4, "RIFF magic")
	if err != nil {
		return nil, err
	}
	wave, err := sr.ReadString(8, 4, "WAVE form type")
	if err != nil {
		return nil, err
	}
	if head != "RIFF" || wave != "WAVE" {
		return nil, fmt.Errorf("%s: not a RIFF/WAVE file", sr.Path())
	}

	result := &types.Result{}

	offset := int64(12)
	for i := 0; i < maxChunks && offset+8 <= sr.Size(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id, err := sr.ReadString(offset, 4, "chunk id")
		if err != nil {
			break
		}
		size, err := binary.ReadLE[uint32](sr, offset+4, "chunk size")
		if err != nil {
			break
		}
		body := offset + 8

		switch id {
		case "fmt ":
			if size >= 16 {
				codec, _ := binary.ReadLE[uint16](sr, body, "audio format")
				channels, _ := binary.ReadLE[uint16](sr, body+2, "channel count")
				sampleRate, _ := binary.ReadLE[uint32](sr, body+4, "sample rate")
				byteRate, _ := binary.ReadLE[uint32](sr, body+8, "byte rate")
				bits, _ := binary.ReadLE[uint16](sr, body+14, "bits per sample")

				if name, ok := codecNames[codec]; ok {
					result.Add("wav:codec", name)
				} else {
					result.Add("wav:codec", fmt.Sprintf("unknown(0x%04X)", codec))
				}
				result.Add("wav:channels", int(channels))
				result.Add("wav:sample_rate", int(sampleRate))
				result.Add("wav:byte_rate", int(byteRate))
				result.Add("wav:bits_per_sample", int(bits))
			}

		case "LIST":
			if size >= 4 {
				if form, err := sr.ReadString(body, 4, "LIST form type"); err == nil && form == "INFO" {
					parseInfoList(sr, body+4, body+int64(size), result)
				}
			}
		}

		// Chunks are word-aligned.
		offset = body + int64(size)
		if size%2 == 1 {
			offset++
		}
	}

	return result, nil
}

// parseInfoList walks the subchunks of a LIST/INFO chunk.
func parseInfoList(sr *binary.SafeReader, offset, end int64, result *types.Result) {
	for offset+8 <= end {
		id, err := sr.ReadString(offset, 4, "INFO subchunk id")
		if err != nil {
			return
		}
		size, err := binary.ReadLE[uint32](sr, offset+4, "INFO subchunk size")
		if err != nil {
			return
		}

		if name, ok := infoFields[id]; ok && size > 0 && offset+8+int64(size) <= end {
			if text, err := sr.ReadString(offset+8, int(size), id+" text"); err == nil {
				if text = strings.TrimRight(text, "\x00"); text != "" {
					result.Add(name, text)
				}
			}
		}

		offset += 8 + int64(size)
		if size%2 == 1 {
			offset++
		}
	}
}
