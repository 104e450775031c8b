// Package jpeg decodes metadata from JPEG images by walking the marker
// segments up to the scan data: frame geometry, JFIF density, Exif
// presence, and embedded comments.
package jpeg

import (
	"context"
	"fmt"

	"github.com/openmeta/metascope/internal/binary"
	"github.com/openmeta/metascope/internal/registry"
	"github.com/openmeta/metascope/internal/types"
)

func init() {
	registry.Register(&plugin{})
}

// maxSegments bounds the marker walk against hostile files.
const maxSegments = 512

type plugin struct{}

func (p *plugin) Name() string { return "jpeg" }

func (p *plugin) Formats() []types.Format {
	return []types.Format{types.FormatJPEG}
}

// FieldCount reports the distinct cataloged fields this plugin can emit.
func (p *plugin) FieldCount() int { return 11 }

// densityUnitNames maps JFIF density unit codes to names.
var densityUnitNames = map[uint8]string{
	0: "aspect-ratio",
	1: "dpi",
	2: "dpcm",
}

func (p *plugin) Extract(ctx context.Context, sr *binary.SafeReader) (*types.Result, error) {
	soi, err := binary.ReadBE[uint16](sr, 0, "SOI marker")
	if err != nil {
		return nil, err
	}
	if soi != 0xFFD8 {
		return nil, fmt.Errorf("%s: missing SOI marker", sr.Path())
	}

	result := &types.Result{}
	var segments []string

	offset := int64(2)
	for i := 0; i < maxSegments && offset+4 <= sr.Size(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		marker, err := binary.ReadBE[uint16](sr, offset, "segment marker")
		if err != nil {
			break
		}
		if marker>>8 != 0xFF {
			break
		}
		kind := uint8(marker)
		segments = append(segments, fmt.Sprintf("FF%02X", kind))

		// Standalone markers carry no length.
		if kind == 0x01 || (kind >= 0xD0 && kind <= 0xD7) {
			offset += 2
			continue
		}

		length, err := binary.ReadBE[uint16](sr, offset+2, "segment length")
		if err != nil || length < 2 {
			break
		}
		body := offset + 4

		switch {
		case isSOF(kind):
			precision, err := binary.ReadBE[uint8](sr, body, "SOF precision")
			if err != nil {
				break
			}
			height, err := binary.ReadBE[uint16](sr, body+1, "SOF height")
			if err != nil {
				break
			}
			width, err := binary.ReadBE[uint16](sr, body+3, "SOF width")
			if err != nil {
				break
			}
			result.Add("jpeg:width", int(width))
			result.Add("jpeg:height", int(height))
			result.Add("jpeg:precision", int(precision))
			result.Add("jpeg:progressive", kind == 0xC2 || kind == 0xC6 || kind == 0xCA || kind == 0xCE)

		case kind == 0xE0 && length >= 16: // APP0
			if tag, err := sr.ReadString(body, 5, "APP0 identifier"); err == nil && tag == "JFIF\x00" {
				major, _ := binary.ReadBE[uint8](sr, body+5, "JFIF major version")
				minor, _ := binary.ReadBE[uint8](sr, body+6, "JFIF minor version")
				units, _ := binary.ReadBE[uint8](sr, body+7, "JFIF density units")
				dx, _ := binary.ReadBE[uint16](sr, body+8, "JFIF density x")
				dy, _ := binary.ReadBE[uint16](sr, body+10, "JFIF density y")
				result.Add("jpeg:jfif_version", fmt.Sprintf("%d.%02d", major, minor))
				if name, ok := densityUnitNames[units]; ok {
					result.Add("jpeg:density_units", name)
				}
				result.Add("jpeg:density_x", int(dx))
				result.Add("jpeg:density_y", int(dy))
			}

		case kind == 0xE1 && length >= 8: // APP1
			if tag, err := sr.ReadString(body, 6, "APP1 identifier"); err == nil && tag == "Exif\x00\x00" {
				result.Add("jpeg:exif_present", true)
			}

		case kind == 0xFE: // COM
			if text, err := sr.ReadString(body, int(length)-2, "comment"); err == nil {
				result.Add("jpeg:comment", text)
			}
		}

		// Scan data follows SOS; metadata segments are all behind us.
		if kind == 0xDA {
			break
		}
		offset += 2 + int64(length)
	}

	result.Add("jpeg:segments", segments)
	return result, nil
}

// isSOF reports whether a marker is a start-of-frame variant (C0-CF,
// excluding DHT C4, JPG C8, and DAC CC).
func isSOF(kind uint8) bool {
	if kind < 0xC0 || kind > 0xCF {
		return false
	}
	return kind != 0xC4 && kind != 0xC8 && kind != 0xCC
}
