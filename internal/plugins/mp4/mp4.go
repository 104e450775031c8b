// Package mp4 decodes metadata from ISO base media files (MP4/M4A/MOV):
// the ftyp brands and the mvhd movie header.
package mp4

import (
	"context"
	"fmt"
	"time"

	"github.com/openmeta/metascope/internal/binary"
	"github.com/openmeta/metascope/internal/registry"
	"github.com/openmeta/metascope/internal/types"
)

func init() {
	registry.Register(&plugin{})
}

// maxAtoms bounds atom walks against hostile files.
const maxAtoms = 256

// mp4Epoch is the mvhd timestamp epoch (seconds since 1904-01-01 UTC).
var mp4Epoch = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)

type plugin struct{}

func (p *plugin) Name() string { return "mp4" }

func (p *plugin) Formats() []types.Format {
	return []types.Format{types.FormatMP4}
}

// FieldCount reports the distinct cataloged fields this plugin can emit.
func (p *plugin) FieldCount() int { return 7 }

func (p *plugin) Extract(ctx context.Context, sr *binary.SafeReader) (*types.Result, error) {
	result := &types.Result{}

	// Top-level atom walk: ftyp first, then moov for the movie header.
	offset := int64(0)
	for i := 0; i < maxAtoms && offset+8 <= sr.Size(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		size, atomType, headerSize, err := readAtomHeader(sr, offset)
		if err != nil {
			break
		}

		switch atomType {
		case "ftyp":
			if err := parseFtyp(sr, offset+headerSize, offset+size, result); err != nil {
				return nil, err
			}
		case "moov":
			parseMoov(sr, offset+headerSize, offset+size, result)
		}

		if size <= 0 {
			break
		}
		offset += size
	}

	if len(result.Fields) == 0 {
		return nil, fmt.Errorf("%s: no ftyp or moov atom found", sr.Path())
	}
	return result, nil
}

// readAtomHeader reads one atom header, handling 64-bit extended sizes.
func readAtomHeader(sr *binary.SafeReader, offset int64) (size int64, atomType string, headerSize int64, err error) {
	size32, err := binary.ReadBE[uint32](sr, offset, "atom size")
	if err != nil {
		return 0, "", 0, err
	}
	atomType, err = sr.ReadString(offset+4, 4, "atom type")
	if err != nil {
		return 0, "", 0, err
	}

	size = int64(size32)
	headerSize = 8
	if size32 == 1 {
		ext, err := binary.ReadBE[uint64](sr, offset+8, "extended atom size")
		if err != nil {
			return 0, "", 0, err
		}
		size = int64(ext)
		headerSize = 16
	}
	return size, atomType, headerSize, nil
}

// parseFtyp reads the brand declarations.
func parseFtyp(sr *binary.SafeReader, offset, end int64, result *types.Result) error {
	major, err := sr.ReadString(offset, 4, "major brand")
	if err != nil {
		return err
	}
	minor, err := binary.ReadBE[uint32](sr, offset+4, "minor version")
	if err != nil {
		return err
	}
	result.Add("mp4:major_brand", major)
	result.Add("mp4:minor_version", int(minor))

	var brands []string
	for o := offset + 8; o+4 <= end; o += 4 {
		if b, err := sr.ReadString(o, 4, "compatible brand"); err == nil {
			brands = append(brands, b)
		}
	}
	result.Add("mp4:compatible_brands", brands)
	return nil
}

// parseMoov walks moov children looking for the movie header.
func parseMoov(sr *binary.SafeReader, offset, end int64, result *types.Result) {
	for i := 0; i < maxAtoms && offset+8 <= end; i++ {
		size, atomType, headerSize, err := readAtomHeader(sr, offset)
		if err != nil || size <= 0 {
			return
		}
		if atomType == "mvhd" {
			parseMvhd(sr, offset+headerSize, result)
			return
		}
		offset += size
	}
}

// parseMvhd reads timescale, duration, and the creation/modification times.
func parseMvhd(sr *binary.SafeReader, offset int64, result *types.Result) {
	version, err := binary.ReadBE[uint8](sr, offset, "mvhd version")
	if err != nil {
		return
	}

	var created, modified, duration uint64
	var timescale uint32
	if version == 1 {
		created, _ = binary.ReadBE[uint64](sr, offset+4, "creation time")
		modified, _ = binary.ReadBE[uint64](sr, offset+12, "modification time")
		timescale, _ = binary.ReadBE[uint32](sr, offset+20, "timescale")
		duration, _ = binary.ReadBE[uint64](sr, offset+24, "duration")
	} else {
		c32, _ := binary.ReadBE[uint32](sr, offset+4, "creation time")
		m32, _ := binary.ReadBE[uint32](sr, offset+8, "modification time")
		timescale, _ = binary.ReadBE[uint32](sr, offset+12, "timescale")
		d32, _ := binary.ReadBE[uint32](sr, offset+16, "duration")
		created, modified, duration = uint64(c32), uint64(m32), uint64(d32)
	}

	if timescale > 0 {
		result.Add("mp4:timescale", int(timescale))
		result.Add("mp4:duration_seconds", float64(duration)/float64(timescale))
	}
	if created > 0 {
		result.Add("mp4:created", mp4Epoch.Add(time.Duration(created)*time.Second).Format(time.RFC3339))
	}
	if modified > 0 {
		result.Add("mp4:modified", mp4Epoch.Add(time.Duration(modified)*time.Second).Format(time.RFC3339))
	}
}
