package metascope

import (
	"github.com/openmeta/metascope/internal/types"
)

// Format is an alias to types.Format.
// Re-exported from internal/types to keep the public API flat.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown = types.FormatUnknown
	FormatJPEG    = types.FormatJPEG
	FormatPNG     = types.FormatPNG
	FormatGIF     = types.FormatGIF
	FormatTIFF    = types.FormatTIFF
	FormatMP3     = types.FormatMP3
	FormatWAV     = types.FormatWAV
	FormatMP4     = types.FormatMP4
	FormatPDF     = types.FormatPDF
	FormatFLAC    = types.FormatFLAC
	FormatOgg     = types.FormatOgg
	FormatXML     = types.FormatXML
	FormatJSON    = types.FormatJSON
)

// FormatCandidate is an alias to types.FormatCandidate.
type FormatCandidate = types.FormatCandidate

// DetectionMethod is an alias to types.DetectionMethod.
type DetectionMethod = types.DetectionMethod

// Re-export detection method constants.
const (
	DetectMagic     = types.DetectMagic
	DetectExtension = types.DetectExtension
	DetectHeuristic = types.DetectHeuristic
)
