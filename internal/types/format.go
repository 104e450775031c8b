// Package types provides core data structures for metadata extraction.
//
// This package defines the Format, FieldDefinition, FormatCandidate, Result,
// and Envelope types shared by the sniffer, registry, merge pass, and engine.
package types

// Format identifies a file format a plugin can decode.
//
// Formats are open-ended strings rather than a closed enum so that external
// plugins can introduce formats the sniffer tables do not know about.
type Format string

const (
	// FormatUnknown represents an unidentified format.
	FormatUnknown Format = ""
	// FormatJPEG represents JPEG images.
	FormatJPEG Format = "jpeg"
	// FormatPNG represents PNG images.
	FormatPNG Format = "png"
	// FormatGIF represents GIF images.
	FormatGIF Format = "gif"
	// FormatTIFF represents TIFF images.
	FormatTIFF Format = "tiff"
	// FormatMP3 represents MP3 audio (ID3-tagged or bare frames).
	FormatMP3 Format = "mp3"
	// FormatWAV represents RIFF/WAVE audio.
	FormatWAV Format = "wav"
	// FormatMP4 represents ISO base media files (MP4/M4A/MOV).
	FormatMP4 Format = "mp4"
	// FormatPDF represents PDF documents.
	FormatPDF Format = "pdf"
	// FormatFLAC represents FLAC audio.
	FormatFLAC Format = "flac"
	// FormatOgg represents Ogg containers.
	FormatOgg Format = "ogg"
	// FormatXML represents generic XML text.
	FormatXML Format = "xml"
	// FormatJSON represents generic JSON text.
	FormatJSON Format = "json"
)

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatJPEG:
		return []string{".jpg", ".jpeg", ".jpe"}
	case FormatPNG:
		return []string{".png"}
	case FormatGIF:
		return []string{".gif"}
	case FormatTIFF:
		return []string{".tif", ".tiff"}
	case FormatMP3:
		return []string{".mp3"}
	case FormatWAV:
		return []string{".wav"}
	case FormatMP4:
		return []string{".mp4", ".m4a", ".m4b", ".m4v", ".mov"}
	case FormatPDF:
		return []string{".pdf"}
	case FormatFLAC:
		return []string{".flac"}
	case FormatOgg:
		return []string{".ogg", ".oga", ".opus"}
	case FormatXML:
		return []string{".xml", ".svg"}
	case FormatJSON:
		return []string{".json"}
	default:
		return nil
	}
}

// DetectionMethod records how a format candidate was identified.
type DetectionMethod string

const (
	// DetectMagic means the candidate matched a magic-byte signature.
	DetectMagic DetectionMethod = "magic"
	// DetectExtension means the candidate matched by file extension only.
	DetectExtension DetectionMethod = "extension"
	// DetectHeuristic means the candidate matched a content heuristic.
	DetectHeuristic DetectionMethod = "heuristic"
)

// FormatCandidate is one ranked guess at a file's format.
//
// Candidates are produced fresh per request by the sniffer and are not
// persisted. Confidence is fixed per detection method: magic 1.0,
// extension 0.5, heuristic 0.3.
type FormatCandidate struct {
	Format     Format          `json:"format"`
	Confidence float64         `json:"confidence"`
	Method     DetectionMethod `json:"method"`
}
