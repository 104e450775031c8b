// Package sniff identifies candidate file formats from content and extension.
//
// Detection runs three passes in decreasing confidence: magic-byte
// signatures (1.0), file extension (0.5), and a content heuristic over the
// first bytes (0.3). All matching candidates are returned, most specific
// first, so the dispatcher may run more than one decoder for container
// formats. Sniffing never fails: I/O problems are reported as diagnostics
// and yield an empty candidate list.
package sniff

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/openmeta/metascope/internal/binary"
	"github.com/openmeta/metascope/internal/types"
)

// Confidence values per detection method.
const (
	ConfidenceMagic     = 1.0
	ConfidenceExtension = 0.5
	ConfidenceHeuristic = 0.3
)

// heuristicWindow is how many leading bytes the content heuristic inspects.
const heuristicWindow = 512

// signature is one fixed magic-byte pattern at a fixed offset.
type signature struct {
	format types.Format
	offset int64
	magic  []byte
}

// signatures is ordered most specific first; the order is the tie-break
// for candidates sharing a confidence level.
var signatures = []signature{
	{types.FormatPNG, 0, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}},
	{types.FormatGIF, 0, []byte("GIF89a")},
	{types.FormatGIF, 0, []byte("GIF87a")},
	{types.FormatJPEG, 0, []byte{0xFF, 0xD8, 0xFF}},
	{types.FormatTIFF, 0, []byte{'I', 'I', 0x2A, 0x00}},
	{types.FormatTIFF, 0, []byte{'M', 'M', 0x00, 0x2A}},
	{types.FormatPDF, 0, []byte("%PDF-")},
	{types.FormatFLAC, 0, []byte("fLaC")},
	{types.FormatOgg, 0, []byte("OggS")},
	{types.FormatMP3, 0, []byte("ID3")},
}

// extensions maps lowercase file extensions to formats.
var extensions = buildExtensionTable()

func buildExtensionTable() map[string]types.Format {
	table := make(map[string]types.Format)
	for _, f := range []types.Format{
		types.FormatJPEG, types.FormatPNG, types.FormatGIF, types.FormatTIFF,
		types.FormatMP3, types.FormatWAV, types.FormatMP4, types.FormatPDF,
		types.FormatFLAC, types.FormatOgg, types.FormatXML, types.FormatJSON,
	} {
		for _, ext := range f.Extensions() {
			table[ext] = f
		}
	}
	return table
}

// Sniff produces ranked format candidates for the given input.
//
// The returned slice is ordered highest confidence first. Read failures are
// reported through the diagnostics slice, never as an error: an unreadable
// or empty input yields an empty (or extension-only) candidate list.
func Sniff(sr *binary.SafeReader) ([]types.FormatCandidate, []types.Diagnostic) {
	var candidates []types.FormatCandidate
	var diags []types.Diagnostic
	seen := make(map[types.Format]bool)

	add := func(f types.Format, conf float64, method types.DetectionMethod) {
		if f == types.FormatUnknown || seen[f] {
			return
		}
		seen[f] = true
		candidates = append(candidates, types.FormatCandidate{
			Format:     f,
			Confidence: conf,
			Method:     method,
		})
	}

	// Pass 1: magic bytes.
	window := heuristicWindow
	if sr.Size() < int64(window) {
		window = int(sr.Size())
	}
	head := make([]byte, window)
	if window > 0 {
		if err := sr.ReadAt(head, 0, "sniff window"); err != nil {
			diags = append(diags, types.Diagnostic{
				Stage:   "sniff",
				Message: fmt.Sprintf("header read failed: %v", err),
			})
			head = nil
		}
	}

	if head != nil {
		for _, sig := range signatures {
			end := sig.offset + int64(len(sig.magic))
			if end > int64(len(head)) {
				continue
			}
			if string(head[sig.offset:end]) == string(sig.magic) {
				add(sig.format, ConfidenceMagic, types.DetectMagic)
			}
		}

		// RIFF container: only WAVE is claimed here.
		if len(head) >= 12 && string(head[0:4]) == "RIFF" && string(head[8:12]) == "WAVE" {
			add(types.FormatWAV, ConfidenceMagic, types.DetectMagic)
		}

		// ISO base media: an ftyp atom at offset 4.
		if len(head) >= 12 && string(head[4:8]) == "ftyp" {
			add(types.FormatMP4, ConfidenceMagic, types.DetectMagic)
		}

		// Bare MP3 frame sync (files without an ID3 header).
		if len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0 {
			add(types.FormatMP3, ConfidenceMagic, types.DetectMagic)
		}
	}

	// Pass 2: extension fallback.
	if ext := strings.ToLower(filepath.Ext(sr.Path())); ext != "" {
		if f, ok := extensions[ext]; ok {
			add(f, ConfidenceExtension, types.DetectExtension)
		}
	}

	// Pass 3: content heuristics over the sniff window.
	if head != nil {
		for _, f := range heuristics(head) {
			add(f, ConfidenceHeuristic, types.DetectHeuristic)
		}
	}

	return candidates, diags
}

// heuristics scans leading bytes for textual markers.
func heuristics(head []byte) []types.Format {
	trimmed := strings.TrimLeft(string(head), " \t\r\n\uFEFF")
	var out []types.Format
	switch {
	case strings.HasPrefix(trimmed, "<?xml"), strings.HasPrefix(trimmed, "<svg"):
		out = append(out, types.FormatXML)
	case strings.HasPrefix(trimmed, "{"), strings.HasPrefix(trimmed, "["):
		out = append(out, types.FormatJSON)
	}
	return out
}
