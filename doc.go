// Package metascope provides format-dispatching metadata extraction.
//
// Given an arbitrary file, metascope sniffs candidate formats, runs every
// registered decoder for those formats, and merges their output into one
// tier-filtered field map.
//
// # Quick Start
//
//	env, err := metascope.ExtractMetadata("photo.jpg", "free")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range env.Fields {
//		fmt.Printf("%s = %v\n", f.Name, f.Value)
//	}
//	fmt.Printf("%d fields, %d locked\n", env.FieldsExtracted, len(env.LockedFields))
//
// # Architecture
//
// The engine is a fixed pipeline:
//
//	[Sniffer]   - ranked format candidates (magic / extension / heuristic)
//	[Registry]  - ordered decoder plugins per format
//	[Dispatch]  - isolated plugin invocation with per-plugin timeouts
//	[Merge]     - deterministic precedence + tier and display filtering
//	[Envelope]  - stable, sorted response with per-plugin run records
//
// Decoders implement a single Plugin interface and register themselves
// during package initialization, so adding a format never changes the
// public API.
//
// # Graceful Degradation
//
// One bad decoder must never crash the batch. A plugin that returns an
// error, panics, times out, or emits a malformed result is recorded in
// Envelope.Runs and its siblings continue. Only a missing or unreadable
// input path aborts a request; a file of unknown format yields an
// empty-but-valid envelope.
//
// # Tiers and Display Levels
//
// Every cataloged field carries a minimum subscription tier (free <
// professional < forensic < enterprise) and a display level (simple <
// advanced < raw). Fields failing the caller's tier or display check are
// listed by name in Envelope.LockedFields so callers can see what exists
// without seeing the values.
package metascope
