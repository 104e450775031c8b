package metascope

// Built-in decoder plugins register themselves with the process-wide
// registry from their init functions.
import (
	_ "github.com/openmeta/metascope/internal/plugins/id3"
	_ "github.com/openmeta/metascope/internal/plugins/jpeg"
	_ "github.com/openmeta/metascope/internal/plugins/mp4"
	_ "github.com/openmeta/metascope/internal/plugins/png"
	_ "github.com/openmeta/metascope/internal/plugins/riff"
)
