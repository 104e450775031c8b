package metascope

import (
	"github.com/openmeta/metascope/internal/types"
)

// Tier is an alias to types.Tier.
// Re-exported from internal/types to keep the public API flat.
type Tier = types.Tier

// Re-export tier constants.
const (
	TierFree         = types.TierFree
	TierProfessional = types.TierProfessional
	TierForensic     = types.TierForensic
	TierEnterprise   = types.TierEnterprise
)

// DisplayLevel is an alias to types.DisplayLevel.
type DisplayLevel = types.DisplayLevel

// Re-export display level constants.
const (
	DisplaySimple   = types.DisplaySimple
	DisplayAdvanced = types.DisplayAdvanced
	DisplayRaw      = types.DisplayRaw
)

// ParseTier parses a tier name. Both vocabularies are accepted:
// free/professional/forensic/enterprise and free/starter/premium/super.
func ParseTier(s string) (Tier, error) {
	return types.ParseTier(s)
}

// ParseDisplayLevel parses a display level name (simple/advanced/raw).
func ParseDisplayLevel(s string) (DisplayLevel, error) {
	return types.ParseDisplayLevel(s)
}
