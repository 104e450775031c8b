package types

import (
	"fmt"
	"strings"
)

// Tier is a subscription level gating field visibility.
//
// Tiers are totally ordered: TierFree < TierProfessional < TierForensic <
// TierEnterprise. A field is visible to a caller iff the caller's tier is at
// least the field's minimum tier.
type Tier int

const (
	// TierFree is the default tier; every caller has at least this.
	TierFree Tier = iota // free
	// TierProfessional unlocks professional-grade fields (alias: starter).
	TierProfessional // professional
	// TierForensic unlocks forensic-grade fields (alias: premium).
	TierForensic // forensic
	// TierEnterprise unlocks everything (alias: super).
	TierEnterprise // enterprise
)

// String returns the canonical lowercase name of the tier.
func (t Tier) String() string {
	switch t {
	case TierFree:
		return "free"
	case TierProfessional:
		return "professional"
	case TierForensic:
		return "forensic"
	case TierEnterprise:
		return "enterprise"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Includes reports whether a caller at tier t may view a field requiring min.
func (t Tier) Includes(min Tier) bool {
	return t >= min
}

// ParseTier parses a tier name. Both the canonical vocabulary
// (free/professional/forensic/enterprise) and the legacy billing vocabulary
// (free/starter/premium/super) are accepted.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free":
		return TierFree, nil
	case "professional", "starter":
		return TierProfessional, nil
	case "forensic", "premium":
		return TierForensic, nil
	case "enterprise", "super":
		return TierEnterprise, nil
	default:
		return TierFree, fmt.Errorf("unknown tier %q", s)
	}
}

// DisplayLevel controls field verbosity independent of tier.
//
// Levels are cumulative: a request at DisplayAdvanced sees simple and
// advanced fields, a request at DisplayRaw sees everything.
type DisplayLevel int

const (
	// DisplaySimple is the terse, always-included level.
	DisplaySimple DisplayLevel = iota // simple
	// DisplayAdvanced includes technical detail fields.
	DisplayAdvanced // advanced
	// DisplayRaw includes raw, unprocessed fields.
	DisplayRaw // raw
)

// String returns the canonical lowercase name of the level.
func (d DisplayLevel) String() string {
	switch d {
	case DisplaySimple:
		return "simple"
	case DisplayAdvanced:
		return "advanced"
	case DisplayRaw:
		return "raw"
	default:
		return fmt.Sprintf("display(%d)", int(d))
	}
}

// Includes reports whether a request at level d shows a field at level lvl.
func (d DisplayLevel) Includes(lvl DisplayLevel) bool {
	return d >= lvl
}

// ParseDisplayLevel parses a display level name.
func ParseDisplayLevel(s string) (DisplayLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple":
		return DisplaySimple, nil
	case "advanced":
		return DisplayAdvanced, nil
	case "raw":
		return DisplayRaw, nil
	default:
		return DisplaySimple, fmt.Errorf("unknown display level %q", s)
	}
}
