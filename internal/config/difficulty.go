package config

import "strings"

// Tier represents a named difficulty preset for procedural levels.
type Tier string

const (
	TierEasy   Tier = "easy"
	TierMedium Tier = "medium"
	TierHard   Tier = "hard"
)

// Template holds the generation parameters of a tier.
type Template struct {
	HouseCount       int
	PlatformDensity  float64 // 0.0 = no platforms, 1.0 = twelve platforms
	IceDensity       float64 // Scales hazard count and fall speed
	DeliveriesNeeded int
	ThiefEnabled     bool
}

var templates = map[Tier]Template{
	TierEasy: {
		HouseCount:       6,
		PlatformDensity:  0.3,
		IceDensity:       0.5,
		DeliveriesNeeded: 4,
		ThiefEnabled:     false,
	},
	TierMedium: {
		HouseCount:       8,
		PlatformDensity:  0.5,
		IceDensity:       0.7,
		DeliveriesNeeded: 6,
		ThiefEnabled:     true,
	},
	TierHard: {
		HouseCount:       10,
		PlatformDensity:  0.7,
		IceDensity:       1.0,
		DeliveriesNeeded: 8,
		ThiefEnabled:     true,
	},
}

// ParseTier resolves a tier name case-insensitively.
// Unknown names resolve to TierMedium.
func ParseTier(s string) Tier {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := templates[t]; ok {
		return t
	}
	return TierMedium
}

// TemplateFor returns the template of a tier, falling back to medium.
func TemplateFor(t Tier) Template {
	return templates[ParseTier(string(t))]
}

// Tiers returns all tiers from easiest to hardest.
func Tiers() []Tier {
	return []Tier{TierEasy, TierMedium, TierHard}
}

// Title returns the capitalized tier name ("Hard").
func (t Tier) Title() string {
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
