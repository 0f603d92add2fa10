// Package validate converts untrusted candidate records into complete,
// playable level configurations. It is the only place where a value from
// outside the process becomes part of a level.Config.
//
// Normalization never fails: each field that is missing, mistyped or out of
// range is replaced or clamped on its own, and structures that are too small
// to be usable are regenerated procedurally.
package validate

import (
	"fmt"

	"github.com/vovakirdan/courier-levels/internal/config"
	"github.com/vovakirdan/courier-levels/internal/level"
	"github.com/vovakirdan/courier-levels/internal/procgen"
)

// Defaults applied to missing or invalid candidate fields.
const (
	DefaultName        = "AI Generated Level"
	DefaultDescription = "A custom AI-generated level"

	defaultWorldWidth    = 3000
	defaultIceCount      = 14
	defaultIceSpeed      = 1.0
	defaultDeliveries    = 6
	defaultThiefSpeed    = 1.0
	defaultPowerUpChance = 0.3

	defaultHouseCount    = 8
	defaultPlatformCount = 8

	defaultPlatformX      = 500.0
	defaultPlatformHeight = 80.0
	defaultPlatformWidth  = 80.0
	defaultPlatformSpeed  = 1.0
)

// Normalizer turns candidates into level configs, using a procedural
// generator for anything it has to invent.
type Normalizer struct {
	gen *procgen.Generator
}

// NewNormalizer creates a normalizer backed by gen.
func NewNormalizer(gen *procgen.Generator) *Normalizer {
	if gen == nil {
		gen = procgen.New(nil)
	}
	return &Normalizer{gen: gen}
}

// Normalize returns a complete level for c. A nil candidate yields a
// procedural medium level.
func (n *Normalizer) Normalize(c level.Candidate) level.Config {
	cfg, _ := n.NormalizeWithReport(c)
	return cfg
}

// NormalizeWithReport is Normalize that also lists every default and clamp
// it applied.
func (n *Normalizer) NormalizeWithReport(c level.Candidate) (level.Config, []Adjustment) {
	if c == nil {
		return n.gen.RandomLevel(config.TierMedium), []Adjustment{{
			Field:  "*",
			Kind:   AdjustRegenerated,
			Detail: "no candidate, generated medium level",
		}}
	}

	r := &report{}
	cfg := level.Config{
		Name:             r.text(c, "name", DefaultName),
		Theme:            r.text(c, "theme", level.DefaultTheme),
		WorldWidth:       r.integer(c, "worldWidth", defaultWorldWidth, level.MinWorldWidth, level.MaxWorldWidth),
		Houses:           n.houses(c["houses"], r),
		Platforms:        n.platforms(c["platforms"], r),
		IceCount:         r.integer(c, "iceCount", defaultIceCount, level.MinIceCount, level.MaxIceCount),
		IceSpeed:         r.float(c, "iceSpeed", defaultIceSpeed, level.MinIceSpeed, level.MaxIceSpeed),
		DeliveriesNeeded: r.integer(c, "deliveriesNeeded", defaultDeliveries, level.MinDeliveries, level.MaxDeliveries),
		ThiefEnabled:     r.flag(c, "thiefEnabled", true),
		ThiefSpeed:       r.float(c, "thiefSpeed", defaultThiefSpeed, level.MinThiefSpeed, level.MaxThiefSpeed),
		PowerUpChance:    r.float(c, "powerUpChance", defaultPowerUpChance, level.MinPowerUpChance, level.MaxPowerUpChance),
		Description:      r.text(c, "description", DefaultDescription),
	}
	return cfg, r.items
}

// NormalizeHouses validates a raw house list. Lists that are missing or
// shorter than three entries are replaced by eight generated houses;
// longer lists are truncated to twelve.
func (n *Normalizer) NormalizeHouses(raw any) []level.House {
	return n.houses(raw, nil)
}

// NormalizePlatforms validates a raw platform list. Lists that are missing
// or shorter than two entries are replaced by eight generated platforms;
// longer lists are truncated to fifteen. Heights always end up inside the
// jumpable range.
func (n *Normalizer) NormalizePlatforms(raw any) []level.Platform {
	return n.platforms(raw, nil)
}

func (n *Normalizer) houses(raw any, r *report) []level.House {
	list, ok := level.AsList(raw)
	if !ok || len(list) < level.MinHouses {
		r.add("houses", AdjustRegenerated, fmt.Sprintf("need at least %d houses, generated %d", level.MinHouses, defaultHouseCount))
		return n.gen.DefaultHouses(defaultHouseCount)
	}
	if len(list) > level.MaxHouses {
		r.add("houses", AdjustTruncated, fmt.Sprintf("%d houses, kept first %d", len(list), level.MaxHouses))
		list = list[:level.MaxHouses]
	}

	houses := make([]level.House, len(list))
	for i, item := range list {
		rec := level.AsRecord(item)
		prefix := fmt.Sprintf("houses[%d].", i)
		houses[i] = level.House{
			X:     r.float(rec, "x", 400+float64(i)*300, level.MinHouseX, level.MaxHouseX, prefix),
			Color: r.text(rec, "color", level.PaletteColor(i), prefix),
		}
	}
	return houses
}

func (n *Normalizer) platforms(raw any, r *report) []level.Platform {
	list, ok := level.AsList(raw)
	if !ok || len(list) < level.MinPlatforms {
		r.add("platforms", AdjustRegenerated, fmt.Sprintf("need at least %d platforms, generated %d", level.MinPlatforms, defaultPlatformCount))
		return n.gen.DefaultPlatforms(defaultPlatformCount)
	}
	if len(list) > level.MaxPlatforms {
		r.add("platforms", AdjustTruncated, fmt.Sprintf("%d platforms, kept first %d", len(list), level.MaxPlatforms))
		list = list[:level.MaxPlatforms]
	}

	platforms := make([]level.Platform, len(list))
	for i, item := range list {
		rec := level.AsRecord(item)
		prefix := fmt.Sprintf("platforms[%d].", i)

		heightKey := "heightAboveGround"
		if _, ok := level.Number(rec["heightAboveGround"]); !ok {
			if _, legacy := rec["height"]; legacy {
				heightKey = "height"
			}
		}

		moving, explicit := rec["moving"].(bool)
		if !explicit {
			moving = n.gen.Coin()
			r.add(prefix+"moving", AdjustDefaulted, fmt.Sprintf("not a boolean, rolled %t", moving))
		}

		platforms[i] = level.Platform{
			X:                 r.float(rec, "x", defaultPlatformX, level.MinPlatformX, level.MaxPlatformX, prefix),
			HeightAboveGround: r.float(rec, heightKey, defaultPlatformHeight, level.MinPlatformHeight, level.MaxJumpHeight, prefix),
			Width:             r.float(rec, "width", defaultPlatformWidth, level.MinPlatformWidth, level.MaxPlatformWidth, prefix),
			Moving:            moving,
			Speed:             r.float(rec, "speed", defaultPlatformSpeed, level.MinPlatformSpeed, level.MaxPlatformSpeed, prefix),
		}
	}
	return platforms
}
