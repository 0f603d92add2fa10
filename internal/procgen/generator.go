// Package procgen builds levels procedurally from difficulty templates.
// Its output is in range by construction and needs no further validation.
package procgen

import (
	"fmt"
	"math"

	"github.com/vovakirdan/courier-levels/internal/config"
	"github.com/vovakirdan/courier-levels/internal/level"
)

// Layout constants for generated content.
const (
	houseStartX  = 400.0
	houseSpan    = 2800.0 // Houses are spread evenly over this span
	houseJitter  = 50.0   // Max displacement either side of the even spacing
	platStartX   = 300.0
	platStride   = 350.0
	platJitter   = 100.0
	platMinWidth = 70.0
	platMaxWidth = 120.0
	platMinSpeed = 0.8
	platMaxSpeed = 1.6

	maxPlatformsAtFullDensity = 12

	randomWorldWidth    = 3000
	randomThiefSpeed    = 1.0
	randomPowerUpChance = 0.3
)

// Generator produces houses, platforms and complete levels.
type Generator struct {
	src Source
}

// New creates a generator drawing from src. A nil src uses NewRNG(0).
func New(src Source) *Generator {
	if src == nil {
		src = NewRNG(0)
	}
	return &Generator{src: src}
}

// uniform returns a value in [lo, hi).
func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.src.Float64()*(hi-lo)
}

// Coin returns a fair coin flip.
func (g *Generator) Coin() bool {
	return g.src.Float64() > 0.5
}

// DefaultHouses spreads count houses evenly from x=400 over a 2800 unit
// span, each shifted by up to 50 units, colored by palette index.
func (g *Generator) DefaultHouses(count int) []level.House {
	if count <= 0 {
		return []level.House{}
	}

	houses := make([]level.House, 0, count)
	spacing := houseSpan / float64(count)
	for i := 0; i < count; i++ {
		houses = append(houses, level.House{
			X:     houseStartX + float64(i)*spacing + g.uniform(-houseJitter, houseJitter),
			Color: level.PaletteColor(i),
		})
	}
	return houses
}

// DefaultPlatforms places count platforms on a 350 unit stride from x=300
// with heights inside the jumpable range.
func (g *Generator) DefaultPlatforms(count int) []level.Platform {
	if count <= 0 {
		return []level.Platform{}
	}

	platforms := make([]level.Platform, 0, count)
	for i := 0; i < count; i++ {
		platforms = append(platforms, level.Platform{
			X:                 platStartX + float64(i)*platStride + g.uniform(0, platJitter),
			HeightAboveGround: g.uniform(level.MinPlatformHeight, level.MaxJumpHeight),
			Width:             g.uniform(platMinWidth, platMaxWidth),
			Moving:            g.Coin(),
			Speed:             g.uniform(platMinSpeed, platMaxSpeed),
		})
	}
	return platforms
}

// RandomLevel builds a complete level from the template of tier.
// Unknown tiers behave exactly like medium.
func (g *Generator) RandomLevel(tier config.Tier) level.Config {
	tier = config.ParseTier(string(tier))
	tmpl := config.TemplateFor(tier)

	return level.Config{
		Name:             fmt.Sprintf("Random %s Level", tier.Title()),
		Theme:            level.DefaultTheme,
		WorldWidth:       randomWorldWidth,
		Houses:           g.DefaultHouses(tmpl.HouseCount),
		Platforms:        g.DefaultPlatforms(int(math.Floor(tmpl.PlatformDensity * maxPlatformsAtFullDensity))),
		IceCount:         int(math.Floor(12 + tmpl.IceDensity*8)),
		IceSpeed:         0.8 + tmpl.IceDensity*0.4,
		DeliveriesNeeded: tmpl.DeliveriesNeeded,
		ThiefEnabled:     tmpl.ThiefEnabled,
		ThiefSpeed:       randomThiefSpeed,
		PowerUpChance:    randomPowerUpChance,
		Description:      fmt.Sprintf("A randomly generated %s level", tier),
	}
}
