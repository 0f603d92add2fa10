// Package level defines the level configuration handed to the game runtime
// and the bounds every configuration must satisfy to stay completable.
package level

import (
	"fmt"
	"strings"
)

// Playability bounds. A platform higher than MaxJumpHeight cannot be reached
// from the ground and one lower than MinPlatformHeight blocks traversal.
const (
	MinPlatformHeight = 60.0
	MaxJumpHeight     = 120.0
)

// World and scalar bounds.
const (
	MinWorldWidth = 2000
	MaxWorldWidth = 5000

	MinHouses = 3
	MaxHouses = 12

	MinPlatforms = 2
	MaxPlatforms = 15

	MinIceCount = 5
	MaxIceCount = 30

	MinIceSpeed = 0.5
	MaxIceSpeed = 2.0

	MinDeliveries = 3
	MaxDeliveries = 12

	MinThiefSpeed = 0.5
	MaxThiefSpeed = 1.5

	MinPowerUpChance = 0.1
	MaxPowerUpChance = 0.8

	MinHouseX = 300.0
	MaxHouseX = 4500.0

	MinPlatformX = 200.0
	MaxPlatformX = 4500.0

	MinPlatformWidth = 50.0
	MaxPlatformWidth = 150.0

	MinPlatformSpeed = 0.5
	MaxPlatformSpeed = 2.0
)

// DefaultTheme is the only theme the runtime ships with.
const DefaultTheme = "winter"

// Palette holds the house colors, assigned by cyclic index.
var Palette = [...]string{"#c0392b", "#27ae60", "#2980b9", "#8e44ad", "#d35400"}

// PaletteColor returns the palette color for the i-th house.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// House is a delivery target placed along the world.
type House struct {
	X     float64 `json:"x" yaml:"x"`
	Color string  `json:"color" yaml:"color"`
}

// Platform is a jumpable ledge, optionally moving.
type Platform struct {
	X                 float64 `json:"x" yaml:"x"`
	HeightAboveGround float64 `json:"heightAboveGround" yaml:"heightAboveGround"`
	Width             float64 `json:"width" yaml:"width"`
	Moving            bool    `json:"moving" yaml:"moving"`
	Speed             float64 `json:"speed" yaml:"speed"`
}

// Config is a complete, in-range level. Values are produced once per
// generation request and never mutated afterwards; use Clone before
// handing a Config to code that may modify its slices.
type Config struct {
	Name             string     `json:"name" yaml:"name"`
	Theme            string     `json:"theme" yaml:"theme"`
	WorldWidth       int        `json:"worldWidth" yaml:"worldWidth"`
	Houses           []House    `json:"houses" yaml:"houses"`
	Platforms        []Platform `json:"platforms" yaml:"platforms"`
	IceCount         int        `json:"iceCount" yaml:"iceCount"`
	IceSpeed         float64    `json:"iceSpeed" yaml:"iceSpeed"`
	DeliveriesNeeded int        `json:"deliveriesNeeded" yaml:"deliveriesNeeded"`
	ThiefEnabled     bool       `json:"thiefEnabled" yaml:"thiefEnabled"`
	ThiefSpeed       float64    `json:"thiefSpeed" yaml:"thiefSpeed"`
	PowerUpChance    float64    `json:"powerUpChance" yaml:"powerUpChance"`
	Description      string     `json:"description" yaml:"description"`
}

// Clone returns a deep copy of the config.
func (c Config) Clone() Config {
	out := c
	if c.Houses != nil {
		out.Houses = append([]House(nil), c.Houses...)
	}
	if c.Platforms != nil {
		out.Platforms = append([]Platform(nil), c.Platforms...)
	}
	return out
}

// IsZero reports whether c is the zero Config.
func (c Config) IsZero() bool {
	return c.Name == "" && c.WorldWidth == 0 && len(c.Houses) == 0 && len(c.Platforms) == 0
}

// CheckError describes a single invariant violation.
type CheckError struct {
	Code    string
	Message string
}

func (e CheckError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// CheckErrors is the set of violations found by Check.
type CheckErrors []CheckError

func (e CheckErrors) Error() string {
	parts := make([]string, len(e))
	for i, ce := range e {
		parts[i] = ce.Error()
	}
	return strings.Join(parts, "; ")
}

// Check verifies every invariant of a level configuration.
// Returns nil when the config is playable as-is.
func (c Config) Check() error {
	var errs CheckErrors
	add := func(code, format string, args ...any) {
		errs = append(errs, CheckError{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	if c.Name == "" {
		add("MISSING_NAME", "name is empty")
	}
	if c.Theme == "" {
		add("MISSING_THEME", "theme is empty")
	}
	if c.Description == "" {
		add("MISSING_DESCRIPTION", "description is empty")
	}
	if c.WorldWidth < MinWorldWidth || c.WorldWidth > MaxWorldWidth {
		add("WORLD_WIDTH", "worldWidth %d outside [%d, %d]", c.WorldWidth, MinWorldWidth, MaxWorldWidth)
	}
	if n := len(c.Houses); n < MinHouses || n > MaxHouses {
		add("HOUSE_COUNT", "%d houses outside [%d, %d]", n, MinHouses, MaxHouses)
	}
	if n := len(c.Platforms); n < MinPlatforms || n > MaxPlatforms {
		add("PLATFORM_COUNT", "%d platforms outside [%d, %d]", n, MinPlatforms, MaxPlatforms)
	}
	if c.IceCount < MinIceCount || c.IceCount > MaxIceCount {
		add("ICE_COUNT", "iceCount %d outside [%d, %d]", c.IceCount, MinIceCount, MaxIceCount)
	}
	if !within(c.IceSpeed, MinIceSpeed, MaxIceSpeed) {
		add("ICE_SPEED", "iceSpeed %g outside [%g, %g]", c.IceSpeed, MinIceSpeed, MaxIceSpeed)
	}
	if c.DeliveriesNeeded < MinDeliveries || c.DeliveriesNeeded > MaxDeliveries {
		add("DELIVERIES", "deliveriesNeeded %d outside [%d, %d]", c.DeliveriesNeeded, MinDeliveries, MaxDeliveries)
	}
	if !within(c.ThiefSpeed, MinThiefSpeed, MaxThiefSpeed) {
		add("THIEF_SPEED", "thiefSpeed %g outside [%g, %g]", c.ThiefSpeed, MinThiefSpeed, MaxThiefSpeed)
	}
	if !within(c.PowerUpChance, MinPowerUpChance, MaxPowerUpChance) {
		add("POWERUP_CHANCE", "powerUpChance %g outside [%g, %g]", c.PowerUpChance, MinPowerUpChance, MaxPowerUpChance)
	}

	for i, h := range c.Houses {
		if !within(h.X, MinHouseX, MaxHouseX) {
			add("HOUSE_X", "house %d x %g outside [%g, %g]", i, h.X, MinHouseX, MaxHouseX)
		}
		if h.Color == "" {
			add("HOUSE_COLOR", "house %d has no color", i)
		}
	}

	for i, p := range c.Platforms {
		if !within(p.X, MinPlatformX, MaxPlatformX) {
			add("PLATFORM_X", "platform %d x %g outside [%g, %g]", i, p.X, MinPlatformX, MaxPlatformX)
		}
		if !within(p.HeightAboveGround, MinPlatformHeight, MaxJumpHeight) {
			add("PLATFORM_HEIGHT", "platform %d height %g outside jumpable range [%g, %g]",
				i, p.HeightAboveGround, MinPlatformHeight, MaxJumpHeight)
		}
		if !within(p.Width, MinPlatformWidth, MaxPlatformWidth) {
			add("PLATFORM_WIDTH", "platform %d width %g outside [%g, %g]", i, p.Width, MinPlatformWidth, MaxPlatformWidth)
		}
		if !within(p.Speed, MinPlatformSpeed, MaxPlatformSpeed) {
			add("PLATFORM_SPEED", "platform %d speed %g outside [%g, %g]", i, p.Speed, MinPlatformSpeed, MaxPlatformSpeed)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func within(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
