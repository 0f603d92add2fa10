package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/courier-levels/internal/config"
	"github.com/vovakirdan/courier-levels/internal/level"
	"github.com/vovakirdan/courier-levels/internal/procgen"
)

func sampleLevel() level.Config {
	return level.Config{
		Name:        "Chimney Hop",
		Theme:       level.DefaultTheme,
		WorldWidth:  3000,
		Description: "Short hops between roofs",
		Houses: []level.House{
			{X: 400, Color: "#c0392b"},
			{X: 1500, Color: "#27ae60"},
			{X: 2900, Color: "#2980b9"},
		},
		Platforms: []level.Platform{
			{X: 600, HeightAboveGround: 60, Width: 100, Speed: 1},
			{X: 2000, HeightAboveGround: 120, Width: 100, Moving: true, Speed: 1.5},
		},
		IceCount:         5,
		IceSpeed:         1,
		DeliveriesNeeded: 4,
		ThiefEnabled:     true,
		ThiefSpeed:       1.2,
		PowerUpChance:    0.3,
	}
}

func TestCanvasBounds(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(-1, 0, 'x')
	c.Set(4, 0, 'x')
	c.Set(0, 2, 'x')
	c.Set(1, 1, 'y')

	assert.Equal(t, ' ', c.Get(-1, 0))
	assert.Equal(t, 'y', c.Get(1, 1))
	assert.Equal(t, "    ", c.Row(0))
	assert.Equal(t, "    ", c.Row(9))
	assert.Equal(t, "\n y", c.String())

	c.DrawText(2, 0, "abcdef")
	assert.Equal(t, "  ab", c.Row(0))
}

func TestMinimapLayout(t *testing.T) {
	c := drawMinimap(sampleLevel(), 30)
	require.Equal(t, minimapHeight, c.Height())
	require.Equal(t, 30, c.Width())

	assert.Equal(t, strings.Repeat(string(GlyphGround), 30), c.Row(rowGround))
	assert.Equal(t, 3, strings.Count(c.Row(rowHouse), string(GlyphHouse)))
	assert.Equal(t, 3, strings.Count(c.Row(rowRoof), string(GlyphRoof)))
	assert.Equal(t, 5, strings.Count(c.Row(rowIce), string(GlyphIce)))
	assert.Equal(t, GlyphStart, c.Get(0, rowHouse))

	// Lowest platform on the lowest platform row, highest on the top one.
	assert.Contains(t, c.Row(rowPlatformLo), string(GlyphPlatform))
	assert.Contains(t, c.Row(rowPlatformHi), string(GlyphMoving))
	assert.NotContains(t, c.Row(rowPlatformHi), string(GlyphPlatform))
}

func TestPlatformRow(t *testing.T) {
	assert.Equal(t, rowPlatformLo, platformRow(level.MinPlatformHeight))
	assert.Equal(t, rowPlatformHi, platformRow(level.MaxJumpHeight))
	assert.Equal(t, 2, platformRow(90))
	assert.Equal(t, rowPlatformHi, platformRow(500))
}

func TestMinimapNarrowWidth(t *testing.T) {
	out := Minimap(sampleLevel(), 3)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, minimapHeight)
	assert.Len(t, lines[rowGround], minMapWidth)
}

func TestMinimapGeneratedLevels(t *testing.T) {
	gen := procgen.New(procgen.NewRNG(3))
	for _, tier := range config.Tiers() {
		cfg := gen.RandomLevel(tier)
		c := drawMinimap(cfg, 80)
		houses := strings.Count(c.Row(rowHouse), string(GlyphHouse))
		assert.Greater(t, houses, 0, tier)
		assert.LessOrEqual(t, houses, len(cfg.Houses), tier)
	}
}

func TestSummary(t *testing.T) {
	out := Summary(sampleLevel())
	assert.Contains(t, out, "Chimney Hop")
	assert.Contains(t, out, "Short hops between roofs")
	assert.Contains(t, out, "THIEF ACTIVE")
	assert.Contains(t, out, "Deliveries")

	calm := sampleLevel()
	calm.ThiefEnabled = false
	assert.Contains(t, Summary(calm), "NO THIEF")
}

func TestStats(t *testing.T) {
	stats := Stats(sampleLevel())
	byLabel := map[string]string{}
	for _, s := range stats {
		byLabel[s.Label] = s.Value
	}
	assert.Equal(t, "3", byLabel["Houses"])
	assert.Equal(t, "5 blocks at 1.0x", byLabel["Ice"])
	assert.Equal(t, "2 (1 moving)", byLabel["Platforms"])
	assert.Equal(t, "30%", byLabel["Power-ups"])
	assert.Equal(t, "on (speed 1.2)", byLabel["Thief"])
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleLevel())
	assert.True(t, strings.HasPrefix(md, "# Chimney Hop\n"))
	assert.Contains(t, md, "| Deliveries | 4 |")
	assert.Contains(t, md, "3. x=2900 `#2980b9`")
	assert.Contains(t, md, "| 2 | 2000 | 120 | 100 | moving 1.5x |")
	assert.Contains(t, md, "```\n")
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown(sampleLevel(), 0)
	require.NoError(t, err)
	assert.Contains(t, out, "Chimney Hop")
}
