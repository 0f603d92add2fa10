package preview

import (
	"math"

	"github.com/vovakirdan/courier-levels/internal/level"
)

// Minimap glyphs.
const (
	GlyphIce      = '*'
	GlyphRoof     = '^'
	GlyphHouse    = 'H'
	GlyphPlatform = '='
	GlyphMoving   = '~'
	GlyphGround   = '#'
	GlyphStart    = '@'
)

// Minimap rows, top to bottom.
const (
	rowIce        = 0
	rowPlatformHi = 1
	rowPlatformLo = 3
	rowRoof       = 4
	rowHouse      = 5
	rowGround     = 6
	minimapHeight = 7
	minMapWidth   = 20
)

// Minimap draws a side view of cfg scaled to width columns. Higher
// platforms are drawn on higher rows; moving platforms use a distinct
// glyph. Falling ice is hinted on the top row.
func Minimap(cfg level.Config, width int) string {
	return drawMinimap(cfg, width).String()
}

func drawMinimap(cfg level.Config, width int) *Canvas {
	if width < minMapWidth {
		width = minMapWidth
	}
	c := NewCanvas(width, minimapHeight)

	worldWidth := float64(cfg.WorldWidth)
	if worldWidth <= 0 {
		worldWidth = level.MaxWorldWidth
	}
	col := func(x float64) int {
		return int(math.Round(x / worldWidth * float64(width-1)))
	}

	c.DrawHLine(0, rowGround, width, GlyphGround)

	if cfg.IceCount > 0 {
		step := float64(width) / float64(cfg.IceCount)
		for i := 0; i < cfg.IceCount; i++ {
			c.Set(int(float64(i)*step+step/2), rowIce, GlyphIce)
		}
	}

	for _, p := range cfg.Platforms {
		glyph := GlyphPlatform
		if p.Moving {
			glyph = GlyphMoving
		}
		span := max(1, int(math.Round(p.Width/worldWidth*float64(width))))
		c.DrawHLine(col(p.X), platformRow(p.HeightAboveGround), span, glyph)
	}

	for _, h := range cfg.Houses {
		x := col(h.X)
		c.Set(x, rowRoof, GlyphRoof)
		c.Set(x, rowHouse, GlyphHouse)
	}

	c.Set(0, rowHouse, GlyphStart)
	return c
}

// platformRow maps a height in the jumpable range to a minimap row.
func platformRow(height float64) int {
	t := (height - level.MinPlatformHeight) / (level.MaxJumpHeight - level.MinPlatformHeight)
	t = math.Max(0, math.Min(1, t))
	return rowPlatformLo - int(math.Round(t*float64(rowPlatformLo-rowPlatformHi)))
}
