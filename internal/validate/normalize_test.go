package validate

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/courier-levels/internal/level"
	"github.com/vovakirdan/courier-levels/internal/procgen"
)

func newTestNormalizer(seed uint64) *Normalizer {
	return NewNormalizer(procgen.New(procgen.NewRNG(seed)))
}

func TestNormalizeNilCandidate(t *testing.T) {
	cfg, adj := newTestNormalizer(1).NormalizeWithReport(nil)

	require.NoError(t, cfg.Check())
	assert.Equal(t, "Random Medium Level", cfg.Name)
	assert.True(t, cfg.ThiefEnabled)
	require.Len(t, adj, 1)
	assert.Equal(t, AdjustRegenerated, adj[0].Kind)
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := newTestNormalizer(1).Normalize(level.Candidate{})

	assert.Equal(t, DefaultName, cfg.Name)
	assert.Equal(t, level.DefaultTheme, cfg.Theme)
	assert.Equal(t, DefaultDescription, cfg.Description)
	assert.Equal(t, 3000, cfg.WorldWidth)
	assert.Equal(t, 14, cfg.IceCount)
	assert.Equal(t, 1.0, cfg.IceSpeed)
	assert.Equal(t, 6, cfg.DeliveriesNeeded)
	assert.True(t, cfg.ThiefEnabled)
	assert.Equal(t, 1.0, cfg.ThiefSpeed)
	assert.Equal(t, 0.3, cfg.PowerUpChance)
	assert.Len(t, cfg.Houses, 8)
	assert.Len(t, cfg.Platforms, 8)
	require.NoError(t, cfg.Check())
}

func TestNormalizeClampsScalars(t *testing.T) {
	c := level.Candidate{
		"name":             "Ice Run",
		"worldWidth":       9000.0,
		"iceCount":         -4.0,
		"iceSpeed":         math.Inf(1),
		"deliveriesNeeded": 7.6,
		"thiefEnabled":     false,
		"thiefSpeed":       0.0,
		"powerUpChance":    "lots",
		"description":      "   ",
	}
	cfg, adj := newTestNormalizer(2).NormalizeWithReport(c)

	assert.Equal(t, "Ice Run", cfg.Name)
	assert.Equal(t, level.MaxWorldWidth, cfg.WorldWidth)
	assert.Equal(t, level.MinIceCount, cfg.IceCount)
	assert.Equal(t, level.MaxIceSpeed, cfg.IceSpeed)
	assert.Equal(t, 8, cfg.DeliveriesNeeded)
	assert.False(t, cfg.ThiefEnabled, "explicit false must be honoured")
	assert.Equal(t, level.MinThiefSpeed, cfg.ThiefSpeed)
	assert.Equal(t, 0.3, cfg.PowerUpChance)
	assert.Equal(t, DefaultDescription, cfg.Description)

	kinds := map[string]AdjustKind{}
	for _, a := range adj {
		kinds[a.Field] = a.Kind
	}
	assert.Equal(t, AdjustClamped, kinds["worldWidth"])
	assert.Equal(t, AdjustClamped, kinds["iceCount"])
	assert.Equal(t, AdjustDefaulted, kinds["powerUpChance"])
	assert.Equal(t, AdjustDefaulted, kinds["description"])
	assert.Equal(t, AdjustRegenerated, kinds["houses"])
	assert.NotContains(t, kinds, "name")
	assert.NotContains(t, kinds, "thiefEnabled")
}

func TestNormalizeHouses(t *testing.T) {
	n := newTestNormalizer(3)

	t.Run("too few regenerates", func(t *testing.T) {
		houses := n.NormalizeHouses([]any{map[string]any{"x": 1.0}, map[string]any{"x": 2.0}})
		assert.Len(t, houses, 8)
	})

	t.Run("not a list regenerates", func(t *testing.T) {
		assert.Len(t, n.NormalizeHouses("houses"), 8)
		assert.Len(t, n.NormalizeHouses(nil), 8)
	})

	t.Run("fields clamped and defaulted", func(t *testing.T) {
		houses := n.NormalizeHouses([]any{
			map[string]any{"x": 10.0, "color": "#ffffff"},
			map[string]any{"x": 99999.0},
			"garbage",
		})
		require.Len(t, houses, 3)
		assert.Equal(t, level.MinHouseX, houses[0].X)
		assert.Equal(t, "#ffffff", houses[0].Color)
		assert.Equal(t, level.MaxHouseX, houses[1].X)
		assert.Equal(t, level.PaletteColor(1), houses[1].Color)
		assert.Equal(t, 1000.0, houses[2].X)
		assert.Equal(t, level.PaletteColor(2), houses[2].Color)
	})

	t.Run("truncated to max", func(t *testing.T) {
		raw := make([]any, 20)
		for i := range raw {
			raw[i] = map[string]any{"x": float64(400 + i*100)}
		}
		assert.Len(t, n.NormalizeHouses(raw), level.MaxHouses)
	})
}

func TestNormalizePlatforms(t *testing.T) {
	n := newTestNormalizer(4)

	t.Run("too few regenerates", func(t *testing.T) {
		assert.Len(t, n.NormalizePlatforms([]any{map[string]any{}}), 8)
	})

	t.Run("height alias and clamps", func(t *testing.T) {
		platforms := n.NormalizePlatforms([]any{
			map[string]any{"x": 0.0, "height": 500.0, "width": 10.0, "moving": true, "speed": 9.0},
			map[string]any{"heightAboveGround": 20.0, "moving": false},
			map[string]any{"heightAboveGround": 95.0, "height": 200.0},
		})
		require.Len(t, platforms, 3)

		assert.Equal(t, level.MinPlatformX, platforms[0].X)
		assert.Equal(t, level.MaxJumpHeight, platforms[0].HeightAboveGround)
		assert.Equal(t, level.MinPlatformWidth, platforms[0].Width)
		assert.True(t, platforms[0].Moving)
		assert.Equal(t, level.MaxPlatformSpeed, platforms[0].Speed)

		assert.Equal(t, 500.0, platforms[1].X)
		assert.Equal(t, level.MinPlatformHeight, platforms[1].HeightAboveGround)
		assert.Equal(t, 80.0, platforms[1].Width)
		assert.False(t, platforms[1].Moving)
		assert.Equal(t, 1.0, platforms[1].Speed)

		assert.Equal(t, 95.0, platforms[2].HeightAboveGround, "heightAboveGround wins over height")
	})

	t.Run("zero height is a value, not missing", func(t *testing.T) {
		platforms := n.NormalizePlatforms([]any{
			map[string]any{"heightAboveGround": 0.0, "height": 100.0},
			map[string]any{"heightAboveGround": 80.0},
			map[string]any{"heightAboveGround": 90.0},
		})
		require.Len(t, platforms, 3)
		assert.Equal(t, level.MinPlatformHeight, platforms[0].HeightAboveGround)
	})

	t.Run("truncated to max", func(t *testing.T) {
		raw := make([]any, 30)
		for i := range raw {
			raw[i] = map[string]any{"x": float64(300 + i*100)}
		}
		assert.Len(t, n.NormalizePlatforms(raw), level.MaxPlatforms)
	})
}

func TestNormalizeExplicitZeroIsClamped(t *testing.T) {
	cfg := newTestNormalizer(5).Normalize(level.Candidate{
		"worldWidth": 0.0,
		"houses": []any{
			map[string]any{"x": 0.0},
			map[string]any{"x": 800.0},
			map[string]any{"x": 1200.0},
		},
	})

	assert.Equal(t, level.MinWorldWidth, cfg.WorldWidth)
	require.Len(t, cfg.Houses, 3)
	assert.Equal(t, level.MinHouseX, cfg.Houses[0].X)
}

func TestNormalizeTooFewHousesFromPrompt(t *testing.T) {
	c := level.Candidate{
		"name":       "Ice Run",
		"worldWidth": 9000.0,
		"houses":     []any{map[string]any{"x": 1.0}, map[string]any{"x": 2.0}},
	}
	cfg := newTestNormalizer(5).Normalize(c)

	assert.Equal(t, 5000, cfg.WorldWidth)
	assert.GreaterOrEqual(t, len(cfg.Houses), 3)
	assert.Len(t, cfg.Houses, 8)
}

// garbage returns a random value of a random kind.
func garbage(r *rand.Rand, depth int) any {
	switch r.Intn(12) {
	case 0:
		return nil
	case 1:
		return r.NormFloat64() * 1e6
	case 2:
		return -r.Float64() * 1e9
	case 3:
		return math.Inf(1 - 2*r.Intn(2))
	case 4:
		return math.NaN()
	case 5:
		return "not a number"
	case 6:
		return r.Intn(2) == 0
	case 7:
		return float64(r.Intn(200) - 100)
	case 8:
		return ""
	case 9:
		if depth > 2 {
			return 1.0
		}
		n := r.Intn(20)
		out := make([]any, n)
		for i := range out {
			out[i] = garbageRecord(r, depth+1)
		}
		return out
	case 10:
		if depth > 2 {
			return "leaf"
		}
		return garbageRecord(r, depth+1)
	default:
		return r.Int63()
	}
}

var candidateKeys = []string{
	"name", "theme", "worldWidth", "houses", "platforms", "iceCount", "iceSpeed",
	"deliveriesNeeded", "thiefEnabled", "thiefSpeed", "powerUpChance", "description",
	"x", "color", "height", "heightAboveGround", "width", "moving", "speed",
}

func garbageRecord(r *rand.Rand, depth int) map[string]any {
	rec := map[string]any{}
	for _, k := range candidateKeys {
		if r.Intn(3) == 0 {
			continue
		}
		rec[k] = garbage(r, depth)
	}
	return rec
}

func TestNormalizeRandomizedInputsAlwaysValid(t *testing.T) {
	r := rand.New(rand.NewSource(20240601))
	n := newTestNormalizer(6)

	for i := 0; i < 2000; i++ {
		c := level.Candidate(garbageRecord(r, 0))
		cfg := n.Normalize(c)
		require.NoError(t, cfg.Check(), "round %d candidate %v", i, c)
		require.GreaterOrEqual(t, len(cfg.Houses), level.MinHouses)
		require.GreaterOrEqual(t, len(cfg.Platforms), level.MinPlatforms)

		for _, p := range cfg.Platforms {
			require.GreaterOrEqual(t, p.HeightAboveGround, level.MinPlatformHeight)
			require.LessOrEqual(t, p.HeightAboveGround, level.MaxJumpHeight)
		}
	}
}

func TestNormalizeRandomizedListsDirect(t *testing.T) {
	r := rand.New(rand.NewSource(77))
	n := newTestNormalizer(8)

	for i := 0; i < 500; i++ {
		raw := garbage(r, 0)
		houses := n.NormalizeHouses(raw)
		require.GreaterOrEqual(t, len(houses), level.MinHouses)
		require.LessOrEqual(t, len(houses), level.MaxHouses)

		for _, p := range n.NormalizePlatforms(raw) {
			require.GreaterOrEqual(t, p.HeightAboveGround, level.MinPlatformHeight)
			require.LessOrEqual(t, p.HeightAboveGround, level.MaxJumpHeight)
		}
	}
}
