package level

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Name:       "Test",
		Theme:      DefaultTheme,
		WorldWidth: 3000,
		Houses: []House{
			{X: 400, Color: PaletteColor(0)},
			{X: 800, Color: PaletteColor(1)},
			{X: 1200, Color: PaletteColor(2)},
		},
		Platforms: []Platform{
			{X: 300, HeightAboveGround: 80, Width: 80, Speed: 1},
			{X: 700, HeightAboveGround: 120, Width: 100, Moving: true, Speed: 1.5},
		},
		IceCount:         14,
		IceSpeed:         1.0,
		DeliveriesNeeded: 6,
		ThiefEnabled:     true,
		ThiefSpeed:       1.0,
		PowerUpChance:    0.3,
		Description:      "desc",
	}
}

func TestCheckAcceptsValidConfig(t *testing.T) {
	require.NoError(t, validConfig().Check())
}

func TestCheckReportsViolations(t *testing.T) {
	cfg := validConfig()
	cfg.WorldWidth = 9000
	cfg.Platforms[0].HeightAboveGround = 121
	cfg.Houses = cfg.Houses[:2]

	err := cfg.Check()
	require.Error(t, err)

	var errs CheckErrors
	require.True(t, errors.As(err, &errs))

	codes := make([]string, 0, len(errs))
	for _, e := range errs {
		codes = append(codes, e.Code)
	}
	assert.ElementsMatch(t, []string{"WORLD_WIDTH", "PLATFORM_HEIGHT", "HOUSE_COUNT"}, codes)
}

func TestCloneIsIndependent(t *testing.T) {
	orig := validConfig()
	cp := orig.Clone()
	cp.Houses[0].X = 4000
	cp.Platforms[0].Moving = true

	assert.Equal(t, 400.0, orig.Houses[0].X)
	assert.False(t, orig.Platforms[0].Moving)
}

func TestAsRecordNonObject(t *testing.T) {
	assert.Empty(t, AsRecord(42))
	assert.Empty(t, AsRecord("house"))

	rec := AsRecord(map[any]any{"x": 5, 7: "ignored"})
	assert.Equal(t, Candidate{"x": 5}, rec)
}

func TestCandidateList(t *testing.T) {
	c := Candidate{"houses": []any{1, 2}, "name": "x"}

	l, ok := c.List("houses")
	require.True(t, ok)
	assert.Len(t, l, 2)

	_, ok = c.List("name")
	assert.False(t, ok)

	var nilCand Candidate
	_, ok = nilCand.Get("name")
	assert.False(t, ok)
}
