package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/courier-levels/internal/level"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Frozen Al.", truncate("Frozen Alley Run", 10))
	assert.Equal(t, "Über", truncate("Über", 4))
}

func TestPortOf(t *testing.T) {
	assert.Equal(t, "23235", portOf(":23235"))
	assert.Equal(t, "2222", portOf("0.0.0.0:2222"))
	assert.Equal(t, "nonsense", portOf("nonsense"))
}

func TestDescribeOrigin(t *testing.T) {
	tests := []struct {
		origin level.Origin
		want   string
	}{
		{level.Origin{Kind: level.OriginPrompt, Prompt: "ice"}, `AI level for "ice"`},
		{level.Origin{Kind: level.OriginFallback, Tier: "medium", Prompt: "ice"}, `procedural medium level (AI service unavailable for "ice")`},
		{level.Origin{Kind: level.OriginQuick, Tier: "hard"}, "procedural hard level"},
		{level.Origin{Kind: level.OriginFile, Prompt: "a.yaml"}, "level file a.yaml"},
		{level.Origin{Kind: level.OriginHistory}, "stored level"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describeOrigin(tt.origin))
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"quick", "generate", "current", "clear", "history", "show", "check", "apply", "backends", "server", "studio", "serve"}
	for _, name := range want {
		cmd, _, err := rootCmd.Find([]string{name})
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, cmd.Name())
		}
	}
}
