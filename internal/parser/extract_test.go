package parser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCandidateWithProse(t *testing.T) {
	raw := `here is your level: {"name":"Ice Run","worldWidth":9000,"houses":[{"x":1},{"x":2}]} enjoy!`

	c, ok := ExtractCandidate(raw)
	require.True(t, ok)
	assert.Equal(t, "Ice Run", c["name"])
	assert.Equal(t, 9000.0, c["worldWidth"])

	houses, ok := c.List("houses")
	require.True(t, ok)
	assert.Len(t, houses, 2)
}

func TestExtractCandidateCodeFence(t *testing.T) {
	raw := "Sure!\n```json\n{\n  \"name\": \"Fenced\",\n  \"thiefEnabled\": false\n}\n```\n"

	c, ok := ExtractCandidate(raw)
	require.True(t, ok)
	assert.Equal(t, "Fenced", c["name"])
	assert.Equal(t, false, c["thiefEnabled"])
}

func TestExtractCandidateBracesInStrings(t *testing.T) {
	raw := `{"name":"Curly } level","description":"a \"quoted { brace\""} trailing }`

	c, ok := ExtractCandidate(raw)
	require.True(t, ok)
	assert.Equal(t, "Curly } level", c["name"])
	assert.Equal(t, `a "quoted { brace"`, c["description"])
}

func TestExtractCandidateFirstSpanOnly(t *testing.T) {
	raw := `{"name":"first"} and then {"name":"second"}`

	c, ok := ExtractCandidate(raw)
	require.True(t, ok)
	assert.Equal(t, "first", c["name"])
}

func TestExtractCandidateNone(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"no braces":      "I could not build a level, sorry.",
		"unbalanced":     `{"name":"open"`,
		"not json":       "{name: bare words}",
		"trailing comma": `{"name":"x",}`,
		"closing only":   "}}}",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			c, ok := ExtractCandidate(raw)
			assert.False(t, ok)
			assert.Nil(t, c)
		})
	}
}

func TestExtractCandidateHugeNumbers(t *testing.T) {
	c, ok := ExtractCandidate(`{"worldWidth": 1e400, "iceCount": -1e400}`)
	require.True(t, ok)
	assert.True(t, math.IsInf(c["worldWidth"].(float64), 1))
	assert.True(t, math.IsInf(c["iceCount"].(float64), -1))
}

func TestExtractCandidateNestedNumbers(t *testing.T) {
	c, ok := ExtractCandidate(`{"platforms":[{"x":350,"height":90}]}`)
	require.True(t, ok)

	platforms, ok := c.List("platforms")
	require.True(t, ok)
	p := platforms[0].(map[string]any)
	assert.Equal(t, 350.0, p["x"])
	assert.Equal(t, 90.0, p["height"])
}

func TestObjectSpan(t *testing.T) {
	assert.Equal(t, `{"a":{"b":1}}`, ObjectSpan(`xx {"a":{"b":1}} yy`))
	assert.Equal(t, "", ObjectSpan("no object"))
	assert.Equal(t, "", ObjectSpan(`{"a": "}`))
}
