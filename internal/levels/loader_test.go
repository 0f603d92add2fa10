package levels

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vovakirdan/courier-levels/internal/level"
	"github.com/vovakirdan/courier-levels/internal/procgen"
	"github.com/vovakirdan/courier-levels/internal/validate"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newLoader(root string) *Loader {
	return NewLoader(root, validate.NewNormalizer(procgen.New(procgen.NewRNG(1))))
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b-rooftops.yaml", `
name: Rooftops
worldWidth: 4000
houses: [{x: 400}, {x: 800}, {x: 1200}]
platforms: [{x: 300, heightAboveGround: 300}, {x: 700, height: 40}]
`)
	writeFile(t, dir, "nested/a.json", `{"id":"alpha","name":"Alpha","iceCount":99}`)
	writeFile(t, dir, "broken.yml", "name: [oops")
	writeFile(t, dir, "notes.txt", "ignored")

	levels, err := newLoader(dir).LoadAll()
	require.NoError(t, err)
	require.Len(t, levels, 2)

	assert.Equal(t, "alpha", levels[0].ID)
	assert.Equal(t, "Alpha", levels[0].Config.Name)
	assert.Equal(t, level.MaxIceCount, levels[0].Config.IceCount)

	roof := levels[1]
	assert.Equal(t, "b-rooftops", roof.ID)
	assert.Equal(t, 4000, roof.Config.WorldWidth)
	require.Len(t, roof.Config.Houses, 3)
	require.Len(t, roof.Config.Platforms, 2)
	assert.Equal(t, level.MaxJumpHeight, roof.Config.Platforms[0].HeightAboveGround)
	assert.Equal(t, level.MinPlatformHeight, roof.Config.Platforms[1].HeightAboveGround)
	assert.NotEmpty(t, roof.Adjustments)

	for _, l := range levels {
		require.NoError(t, l.Config.Check(), l.ID)
		assert.Equal(t, level.OriginFile, l.Origin().Kind)
	}
}

func TestScanReportsErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.yaml", "name: fine")
	writeFile(t, dir, "bad.json", "[1, 2]")

	results, err := newLoader(dir).Scan()
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, filepath.Join(dir, "bad.json"), results[0].Path)
	assert.Error(t, results[0].Err)
	assert.NoError(t, results[1].Err)
	assert.Equal(t, "fine", results[1].Level.Config.Name)
}

func TestLoadByID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.yaml", "name: One")

	lvl, err := newLoader(dir).LoadByID("one")
	require.NoError(t, err)
	assert.Equal(t, "One", lvl.Config.Name)

	_, err = newLoader(dir).LoadByID("two")
	assert.Error(t, err)
}

func TestLoadAllMissingRoot(t *testing.T) {
	_, err := newLoader(filepath.Join(t.TempDir(), "missing")).LoadAll()
	assert.Error(t, err)
}

func TestIsLevelFile(t *testing.T) {
	assert.True(t, IsLevelFile("a.YAML"))
	assert.True(t, IsLevelFile("dir/b.yml"))
	assert.True(t, IsLevelFile("c.json"))
	assert.False(t, IsLevelFile("d.txt"))
	assert.False(t, IsLevelFile("yaml"))
}

func TestWatcherReportsLevelFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, dir, "ignored.txt", "x")
	path := writeFile(t, dir, "fresh.yaml", "name: Fresh")

	select {
	case got := <-w.Events:
		assert.Equal(t, path, got)
	case <-time.After(3 * time.Second):
		t.Fatal("no event for level file")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, open := <-w.Events
	assert.False(t, open)
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
