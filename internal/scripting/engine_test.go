package scripting

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	e, err := NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestBuiltinScore(t *testing.T) {
	e := newEngine(t, "")
	assert.Equal(t, 3*1000+2*5000+120, e.Score(ScoreContext{Level: 3, Bosses: 2, Gold: 120}))
}

func TestBuiltinDialogue(t *testing.T) {
	e := newEngine(t, "")
	assert.Equal(t, "X: hi", e.PhaseDialogue(PhaseContext{Name: "X", Phase: 1, Default: "X: hi"}))
	assert.Equal(t, "X: I AM THE NEW STANDARD", e.PhaseDialogue(PhaseContext{Name: "X", Phase: 2}))
	assert.Contains(t, e.BossWarning(4), "sector 4")
}

func TestOverrideDirReplacesGlobals(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "score.lua"),
		[]byte("function calc_score(ctx) return ctx.kills end\n"), 0o644))
	e := newEngine(t, dir)
	assert.Equal(t, 7, e.Score(ScoreContext{Level: 3, Kills: 7}))
	assert.Contains(t, e.BossWarning(1), "sector 1", "untouched builtins survive")
}

func TestBrokenScriptFailsLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.lua"), []byte("function ("), 0o644))
	_, err := NewEngine(dir, zap.NewNop())
	assert.ErrorContains(t, err, "load scripts")
}

func TestRuntimeErrorFallsBack(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "score.lua"),
		[]byte("function calc_score(ctx) error('boom') end\n"), 0o644))
	e := newEngine(t, dir)
	assert.Equal(t, 1000, e.Score(ScoreContext{Level: 1}))
}

func TestReloadKeepsOldVMOnError(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "score.lua")
	require.NoError(t, os.WriteFile(file, []byte("function calc_score(ctx) return 1 end\n"), 0o644))
	e := newEngine(t, dir)

	require.NoError(t, os.WriteFile(file, []byte("function calc_score(ctx) return 2 end\n"), 0o644))
	require.NoError(t, e.Reload())
	assert.Equal(t, 2, e.Score(ScoreContext{}))

	require.NoError(t, os.WriteFile(file, []byte("function ("), 0o644))
	assert.Error(t, e.Reload())
	assert.Equal(t, 2, e.Score(ScoreContext{}))
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "score.lua")
	require.NoError(t, os.WriteFile(file, []byte("function calc_score(ctx) return 1 end\n"), 0o644))
	e := newEngine(t, dir)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Watch(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// give the watcher time to register before writing
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(file, []byte("function calc_score(ctx) return 9 end\n"), 0o644))

	assert.Eventually(t, func() bool {
		return e.Score(ScoreContext{}) == 9
	}, 3*time.Second, 20*time.Millisecond)
}
