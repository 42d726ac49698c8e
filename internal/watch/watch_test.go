package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestWatchDirs(t *testing.T) {
	root := t.TempDir()
	flags := filepath.Join(root, "gfx", "flags")
	require.NoError(t, os.MkdirAll(flags, 0o755))
	tagFile := filepath.Join(root, "countries.txt")
	require.NoError(t, os.WriteFile(tagFile, []byte("GHO = Ghana\n"), 0o644))

	dirs := watchDirs([]string{flags, tagFile, "", flags + "/", filepath.Join(root, "missing.txt")})

	assert.Equal(t, []string{flags, root}, dirs)
}

func TestRun_DebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, Options{
			Paths:    []string{dir},
			Debounce: 100 * time.Millisecond,
			Logger:   zaptest.NewLogger(t),
		}, func(context.Context) {
			calls.Add(1)
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	for _, name := range []string{"USA.tga", "USA_fascist.tga", "USA_communist.tga"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("flag"), 0o644))
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestRun_MissingPath(t *testing.T) {
	err := Run(context.Background(), Options{Paths: []string{filepath.Join(t.TempDir(), "no", "such", "dir")}}, func(context.Context) {})
	assert.Error(t, err)
}
