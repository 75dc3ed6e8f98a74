package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, path string, calls *atomic.Int32) *Watcher {
	t.Helper()
	w := New(path, 50*time.Millisecond, func() { calls.Add(1) }, nil)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestWatcher_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stickies.db")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	var calls atomic.Int32
	startWatcher(t, path, &calls)

	require.NoError(t, os.WriteFile(path+"-wal", []byte("b"), 0o644))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stickies.db")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	var calls atomic.Int32
	startWatcher(t, path, &calls)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte(i)}, 0o644))
	}

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stickies.db")

	var calls atomic.Int32
	startWatcher(t, path, &calls)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "stickies.log"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.db"), []byte("x"), 0o644))

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWatcher_NoCallbackAfterClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stickies.db")

	var calls atomic.Int32
	w := New(path, 50*time.Millisecond, func() { calls.Add(1) }, nil)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Close())

	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
	assert.NoError(t, w.Close(), "second close is harmless")
}

func TestWatcher_StartTwice(t *testing.T) {
	var calls atomic.Int32
	w := startWatcher(t, filepath.Join(t.TempDir(), "stickies.db"), &calls)

	assert.Error(t, w.Start(context.Background()))
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "nope", "stickies.db"), 0, func() {}, nil)
	assert.Error(t, w.Start(context.Background()))
}

func TestWatcher_CloseWaitsForRunningCallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stickies.db")

	started := make(chan struct{})
	var once sync.Once
	var finished atomic.Bool
	w := New(path, 10*time.Millisecond, func() {
		once.Do(func() { close(started) })
		time.Sleep(200 * time.Millisecond)
		finished.Store(true)
	}, nil)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never started")
	}

	require.NoError(t, w.Close())
	assert.True(t, finished.Load(), "Close returned while the callback was still running")
}

func TestDebouncer_StopAndWaitSkipsPending(t *testing.T) {
	d := newDebouncer(50 * time.Millisecond)
	var calls atomic.Int32

	d.trigger(func() { calls.Add(1) })
	d.stopAndWait()
	d.trigger(func() { calls.Add(1) })

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
