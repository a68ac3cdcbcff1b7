package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/platinummonkey/alloykit/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer is a bytes.Buffer safe for one writer and concurrent readers
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunWatch(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"config.alloy": goodConfig})
	path := filepath.Join(dir, "config.alloy")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- runWatch(ctx, out, io.Discard, watchOptions{dir: dir, delay: 20 * time.Millisecond, logLevel: "error"})
	}()

	eventually := func(substr string) {
		t.Helper()
		require.Eventually(t, func() bool {
			return strings.Contains(out.String(), substr)
		}, 5*time.Second, 10*time.Millisecond, "waiting for %q in:\n%s", substr, out.String())
	}

	// Existing files are analysed at start
	eventually(path + ": 0 finding(s)")

	require.NoError(t, os.WriteFile(path, []byte(badConfig), 0644))
	eventually(path + ":1:1: [error] Unclosed string literal (unclosed-string)")

	// Files created in new directories are picked up
	nested := filepath.Join(dir, "modules", "db.alloy")
	require.NoError(t, os.MkdirAll(filepath.Dir(nested), 0755))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(nested, []byte(warnConfig), 0644))
	eventually(nested + ": 1 finding(s)")

	require.NoError(t, os.Remove(path))
	eventually(path + ": removed")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestRunWatchErrors(t *testing.T) {
	err := runWatch(context.Background(), io.Discard, io.Discard, watchOptions{dir: t.TempDir(), logLevel: "verbose"})
	assert.Error(t, err)

	err = runWatch(context.Background(), io.Discard, io.Discard, watchOptions{dir: filepath.Join(t.TempDir(), "missing"), logLevel: "info"})
	assert.ErrorContains(t, err, "failed to setup watcher")
}

func TestWatchScheduleDebounces(t *testing.T) {
	loop := newWatchLoop(nil, io.Discard, observability.NewNopLogger(), 30*time.Millisecond)
	loop.ready = make(chan string, 4)
	defer loop.stopTimers()

	loop.schedule("a.alloy")
	loop.schedule("a.alloy")
	loop.schedule("a.alloy")
	assert.Len(t, loop.pending, 1)

	select {
	case path := <-loop.ready:
		assert.Equal(t, "a.alloy", path)
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}

	select {
	case path := <-loop.ready:
		t.Fatalf("unexpected second event for %s", path)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatchLoopStopsWhenWatcherCloses(t *testing.T) {
	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	require.NoError(t, watcher.Close())

	loop := newWatchLoop(nil, io.Discard, observability.NewNopLogger(), time.Millisecond)
	require.NoError(t, loop.run(context.Background(), watcher))

	// A timer that fires after the loop has returned must not block
	returned := make(chan struct{})
	go func() {
		loop.fire("a.alloy")
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("timer callback blocked after the loop stopped")
	}
}
