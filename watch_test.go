package main

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/codetabs/internal/iotest"
)

func TestWatcher(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	watched := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(watched, []byte("package main\n"), 0o644))

	var builds atomic.Int32
	rebuilt := make(chan struct{}, 1)
	w := Watcher{
		Log:   log.New(iotest.Writer(t), "", 0),
		Delay: time.Millisecond,
		Build: func() ([]string, error) {
			n := builds.Add(1)
			select {
			case rebuilt <- struct{}{}:
			default:
			}
			if n == 1 {
				return nil, errors.New("great sadness")
			}
			return []string{watched}, nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, []string{watched})
	}()

	// Keep writing until the watcher has registered
	// and picked up a change.
	waitRebuild := func() {
		t.Helper()

		timeout := time.After(10 * time.Second)
		for {
			require.NoError(t, os.WriteFile(watched, []byte("package main\n\nfunc main() {}\n"), 0o644))
			select {
			case <-rebuilt:
				return
			case <-timeout:
				t.Fatal("timed out waiting for rebuild")
			case <-time.After(100 * time.Millisecond):
			}
		}
	}

	waitRebuild()
	// The first build failed, but the watcher keeps going.
	waitRebuild()
	assert.GreaterOrEqual(t, builds.Load(), int32(2))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_missingFile(t *testing.T) {
	t.Parallel()

	w := Watcher{
		Log:   log.New(iotest.Writer(t), "", 0),
		Build: func() ([]string, error) { return nil, nil },
	}
	err := w.Watch(context.Background(), []string{
		filepath.Join(t.TempDir(), "does", "not", "exist.go"),
	})
	assert.Error(t, err)
}
