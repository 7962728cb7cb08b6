package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startWatch runs Watch in the background and returns the reload channel
// and the channel carrying Watch's return value.
func startWatch(t *testing.T, ctx context.Context, path string) (<-chan Config, <-chan error) {
	t.Helper()
	reloads := make(chan Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg Config) { reloads <- cfg })
	}()
	// Give the watcher time to register on the directory.
	time.Sleep(200 * time.Millisecond)
	return reloads, done
}

func TestWatchDetectsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: http://initial/mcp\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloads, done := startWatch(t, ctx, path)

	require.NoError(t, os.WriteFile(path, []byte("endpoint: http://updated/mcp\n"), 0o600))

	select {
	case cfg := <-reloads:
		assert.Equal(t, "http://updated/mcp", cfg.Endpoint)
	case <-time.After(3 * time.Second):
		t.Fatal("expected a reload after the config file was written")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(3 * time.Second):
		t.Fatal("expected Watch to return after context cancellation")
	}
}

// Rapid successive writes within the debounce window must coalesce into a
// single reload instead of one per write.
func TestWatchDebouncesRapidWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: http://initial/mcp\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reloadCount int32
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(cfg Config) { atomic.AddInt32(&reloadCount, 1) })
	}()
	time.Sleep(200 * time.Millisecond)

	const writes = 5
	for i := 0; i < writes; i++ {
		require.NoError(t, os.WriteFile(path, []byte("endpoint: http://updated/mcp\n"), 0o600))
		time.Sleep(50 * time.Millisecond)
	}

	// Wait out the debounce window plus slack.
	time.Sleep(debounceInterval + 700*time.Millisecond)

	count := atomic.LoadInt32(&reloadCount)
	assert.GreaterOrEqual(t, count, int32(1), "expected at least one reload")
	assert.Less(t, count, int32(writes), "expected rapid writes to coalesce")

	cancel()
	<-done
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: http://initial/mcp\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloads, done := startWatch(t, ctx, path)

	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte("endpoint: http://other/mcp\n"), 0o600))

	select {
	case cfg := <-reloads:
		t.Fatalf("expected no reload for a sibling file, got endpoint %s", cfg.Endpoint)
	case <-time.After(debounceInterval + 700*time.Millisecond):
	}

	cancel()
	<-done
}
