package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationString(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.String())
	}
}

func TestConvertOp(t *testing.T) {
	op, ok := convertOp(fsnotify.Write | fsnotify.Chmod)
	assert.True(t, ok)
	assert.Equal(t, OpWrite, op)

	_, ok = convertOp(fsnotify.Chmod)
	assert.False(t, ok)
}

func TestWatchFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scribe.toml")
	require.NoError(t, os.WriteFile(path, []byte("a = 1\n"), 0o600))

	w, err := New(WithDebounce(20 * time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	events := make(chan Event, 8)
	w.OnChange(func(e Event) { events <- e })
	require.NoError(t, w.Watch(path))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(path, []byte("a = 2\n"), 0o600))

	select {
	case e := <-events:
		abs, _ := filepath.Abs(path)
		assert.Equal(t, abs, e.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change event")
	}
}

func TestWatchUnwatch(t *testing.T) {
	dir := t.TempDir()
	w, err := New()
	require.NoError(t, err)

	a := filepath.Join(dir, "a.toml")
	b := filepath.Join(dir, "b.toml")
	require.NoError(t, w.Watch(a))
	require.NoError(t, w.Watch(b))
	require.NoError(t, w.Watch(a))
	assert.Len(t, w.WatchedFiles(), 2)

	require.NoError(t, w.Unwatch(a))
	assert.Len(t, w.WatchedFiles(), 1)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Watch(a), ErrClosed)
}
