package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justin0804nitsuj/memo/models"
	pkgerrors "github.com/justin0804nitsuj/memo/pkg/errors"
)

func TestSettled(t *testing.T) {
	now := time.Now()
	pending := map[string]time.Time{
		"/b": now.Add(-3 * time.Second),
		"/a": now.Add(-2 * time.Second),
		"/c": now.Add(-100 * time.Millisecond),
	}

	ready := settled(pending, now, time.Second)
	assert.Equal(t, []string{"/a", "/b"}, ready)
	assert.Len(t, pending, 1)
	assert.Contains(t, pending, "/c")
}

func TestAddNew_SkipsKnownPaths(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(t)
	_, err := c.AddFile(ctx, AddFileRequest{Path: "/w/old.txt"})
	require.NoError(t, err)

	var added []string
	err = c.addNew(ctx, []string{"/w/new.png", "/w/old.txt"}, WatchRequest{
		Description: "watched",
		OnAdd:       func(rec models.FileRecord) { added = append(added, rec.FilePath) },
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/w/new.png"}, added)

	all, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "watched", all[1].Description)
}

func TestWatch_MissingRoot(t *testing.T) {
	c := newTestCatalog(t)
	err := c.Watch(context.Background(), WatchRequest{Root: filepath.Join(t.TempDir(), "nope")})
	assert.True(t, pkgerrors.IsIO(err))
}

func TestWatch_AddsNewFiles(t *testing.T) {
	c := newTestCatalog(t)
	root := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	added := make(chan models.FileRecord, 4)
	done := make(chan error, 1)
	go func() {
		done <- c.Watch(ctx, WatchRequest{
			Root:       root,
			Extensions: []string{"txt"},
			Settle:     50 * time.Millisecond,
			OnAdd:      func(rec models.FileRecord) { added <- rec },
		})
	}()

	// Give the watcher time to register the root.
	time.Sleep(200 * time.Millisecond)
	path := filepath.Join(root, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "skip.bin"), []byte("x"), 0o644))

	select {
	case rec := <-added:
		assert.Equal(t, path, rec.FilePath)
		assert.Equal(t, models.FileTypeText, rec.FileType)
	case <-time.After(5 * time.Second):
		t.Fatal("file was not added")
	}

	cancel()
	require.NoError(t, <-done)

	all, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
