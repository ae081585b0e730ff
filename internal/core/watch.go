package core

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/justin0804nitsuj/memo/models"
	pkgerrors "github.com/justin0804nitsuj/memo/pkg/errors"
)

// WatchRequest catalogs files created below Root while Watch runs.
type WatchRequest struct {
	Root        string
	Extensions  []string
	Description string
	// Settle is how long a file must stay unchanged before it is added.
	Settle time.Duration
	// OnAdd, if set, is called for every record added.
	OnAdd func(models.FileRecord)
}

// Watch monitors req.Root and its subdirectories until ctx is done. New and
// modified files are batched and added once they have settled; a path that
// is already cataloged is not added again.
func (c *Catalog) Watch(ctx context.Context, req WatchRequest) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return pkgerrors.NewIOError("watch", req.Root, err)
	}
	defer watcher.Close()

	err = filepath.WalkDir(req.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return pkgerrors.NewIOError("watch", req.Root, err)
	}

	settle := req.Settle
	if settle <= 0 {
		settle = time.Second
	}
	allowed := extensionSet(req.Extensions)
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(settle)
	defer ticker.Stop()

	log := c.log.With().Str("root", req.Root).Logger()
	log.Info().Dur("settle", settle).Msg("watching")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}
			if info.IsDir() {
				if event.Op&fsnotify.Create != 0 {
					if err := watcher.Add(event.Name); err != nil {
						log.Warn().Err(err).Str("path", event.Name).Msg("cannot watch new directory")
					}
				}
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}
			if !matches(allowed, event.Name) {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")

		case now := <-ticker.C:
			ready := settled(pending, now, settle)
			if len(ready) == 0 {
				continue
			}
			log.Debug().Int("count", len(ready)).Msg("processing changed files")
			if err := c.addNew(ctx, ready, req); err != nil {
				return err
			}
		}
	}
}

// settled removes and returns, sorted, the pending paths untouched for at
// least settle.
func settled(pending map[string]time.Time, now time.Time, settle time.Duration) []string {
	var ready []string
	for path, last := range pending {
		if now.Sub(last) >= settle {
			ready = append(ready, path)
			delete(pending, path)
		}
	}
	sort.Strings(ready)
	return ready
}

func (c *Catalog) addNew(ctx context.Context, paths []string, req WatchRequest) error {
	known, err := c.knownPaths(ctx)
	if err != nil {
		return err
	}
	for _, path := range paths {
		if known[path] {
			continue
		}
		rec, err := c.AddFile(ctx, AddFileRequest{Path: path, Description: req.Description})
		if err != nil {
			return err
		}
		known[path] = true
		if req.OnAdd != nil {
			req.OnAdd(rec)
		}
	}
	return nil
}

func (c *Catalog) knownPaths(ctx context.Context) (map[string]bool, error) {
	entries, err := c.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(entries))
	for _, e := range entries {
		known[e.FilePath] = true
	}
	return known, nil
}
