package core

import (
	"context"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/justin0804nitsuj/memo/models"
	pkgerrors "github.com/justin0804nitsuj/memo/pkg/errors"
	"github.com/justin0804nitsuj/memo/pkg/preview"
)

// Store is the persistence the catalog needs. *storage.Store implements it.
type Store interface {
	Add(ctx context.Context, name, path string, fileType models.FileType, description string) (uint, error)
	Delete(ctx context.Context, id uint) error
	GetAll(ctx context.Context) ([]models.FileEntry, error)
	GetByID(ctx context.Context, id uint) (models.FileRecord, bool, error)
	Search(ctx context.Context, keyword string) ([]models.FileEntry, error)
	UpdateDescription(ctx context.Context, id uint, description string) error
	CountByType(ctx context.Context) ([]models.TypeCount, error)
	Duplicates(ctx context.Context) ([]models.FileEntry, error)
}

// AddFileRequest catalogs one file. The name and type come from Path.
type AddFileRequest struct {
	Path        string
	Description string
}

// EditDescriptionRequest replaces the description of a record.
type EditDescriptionRequest struct {
	ID          uint
	Description string
}

// DeleteFilesRequest removes records by id.
type DeleteFilesRequest struct {
	IDs []uint
}

// SearchRequest filters the catalog by name or description. An empty
// keyword returns the whole catalog.
type SearchRequest struct {
	Keyword string
}

// Catalog is the service the shells talk to. Storage failures are returned
// unchanged; missing ids are not errors.
type Catalog struct {
	store Store
	log   zerolog.Logger
}

// NewCatalog wraps store.
func NewCatalog(store Store, logger zerolog.Logger) *Catalog {
	return &Catalog{
		store: store,
		log:   logger.With().Str("component", "catalog").Logger(),
	}
}

// AddFile records the file at req.Path and returns the stored record.
func (c *Catalog) AddFile(ctx context.Context, req AddFileRequest) (models.FileRecord, error) {
	if req.Path == "" {
		return models.FileRecord{}, pkgerrors.NewValidationError("path", req.Path, "cannot be empty")
	}

	name := filepath.Base(req.Path)
	fileType := models.ClassifyFile(name)

	id, err := c.store.Add(ctx, name, req.Path, fileType, req.Description)
	if err != nil {
		return models.FileRecord{}, err
	}

	rec, found, err := c.store.GetByID(ctx, id)
	if err != nil {
		return models.FileRecord{}, err
	}
	if !found {
		return models.FileRecord{}, pkgerrors.NewNotFoundError("file", idString(id))
	}

	c.log.Info().
		Uint("id", rec.ID).
		Str("name", rec.FileName).
		Str("file_type", string(rec.FileType)).
		Msg("file added")
	return rec, nil
}

// DeleteFiles removes every listed record. Unknown ids are skipped.
func (c *Catalog) DeleteFiles(ctx context.Context, req DeleteFilesRequest) error {
	for _, id := range req.IDs {
		if err := c.store.Delete(ctx, id); err != nil {
			return err
		}
		c.log.Info().Uint("id", id).Msg("file deleted")
	}
	return nil
}

// EditDescription overwrites a record's description. An empty description
// clears it. Unknown ids are ignored.
func (c *Catalog) EditDescription(ctx context.Context, req EditDescriptionRequest) error {
	if err := c.store.UpdateDescription(ctx, req.ID, req.Description); err != nil {
		return err
	}
	c.log.Debug().Uint("id", req.ID).Msg("description updated")
	return nil
}

// List returns the whole catalog.
func (c *Catalog) List(ctx context.Context) ([]models.FileEntry, error) {
	return c.store.GetAll(ctx)
}

// Search returns the records matching req.Keyword.
func (c *Catalog) Search(ctx context.Context, req SearchRequest) ([]models.FileEntry, error) {
	if req.Keyword == "" {
		return c.store.GetAll(ctx)
	}
	return c.store.Search(ctx, req.Keyword)
}

// Get returns the full record with the given id.
func (c *Catalog) Get(ctx context.Context, id uint) (models.FileRecord, bool, error) {
	return c.store.GetByID(ctx, id)
}

// Previewer renders a file onto a surface. *preview.Dispatcher implements it.
type Previewer interface {
	Preview(path string, fileType models.FileType, s preview.Surface) error
}

// Preview looks up id and hands its path and type to p. found is false, with
// a nil error, when no record has that id. IO and launch failures from p are
// returned for the shell to report.
func (c *Catalog) Preview(ctx context.Context, id uint, p Previewer, s preview.Surface) (rec models.FileRecord, found bool, err error) {
	rec, found, err = c.store.GetByID(ctx, id)
	if err != nil || !found {
		return rec, found, err
	}
	return rec, true, p.Preview(rec.FilePath, rec.FileType, s)
}

// Stats counts records per file type.
func (c *Catalog) Stats(ctx context.Context) ([]models.TypeCount, error) {
	return c.store.CountByType(ctx)
}

// ScanRequest catalogs every regular file below Root.
type ScanRequest struct {
	Root string
	// Extensions restricts the scan to these extensions (case-insensitive,
	// with or without the dot). Empty means every file.
	Extensions  []string
	Description string
}

// ScanResult summarizes a scan.
type ScanResult struct {
	Added   []models.FileRecord
	Skipped int
}

// Scan walks req.Root and adds the matching files one at a time. A storage
// failure stops the walk; unreadable directories are skipped.
func (c *Catalog) Scan(ctx context.Context, req ScanRequest) (ScanResult, error) {
	var result ScanResult
	allowed := extensionSet(req.Extensions)

	err := filepath.WalkDir(req.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == req.Root {
				return pkgerrors.NewIOError("walk", path, err)
			}
			c.log.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			result.Skipped++
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !matches(allowed, path) {
			result.Skipped++
			return nil
		}

		rec, err := c.AddFile(ctx, AddFileRequest{Path: path, Description: req.Description})
		if err != nil {
			return err
		}
		result.Added = append(result.Added, rec)
		return nil
	})
	return result, err
}

// DuplicateSet is a group of records sharing one file path. Keep is the
// oldest record; Extra are the rest.
type DuplicateSet struct {
	Path  string
	Keep  models.FileEntry
	Extra []models.FileEntry
}

// Duplicates groups records that point at the same file.
func (c *Catalog) Duplicates(ctx context.Context) ([]DuplicateSet, error) {
	entries, err := c.store.Duplicates(ctx)
	if err != nil {
		return nil, err
	}

	var sets []DuplicateSet
	for _, e := range entries {
		if n := len(sets); n > 0 && sets[n-1].Path == e.FilePath {
			sets[n-1].Extra = append(sets[n-1].Extra, e)
			continue
		}
		sets = append(sets, DuplicateSet{Path: e.FilePath, Keep: e})
	}
	return sets, nil
}

// RemoveDuplicates deletes the extra records of each set and reports how
// many were removed. Files on disk are not touched.
func (c *Catalog) RemoveDuplicates(ctx context.Context, sets []DuplicateSet) (int, error) {
	removed := 0
	for _, set := range sets {
		ids := make([]uint, 0, len(set.Extra))
		for _, e := range set.Extra {
			ids = append(ids, e.ID)
		}
		if err := c.DeleteFiles(ctx, DeleteFilesRequest{IDs: ids}); err != nil {
			return removed, err
		}
		removed += len(ids)
	}
	return removed, nil
}

func extensionSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}

// matches reports whether path has one of the allowed extensions. An empty
// set allows everything.
func matches(allowed map[string]bool, path string) bool {
	return len(allowed) == 0 || allowed[strings.ToLower(filepath.Ext(path))]
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
