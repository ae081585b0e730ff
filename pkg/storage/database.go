package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/justin0804nitsuj/memo/models"
	pkgerrors "github.com/justin0804nitsuj/memo/pkg/errors"
)

// Store is the catalog's persistence layer: one sqlite file holding the
// files table. Every write commits immediately.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists.
func Open(ctx context.Context, path string, logger zerolog.Logger) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newGormLogger(logger),
	})
	if err != nil {
		return nil, pkgerrors.NewStorageError("open", err)
	}

	// One writer, one reader, same goroutine.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, pkgerrors.NewStorageError("open", err)
	}
	sqlDB.SetMaxOpenConns(1)

	s := &Store{db: db, log: logger.With().Str("component", "storage").Logger()}
	if err := s.EnsureSchema(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	s.log.Debug().Str("path", path).Msg("database opened")
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return pkgerrors.NewStorageError("close", err)
	}
	if err := sqlDB.Close(); err != nil {
		return pkgerrors.NewStorageError("close", err)
	}
	return nil
}

// EnsureSchema creates the files table when it is absent. An existing table
// is left untouched.
func (s *Store) EnsureSchema(ctx context.Context) error {
	m := s.db.WithContext(ctx).Migrator()
	if m.HasTable(&models.FileRecord{}) {
		return nil
	}
	if err := m.CreateTable(&models.FileRecord{}); err != nil {
		return pkgerrors.NewStorageError("create table", err)
	}
	s.log.Info().Msg("created files table")
	return nil
}

// Add inserts a record and returns its store-assigned id.
func (s *Store) Add(ctx context.Context, name, path string, fileType models.FileType, description string) (uint, error) {
	rec := models.FileRecord{
		FileName:    name,
		FilePath:    path,
		FileType:    fileType,
		Description: description,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return 0, pkgerrors.NewStorageError("insert", err)
	}
	return rec.ID, nil
}

// Delete removes the record with the given id. Unknown ids are ignored.
func (s *Store) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.FileRecord{}, id)
	if res.Error != nil {
		return pkgerrors.NewStorageError("delete", res.Error)
	}
	return nil
}

// GetAll returns every record, ordered by id.
func (s *Store) GetAll(ctx context.Context) ([]models.FileEntry, error) {
	entries := []models.FileEntry{}
	err := s.db.WithContext(ctx).
		Model(&models.FileRecord{}).
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, pkgerrors.NewStorageError("select", err)
	}
	return entries, nil
}

// GetByID returns the full record. found is false when no record has that id.
func (s *Store) GetByID(ctx context.Context, id uint) (rec models.FileRecord, found bool, err error) {
	err = s.db.WithContext(ctx).Take(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.FileRecord{}, false, nil
	}
	if err != nil {
		return models.FileRecord{}, false, pkgerrors.NewStorageError("select", err)
	}
	return rec, true, nil
}

// Search returns the records whose name or description contains keyword.
// LIKE metacharacters in keyword match literally.
func (s *Store) Search(ctx context.Context, keyword string) ([]models.FileEntry, error) {
	pattern := "%" + escapeLike(keyword) + "%"

	entries := []models.FileEntry{}
	err := s.db.WithContext(ctx).
		Model(&models.FileRecord{}).
		Where(`file_name LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, pkgerrors.NewStorageError("search", err)
	}
	return entries, nil
}

// UpdateDescription overwrites the description of a record. Unknown ids are
// ignored.
func (s *Store) UpdateDescription(ctx context.Context, id uint, description string) error {
	err := s.db.WithContext(ctx).
		Model(&models.FileRecord{}).
		Where("id = ?", id).
		Update("description", description).Error
	if err != nil {
		return pkgerrors.NewStorageError("update", err)
	}
	return nil
}

// CountByType groups the catalog by file type.
func (s *Store) CountByType(ctx context.Context) ([]models.TypeCount, error) {
	var counts []models.TypeCount
	err := s.db.WithContext(ctx).
		Model(&models.FileRecord{}).
		Select("file_type, count(*) as count").
		Group("file_type").
		Order("file_type").
		Scan(&counts).Error
	if err != nil {
		return nil, pkgerrors.NewStorageError("count", err)
	}
	return counts, nil
}

// Duplicates returns every record whose file_path is shared with another
// record, ordered by path then id.
func (s *Store) Duplicates(ctx context.Context) ([]models.FileEntry, error) {
	db := s.db.WithContext(ctx)
	shared := db.Model(&models.FileRecord{}).
		Select("file_path").
		Group("file_path").
		Having("count(*) > 1")

	entries := []models.FileEntry{}
	err := db.Model(&models.FileRecord{}).
		Where("file_path IN (?)", shared).
		Order("file_path, id").
		Find(&entries).Error
	if err != nil {
		return nil, pkgerrors.NewStorageError("duplicates", err)
	}
	return entries, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
