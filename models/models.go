package models

import (
	"time"
)

// FileType is the preview class of a cataloged file, assigned once when the
// record is created.
type FileType string

const (
	FileTypeImage  FileType = "image"
	FileTypeVideo  FileType = "video"
	FileTypeText   FileType = "text"
	FileTypeOthers FileType = "others"
)

// Valid reports whether t is one of the known file types.
func (t FileType) Valid() bool {
	switch t {
	case FileTypeImage, FileTypeVideo, FileTypeText, FileTypeOthers:
		return true
	}
	return false
}

// FileRecord is one row of the files table.
type FileRecord struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FileName    string    `gorm:"type:text;not null" json:"file_name"`
	FilePath    string    `gorm:"type:text;not null" json:"file_path"`
	FileType    FileType  `gorm:"type:text" json:"file_type"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"type:datetime;default:CURRENT_TIMESTAMP;<-:create" json:"created_at"`
}

// TableName keeps the table name stable regardless of gorm naming rules.
func (FileRecord) TableName() string {
	return "files"
}

// Entry returns the projection of r without created_at.
func (r FileRecord) Entry() FileEntry {
	return FileEntry{
		ID:          r.ID,
		FileName:    r.FileName,
		FilePath:    r.FilePath,
		FileType:    r.FileType,
		Description: r.Description,
	}
}
