package models

// FileEntry is the list/search view of a FileRecord. Selecting into it through
// the FileRecord model makes gorm fetch only these columns.
type FileEntry struct {
	ID          uint     `json:"id" yaml:"id"`
	FileName    string   `json:"file_name" yaml:"file_name"`
	FilePath    string   `json:"file_path" yaml:"file_path"`
	FileType    FileType `json:"file_type" yaml:"file_type"`
	Description string   `json:"description" yaml:"description"`
}

// TypeCount is one row of the per-type statistics.
type TypeCount struct {
	FileType FileType `json:"file_type" yaml:"file_type"`
	Count    int64    `json:"count" yaml:"count"`
}
