package models

import (
	"path/filepath"
	"strings"
)

var extTypes = map[string]FileType{
	".png":  FileTypeImage,
	".jpg":  FileTypeImage,
	".jpeg": FileTypeImage,
	".gif":  FileTypeImage,
	".mp4":  FileTypeVideo,
	".avi":  FileTypeVideo,
	".mov":  FileTypeVideo,
	".txt":  FileTypeText,
}

// ClassifyExt maps a file extension (with the leading dot, any case) to its
// file type. Unknown extensions are FileTypeOthers.
func ClassifyExt(ext string) FileType {
	if t, ok := extTypes[strings.ToLower(ext)]; ok {
		return t
	}
	return FileTypeOthers
}

// ClassifyFile classifies a file name or path by its extension only.
func ClassifyFile(path string) FileType {
	return ClassifyExt(filepath.Ext(path))
}
