package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileTypeUnknown = 99
	FileTypeXLSX    = 1
	FileTypeXLS     = 2
	FileTypeCSV     = 3
)

func DetectFileTypeFromExt(filename string) int {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))

	switch ext {
	case ".xlsx", ".xlsm":
		return FileTypeXLSX
	case ".xls":
		return FileTypeXLS
	case ".csv":
		return FileTypeCSV
	default:
		return FileTypeUnknown
	}
}

// IsSpreadsheetFile reports whether the upload looks like an Excel workbook.
func IsSpreadsheetFile(filename string) bool {
	t := DetectFileTypeFromExt(filename)
	return t == FileTypeXLSX || t == FileTypeXLS
}
