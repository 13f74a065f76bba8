package storage

import (
	"mime"
	"path/filepath"
	"strings"
)

// ContentTypeCSV is stored with every archived upload.
const ContentTypeCSV = "text/csv"

// DetectContentType returns provided when set, else the type registered
// for the key extension, else application/octet-stream.
func DetectContentType(provided, key string) string {
	if provided != "" {
		return provided
	}
	ext := strings.ToLower(filepath.Ext(key))
	if ext == ".csv" {
		return ContentTypeCSV
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// IsCSVFilename reports whether filename ends in ".csv". The check is
// case-sensitive.
func IsCSVFilename(filename string) bool {
	return strings.HasSuffix(filename, ".csv")
}

// baseType strips parameters such as charset from a content type.
func baseType(contentType string) string {
	t, _, _ := strings.Cut(contentType, ";")
	return strings.TrimSpace(strings.ToLower(t))
}

// IsCSVContentType reports whether contentType is a CSV or plain text type.
// Browsers label CSV files inconsistently, so several types are accepted.
func IsCSVContentType(contentType string) bool {
	switch baseType(contentType) {
	case "text/csv", "application/csv", "text/plain", "application/vnd.ms-excel", "application/octet-stream", "":
		return true
	}
	return false
}
