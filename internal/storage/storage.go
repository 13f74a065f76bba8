// Package storage archives uploaded files.
//
// Every CSV accepted by the upload endpoint is kept as-is so an import can be
// audited or replayed. LocalStorage writes to disk in development and
// R2Storage writes to Cloudflare R2 in production.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"regexp"
	"strings"
	"time"
)

// Storage is an object store keyed by slash-separated paths.
type Storage interface {
	// Put stores data at key. It fails with ErrKeyExists unless
	// opts.Overwrite is set, and with ErrTooLarge past opts.MaxSize.
	Put(ctx context.Context, key string, data io.Reader, opts PutOptions) error

	// Get opens the object at key. The caller closes the reader.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether key is stored.
	Exists(ctx context.Context, key string) (bool, error)
}

// PutOptions configures a Put.
type PutOptions struct {
	ContentType string // detected from the key when empty
	MaxSize     int64  // 0 means unlimited
	Overwrite   bool
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	ETag         string
}

// LocalConfig configures LocalStorage.
type LocalConfig struct {
	BasePath string // root directory, created when missing
}

// R2Config configures R2Storage.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string // "auto" when empty
}

// Providers.
const (
	ProviderLocal = "local"
	ProviderR2    = "r2"
)

// Config selects and configures a provider.
type Config struct {
	Provider string
	Local    LocalConfig
	R2       R2Config
}

// New builds the Storage for cfg.Provider.
func New(cfg Config, logger *slog.Logger) (Storage, error) {
	switch cfg.Provider {
	case ProviderLocal, "":
		return NewLocalStorage(cfg.Local, logger)
	case ProviderR2:
		return NewR2Storage(cfg.R2, logger)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeName keeps letters, digits, dot, underscore and dash.
func SanitizeName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "")
}

// UploadKey returns the archive key of an uploaded CSV.
// Format: uploads/{uploadID}/{name}.csv
func UploadKey(uploadID, filename string) string {
	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(filename, `\`, "/")), path.Ext(filename))
	base = SanitizeName(base)
	if base == "" || base == "." {
		base = "leads"
	}
	return fmt.Sprintf("uploads/%s/%s.csv", SanitizeName(uploadID), base)
}
