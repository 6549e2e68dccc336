package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	objectsDir  = "objects"
	metadataDir = "meta"
)

// LocalConfig configures filesystem blob storage.
type LocalConfig struct {
	Dir string `env:"BLOB_LOCAL_DIR" envDefault:"./data/blobs" validate:"required"`
}

// LocalStorage stores blobs on the local filesystem.
// Object bytes live under <dir>/objects/<key>; content type and size are kept in
// a YAML sidecar under <dir>/meta/<key>.yaml.
type LocalStorage struct {
	objects string
	meta    string
}

type localMetadata struct {
	ContentType string    `yaml:"content_type"`
	Size        int64     `yaml:"size"`
	UpdatedAt   time.Time `yaml:"updated_at"`
}

// NewLocalStorage creates the storage directories when missing.
func NewLocalStorage(cfg LocalConfig) (*LocalStorage, error) {
	if cfg.Dir == "" {
		return nil, ErrInvalidConfig
	}

	absDir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	s := &LocalStorage{
		objects: filepath.Join(absDir, objectsDir),
		meta:    filepath.Join(absDir, metadataDir),
	}
	for _, dir := range []string{s.objects, s.meta} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
		}
	}

	return s, nil
}

// Get opens the object stored under key.
func (s *LocalStorage) Get(ctx context.Context, key string) (*Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	objPath, metaPath, err := s.paths(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(objPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, key)
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, key)
	}

	meta, err := readMetadata(metaPath)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &Object{
		Body:        f,
		ContentType: meta.ContentType,
		Size:        info.Size(),
	}, nil
}

// Put writes data and its metadata. The object file is replaced atomically.
func (s *LocalStorage) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	objPath, metaPath, err := s.paths(key)
	if err != nil {
		return err
	}

	meta, err := yaml.Marshal(localMetadata{
		ContentType: NormalizeContentType(contentType),
		Size:        int64(len(data)),
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}

	if err := writeAtomic(objPath, data); err != nil {
		return err
	}
	return writeAtomic(metaPath, meta)
}

// Delete removes the object and its metadata.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	objPath, metaPath, err := s.paths(key)
	if err != nil {
		return err
	}

	for _, p := range []string{objPath, metaPath} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %v", ErrFailedToDeleteFile, err)
		}
	}
	return nil
}

// Healthcheck verifies the storage directories are still reachable.
func (s *LocalStorage) Healthcheck(ctx context.Context) error {
	for _, dir := range []string{s.objects, s.meta} {
		if _, err := os.Stat(dir); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
	}
	return nil
}

func (s *LocalStorage) paths(key string) (string, string, error) {
	if err := ValidateKey(key); err != nil {
		return "", "", err
	}

	objPath, err := resolvePath(s.objects, key)
	if err != nil {
		return "", "", err
	}
	metaPath, err := resolvePath(s.meta, key+".yaml")
	if err != nil {
		return "", "", err
	}
	return objPath, metaPath, nil
}

// resolvePath joins key to base and ensures the result stays within base.
func resolvePath(base, key string) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(base, filepath.FromSlash(key)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToGetAbsolutePath, err)
	}

	if !strings.HasPrefix(absPath, base+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q escapes storage root", ErrInvalidKey, key)
	}

	return absPath, nil
}

func readMetadata(path string) (localMetadata, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return localMetadata{ContentType: DefaultContentType}, nil
	}
	if err != nil {
		return localMetadata{}, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}

	var meta localMetadata
	if err := yaml.NewDecoder(bytes.NewReader(raw)).Decode(&meta); err != nil {
		return localMetadata{}, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
	}
	if meta.ContentType == "" {
		meta.ContentType = DefaultContentType
	}
	return meta, nil
}

// writeAtomic writes data to a temp file beside path and renames it into place.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToCreateDirectory, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	return nil
}
