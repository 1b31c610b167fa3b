package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"auto-reference/core/scene"
	"auto-reference/core/storage"

	"github.com/minio/minio-go/v7"
)

// Extension is the file extension of asset documents.
const Extension = ".yaml"

var (
	// ErrNotFound is returned when no asset exists at a path.
	ErrNotFound error = linkError("asset not found")
	// ErrTypeMismatch is returned when an asset does not have the requested type.
	ErrTypeMismatch error = linkError("asset type mismatch")
)

// linkError is an asset failure that leaves a scene link dangling.
type linkError string

func (e linkError) Error() string { return string(e) }

func (e linkError) Is(target error) bool { return target == scene.ErrDanglingAsset }

// Store provides raw access to asset documents.
type Store interface {
	// Get returns the document stored at path.
	Get(ctx context.Context, path string) ([]byte, error)
	// List returns the paths of all assets under prefix in lexical order.
	List(ctx context.Context, prefix string) ([]string, error)
}

// CleanPath normalizes an asset path: forward slashes, no leading slash, no extension.
func CleanPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	return strings.TrimSuffix(p, Extension)
}

// DirStore reads assets from a directory tree.
type DirStore struct {
	root string
}

// NewDirStore creates a store rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{root: dir}
}

// Get reads <root>/<path>.yaml.
func (s *DirStore) Get(_ context.Context, p string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(CleanPath(p))+Extension))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	return data, err
}

// List walks the directory tree and returns every asset whose path starts with prefix.
func (s *DirStore) List(ctx context.Context, prefix string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.root, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || filepath.Ext(file) != Extension {
			return nil
		}
		rel, err := filepath.Rel(s.root, file)
		if err != nil {
			return err
		}
		p := CleanPath(filepath.ToSlash(rel))
		if strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list assets in %s: %w", s.root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// BucketStore reads assets from an object storage bucket.
type BucketStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewBucketStore creates a store reading objects under prefix in bucket.
func NewBucketStore(client storage.Client, bucket, prefix string) *BucketStore {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &BucketStore{client: client, bucket: bucket, prefix: prefix}
}

// Get downloads <prefix><path>.yaml.
func (s *BucketStore) Get(ctx context.Context, p string) ([]byte, error) {
	key := s.prefix + CleanPath(p) + Extension
	data, err := storage.ReadObject(ctx, s.client, s.bucket, key)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return data, nil
}

// List lists the bucket recursively under the store prefix.
func (s *BucketStore) List(ctx context.Context, prefix string) ([]string, error) {
	var paths []string
	opts := minio.ListObjectsOptions{Prefix: s.prefix + prefix, Recursive: true}
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list assets: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, Extension) {
			continue
		}
		paths = append(paths, CleanPath(strings.TrimPrefix(obj.Key, s.prefix)))
	}
	sort.Strings(paths)
	return paths, nil
}

// MemoryStore keeps asset documents in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// Put stores a raw document at path.
func (s *MemoryStore) Put(p string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[CleanPath(p)] = data
}

// Get returns the document at path.
func (s *MemoryStore) Get(_ context.Context, p string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[CleanPath(p)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	return data, nil
}

// List returns the stored paths starting with prefix.
func (s *MemoryStore) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var paths []string
	for p := range s.docs {
		if strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths, nil
}
