package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"auto-reference/core/scene"
	"auto-reference/core/storage"

	"github.com/minio/minio-go/v7"
)

// SceneExtension is the file extension of persisted scenes.
const SceneExtension = ".yaml"

// ErrSceneNotFound is returned when a scene is neither persisted nor open.
var ErrSceneNotFound = errors.New("scene not found")

// Repository persists scenes by name.
type Repository interface {
	// List returns the names of all persisted scenes, sorted.
	List(ctx context.Context) ([]string, error)
	// Load decodes the named scene.
	Load(ctx context.Context, name string) (*scene.Scene, error)
	// Save encodes and writes sc under its name.
	Save(ctx context.Context, sc *scene.Scene) error
}

// sceneName normalizes a scene name or path to its slash separated name.
func sceneName(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimSuffix(p, SceneExtension)
	return strings.Trim(p, "/")
}

// DirRepository keeps scenes as YAML files below a directory.
type DirRepository struct {
	dir   string
	codec *scene.Codec
}

// NewDirRepository creates a repository rooted at dir.
func NewDirRepository(dir string, codec *scene.Codec) *DirRepository {
	return &DirRepository{dir: dir, codec: codec}
}

// Dir returns the repository root.
func (r *DirRepository) Dir() string {
	return r.dir
}

// PathOf returns the file backing the named scene.
func (r *DirRepository) PathOf(name string) string {
	return filepath.Join(r.dir, filepath.FromSlash(sceneName(name))+SceneExtension)
}

// NameOf maps a file below the repository root back to its scene name.
func (r *DirRepository) NameOf(file string) (string, bool) {
	rel, err := filepath.Rel(r.dir, file)
	if err != nil || strings.HasPrefix(rel, "..") || filepath.Ext(rel) != SceneExtension {
		return "", false
	}
	return sceneName(rel), true
}

func (r *DirRepository) List(ctx context.Context) ([]string, error) {
	var names []string
	err := filepath.WalkDir(r.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if name, ok := r.NameOf(p); ok {
			names = append(names, name)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list scenes: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func (r *DirRepository) Load(ctx context.Context, name string) (*scene.Scene, error) {
	file := r.PathOf(name)
	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSceneNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", name, err)
	}
	sc, err := r.codec.Unmarshal(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scene %s: %w", name, err)
	}
	sc.Name = sceneName(name)
	sc.Path = file
	return sc, nil
}

func (r *DirRepository) Save(_ context.Context, sc *scene.Scene) error {
	data, err := r.codec.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to encode scene %s: %w", sc.Name, err)
	}
	file := r.PathOf(sc.Name)
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("failed to create scene directory: %w", err)
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scene %s: %w", sc.Name, err)
	}
	sc.Path = file
	return nil
}

// BucketRepository keeps scenes as objects in a bucket.
type BucketRepository struct {
	client storage.Client
	bucket string
	prefix string
	codec  *scene.Codec
}

// NewBucketRepository creates a repository storing scenes under prefix in bucket.
func NewBucketRepository(client storage.Client, bucket, prefix string, codec *scene.Codec) *BucketRepository {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &BucketRepository{client: client, bucket: bucket, prefix: prefix, codec: codec}
}

func (r *BucketRepository) key(name string) string {
	return r.prefix + sceneName(name) + SceneExtension
}

func (r *BucketRepository) List(ctx context.Context) ([]string, error) {
	var names []string
	opts := minio.ListObjectsOptions{Prefix: r.prefix, Recursive: true}
	for obj := range r.client.ListObjects(ctx, r.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list scenes: %w", obj.Err)
		}
		if !strings.HasSuffix(obj.Key, SceneExtension) {
			continue
		}
		names = append(names, sceneName(strings.TrimPrefix(obj.Key, r.prefix)))
	}
	sort.Strings(names)
	return names, nil
}

func (r *BucketRepository) Load(ctx context.Context, name string) (*scene.Scene, error) {
	key := r.key(name)
	data, err := storage.ReadObject(ctx, r.client, r.bucket, key)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrSceneNotFound, name)
		}
		return nil, fmt.Errorf("failed to get scene %s: %w", name, err)
	}
	sc, err := r.codec.Unmarshal(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode scene %s: %w", name, err)
	}
	sc.Name = sceneName(name)
	sc.Path = key
	return sc, nil
}

func (r *BucketRepository) Save(ctx context.Context, sc *scene.Scene) error {
	data, err := r.codec.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to encode scene %s: %w", sc.Name, err)
	}
	key := r.key(sc.Name)
	if err := storage.WriteObject(ctx, r.client, r.bucket, key, "application/yaml", data); err != nil {
		return fmt.Errorf("failed to upload scene %s: %w", sc.Name, err)
	}
	sc.Path = key
	return nil
}
