package project

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"auto-reference/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDirRepository(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	repo := NewDirRepository(dir, f.codec)
	ctx := context.Background()

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	f.seed(t, repo, turretScene("Main"), barrelScene("levels/Arena"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	names, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Main", "levels/Arena"}, names)

	sc, err := repo.Load(ctx, "levels/Arena.yaml")
	require.NoError(t, err)
	assert.Equal(t, "levels/Arena", sc.Name)
	assert.Equal(t, filepath.Join(dir, "levels", "Arena.yaml"), sc.Path)
	require.Len(t, sc.Components(), 1)
	assert.Equal(t, 20, sc.Components()[0].(*barrel).Caliber)

	_, err = repo.Load(ctx, "Missing")
	assert.ErrorIs(t, err, ErrSceneNotFound)
}

func TestDirRepository_MissingRoot(t *testing.T) {
	repo := NewDirRepository(filepath.Join(t.TempDir(), "none"), newFixture(t).codec)
	names, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDirRepository_NameOf(t *testing.T) {
	repo := NewDirRepository("/project/scenes", nil)

	name, ok := repo.NameOf("/project/scenes/levels/Arena.yaml")
	assert.True(t, ok)
	assert.Equal(t, "levels/Arena", name)

	_, ok = repo.NameOf("/project/other/Arena.yaml")
	assert.False(t, ok)
	_, ok = repo.NameOf("/project/scenes/readme.md")
	assert.False(t, ok)
}

func TestBucketRepository(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := new(mocks.Client)
	repo := NewBucketRepository(client, "bucket", "scenes", f.codec)

	var uploaded []byte
	client.On("PutObject", mock.Anything, "bucket", "scenes/Main.yaml", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			uploaded, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	sc := turretScene("Main")
	require.NoError(t, repo.Save(ctx, sc))
	assert.Equal(t, "scenes/Main.yaml", sc.Path)
	require.NotEmpty(t, uploaded)

	client.On("GetObject", mock.Anything, "bucket", "scenes/Main.yaml", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(uploaded)), nil)
	client.On("GetObject", mock.Anything, "bucket", "scenes/Missing.yaml", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})
	client.On("GetObject", mock.Anything, "bucket", "scenes/Down.yaml", mock.Anything).
		Return(nil, errors.New("connection refused"))

	loaded, err := repo.Load(ctx, "Main")
	require.NoError(t, err)
	assert.Equal(t, "Main", loaded.Name)
	assert.Len(t, loaded.Components(), 2)

	_, err = repo.Load(ctx, "Missing")
	assert.ErrorIs(t, err, ErrSceneNotFound)

	_, err = repo.Load(ctx, "Down")
	assert.ErrorContains(t, err, "connection refused")
	assert.NotErrorIs(t, err, ErrSceneNotFound)

	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "scenes/levels/Arena.yaml"}
	ch <- minio.ObjectInfo{Key: "scenes/Main.yaml"}
	ch <- minio.ObjectInfo{Key: "scenes/readme.md"}
	close(ch)
	client.On("ListObjects", mock.Anything, "bucket", minio.ListObjectsOptions{Prefix: "scenes/", Recursive: true}).
		Return((<-chan minio.ObjectInfo)(ch))

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Main", "levels/Arena"}, names)
}

func TestBucketRepository_ListError(t *testing.T) {
	client := new(mocks.Client)
	repo := NewBucketRepository(client, "bucket", "scenes/", newFixture(t).codec)

	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Err: errors.New("denied")}
	close(ch)
	client.On("ListObjects", mock.Anything, "bucket", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

	_, err := repo.List(context.Background())
	assert.ErrorContains(t, err, "failed to list scenes")
}
