package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// streamingStore mimics minio's producers: unbuffered sends that give up only when ctx is done
type streamingStore struct {
	listed   []minio.ObjectInfo
	removed  []minio.RemoveObjectError
	finished chan struct{}
}

func newStreamingStore() *streamingStore {
	return &streamingStore{finished: make(chan struct{})}
}

func (f *streamingStore) ListObjects(ctx context.Context, _ string, _ minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	out := make(chan minio.ObjectInfo)
	go func() {
		defer close(f.finished)
		defer close(out)
		for _, obj := range f.listed {
			select {
			case out <- obj:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (f *streamingStore) RemoveObjects(ctx context.Context, _ string, in <-chan minio.ObjectInfo, _ minio.RemoveObjectsOptions) <-chan minio.RemoveObjectError {
	out := make(chan minio.RemoveObjectError)
	go func() {
		defer close(f.finished)
		defer close(out)
		for range in {
		}
		for _, rmErr := range f.removed {
			select {
			case out <- rmErr:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func assertProducerStopped(t *testing.T, f *streamingStore) {
	t.Helper()
	select {
	case <-f.finished:
	case <-time.After(time.Second):
		t.Fatal("producer goroutine still blocked after the call returned")
	}
}

func TestMinIOStorage_ListStopsProducerOnError(t *testing.T) {
	fake := newStreamingStore()
	fake.listed = []minio.ObjectInfo{
		{Key: "recipes/a/temp.png", LastModified: time.Unix(100, 0)},
		{Err: errors.New("access denied")},
		{Key: "recipes/b/temp.png"},
		{Key: "recipes/c/temp.png"},
	}
	s := &MinIOStorage{objects: fake, bucket: "foodgram"}

	_, err := s.List(context.Background(), "recipes/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")

	assertProducerStopped(t, fake)
}

func TestMinIOStorage_List(t *testing.T) {
	fake := newStreamingStore()
	fake.listed = []minio.ObjectInfo{
		{Key: "recipes/a/temp.png", LastModified: time.Unix(100, 0)},
		{Key: "recipes/b/temp.jpeg", LastModified: time.Unix(200, 0)},
	}
	s := &MinIOStorage{objects: fake, bucket: "foodgram"}

	objects, err := s.List(context.Background(), "recipes/")
	require.NoError(t, err)
	assert.Equal(t, []StoredObject{
		{Key: "recipes/a/temp.png", LastModified: time.Unix(100, 0)},
		{Key: "recipes/b/temp.jpeg", LastModified: time.Unix(200, 0)},
	}, objects)
}

func TestMinIOStorage_RemoveObjectsStopsProducerOnError(t *testing.T) {
	fake := newStreamingStore()
	fake.removed = []minio.RemoveObjectError{
		{ObjectName: "recipes/a/temp.png", Err: errors.New("locked")},
		{ObjectName: "recipes/b/temp.png", Err: errors.New("locked")},
	}
	s := &MinIOStorage{objects: fake, bucket: "foodgram"}

	err := s.RemoveObjects(context.Background(), []string{"recipes/a/temp.png", "recipes/b/temp.png"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipes/a/temp.png")

	assertProducerStopped(t, fake)
}

func TestMinIOStorage_PublicURL(t *testing.T) {
	s := &MinIOStorage{bucket: "foodgram", publicURL: "http://localhost:9000"}

	assert.Equal(t, "http://localhost:9000/foodgram/recipes/a/temp.png", s.PublicURL("recipes/a/temp.png"))
	assert.Empty(t, s.PublicURL(""))
}
