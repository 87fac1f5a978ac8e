package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBucket serves the path-style subset of the S3 API the mirror uses.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	headers map[string]http.Header
	denied  map[string]bool
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{
		objects: map[string][]byte{},
		headers: map[string]http.Header{},
		denied:  map[string]bool{},
	}
}

func (b *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := strings.TrimPrefix(r.URL.Path, "/fidghost/")
	if b.denied[key] {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	switch r.Method {
	case http.MethodHead:
		if r.URL.Path == "/fidghost" || r.URL.Path == "/fidghost/" {
			w.WriteHeader(http.StatusOK)
			return
		}
		if _, ok := b.objects[key]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		b.objects[key] = body
		b.headers[key] = r.Header.Clone()
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestS3Storage(t *testing.T, bucket *fakeBucket) *S3Storage {
	t.Helper()
	server := httptest.NewServer(bucket)
	t.Cleanup(server.Close)

	s, err := NewS3Storage(&S3Config{
		Type:      StorageTypeS3Compatible,
		Endpoint:  server.URL,
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "fidghost",
	})
	require.NoError(t, err)
	return s
}

func TestS3StorageUploadIsImmutable(t *testing.T) {
	bucket := newFakeBucket()
	s := newTestS3Storage(t, bucket)
	data := []byte(`{"name":"Fid Ghost #42"}`)

	err := s.Upload(context.Background(), "ghosts/bafyMeta/metadata-42.json", bytes.NewReader(data), int64(len(data)), "application/json")
	require.NoError(t, err)

	assert.Equal(t, data, bucket.objects["ghosts/bafyMeta/metadata-42.json"])
	h := bucket.headers["ghosts/bafyMeta/metadata-42.json"]
	require.NotNil(t, h)
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Equal(t, immutableCacheControl, h.Get("Cache-Control"))
}

func TestS3StorageExists(t *testing.T) {
	bucket := newFakeBucket()
	bucket.objects["ghosts/bafyImg/ghost-42.png"] = []byte("png")
	bucket.denied["ghosts/locked/ghost-1.png"] = true
	s := newTestS3Storage(t, bucket)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "ghosts/bafyImg/ghost-42.png")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(ctx, "ghosts/bafyImg/ghost-7.png")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.Exists(ctx, "ghosts/locked/ghost-1.png")
	assert.Error(t, err)

	require.NoError(t, s.EnsureBucket(ctx))
}

func TestNewS3StorageDefaults(t *testing.T) {
	s, err := NewS3Storage(&S3Config{Endpoint: "http://localhost:9000/", Bucket: "fidghost"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000/fidghost/ghosts/bafy/ghost-42.png", s.GetURL("ghosts/bafy/ghost-42.png"))

	s, err = NewS3Storage(&S3Config{Endpoint: "localhost:9000", Bucket: "fidghost", PublicURL: "https://cdn.example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/k", s.GetURL("k"))

	_, err = NewS3Storage(&S3Config{Endpoint: "localhost:9000"})
	assert.Error(t, err)
	_, err = NewS3Storage(&S3Config{Bucket: "fidghost"})
	assert.Error(t, err)

	assert.Equal(t, "auto", regionFor(&S3Config{Type: StorageTypeR2}))
	assert.Equal(t, "us-east-1", regionFor(&S3Config{}))
	assert.Equal(t, "eu-west-1", regionFor(&S3Config{Type: StorageTypeR2, Region: "eu-west-1"}))
}
