package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstNonEmptyPriority(t *testing.T) {
	cases := []struct {
		name string
		resp map[string]interface{}
		want string
	}{
		{
			name: "data.cid wins",
			resp: map[string]interface{}{
				"data": map[string]interface{}{"cid": "a", "Hash": "b"},
				"cid":  "c",
				"Hash": "d",
			},
			want: "a",
		},
		{
			name: "data.Hash when data.cid empty",
			resp: map[string]interface{}{
				"data": map[string]interface{}{"cid": "", "Hash": "b"},
				"Hash": "d",
			},
			want: "b",
		},
		{
			name: "top level cid",
			resp: map[string]interface{}{"data": "not-a-map", "cid": "c", "Hash": "d"},
			want: "c",
		},
		{
			name: "top level Hash",
			resp: map[string]interface{}{"Name": "ghost-42.png", "Hash": "QmHash", "Size": "12"},
			want: "QmHash",
		},
		{
			name: "non-string values ignored",
			resp: map[string]interface{}{"cid": 12, "Hash": nil},
			want: "",
		},
		{
			name: "none",
			resp: map[string]interface{}{"data": map[string]interface{}{}},
			want: "",
		},
		{
			name: "nil response",
			resp: nil,
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractCID(tc.resp))
		})
	}
}

func TestMirrorKey(t *testing.T) {
	assert.Equal(t, "ghosts/bafy/ghost-42.png", MirrorKey("/ghosts/", "bafy", "ghost-42.png"))
	assert.Equal(t, "bafy/metadata-42.json", MirrorKey("", "bafy", "metadata-42.json"))
}

func TestDetectStorageType(t *testing.T) {
	assert.Equal(t, StorageTypeR2, detectStorageType("https://acct.r2.cloudflarestorage.com"))
	assert.Equal(t, StorageTypeS3, detectStorageType("s3.us-east-1.amazonaws.com"))
	assert.Equal(t, StorageTypeS3Compatible, detectStorageType("localhost:9000"))
	assert.Equal(t, "localhost:9000", normalizeEndpoint("http://localhost:9000/bucket/"))
}

func TestLighthouseUploaderSendsMultipartFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/add", r.URL.Path)
		assert.Equal(t, "Bearer lh-key", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		body, _ := io.ReadAll(file)
		assert.Equal(t, "ghost-42.png", header.Filename)
		assert.Equal(t, "png-bytes", string(body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Name":"ghost-42.png","Hash":"bafyImg","Size":"9"}`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "ghost-42.png")
	require.NoError(t, os.WriteFile(path, []byte("png-bytes"), 0o644))

	uploader := NewLighthouseUploader(&LighthouseConfig{APIKey: "lh-key", Endpoint: server.URL + "/"})
	resp, err := uploader.Upload(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "bafyImg", ExtractCID(resp))
}

func TestLighthouseUploaderErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer server.Close()

	uploader := NewLighthouseUploader(&LighthouseConfig{Endpoint: server.URL})

	_, err := uploader.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "ghost-1.png")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	_, err = uploader.Upload(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 401")
}
