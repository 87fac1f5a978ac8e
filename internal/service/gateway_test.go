package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGatewayURL(t *testing.T) {
	assert.Equal(t, "https://ipfs.io/ipfs/bafyX/ghost-1.png", GatewayURL("ipfs.io", "bafyX", "ghost-1.png"))
}

func TestGatewayResolverPrefersPublic(t *testing.T) {
	prober := &fakeProber{reachable: map[string]bool{
		"https://ipfs.io/ipfs/bafyX/ghost-1.png": true,
	}}
	r := NewGatewayResolver(prober, "ipfs.io", "gateway.lighthouse.storage")

	assert.Equal(t, "https://ipfs.io/ipfs/bafyX/ghost-1.png", r.Resolve(context.Background(), "bafyX", "ghost-1.png"))
	assert.Equal(t, "https://gateway.lighthouse.storage/ipfs/bafyY/metadata-1.json", r.Resolve(context.Background(), "bafyY", "metadata-1.json"))
	assert.Len(t, prober.probed, 2)
}

func TestHTTPGatewayProber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/slow":
			time.Sleep(300 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p := NewHTTPGatewayProber(100 * time.Millisecond)
	ctx := context.Background()

	assert.True(t, p.Reachable(ctx, srv.URL+"/ok"))
	assert.False(t, p.Reachable(ctx, srv.URL+"/missing"))
	assert.False(t, p.Reachable(ctx, srv.URL+"/slow"))
	assert.False(t, p.Reachable(ctx, "http://127.0.0.1:1/unreachable"))
}
