package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/fidghost/internal/logger"
)

// DefaultProbeTimeout bounds a single gateway existence check.
const DefaultProbeTimeout = 8 * time.Second

// GatewayProber reports whether a gateway URL currently serves content.
type GatewayProber interface {
	Reachable(ctx context.Context, url string) bool
}

// HTTPGatewayProber probes with a HEAD request.
type HTTPGatewayProber struct {
	client  *resty.Client
	timeout time.Duration
}

// NewHTTPGatewayProber creates a prober; a non-positive timeout uses DefaultProbeTimeout.
func NewHTTPGatewayProber(timeout time.Duration) *HTTPGatewayProber {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	client := resty.New()
	client.SetTimeout(timeout)

	return &HTTPGatewayProber{client: client, timeout: timeout}
}

// Reachable returns true only for a 2xx answer within the timeout. Errors are
// folded into false.
func (p *HTTPGatewayProber) Reachable(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.R().SetContext(ctx).Head(url)
	if err != nil {
		return false
	}
	return resp.IsSuccess()
}

// GatewayURL builds https://<host>/ipfs/<cid>/<filename>.
func GatewayURL(host, cid, filename string) string {
	return fmt.Sprintf("https://%s/ipfs/%s/%s", host, cid, filename)
}

// GatewayResolver prefers the public gateway and falls back to the private one.
type GatewayResolver struct {
	prober      GatewayProber
	publicHost  string
	privateHost string
}

// NewGatewayResolver creates a resolver over the two gateway hosts.
func NewGatewayResolver(prober GatewayProber, publicHost, privateHost string) *GatewayResolver {
	return &GatewayResolver{
		prober:      prober,
		publicHost:  publicHost,
		privateHost: privateHost,
	}
}

// Resolve returns the public URL when the probe succeeds, the private URL otherwise.
func (r *GatewayResolver) Resolve(ctx context.Context, cid, filename string) string {
	public := GatewayURL(r.publicHost, cid, filename)
	if r.prober.Reachable(ctx, public) {
		return public
	}
	logger.With(logger.Fields{logger.FieldCID: cid}).
		Debug(ctx, "Public gateway unreachable, using %s", r.privateHost)
	return GatewayURL(r.privateHost, cid, filename)
}
