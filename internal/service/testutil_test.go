package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/timmy/fidghost/internal/domain"
)

type fixedRandom struct {
	roll float64
	idx  int
}

func (f fixedRandom) Float64() float64 { return f.roll }
func (f fixedRandom) Intn(n int) int   { return f.idx % n }

type fakeFetcher struct {
	data    []byte
	err     error
	calls   atomic.Int32
	onFetch func()
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.calls.Add(1)
	if f.onFetch != nil {
		f.onFetch()
		if err := ctx.Err(); err != nil {
			return nil, &UpstreamFetchError{URL: url, Err: err}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

// fakeUploader hands out queued responses and keeps a copy of each uploaded file.
type fakeUploader struct {
	mu        sync.Mutex
	responses []map[string]interface{}
	errs      []error
	paths     []string
	contents  [][]byte
}

func (u *fakeUploader) Upload(ctx context.Context, localPath string) (map[string]interface{}, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	i := len(u.paths)
	u.paths = append(u.paths, localPath)
	data, err := os.ReadFile(localPath)
	if err != nil {
		return nil, err
	}
	u.contents = append(u.contents, data)

	if i < len(u.errs) && u.errs[i] != nil {
		return nil, u.errs[i]
	}
	if i >= len(u.responses) {
		return nil, errors.New("unexpected upload")
	}
	return u.responses[i], nil
}

type fakeProber struct {
	mu        sync.Mutex
	reachable map[string]bool
	probed    []string
	onProbe   func()
}

func (p *fakeProber) Reachable(ctx context.Context, url string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.probed = append(p.probed, url)
	if p.onProbe != nil {
		p.onProbe()
	}
	return ctx.Err() == nil && p.reachable[url]
}

type fakePinStore struct {
	mu   sync.Mutex
	pins []*domain.PinRecord
	err  error
}

func (s *fakePinStore) Create(ctx context.Context, pin *domain.PinRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.err != nil {
		return s.err
	}
	s.pins = append(s.pins, pin)
	return nil
}

// fakeMirror is an in-memory storage.ObjectStorage.
type fakeMirror struct {
	mu        sync.Mutex
	existing  map[string]bool
	existsErr error
	uploadErr error
	types     map[string]string
	bodies    map[string][]byte
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{
		existing: map[string]bool{},
		types:    map[string]string{},
		bodies:   map[string][]byte{},
	}
}

func (m *fakeMirror) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.uploadErr != nil {
		return m.uploadErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch for %s: %d != %d", key, len(data), size)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.types[key] = contentType
	m.bodies[key] = data
	return nil
}

func (m *fakeMirror) GetURL(key string) string {
	return "https://mirror.test/" + key
}

func (m *fakeMirror) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if m.existsErr != nil {
		return false, m.existsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.existing[key], nil
}

func cidResponse(cid string) map[string]interface{} {
	return map[string]interface{}{"data": map[string]interface{}{"cid": cid}}
}
