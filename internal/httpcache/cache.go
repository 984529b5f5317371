package httpcache

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// TTLPolicy reports how long a response to the given request may be replayed.
// Zero or negative disables caching for that request.
type TTLPolicy func(*http.Request) time.Duration

// EndpointTTLs builds a TTLPolicy from base endpoint URLs and their expiry
// windows. Requests are matched on host plus path, so query parameters select
// the cache entry but not the expiry.
func EndpointTTLs(ttls map[string]time.Duration) (TTLPolicy, error) {
	byEndpoint := make(map[string]time.Duration, len(ttls))
	for raw, ttl := range ttls {
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid endpoint URL %q: %w", raw, err)
		}
		byEndpoint[u.Host+u.Path] = ttl
	}
	return func(req *http.Request) time.Duration {
		return byEndpoint[req.URL.Host+req.URL.Path]
	}, nil
}

type entry struct {
	statusCode int
	header     http.Header
	body       []byte
	expiresAt  time.Time
}

func (e entry) response(req *http.Request) *http.Response {
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", e.statusCode, http.StatusText(e.statusCode)),
		StatusCode:    e.statusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        e.header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(e.body)),
		ContentLength: int64(len(e.body)),
		Request:       req,
	}
}

// Transport is a caching http.RoundTripper. Successful GET responses are
// stored keyed by full URL (including query) and replayed until they expire.
type Transport struct {
	base   http.RoundTripper
	policy TTLPolicy
	log    *zap.Logger

	mu      sync.RWMutex
	entries map[string]entry
	hits    int
	misses  int

	sweeper *gocron.Scheduler
}

// New creates a Transport around base. A nil base uses http.DefaultTransport
// and a nil logger silences the cache.
func New(base http.RoundTripper, policy TTLPolicy, log *zap.Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Transport{
		base:    base,
		policy:  policy,
		log:     log,
		entries: make(map[string]entry),
	}
}

// RoundTrip serves cacheable GET requests from memory when a fresh entry
// exists, otherwise forwards to the base transport and stores 200 responses.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet || t.policy == nil {
		return t.base.RoundTrip(req)
	}
	ttl := t.policy(req)
	if ttl <= 0 {
		return t.base.RoundTrip(req)
	}

	key := req.URL.String()

	t.mu.RLock()
	cached, ok := t.entries[key]
	t.mu.RUnlock()

	if ok && time.Now().Before(cached.expiresAt) {
		t.mu.Lock()
		t.hits++
		t.mu.Unlock()
		t.log.Debug("cache hit", zap.String("url", key))
		return cached.response(req), nil
	}

	t.mu.Lock()
	t.misses++
	t.mu.Unlock()

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	stored := entry{
		statusCode: resp.StatusCode,
		header:     resp.Header.Clone(),
		body:       body,
		expiresAt:  time.Now().Add(ttl),
	}

	t.mu.Lock()
	t.entries[key] = stored
	t.mu.Unlock()

	t.log.Debug("cache store", zap.String("url", key), zap.Duration("ttl", ttl))
	return stored.response(req), nil
}

// StartSweeper schedules periodic removal of expired entries.
func (t *Transport) StartSweeper(interval time.Duration) error {
	s := gocron.NewScheduler(time.UTC)
	if _, err := s.Every(interval).Do(t.sweep); err != nil {
		return err
	}
	s.StartAsync()
	t.sweeper = s
	return nil
}

// StopSweeper stops the sweep job if one is running.
func (t *Transport) StopSweeper() {
	if t.sweeper != nil {
		t.sweeper.Stop()
	}
}

func (t *Transport) sweep() {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for key, e := range t.entries {
		if now.After(e.expiresAt) {
			delete(t.entries, key)
			removed++
		}
	}
	if removed > 0 {
		t.log.Debug("cache sweep",
			zap.Int("removed", removed),
			zap.Int("remaining", len(t.entries)))
	}
}

// Stats returns the hit and miss counters.
func (t *Transport) Stats() (hits, misses int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.hits, t.misses
}

// Len returns the number of stored entries, expired or not.
func (t *Transport) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
