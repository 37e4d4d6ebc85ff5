/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

const testGamesJSON = `[
	{"id":1,"title":"Dota 2","genre":"MOBA","thumbnail":"https://www.freetogame.com/g/1/thumbnail.jpg","game_url":"https://www.freetogame.com/open/dota-2","platform":"PC (Windows)"},
	{"id":2,"title":"Warframe","genre":"Shooter","thumbnail":"https://www.freetogame.com/g/2/thumbnail.jpg","game_url":"https://www.freetogame.com/open/warframe","platform":"PC (Windows)"}
]`

func testGames() []Game {
	return []Game{
		{ID: 1, Title: "Dota 2", Genre: "MOBA", Thumbnail: "https://www.freetogame.com/g/1/thumbnail.jpg", GameURL: "https://www.freetogame.com/open/dota-2"},
		{ID: 2, Title: "Warframe", Genre: "Shooter", Thumbnail: "https://www.freetogame.com/g/2/thumbnail.jpg", GameURL: "https://www.freetogame.com/open/warframe"},
	}
}

// stubSource resolves immediately and counts calls.
type stubSource struct {
	mu    sync.Mutex
	games []Game
	err   error
	calls int
}

func (s *stubSource) FetchGames(ctx context.Context) ([]Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++

	return s.games, s.err
}

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

// gatedSource blocks until release is closed. With honorCancel set it also
// returns early when the fetch context ends.
type gatedSource struct {
	games       []Game
	honorCancel bool

	started   chan struct{}
	release   chan struct{}
	cancelled chan struct{}
	once      sync.Once
}

func newGatedSource(games []Game, honorCancel bool) *gatedSource {
	return &gatedSource{
		games:       games,
		honorCancel: honorCancel,
		started:     make(chan struct{}),
		release:     make(chan struct{}),
		cancelled:   make(chan struct{}),
	}
}

func (s *gatedSource) FetchGames(ctx context.Context) ([]Game, error) {
	s.once.Do(func() { close(s.started) })

	if !s.honorCancel {
		<-s.release
		return s.games, nil
	}

	select {
	case <-s.release:
		return s.games, nil
	case <-ctx.Done():
		close(s.cancelled)
		return nil, fmt.Errorf("%w: %w", ErrTransport, ctx.Err())
	}
}

func waitFor(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()

	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func newTestServer(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("skipping test; listen unavailable: %v", err)
	}
	ts := &httptest.Server{
		Listener: listener,
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	return ts
}

// newTestUpstream serves body with status for every request.
func newTestUpstream(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	ts := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testConfig(endpoint string) *Config {
	return &Config{
		bind:         "127.0.0.1",
		endpoint:     endpoint,
		fetchTimeout: 5 * time.Second,
		port:         8080,
	}
}

// newTestApp serves the full router against source.
func newTestApp(t *testing.T, cfg *Config, source GameSource) *httptest.Server {
	t.Helper()
	errs := make(chan error, 64)
	ts := newTestServer(t, newRouter(cfg, source, errs))
	t.Cleanup(ts.Close)
	return ts
}

func doGet(t *testing.T, ts *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body for %s: %v", path, err)
	}
	return resp, string(body)
}
