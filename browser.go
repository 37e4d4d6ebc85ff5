/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"sync"
)

// Phase is one of the three mutually exclusive display states of a browser.
type Phase int

const (
	Loading Phase = iota
	Failed
	Ready
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Failed:
		return "error"
	case Ready:
		return "ready"
	}
	return "unknown"
}

// Status is the outcome of a browser's fetch. Only a Failed status carries a
// message and only a Ready status carries games.
type Status struct {
	phase   Phase
	message string
	err     error
	games   []Game
}

func loadingStatus() Status {
	return Status{phase: Loading}
}

func failedStatus(err error) Status {
	return Status{phase: Failed, message: errorMessage(err), err: err}
}

func readyStatus(games []Game) Status {
	return Status{phase: Ready, games: games}
}

func (s Status) Phase() Phase { return s.phase }

// Message is the user-facing error text, empty unless Failed.
func (s Status) Message() string { return s.message }

// Err is the underlying fetch error, nil unless Failed.
func (s Status) Err() error { return s.err }

// Games is the fetched list in server order, nil unless Ready.
func (s Status) Games() []Game { return s.games }

// View is a point-in-time snapshot of a browser, ready to render.
type View struct {
	Status Status
	Query  string
	Total  int
	Games  []Game
}

// Browser holds the state of one mounted game list view. It fetches once per
// mount, and results that arrive after Unmount are dropped.
type Browser struct {
	source GameSource

	mu        sync.Mutex
	status    Status
	query     string
	mounted   bool
	unmounted bool
	cancel    context.CancelFunc

	done     chan struct{}
	doneOnce sync.Once
}

func NewBrowser(source GameSource) *Browser {
	return &Browser{
		source: source,
		status: loadingStatus(),
		done:   make(chan struct{}),
	}
}

// Mount starts the fetch, bound to ctx. Only the first call has any effect.
func (b *Browser) Mount(ctx context.Context) {
	b.mu.Lock()
	if b.mounted || b.unmounted {
		b.mu.Unlock()
		return
	}
	b.mounted = true
	ctx, b.cancel = context.WithCancel(ctx)
	b.mu.Unlock()

	go b.fetch(ctx)
}

func (b *Browser) fetch(ctx context.Context) {
	defer b.finish()

	games, err := b.source.FetchGames(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.unmounted || ctx.Err() != nil {
		return
	}

	if err != nil {
		b.status = failedStatus(err)
		return
	}

	b.status = readyStatus(games)
}

// Unmount cancels a pending fetch. The browser keeps whatever status it had.
func (b *Browser) Unmount() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.unmounted = true
	if b.cancel != nil {
		b.cancel()
	}
	if !b.mounted {
		b.finish()
	}
}

func (b *Browser) finish() {
	b.doneOnce.Do(func() { close(b.done) })
}

// Done is closed once the fetch has resolved or been dropped.
func (b *Browser) Done() <-chan struct{} {
	return b.done
}

func (b *Browser) SetQuery(query string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.query = query
}

func (b *Browser) Query() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.query
}

func (b *Browser) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.status
}

// View filters the current games against the current query.
func (b *Browser) View() View {
	b.mu.Lock()
	status, query := b.status, b.query
	b.mu.Unlock()

	v := View{
		Status: status,
		Query:  query,
	}

	if status.Phase() == Ready {
		v.Total = len(status.Games())
		v.Games = filterGames(status.Games(), query)
	}

	return v
}
