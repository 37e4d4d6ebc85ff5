/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"testing"
	"time"
)

func TestBrowserLoadingUntilResolved(t *testing.T) {
	source := newGatedSource(testGames(), false)
	b := NewBrowser(source)

	b.Mount(context.Background())
	waitFor(t, source.started, "fetch start")

	v := b.View()
	if v.Status.Phase() != Loading {
		t.Fatalf("expected loading, got %s", v.Status.Phase())
	}
	if v.Status.Message() != "" || v.Games != nil {
		t.Fatalf("loading view must carry neither message nor games: %+v", v)
	}

	close(source.release)
	waitFor(t, b.Done(), "fetch done")

	v = b.View()
	if v.Status.Phase() != Ready {
		t.Fatalf("expected ready, got %s", v.Status.Phase())
	}
	if v.Total != 2 || len(v.Games) != 2 {
		t.Fatalf("expected 2 of 2 games, got %d of %d", len(v.Games), v.Total)
	}
}

func TestBrowserFailed(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "status", err: &StatusError{Code: 500}, want: "Error: Received status code 500"},
		{name: "transport", err: ErrTransport, want: "Error fetching games. Please try again later."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBrowser(&stubSource{err: tc.err})
			b.Mount(context.Background())
			waitFor(t, b.Done(), "fetch done")

			v := b.View()
			if v.Status.Phase() != Failed {
				t.Fatalf("expected failed, got %s", v.Status.Phase())
			}
			if v.Status.Message() != tc.want {
				t.Fatalf("expected message %q, got %q", tc.want, v.Status.Message())
			}
			if v.Status.Err() == nil {
				t.Fatal("expected underlying error to be kept")
			}
			if v.Games != nil || v.Total != 0 {
				t.Fatalf("failed view must not carry games: %+v", v)
			}
		})
	}
}

func TestBrowserMountsOnce(t *testing.T) {
	source := &stubSource{games: testGames()}
	b := NewBrowser(source)

	b.Mount(context.Background())
	b.Mount(context.Background())
	waitFor(t, b.Done(), "fetch done")
	b.Mount(context.Background())

	if calls := source.callCount(); calls != 1 {
		t.Fatalf("expected exactly one fetch, got %d", calls)
	}
}

func TestBrowserUnmountDiscardsLateResult(t *testing.T) {
	source := newGatedSource(testGames(), false)
	b := NewBrowser(source)

	b.Mount(context.Background())
	waitFor(t, source.started, "fetch start")

	b.Unmount()
	close(source.release)
	waitFor(t, b.Done(), "fetch done")

	if phase := b.Status().Phase(); phase != Loading {
		t.Fatalf("late result must be discarded, got %s", phase)
	}
}

func TestBrowserUnmountCancelsFetch(t *testing.T) {
	source := newGatedSource(testGames(), true)
	b := NewBrowser(source)

	b.Mount(context.Background())
	waitFor(t, source.started, "fetch start")

	b.Unmount()
	waitFor(t, source.cancelled, "fetch cancellation")
	waitFor(t, b.Done(), "fetch done")

	if phase := b.Status().Phase(); phase != Loading {
		t.Fatalf("cancelled fetch must not surface an error, got %s", phase)
	}
}

func TestBrowserParentContextCancel(t *testing.T) {
	source := newGatedSource(testGames(), true)
	b := NewBrowser(source)

	ctx, cancel := context.WithCancel(context.Background())
	b.Mount(ctx)
	waitFor(t, source.started, "fetch start")

	cancel()
	waitFor(t, b.Done(), "fetch done")

	if phase := b.Status().Phase(); phase != Loading {
		t.Fatalf("expected loading after cancellation, got %s", phase)
	}
}

func TestBrowserUnmountBeforeMount(t *testing.T) {
	source := &stubSource{games: testGames()}
	b := NewBrowser(source)

	b.Unmount()
	waitFor(t, b.Done(), "done after unmount")

	b.Mount(context.Background())
	time.Sleep(20 * time.Millisecond)

	if calls := source.callCount(); calls != 0 {
		t.Fatalf("unmounted browser must not fetch, got %d calls", calls)
	}
}

func TestBrowserQueryIsIndependent(t *testing.T) {
	source := newGatedSource(testGames(), false)
	b := NewBrowser(source)

	b.SetQuery("dota")
	b.Mount(context.Background())
	waitFor(t, source.started, "fetch start")

	if v := b.View(); v.Query != "dota" || v.Status.Phase() != Loading {
		t.Fatalf("query must not change status: %+v", v)
	}

	close(source.release)
	waitFor(t, b.Done(), "fetch done")

	v := b.View()
	if got := gameIDs(v.Games); !sameIDs(got, []int{1}) {
		t.Fatalf("expected only game 1, got %v", got)
	}
	if v.Total != 2 {
		t.Fatalf("expected total 2, got %d", v.Total)
	}

	b.SetQuery("")
	if got := len(b.View().Games); got != 2 {
		t.Fatalf("empty query should show all games, got %d", got)
	}
	if b.Query() != "" {
		t.Fatalf("expected empty query, got %q", b.Query())
	}
}

func TestPhaseString(t *testing.T) {
	for phase, want := range map[Phase]string{Loading: "loading", Failed: "error", Ready: "ready", Phase(9): "unknown"} {
		if got := phase.String(); got != want {
			t.Fatalf("Phase(%d).String() = %q, want %q", phase, got, want)
		}
	}
}
