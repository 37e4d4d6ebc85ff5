/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/julienschmidt/httprouter"
)

const maxQueryLength = 256

// clampQuery truncates q to maxQueryLength bytes without splitting a rune.
func clampQuery(q string) string {
	if len(q) <= maxQueryLength {
		return q
	}
	cut := maxQueryLength
	for cut > 0 && !utf8.RuneStart(q[cut]) {
		cut--
	}
	return q[:cut]
}

// resolveView mounts a browser for the lifetime of r and waits for its fetch.
// The second result is false if the client went away first.
func resolveView(cfg *Config, source GameSource, r *http.Request) (View, bool) {
	b := NewBrowser(source)
	b.SetQuery(clampQuery(r.URL.Query().Get("q")))
	b.Mount(r.Context())
	defer b.Unmount()

	select {
	case <-b.Done():
	case <-r.Context().Done():
		return View{}, false
	}

	v := b.View()
	if v.Status.Phase() == Failed {
		logf(cfg, "FETCH: Game list failed for %s: %v", realIP(r), v.Status.Err())
	}

	return v, true
}

func viewStatusCode(v View) int {
	if v.Status.Phase() == Failed {
		return http.StatusBadGateway
	}
	return http.StatusOK
}

// serveSearch renders the resolved view as a full page, for clients without
// JavaScript.
func serveSearch(cfg *Config, source GameSource, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		v, ok := resolveView(cfg, source, r)
		if !ok {
			return
		}

		written, err := writePage(cfg, w, r, viewStatusCode(v), v)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Search page for %q (%d of %d games, %s) to %s in %s",
			v.Query,
			len(v.Games),
			v.Total,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

type gamesResponse struct {
	Phase   string `json:"phase"`
	Query   string `json:"query"`
	Message string `json:"message,omitempty"`
	Total   int    `json:"total"`
	Games   []Game `json:"games"`
}

func newGamesResponse(v View) gamesResponse {
	games := v.Games
	if games == nil {
		games = []Game{}
	}

	return gamesResponse{
		Phase:   v.Status.Phase().String(),
		Query:   v.Query,
		Message: v.Status.Message(),
		Total:   v.Total,
		Games:   games,
	}
}

// serveGamesAPI returns the resolved view as JSON.
func serveGamesAPI(cfg *Config, source GameSource, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		v, ok := resolveView(cfg, source, r)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(newGamesResponse(v)); err != nil {
			errs <- err

			http.Error(w, "encoding failed", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)
		w.WriteHeader(viewStatusCode(v))

		written, err := w.Write(buf.Bytes())
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Game list for %q (%d of %d games, %s) to %s in %s",
			v.Query,
			len(v.Games),
			v.Total,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}
