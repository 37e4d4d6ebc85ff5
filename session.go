/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

const (
	writeWait    = 10 * time.Second
	maxFrameSize = 4096
)

// Messages coming from clients
type ClientMessage struct {
	Type  string `json:"type"`            // "search"
	Query string `json:"query,omitempty"` // search
}

// StateMessage tells the client which display state the view is in.
type StateMessage struct {
	Type  string `json:"type"`  // "state"
	Phase string `json:"phase"` // "loading", "error" or "ready"
	Total int    `json:"total"` // games fetched
	Shown int    `json:"shown"` // games matching the query
}

// HTMLMessage replaces the inner HTML of Target.
type HTMLMessage struct {
	Type   string `json:"type"` // "html"
	Target string `json:"target"`
	HTML   string `json:"html"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// session is one websocket connection. The connection owns exactly one
// mounted browser.
type session struct {
	cfg     *Config
	conn    *websocket.Conn
	browser *Browser
	remote  string

	queries chan string
	quit    chan struct{}
}

func serveSession(cfg *Config, source GameSource) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "ERROR: websocket upgrade for %s: %v", realIP(r), err)
			return
		}
		conn.SetReadLimit(maxFrameSize)

		s := &session{
			cfg:     cfg,
			conn:    conn,
			browser: NewBrowser(source),
			remote:  realIP(r),
			queries: make(chan string, 8),
			quit:    make(chan struct{}),
		}
		s.browser.SetQuery(clampQuery(r.URL.Query().Get("q")))

		ctx, cancel := context.WithCancel(r.Context())

		s.browser.Mount(ctx)

		go s.run(ctx)

		s.readPump()

		cancel()
		s.browser.Unmount()
		<-s.quit
		_ = conn.Close()

		logf(cfg, "SERVE: Closed live session for %s after %s",
			s.remote,
			time.Since(startTime).Round(time.Millisecond),
		)
	}
}

// readPump forwards search queries until the connection fails or the run
// loop stops.
func (s *session) readPump() {
	for {
		var msg ClientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "search":
			select {
			case s.queries <- clampQuery(msg.Query):
			case <-s.quit:
				return
			}
		default:
			// ignore unknown types
		}
	}
}

// run is the only writer on the connection.
func (s *session) run(ctx context.Context) {
	defer close(s.quit)
	// Unblocks readPump if a write fails first.
	defer s.conn.Close()

	settled := s.browser.Done()

	if err := s.push(ctx); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return

		case <-settled:
			settled = nil

			if ctx.Err() != nil {
				return
			}

			status := s.browser.Status()
			switch status.Phase() {
			case Failed:
				logf(s.cfg, "FETCH: Game list failed for %s: %v", s.remote, status.Err())
			case Ready:
				logf(s.cfg, "FETCH: Loaded %d games for %s", len(status.Games()), s.remote)
			}

			if err := s.push(ctx); err != nil {
				return
			}

		case q := <-s.queries:
			s.browser.SetQuery(q)

			if err := s.push(ctx); err != nil {
				return
			}
		}
	}
}

// push sends the current view to the client.
func (s *session) push(ctx context.Context) error {
	v := s.browser.View()

	var buf bytes.Buffer
	if err := viewComponent(v).Render(ctx, &buf); err != nil {
		return err
	}

	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := s.conn.WriteJSON(StateMessage{
		Type:  "state",
		Phase: v.Status.Phase().String(),
		Total: v.Total,
		Shown: len(v.Games),
	}); err != nil {
		return err
	}

	return s.conn.WriteJSON(HTMLMessage{
		Type:   "html",
		Target: "#view",
		HTML:   buf.String(),
	})
}
