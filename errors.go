/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	"github.com/a-h/templ"
)

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

// drainErrors logs handler write failures until ctx is done.
func drainErrors(ctx context.Context, cfg *Config, errs <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errs:
			logf(cfg, "ERROR: %v", err)
		}
	}
}

// errorPage is the minimal document served when a handler fails outright.
func errorPage(cfg *Config, title, body string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
		b.WriteString(getFavicon(cfg))
		b.WriteString(`<link rel="stylesheet" href="` + esc(cfg.prefix) + `/assets/app.css">`)
		b.WriteString(`<title>` + esc(title) + `</title></head>`)
		b.WriteString(`<body><a class="fallback" href="` + esc(cfg.prefix) + `/">` + esc(body) + `</a></body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}
