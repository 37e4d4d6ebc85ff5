/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

const pageTitle = "Game Discovery App"

func esc(s string) string {
	return templ.EscapeString(s)
}

// safeURL rejects anything templ does not consider a navigable URL.
func safeURL(s string) string {
	return esc(string(templ.URL(s)))
}

func queryPath(cfg *Config, path, query string) string {
	if query == "" {
		return cfg.prefix + path
	}
	return cfg.prefix + path + "?q=" + url.QueryEscape(query)
}

// pageComponent renders the full document around v.
func pageComponent(cfg *Config, v View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		b.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
		b.WriteString(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(getFavicon(cfg))
		b.WriteString(`<link rel="stylesheet" href="` + esc(cfg.prefix) + `/assets/app.css">`)
		b.WriteString(`<title>` + pageTitle + `</title></head>`)
		b.WriteString(`<body data-prefix="` + esc(cfg.prefix) + `">`)

		b.WriteString(`<header>`)
		b.WriteString(`<h1>` + pageTitle + `</h1>`)
		b.WriteString(`<form id="search-form" action="` + esc(cfg.prefix) + `/search" method="get">`)
		b.WriteString(`<input id="search" type="text" name="q" placeholder="Search games..." autocomplete="off" value="` + esc(v.Query) + `">`)
		b.WriteString(`</form>`)
		b.WriteString(`<a id="share" href="` + esc(queryPath(cfg, "/qr", v.Query)) + `" target="_blank" rel="noopener">Share</a>`)
		b.WriteString(`</header>`)

		b.WriteString(`<main id="view">`)
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		b.Reset()

		if err := viewComponent(v).Render(ctx, w); err != nil {
			return err
		}

		b.WriteString(`</main>`)
		b.WriteString(`<noscript><p class="status">Live search needs JavaScript. <a href="` + esc(queryPath(cfg, "/search", v.Query)) + `">Use the plain search page.</a></p></noscript>`)
		b.WriteString(`<script src="` + esc(cfg.prefix) + `/assets/app.js"></script>`)
		b.WriteString(`</body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// viewComponent renders whichever single display state v is in.
func viewComponent(v View) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder

		switch v.Status.Phase() {
		case Loading:
			b.WriteString(`<p class="status loading">Loading...</p>`)
		case Failed:
			b.WriteString(`<p class="status error">` + esc(v.Status.Message()) + `</p>`)
		case Ready:
			b.WriteString(`<div class="grid" data-total="` + strconv.Itoa(v.Total) + `" data-shown="` + strconv.Itoa(len(v.Games)) + `">`)
			for _, g := range v.Games {
				writeCard(&b, g)
			}
			b.WriteString(`</div>`)
		}

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeCard(b *strings.Builder, g Game) {
	b.WriteString(`<div class="card" data-id="` + strconv.Itoa(g.ID) + `">`)
	b.WriteString(`<img src="` + safeURL(g.Thumbnail) + `" alt="` + esc(g.Title) + `" loading="lazy">`)
	b.WriteString(`<h2>` + esc(g.Title) + `</h2>`)
	b.WriteString(`<p class="genre">` + esc(g.Genre) + `</p>`)
	b.WriteString(`<a href="` + safeURL(g.GameURL) + `" target="_blank" rel="noopener noreferrer">Explore Game</a>`)
	b.WriteString(`</div>`)
}
