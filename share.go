/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

// shareURL is the absolute address of the home page with query pre-filled.
func shareURL(cfg *Config, r *http.Request, query string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}

	return scheme + "://" + r.Host + queryPath(cfg, "/", query)
}

// serveShareCode returns a PNG QR code pointing at the current search.
func serveShareCode(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		target := shareURL(cfg, r, clampQuery(r.URL.Query().Get("q")))

		png, err := qrcode.Encode(target, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Length", strconv.Itoa(len(png)))
		securityHeaders(cfg, w)

		written, err := w.Write(png)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Share code for %s (%s) to %s in %s",
			target,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}
