/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxListSize int64 = 16 << 20

// Game is one entry of the upstream list. Fields beyond these are ignored.
type Game struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Genre     string `json:"genre"`
	Thumbnail string `json:"thumbnail"`
	GameURL   string `json:"game_url"`
}

// GameSource produces the full game list.
type GameSource interface {
	FetchGames(ctx context.Context) ([]Game, error)
}

// ErrTransport wraps every failure that is not an unexpected status code:
// dial errors, timeouts, cancellation and undecodable bodies.
var ErrTransport = errors.New("transport failure")

// StatusError reports a non-200 response from the upstream endpoint.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.Code)
}

// errorMessage converts a fetch failure into the text shown in place of the grid.
func errorMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("Error: Received status code %d", se.Code)
	}

	return "Error fetching games. Please try again later."
}

// Client fetches the game list over HTTP. It holds no state between calls.
type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
	}
}

func (c *Client) FetchGames(ctx context.Context) ([]Game, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "gamebrowser/"+releaseVersion)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

		return nil, &StatusError{Code: resp.StatusCode}
	}

	var games []Game
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxListSize)).Decode(&games); err != nil {
		return nil, fmt.Errorf("%w: decoding game list: %w", ErrTransport, err)
	}

	return games, nil
}
