/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// filterGames returns the games whose title contains query, ignoring case.
// Order is preserved and an empty query matches everything.
func filterGames(games []Game, query string) []Game {
	if query == "" {
		return games
	}

	// Casers are stateful, so each call gets its own.
	lower := cases.Lower(language.Und)
	needle := lower.String(query)

	matched := make([]Game, 0, len(games))
	for _, g := range games {
		if strings.Contains(lower.String(g.Title), needle) {
			matched = append(matched, g)
		}
	}

	return matched
}
