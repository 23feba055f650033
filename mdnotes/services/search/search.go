// Package search filters notes by plain substring containment.
//
// There is no index: every search loads the full note list once and scans it
// in memory, which suits a single-user store. The query is only ever compared
// as data and never reaches the database.
package search

import (
	"context"
	"strings"

	"mdnotes/mdnotes/sources/db/models"
)

// Lister yields all notes, most recently updated first.
type Lister interface {
	ListAll(ctx context.Context) ([]models.Note, error)
}

// Search returns the notes whose "title content" text contains query,
// keeping the lister's order. A blank query matches nothing.
func Search(ctx context.Context, notes Lister, query string) ([]models.Note, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Note{}, nil
	}
	all, err := notes.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(all, query), nil
}

// Filter is the case-sensitive match step of Search.
func Filter(notes []models.Note, query string) []models.Note {
	matches := []models.Note{}
	if strings.TrimSpace(query) == "" {
		return matches
	}
	for _, n := range notes {
		if strings.Contains(searchText(&n), query) {
			matches = append(matches, n)
		}
	}
	return matches
}

func searchText(n *models.Note) string {
	return n.TitleText() + " " + n.ContentText()
}
