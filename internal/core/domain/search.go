package domain

import (
	"errors"
	"strings"
)

var ErrEmptySearchTerm = errors.New("search term must not be empty")

// Search is a value type expressing either "no filter" (the zero value) or
// "filter by term". The term is normalized to lower case at construction.
type Search struct {
	term string
}

// NoSearch is the "no filter" value.
var NoSearch = Search{}

// NewSearch builds an active search filter. The term is trimmed and
// lower-cased; an empty or all-whitespace term is rejected.
func NewSearch(term string) (Search, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return Search{}, ErrEmptySearchTerm
	}
	return Search{term: strings.ToLower(term)}, nil
}

// Active reports whether the search carries a filter term.
func (s Search) Active() bool {
	return s.term != ""
}

// Term returns the normalized filter term, empty when inactive.
func (s Search) Term() string {
	return s.term
}

// Matches reports case-insensitive substring containment against title.
// An inactive search matches everything.
func (s Search) Matches(title string) bool {
	if !s.Active() {
		return true
	}
	return strings.Contains(strings.ToLower(title), s.term)
}
