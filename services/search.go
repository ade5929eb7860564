package services

import (
	"strings"

	"github.com/yeremiapane/protein-finder/models"
)

// MaxSuggestions caps the autocomplete list.
const MaxSuggestions = 5

// NoHighlight is the highlighted index when no suggestion is active.
const NoHighlight = -1

func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// MatchRestaurants keeps the restaurants whose name contains the normalized
// query, in directory order. The query must already be normalized.
func MatchRestaurants(restaurants []models.Restaurant, normalized string) []models.Restaurant {
	out := make([]models.Restaurant, 0, len(restaurants))
	for _, r := range restaurants {
		if strings.Contains(strings.ToLower(r.Name), normalized) {
			out = append(out, r)
		}
	}
	return out
}

// BrowseRestaurants is the full-list mode: an empty query shows everything.
func BrowseRestaurants(restaurants []models.Restaurant, q string) []models.Restaurant {
	normalized := NormalizeQuery(q)
	if normalized == "" {
		out := make([]models.Restaurant, len(restaurants))
		copy(out, restaurants)
		return out
	}
	return MatchRestaurants(restaurants, normalized)
}

// SuggestRestaurants is the autocomplete mode: an empty query suggests
// nothing and at most MaxSuggestions are returned.
func SuggestRestaurants(restaurants []models.Restaurant, q string) []models.Restaurant {
	normalized := NormalizeQuery(q)
	if normalized == "" {
		return []models.Restaurant{}
	}
	matches := MatchRestaurants(restaurants, normalized)
	if len(matches) > MaxSuggestions {
		matches = matches[:MaxSuggestions]
	}
	return matches
}

// Autocomplete holds the interactive state of one search box: the typed text,
// the suggestions derived from it and the keyboard cursor.
type Autocomplete struct {
	restaurants []models.Restaurant
	query       string
	suggestions []models.Restaurant
	highlighted int
}

func NewAutocomplete(restaurants []models.Restaurant) *Autocomplete {
	return &Autocomplete{
		restaurants: restaurants,
		suggestions: []models.Restaurant{},
		highlighted: NoHighlight,
	}
}

// SetQuery replaces the text and pre-highlights the first suggestion.
func (a *Autocomplete) SetQuery(q string) {
	a.query = q
	a.suggestions = SuggestRestaurants(a.restaurants, q)
	if len(a.suggestions) > 0 {
		a.highlighted = 0
	} else {
		a.highlighted = NoHighlight
	}
}

func (a *Autocomplete) MoveDown() {
	if len(a.suggestions) == 0 {
		return
	}
	a.highlighted = min(a.highlighted+1, len(a.suggestions)-1)
}

func (a *Autocomplete) MoveUp() {
	if len(a.suggestions) == 0 {
		return
	}
	a.highlighted = max(a.highlighted-1, 0)
}

// Confirm commits the highlighted restaurant's name as the query and clears
// the highlight. It reports false when nothing is highlighted.
func (a *Autocomplete) Confirm() (models.Restaurant, bool) {
	if a.highlighted < 0 || a.highlighted >= len(a.suggestions) {
		return models.Restaurant{}, false
	}
	chosen := a.suggestions[a.highlighted]
	a.query = chosen.Name
	a.suggestions = SuggestRestaurants(a.restaurants, chosen.Name)
	a.highlighted = NoHighlight
	return chosen, true
}

func (a *Autocomplete) Clear() {
	a.query = ""
	a.suggestions = []models.Restaurant{}
	a.highlighted = NoHighlight
}

func (a *Autocomplete) Query() string { return a.query }

func (a *Autocomplete) Suggestions() []models.Restaurant { return a.suggestions }

func (a *Autocomplete) Highlighted() int { return a.highlighted }
