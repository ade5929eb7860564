package services

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/yeremiapane/protein-finder/models"
)

type RankingKind string

const (
	RankByProtein  RankingKind = "protein"
	RankByRatio    RankingKind = "ratio"
	RankByCalories RankingKind = "calories"
)

// DefaultHighlightTop is how many leading items of a ranking are highlighted.
const DefaultHighlightTop = 3

// RankingSection describes how one ranking is presented on a restaurant page.
type RankingSection struct {
	Kind        RankingKind `json:"kind"`
	ID          string      `json:"id"`
	Label       string      `json:"label"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ShowRatio   bool        `json:"show_ratio"`
}

// RankingSections lists the sections in page order.
var RankingSections = []RankingSection{
	{
		Kind:        RankByProtein,
		ID:          "high-protein",
		Label:       "High Protein",
		Title:       "Highest Protein Items",
		Description: "Sorted by protein grams (highest first).",
	},
	{
		Kind:        RankByRatio,
		ID:          "best-protein-ratio",
		Label:       "Best Protein Ratio",
		Title:       "Best Calorie:Protein Ratio",
		Description: "Sorted by calories per 1g protein (lowest first).",
		ShowRatio:   true,
	},
	{
		Kind:        RankByCalories,
		ID:          "lowest-calorie",
		Label:       "Lowest Calorie",
		Title:       "Lowest Calorie Items",
		Description: "Sorted by calories (lowest first).",
	},
}

// SectionFor returns the presentation metadata of a ranking kind.
func SectionFor(kind RankingKind) (RankingSection, error) {
	for _, s := range RankingSections {
		if s.Kind == kind {
			return s, nil
		}
	}
	return RankingSection{}, fmt.Errorf("%w: %q", ErrUnknownRanking, kind)
}

// CaloriesPerProtein is calories per gram of protein. A label without protein
// has no meaningful ratio and ranks as +Inf.
func CaloriesPerProtein(n models.Nutrition) float64 {
	if n.Protein == 0 {
		return math.Inf(1)
	}
	return n.Calories / n.Protein
}

// RankByProteinDesc orders items by protein, highest first.
func RankByProteinDesc(items []models.MenuItem) []models.MenuItem {
	return stableSorted(items, func(a, b models.MenuItem) int {
		return cmp.Compare(b.Nutrition.Protein, a.Nutrition.Protein)
	})
}

// RankByRatioAsc orders items by calories per gram of protein, most efficient
// first. Zero-protein items keep their input order at the tail.
func RankByRatioAsc(items []models.MenuItem) []models.MenuItem {
	return stableSorted(items, func(a, b models.MenuItem) int {
		return cmp.Compare(CaloriesPerProtein(a.Nutrition), CaloriesPerProtein(b.Nutrition))
	})
}

// RankByCaloriesAsc orders items by calories, lowest first.
func RankByCaloriesAsc(items []models.MenuItem) []models.MenuItem {
	return stableSorted(items, func(a, b models.MenuItem) int {
		return cmp.Compare(a.Nutrition.Calories, b.Nutrition.Calories)
	})
}

// Rank dispatches on kind. The input slice is never reordered.
func Rank(kind RankingKind, items []models.MenuItem) ([]models.MenuItem, error) {
	switch kind {
	case RankByProtein:
		return RankByProteinDesc(items), nil
	case RankByRatio:
		return RankByRatioAsc(items), nil
	case RankByCalories:
		return RankByCaloriesAsc(items), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRanking, kind)
}

// IsTopRanked reports whether the item at rank index i is inside the top n.
func IsTopRanked(i, n int) bool {
	return i >= 0 && i < n
}

func stableSorted(items []models.MenuItem, fn func(a, b models.MenuItem) int) []models.MenuItem {
	out := slices.Clone(items)
	slices.SortStableFunc(out, fn)
	return out
}
