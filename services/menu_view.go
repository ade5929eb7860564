package services

import (
	"github.com/yeremiapane/protein-finder/models"
	"github.com/yeremiapane/protein-finder/utils"
)

// ServingDisclaimer closes every nutrition label.
const ServingDisclaimer = "2,000 calories a day is used for general nutrition advice, but calorie needs vary. " +
	"Values may vary by location, serving size, and customizations."

type VariantOption struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// ItemCard is one row of a ranking list, computed from the active portion.
type ItemCard struct {
	Key               string             `json:"key"`
	Name              string             `json:"name"`
	Image             string             `json:"image,omitempty"`
	Category          string             `json:"category"`
	PortionType       models.PortionType `json:"portion_type"`
	Rank              string             `json:"rank,omitempty"`
	TopRanked         bool               `json:"top_ranked"`
	Calories          float64            `json:"calories"`
	Protein           float64            `json:"protein"`
	Carbs             float64            `json:"carbs"`
	Fat               float64            `json:"fat"`
	Ratio             *int               `json:"ratio,omitempty"`
	RatioLabel        string             `json:"ratio_label,omitempty"`
	SelectedVariantID string             `json:"selected_variant_id,omitempty"`
	Variants          []VariantOption    `json:"variants,omitempty"`
}

type RankingView struct {
	RankingSection
	Top   int        `json:"top"`
	Items []ItemCard `json:"items"`
}

// LabelLine is one row of the nutrition facts panel. Sub rows are indented
// under the row above them.
type LabelLine struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Sub   bool   `json:"sub,omitempty"`
}

type ItemDetails struct {
	ItemCard
	Restaurant string      `json:"restaurant,omitempty"`
	Label      []LabelLine `json:"label"`
	RatioText  string      `json:"ratio_text"`
	Disclaimer string      `json:"disclaimer"`
}

// BuildCard projects the selection onto a card. rankIndex < 0 means the card
// is shown outside a ranking.
func BuildCard(sel *VariantSelection, rankIndex, top int, showRatio bool) ItemCard {
	item := sel.Item()
	n := sel.Nutrition()
	card := ItemCard{
		Key:               item.Key(),
		Name:              item.Name,
		Image:             item.Image,
		Category:          item.Category,
		PortionType:       sel.PortionType(),
		TopRanked:         IsTopRanked(rankIndex, top),
		Calories:          n.Calories,
		Protein:           n.Protein,
		Carbs:             n.Carbs,
		Fat:               n.TotalFat,
		SelectedVariantID: sel.SelectedID(),
	}
	if rankIndex >= 0 {
		card.Rank = utils.FormatRank(rankIndex)
	}
	if showRatio {
		if r, ok := utils.RoundedRatio(n.Calories, n.Protein); ok {
			card.Ratio = &r
			card.RatioLabel = utils.FormatRatio(n.Calories, n.Protein)
		}
	}
	for _, v := range item.Variants {
		card.Variants = append(card.Variants, VariantOption{
			ID:       v.ID,
			Label:    v.Label,
			Selected: v.ID == sel.SelectedID(),
		})
	}
	return card
}

// BuildRanking ranks items and renders them as cards. selected maps item keys
// to the portion the client currently shows; unknown keys are ignored, unknown
// variant ids are an error.
func BuildRanking(kind RankingKind, items []models.MenuItem, top int, selected map[string]string) (RankingView, error) {
	section, err := SectionFor(kind)
	if err != nil {
		return RankingView{}, err
	}
	ranked, err := Rank(kind, items)
	if err != nil {
		return RankingView{}, err
	}

	view := RankingView{RankingSection: section, Top: top, Items: make([]ItemCard, 0, len(ranked))}
	for i, item := range ranked {
		sel := NewVariantSelection(item)
		if err := sel.Select(selected[item.Key()]); err != nil {
			return RankingView{}, err
		}
		view.Items = append(view.Items, BuildCard(sel, i, top, section.ShowRatio))
	}
	return view, nil
}

// BuildAllRankings renders every section in page order.
func BuildAllRankings(items []models.MenuItem, top int, selected map[string]string) ([]RankingView, error) {
	views := make([]RankingView, 0, len(RankingSections))
	for _, s := range RankingSections {
		v, err := BuildRanking(s.Kind, items, top, selected)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// BuildDetails renders the expanded panel of one item.
func BuildDetails(sel *VariantSelection) ItemDetails {
	n := sel.Nutrition()
	calories := n.Calories
	return ItemDetails{
		ItemCard:   BuildCard(sel, -1, 0, true),
		Restaurant: sel.Item().Restaurant,
		RatioText:  utils.FormatRatio(n.Calories, n.Protein),
		Disclaimer: ServingDisclaimer,
		Label: []LabelLine{
			{Name: "Calories", Value: utils.FormatAmount(&calories, "")},
			{Name: "Total Fat", Value: utils.FormatAmount(&n.TotalFat, "g")},
			{Name: "Sat Fat", Value: utils.FormatAmount(n.SatFat, "g"), Sub: true},
			{Name: "Trans Fat", Value: utils.FormatAmount(n.TransFat, "g"), Sub: true},
			{Name: "Cholesterol", Value: utils.FormatAmount(n.Cholesterol, "mg")},
			{Name: "Sodium", Value: utils.FormatAmount(n.Sodium, "mg")},
			{Name: "Carbohydrates", Value: utils.FormatAmount(&n.Carbs, "g")},
			{Name: "Fiber", Value: utils.FormatAmount(n.Fiber, "g"), Sub: true},
			{Name: "Sugars", Value: utils.FormatAmount(n.Sugars, "g"), Sub: true},
			{Name: "Protein", Value: utils.FormatAmount(&n.Protein, "g")},
		},
	}
}
