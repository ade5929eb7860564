package services

import (
	"fmt"

	"github.com/yeremiapane/protein-finder/models"
)

// DefaultVariantID picks the variant shown before the user chooses one:
// defaultVariantId when it names an existing variant, else the first variant
// flagged isDefault, else the first variant. Items without variants yield "".
func DefaultVariantID(item models.MenuItem) string {
	if !item.HasVariants() {
		return ""
	}
	if item.DefaultVariantID != "" {
		if _, ok := FindVariant(item, item.DefaultVariantID); ok {
			return item.DefaultVariantID
		}
	}
	for _, v := range item.Variants {
		if v.IsDefault {
			return v.ID
		}
	}
	return item.Variants[0].ID
}

// FindVariant looks a variant up by id.
func FindVariant(item models.MenuItem, id string) (models.ItemVariant, bool) {
	for _, v := range item.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return models.ItemVariant{}, false
}

// ActiveNutrition is the label to display for item while variantID is
// selected. An empty or unknown id falls back to the item's own label.
func ActiveNutrition(item models.MenuItem, variantID string) models.Nutrition {
	if v, ok := FindVariant(item, variantID); ok {
		return v.Nutrition
	}
	return item.Nutrition
}

// VariantSelection is the portion currently chosen for one item. The zero
// value is unusable; build it with NewVariantSelection.
type VariantSelection struct {
	item     models.MenuItem
	selected string
}

func NewVariantSelection(item models.MenuItem) *VariantSelection {
	return &VariantSelection{item: item, selected: DefaultVariantID(item)}
}

// Select switches the displayed portion. An empty id restores the default.
func (s *VariantSelection) Select(id string) error {
	if id == "" {
		s.selected = DefaultVariantID(s.item)
		return nil
	}
	if _, ok := FindVariant(s.item, id); !ok {
		return fmt.Errorf("%w: %q on item %q", ErrVariantNotFound, id, s.item.Key())
	}
	s.selected = id
	return nil
}

func (s *VariantSelection) Item() models.MenuItem { return s.item }

func (s *VariantSelection) SelectedID() string { return s.selected }

// Variant returns the selected variant, or false when the item has none.
func (s *VariantSelection) Variant() (models.ItemVariant, bool) {
	if s.selected == "" {
		return models.ItemVariant{}, false
	}
	return FindVariant(s.item, s.selected)
}

func (s *VariantSelection) Nutrition() models.Nutrition {
	return ActiveNutrition(s.item, s.selected)
}

// PortionType is the variant's override when it has one.
func (s *VariantSelection) PortionType() models.PortionType {
	if v, ok := s.Variant(); ok && v.PortionType != "" {
		return v.PortionType
	}
	return s.item.PortionType
}
