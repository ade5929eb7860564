package models

import "strings"

// ItemVariant is an alternate portion size of a MenuItem, e.g. "8pc" / "12pc".
type ItemVariant struct {
	ID          string      `json:"id"`
	Label       string      `json:"label"`
	Nutrition   Nutrition   `json:"nutrition"`
	PortionType PortionType `json:"portionType,omitempty"`
	IsDefault   bool        `json:"isDefault,omitempty"`
}

type MenuItem struct {
	ID               string        `json:"id,omitempty"`
	Name             string        `json:"name"`
	Nutrition        Nutrition     `json:"nutrition"`
	Image            string        `json:"image,omitempty"`
	Category         string        `json:"category"`
	PortionType      PortionType   `json:"portionType"`
	Restaurant       string        `json:"restaurant,omitempty"`
	Variants         []ItemVariant `json:"variants,omitempty"`
	DefaultVariantID string        `json:"defaultVariantId,omitempty"`
}

// MenuDocument is the shape of a bundled menu file.
type MenuDocument struct {
	Items []MenuItem `json:"items"`
}

// Key addresses the item inside its menu: the explicit id when the menu
// provides one, otherwise a slug of the name.
func (m MenuItem) Key() string {
	if m.ID != "" {
		return m.ID
	}
	return Slugify(m.Name)
}

// Clone returns a deep copy of the item, variants and nutrition included.
func (m MenuItem) Clone() MenuItem {
	out := m
	out.Nutrition = m.Nutrition.Clone()
	if m.Variants != nil {
		out.Variants = make([]ItemVariant, len(m.Variants))
		for i, v := range m.Variants {
			v.Nutrition = v.Nutrition.Clone()
			out.Variants[i] = v
		}
	}
	return out
}

// HasVariants reports whether the item offers more than its own nutrition label.
func (m MenuItem) HasVariants() bool {
	return len(m.Variants) > 0
}

// Slugify lowercases s and collapses every run of non-alphanumeric runes into
// a single dash.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
