package models

// PortionType classifies how an item (or one of its variants) is served.
type PortionType string

const (
	PortionSingle    PortionType = "single"
	PortionCombo     PortionType = "combo"
	PortionShareable PortionType = "shareable"
	PortionAddon     PortionType = "addon"
	PortionDrink     PortionType = "drink"
	PortionDessert   PortionType = "dessert"
)

func (p PortionType) Valid() bool {
	switch p {
	case PortionSingle, PortionCombo, PortionShareable, PortionAddon, PortionDrink, PortionDessert:
		return true
	}
	return false
}

// Nutrition is one nutrition label. Calories, protein, fat and carbs are always
// present; the rest are nil when the source menu does not publish them.
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	TotalFat float64 `json:"totalFat"`
	Carbs    float64 `json:"carbs"`

	SatFat      *float64 `json:"satFat,omitempty"`
	TransFat    *float64 `json:"transFat,omitempty"`
	Cholesterol *float64 `json:"cholesterol,omitempty"`
	Sodium      *float64 `json:"sodium,omitempty"`
	Fiber       *float64 `json:"fiber,omitempty"`
	Sugars      *float64 `json:"sugars,omitempty"`
}

// Clone returns a copy that shares no optional values with n.
func (n Nutrition) Clone() Nutrition {
	out := n
	out.SatFat = cloneFloat(n.SatFat)
	out.TransFat = cloneFloat(n.TransFat)
	out.Cholesterol = cloneFloat(n.Cholesterol)
	out.Sodium = cloneFloat(n.Sodium)
	out.Fiber = cloneFloat(n.Fiber)
	out.Sugars = cloneFloat(n.Sugars)
	return out
}

// Optional lists the published optional values by label name.
func (n Nutrition) Optional() map[string]*float64 {
	return map[string]*float64{
		"satFat":      n.SatFat,
		"transFat":    n.TransFat,
		"cholesterol": n.Cholesterol,
		"sodium":      n.Sodium,
		"fiber":       n.Fiber,
		"sugars":      n.Sugars,
	}
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
