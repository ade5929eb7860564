package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/protein-finder/models"
	"github.com/yeremiapane/protein-finder/utils"
)

// CatalogStore serves the restaurant directory and the menu of each
// restaurant. Unknown restaurant ids yield ErrRestaurantNotFound.
type CatalogStore interface {
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error)
	GetMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error)
}

// MenuSource produces the parsed menu of one restaurant.
type MenuSource func() (models.MenuDocument, error)

// StaticCatalog is the validated, immutable in-memory catalog. It is safe for
// concurrent readers.
type StaticCatalog struct {
	restaurants []models.Restaurant
	byID        map[string]int
	menus       map[string][]models.MenuItem
}

// LoadStaticCatalog resolves every menu through sources and validates the
// result. Each restaurant must have exactly one source and every source must
// belong to a restaurant.
func LoadStaticCatalog(directory []models.Restaurant, sources map[string]MenuSource) (*StaticCatalog, error) {
	c := &StaticCatalog{
		restaurants: make([]models.Restaurant, 0, len(directory)),
		byID:        make(map[string]int, len(directory)),
		menus:       make(map[string][]models.MenuItem, len(directory)),
	}

	for _, r := range directory {
		if r.ID == "" || r.Name == "" {
			return nil, fmt.Errorf("%w: restaurant %q has no id or name", ErrInvalidCatalog, r.Name)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate restaurant id %q", ErrInvalidCatalog, r.ID)
		}
		source, ok := sources[r.ID]
		if !ok {
			return nil, fmt.Errorf("%w: no menu source for restaurant %q", ErrInvalidCatalog, r.ID)
		}
		doc, err := source()
		if err != nil {
			return nil, fmt.Errorf("%w: menu of %q: %v", ErrInvalidCatalog, r.ID, err)
		}
		if err := ValidateMenu(doc.Items); err != nil {
			return nil, fmt.Errorf("menu of %q: %w", r.ID, err)
		}

		c.byID[r.ID] = len(c.restaurants)
		c.restaurants = append(c.restaurants, r)
		items := make([]models.MenuItem, len(doc.Items))
		for i, item := range doc.Items {
			items[i] = item.Clone()
		}
		c.menus[r.ID] = items
	}

	for id := range sources {
		if _, ok := c.byID[id]; !ok {
			return nil, fmt.Errorf("%w: menu source %q has no restaurant", ErrInvalidCatalog, id)
		}
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"restaurants": len(c.restaurants),
	}).Info("static catalog loaded")
	return c, nil
}

// ValidateMenu checks the rules a menu must satisfy before it can be ranked and
// rendered.
func ValidateMenu(items []models.MenuItem) error {
	keys := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.Name == "" {
			return fmt.Errorf("%w: item #%d has no name", ErrInvalidCatalog, i)
		}
		if !item.PortionType.Valid() {
			return fmt.Errorf("%w: item %q has portion type %q", ErrInvalidCatalog, item.Name, item.PortionType)
		}
		key := item.Key()
		if key == "" {
			return fmt.Errorf("%w: item %q has no usable key", ErrInvalidCatalog, item.Name)
		}
		if _, dup := keys[key]; dup {
			return fmt.Errorf("%w: duplicate item key %q", ErrInvalidCatalog, key)
		}
		keys[key] = struct{}{}

		if err := validateNutrition(item.Nutrition); err != nil {
			return fmt.Errorf("%w: item %q %v", ErrInvalidCatalog, item.Name, err)
		}

		variantIDs := make(map[string]struct{}, len(item.Variants))
		for _, v := range item.Variants {
			if v.ID == "" {
				return fmt.Errorf("%w: item %q has a variant without id", ErrInvalidCatalog, item.Name)
			}
			if err := validateNutrition(v.Nutrition); err != nil {
				return fmt.Errorf("%w: variant %q of %q %v", ErrInvalidCatalog, v.ID, item.Name, err)
			}
			if _, dup := variantIDs[v.ID]; dup {
				return fmt.Errorf("%w: item %q repeats variant %q", ErrInvalidCatalog, item.Name, v.ID)
			}
			if v.PortionType != "" && !v.PortionType.Valid() {
				return fmt.Errorf("%w: variant %q of %q has portion type %q", ErrInvalidCatalog, v.ID, item.Name, v.PortionType)
			}
			variantIDs[v.ID] = struct{}{}
		}
		if item.DefaultVariantID != "" {
			if _, ok := variantIDs[item.DefaultVariantID]; !ok {
				utils.InfoLogger.WithFields(logrus.Fields{
					"item":    item.Name,
					"default": item.DefaultVariantID,
				}).Warn("defaultVariantId matches no variant, falling back")
			}
		}
	}
	return nil
}

func (c *StaticCatalog) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	out := make([]models.Restaurant, len(c.restaurants))
	copy(out, c.restaurants)
	return out, nil
}

func (c *StaticCatalog) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRestaurantNotFound, id)
	}
	r := c.restaurants[i]
	return &r, nil
}

func (c *StaticCatalog) GetMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	items, ok := c.menus[restaurantID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRestaurantNotFound, restaurantID)
	}
	out := make([]models.MenuItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out, nil
}

// validateNutrition rejects negative or non-finite amounts.
func validateNutrition(n models.Nutrition) error {
	required := map[string]float64{
		"calories": n.Calories,
		"protein":  n.Protein,
		"totalFat": n.TotalFat,
		"carbs":    n.Carbs,
	}
	for name, v := range required {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("has invalid %s %v", name, v)
		}
	}
	for name, v := range n.Optional() {
		if v != nil && (*v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return fmt.Errorf("has invalid %s %v", name, *v)
		}
	}
	return nil
}

// FindItem looks an item up by its key.
func FindItem(items []models.MenuItem, key string) (models.MenuItem, error) {
	for _, item := range items {
		if item.Key() == key {
			return item, nil
		}
	}
	return models.MenuItem{}, fmt.Errorf("%w: %q", ErrItemNotFound, key)
}

// IsNotFound groups the lookups that should surface as 404s.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRestaurantNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrVariantNotFound)
}
