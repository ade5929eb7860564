package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/protein-finder/models"
)

func staticSource(items ...models.MenuItem) MenuSource {
	return func() (models.MenuDocument, error) {
		return models.MenuDocument{Items: items}, nil
	}
}

func testCatalog(t *testing.T) *StaticCatalog {
	t.Helper()
	c, err := LoadStaticCatalog(
		[]models.Restaurant{
			{ID: "chickfila", Name: "Chick-fil-A"},
			{ID: "panera", Name: "Panera"},
		},
		map[string]MenuSource{
			"chickfila": staticSource(nuggets(), item("wrap", 660, 42), item("lemonade", 220, 0)),
			"panera":    staticSource(item("soup", 360, 13)),
		},
	)
	require.NoError(t, err)
	return c
}

func TestLoadStaticCatalog(t *testing.T) {
	ctx := context.Background()
	c := testCatalog(t)

	restaurants, err := c.ListRestaurants(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"chickfila", "panera"}, ids(restaurants))

	r, err := c.GetRestaurant(ctx, "panera")
	require.NoError(t, err)
	assert.Equal(t, "Panera", r.Name)

	menu, err := c.GetMenu(ctx, "chickfila")
	require.NoError(t, err)
	assert.Equal(t, []string{"nuggets", "wrap", "lemonade"}, keys(menu))
}

func TestStaticCatalog_UnknownRestaurant(t *testing.T) {
	ctx := context.Background()
	c := testCatalog(t)

	_, err := c.GetRestaurant(ctx, "tacobell")
	assert.ErrorIs(t, err, ErrRestaurantNotFound)

	_, err = c.GetMenu(ctx, "tacobell")
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
	assert.True(t, IsNotFound(err))
}

func TestStaticCatalog_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := testCatalog(t)

	menu, err := c.GetMenu(ctx, "chickfila")
	require.NoError(t, err)
	menu[0], menu[1] = menu[1], menu[0]

	again, err := c.GetMenu(ctx, "chickfila")
	require.NoError(t, err)
	assert.Equal(t, []string{"nuggets", "wrap", "lemonade"}, keys(again))
}

func TestStaticCatalog_CallerWritesDoNotLeak(t *testing.T) {
	ctx := context.Background()
	sodium := 900.0
	withSodium := nuggets()
	withSodium.Nutrition.Sodium = &sodium

	c, err := LoadStaticCatalog(
		[]models.Restaurant{{ID: "chickfila", Name: "Chick-fil-A"}},
		map[string]MenuSource{"chickfila": staticSource(withSodium)},
	)
	require.NoError(t, err)

	menu, err := c.GetMenu(ctx, "chickfila")
	require.NoError(t, err)
	menu[0].Variants[0].Nutrition.Protein = 9999
	menu[0].Variants = append(menu[0].Variants[:1], menu[0].Variants[2:]...)
	*menu[0].Nutrition.Sodium = 1

	again, err := c.GetMenu(ctx, "chickfila")
	require.NoError(t, err)
	require.Len(t, again[0].Variants, 3)
	assert.Equal(t, 27.0, again[0].Variants[0].Nutrition.Protein)
	assert.Equal(t, "12pc", again[0].Variants[1].ID)
	assert.Equal(t, 900.0, *again[0].Nutrition.Sodium)

	sodium = 5
	assert.Equal(t, 900.0, *again[0].Nutrition.Sodium, "catalog does not alias its source")
}

func TestLoadStaticCatalog_Invalid(t *testing.T) {
	dup := item("wrap", 660, 42)
	badPortion := item("wrap", 660, 42)
	badPortion.PortionType = "bucket"
	repeatedVariant := nuggets()
	repeatedVariant.Variants[1].ID = "8pc"
	negativeProtein := item("wrap", 660, -42)
	negativeVariant := nuggets()
	negativeVariant.Variants[2].Nutrition.Calories = -950
	fiber := -1.0
	negativeOptional := item("wrap", 660, 42)
	negativeOptional.Nutrition.Fiber = &fiber

	tests := []struct {
		name        string
		directory   []models.Restaurant
		sources     map[string]MenuSource
		errContains string
	}{
		{
			name:        "missing source",
			directory:   []models.Restaurant{{ID: "panera", Name: "Panera"}},
			sources:     map[string]MenuSource{},
			errContains: "no menu source",
		},
		{
			name:      "orphan source",
			directory: []models.Restaurant{{ID: "panera", Name: "Panera"}},
			sources: map[string]MenuSource{
				"panera":   staticSource(),
				"tacobell": staticSource(),
			},
			errContains: "has no restaurant",
		},
		{
			name:        "duplicate restaurant",
			directory:   []models.Restaurant{{ID: "panera", Name: "Panera"}, {ID: "panera", Name: "Panera 2"}},
			sources:     map[string]MenuSource{"panera": staticSource()},
			errContains: "duplicate restaurant",
		},
		{
			name:        "duplicate item key",
			directory:   []models.Restaurant{{ID: "panera", Name: "Panera"}},
			sources:     map[string]MenuSource{"panera": staticSource(dup, dup)},
			errContains: "duplicate item key",
		},
		{
			name:        "unknown portion type",
			directory:   []models.Restaurant{{ID: "panera", Name: "Panera"}},
			sources:     map[string]MenuSource{"panera": staticSource(badPortion)},
			errContains: "portion type",
		},
		{
			name:        "repeated variant id",
			directory:   []models.Restaurant{{ID: "panera", Name: "Panera"}},
			sources:     map[string]MenuSource{"panera": staticSource(repeatedVariant)},
			errContains: "repeats variant",
		},
		{
			name:        "negative protein",
			directory:   []models.Restaurant{{ID: "panera", Name: "Panera"}},
			sources:     map[string]MenuSource{"panera": staticSource(negativeProtein)},
			errContains: "invalid protein",
		},
		{
			name:        "negative variant calories",
			directory:   []models.Restaurant{{ID: "panera", Name: "Panera"}},
			sources:     map[string]MenuSource{"panera": staticSource(negativeVariant)},
			errContains: "invalid calories",
		},
		{
			name:        "negative optional value",
			directory:   []models.Restaurant{{ID: "panera", Name: "Panera"}},
			sources:     map[string]MenuSource{"panera": staticSource(negativeOptional)},
			errContains: "invalid fiber",
		},
		{
			name:      "source fails",
			directory: []models.Restaurant{{ID: "panera", Name: "Panera"}},
			sources: map[string]MenuSource{"panera": func() (models.MenuDocument, error) {
				return models.MenuDocument{}, errors.New("unexpected EOF")
			}},
			errContains: "unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadStaticCatalog(tt.directory, tt.sources)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestValidateMenu_UnmatchedDefaultIsNotAnError(t *testing.T) {
	it := nuggets()
	it.DefaultVariantID = "6pc"
	assert.NoError(t, ValidateMenu([]models.MenuItem{it}))
}

func TestFindItem(t *testing.T) {
	menu := []models.MenuItem{
		item("wrap", 660, 42),
		{Name: "Egg McMuffin", PortionType: models.PortionSingle},
	}

	found, err := FindItem(menu, "egg-mcmuffin")
	require.NoError(t, err)
	assert.Equal(t, "Egg McMuffin", found.Name)

	_, err = FindItem(menu, "big-mac")
	assert.ErrorIs(t, err, ErrItemNotFound)
}
