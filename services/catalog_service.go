package services

import (
	"context"

	"github.com/yeremiapane/protein-finder/models"
)

// CatalogService answers the questions the restaurant pages ask. It owns no
// state besides the store.
type CatalogService struct {
	Store CatalogStore
}

func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{Store: store}
}

func (s *CatalogService) Browse(ctx context.Context, q string) ([]models.Restaurant, error) {
	all, err := s.Store.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	return BrowseRestaurants(all, q), nil
}

func (s *CatalogService) Suggest(ctx context.Context, q string) ([]models.Restaurant, error) {
	all, err := s.Store.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	return SuggestRestaurants(all, q), nil
}

func (s *CatalogService) Restaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	return s.Store.GetRestaurant(ctx, id)
}

// Menu returns the menu of a known restaurant.
func (s *CatalogService) Menu(ctx context.Context, restaurantID string) (*models.Restaurant, []models.MenuItem, error) {
	r, err := s.Store.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.Store.GetMenu(ctx, restaurantID)
	if err != nil {
		return nil, nil, err
	}
	return r, items, nil
}

func (s *CatalogService) Rankings(ctx context.Context, restaurantID string, top int, selected map[string]string) (*models.Restaurant, []RankingView, error) {
	r, items, err := s.Menu(ctx, restaurantID)
	if err != nil {
		return nil, nil, err
	}
	views, err := BuildAllRankings(items, top, selected)
	if err != nil {
		return nil, nil, err
	}
	return r, views, nil
}

func (s *CatalogService) Ranking(ctx context.Context, restaurantID string, kind RankingKind, top int, selected map[string]string) (*models.Restaurant, RankingView, error) {
	if _, err := SectionFor(kind); err != nil {
		return nil, RankingView{}, err
	}
	r, items, err := s.Menu(ctx, restaurantID)
	if err != nil {
		return nil, RankingView{}, err
	}
	view, err := BuildRanking(kind, items, top, selected)
	if err != nil {
		return nil, RankingView{}, err
	}
	return r, view, nil
}

// ItemDetails renders one item with variantID selected ("" for the default).
func (s *CatalogService) ItemDetails(ctx context.Context, restaurantID, itemKey, variantID string) (ItemDetails, error) {
	_, items, err := s.Menu(ctx, restaurantID)
	if err != nil {
		return ItemDetails{}, err
	}
	item, err := FindItem(items, itemKey)
	if err != nil {
		return ItemDetails{}, err
	}
	sel := NewVariantSelection(item)
	if err := sel.Select(variantID); err != nil {
		return ItemDetails{}, err
	}
	return BuildDetails(sel), nil
}
