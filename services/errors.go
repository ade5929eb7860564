package services

import "errors"

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrItemNotFound       = errors.New("menu item not found")
	ErrVariantNotFound    = errors.New("variant not found")
	ErrUnknownRanking     = errors.New("unknown ranking")
	ErrInvalidCatalog     = errors.New("invalid catalog")
)
