package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/protein-finder/models"
	"github.com/yeremiapane/protein-finder/services"
	"github.com/yeremiapane/protein-finder/utils"
	"gorm.io/gorm"
)

type nutritionColumns struct {
	Calories    float64 `gorm:"not null"`
	Protein     float64 `gorm:"not null"`
	TotalFat    float64 `gorm:"not null"`
	Carbs       float64 `gorm:"not null"`
	SatFat      *float64
	TransFat    *float64
	Cholesterol *float64
	Sodium      *float64
	Fiber       *float64
	Sugars      *float64
}

type restaurantRecord struct {
	ID       string           `gorm:"primaryKey;type:varchar(64)"`
	Position int              `gorm:"not null;index"`
	Name     string           `gorm:"type:varchar(255);not null"`
	Logo     string           `gorm:"type:varchar(255)"`
	Cover    string           `gorm:"type:varchar(255)"`
	MenuFile string           `gorm:"type:varchar(255)"`
	Items    []menuItemRecord `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (restaurantRecord) TableName() string { return "restaurants" }

type menuItemRecord struct {
	ID               uint             `gorm:"primaryKey"`
	RestaurantID     string           `gorm:"type:varchar(64);not null;index"`
	Position         int              `gorm:"not null"`
	ItemID           string           `gorm:"type:varchar(100)"`
	Name             string           `gorm:"type:varchar(255);not null"`
	Image            string           `gorm:"type:varchar(255)"`
	Category         string           `gorm:"type:varchar(100)"`
	PortionType      string           `gorm:"type:varchar(20);not null"`
	RestaurantName   string           `gorm:"type:varchar(255)"`
	DefaultVariantID string           `gorm:"type:varchar(100)"`
	Nutrition        nutritionColumns `gorm:"embedded;embeddedPrefix:nutrition_"`
	Variants         []variantRecord  `gorm:"foreignKey:MenuItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (menuItemRecord) TableName() string { return "menu_items" }

type variantRecord struct {
	ID          uint             `gorm:"primaryKey"`
	MenuItemID  uint             `gorm:"not null;index"`
	Position    int              `gorm:"not null"`
	VariantID   string           `gorm:"type:varchar(100);not null"`
	Label       string           `gorm:"type:varchar(255)"`
	PortionType string           `gorm:"type:varchar(20)"`
	IsDefault   bool             `gorm:"not null;default:false"`
	Nutrition   nutritionColumns `gorm:"embedded;embeddedPrefix:nutrition_"`
}

func (variantRecord) TableName() string { return "item_variants" }

// Migrate creates or updates the catalog tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&restaurantRecord{}, &menuItemRecord{}, &variantRecord{})
}

// Seed replaces the stored catalog with the content of source in a single
// transaction, so a failed seed leaves the previous catalog in place.
func Seed(ctx context.Context, db *gorm.DB, source services.CatalogStore) error {
	restaurants, err := source.ListRestaurants(ctx)
	if err != nil {
		return err
	}

	records := make([]restaurantRecord, 0, len(restaurants))
	for i, r := range restaurants {
		items, err := source.GetMenu(ctx, r.ID)
		if err != nil {
			return err
		}
		records = append(records, toRestaurantRecord(i, r, items))
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&variantRecord{}, &menuItemRecord{}, &restaurantRecord{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		for i := range records {
			if err := tx.Create(&records[i]).Error; err != nil {
				return fmt.Errorf("seed %q: %w", records[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	utils.InfoLogger.Printf("Seeded %d restaurants into SQL catalog", len(records))
	return nil
}

// GormCatalog serves the catalog from SQL.
type GormCatalog struct {
	DB *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{DB: db}
}

func (g *GormCatalog) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	var records []restaurantRecord
	if err := g.DB.WithContext(ctx).Order("position").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]models.Restaurant, 0, len(records))
	for _, r := range records {
		out = append(out, r.toModel())
	}
	return out, nil
}

func (g *GormCatalog) GetRestaurant(ctx context.Context, id string) (*models.Restaurant, error) {
	var record restaurantRecord
	if err := g.DB.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", services.ErrRestaurantNotFound, id)
		}
		return nil, err
	}
	r := record.toModel()
	return &r, nil
}

func (g *GormCatalog) GetMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	if _, err := g.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}

	var records []menuItemRecord
	err := g.DB.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("restaurant_id = ?", restaurantID).
		Order("position").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	items := make([]models.MenuItem, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.toModel())
	}
	return items, nil
}

func toRestaurantRecord(position int, r models.Restaurant, items []models.MenuItem) restaurantRecord {
	rec := restaurantRecord{
		ID:       r.ID,
		Position: position,
		Name:     r.Name,
		Logo:     r.Logo,
		Cover:    r.Cover,
		MenuFile: r.MenuFile,
		Items:    make([]menuItemRecord, 0, len(items)),
	}
	for i, item := range items {
		itemRec := menuItemRecord{
			RestaurantID:     r.ID,
			Position:         i,
			ItemID:           item.ID,
			Name:             item.Name,
			Image:            item.Image,
			Category:         item.Category,
			PortionType:      string(item.PortionType),
			RestaurantName:   item.Restaurant,
			DefaultVariantID: item.DefaultVariantID,
			Nutrition:        toNutritionColumns(item.Nutrition),
		}
		for j, v := range item.Variants {
			itemRec.Variants = append(itemRec.Variants, variantRecord{
				Position:    j,
				VariantID:   v.ID,
				Label:       v.Label,
				PortionType: string(v.PortionType),
				IsDefault:   v.IsDefault,
				Nutrition:   toNutritionColumns(v.Nutrition),
			})
		}
		rec.Items = append(rec.Items, itemRec)
	}
	return rec
}

func (r restaurantRecord) toModel() models.Restaurant {
	return models.Restaurant{
		ID:       r.ID,
		Name:     r.Name,
		Logo:     r.Logo,
		Cover:    r.Cover,
		MenuFile: r.MenuFile,
	}
}

func (m menuItemRecord) toModel() models.MenuItem {
	item := models.MenuItem{
		ID:               m.ItemID,
		Name:             m.Name,
		Nutrition:        m.Nutrition.toModel(),
		Image:            m.Image,
		Category:         m.Category,
		PortionType:      models.PortionType(m.PortionType),
		Restaurant:       m.RestaurantName,
		DefaultVariantID: m.DefaultVariantID,
	}
	for _, v := range m.Variants {
		item.Variants = append(item.Variants, models.ItemVariant{
			ID:          v.VariantID,
			Label:       v.Label,
			Nutrition:   v.Nutrition.toModel(),
			PortionType: models.PortionType(v.PortionType),
			IsDefault:   v.IsDefault,
		})
	}
	return item
}

func toNutritionColumns(n models.Nutrition) nutritionColumns {
	return nutritionColumns{
		Calories:    n.Calories,
		Protein:     n.Protein,
		TotalFat:    n.TotalFat,
		Carbs:       n.Carbs,
		SatFat:      n.SatFat,
		TransFat:    n.TransFat,
		Cholesterol: n.Cholesterol,
		Sodium:      n.Sodium,
		Fiber:       n.Fiber,
		Sugars:      n.Sugars,
	}
}

func (n nutritionColumns) toModel() models.Nutrition {
	return models.Nutrition{
		Calories:    n.Calories,
		Protein:     n.Protein,
		TotalFat:    n.TotalFat,
		Carbs:       n.Carbs,
		SatFat:      n.SatFat,
		TransFat:    n.TransFat,
		Cholesterol: n.Cholesterol,
		Sodium:      n.Sodium,
		Fiber:       n.Fiber,
		Sugars:      n.Sugars,
	}
}
