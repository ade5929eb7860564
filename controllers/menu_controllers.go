package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/protein-finder/models"
	"github.com/yeremiapane/protein-finder/services"
	"github.com/yeremiapane/protein-finder/utils"
)

type MenuController struct {
	Service *services.CatalogService
}

func NewMenuController(service *services.CatalogService) *MenuController {
	return &MenuController{Service: service}
}

type rankingsResponse struct {
	Restaurant *models.Restaurant      `json:"restaurant"`
	Sections   []services.RankingView `json:"sections"`
}

type rankingResponse struct {
	Restaurant *models.Restaurant    `json:"restaurant"`
	Section    services.RankingView `json:"section"`
}

// GetMenu returns the menu in source order.
// Endpoint: GET /restaurants/:restaurant_id/menu
func (mc *MenuController) GetMenu(c *gin.Context) {
	restaurant, items, err := mc.Service.Menu(c.Request.Context(), c.Param("restaurant_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondList(c, fmt.Sprintf("Menu of %s", restaurant.Name), items, len(items))
}

// GetRankings renders the three ranking sections of a restaurant page.
// Endpoint: GET /restaurants/:restaurant_id/rankings?top=3&variant[<item>]=<variant>
func (mc *MenuController) GetRankings(c *gin.Context) {
	top, err := parseTop(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurant, sections, err := mc.Service.Rankings(c.Request.Context(), c.Param("restaurant_id"), top, c.QueryMap("variant"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "High-protein menu breakdown", rankingsResponse{
		Restaurant: restaurant,
		Sections:   sections,
	})
}

// GetRanking renders a single section.
// Endpoint: GET /restaurants/:restaurant_id/rankings/:kind (protein|ratio|calories)
func (mc *MenuController) GetRanking(c *gin.Context) {
	top, err := parseTop(c)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	kind := services.RankingKind(c.Param("kind"))
	restaurant, section, err := mc.Service.Ranking(c.Request.Context(), c.Param("restaurant_id"), kind, top, c.QueryMap("variant"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, section.Title, rankingResponse{
		Restaurant: restaurant,
		Section:    section,
	})
}

// GetItemDetails renders the expanded nutrition panel of one item.
// Endpoint: GET /restaurants/:restaurant_id/items/:item_key?variant=<id>
func (mc *MenuController) GetItemDetails(c *gin.Context) {
	details, err := mc.Service.ItemDetails(c.Request.Context(), c.Param("restaurant_id"), c.Param("item_key"), c.Query("variant"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", details)
}
