package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/protein-finder/services"
	"github.com/yeremiapane/protein-finder/utils"
)

type RestaurantController struct {
	Service *services.CatalogService
}

func NewRestaurantController(service *services.CatalogService) *RestaurantController {
	return &RestaurantController{Service: service}
}

// GetAllRestaurants is the browse page: an empty ?q= lists everything.
// Endpoint: GET /restaurants?q=<text>
func (rc *RestaurantController) GetAllRestaurants(c *gin.Context) {
	restaurants, err := rc.Service.Browse(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "List of restaurants"
	if len(restaurants) == 0 {
		message = "No results. Try a different search."
	}
	utils.RespondList(c, message, restaurants, len(restaurants))
}

// SuggestRestaurants is the autocomplete dropdown for a single keystroke.
// Endpoint: GET /restaurants/suggest?q=<text>
func (rc *RestaurantController) SuggestRestaurants(c *gin.Context) {
	suggestions, err := rc.Service.Suggest(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondList(c, fmt.Sprintf("Suggestions for %q", services.NormalizeQuery(c.Query("q"))), suggestions, len(suggestions))
}

// GetRestaurantByID
func (rc *RestaurantController) GetRestaurantByID(c *gin.Context) {
	restaurant, err := rc.Service.Restaurant(c.Request.Context(), c.Param("restaurant_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", restaurant)
}
