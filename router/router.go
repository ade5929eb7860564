package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/protein-finder/config"
	"github.com/yeremiapane/protein-finder/controllers"
	"github.com/yeremiapane/protein-finder/live"
	"github.com/yeremiapane/protein-finder/middlewares"
	"github.com/yeremiapane/protein-finder/services"
	"github.com/yeremiapane/protein-finder/utils"
)

func SetupRouter(svc *services.CatalogService, hub *live.Hub, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		utils.ErrorLogger.Printf("Invalid trusted proxies %v: %v", cfg.Server.TrustedProxies, err)
	}

	// Apply security middlewares
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORS.AllowOrigin))

	rateLimiter := middlewares.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	r.Use(rateLimiter.RateLimit())

	// Inisialisasi controller
	restaurantCtrl := controllers.NewRestaurantController(svc)
	menuCtrl := controllers.NewMenuController(svc)
	liveCtrl := controllers.NewLiveController(svc, hub, cfg.CORS.AllowOrigin)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      RESTAURANTS
	// ----------------------------------------------------------------
	restaurants := r.Group("/restaurants")
	{
		restaurants.GET("", restaurantCtrl.GetAllRestaurants)
		restaurants.GET("/suggest", restaurantCtrl.SuggestRestaurants)
		restaurants.GET("/autocomplete/ws", liveCtrl.AutocompleteSocket)
		restaurants.GET("/:restaurant_id", restaurantCtrl.GetRestaurantByID)

		// ----------------------------------------------------------------
		//                      MENU & RANKINGS
		// ----------------------------------------------------------------
		restaurants.GET("/:restaurant_id/menu", menuCtrl.GetMenu)
		restaurants.GET("/:restaurant_id/rankings", menuCtrl.GetRankings)
		restaurants.GET("/:restaurant_id/rankings/:kind", menuCtrl.GetRanking)
		restaurants.GET("/:restaurant_id/items/:item_key", menuCtrl.GetItemDetails)
	}

	return r
}
