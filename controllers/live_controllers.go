package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/protein-finder/live"
	"github.com/yeremiapane/protein-finder/services"
	"github.com/yeremiapane/protein-finder/utils"
)

type LiveController struct {
	Service  *services.CatalogService
	Hub      *live.Hub
	upgrader websocket.Upgrader
}

// NewLiveController accepts websocket upgrades from allowOrigin ("*" for any).
func NewLiveController(service *services.CatalogService, hub *live.Hub, allowOrigin string) *LiveController {
	return &LiveController{
		Service: service,
		Hub:     hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowOrigin == "*" || origin == "" || origin == allowOrigin
			},
		},
	}
}

// AutocompleteSocket serves one interactive search box.
// Endpoint: GET /restaurants/autocomplete/ws
func (lc *LiveController) AutocompleteSocket(c *gin.Context) {
	restaurants, err := lc.Service.Store.ListRestaurants(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ws, err := lc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Websocket upgrade failed: %v", err)
		return
	}

	session := live.NewSession(ws, restaurants)
	lc.Hub.Register(session)
	defer lc.Hub.Unregister(session)

	session.Serve()
}
