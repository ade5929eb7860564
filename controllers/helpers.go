package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/protein-finder/services"
	"github.com/yeremiapane/protein-finder/utils"
)

// respondServiceError maps service errors to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case services.IsNotFound(err):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrUnknownRanking):
		utils.RespondError(c, http.StatusBadRequest, err)
	default:
		c.Error(err)
		utils.ErrorLogger.Printf("Catalog request failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("internal server error"))
	}
}

// parseTop reads the ?top= highlight size.
func parseTop(c *gin.Context) (int, error) {
	raw := c.Query("top")
	if raw == "" {
		return services.DefaultHighlightTop, nil
	}
	top, err := strconv.Atoi(raw)
	if err != nil || top < 0 {
		return 0, errors.New("query parameter 'top' must be a non-negative integer")
	}
	return top, nil
}
