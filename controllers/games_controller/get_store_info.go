package games_controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Simokod/GameSearchEngine-WIP/models"
)

// StoreInfoProvider is the slice of the store-info service this handler needs.
type StoreInfoProvider interface {
	GetMultiStoreGameInfo(ctx context.Context, requests []models.StoreRequest) map[string]*models.StoreGameInfo
}

// GetStoreInfo godoc
// @Summary Get per-store game info
// @Description Fetches price/rating info for a batch of (store, url) pairs in parallel. A store whose lookup fails maps to null.
// @Tags games
// @Accept json
// @Produce json
// @Param request body models.GameInfoRequest true "Stores to query"
// @Success 200 {object} map[string]models.StoreGameInfo
// @Failure 400 {object} models.ApiError
// @Router /games/game-info [post]
func GetStoreInfo(service StoreInfoProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.GameInfoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body: "+err.Error()))
			return
		}
		c.JSON(http.StatusOK, service.GetMultiStoreGameInfo(c.Request.Context(), req.Stores))
	}
}
