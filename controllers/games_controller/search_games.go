package games_controller

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Simokod/GameSearchEngine-WIP/models"
)

// GameSearcher is the slice of the games service this handler needs.
type GameSearcher interface {
	SearchGames(ctx context.Context, query string, page, pageSize int) ([]models.FullGameInfo, error)
}

// SearchGames godoc
// @Summary Search games
// @Description Natural-language game search. Direct titles go straight to the catalog; descriptive queries are analyzed, turned into filters, and semantically reranked.
// @Tags games
// @Produce json
// @Param query query string true "Search query"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Results per page"
// @Success 200 {object} models.SearchResponse
// @Failure 400 {object} models.ApiError
// @Failure 500 {object} models.ApiError
// @Router /games/search [get]
func SearchGames(service GameSearcher, defaultPageSize int) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("query"))
		if query == "" {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Query parameter 'query' is required"))
			return
		}

		page, ok := positiveIntQuery(c, "page", 1)
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Query parameter 'page' must be a positive integer"))
			return
		}
		pageSize, ok := positiveIntQuery(c, "pageSize", defaultPageSize)
		if !ok {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Query parameter 'pageSize' must be a positive integer"))
			return
		}

		games, err := service.SearchGames(c.Request.Context(), query, page, pageSize)
		if err != nil {
			log.Printf("[http] search failed: %v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to search games"))
			return
		}
		if games == nil {
			games = []models.FullGameInfo{}
		}
		c.JSON(http.StatusOK, models.SearchResponse{Games: games})
	}
}

// positiveIntQuery parses an optional positive-integer query parameter.
func positiveIntQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
