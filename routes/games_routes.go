package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Simokod/GameSearchEngine-WIP/controllers/games_controller"
)

// SetupGamesRoutes registers the two public game endpoints.
func SetupGamesRoutes(router *gin.RouterGroup, games games_controller.GameSearcher, storeInfo games_controller.StoreInfoProvider, defaultPageSize int) {
	group := router.Group("/games")
	{
		group.GET("/search", games_controller.SearchGames(games, defaultPageSize))
		group.POST("/game-info", games_controller.GetStoreInfo(storeInfo))
	}
}
