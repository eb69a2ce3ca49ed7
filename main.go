package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Simokod/GameSearchEngine-WIP/config"
	"github.com/Simokod/GameSearchEngine-WIP/middleware"
	"github.com/Simokod/GameSearchEngine-WIP/models"
	"github.com/Simokod/GameSearchEngine-WIP/routes"
	"github.com/Simokod/GameSearchEngine-WIP/services"
)

func init() {
	_ = godotenv.Load()
}

func main() {
	cfg := config.Load()

	rawgClient := services.NewRawgClient(cfg.RawgAPIKey)
	hfClient := services.NewHuggingFaceClient(cfg.HuggingFaceToken, cfg.HuggingFaceModel)
	analyzer := services.NewQueryAnalyzer(hfClient)

	var strategy services.RerankingStrategy
	switch cfg.RerankingStrategy {
	case "semantic":
		strategy = services.NewSemanticSimilarityStrategy(hfClient)
	default:
		strategy = services.NewLLMRerankingStrategy(hfClient)
	}
	reranker := services.NewRerankingService(strategy)

	gamesService := services.NewGamesService(rawgClient, analyzer, reranker)
	storeInfoService := services.NewStoreInfoService(map[models.StoreKey]services.StoreClient{
		models.StoreSteam: services.NewSteamSpyClient(),
		models.StoreGog:   services.NewGogClient(),
	})

	// Warm the reference caches in the background so the first search doesn't
	// pay for four upstream round-trips. Searches retry on their own if this
	// fails.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := rawgClient.InitializeCache(ctx); err != nil {
			log.Printf("⚠️ reference cache warm-up failed: %v", err)
		}
	}()

	router := gin.Default()
	router.Use(middleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.CorsOrigin},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	routes.SetupGamesRoutes(api, gamesService, storeInfoService, cfg.DefaultPageSize)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("✅ Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}
	log.Println("Server exiting")
}
