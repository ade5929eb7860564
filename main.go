package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yeremiapane/protein-finder/config"
	"github.com/yeremiapane/protein-finder/data"
	"github.com/yeremiapane/protein-finder/database"
	"github.com/yeremiapane/protein-finder/live"
	"github.com/yeremiapane/protein-finder/router"
	"github.com/yeremiapane/protein-finder/services"
	"github.com/yeremiapane/protein-finder/utils"
)

func init() {
	// Load .env file di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	if err := utils.ConfigureLogger(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		utils.ErrorLogger.Fatalf("Invalid LOG_LEVEL %q: %v", cfg.Logger.Level, err)
	}

	// Set gin mode
	if cfg.Server.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	store, err := openStore(context.Background(), cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to load catalog: %v", err)
	}

	svc := services.NewCatalogService(store)
	hub := live.NewHub()
	r := router.SetupRouter(svc, hub, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s (store: %s)", cfg.Server.Port, cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	utils.InfoLogger.Println("Shutting down server...")

	hub.CloseAll()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		utils.ErrorLogger.Printf("Server forced to shutdown: %v", err)
	}
	utils.InfoLogger.Println("Server exited")
}

// openStore loads the bundled catalog and, for the SQL stores, migrates and
// seeds the database from it before serving from SQL.
func openStore(ctx context.Context, cfg *config.Config) (services.CatalogStore, error) {
	catalog, err := data.Catalog()
	if err != nil {
		return nil, err
	}
	if cfg.Store.Driver == config.StoreMemory {
		return catalog, nil
	}

	db, err := config.InitDB(cfg.Store)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if err := database.Seed(ctx, db, catalog); err != nil {
		return nil, err
	}
	return database.NewGormCatalog(db), nil
}
