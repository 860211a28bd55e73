package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/voyagekit/packlist-backend/internal/affiliate"
	"github.com/voyagekit/packlist-backend/internal/cache"
	"github.com/voyagekit/packlist-backend/internal/catalog"
	"github.com/voyagekit/packlist-backend/internal/config"
	"github.com/voyagekit/packlist-backend/internal/explain"
	"github.com/voyagekit/packlist-backend/internal/middleware"
	"github.com/voyagekit/packlist-backend/internal/recommend"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	app := fiber.New()
	setupCORS(app)
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(logger))

	// catalog: Google Sheets source behind a TTL flat-file cache, with the
	// static mock catalog as last resort
	sheetsRepo := catalog.NewSheetsRepository(cfg, logger)
	catalogRepo := catalog.NewCachedRepository(
		sheetsRepo, cfg.SheetsDisabled, cfg.CacheTTL, cfg.CachePath, cfg.MockPath, logger,
	)

	// tag inference: OpenAI behind an in-memory TTL cache; deterministic
	// fallback when disabled or failing
	var aiClient explain.Client
	if cfg.OpenAIKey != "" {
		aiClient = explain.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAITimeout)
	}
	aiReady := cfg.AIEnabled && cfg.OpenAIKey != ""
	explainStore := cache.NewTTLStore[explain.Response](cfg.AICacheTTL)
	explainService := explain.NewService(aiReady, aiClient, catalogRepo, explainStore, logger)
	explainHandler := explain.NewHandler(explainService)
	explainHandler.RegisterPublicRoutes(app)

	recommendService := recommend.NewService(catalogRepo, explainService, cfg.AIEnabled, cfg.AIMaxTags, logger)
	recommendHandler := recommend.NewHandler(recommendService, logger)
	recommendHandler.RegisterPublicRoutes(app)

	affiliateHandler := affiliate.NewHandler(cfg.AffiliateTag)
	affiliateHandler.RegisterPublicRoutes(app)

	logger.Info("starting server", zap.String("addr", cfg.Addr), zap.Bool("ai", aiReady), zap.Bool("sheets", !cfg.SheetsDisabled))
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
}
