package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"estepage_storefront/internal/controller"
	"estepage_storefront/internal/middleware"
	"estepage_storefront/internal/model"
	"estepage_storefront/internal/view"
	"estepage_storefront/pkg/api"
	"estepage_storefront/pkg/cache"
	"estepage_storefront/pkg/config"
	"estepage_storefront/pkg/cron"
	"estepage_storefront/pkg/database"
	applog "estepage_storefront/pkg/logger"
	"estepage_storefront/pkg/utils/catalog"
	"estepage_storefront/pkg/utils/format"
	"estepage_storefront/pkg/utils/jwt"
	"estepage_storefront/pkg/utils/location"
)

type health struct {
	cache *cache.PropertyCache
	db    *gorm.DB
}

func (h health) handler(c *fiber.Ctx) error {
	status := fiber.Map{"status": "ok", "cache": "disabled", "database": "disabled"}
	code := fiber.StatusOK
	if h.cache != nil {
		status["cache"] = "up"
		if err := h.cache.Ping(c.UserContext()); err != nil {
			status["cache"] = "down"
		}
	}
	if h.db != nil {
		status["database"] = "up"
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.UserContext()) != nil {
			status["database"] = "down"
			status["status"] = "degraded"
			code = fiber.StatusServiceUnavailable
		}
	}
	return c.Status(code).JSON(status)
}

func setupRoutes(app *fiber.App, signer *jwt.Signer, log *zap.Logger, h health) {
	app.Get("/healthz", h.handler)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", middleware.Visitor(), middleware.Session(signer, log))

	// Home
	api.Get("/home", controller.GetHome)
	api.Get("/catalog", controller.GetCatalog)
	api.Get("/hero/stream", controller.StreamHero)

	// Search and filters
	api.Post("/search", controller.SubmitSearch)
	api.Get("/search", controller.SearchProperties)
	api.Post("/filters", controller.ReduceFilters)

	// Locations
	api.Get("/locations", controller.GetLocationData)
	api.Get("/locations/suggest", controller.SuggestLocations)
	api.Get("/locations/:emirateCode/communities", controller.GetCommunitiesByEmirate)

	// Property detail
	properties := api.Group("/properties")
	properties.Get("/:id", controller.GetPropertyDetail)
	properties.Get("/:id/gallery", controller.GetGallery)
	properties.Get("/:id/share", controller.GetShareLinks)
	properties.Get("/:id/stats", controller.GetPropertyStats)
	properties.Post("/:id/favorite", controller.ToggleFavorite)
	properties.Post("/:id/inquiries", controller.SendInquiry)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := applog.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := catalog.Init(); err != nil {
		log.Fatal("Could not initialize catalog data", zap.Error(err))
	}
	if err := location.Init(); err != nil {
		log.Fatal("Could not initialize location data", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, log.Named("api"))
	services := &controller.Services{
		Properties: client,
		Account: func(token string) controller.AccountAPI {
			return client.WithToken(token)
		},
		Prices:       format.NewPriceFormatter(cfg.Display.Currency),
		BaseURL:      cfg.Server.PublicBaseURL,
		HeroInterval: cfg.Display.HeroInterval,
		Logger:       log,
	}

	var h health
	if cfg.Cache.URL != "" {
		pc, err := cache.NewPropertyCache(ctx, cfg.Cache.URL, cfg.Cache.TTL)
		if err != nil {
			log.Fatal("Could not connect to redis", zap.Error(err))
		}
		defer pc.Close()
		h.cache = pc

		cached := cache.NewCachedSource(client, pc, log.Named("cache"))
		services.Properties = cached

		refresh, err := cron.InitFeaturedRefreshCron(cfg.Cron.FeaturedRefresh, api.FeaturedOptions(view.FeaturedCount), cached, log.Named("cron"))
		if err != nil {
			log.Fatal("Could not initialize featured refresh cron", zap.Error(err))
		}
		defer refresh.Stop()
	}

	if cfg.Database.URL != "" {
		db, err := database.InitDB(cfg.Database.URL)
		if err != nil {
			log.Fatal("Could not connect to database", zap.Error(err))
		}
		if err := database.MigrateDatabase(db, log, &model.PropertyView{}, &model.SearchLog{}); err != nil {
			log.Warn("Migration warning", zap.Error(err))
		}
		h.db = db
		services.Tracker = database.NewTracker(db)
	}

	if cfg.JWT.Secret == "" {
		log.Warn("JWT_SECRET is not set; every visitor is anonymous")
	}

	controller.Init(services)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	setupRoutes(app, jwt.NewSigner(cfg.JWT.Secret), log, h)

	go func() {
		<-ctx.Done()
		log.Info("Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("Shutdown failed", zap.Error(err))
		}
	}()

	log.Info("Server is running", zap.String("port", cfg.Server.Port))
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Error("Server stopped", zap.Error(err))
	}
}
