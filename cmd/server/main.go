package main

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"heritage_routes/internal/config"
	"heritage_routes/internal/controllers"
	"heritage_routes/internal/geo"
	"heritage_routes/internal/logger"
	"heritage_routes/internal/middleware"
	"heritage_routes/internal/repository/gormdb"
	"heritage_routes/internal/routes"
	"heritage_routes/internal/services"
	"heritage_routes/internal/story"
)

func main() {
	logger.Setup()

	cfg := config.Load()

	db, err := config.OpenDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("database initialization failed")
	}

	objectRepo := gormdb.NewObjectRepository(db)
	routeRepo := gormdb.NewRouteRepository(db)
	storyRepo := gormdb.NewStoryRepository(db)
	userRepo := gormdb.NewUserRepository(db)

	// Heritage objects are effectively static reference data, so the whole
	// set is indexed in memory at startup.
	index := geo.NewObjectIndex(geo.DefaultPrecision)
	objects, err := objectRepo.All(context.Background())
	if err != nil {
		logrus.WithError(err).Fatal("could not load heritage objects")
	}
	index.Load(objects)
	logrus.WithField("count", index.Count()).Info("heritage object index ready")

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := cache.Ping(context.Background()).Err(); err != nil {
			logrus.WithError(err).Warn("redis unreachable, continuing with persistent story cache only")
		}
	} else {
		logrus.Info("REDIS_ADDR not set, fast story cache disabled")
	}

	var generator story.Generator
	if cfg.OpenRouterAPIKey != "" {
		generator = story.NewOpenRouterGenerator(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.OpenRouterModel)
	} else {
		logrus.Info("OPENROUTER_API_KEY not set, using offline story generator")
		generator = story.NewFallbackGenerator()
	}

	routeService := services.NewRouteService(index, routeRepo, services.RouteConfig{
		SearchRadiusMeters: cfg.SearchRadiusMeters,
		MaxObjects:         cfg.MaxRouteObjects,
		DefaultObjects:     cfg.DefaultRouteObjects,
	})
	storyService := services.NewStoryService(objectRepo, storyRepo, cache, generator)
	geocodeService := services.NewGeocodeService(cfg.YandexGeocoderAPIKey)

	tokens := middleware.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	r := routes.SetupRouter(routes.Controllers{
		Auth:    controllers.NewAuthController(userRepo, tokens),
		Objects: controllers.NewObjectController(objectRepo, storyService),
		Routes:  controllers.NewRouteController(routeService),
		Geocode: controllers.NewGeocodeController(geocodeService),
	}, tokens)

	handler := middleware.EnableCORS(r)

	logrus.WithField("addr", cfg.ListenAddr).Info("server starting")
	logrus.Fatal(http.ListenAndServe(cfg.ListenAddr, handler))
}
