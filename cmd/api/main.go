package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"foodchain-api/internal/cache"
	"foodchain-api/internal/config"
	"foodchain-api/internal/handler"
	"foodchain-api/internal/repository"
	"foodchain-api/internal/router"
	"foodchain-api/internal/service"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting FoodChain API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize catalog repository based on config
	var catalogRepo repository.CatalogRepository
	switch cfg.CatalogDB.Type {
	case "sqlite":
		sqliteRepo, err := repository.NewSQLiteCatalogRepository(cfg.CatalogDB.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		catalogRepo = sqliteRepo
		log.Println("SQLite catalog repository initialized")
	case "mysql":
		mysqlRepo, err := repository.NewMySQLCatalogRepository(cfg.CatalogDB.MySQLDSN())
		if err != nil {
			log.Fatalf("Failed to initialize MySQL: %v", err)
		}
		catalogRepo = mysqlRepo
		log.Println("MySQL catalog repository initialized")
	default: // json
		jsonRepo, err := repository.NewJSONCatalogRepository(cfg.CatalogDB.Path)
		if err != nil {
			log.Fatalf("Failed to initialize JSON catalog: %v", err)
		}
		catalogRepo = jsonRepo
		log.Println("JSON catalog repository initialized")
	}
	defer catalogRepo.Close()

	// Initialize the listing cache (optional)
	var listCache cache.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cache.RedisCacheConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Printf("Warning: Redis connection failed, continuing without cache: %v", err)
		} else {
			defer redisCache.Close()
			listCache = redisCache
			log.Println("Redis cache initialized")
		}
	case "none":
		log.Println("Listing cache disabled")
	default: // memory
		memCache := cache.NewMemoryCache()
		defer memCache.Close()
		listCache = memCache
		log.Println("Memory cache initialized")
	}

	// Initialize services
	catalogService := service.NewCatalogService(catalogRepo, listCache, cfg.Cache.TTL)
	recognizer := service.NewRecognizer()

	// Initialize handlers
	healthHandler := handler.New()
	recognizeHandler := handler.NewRecognizeHandler(recognizer)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	adminHandler := handler.NewAdminHandler(catalogService, cfg.CatalogDB.Type)

	// Create router
	r := router.New(router.Config{
		Handler:          healthHandler,
		RecognizeHandler: recognizeHandler,
		CatalogHandler:   catalogHandler,
		AdminHandler:     adminHandler,
		StaticDir:        cfg.Server.StaticDir,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
