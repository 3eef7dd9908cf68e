package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"medley/api"
	"medley/config"
	"medley/handlers"
	"medley/internal/database"
	"medley/services/catalog"
	"medley/services/profiles"
	"medley/services/recommend"
	"medley/services/reviews"
	"medley/utils"
)

func main() {
	cfg := config.Load()

	if cfg.LogFile != "" {
		log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    20, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		}))
	}
	utils.SetClientOrigins(cfg.ClientOrigins)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("[main] create data dir: %v", err)
	}
	db, err := database.NewDB(database.Config{DatabasePath: filepath.Join(cfg.DataDir, "medley.db")})
	if err != nil {
		log.Fatalf("[main] open database: %v", err)
	}
	defer db.Close()

	profileRepo := database.NewProfileRepository(db.Connection())
	profilesSvc := profiles.NewService(profileRepo)
	reviewsSvc := reviews.NewService(profileRepo)

	httpc := &http.Client{}
	cache := catalog.NewCache(cfg.CacheSize, cfg.CacheTTL)
	movies, series, anime := catalog.NewTMDBSources(cfg.TMDBAPIKey, httpc, cache)
	books := catalog.NewBooksSource(cfg.GoogleBooksAPIKey, httpc, cache)
	music := catalog.NewMusicSource(cfg.SpotifyClientID, cfg.SpotifyClientSecret, httpc, cache)
	catalogSvc := catalog.NewService(movies, series, anime, books, music)
	engine := recommend.NewEngine(catalogSvc, profilesSvc)

	itemsHandler := handlers.NewItemsHandler(catalogSvc)
	recommendHandler := handlers.NewRecommendHandler(engine)
	reviewsHandler := handlers.NewReviewsHandler(reviewsSvc)
	profilesHandler := handlers.NewProfilesHandler(profilesSvc)

	router := utils.NewRouter()
	apiRouter := router.PathPrefix("/api").Subrouter()
	limiter := api.NewIPRateLimiter(rate.Limit(float64(cfg.RateLimitPerMinute)/60), cfg.RateLimitPerMinute)
	apiRouter.Use(api.RateLimitMiddleware(limiter))

	apiRouter.HandleFunc("/items", itemsHandler.GetItems).Methods(http.MethodGet)
	apiRouter.HandleFunc("/recommendations", recommendHandler.GetRecommendations).Methods(http.MethodGet)
	apiRouter.HandleFunc("/reviews", reviewsHandler.GetReviews).Methods(http.MethodGet)
	apiRouter.HandleFunc("/profile/{userId}", profilesHandler.GetProfile).Methods(http.MethodGet)
	apiRouter.HandleFunc("/profile/{userId}", profilesHandler.UpdateProfile).Methods(http.MethodPut)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("[main] listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("[main] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[main] shutdown: %v", err)
	}
}
