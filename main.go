package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/burnett013/faa-kit-aircraft-main/internal/config"
	"github.com/burnett013/faa-kit-aircraft-main/internal/db"
	"github.com/burnett013/faa-kit-aircraft-main/internal/kits"
	"github.com/burnett013/faa-kit-aircraft-main/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func main() {
	_ = godotenv.Load(".env.local")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	db.Connect(cfg.DatabaseURL)
	kits.Init()

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.RateLimitMiddleware(limiter))
	r.Get("/health", HealthHandler)
	r.Mount("/kits", kits.SetupRoutes())

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("[server] listening on :%s", cfg.Port)
	log.Fatal(srv.ListenAndServe())
}
