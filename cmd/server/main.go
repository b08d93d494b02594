package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/typedrill/backend/internal/auth"
	"github.com/typedrill/backend/internal/content"
	"github.com/typedrill/backend/internal/database"
	"github.com/typedrill/backend/internal/gamification"
	"github.com/typedrill/backend/internal/middleware"
	"github.com/typedrill/backend/internal/tests"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Optional redis for leaderboard caching
	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("Redis unreachable, leaderboard caching disabled: %v", err)
			rdb = nil
		}
	}

	// Gamification
	gameStore := gamification.NewStore(db)
	if err := gameStore.SeedBadges(gamification.Catalog); err != nil {
		log.Fatalf("Failed to seed badge catalog: %v", err)
	}
	gameService := gamification.NewService(gameStore, rdb)
	gameHandler := gamification.NewHandler(gameService)

	if err := auth.BootstrapAdmin(db); err != nil {
		log.Fatalf("Failed to bootstrap admin: %v", err)
	}

	// Initialize handlers
	authHandler := auth.NewHandler(db)
	testsHandler := tests.NewHandler(tests.NewService(tests.NewStore(db), gameService))
	contentHandler := content.NewHandler(content.NewService(content.NewPassageClient()))

	// Metrics and per-IP rate limiting
	middleware.InitPrometheus()
	go middleware.CleanupVisitors()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.MonitorMiddleware)
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RateLimitMiddleware)

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/tests/content", contentHandler.GetContent).Methods("GET")
	api.HandleFunc("/gamification/levels/progression", gameHandler.GetLevelProgression).Methods("GET")
	api.HandleFunc("/gamification/badges", gameHandler.ListBadges).Methods("GET")
	api.HandleFunc("/gamification/badges/{code}", gameHandler.GetBadge).Methods("GET")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/auth/me", authHandler.UpdateCurrentUser).Methods("PUT")
	protected.HandleFunc("/auth/me", authHandler.DeleteAccount).Methods("DELETE")

	protected.HandleFunc("/tests/me/typing", testsHandler.SubmitTest).Methods("POST")
	protected.HandleFunc("/tests/me/typing", testsHandler.ListMyTests).Methods("GET")
	protected.HandleFunc("/tests/me/typing/{id}", testsHandler.GetTest).Methods("GET")

	protected.HandleFunc("/gamification/me/level", gameHandler.GetMyLevel).Methods("GET")
	protected.HandleFunc("/gamification/me/stats", gameHandler.GetMyStats).Methods("GET")
	protected.HandleFunc("/gamification/me/xp-logs", gameHandler.GetMyXPLogs).Methods("GET")
	protected.HandleFunc("/gamification/me/summary", gameHandler.GetMySummary).Methods("GET")
	protected.HandleFunc("/gamification/me/badges", gameHandler.GetMyBadges).Methods("GET")
	protected.HandleFunc("/gamification/me/badges/earned", gameHandler.GetMyEarnedBadges).Methods("GET")

	protected.HandleFunc("/gamification/users/{id}/level", gameHandler.GetUserLevel).Methods("GET")
	protected.HandleFunc("/gamification/users/{id}/stats", gameHandler.GetUserStats).Methods("GET")
	protected.HandleFunc("/gamification/users/{id}/badges", gameHandler.GetUserBadges).Methods("GET")

	protected.HandleFunc("/gamification/leaderboard", gameHandler.GetLeaderboard).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Prometheus scrape endpoint, behind basic auth
	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler())).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
