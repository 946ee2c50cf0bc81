package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"codepair/internal/api"
	"codepair/internal/config"
	"codepair/internal/exec"
	"codepair/internal/llm"
	_ "codepair/internal/llm/gemini"
	"codepair/internal/metrics"
	"codepair/internal/models"
	"codepair/internal/routers"
	"codepair/internal/session"
	"codepair/internal/store"
)

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.DatabaseURL != "" {
		return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
}

func newDocumentStore(cfg *config.Config, db *gorm.DB) session.DocumentStore {
	switch cfg.DocStore {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return store.NewRedis(rdb)
	case "memory":
		return store.NewMemory()
	default:
		return store.NewDatabase(db)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := openDatabase(cfg)
	if err != nil {
		logger.Fatal("database open failed", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.User{}, &models.Room{}, &models.RoomParticipant{}); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	docs := newDocumentStore(cfg, db)

	// Autocomplete stays optional: without an API key the endpoint reports
	// the provider as unavailable instead of failing startup.
	var provider llm.Provider
	if p, err := llm.NewProvider(cfg.AIProvider); err != nil {
		logger.Warn("AI provider unavailable", zap.String("provider", cfg.AIProvider), zap.Error(err))
	} else {
		provider = p
	}

	runner := exec.NewRunner(cfg.PistonURL)

	handlers, err := api.NewHandlers(logger, db, docs, provider, runner, []byte(cfg.JWTSecret))
	if err != nil {
		logger.Fatal("handler setup failed", zap.Error(err))
	}

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		metrics.Middleware,
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Handle("/metrics", metrics.Handler())
	r.Mount("/", routers.New(handlers))

	addr := ":" + cfg.Port
	logger.Info("codepair listening", zap.String("addr", addr), zap.String("doc_store", cfg.DocStore))
	log.Fatal(http.ListenAndServe(addr, r))
}
