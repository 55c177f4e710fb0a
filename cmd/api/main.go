package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/czulu/freshmart-backend/internal/modules/auth"
	"github.com/czulu/freshmart-backend/internal/modules/blog"
	"github.com/czulu/freshmart-backend/internal/modules/ledger"
	"github.com/czulu/freshmart-backend/internal/modules/section"
	"github.com/czulu/freshmart-backend/internal/modules/upload"
	"github.com/czulu/freshmart-backend/internal/refresh"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	bus := refresh.NewBus(newTransport(logger), logger)
	defer bus.Close()

	jwtKey := []byte(envOr("JWT_SECRET", "your-secret-key"))
	requireAdmin := auth.RequireAdmin(jwtKey)

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Admin auth ──────────────────────────────────────────
	authService := auth.NewService(
		os.Getenv("ADMIN_EMAIL"),
		os.Getenv("ADMIN_PASSWORD_HASH"),
		jwtKey,
	)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Order ledger ────────────────────────────────────────
	ledgerRepo := ledger.NewPostgresRepository(db)
	ledgerService := ledger.NewService(ledgerRepo)
	ledger.NewHandler(ledgerService).RegisterRoutes(router)

	// ── Blog strip ──────────────────────────────────────────
	blogRepo := blog.NewPostgresRepository(db)
	blogService := blog.NewService(blogRepo, bus)
	blog.NewHandler(blogService, requireAdmin).RegisterRoutes(router)

	// ── Image uploads ───────────────────────────────────────
	uploadStore := upload.NewLocalStore(envOr("UPLOAD_DIR", "uploads"), "/uploads")
	upload.NewHandler(uploadStore, requireAdmin).RegisterRoutes(router)

	// ── Storefront sections (wildcard /api/{section}, registered last) ──
	sectionRepo := section.NewPostgresRepository(db)
	sectionService := section.NewService(sectionRepo, bus)
	section.NewHandler(sectionService, requireAdmin).RegisterRoutes(router)

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("FreshMart API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

// newTransport prefers Redis pub/sub and falls back to the shared signal
// directory so saves still reach open storefronts without Redis.
func newTransport(logger *zap.Logger) refresh.Transport {
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		t, err := refresh.NewRedisTransport(redisURL)
		if err == nil {
			return t
		}
		logger.Warn("redis unavailable, falling back to signal dir", zap.Error(err))
	}
	t, err := refresh.NewSignalDirTransport(envOr("SIGNAL_DIR", "data/signals"))
	if err != nil {
		log.Fatal(err)
	}
	return t
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
