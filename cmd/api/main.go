package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"bookcatalog/internal/author"
	"bookcatalog/internal/book"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/platform/wikipedia"
	"bookcatalog/internal/review"
	"bookcatalog/internal/store"
)

const repoTimeout = 5 * time.Second

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("APP_ADDR", ":8080")
	dbPath := getEnv("DB_PATH", "books.db")

	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("cannot open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := store.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("cannot create schema: %v", err)
	}
	if err := store.Seed(ctx, db); err != nil {
		log.Fatalf("cannot seed database: %v", err)
	}
	log.Printf("database ready path=%s", dbPath)

	wiki := wikipedia.NewClient(
		getEnv("WIKIPEDIA_USER_AGENT", "bookcatalog/1.0"),
		getEnvInt("WIKIPEDIA_RPS", 2),
		getEnvInt("WIKIPEDIA_MAX_RETRIES", 2),
	)

	router := newRouter(db, wiki)

	rateLimit := httpx.NewRateLimitMiddleware(
		getEnvFloat("RATE_LIMIT_RPS", 10),
		getEnvInt("RATE_LIMIT_BURST", 20),
	)
	maxBody := int64(getEnvInt("MAX_BODY_BYTES", 1<<20))
	corsOrigins := strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ",")

	var handler http.Handler = router
	handler = rateLimit.Middleware(handler)
	handler = httpx.RequestSizeLimitMiddleware(maxBody)(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.CORSMiddleware(corsOrigins)(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)
	handler = httpx.RecoveryMiddleware(handler)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		log.Printf("Starting server on %s", serverAddress)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("server stopped")
}

func newRouter(db *sql.DB, authorLookup author.Lookup) *http.ServeMux {
	bookRepo := book.NewSQLiteRepo(db, repoTimeout)
	reviewRepo := review.NewSQLiteRepo(db, repoTimeout)

	bookService := book.NewService(bookRepo)
	reviewService := review.NewService(reviewRepo)
	authorService := author.NewService(authorLookup)

	bookHandler := book.NewHTTPHandler(bookService, reviewService)
	reviewHandler := review.NewHTTPHandler(reviewService)
	authorHandler := author.NewHTTPHandler(authorService)

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("GET /books", bookHandler.List)
	router.HandleFunc("GET /books/top", bookHandler.TopRated)
	router.HandleFunc("GET /books/{id}", bookHandler.Get)
	router.HandleFunc("POST /books", bookHandler.Create)
	router.HandleFunc("PUT /books/{id}", bookHandler.Update)
	router.HandleFunc("DELETE /books/{id}", bookHandler.Delete)

	router.HandleFunc("POST /reviews", reviewHandler.Create)
	router.HandleFunc("GET /reviews", reviewHandler.List)
	router.HandleFunc("GET /reviews/{book_id}", reviewHandler.ListForBook)

	router.HandleFunc("GET /author/{name}", authorHandler.Get)

	return router
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
