package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/openvote/ballot/internal/adapters/handler/http"
	"github.com/openvote/ballot/internal/adapters/oauth/google"
	"github.com/openvote/ballot/internal/adapters/repository/postgres"
	"github.com/openvote/ballot/internal/adapters/session"
	"github.com/openvote/ballot/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	voteRepo := postgres.NewVoteRepository(db)
	voteSvc := services.NewVoteService(voteRepo)
	resultSvc := services.NewResultService(voteRepo)

	store := session.NewMemoryStore()
	provider := google.NewProvider(
		os.Getenv("GOOGLE_CLIENT_ID"),
		os.Getenv("GOOGLE_CLIENT_SECRET"),
		os.Getenv("GOOGLE_CALLBACK_URL"),
	)

	webDir := os.Getenv("WEB_DIR")
	if webDir == "" {
		webDir = "./web"
	}

	authHandler := http.NewAuthHandler(provider, store)
	voteHandler := http.NewVoteHandler(voteSvc)
	resultHandler := http.NewResultHandler(resultSvc)
	pageHandler := http.NewPageHandler(webDir, store)

	handler := http.NewHandler(authHandler, voteHandler, resultHandler, pageHandler, store, os.Getenv("ADMIN_KEY"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &stdhttp.Server{Addr: "0.0.0.0:" + port, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("listening on :%s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func dbConnString() string {
	connStr := os.Getenv("DATABASE_URL")
	if strings.Contains(connStr, "sslmode=") {
		return connStr
	}
	sep := "?"
	if strings.Contains(connStr, "?") {
		sep = "&"
	}
	sslmode := "disable"
	if os.Getenv("DATABASE_SSL") == "true" {
		sslmode = "require"
	}
	return fmt.Sprintf("%s%ssslmode=%s", connStr, sep, sslmode)
}
