// cmd/server/main.go
package main

import (
	"log"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/eranhirsch/nothanks/internal/auth"
	"github.com/eranhirsch/nothanks/internal/database"
	"github.com/eranhirsch/nothanks/internal/game"
	"github.com/eranhirsch/nothanks/internal/handlers"
	"github.com/eranhirsch/nothanks/internal/middleware"
	"github.com/eranhirsch/nothanks/internal/store"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	if err := auth.Init(); err != nil {
		log.Fatalf("auth init: %v", err)
	}

	// Snapshot persistence: redis when configured, in-memory otherwise.
	var snapshots game.SnapshotStore
	if os.Getenv("REDIS_ADDR") != "" {
		client, err := store.Connect()
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		snapshots = store.NewRedisStore(client)
		logger.Info("using redis snapshot store")
	} else {
		snapshots = store.NewMemoryStore()
		logger.Warn("REDIS_ADDR not set; game state will not survive a restart")
	}

	ts := handlers.NewTableServer(snapshots, logger)

	// Results archive and user accounts need postgres; both are optional.
	if os.Getenv("PG_HOST") != "" {
		if err := database.Connect(); err != nil {
			log.Fatalf("postgres: %v", err)
		}
		ts.ArchiveResults = true
		logger.Info("postgres connected; archiving finished games")
	} else {
		logger.Warn("PG_HOST not set; running without user accounts or results archive")
	}

	mux := http.NewServeMux()

	// user endpoints
	mux.HandleFunc("/user/create", handlers.CreateUserHandler)
	mux.HandleFunc("/user/login", handlers.LoginHandler)

	// table endpoints
	mux.Handle("/table/create", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.CreateTableHandler(ts),
	)))
	mux.Handle("/table/list", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.ListTablesHandler(ts),
	)))
	mux.Handle("/table/state/", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.TableStateHandler(ts),
	)))

	// table websocket
	mux.Handle("/table/ws/", middleware.LogMiddleware(logger)(http.HandlerFunc(
		handlers.TableWSHandler(logger, ts),
	)))

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
