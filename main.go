package main

import (
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/gridvote/cliparse"
	"github.com/danielhkuo/gridvote/contentstore"
	"github.com/danielhkuo/gridvote/db"
	"github.com/danielhkuo/gridvote/layout"
	"github.com/danielhkuo/gridvote/middleware"
	"github.com/danielhkuo/gridvote/router"
)

func main() {
	var err error

	// Local .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Grid layout
	l := layout.Default()
	if cfg.LayoutFile != "" {
		l, err = layout.Load(cfg.LayoutFile)
		if err != nil {
			slog.Error("layout load failed", "error", err)
			os.Exit(1)
		}
	}
	slog.Info("Layout ready", "teams", l.TeamNames())

	// Submission store
	store, closeStore, err := openStore(cfg)
	if err != nil {
		slog.Error("store setup failed", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()
	slog.Info("Store ready", "backend", cfg.StoreBackend, "path", cfg.SubmissionsPath)

	// Create router
	mux := router.NewRouter(store, cfg, l)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// openStore builds the configured backend; the returned func releases it
func openStore(cfg cliparse.Config) (contentstore.Store, func(), error) {
	switch cfg.StoreBackend {
	case cliparse.BackendGitHub:
		client := &http.Client{Timeout: cfg.RequestTimeout}
		return contentstore.NewGitHub(contentstore.GitHubConfig{
			BaseURL: cfg.GitHubAPIURL,
			Owner:   cfg.GitHubOwner,
			Repo:    cfg.GitHubRepo,
			Branch:  cfg.GitHubBranch,
			Token:   cfg.GitHubToken,
		}, client), func() {}, nil

	case cliparse.BackendSQL:
		conn, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		// Verify connection
		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, nil, err
		}
		// Create schema (tables)
		if err := db.CreateSchema(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return contentstore.NewSQL(conn, cfg.DatabaseType), func() { conn.Close() }, nil

	default:
		slog.Warn("using in-memory store, submissions are lost on restart")
		return contentstore.NewMemory(), func() {}, nil
	}
}
