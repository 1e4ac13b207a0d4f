package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"

	"github.com/liamcoop/logicgraph/cache"
	"github.com/liamcoop/logicgraph/internal/config"
	"github.com/liamcoop/logicgraph/internal/logger"
	"github.com/liamcoop/logicgraph/logic"
	"github.com/liamcoop/logicgraph/prover"
	"github.com/liamcoop/logicgraph/service"
	"github.com/liamcoop/logicgraph/store"
)

// backends names what the server is wired to, for the health check
type backends struct {
	store  string
	cache  string
	prover string
}

type Server struct {
	svc     *service.Service
	db      *sql.DB
	info    backends
	closers []func() error
	router  *chi.Mux
}

// NewServer wires the service from cfg. PostgreSQL and Redis are used when
// configured; an unreachable Redis falls back to the in-memory cache.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	s := &Server{info: backends{store: "memory", cache: "memory", prover: cfg.SolverURL}}

	opts := []service.Option{service.WithProver(prover.NewHTTPProver(cfg.SolverURL))}
	if cfg.Lemmatize {
		opts = append(opts, service.WithNormalizer(logic.NewNormalizer(logic.WithLemmatizer(logic.CommonPlurals()))))
	}

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		s.db = db
		s.info.store = "postgres"
		s.closers = append(s.closers, db.Close)
		opts = append(opts, service.WithRelationStore(store.NewPostgresRelationStore(db)))
	}

	cacheCfg := cache.DefaultConfig()
	cacheCfg.TTL = cfg.CacheTTL
	var resultCache cache.ResultCache = cache.NewInMemoryResultCache(cacheCfg)
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisResultCacheFromAddr(ctx, cfg.RedisAddr, cacheCfg)
		if err != nil {
			logger.Warn("Redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "error", err)
		} else {
			resultCache = rc
			s.info.cache = "redis"
			s.closers = append(s.closers, rc.Close)
		}
	}
	opts = append(opts, service.WithCache(resultCache))

	svc, err := service.New(opts...)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.svc = svc
	s.setupRoutes()

	logger.Info("Server configured", "store", s.info.store, "cache", s.info.cache, "solver", s.info.prover)
	return s, nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/logic", func(r chi.Router) {
			r.Post("/compile", s.handleCompile)
			r.Get("/examples", s.handleLogicExamples)
		})

		r.Route("/models", func(r chi.Router) {
			r.Post("/generate", s.handleGenerate)
			r.Post("/reconstruct", s.handleReconstruct)
			r.Get("/examples", s.handleListExamples)
			r.Get("/examples/{name}", s.handleGetExample)
		})

		r.Post("/scripts/check", s.handleCheck)
		r.Post("/prove", s.handleProve)

		r.Route("/relations", func(r chi.Router) {
			r.Post("/graph", s.handleGraph)
			r.Post("/", s.handleSaveRelations)
			r.Get("/", s.handleFindRelations)
			r.Get("/{relationId}", s.handleGetRelation)
			r.Delete("/{relationId}", s.handleDeleteRelation)
		})
	})

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases the database and cache connections
func (s *Server) Close() error {
	var errs []error
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", "error", err)
	}
	if level, err := logger.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	server, err := NewServer(ctx, cfg)
	cancel()
	if err != nil {
		logger.Fatal("Failed to create server", "error", err)
	}
	defer server.Close()

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "addr", cfg.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 30*time.Second)
	defer stop()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	if err := logger.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "logger shutdown: %v\n", err)
	}

	logger.Info("Server stopped")
}
