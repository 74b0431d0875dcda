package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/campus-election/internal/bootstrap"
	"github.com/yigit/campus-election/internal/config"
	"github.com/yigit/campus-election/internal/db"
)

// Server holds the state for the HTTP server.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	deps     *bootstrap.Dependencies
	database *db.PostgresDB
	logger   zerolog.Logger
	http     *http.Server

	hubCancel context.CancelFunc
	hubDone   chan struct{}
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	store, database, err := bootstrap.SetupStore(context.Background(), cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup store: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, store, lgr)
	if err != nil {
		if database != nil {
			database.Close()
		}
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	return &Server{
		config:   cfg,
		router:   router,
		deps:     deps,
		database: database,
		logger:   lgr,
	}, nil
}

// startBackground runs the results hub and arms the expiry scheduler. Elections that
// expired while the process was down are ended before the listener opens.
func (s *Server) startBackground() error {
	hubCtx, cancel := context.WithCancel(context.Background())
	s.hubCancel = cancel
	s.hubDone = make(chan struct{})
	go func() {
		defer close(s.hubDone)
		s.deps.Hub.Run(hubCtx)
	}()

	if err := s.deps.Scheduler.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start expiry scheduler: %w", err)
	}
	return nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	if err := s.startBackground(); err != nil {
		_ = s.Shutdown(context.Background())
		return err
	}

	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	s.http = &http.Server{
		Addr:        ":" + s.config.Server.Port,
		Handler:     s.router,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	// Channel to listen for errors starting the server
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	if err := s.Shutdown(context.Background()); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	shutdownError := false

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	// Stop expiry timers before the store goes away
	s.logger.Info().Msg("Stopping expiry scheduler...")
	s.deps.Scheduler.Stop()

	if s.hubCancel != nil {
		s.hubCancel()
		select {
		case <-s.hubDone:
			s.logger.Info().Msg("Results hub stopped.")
		case <-ctx.Done():
			s.logger.Error().Msg("Timed out waiting for results hub")
			shutdownError = true
		}
	}

	if s.database != nil {
		s.logger.Info().Msg("Closing database connection pool...")
		s.database.Close()
		s.logger.Info().Msg("Database connection pool closed.")
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}
