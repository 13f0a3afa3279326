// Command server runs the demo HTTP service that ships with the error
// normalization layer. It builds the descriptor registry, classifier, and
// status resolver, applies the application's setup-time registrations, and
// serves the demo item API with every failure funneled through the boundary.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Harshit978/ErrorHandler/internal/classify"
	"github.com/Harshit978/ErrorHandler/internal/config"
	"github.com/Harshit978/ErrorHandler/internal/errdef"
	httpapi "github.com/Harshit978/ErrorHandler/internal/http"
	"github.com/Harshit978/ErrorHandler/internal/http/middleware"
	"github.com/Harshit978/ErrorHandler/internal/status"
)

// shutdownGrace bounds how long in-flight requests may run after SIGTERM.
const shutdownGrace = 10 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	setupLogging(cfg)
	gin.SetMode(cfg.GinMode)

	reg := errdef.NewRegistry()
	cls := classify.New(reg)
	res := status.NewResolver()

	// Application-specific registrations, the setup-time interface in
	// action: a descriptor of our own, its status mapping, and a failure
	// type routed to it.
	quota, err := reg.Register("ERR-100", "Storage quota exceeded for: %s.")
	if err != nil {
		log.Fatal().Err(err).Msg("register descriptor")
	}
	if err := res.Register("ERR-100", http.StatusInsufficientStorage); err != nil {
		log.Fatal().Err(err).Msg("register status mapping")
	}
	if err := cls.Register(&quotaExceeded{}, quota); err != nil {
		log.Fatal().Err(err).Msg("register failure mapping")
	}

	b := middleware.Boundary{Classifier: cls, Status: res}

	r := gin.New()
	if err := httpapi.RegisterRoutes(r, cfg, reg, b); err != nil {
		log.Fatal().Err(err).Msg("register routes")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("base_path", cfg.APIBasePath).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown incomplete")
	}
}

// quotaExceeded is the demo's own failure type, classified via the mapping
// registered in main.
type quotaExceeded struct {
	user string
}

func (e *quotaExceeded) Error() string { return e.user }

func setupLogging(cfg config.Config) {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
