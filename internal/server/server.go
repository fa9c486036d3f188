// Package server wires the application together and owns the HTTP
// listen/serve lifecycle.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/mithai/app/controllers"
	"github.com/shashiranjanraj/mithai/app/repositories"
	"github.com/shashiranjanraj/mithai/app/routes"
	"github.com/shashiranjanraj/mithai/app/services"
	"github.com/shashiranjanraj/mithai/config"
	"github.com/shashiranjanraj/mithai/pkg/auth"
	"github.com/shashiranjanraj/mithai/pkg/database"
	"github.com/shashiranjanraj/mithai/pkg/logger"
	"github.com/shashiranjanraj/mithai/pkg/metrics"
	"github.com/shashiranjanraj/mithai/pkg/middleware"
	"github.com/shashiranjanraj/mithai/pkg/migration"
	"github.com/shashiranjanraj/mithai/pkg/reqid"
	"github.com/shashiranjanraj/mithai/pkg/router"
	"gorm.io/gorm"
)

// BuildHandler constructs the full HTTP handler on top of an open database:
// global middleware stack, /metrics, /healthz, and the API routes. Exposed
// so the end-to-end tests can run the real stack against a test database.
func BuildHandler(db *gorm.DB, tokens *auth.TokenService, hasher *auth.PasswordHasher) http.Handler {
	userRepo := repositories.NewUserRepository(db)
	sweetRepo := repositories.NewSweetRepository(db)

	authService := services.NewAuthService(userRepo, hasher, tokens)
	sweetService := services.NewSweetService(sweetRepo)

	authController := controllers.NewAuthController(authService)
	sweetController := controllers.NewSweetController(sweetService)

	r := router.New()

	// Middleware order matters: metrics measures everything below it,
	// recovery must wrap the logger, and the request ID must exist
	// before the logger reads it.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	r.HandleFunc("/metrics", metrics.Handler())

	routes.RegisterHealth(r, db)
	routes.RegisterAPI(r, authController, sweetController)

	return r.Handler()
}

// Bootstrap loads config, opens the database, runs pending migrations, and
// returns the wired handler.
func Bootstrap() (http.Handler, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	db, err := database.Connect()
	if err != nil {
		return nil, err
	}

	if err := migration.New(db).Run(); err != nil {
		return nil, err
	}

	tokens := auth.NewTokenService(config.JWTSecret(), config.TokenTTL())
	hasher := auth.NewPasswordHasher(config.BcryptCost())

	return BuildHandler(db, tokens, hasher), nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 30 seconds.
func Start() error {
	handler, err := Bootstrap()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.AppPort()),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
