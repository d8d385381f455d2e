package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/cimillas/guestlist/internal/app"
	"github.com/cimillas/guestlist/internal/auth"
	"github.com/cimillas/guestlist/internal/clock"
	"github.com/cimillas/guestlist/internal/config"
	"github.com/cimillas/guestlist/internal/render"
	"github.com/cimillas/guestlist/internal/storage/postgres"
	"github.com/cimillas/guestlist/internal/storage/sqlite"
	transporthttp "github.com/cimillas/guestlist/internal/transport/http"
	"github.com/cimillas/guestlist/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
)

type registrationStore interface {
	app.RegistrationRepository
	app.LookupRepository
	app.ActivationRepository
	app.RegistrationLister
}

type stores struct {
	venues        app.VenueRepository
	registrations registrationStore
	health        transporthttp.Pinger
	close         func()
}

func main() {
	logger := log.Default()

	cfg, err := config.Load(logger)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !cfg.AdminEnabled() {
		logger.Printf("WARN: ADMIN_PASSWORD_HASH or ADMIN_TOKEN_SECRET not set, admin endpoints are disabled")
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	st, err := openStores(startupCtx, cfg, logger)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.close()

	clk := clock.NewSystem()
	admin := app.NewAdminService(st.venues, st.registrations, clk)

	limiter := transporthttp.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	stopSweep := make(chan struct{})
	defer close(stopSweep)
	go limiter.Run(time.Minute, stopSweep)

	router := transporthttp.NewRouter(transporthttp.Routes{
		Venues:    admin,
		Registrar: app.NewRegistrationService(st.registrations, clk),
		Lookup:    app.NewLookupService(st.registrations),
		Activator: app.NewActivationService(st.registrations, clk, app.WithVenueTimezone(cfg.Location())),
		Admin:     admin,
		Auth:      auth.NewAuthenticator(cfg.AdminPassword, cfg.AdminSecret, cfg.AdminTokenTTL, clk),
		Links:     render.NewLinks(cfg.PublicOrigin),
		Limiter:   limiter,
		Logger:    logger,
		Health:    st.health,
	})
	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, router), logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("api listening on :%s store=%s", cfg.Port, cfg.StoreDriver)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}

func openStores(ctx context.Context, cfg config.Config, logger *log.Logger) (stores, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return stores{}, err
		}
		logger.Printf("using sqlite store at %s", cfg.SQLitePath)
		return stores{
			venues:        store.Venues(),
			registrations: store.Registrations(),
			health:        store,
			close:         func() { _ = store.Close() },
		}, nil
	default:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return stores{}, fmt.Errorf("connect to db: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return stores{}, fmt.Errorf("db ping: %w", err)
		}
		applied, err := migrations.Apply(ctx, pool)
		if err != nil {
			pool.Close()
			return stores{}, fmt.Errorf("apply migrations: %w", err)
		}
		if len(applied) > 0 {
			logger.Printf("applied migrations: %s", strings.Join(applied, ", "))
		}
		return stores{
			venues:        postgres.NewVenueRepository(pool),
			registrations: postgres.NewRegistrationRepository(pool),
			health:        pool,
			close:         pool.Close,
		}, nil
	}
}
