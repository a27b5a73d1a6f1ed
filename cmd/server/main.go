package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"                   // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // request id, logging, recovery
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/little-lemon/internal/config"   // Internal config loader
	"github.com/iliyamo/little-lemon/internal/database" // MySQL pool and migrations
	"github.com/iliyamo/little-lemon/internal/handler"
	"github.com/iliyamo/little-lemon/internal/queue"
	"github.com/iliyamo/little-lemon/internal/repository"
	"github.com/iliyamo/little-lemon/internal/router" // Internal router setup
	"github.com/iliyamo/little-lemon/internal/view"
)

func main() {
	cfg, err := config.Load() // Load environment config
	if err != nil {
		log.Fatal(err)
	}

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Logger.SetLevel(logLevel(cfg.LogLevel))
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	renderer, err := view.NewRenderer()
	if err != nil {
		e.Logger.Fatalf("parse templates: %v", err)
	}
	e.Renderer = renderer

	db, err := database.Open(cfg.DB)
	if err != nil {
		e.Logger.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	if cfg.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.Migrate(ctx, db, e.Logger.Infof)
		cancel()
		if err != nil {
			e.Logger.Fatalf("migrate: %v", err)
		}
	}

	// Redis is optional: without it the rate limiter lets everything through.
	rdb := config.NewRedisClient(cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	} else if cfg.RateLimit.Enabled {
		e.Logger.Warnf("redis at %s unreachable, rate limiting disabled", cfg.Redis.Addr)
	}

	var events handler.EventPublisher
	if p := queue.NewPublisher(cfg.RabbitMQURL); p != nil {
		events = p
		e.Logger.Infof("booking events go to queue %s", p.Queue)
	}

	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			c.Logger().Infoj(log.JSON{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
				"remote_ip":  v.RemoteIP,
			})
			return nil
		},
	}))

	router.Register(e, router.Deps{ // Register application routes
		Cfg:       cfg,
		DB:        db,
		MenuItems: repository.NewMenuItemRepo(db),
		Bookings:  repository.NewBookingRepo(db),
		Users:     repository.NewUserRepo(db),
		Tokens:    repository.NewTokenRepo(db),
		Events:    events,
		Redis:     rdb,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		e.Logger.Infof("listening on %s (env=%s)", cfg.Addr(), cfg.Env) // Print startup info
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err) // Log and exit if server fails
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Error(err)
	}
}

// logLevel maps LOG_LEVEL onto gommon levels; unknown values mean info.
func logLevel(s string) log.Lvl {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
