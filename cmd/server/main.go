package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-be/internal/address"
	"storefront-be/internal/admin"
	"storefront-be/internal/cart"
	"storefront-be/internal/collection"
	"storefront-be/internal/config"
	"storefront-be/internal/customer"
	"storefront-be/internal/db"
	"storefront-be/internal/events"
	"storefront-be/internal/httpapi"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/review"
	"storefront-be/internal/tag"
	"storefront-be/internal/user"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// app holds the handler together with the background workers it depends on.
type app struct {
	handler    http.Handler
	dispatcher *events.Dispatcher
	limiter    *middleware.RateLimiter
	closers    []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newServer(cfg *config.Config, database *sql.DB) *app {
	a := &app{}
	reg := metrics.NewRegistry()

	var productRepo product.Repository = product.NewRepository(database)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		productRepo = product.NewCachedRepository(productRepo, rdb, cfg.ProductCacheTTL)
		logger.L().Info("product cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	subs := []events.Subscriber{events.ConfirmationLogger{}}
	if cfg.AMQPURL != "" {
		conn, ch, err := events.SetupConn(cfg.AMQPURL, cfg.OrderEventsExchange)
		if err != nil {
			logger.L().Warn("order events will not be published", zap.Error(err))
		} else {
			a.closers = append(a.closers, func() {
				_ = ch.Close()
				_ = conn.Close()
			})
			subs = append(subs, events.NewAMQPPublisher(ch, cfg.OrderEventsExchange))
		}
	}
	a.dispatcher = events.NewDispatcher(cfg.EventQueueSize, reg, subs...)

	customerRepo := customer.NewRepository(database)
	customerSvc := customer.NewService(customerRepo)

	services := httpapi.Services{
		Users:       user.NewService(user.NewRepository(database)),
		Products:    product.NewService(productRepo),
		Collections: collection.NewService(collection.NewRepository(database)),
		Reviews:     review.NewService(review.NewRepository(database), productRepo),
		Tags:        tag.NewService(tag.NewRepository(database)),
		Carts:       cart.NewService(cart.NewRepository(database), productRepo),
		Orders:      order.NewService(order.NewRepository(database), a.dispatcher, reg),
		Customers:   customerSvc,
		Addresses:   address.NewService(address.NewRepository(database), customerRepo),
		Admin:       admin.NewService(admin.NewRepository(database)),
		Metrics:     reg,
	}

	a.limiter = middleware.NewRateLimiter(cfg.InternalSecretKey)
	a.handler = httpapi.NewRouter(services, httpapi.Options{
		CORSOrigin: cfg.CORSOrigin,
		Limiter:    a.limiter,
	})
	return a
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	a := newServer(cfg, database)
	defer a.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.dispatcher.Run(ctx)
	go a.limiter.RunCleanup(ctx)

	logger.L().Info("server starting",
		zap.String("port", cfg.AppPort),
		zap.String("env", cfg.AppEnv),
	)
	if err := startServerFunc(":"+cfg.AppPort, a.handler); err != nil {
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := a.dispatcher.Close(shutdownCtx); err != nil {
		logger.L().Warn("pending order events were not delivered", zap.Error(err))
	}

	logger.L().Info("server stopped")
	return nil
}

// startServer serves until SIGINT or SIGTERM, then drains in-flight requests.
func startServer(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
