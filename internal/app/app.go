package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crackersmart/storefront/internal/dal/postgres"
	"github.com/crackersmart/storefront/internal/dal/rabbitmq"
	"github.com/crackersmart/storefront/internal/dal/redis"
	"github.com/crackersmart/storefront/internal/dal/repositories/events"
	outboxrepo "github.com/crackersmart/storefront/internal/dal/repositories/outbox/postgres"
	"github.com/crackersmart/storefront/internal/jaeger"
	"github.com/crackersmart/storefront/internal/service/services/analyticssvc"
	"github.com/crackersmart/storefront/internal/service/services/cartsvc"
	"github.com/crackersmart/storefront/internal/service/services/catalogsvc"
	"github.com/crackersmart/storefront/internal/service/services/expensesvc"
	"github.com/crackersmart/storefront/internal/service/services/ledgersvc"
	"github.com/crackersmart/storefront/internal/service/services/ordersvc"
	httptransport "github.com/crackersmart/storefront/internal/transport/http"
	"github.com/crackersmart/storefront/internal/worker/outbox"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	outboxWorker   *outbox.Worker
	tracerProvider *sdktrace.TracerProvider
	postgresClient *postgres.Client
	redisClient    *redis.Client
	rabbitClient   *rabbitmq.Client
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	tracerProvider := jaeger.MustSetup()

	postgresClient := postgres.MustNewClient()
	redisClient := redis.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	outboxRepo := outboxrepo.NewPostgresOutboxRepository(postgresClient.Pool())
	eventPublisher := events.MustNewRabbitMQPublisher(rabbitClient, outboxRepo)

	catalogSvc := catalogsvc.MustNewCatalogService(
		catalogsvc.WithPostgresClient(postgresClient),
	)

	cartSvc := cartsvc.MustNewCartService(
		cartsvc.WithRedisClient(redisClient),
		cartsvc.WithPostgresClient(postgresClient),
	)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
		ordersvc.WithEventPublisher(eventPublisher),
	)

	ledgerSvc := ledgersvc.MustNewLedgerService(
		ledgersvc.WithPostgresClient(postgresClient),
	)

	expenseSvc := expensesvc.MustNewExpenseService(
		expensesvc.WithPostgresClient(postgresClient),
	)

	analyticsSvc := analyticssvc.MustNewAnalyticsService(
		analyticssvc.WithPostgresClient(postgresClient),
	)

	transport := httptransport.NewHTTPTransport(
		catalogSvc,
		cartSvc,
		orderSvc,
		ledgerSvc,
		expenseSvc,
		analyticsSvc,
	)
	transport.RegisterRoutes()

	outboxWorker := outbox.NewWorker(outboxRepo, rabbitClient)

	return &App{
		transport:      transport,
		outboxWorker:   outboxWorker,
		tracerProvider: tracerProvider,
		postgresClient: postgresClient,
		redisClient:    redisClient,
		rabbitClient:   rabbitClient,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	go a.outboxWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	a.outboxWorker.Stop()

	if err := a.tracerProvider.Shutdown(ctx); err != nil {
		slog.Error("Tracer provider shutdown error", "error", err)
	}

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	}

	if err := a.redisClient.Close(); err != nil {
		slog.Error("Redis connection close error", "error", err)
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	slog.Info("Application shutdown complete")
}
