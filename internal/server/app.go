// Package server wires the API server together: database and migrations,
// object storage, the settings cache, the event bus with its mail worker,
// the HTTP API and the gRPC health endpoint.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/focusgroup/internal/logging"
	"github.com/dmitrijs2005/focusgroup/internal/server/auth"
	"github.com/dmitrijs2005/focusgroup/internal/server/cache"
	"github.com/dmitrijs2005/focusgroup/internal/server/config"
	"github.com/dmitrijs2005/focusgroup/internal/server/events"
	"github.com/dmitrijs2005/focusgroup/internal/server/httpapi"
	"github.com/dmitrijs2005/focusgroup/internal/server/mail"
	"github.com/dmitrijs2005/focusgroup/internal/server/notify"
	"github.com/dmitrijs2005/focusgroup/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/focusgroup/internal/server/services"
	"github.com/dmitrijs2005/focusgroup/internal/server/storage"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/focusgroup/internal/server/grpc"
)

const healthCheckInterval = 10 * time.Second

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	redis    *redis.Client
	http     *httpapi.Server
	health   *gs.HealthServer
	consumer *events.AMQPConsumer
	closers  []func() error
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stdout, c.LogFormat, c.LogLevel)
	app := &App{config: c, logger: logger}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	app.db = db
	app.closers = append(app.closers, db.Close)

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		app.close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	blobs, err := storage.NewS3Store(ctx, storage.S3Options{
		AccessKey:    c.S3RootUser,
		SecretKey:    c.S3RootPassword,
		Region:       c.S3Region,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
	})
	if err != nil {
		app.close()
		return nil, err
	}

	app.redis = cache.NewRedisClient(ctx, c.RedisAddr, c.RedisPassword)
	if app.redis != nil {
		app.closers = append(app.closers, app.redis.Close)
	} else if c.RedisAddr != "" {
		logger.Warn(ctx, "redis unavailable, settings cache disabled", "addr", c.RedisAddr)
	}

	mailer, err := mail.New(mail.Options{
		Provider:     c.MailProvider,
		From:         c.MailFrom,
		SMTPAddr:     c.SMTPAddr,
		SMTPUser:     c.SMTPUser,
		SMTPPassword: c.SMTPPassword,
		ResendAPIKey: c.ResendAPIKey,
	}, logger)
	if err != nil {
		app.close()
		return nil, err
	}
	worker := notify.NewWorker(mailer, c.MailOps, logger)

	publisher, err := app.initEvents(worker)
	if err != nil {
		app.close()
		return nil, err
	}

	issuer := auth.NewIssuer([]byte(c.SecretKey), c.TokenValidity)
	settings := services.NewSettingsService(db, rm, cache.NewSettingsCache(app.redis, c.SettingsCacheTTL), logger)
	svc := httpapi.Services{
		Users:        services.NewUserService(db, rm, issuer, publisher, c, logger),
		Settings:     settings,
		Messages:     services.NewMessageService(db, rm, logger),
		Verification: services.NewVerificationService(db, rm, blobs, logger),
		Invitations:  services.NewInvitationService(db, rm, publisher, logger),
		Contacts:     services.NewContactService(db, rm, publisher, logger),
	}

	app.http = httpapi.NewServer(c.HTTPAddr, svc, issuer, httpapi.RateLimit{
		PerMinute: c.AuthRatePerMinute,
		Burst:     c.AuthRateBurst,
	}, logger)
	app.health = gs.NewHealthServer(c.GRPCHealthAddr, db, healthCheckInterval, logger)

	return app, nil
}

// initEvents uses RabbitMQ when configured and in-process dispatch otherwise.
func (app *App) initEvents(worker *notify.Worker) (events.Publisher, error) {
	if app.config.AMQPURL == "" {
		local := events.NewLocalPublisher()
		worker.Register(local)
		return local, nil
	}

	pub, err := events.NewAMQPPublisher(app.config.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("amqp publisher: %w", err)
	}
	app.closers = append(app.closers, pub.Close)

	app.consumer = events.NewAMQPConsumer(app.config.AMQPURL, app.logger)
	worker.Register(app.consumer)
	return pub, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until a signal arrives or one of the servers fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return app.http.Run(ctx) })
	g.Go(func() error { return app.health.Run(ctx) })
	if app.consumer != nil {
		g.Go(func() error { return app.consumer.Run(ctx) })
	}

	err := g.Wait()
	app.close()
	app.logger.Info(context.Background(), "App stopped")
	return err
}

func (app *App) close() {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		errs = append(errs, app.closers[i]())
	}
	app.closers = nil
	if err := errors.Join(errs...); err != nil {
		app.logger.Error(context.Background(), "close", "error", err)
	}
}
