package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/goredisstore"
	"github.com/alexedwards/scs/v2"
	"github.com/exaring/otelpgx"
	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/metinatakli/cinema-booking/internal/booking"
	"github.com/metinatakli/cinema-booking/internal/catalog"
	"github.com/metinatakli/cinema-booking/internal/domain"
	"github.com/metinatakli/cinema-booking/internal/inventory"
	"github.com/metinatakli/cinema-booking/internal/notify"
	"github.com/metinatakli/cinema-booking/internal/repository"
	appvalidator "github.com/metinatakli/cinema-booking/internal/validator"
	"github.com/metinatakli/cinema-booking/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	validator      *validator.Validate
	sessionManager *scs.SessionManager
	catalog        *catalog.Catalog
	inventory      *inventory.Inventory
	bookings       *booking.Orchestrator
	now            func() time.Time
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	validator *validator.Validate,
	sessionManager *scs.SessionManager,
	catalog *catalog.Catalog,
	inventory *inventory.Inventory,
	bookings *booking.Orchestrator) *Application {

	return &Application{
		config:         cfg,
		logger:         logger,
		validator:      validator,
		sessionManager: sessionManager,
		catalog:        catalog,
		inventory:      inventory,
		bookings:       bookings,
		now:            time.Now,
	}
}

func Run() error {
	// a missing .env file is fine; the environment and flags still apply
	_ = godotenv.Load()

	cfg, displayVersion, err := parseConfig(os.Args[1:], os.Getenv)
	if err != nil {
		return err
	}

	if displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		return nil
	}

	app := &Application{
		config: cfg,
		logger: slog.New(slog.NewTextHandler(os.Stdout, nil)),
		now:    time.Now,
	}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	store, closeStore, err := app.newBookingStore(ctx, redisClient)
	if err != nil {
		return err
	}
	defer closeStore()

	inv, err := inventory.Load(ctx, store, cfg.Store.Key, app.logger)
	if err != nil {
		return err
	}

	gateway, err := newReceiptGateway(cfg)
	if err != nil {
		return err
	}

	dialogs := booking.NewRegistry(cfg.DialogTTL)
	go dialogs.Run(ctx, cfg.DialogTTL/2)

	orchestrator, err := booking.NewOrchestrator(catalog.Default(), inv, gateway, dialogs, app.logger)
	if err != nil {
		return err
	}

	app.validator = appvalidator.NewValidator()
	app.sessionManager = NewSessionManager(redisClient, cfg.DialogTTL)
	app.catalog = catalog.Default()
	app.inventory = inv
	app.bookings = orchestrator

	app.logger.Info("booking service ready", "store", cfg.Store.Backend, "receipt_gateway", cfg.Receipt.Gateway)

	return app.run()
}

// NewSessionManager keeps sessions in Redis when a client is given and in process
// memory otherwise.
func NewSessionManager(client *redis.Client, idleTimeout time.Duration) *scs.SessionManager {
	sessionManager := scs.New()

	if client != nil {
		sessionManager.Store = goredisstore.New(client)
	}
	sessionManager.IdleTimeout = idleTimeout
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func (app *Application) newBookingStore(ctx context.Context, redisClient *redis.Client) (domain.BookingStore, func(), error) {
	noop := func() {}

	switch app.config.Store.Backend {
	case StoreMemory:
		app.logger.Warn("using in-memory booking store, bookings are lost on restart")
		return repository.NewMemoryBookingStore(), noop, nil

	case StoreRedis:
		if redisClient == nil {
			return nil, noop, errors.New("redis store requires -redis-url")
		}
		return repository.NewRedisBookingStore(redisClient), noop, nil

	case StorePostgres:
		err := repository.RunMigrations(app.config.DB.DSN)
		if err != nil {
			return nil, noop, err
		}

		db, err := NewDatabasePool(app.config)
		if err != nil {
			return nil, noop, err
		}
		return repository.NewPostgresBookingStore(db), db.Close, nil

	case StoreMySQL:
		db, err := NewMySQLDB(app.config)
		if err != nil {
			return nil, noop, err
		}

		store := repository.NewMySQLBookingStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, noop, err
		}
		return store, func() { db.Close() }, nil

	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", app.config.Store.Backend)
	}
}

func newReceiptGateway(cfg Config) (domain.ReceiptGateway, error) {
	switch cfg.Receipt.Gateway {
	case GatewayHTTP:
		return notify.NewHTTPGateway(cfg.Receipt.URL, cfg.Receipt.Timeout), nil
	case GatewaySMTP:
		mailer := notify.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)
		return notify.NewMailGateway(mailer), nil
	case GatewayAMQP:
		return notify.NewAMQPGateway(cfg.AMQP.URL, cfg.AMQP.Queue), nil
	default:
		return nil, fmt.Errorf("unknown receipt gateway %q", cfg.Receipt.Gateway)
	}
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	if err := redisotel.InstrumentTracing(rdb); err != nil {
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(rdb); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func NewMySQLDB(cfg Config) (*sql.DB, error) {
	mysqlCfg, err := mysql.ParseDSN(cfg.MySQL.DSN)
	if err != nil {
		return nil, err
	}

	mysqlCfg.ParseTime = true

	connector, err := mysql.NewConnector(mysqlCfg)
	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxOpenConns)
	db.SetConnMaxIdleTime(cfg.MySQL.MaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}
