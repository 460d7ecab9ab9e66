package app

import (
	"context"
	"errors"
	"flag"
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
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/ticket-inventory-system/internal/domain"
	"github.com/metinatakli/ticket-inventory-system/internal/mailer"
	"github.com/metinatakli/ticket-inventory-system/internal/payment"
	"github.com/metinatakli/ticket-inventory-system/internal/registry"
	"github.com/metinatakli/ticket-inventory-system/internal/repository"
	appvalidator "github.com/metinatakli/ticket-inventory-system/internal/validator"
	"github.com/metinatakli/ticket-inventory-system/internal/vcs"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
)

var (
	version = vcs.Version()
)

type Application struct {
	config         Config
	logger         *slog.Logger
	db             *pgxpool.Pool
	redis          redis.UniversalClient
	validator      *validator.Validate
	mailer         mailer.Mailer
	sessionManager *scs.SessionManager
	eventVerifier  payment.EventVerifier

	registry     *registry.Registry
	screenRepo   domain.ScreenRepository
	showtimeRepo domain.ShowtimeRepository
	seatRepo     domain.SeatRepository
	holdRepo     domain.HoldRepository
	bookingRepo  domain.BookingRepository
	syncRepo     domain.ChannelSyncRepository
}

type Config struct {
	Port             int
	Env              string
	OtelCollectorUrl string
	SweepInterval    time.Duration
	DB               DBConfig
	Redis            RedisConfig
	SMTP             SMTPConfig
	Stripe           StripeConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

type StripeConfig struct {
	WebhookSecret string
}

func ParseFlags() Config {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 3000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")
	flag.DurationVar(&cfg.SweepInterval, "sweep-interval", time.Minute, "Expired hold sweep interval")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.SMTP.Host, "smtp-host", "sandbox.smtp.mailtrap.io", "SMTP host")
	flag.IntVar(&cfg.SMTP.Port, "smtp-port", 2525, "SMTP port")
	flag.StringVar(&cfg.SMTP.Username, "smtp-username", "", "SMTP username")
	flag.StringVar(&cfg.SMTP.Password, "smtp-password", "", "SMTP password")
	flag.StringVar(&cfg.SMTP.Sender, "smtp-sender", "TicketGrid <no-reply@ticketgrid.metinatakli.net>", "SMTP sender")

	flag.StringVar(&cfg.Stripe.WebhookSecret, "stripe-webhook-secret", "", "Stripe webhook secret")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	return cfg
}

func New(cfg Config) (*Application, error) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	app := NewApp(
		cfg,
		logger,
		db,
		redisClient,
		mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender),
		NewSessionManager(redisClient),
		payment.NewStripeEventVerifier(cfg.Stripe.WebhookSecret),
	)

	return app, nil
}

// NewApp wires an Application from explicit collaborators. The integration
// suite uses it to substitute the mailer and the payment event verifier while
// keeping the real storage stack.
func NewApp(
	cfg Config,
	logger *slog.Logger,
	db *pgxpool.Pool,
	redisClient redis.UniversalClient,
	appMailer mailer.Mailer,
	sessionManager *scs.SessionManager,
	eventVerifier payment.EventVerifier) *Application {

	seatRepo := repository.NewPostgresSeatRepository(db)

	return &Application{
		config:         cfg,
		logger:         logger,
		db:             db,
		redis:          redisClient,
		validator:      appvalidator.NewValidator(),
		mailer:         appMailer,
		sessionManager: sessionManager,
		eventVerifier:  eventVerifier,
		registry:       registry.NewRegistry(seatRepo, logger),
		screenRepo:     repository.NewPostgresScreenRepository(db),
		showtimeRepo:   repository.NewPostgresShowtimeRepository(db),
		seatRepo:       seatRepo,
		holdRepo:       repository.NewPostgresHoldRepository(db),
		bookingRepo:    repository.NewPostgresBookingRepository(db),
		syncRepo:       repository.NewPostgresChannelSyncRepository(db),
	}
}

func (app *Application) Close() {
	if app.redis != nil {
		app.redis.Close()
	}
	if app.db != nil {
		app.db.Close()
	}
}

func NewSessionManager(client *redis.Client) *scs.SessionManager {
	sessionManager := scs.New()

	sessionManager.Store = goredisstore.New(client)
	sessionManager.IdleTimeout = 20 * time.Minute
	sessionManager.Cookie.Name = "session_id"

	return sessionManager
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

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

func (app *Application) Run() error {
	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	go app.StartSweeper(sweeperCtx)

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		stopSweeper()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownTelemetry(ctx)

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err = srv.ListenAndServe()
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

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.Logger)
	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("ticket-inventory-api", otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)
	r.Use(app.sessionManager.LoadAndSave)
	r.Use(app.ensureGuestSession)
	r.Use(app.withHolderID)
	r.Use(app.contextSetLogger)

	r.Get("/healthcheck", app.HealthcheckHandler)

	r.Route("/screens", func(r chi.Router) {
		r.Post("/", app.CreateScreenHandler)
		r.Get("/{screenId}/seats", app.ListScreenSeatsHandler)
	})

	r.Route("/showtimes", func(r chi.Router) {
		r.Post("/", app.CreateShowtimeHandler)
		r.Get("/{showtimeId}", app.GetShowtimeHandler)
		r.Delete("/{showtimeId}", app.DeactivateShowtimeHandler)
		r.Get("/{showtimeId}/availability", app.GetRealTimeAvailabilityHandler)
		r.Post("/{showtimeId}/holds", app.HoldSeatsHandler)
		r.Delete("/{showtimeId}/holds", app.ReleaseHoldsHandler)
		r.Post("/{showtimeId}/sync", app.ApplyExternalSeatUpdateHandler)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", app.CreateBookingHandler)
		r.Get("/{reference}", app.GetBookingHandler)
		r.Post("/{bookingId}/cancel", app.CancelBookingHandler)
		r.Post("/{bookingId}/check-in", app.CheckInHandler)
	})

	r.Post("/webhook", app.SettlementWebhookHandler)

	return r
}
