package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	limiter "github.com/ulule/limiter/v3"

	"github.com/noah-isme/backend-acara/internal/ads"
	"github.com/noah-isme/backend-acara/internal/app"
	"github.com/noah-isme/backend-acara/internal/booking"
	"github.com/noah-isme/backend-acara/internal/catalog"
	"github.com/noah-isme/backend-acara/internal/common"
	"github.com/noah-isme/backend-acara/internal/config"
	"github.com/noah-isme/backend-acara/internal/coupon"
	"github.com/noah-isme/backend-acara/internal/customer"
	"github.com/noah-isme/backend-acara/internal/events"
	"github.com/noah-isme/backend-acara/internal/health"
	"github.com/noah-isme/backend-acara/internal/invoice"
	"github.com/noah-isme/backend-acara/internal/ledger"
	"github.com/noah-isme/backend-acara/internal/logistics"
	"github.com/noah-isme/backend-acara/internal/notify"
	"github.com/noah-isme/backend-acara/internal/obs"
	"github.com/noah-isme/backend-acara/internal/payment"
	"github.com/noah-isme/backend-acara/internal/pricing"
	"github.com/noah-isme/backend-acara/internal/ratelimit"
	"github.com/noah-isme/backend-acara/internal/report"
	"github.com/noah-isme/backend-acara/internal/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "acara")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	domainMetrics := obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", true)
	if tracingEnabled {
		sampling := envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0)
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "acara-api",
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			Exporter:      envOrDefault("OBS_TRACING_EXPORTER", "otlp"),
			SamplingRatio: sampling,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				ctx := context.Background()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisClient := initRedis(ctx, cfg, logger, metricsEnabled)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}()
	}

	var taskClient *asynq.Client
	if redisClient != nil && cfg.NotifyEmailEnabled {
		redisOpts, err := asynq.ParseRedisURI(cfg.RedisURL)
		if err != nil {
			logger.Error().Err(err).Msg("parse redis uri for task queue")
		} else {
			taskClient = asynq.NewClient(redisOpts)
			defer func() {
				if err := taskClient.Close(); err != nil {
					logger.Error().Err(err).Msg("close task client")
				}
			}()
		}
	}

	mailer := common.NopEmailSender{}

	bus := events.NewBus(0)
	bus.Notifiers = []events.Notifier{
		notify.Enqueuer{Client: taskClient, Enabled: taskClient != nil},
		notify.EmailNotifier{
			Mail:    mailer,
			Enabled: cfg.NotifyEmailEnabled && taskClient == nil,
			From:    cfg.NotifyEmailFrom,
		},
	}

	eventCatalog := catalog.NewDefault()
	engine := &pricing.Engine{
		Catalog:          eventCatalog,
		AdvertisementFee: cfg.AdvertisementFee,
	}
	customers := customer.NewStore()
	venue := logistics.NewBoard()
	bookingLedger := ledger.New(cfg.LedgerCapacity)

	bookingSvc := booking.NewService()
	bookingSvc.Customers = customers
	bookingSvc.Engine = engine
	bookingSvc.Coupons = coupon.NewDefaultRegistry()
	bookingSvc.Invoices = invoice.NewBuilder(cfg.CurrencyCode)
	bookingSvc.Ledger = bookingLedger
	bookingSvc.Payments = payment.NewStubProvider()
	bookingSvc.Venue = venue
	bookingSvc.Bus = bus
	bookingSvc.Metrics = domainMetrics
	bookingSvc.Log = logger
	bookingSvc.LoyaltyPoints = cfg.LoyaltyPoints

	catalogHandler := &catalog.Handler{Catalog: eventCatalog}
	customerHandler := &customer.Handler{Store: customers, Bus: bus}
	bookingHandler := &booking.Handler{Svc: bookingSvc}
	venueHandler := &logistics.Handler{Board: venue}
	flyerHandler := &ads.Handler{Bookings: bookingSvc, Customers: customers, Renderer: ads.NewRenderer()}
	reportHandler := &report.Handler{Svc: &report.Service{
		A:   bookingLedger,
		R:   redisClient,
		TTL: cfg.ReportCacheTTL,
	}}

	idem := common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL}

	var rateLimitMW func(http.Handler) http.Handler
	if cfg.RateLimitEnabled {
		var store limiter.Store
		if redisClient != nil {
			store, err = app.NewLimiterStore(redisClient)
			if err != nil {
				logger.Error().Err(err).Msg("initialise redis limiter store")
				store = nil
			}
		}
		l, err := ratelimit.New(cfg.RateLimit, store)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse rate limit")
		}
		rateLimitMW = ratelimit.Middleware{
			L:       l,
			OnError: func(err error) { logger.Error().Err(err).Msg("rate limiter") },
		}.Handler
	}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(security.Headers{Enable: envBool("SECURE_HEADERS_ENABLED", true)}.Middleware)
	r.Use(security.BodyLimit{Max: int64(envInt("SECURE_MAX_BODY_BYTES", 1<<20))}.Middleware)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	if rateLimitMW != nil {
		r.Use(rateLimitMW)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	healthHandler := health.Handler{
		RedisTimeout: envDurationMillis("HEALTH_READY_REDIS_TIMEOUT_MS", 300),
	}
	if redisClient != nil {
		healthHandler.Checker = readinessChecker{redis: redisClient}
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Get("/packages", catalogHandler.Packages)
		v.Get("/addons", catalogHandler.AddOns)

		v.Route("/customers", func(c chi.Router) {
			c.Post("/", customerHandler.Register)
			c.Get("/{customerID}", customerHandler.Profile)
			c.Post("/{customerID}/membership", customerHandler.OptIn)
		})

		v.Route("/bookings", func(b chi.Router) {
			b.Get("/{bookingID}", bookingHandler.Get)
			b.Get("/{bookingID}/flyer", flyerHandler.Flyer)
			b.Group(func(g chi.Router) {
				g.Use(idem.Middleware)
				g.Post("/", bookingHandler.Create)
				g.Post("/{bookingID}/package", bookingHandler.SelectPackage)
				g.Post("/{bookingID}/addon", bookingHandler.SelectAddOn)
				g.Post("/{bookingID}/advertisement", bookingHandler.DecideAdvertisement)
				g.Delete("/{bookingID}", bookingHandler.Abandon)
			})
		})

		v.Get("/checkout/quote", bookingHandler.Quote)
		v.With(idem.Middleware).Post("/checkout", bookingHandler.Checkout)

		v.Route("/venue", func(ve chi.Router) {
			ve.Get("/dates", venueHandler.Reserved)
			ve.Get("/availability", venueHandler.Availability)
		})

		v.Route("/admin", func(admin chi.Router) {
			admin.Get("/reports/summary", reportHandler.Summary)
		})
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	case <-stopCtx.Done():
		logger.Info().Msg("shutting down")
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown")
		}
	}
}

func initRedis(ctx context.Context, cfg *config.Config, logger zerolog.Logger, metricsEnabled bool) *redis.Client {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		logger.Info().Msg("redis not configured; caching, idempotency and task queue disabled")
		return nil
	}
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if metricsEnabled {
		if err := redisotel.InstrumentMetrics(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis metrics")
		}
	}
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}
	return redisClient
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

type readinessChecker struct {
	redis *redis.Client
}

func (c readinessChecker) PingRedis(ctx context.Context, timeout time.Duration) error {
	if c.redis == nil {
		return errors.New("redis not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.redis.Ping(ctx).Err()
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	return common.AtoiDefault(strings.TrimSpace(os.Getenv(key)), fallback)
}

func envDurationMillis(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Millisecond
}
