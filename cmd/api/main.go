package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	limiterhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/backend-eubiosis/db"
	"github.com/noah-isme/backend-eubiosis/internal/catalog"
	"github.com/noah-isme/backend-eubiosis/internal/checkout"
	"github.com/noah-isme/backend-eubiosis/internal/common"
	"github.com/noah-isme/backend-eubiosis/internal/config"
	"github.com/noah-isme/backend-eubiosis/internal/events"
	"github.com/noah-isme/backend-eubiosis/internal/health"
	"github.com/noah-isme/backend-eubiosis/internal/lock"
	"github.com/noah-isme/backend-eubiosis/internal/obs"
	"github.com/noah-isme/backend-eubiosis/internal/order"
	"github.com/noah-isme/backend-eubiosis/internal/payment"
	"github.com/noah-isme/backend-eubiosis/internal/ratelimit"
	"github.com/noah-isme/backend-eubiosis/internal/resilience"
	"github.com/noah-isme/backend-eubiosis/internal/security"
	"github.com/noah-isme/backend-eubiosis/internal/subscribe"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "eubiosis")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", true)
	if tracingEnabled {
		sampling := envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0)
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "eubiosis-api",
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
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}

	if envBool("DB_AUTO_MIGRATE", true) {
		// replicas race at deploy time; only one runs the migration
		migrateLock := lock.Locker{R: redisClient}
		err := migrateLock.WithLock(ctx, "eubiosis:migrate", 2*time.Minute, func(context.Context) error {
			return db.Migrate(cfg.DatabaseURL)
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("apply migrations")
		}
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse database config")
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "eubiosis-api"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}

	mailer := common.NopEmailSender{}

	bus := &events.Bus{
		Store: events.PGStore{Pool: pool},
		Notifiers: []events.Notifier{
			events.EmailNotifier{
				Mail:    mailer,
				Enabled: cfg.NotifyEmailEnabled,
				From:    cfg.NotifyEmailFrom,
			},
		},
	}

	catalogHandler := &catalog.Handler{}

	var provider payment.Provider
	switch cfg.PaymentProvider {
	case "redirect", "":
		provider = payment.Redirect{SuccessPath: cfg.PaymentSuccessPath}
	default:
		provider = payment.Redirect{SuccessPath: cfg.PaymentSuccessPath}
	}

	checkoutHandler := &checkout.Handler{Svc: &checkout.Service{
		Store:    order.PGStore{Pool: pool},
		Provider: provider,
		Events:   bus,
		Validate: validator.New(),
	}}

	orderHandler := &order.Handler{Store: order.PGStore{Pool: pool}}

	var listProvider subscribe.Provider
	if cfg.SubscribeProviderURL != "" {
		listProvider = &subscribe.HTTPProvider{
			URL:    cfg.SubscribeProviderURL,
			Client: subscribe.HTTPClient(cfg.SubscribeTimeout),
			Breaker: resilience.NewBreaker(5, 0.5, 30*time.Second).
				WithTarget("subscribe-provider").
				WithLogger(logger),
		}
	} else {
		logger.Warn().Msg("SUBSCRIBE_PROVIDER_URL not set, email captures are accepted but dropped")
	}
	subscribeHandler := &subscribe.Handler{Svc: &subscribe.Service{
		Provider: listProvider,
		Redis:    redisClient,
		Events:   bus,
		Log:      logger,
		DedupTTL: time.Minute,
	}}
	subscribeLimit := ratelimit.Handler{
		Limiter: ratelimit.Limiter{Client: redisClient, Prefix: "ratelimit:subscribe:"},
		Config:  ratelimit.PerClient(cfg.SubscribeRateMax, cfg.SubscribeRateWin),
		OnError: func(err error) {
			logger.Warn().Err(err).Msg("subscribe rate limiter unavailable")
		},
	}

	idem := common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(security.Headers{
		Enable:                envBool("SECURE_HEADERS_ENABLED", true),
		EnableHSTS:            envBool("SECURE_HSTS_ENABLED", false),
		HSTSMaxAge:            envInt("SECURE_HSTS_MAX_AGE", 31536000),
		HSTSIncludeSubdomains: envBool("SECURE_HSTS_INCLUDE_SUBDOMAINS", false),
	}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if rate, err := limiter.NewRateFromFormatted(cfg.GlobalRateLimit); err == nil {
		store, storeErr := limiterredis.NewStoreWithOptions(redisClient, limiter.StoreOptions{
			Prefix: "limiter:eubiosis",
		})
		if storeErr != nil {
			logger.Error().Err(storeErr).Msg("initialise rate limit store")
		} else {
			r.Use(limiterhttp.NewMiddleware(limiter.New(store, rate, limiter.WithTrustForwardHeader(true))).Handler)
		}
	} else {
		logger.Error().Err(err).Str("rate", cfg.GlobalRateLimit).Msg("parse global rate limit")
	}

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	pprofEnabled := envBool("OBS_ENABLE_PPROF", true)
	if pprofEnabled {
		user := envOrDefault("SECURE_PPROF_BASIC_AUTH_USER", "")
		pass := envOrDefault("SECURE_PPROF_BASIC_AUTH_PASS", "")
		r.Mount("/debug/pprof", protectPprof(newPprofMux(), user, pass))
	}

	healthHandler := health.Handler{
		Checker:      health.Deps{Pool: pool, Redis: redisClient},
		DBTimeout:    envDurationMillis("HEALTH_READY_DB_TIMEOUT_MS", 500),
		RedisTimeout: envDurationMillis("HEALTH_READY_REDIS_TIMEOUT_MS", 300),
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	bodyLimit := security.BodyLimit{Max: int64(envInt("SECURE_MAX_BODY_BYTES", 64<<10))}

	r.Route("/api/v1", func(v chi.Router) {
		v.Use(bodyLimit.Middleware)
		v.Get("/products", catalogHandler.List)
		v.Get("/products/{size}", catalogHandler.Get)
		v.Get("/quote", checkoutHandler.Quote)

		v.With(idem.Middleware).Post("/orders", checkoutHandler.Create)
		v.Get("/orders/{orderId}", orderHandler.Get)

		v.With(subscribeLimit.Middleware).Post("/subscribe", subscribeHandler.Create)
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-stopCtx.Done()
		health.SetReady(false)
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown server")
		}
	}()

	logger.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
	logger.Info().Msg("server stopped")
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
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
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationMillis(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Millisecond
}

func newPprofMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)
	mux.Handle("/allocs", pprof.Handler("allocs"))
	mux.Handle("/block", pprof.Handler("block"))
	mux.Handle("/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/heap", pprof.Handler("heap"))
	mux.Handle("/mutex", pprof.Handler("mutex"))
	mux.Handle("/threadcreate", pprof.Handler("threadcreate"))
	return mux
}

func protectPprof(handler http.Handler, user, pass string) http.Handler {
	user = strings.TrimSpace(user)
	pass = strings.TrimSpace(pass)
	if user == "" {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 || subtle.ConstantTimeCompare([]byte(p), []byte(pass)) != 1 {
			w.Header().Set("WWW-Authenticate", "Basic realm=restricted")
			http.Error(w, "unauthorised", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
