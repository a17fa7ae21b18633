package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validator "github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	limiter "github.com/ulule/limiter/v3"

	"github.com/tmm-digital/quote-api/internal/account"
	"github.com/tmm-digital/quote-api/internal/app"
	"github.com/tmm-digital/quote-api/internal/auth"
	"github.com/tmm-digital/quote-api/internal/cart"
	"github.com/tmm-digital/quote-api/internal/catalog"
	"github.com/tmm-digital/quote-api/internal/common"
	"github.com/tmm-digital/quote-api/internal/config"
	"github.com/tmm-digital/quote-api/internal/export"
	"github.com/tmm-digital/quote-api/internal/health"
	"github.com/tmm-digital/quote-api/internal/lock"
	"github.com/tmm-digital/quote-api/internal/obs"
	"github.com/tmm-digital/quote-api/internal/pricing"
	"github.com/tmm-digital/quote-api/internal/promo"
	"github.com/tmm-digital/quote-api/internal/quote"
	"github.com/tmm-digital/quote-api/internal/ratelimit"
	"github.com/tmm-digital/quote-api/internal/repo"
	"github.com/tmm-digital/quote-api/internal/requirements"
	"github.com/tmm-digital/quote-api/internal/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "quoteapi")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", true)
	if tracingEnabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "quote-api",
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			Exporter:      envOrDefault("OBS_TRACING_EXPORTER", "otlp"),
			SamplingRatio: 1,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := app.InitDatabase(ctx, cfg, "quote-api")
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise database")
	}
	defer pool.Close()

	if dir := envOrDefault("MIGRATIONS_DIR", "migrations"); dir != "" {
		if err := app.RunMigrations(cfg.DatabaseURL, dir); err != nil {
			logger.Fatal().Err(err).Msg("run migrations")
		}
	}

	redisClient, err := app.InitRedis(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise redis")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()

	asynqOpt, err := app.AsynqRedisOpt(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse asynq redis options")
	}
	taskClient := asynq.NewClient(asynqOpt)
	defer func() {
		if err := taskClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close task client")
		}
	}()

	validate := validator.New()

	users := repo.Users{DB: pool}
	quoteRows := repo.Quotes{DB: pool}

	accountSvc := &account.Service{Users: users}

	authSvc, err := auth.NewService(auth.Config{
		Users:          users,
		Secret:         cfg.JWTSecret,
		InviteKey:      cfg.InviteKey,
		AccessTokenTTL: cfg.AccessTokenTTL,
		TrialPeriod:    cfg.TrialPeriod,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise auth service")
	}
	authHandler := auth.NewHandler(authSvc, accountSvc, validate)
	authMiddleware := auth.Middleware{Service: authSvc}

	tables := pricing.DefaultTables()
	catalogSvc, err := catalog.NewService(catalog.ServiceConfig{
		Registry: catalog.DefaultRegistry(),
		Cache:    catalog.NewCache(redisClient, cfg.CatalogCacheTTL),
		Tables:   tables,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise catalog service")
	}
	catalogHandler := catalog.NewHandler(catalogSvc)

	cartSvc := &cart.Service{
		Store:   &cart.Store{R: redisClient, TTL: cfg.CartTTL},
		Catalog: catalogSvc.Registry,
		Engine:  pricing.NewEngine(tables),
		Promos:  promo.NewEngine(promo.DefaultRegistry()),
		TaxBps:  cfg.TaxRateBPS,
	}
	cartHandler := cart.NewHandler(cartSvc, validate, accountSvc)

	quoteSvc := &quote.Service{
		Quotes:       quoteRows,
		Carts:        cartSvc,
		Accounts:     accountSvc,
		Locker:       lock.Locker{R: redisClient, RetryBackoff: cfg.LockRetryBackoff},
		R:            redisClient,
		NumberPrefix: cfg.QuoteNumberPrefix,
		Currency:     cfg.CurrencyCode,
		ShareBaseURL: cfg.ShareLinkBaseURL,
	}
	quoteHandler := quote.NewHandler(quoteSvc, validate)

	exportSvc := &export.Service{
		Quotes:   quoteRows,
		Accounts: accountSvc,
		Tasks:    taskClient,
		R:        redisClient,
		TTL:      cfg.ExportArtifactTTL,
	}
	exportHandler := export.NewHandler(exportSvc)

	requirementsSvc := &requirements.Service{
		R:       redisClient,
		Catalog: catalogSvc.Registry,
		TTL:     cfg.RequirementsTTL,
	}
	requirementsHandler := requirements.NewHandler(requirementsSvc, validate)

	limiterStore, err := ratelimit.NewStore(redisClient, "ratelimit")
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise limiter store")
	}
	promoLimiter, err := newLimiter(limiterStore, cfg.PromoRateLimit)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse promo rate limit")
	}
	authLimiter, err := newLimiter(limiterStore, cfg.AuthRateLimit)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse auth rate limit")
	}
	limitPromo := ratelimit.Handler{
		Limiter: promoLimiter,
		Key:     ratelimit.ByClientIP("promo"),
		OnError: func(err error) { logger.Error().Err(err).Msg("promo rate limiter") },
	}
	limitAuth := ratelimit.Handler{
		Limiter: authLimiter,
		Key:     ratelimit.ByClientIP("auth"),
		OnError: func(err error) { logger.Error().Err(err).Msg("auth rate limiter") },
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
	r.Use(security.Headers{Enable: true, EnableHSTS: cfg.AppEnv == "production"}.Middleware)
	r.Use(security.BodyLimit{Max: cfg.MaxBodyBytes}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	healthHandler := health.Handler{Checker: health.Deps{Pool: pool, Redis: redisClient}}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Use(authMiddleware.Authenticate)

		v.Get("/catalog", catalogHandler.Categories)
		v.Get("/catalog/{itemID}", catalogHandler.Item)

		v.Route("/auth", func(a chi.Router) {
			a.With(limitAuth.Middleware).Post("/register", authHandler.Register)
			a.With(limitAuth.Middleware).Post("/login", authHandler.Login)
			a.With(authMiddleware.RequireAuth).Get("/me", authHandler.Me)
		})

		v.Route("/carts", func(c chi.Router) {
			c.Post("/", cartHandler.Create)
			c.Get("/{id}", cartHandler.Get)
			c.Get("/{id}/totals", cartHandler.Totals)
			c.Post("/{id}/items", cartHandler.AddItem)
			c.Patch("/{id}/items/{itemID}", cartHandler.UpdateItem)
			c.Delete("/{id}/items/{itemID}", cartHandler.RemoveItem)
			c.Put("/{id}/selections/{family}", cartHandler.SetSelection)
			c.Delete("/{id}/selections/{family}", cartHandler.ClearSelection)
			c.With(limitPromo.Middleware).Post("/{id}/promo", cartHandler.ApplyPromo)
			c.Delete("/{id}/promo", cartHandler.RemovePromo)
		})

		v.Route("/quotes", func(q chi.Router) {
			q.With(idem.Middleware).Post("/", quoteHandler.Finalize)
			q.Get("/{id}", quoteHandler.Shared)
			q.Get("/{id}/share", quoteHandler.Share)
			q.Group(func(g chi.Router) {
				g.Use(authMiddleware.RequireAuth)
				g.Get("/", quoteHandler.History)
				g.Post("/{id}/submit", quoteHandler.Submit)
				g.Post("/{id}/export", exportHandler.Request)
				g.Get("/{id}/export", exportHandler.Artifact)
			})
		})

		v.Post("/requirements", requirementsHandler.Submit)
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-serverCtx.Done():
		health.SetReady(false)
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown")
		}
		logger.Info().Msg("server stopped")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	}
}

func newLimiter(store limiter.Store, formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	return limiter.New(store, rate), nil
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
