package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mucevher-backend/config"
	"mucevher-backend/internal/delivery/http/middleware"
	v1 "mucevher-backend/internal/delivery/http/v1"
	"mucevher-backend/internal/domain"
	"mucevher-backend/internal/infrastructure/analytics"
	"mucevher-backend/internal/infrastructure/cache"
	"mucevher-backend/internal/infrastructure/facebook"
	"mucevher-backend/internal/infrastructure/kafka"
	"mucevher-backend/internal/infrastructure/state"
	catalogrepo "mucevher-backend/internal/repository/catalog"
	couponrepo "mucevher-backend/internal/repository/coupon"
	"mucevher-backend/internal/repository/pgstate"
	"mucevher-backend/internal/usecase"
	"mucevher-backend/pkg/logger"
	"mucevher-backend/pkg/metrics"
	"mucevher-backend/pkg/storage"
	"mucevher-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.LoadConfig()

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	serverMetrics := metrics.NewServerMetrics("api")

	// Initialize Cache (In-Memory)
	// Default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)
	memState := cache.NewMemoryStateStore(10 * time.Minute)

	// --- Catalog Source ---
	var provider domain.CatalogProvider
	switch cfg.CatalogSource {
	case config.CatalogSourceR2:
		r2Storage, err := storage.NewR2Storage(
			rootCtx,
			cfg.R2AccountID,
			cfg.R2AccessKeyID,
			cfg.R2AccessKeySecret,
			cfg.R2BucketName,
			cfg.R2FetchTimeout,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
		}
		provider = catalogrepo.NewObjectProvider(r2Storage, cfg.R2CatalogKey)
	default:
		provider = catalogrepo.NewFileProvider(cfg.CatalogPath)
	}

	catalogUC := usecase.NewCatalogUsecase(provider, memCache, cfg, serverMetrics)
	if err := catalogUC.Reload(rootCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load catalog")
	}

	// --- Client State (PostgreSQL with in-memory fallback) ---
	var stateStore domain.StateStore = memState
	var db v1.Pinger
	if cfg.DBUrl != "" {
		pgxPool, err := pgstate.NewPgxPool(rootCtx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer pgxPool.Close()
		log.Info().Msg("Successfully connected to PostgreSQL via pgx")

		stateRepo := pgstate.NewStateRepository(pgxPool)
		if err := stateRepo.EnsureSchema(rootCtx); err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare client state table")
		}
		go stateRepo.RunJanitor(rootCtx, 15*time.Minute)

		stateStore = state.NewFallbackStore(stateRepo, memState, "postgres", serverMetrics)
		db = pgxPool
	} else {
		log.Warn().Msg("DB_DSN not set, client state is kept in memory only")
	}

	// --- Analytics ---
	var sinks []domain.AnalyticsSink
	if capi := facebook.NewCAPIClient(cfg.FBPixelID, cfg.FBAccessToken, cfg.FBAPIVersion); capi != nil {
		sinks = append(sinks, capi)
	}
	kafkaSink, err := kafka.NewEventSink(kafka.NewClient(cfg.KafkaBrokers), cfg.KafkaAnalyticsTopic)
	if err == nil {
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
	} else {
		log.Info().Err(err).Msg("Kafka analytics sink disabled")
	}
	dispatcher := analytics.NewDispatcher(cfg.AnalyticsBuffer, serverMetrics, sinks...)

	// --- Modules Initialization ---
	prefsUC := usecase.NewPreferencesUsecase(stateStore, cfg)
	browseUC := usecase.NewBrowseUsecase(catalogUC, prefsUC, dispatcher, nil)
	searchUC := usecase.NewSearchUsecase(catalogUC, prefsUC, dispatcher, nil)
	cart := usecase.NewCartLedger(catalogUC, stateStore, memCache, dispatcher, nil, cfg, serverMetrics)
	coupons := usecase.NewCouponLedger(couponrepo.NewDefaultRepository(), stateStore, dispatcher, nil, cfg, serverMetrics)
	pricing := usecase.NewPricingPolicy(cfg)
	summaryUC := usecase.NewSummaryUsecase(cart, coupons, pricing)
	inquiryUC := usecase.NewInquiryUsecase(summaryUC, cfg)

	// Set up Router
	mux := http.NewServeMux()
	v1.RegisterRoutes(mux, v1.Handlers{
		Catalog:     v1.NewCatalogHandler(catalogUC, browseUC),
		Search:      v1.NewSearchHandler(searchUC, prefsUC),
		Cart:        v1.NewCartHandler(catalogUC, cart, summaryUC, inquiryUC),
		Coupon:      v1.NewCouponHandler(coupons, cart, summaryUC),
		Preferences: v1.NewPreferencesHandler(catalogUC, prefsUC, browseUC),
		Config:      v1.NewConfigHandler(memCache, catalogUC, pricing, cfg.EnumsCacheTTL),
		Health:      v1.NewHealthHandler(catalogUC, db),
	})
	mux.Handle("GET /metrics", serverMetrics.Handler())

	// Initialize Rate Limiter with lifecycle management
	// cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		rootCtx,
		rate.Limit(cfg.RateLimitRPS),
		cfg.RateLimitBurst,
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
	)

	signer := utils.NewSessionSigner(cfg.SessionSecret, cfg.SessionCookieTTL)
	secureCookie := cfg.Env == "production"

	// Outermost last: gzip, rate limit, logger, metrics, CORS, session, locale
	handler := middleware.LocaleMiddleware(mux)
	handler = middleware.NewSessionMiddleware(signer, secureCookie)(handler)
	handler = middleware.NewCORSMiddleware(cfg)(handler)
	handler = middleware.NewMetricsMiddleware(serverMetrics, mux)(handler)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart("mucevher-api", "1.0.0", cfg.Port)

	// SIGHUP reloads the catalog; a failed reload keeps serving the old one
	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	go func() {
		for range reload {
			if err := catalogUC.Reload(rootCtx); err != nil {
				log.Error().Err(err).Msg("Catalog reload failed")
			}
		}
	}()

	// Wait for interrupt signal via channel
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")
	signal.Stop(reload)

	// Stop rate limiter cleanup and the state janitor
	rateLimiter.Shutdown()
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := dispatcher.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("Analytics buffer not fully drained")
	}

	logger.ServiceStop("mucevher-api")
}
