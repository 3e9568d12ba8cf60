package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/oklog/run"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	httpKit "github.com/superj80820/url-shortener/kit/http"
	httpMiddlewareKit "github.com/superj80820/url-shortener/kit/http/middleware"
	loggerKit "github.com/superj80820/url-shortener/kit/logger"
	traceKit "github.com/superj80820/url-shortener/kit/trace"
	utilKit "github.com/superj80820/url-shortener/kit/util"
	deliveryHTTP "github.com/superj80820/url-shortener/urlshortener/delivery/http"
	redisCacheRepo "github.com/superj80820/url-shortener/urlshortener/repository/cache/redis"
	linkOrmRepo "github.com/superj80820/url-shortener/urlshortener/repository/link/orm"
	healthUseCase "github.com/superj80820/url-shortener/urlshortener/usecase/health"
	linkUseCase "github.com/superj80820/url-shortener/urlshortener/usecase/link"
	"go.opentelemetry.io/otel/trace"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the http server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupNode(cfg); err != nil {
		return err
	}
	logger, err := createLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	singletonDB, err := createDB(cfg)
	if err != nil {
		return errors.Wrap(err, "connect database failed")
	}
	defer singletonDB.Close()
	if cfg.AutoMigrate {
		if err := linkOrmRepo.Migrate(singletonDB); err != nil {
			return err
		}
	}
	singletonCache, err := createCache(cfg)
	if err != nil {
		return errors.Wrap(err, "connect redis failed")
	}
	defer singletonCache.Close()

	var tracer trace.Tracer
	if cfg.EnableTracer {
		var shutdown traceKit.ShutdownFunc
		tracer, shutdown, err = traceKit.CreateTracer(context.Background(), SERVICE_NAME)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				logger.Error("shutdown tracer failed", loggerKit.Error(err))
			}
		}()
	} else {
		tracer = traceKit.CreateNoOpTracer()
	}

	linkRepo := linkOrmRepo.CreateLinkRepo(singletonDB)
	linkCacheRepo := redisCacheRepo.CreateLinkCacheRepo(singletonCache)
	linkService, err := linkUseCase.CreateLinkUseCase(
		linkRepo,
		linkCacheRepo,
		cfg.BaseURL,
		logger,
		linkUseCase.WithCodeLength(cfg.CodeLength),
	)
	if err != nil {
		return err
	}
	healthService, err := healthUseCase.CreateHealthUseCase(linkRepo, linkCacheRepo, cfg.HealthTimeout, logger)
	if err != nil {
		return err
	}

	rateLimit := utilKit.CreateCacheRateLimit(singletonCache, cfg.RateLimitMaxRequests, cfg.RateLimitWindowSeconds)

	var middlewares []endpoint.Middleware
	if cfg.EnableMetric {
		middlewares = append(middlewares, httpMiddlewareKit.CreateMetrics(SYSTEM_NAME, SERVICE_NAME))
	}
	routerOptions := []deliveryHTTP.RouterOption{
		deliveryHTTP.WithServerOptions(
			httptransport.ServerBefore(httpKit.CustomBeforeCtx(tracer, httpKit.TrustForwardedHeaders(cfg.TrustForwardedHeaders))),
			httptransport.ServerAfter(httpKit.CustomAfterCtx),
			httptransport.ServerErrorEncoder(httpKit.EncodeHTTPErrorResponse()),
			httptransport.ServerFinalizer(httpMiddlewareKit.CreateLoggingFinalizer(logger), httpKit.CustomFinalizer),
		),
		deliveryHTTP.WithShortenMiddleware(
			httpMiddlewareKit.CreateRateLimitMiddlewareWithSpecKey(true, false, rateLimit.Pass, httpMiddlewareKit.FailOpen(logger)),
		),
	}
	for _, middleware := range middlewares {
		routerOptions = append(routerOptions, deliveryHTTP.WithMiddleware(middleware))
	}

	r := mux.NewRouter()
	if cfg.EnableMetric {
		r.Handle("/metrics", promhttp.Handler())
	}
	deliveryHTTP.RegisterRoutes(r, linkService, healthService, routerOptions...)

	httpListener, err := net.Listen("tcp", cfg.AppAddress())
	if err != nil {
		return errors.Wrap(err, "listen failed")
	}
	httpServer := &http.Server{
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g := new(run.Group)
	{
		g.Add(func() error {
			logger.Info("http server start", loggerKit.String("address", cfg.AppAddress()))
			if err := httpServer.Serve(httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}, func(err error) {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(ctx); err != nil {
				logger.Error("http server shutdown failed", loggerKit.Error(err))
			}
		})
	}
	{
		g.Add(run.SignalHandler(context.Background(), os.Interrupt, syscall.SIGTERM))
	}

	err = g.Run()
	var signalErr run.SignalError
	if errors.As(err, &signalErr) {
		logger.Info("server stopped", loggerKit.String("signal", fmt.Sprint(signalErr.Signal)))
		return nil
	}
	return err
}
