package http

import (
	"net/http"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/superj80820/url-shortener/domain"
)

type routerConfig struct {
	middlewares        []endpoint.Middleware
	shortenMiddlewares []endpoint.Middleware
	serverOptions      []httptransport.ServerOption
}

type RouterOption func(*routerConfig)

func WithMiddleware(middleware endpoint.Middleware) RouterOption {
	return func(r *routerConfig) {
		r.middlewares = append(r.middlewares, middleware)
	}
}

// WithShortenMiddleware wraps only the shorten endpoint, inside the common
// middlewares.
func WithShortenMiddleware(middleware endpoint.Middleware) RouterOption {
	return func(r *routerConfig) {
		r.shortenMiddlewares = append(r.shortenMiddlewares, middleware)
	}
}

func WithServerOptions(options ...httptransport.ServerOption) RouterOption {
	return func(r *routerConfig) {
		r.serverOptions = append(r.serverOptions, options...)
	}
}

func chain(middlewares []endpoint.Middleware, e endpoint.Endpoint) endpoint.Endpoint {
	for i := len(middlewares) - 1; i >= 0; i-- {
		e = middlewares[i](e)
	}
	return e
}

// RegisterRoutes mounts the service endpoints on r. Fixed paths are added
// before the code catch-all.
func RegisterRoutes(r *mux.Router, linkUseCase domain.LinkUseCase, healthUseCase domain.HealthUseCase, options ...RouterOption) {
	var config routerConfig
	for _, option := range options {
		option(&config)
	}

	shortenMiddlewares := append(append([]endpoint.Middleware{}, config.middlewares...), config.shortenMiddlewares...)

	r.Methods(http.MethodPost).Path("/shorten").Handler(
		httptransport.NewServer(
			chain(shortenMiddlewares, MakeLinkShortenEndpoint(linkUseCase)),
			DecodeLinkShortenRequest,
			EncodeLinkShortenResponse,
			config.serverOptions...,
		))
	r.Methods(http.MethodGet).Path("/health").Handler(
		httptransport.NewServer(
			chain(config.middlewares, MakeHealthEndpoint(healthUseCase)),
			DecodeHealthRequest,
			EncodeHealthResponse,
			config.serverOptions...,
		))
	r.Methods(http.MethodGet).Path("/").Handler(
		httptransport.NewServer(
			chain(config.middlewares, MakeIndexEndpoint()),
			DecodeIndexRequest,
			EncodeIndexResponse,
			config.serverOptions...,
		))
	r.Methods(http.MethodGet, http.MethodHead).Path("/{code}").Handler(
		httptransport.NewServer(
			chain(config.middlewares, MakeLinkResolveEndpoint(linkUseCase)),
			DecodeLinkResolveRequest,
			EncodeLinkResolveResponse,
			config.serverOptions...,
		))
}
