package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-kit/kit/endpoint"
	"github.com/pkg/errors"
	"github.com/superj80820/url-shortener/kit/code"
	httpKit "github.com/superj80820/url-shortener/kit/http"
	loggerKit "github.com/superj80820/url-shortener/kit/logger"
)

type PassFunc func(ctx context.Context, key string) (pass bool, lastRequests, curExpiry int, err error)

type rateLimitConfig struct {
	failOpenLogger *loggerKit.Logger
}

type RateLimitOption func(*rateLimitConfig)

// FailOpen lets requests through when the limiter backend errors, logging
// the failure instead of returning it.
func FailOpen(logger *loggerKit.Logger) RateLimitOption {
	return func(r *rateLimitConfig) {
		r.failOpenLogger = logger
	}
}

func CreateGlobalRateLimitMiddleware(key string, passFunc PassFunc, options ...RateLimitOption) endpoint.Middleware {
	return createRateLimitMiddleware(func(ctx context.Context) string {
		return key
	}, passFunc, options...)
}

func CreateRateLimitMiddlewareWithSpecKey(isIPUse, isMethodUse bool, passFunc PassFunc, options ...RateLimitOption) endpoint.Middleware {
	return createRateLimitMiddleware(func(ctx context.Context) string {
		keySlice := []string{"rate-limit"}
		if isIPUse {
			keySlice = append(keySlice, httpKit.GetIP(ctx))
		}
		if isMethodUse {
			keySlice = append(keySlice, httpKit.GetURL(ctx))
		}
		return strings.Join(keySlice, "-")
	}, passFunc, options...)
}

func createRateLimitMiddleware(getKey func(ctx context.Context) string, passFunc PassFunc, options ...RateLimitOption) endpoint.Middleware {
	var config rateLimitConfig
	for _, option := range options {
		option(&config)
	}

	return func(e endpoint.Endpoint) endpoint.Endpoint {
		return func(ctx context.Context, request interface{}) (response interface{}, err error) {
			key := getKey(ctx)
			pass, _, expiry, err := passFunc(ctx, key)
			if err != nil {
				if config.failOpenLogger == nil {
					return nil, errors.Wrap(err, "get rate limit failed")
				}
				config.failOpenLogger.Warn("rate limit unavailable, pass request",
					loggerKit.String("key", key),
					loggerKit.Error(err),
				)
				return e(ctx, request)
			}
			if !pass {
				return nil, code.CreateErrorCode(http.StatusTooManyRequests).AddCode(code.RateLimit, expiry)
			}
			return e(ctx, request)
		}
	}
}
