package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/superj80820/url-shortener/kit/code"
	httpKit "github.com/superj80820/url-shortener/kit/http"
	loggerKit "github.com/superj80820/url-shortener/kit/logger"
)

// CreateLoggingFinalizer logs every request after its response is written,
// decode failures and redirects included. Needs httpKit.CustomBeforeCtx and
// httpKit.EncodeHTTPErrorResponse on the same server.
func CreateLoggingFinalizer(logger *loggerKit.Logger) httptransport.ServerFinalizerFunc {
	return func(ctx context.Context, statusCode int, r *http.Request) {
		var (
			errorMsg       string
			errorCallStack string
		)
		if err := httpKit.GetError(ctx); err != nil {
			errorMsg = code.CreateHTTPError(code.ParseErrorCode(err)).Error()
			errorCallStack = fmt.Sprintf("%+v", err)
		}

		var latency time.Duration
		if begin := httpKit.GetBeginTime(ctx); !begin.IsZero() {
			latency = time.Since(begin)
		}

		loggerWithMetadata := logger.With(
			loggerKit.Int("status", statusCode),
			loggerKit.String("error", errorMsg),
			loggerKit.String("error-call-stack", errorCallStack),
			loggerKit.String("method", r.Method),
			loggerKit.String("host", httpKit.GetHost(ctx)),
			loggerKit.String("path", r.URL.Path),
			loggerKit.String("query", r.URL.RawQuery),
			loggerKit.String("ip", httpKit.GetIP(ctx)),
			loggerKit.String("user-agent", r.UserAgent()),
			loggerKit.String("trace-id", httpKit.GetTraceID(ctx)),
			loggerKit.Int64("request-id", httpKit.GetRequestID(ctx)),
			loggerKit.Duration("latency", latency),
		)

		if statusCode >= http.StatusInternalServerError {
			loggerWithMetadata.Error(r.URL.Path)
		} else {
			loggerWithMetadata.Info(r.URL.Path)
		}
	}
}
