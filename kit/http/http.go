package http

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/superj80820/url-shortener/kit/code"
	utilKit "github.com/superj80820/url-shortener/kit/util"
	otelCodes "go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

type ctxKeyType int

const (
	_CTX_IP_KEY ctxKeyType = iota
	_CTX_HOST
	_CTX_URL_PATH
	_CTX_METHOD
	_CTX_QUERY
	_CTX_USER_AGENT
	_CTX_TRACE_ID
	_CTX_REQUEST_ID
	_CTX_REQUEST_STATE
)

// requestState is shared by the before, error encoder and finalizer stages of
// one request.
type requestState struct {
	begin time.Time
	err   error
}

type beforeConfig struct {
	trustForwardedHeaders bool
}

type BeforeOption func(*beforeConfig)

// TrustForwardedHeaders reads the client ip from X-Real-Ip and
// X-Forwarded-For. Enable it only behind a proxy that overwrites them.
func TrustForwardedHeaders(trust bool) BeforeOption {
	return func(b *beforeConfig) {
		b.trustForwardedHeaders = trust
	}
}

// ReadUserIP returns the socket peer ip. With trustForwardedHeaders it
// prefers X-Real-Ip, then the last X-Forwarded-For hop.
func ReadUserIP(r *http.Request, trustForwardedHeaders bool) string {
	if trustForwardedHeaders {
		if ip := parseIP(r.Header.Get("X-Real-Ip")); ip != "" {
			return ip
		}
		forwardedFor := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
		if ip := parseIP(forwardedFor[len(forwardedFor)-1]); ip != "" {
			return ip
		}
	}
	if ip := parseIP(r.RemoteAddr); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func parseIP(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	ip := net.ParseIP(strings.Trim(addr, "[]"))
	if ip == nil {
		return ""
	}
	return ip.String()
}

func CustomBeforeCtx(tracer trace.Tracer, options ...BeforeOption) func(ctx context.Context, r *http.Request) context.Context {
	var config beforeConfig
	for _, option := range options {
		option(&config)
	}

	return func(ctx context.Context, r *http.Request) context.Context {
		ctx = context.WithValue(ctx, _CTX_REQUEST_STATE, &requestState{begin: time.Now()})
		ctx = context.WithValue(ctx, _CTX_HOST, r.Host)
		ctx = context.WithValue(ctx, _CTX_URL_PATH, r.URL.Path)
		ctx = context.WithValue(ctx, _CTX_METHOD, r.Method)
		ctx = context.WithValue(ctx, _CTX_QUERY, r.URL.RawQuery)
		ctx = context.WithValue(ctx, _CTX_USER_AGENT, r.UserAgent())
		ctx = context.WithValue(ctx, _CTX_IP_KEY, ReadUserIP(r, config.trustForwardedHeaders))
		ctx = AddRequestID(ctx)

		// ended by CustomFinalizer
		ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path, trace.WithSpanKind(trace.SpanKindServer))
		span.SetAttributes(semconv.HTTPMethod(r.Method))

		ctx = AddTraceID(ctx, span.SpanContext().TraceID().String())

		return ctx
	}
}

func CustomAfterCtx(ctx context.Context, w http.ResponseWriter) context.Context {
	w.Header().Add("X-B3-TraceId", trace.SpanContextFromContext(ctx).TraceID().String())
	if requestID := GetRequestID(ctx); requestID != 0 {
		w.Header().Set("X-Request-Id", utilKit.FormatBase62(requestID))
	}
	return ctx
}

// CustomFinalizer ends the request span once the response is written.
func CustomFinalizer(ctx context.Context, statusCode int, r *http.Request) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(semconv.HTTPStatusCode(statusCode))
	if statusCode >= http.StatusInternalServerError {
		span.SetStatus(otelCodes.Error, http.StatusText(statusCode))
	}
	span.End()
}

func getRequestState(ctx context.Context) *requestState {
	state, _ := ctx.Value(_CTX_REQUEST_STATE).(*requestState)
	return state
}

// GetError returns the error encoded for this request, if any.
func GetError(ctx context.Context) error {
	if state := getRequestState(ctx); state != nil {
		return state.err
	}
	return nil
}

func GetBeginTime(ctx context.Context) time.Time {
	if state := getRequestState(ctx); state != nil {
		return state.begin
	}
	return time.Time{}
}

func getString(ctx context.Context, key ctxKeyType) string {
	val, _ := ctx.Value(key).(string)
	return val
}

func GetTraceID(ctx context.Context) string {
	return getString(ctx, _CTX_TRACE_ID)
}

func GetIP(ctx context.Context) string {
	return getString(ctx, _CTX_IP_KEY)
}

func AddIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, _CTX_IP_KEY, ip)
}

func AddTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, _CTX_TRACE_ID, traceID)
}

func GetURL(ctx context.Context) string {
	return getString(ctx, _CTX_URL_PATH)
}

func GetHost(ctx context.Context) string {
	return getString(ctx, _CTX_HOST)
}

func GetMethod(ctx context.Context) string {
	return getString(ctx, _CTX_METHOD)
}

func GetQuery(ctx context.Context) string {
	return getString(ctx, _CTX_QUERY)
}

func GetUserAgent(ctx context.Context) string {
	return getString(ctx, _CTX_USER_AGENT)
}

func AddRequestID(ctx context.Context) context.Context {
	return context.WithValue(ctx, _CTX_REQUEST_ID, utilKit.GetSnowflakeIDInt64())
}

func GetRequestID(ctx context.Context) int64 {
	requestID, _ := ctx.Value(_CTX_REQUEST_ID).(int64)
	return requestID
}

func EncodeHTTPErrorResponse() func(ctx context.Context, err error, w http.ResponseWriter) {
	return func(ctx context.Context, err error, w http.ResponseWriter) {
		if err == nil {
			panic("encodeError with nil error")
		}

		ctx = CustomAfterCtx(ctx, w)
		if state := getRequestState(ctx); state != nil {
			state.err = err
		}

		errorCode := code.CreateHTTPError(code.ParseErrorCode(err))

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(errorCode.HTTPCode)
		json.NewEncoder(w).Encode(errorCode)
	}
}
