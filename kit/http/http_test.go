package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/superj80820/url-shortener/kit/code"
	traceKit "github.com/superj80820/url-shortener/kit/trace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestReadUserIP(t *testing.T) {
	for _, testCase := range []struct {
		name         string
		remoteAddr   string
		realIP       string
		forwardedFor string
		trust        bool
		expect       string
	}{
		{name: "ipv4 peer", remoteAddr: "10.0.0.1:5555", expect: "10.0.0.1"},
		{name: "ipv6 peer", remoteAddr: "[2001:db8::1]:5555", expect: "2001:db8::1"},
		{name: "ipv6 peer canonical", remoteAddr: "[2001:0db8:0:0:0:0:0:2]:6666", expect: "2001:db8::2"},
		{name: "forwarded for ignored", remoteAddr: "10.0.0.1:5555", forwardedFor: "1.2.3.4", expect: "10.0.0.1"},
		{name: "real ip ignored", remoteAddr: "10.0.0.1:5555", realIP: "1.2.3.4", expect: "10.0.0.1"},
		{name: "trusted real ip", remoteAddr: "10.0.0.1:5555", realIP: "172.16.0.3", forwardedFor: "1.2.3.4", trust: true, expect: "172.16.0.3"},
		{name: "trusted forwarded for last hop", remoteAddr: "10.0.0.1:5555", forwardedFor: "6.6.6.6, 192.168.0.2", trust: true, expect: "192.168.0.2"},
		{name: "trusted ipv6 forwarded for", remoteAddr: "10.0.0.1:5555", forwardedFor: "2001:db8::3", trust: true, expect: "2001:db8::3"},
		{name: "trusted garbage header", remoteAddr: "10.0.0.1:5555", forwardedFor: "unknown", trust: true, expect: "10.0.0.1"},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/abc", nil)
			r.RemoteAddr = testCase.remoteAddr
			if testCase.realIP != "" {
				r.Header.Set("X-Real-Ip", testCase.realIP)
			}
			if testCase.forwardedFor != "" {
				r.Header.Set("X-Forwarded-For", testCase.forwardedFor)
			}
			assert.Equal(t, testCase.expect, ReadUserIP(r, testCase.trust))
		})
	}
}

func TestReadUserIPSpoofedHeadersShareQuota(t *testing.T) {
	var ips []string
	for _, forwardedFor := range []string{"1.2.3.0", "1.2.3.1", "1.2.3.2"} {
		r := httptest.NewRequest(http.MethodPost, "/shorten", nil)
		r.RemoteAddr = "10.0.0.9:40000"
		r.Header.Set("X-Forwarded-For", forwardedFor)
		ips = append(ips, ReadUserIP(r, false))
	}
	assert.Equal(t, []string{"10.0.0.9", "10.0.0.9", "10.0.0.9"}, ips)
}

func TestCustomCtx(t *testing.T) {
	r := httptest.NewRequest(http.MethodHead, "/abc?format=json", nil)
	r.RemoteAddr = "10.0.0.1:5555"
	r.Header.Set("User-Agent", "curl/8.0")

	ctx := CustomBeforeCtx(traceKit.CreateNoOpTracer())(context.Background(), r)
	assert.Equal(t, "/abc", GetURL(ctx))
	assert.Equal(t, http.MethodHead, GetMethod(ctx))
	assert.Equal(t, "format=json", GetQuery(ctx))
	assert.Equal(t, "curl/8.0", GetUserAgent(ctx))
	assert.Equal(t, "10.0.0.1", GetIP(ctx))
	assert.Equal(t, "example.com", GetHost(ctx))
	assert.NotZero(t, GetRequestID(ctx))
	assert.False(t, GetBeginTime(ctx).IsZero())

	w := httptest.NewRecorder()
	CustomAfterCtx(ctx, w)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	assert.Equal(t, "", GetURL(context.Background()))
	assert.Zero(t, GetRequestID(context.Background()))
	assert.Nil(t, GetError(context.Background()))
	assert.True(t, GetBeginTime(context.Background()).IsZero())
}

func TestRequestSpanEndsInFinalizer(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer tracerProvider.Shutdown(context.Background())

	r := httptest.NewRequest(http.MethodGet, "/abc", nil)
	ctx := CustomBeforeCtx(tracerProvider.Tracer("test"))(context.Background(), r)
	assert.Len(t, recorder.Started(), 1)
	assert.Len(t, recorder.Ended(), 0)
	assert.NotEmpty(t, GetTraceID(ctx))

	CustomFinalizer(ctx, http.StatusFound, r)
	ended := recorder.Ended()
	assert.Len(t, ended, 1)
	assert.Equal(t, "GET /abc", ended[0].Name())
	assert.False(t, ended[0].EndTime().Before(ended[0].StartTime()))
	var statusCode int64
	for _, attribute := range ended[0].Attributes() {
		if attribute.Key == "http.status_code" {
			statusCode = attribute.Value.AsInt64()
		}
	}
	assert.Equal(t, int64(http.StatusFound), statusCode)
}

func TestEncodeHTTPErrorResponse(t *testing.T) {
	encode := EncodeHTTPErrorResponse()

	r := httptest.NewRequest(http.MethodGet, "/abc", nil)
	ctx := CustomBeforeCtx(traceKit.CreateNoOpTracer())(context.Background(), r)
	notFoundErr := errors.Wrap(code.CreateErrorCode(http.StatusNotFound).AddCode(code.LinkNotFound), "resolve failed")

	w := httptest.NewRecorder()
	encode(ctx, notFoundErr, w)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var body map[string]interface{}
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "URL not found", body["message"])
	assert.Equal(t, float64(http.StatusNotFound), body["http_code"])
	assert.Equal(t, notFoundErr, GetError(ctx))

	w = httptest.NewRecorder()
	encode(context.Background(), errors.New("db down"), w)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
