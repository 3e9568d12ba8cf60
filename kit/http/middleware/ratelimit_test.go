package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/superj80820/url-shortener/kit/code"
	httpKit "github.com/superj80820/url-shortener/kit/http"
	loggerKit "github.com/superj80820/url-shortener/kit/logger"
	traceKit "github.com/superj80820/url-shortener/kit/trace"
)

func okEndpoint(ctx context.Context, request interface{}) (interface{}, error) {
	return "ok", nil
}

func TestRateLimitMiddleware(t *testing.T) {
	ctx := httpKit.AddIP(context.Background(), "10.0.0.1")

	var keys []string
	count := 0
	passFunc := func(ctx context.Context, key string) (bool, int, int, error) {
		keys = append(keys, key)
		count++
		return count <= 2, 2 - count, 60, nil
	}

	e := CreateRateLimitMiddlewareWithSpecKey(true, false, passFunc)(okEndpoint)

	for i := 0; i < 2; i++ {
		res, err := e(ctx, nil)
		assert.Nil(t, err)
		assert.Equal(t, "ok", res)
	}
	_, err := e(ctx, nil)
	errorCode := code.CreateHTTPError(code.ParseErrorCode(err))
	assert.Equal(t, http.StatusTooManyRequests, errorCode.HTTPCode)
	assert.Equal(t, code.RateLimit, errorCode.Code)
	assert.Equal(t, "rate-limit-10.0.0.1", keys[0])
}

func TestRateLimitMiddlewareBackendError(t *testing.T) {
	passFunc := func(ctx context.Context, key string) (bool, int, int, error) {
		return false, 0, 0, errors.New("redis down")
	}

	_, err := CreateGlobalRateLimitMiddleware("global", passFunc)(okEndpoint)(context.Background(), nil)
	assert.NotNil(t, err)

	res, err := CreateGlobalRateLimitMiddleware("global", passFunc, FailOpen(loggerKit.NewNoopLogger()))(okEndpoint)(context.Background(), nil)
	assert.Nil(t, err)
	assert.Equal(t, "ok", res)
}

func TestRateLimitKeyPerClient(t *testing.T) {
	var keys []string
	passFunc := func(ctx context.Context, key string) (bool, int, int, error) {
		keys = append(keys, key)
		return true, 1, 60, nil
	}
	e := CreateRateLimitMiddlewareWithSpecKey(true, false, passFunc)(okEndpoint)

	for _, testCase := range []struct {
		remoteAddr   string
		forwardedFor string
	}{
		{remoteAddr: "[2001:db8::1]:5555"},
		{remoteAddr: "[2001:db8::2]:6666"},
		{remoteAddr: "10.0.0.9:40000", forwardedFor: "1.2.3.0"},
		{remoteAddr: "10.0.0.9:40001", forwardedFor: "1.2.3.1"},
	} {
		r := httptest.NewRequest(http.MethodPost, "/shorten", nil)
		r.RemoteAddr = testCase.remoteAddr
		if testCase.forwardedFor != "" {
			r.Header.Set("X-Forwarded-For", testCase.forwardedFor)
		}
		ctx := httpKit.CustomBeforeCtx(traceKit.CreateNoOpTracer())(context.Background(), r)
		_, err := e(ctx, nil)
		assert.Nil(t, err)
	}

	assert.Equal(t, []string{
		"rate-limit-2001:db8::1",
		"rate-limit-2001:db8::2",
		"rate-limit-10.0.0.9",
		"rate-limit-10.0.0.9",
	}, keys)
}
