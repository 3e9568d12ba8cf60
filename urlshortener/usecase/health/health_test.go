package health

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/superj80820/url-shortener/domain"
	loggerKit "github.com/superj80820/url-shortener/kit/logger"
	"github.com/superj80820/url-shortener/urlshortener/usecase/mocks"
)

func TestHealth(t *testing.T) {
	ctx := context.Background()
	errDown := errors.New("connection refused")

	for _, testCase := range []struct {
		name     string
		dbErr    error
		cacheErr error
		expect   domain.Health
	}{
		{name: "all up", expect: domain.Health{Database: true, Cache: true}},
		{name: "database down", dbErr: errDown, expect: domain.Health{Database: false, Cache: true}},
		{name: "redis down", cacheErr: errDown, expect: domain.Health{Database: true, Cache: false}},
		{name: "all down", dbErr: errDown, cacheErr: errDown, expect: domain.Health{}},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			linkRepo := mocks.NewLinkRepo(t)
			linkCacheRepo := mocks.NewLinkCacheRepo(t)
			linkRepo.On("Ping", mock.Anything).Return(testCase.dbErr).Once()
			linkCacheRepo.On("Ping", mock.Anything).Return(testCase.cacheErr).Once()

			healthUseCase, err := CreateHealthUseCase(linkRepo, linkCacheRepo, time.Second, loggerKit.NewNoopLogger())
			assert.Nil(t, err)

			health := healthUseCase.Check(ctx)
			assert.Equal(t, testCase.expect, *health)
			assert.Equal(t, testCase.dbErr == nil && testCase.cacheErr == nil, health.Healthy())
		})
	}
}

func TestHealthProbeTimeout(t *testing.T) {
	linkRepo := mocks.NewLinkRepo(t)
	linkCacheRepo := mocks.NewLinkCacheRepo(t)
	linkRepo.On("Ping", mock.Anything).Return(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}).Once()
	linkCacheRepo.On("Ping", mock.Anything).Return(func(ctx context.Context) error {
		panic("nil client")
	}).Once()

	healthUseCase, err := CreateHealthUseCase(linkRepo, linkCacheRepo, 50*time.Millisecond, loggerKit.NewNoopLogger())
	assert.Nil(t, err)

	health := healthUseCase.Check(context.Background())
	assert.False(t, health.Database)
	assert.False(t, health.Cache)
	assert.False(t, health.Healthy())
}
