package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/url-shortener/domain"
	httpTransportKit "github.com/superj80820/url-shortener/kit/http/transport"
)

var (
	DecodeHealthRequest  = httpTransportKit.DecodeEmptyRequest
	EncodeHealthResponse = httpTransportKit.EncodeJsonResponse
)

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

func MakeHealthEndpoint(svc domain.HealthUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		health := svc.Check(ctx)
		return &healthResponse{
			Status:   domain.HealthStatus(health.Healthy()),
			Database: domain.HealthStatus(health.Database),
			Redis:    domain.HealthStatus(health.Cache),
		}, nil
	}
}
