package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	httpTransportKit "github.com/superj80820/url-shortener/kit/http/transport"
)

var (
	DecodeIndexRequest  = httpTransportKit.DecodeEmptyRequest
	EncodeIndexResponse = httpTransportKit.EncodeJsonResponse
)

type indexResponse struct {
	Message string `json:"message"`
	Health  string `json:"health"`
}

func MakeIndexEndpoint() endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		return &indexResponse{
			Message: "URL Shortener API",
			Health:  "/health",
		}, nil
	}
}
