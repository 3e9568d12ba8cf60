package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/url-shortener/domain"
	httpTransportKit "github.com/superj80820/url-shortener/kit/http/transport"
)

var EncodeLinkShortenResponse = httpTransportKit.EncodeJsonResponse

type linkShortenRequest struct {
	URL string `json:"url"`
}

type linkShortenResponse struct {
	ShortURL string `json:"short_url"`
}

func MakeLinkShortenEndpoint(svc domain.LinkUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(linkShortenRequest)
		shortURL, err := svc.Shorten(ctx, req.URL)
		if err != nil {
			return nil, err
		}
		return &linkShortenResponse{ShortURL: shortURL}, nil
	}
}

func DecodeLinkShortenRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	request, err := httpTransportKit.DecodeJsonRequest[linkShortenRequest](ctx, r)
	if err != nil {
		return nil, err
	}
	req := request.(linkShortenRequest)
	if err := ValidateURL(req.URL); err != nil {
		return nil, err
	}
	return req, nil
}
