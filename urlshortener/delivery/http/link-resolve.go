package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"
	"github.com/superj80820/url-shortener/domain"
	"github.com/superj80820/url-shortener/kit/code"
	httpTransportKit "github.com/superj80820/url-shortener/kit/http/transport"
)

const formatJSON = "json"

type linkResolveRequest struct {
	Code   string
	AsJSON bool
}

type linkResolveResponse struct {
	ShortCode      string `json:"short_code"`
	OriginalURL    string `json:"original_url"`
	WillRedirectTo string `json:"will_redirect_to"`
	Cached         bool   `json:"cached"`

	asJSON bool
}

func MakeLinkResolveEndpoint(svc domain.LinkUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(linkResolveRequest)
		resolution, err := svc.Resolve(ctx, req.Code)
		if err != nil {
			return nil, err
		}
		return &linkResolveResponse{
			ShortCode:      resolution.Code,
			OriginalURL:    resolution.Target,
			WillRedirectTo: resolution.Target,
			Cached:         resolution.Cached,
			asJSON:         req.AsJSON,
		}, nil
	}
}

func DecodeLinkResolveRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	shortCode, ok := mux.Vars(r)["code"]
	if !ok {
		return nil, code.CreateErrorCode(http.StatusNotFound).AddCode(code.LinkNotFound)
	}
	return linkResolveRequest{
		Code:   shortCode,
		AsJSON: r.URL.Query().Get("format") == formatJSON,
	}, nil
}

func EncodeLinkResolveResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	res := response.(*linkResolveResponse)
	if res.asJSON {
		return httpTransportKit.EncodeJsonResponse(ctx, w, res)
	}
	w.Header().Set("Location", res.WillRedirectTo)
	w.WriteHeader(http.StatusFound)
	return nil
}
