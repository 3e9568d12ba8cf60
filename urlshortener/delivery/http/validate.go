package http

import (
	"net/http"
	"net/url"

	"github.com/superj80820/url-shortener/kit/code"
)

const maxURLLength = 2083

func ValidateURL(rawURL string) error {
	invalid := func(reason string) error {
		return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidURL, reason)
	}
	if rawURL == "" {
		return invalid("url is required")
	}
	if len(rawURL) > maxURLLength {
		return invalid("url is too long")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return invalid("url is malformed")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalid("scheme must be http or https")
	}
	if u.Host == "" || u.Hostname() == "" {
		return invalid("host is required")
	}
	return nil
}
