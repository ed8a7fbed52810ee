package authhttp

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/mindmate-client/internal/common"
	"golang.org/x/oauth2"
)

// TokenSource yields the current credential token. ok is false when the
// user is not logged in.
type TokenSource interface {
	Token(ctx context.Context) (token string, ok bool)
}

// Transport adds the bearer token from Source to every request it carries.
// A nil Base means http.DefaultTransport.
type Transport struct {
	Source TokenSource
	Base   http.RoundTripper
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Source == nil {
		return t.base().RoundTrip(req)
	}

	token, ok := t.Source.Token(req.Context())
	if !ok {
		return t.base().RoundTrip(req)
	}

	// a RoundTripper must not modify the request it was given
	authReq := req.Clone(req.Context())
	// the token replaces any caller value, whatever the key's case
	for k := range authReq.Header {
		if strings.EqualFold(k, common.AuthorizationHeaderName) {
			delete(authReq.Header, k)
		}
	}
	tok := &oauth2.Token{AccessToken: token, TokenType: "Bearer"}
	tok.SetAuthHeader(authReq)

	return t.base().RoundTrip(authReq)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}
