// Package authhttp issues HTTP requests on behalf of the logged-in user.
//
// Transport is an http.RoundTripper that adds "Authorization: Bearer <token>"
// whenever its TokenSource has a token, and leaves the request untouched
// otherwise. Client builds on it with a fetch-like call:
//
//	resp, err := c.FetchWithAuth(ctx, "/api/profile", &authhttp.RequestOptions{
//	    Method: http.MethodPost,
//	    Header: http.Header{"Content-Type": {"application/json"}},
//	    Body:   strings.NewReader(`{"nickname":"bob"}`),
//	})
//
// Caller options are never modified. Network failures are returned to the
// caller as is; nothing is retried or cached.
//
// FetchWithCredentials is kept for older call sites and is the same function
// as (*Client).FetchWithAuth.
package authhttp
