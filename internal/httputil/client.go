// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across clients.
package httputil

import (
	"net/http"
	"time"
)

// uaTransport stamps a fixed User-Agent on every request before
// delegating to the wrapped RoundTripper.
type uaTransport struct {
	userAgent string
	next      http.RoundTripper
}

func (t *uaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.next.RoundTrip(clone)
}

// NewClient builds an *http.Client with a per-request timeout and an
// optional fixed User-Agent. A zero timeout means no timeout; an empty
// userAgent leaves the default Go agent in place.
func NewClient(timeout time.Duration, userAgent string) *http.Client {
	client := &http.Client{Timeout: timeout}
	if userAgent != "" {
		client.Transport = &uaTransport{
			userAgent: userAgent,
			next:      http.DefaultTransport,
		}
	}
	return client
}
