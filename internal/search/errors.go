// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"errors"
	"fmt"
)

// ErrUpstream is matched by every GatewayError and FetchError.
var ErrUpstream = errors.New("upstream request failed")

// GatewayError reports a failed esearch request: a transport failure, a
// non-success status (StatusCode set), or an undecodable body.
type GatewayError struct {
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	return upstreamMessage("esearch", e.StatusCode, e.Err)
}

// Unwrap exposes both ErrUpstream and the underlying cause.
func (e *GatewayError) Unwrap() []error {
	return unwrapUpstream(e.Err)
}

// FetchError reports a failed efetch request, with the same shape as
// GatewayError.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return upstreamMessage("efetch", e.StatusCode, e.Err)
}

// Unwrap exposes both ErrUpstream and the underlying cause.
func (e *FetchError) Unwrap() []error {
	return unwrapUpstream(e.Err)
}

func upstreamMessage(op string, status int, err error) string {
	switch {
	case status != 0 && err != nil:
		return fmt.Sprintf("%s: HTTP %d: %v", op, status, err)
	case status != 0:
		return fmt.Sprintf("%s: HTTP %d", op, status)
	case err != nil:
		return fmt.Sprintf("%s: %v", op, err)
	default:
		return op + ": request failed"
	}
}

func unwrapUpstream(err error) []error {
	if err == nil {
		return []error{ErrUpstream}
	}
	return []error{ErrUpstream, err}
}
