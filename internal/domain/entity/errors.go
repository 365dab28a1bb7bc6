package entity

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration      = errors.New("configuration error")
	ErrMissingCredentials = fmt.Errorf("%w: missing aviation data API key", ErrConfiguration)
	ErrUpstream           = errors.New("upstream lookup failed")
	ErrRateLimited        = fmt.Errorf("%w: rate limited", ErrUpstream)
	ErrAirportNotFound    = errors.New("airport not found")
	ErrInvalidInput       = errors.New("invalid input")
)

// UpstreamError is a failed provider call. Message is kept verbatim for display.
type UpstreamError struct {
	StatusCode  int
	Code        string
	Message     string
	RateLimited bool
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	if e.RateLimited {
		return ErrRateLimited
	}
	return ErrUpstream
}

// ResolutionError reports a failed coordinate lookup for one airport
type ResolutionError struct {
	IATA string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve airport %s: %v", e.IATA, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
