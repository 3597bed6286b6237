package utils

import "errors"

var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrGeocodeFailed           = errors.New("geocoding failed")
	ErrNoAnchor                = errors.New("no meeting anchor could be resolved")
	ErrCompletionProvider      = errors.New("completion provider error")
	ErrMalformedRecommendation = errors.New("malformed recommendation response")
	ErrRouteUnavailable        = errors.New("route unavailable")
	ErrSessionNotFound         = errors.New("session not found")
)
