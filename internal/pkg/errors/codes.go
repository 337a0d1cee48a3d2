package errors

import "net/http"

var (
	ErrRateLimited = New(
		"RATE_LIMIT_EXCEEDED",
		"Rate limit exceeded. Please wait a moment before searching again.",
		http.StatusTooManyRequests,
	)

	ErrUpstream = New(
		"UPSTREAM_ERROR",
		"Upstream geodata service returned an error",
		http.StatusBadGateway,
	)

	ErrTransport = New(
		"TRANSPORT_ERROR",
		"Failed to reach upstream geodata service",
		http.StatusServiceUnavailable,
	)

	ErrInvalidLocation = New(
		"INVALID_LOCATION",
		"Location not found. Try a different search term.",
		http.StatusNotFound,
	)

	ErrGeolocationDenied = New(
		"GEOLOCATION_DENIED",
		"Geolocation was denied and no fallback succeeded",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
