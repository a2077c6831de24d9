package cvp

import (
	"errors"
	"fmt"
)

// Errors for CloudVision API communication.
var (
	// errRequestFailed indicates the HTTP request could not be performed.
	errRequestFailed = errors.New("cloudvision request failed")
	// errUnexpectedStatus indicates the API answered with a non-2xx status.
	errUnexpectedStatus = errors.New("cloudvision returned unexpected status")
	// errDecodeFailed indicates the API response body could not be decoded.
	errDecodeFailed = errors.New("failed to decode cloudvision response")
	// errAuthenticationFailed indicates the login call was rejected.
	errAuthenticationFailed = errors.New("cloudvision authentication failed")
)

// configletNotFoundCode is the CloudVision error code returned when a
// configlet lookup names a non-existing entity. It is a lookup miss, not a
// failure.
const configletNotFoundCode = "132801"

// APIError is an error envelope returned by CloudVision inside a 200
// response. The provisioning API reports most failures this way rather
// than through HTTP status codes.
type APIError struct {
	Code    string `json:"errorCode"`
	Message string `json:"errorMessage"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("cloudvision api error %s: %s", e.Code, e.Message)
}

// NotFound reports whether the error denotes a missing entity rather than
// a failed call.
func (e *APIError) NotFound() bool {
	return e.Code == configletNotFoundCode
}
