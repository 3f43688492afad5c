package azauth

import (
	"fmt"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeAuthenticationFailed = "azauth_authentication_failed"
	TextCodeInvalidConfig        = "azauth_invalid_config"
	TextCodeRequestFailed        = "azauth_request_failed"
	TextCodeUnexpectedStatus     = "azauth_unexpected_status"
	TextCodeInvalidResponse      = "azauth_invalid_response"
	TextCodeInvalidRequest       = "azauth_invalid_request"
)

// ErrInvalidConfig is returned by NewClient when the base URL is missing or
// malformed. No request is made.
var ErrInvalidConfig = errors.New("invalid client configuration", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidConfig).
	WithCode(errors.CodeBadRequest)

// ErrRequestFailed is returned when the request could not be built, sent, or
// its body could not be read.
var ErrRequestFailed = errors.New("auth request failed", errors.CategoryOperation).
	WithTextCode(TextCodeRequestFailed).
	WithCode(errors.CodeInternal)

// ErrUnexpectedStatus is returned for non 2xx responses other than 422.
var ErrUnexpectedStatus = errors.New("unexpected response status", errors.CategoryOperation).
	WithTextCode(TextCodeUnexpectedStatus).
	WithCode(errors.CodeInternal)

// ErrInvalidResponse is returned when a response body cannot be decoded into
// the requested shape.
var ErrInvalidResponse = errors.New("invalid response body", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidResponse).
	WithCode(errors.CodeInternal)

// ErrInvalidRequest is returned when a request body cannot be built for an
// endpoint.
var ErrInvalidRequest = errors.New("invalid auth request", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidRequest).
	WithCode(errors.CodeBadRequest)

// AuthenticationError is returned when the server rejects credentials or an
// access token with 422 Unprocessable Entity. Message is the server message,
// unchanged.
type AuthenticationError struct {
	Message    string
	Reason     string
	Status     string
	StatusCode int
	Endpoint   string
}

func (e *AuthenticationError) Error() string {
	if e == nil {
		return "authentication failed"
	}

	scope := "authentication failed"
	if e.Endpoint != "" {
		scope = fmt.Sprintf("%s: authentication failed", e.Endpoint)
	}

	if e.Message != "" {
		return fmt.Sprintf("%s: %s", scope, e.Message)
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", scope, e.Reason)
	}
	return scope
}

func (e *AuthenticationError) Metadata() map[string]any {
	if e == nil {
		return nil
	}

	meta := map[string]any{}
	if e.Endpoint != "" {
		meta["endpoint"] = e.Endpoint
	}
	if e.StatusCode != 0 {
		meta["status_code"] = e.StatusCode
	}
	if e.Status != "" {
		meta["status"] = e.Status
	}
	if e.Reason != "" {
		meta["reason"] = e.Reason
	}
	if e.Message != "" {
		meta["message"] = e.Message
	}
	return meta
}

// IsAuthenticationError reports whether err is a server side credential or
// token rejection.
func IsAuthenticationError(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsInvalidConfig reports whether err came from client construction.
func IsInvalidConfig(err error) bool {
	return hasTextCode(err, TextCodeInvalidConfig)
}

// IsRequestFailed reports whether err is a transport level failure.
func IsRequestFailed(err error) bool {
	return hasTextCode(err, TextCodeRequestFailed)
}

// IsUnexpectedStatus reports whether err is a non 2xx, non 422 response.
func IsUnexpectedStatus(err error) bool {
	return hasTextCode(err, TextCodeUnexpectedStatus)
}

// IsInvalidRequest reports whether err came from building a request body.
func IsInvalidRequest(err error) bool {
	return hasTextCode(err, TextCodeInvalidRequest)
}

// IsInvalidResponse reports whether err is a response body decode failure.
func IsInvalidResponse(err error) bool {
	return hasTextCode(err, TextCodeInvalidResponse)
}

func hasTextCode(err error, code string) bool {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == code
}

func wrapError(base *errors.Error, err error, meta map[string]any) error {
	if base == nil {
		return err
	}

	if meta == nil {
		meta = map[string]any{}
	}
	if err != nil {
		meta["error"] = err.Error()
	}

	clone := base.Clone()
	if clone == nil {
		clone = base
	}
	if err != nil {
		clone.Source = err
	}
	if len(meta) > 0 {
		clone.WithMetadata(meta)
	}

	return clone
}
