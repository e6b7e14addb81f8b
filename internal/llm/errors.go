package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrConfiguration indicates the provider cannot be used because required
// configuration (usually a credential) is missing. It is raised before any
// network attempt.
type ErrConfiguration struct {
	// Key is the environment variable or setting that is missing.
	Key string
	// Msg overrides the default message when set.
	Msg string
}

func (e *ErrConfiguration) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("%s is not set. Please check your environment variables.", e.Key)
}

// ErrAuth indicates the provider rejected the credential (401).
type ErrAuth struct {
	// Credential names what the user should check, e.g. "Hugging Face API token".
	Credential string
	Err        error
}

func (e *ErrAuth) Error() string {
	cred := e.Credential
	if cred == "" {
		cred = "API key"
	}
	return fmt.Sprintf("Authentication failed. Please check your %s.", cred)
}

func (e *ErrAuth) Unwrap() error { return e.Err }

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return "Rate limit exceeded. Please try again later."
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrBadRequest indicates the provider rejected the request itself (400).
type ErrBadRequest struct {
	// Message is the provider's explanation, if it sent one.
	Message string
	Err     error
}

func (e *ErrBadRequest) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "Bad request"
	}
	return "Model error: " + msg
}

func (e *ErrBadRequest) Unwrap() error { return e.Err }

// ErrEmptyResponse indicates a successful call that carried no generated text.
type ErrEmptyResponse struct{}

func (e *ErrEmptyResponse) Error() string {
	return "No response received from the model"
}

// ErrInvalidResponse indicates the provider returned a body that does not
// match any known response shape.
type ErrInvalidResponse struct {
	Content []byte
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable is the catch-all transport failure: the provider is
// down, unreachable, or answered with a status not covered above.
type ErrProviderUnavailable struct {
	// Status is the HTTP status code, or 0 when no response was received.
	Status int
	Err    error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// fromStatus maps an HTTP status reported by a provider SDK onto the error
// taxonomy. message is the provider's own explanation, if any.
func fromStatus(status int, message string, err error) error {
	switch status {
	case http.StatusUnauthorized:
		return &ErrAuth{Err: err}
	case http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case http.StatusBadRequest:
		return &ErrBadRequest{Message: message, Err: err}
	}
	return &ErrProviderUnavailable{Status: status, Err: err}
}

// ErrorKind returns a short label for err's place in the taxonomy, used
// when recording failed requests.
func ErrorKind(err error) string {
	var (
		cfgErr  *ErrConfiguration
		authErr *ErrAuth
		rl      *ErrRateLimit
		badReq  *ErrBadRequest
		empty   *ErrEmptyResponse
		invResp *ErrInvalidResponse
		unavail *ErrProviderUnavailable
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.As(err, &cfgErr):
		return "configuration"
	case errors.As(err, &authErr):
		return "auth"
	case errors.As(err, &rl):
		return "rate_limit"
	case errors.As(err, &badReq):
		return "bad_request"
	case errors.As(err, &empty):
		return "empty_response"
	case errors.As(err, &invResp):
		return "invalid_response"
	case errors.As(err, &unavail):
		return "unavailable"
	}
	return "other"
}
