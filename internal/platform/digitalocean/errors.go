package digitalocean

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/digitalocean/godo"
)

var (
	// ErrNotFound indicates the referenced resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrCredentialRejected indicates the API refused the credential.
	ErrCredentialRejected = errors.New("API credential rejected")

	// ErrProviderUnavailable indicates a transient failure: rate limiting,
	// a server-side error or a broken connection.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrProjectNotFound is returned by AssignToProject when no project has
	// the requested name.
	ErrProjectNotFound = errors.New("project not found")
)

// classify wraps err with the sentinel matching its cause. Errors that match
// no sentinel are returned wrapped with the operation name only.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if kind := kindOf(err); kind != nil {
		return fmt.Errorf("%s: %w: %w", op, kind, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func kindOf(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}

	var apiErr *godo.ErrorResponse
	if errors.As(err, &apiErr) {
		if apiErr.Response == nil {
			return ErrProviderUnavailable
		}
		return kindOfStatus(apiErr.Response.StatusCode)
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return ErrProviderUnavailable
	}
	return nil
}

func kindOfStatus(code int) error {
	switch {
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrCredentialRejected
	case code == http.StatusTooManyRequests, code >= http.StatusInternalServerError:
		return ErrProviderUnavailable
	default:
		return nil
	}
}

// IsRetryable reports whether err is worth retrying.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
