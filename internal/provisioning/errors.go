package provisioning

import (
	"errors"
	"fmt"

	"github.com/harborwave/harbor-wave/internal/config"
	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
)

// Error kinds. Every error surfaced to the CLI wraps exactly one of these.
var (
	// ErrConfiguration marks a missing or invalid local setting. The operation
	// aborts before any remote call.
	ErrConfiguration = errors.New("configuration error")

	// ErrCredential marks a malformed or rejected credential.
	ErrCredential = errors.New("credential error")

	// ErrProviderUnavailable marks a transient provider failure on a read.
	ErrProviderUnavailable = digitalocean.ErrProviderUnavailable

	// ErrNotFound marks a referenced project, domain or record that does not exist.
	ErrNotFound = digitalocean.ErrNotFound

	// ErrPartialFailure marks a batch where some elements failed.
	ErrPartialFailure = errors.New("partial failure")

	// ErrTotalFailure marks a batch where every element failed.
	ErrTotalFailure = errors.New("total failure")

	// ErrValidationFailed marks a configuration check that found errors.
	ErrValidationFailed = errors.New("validation failed")
)

// Configurationf returns an ErrConfiguration with a formatted message. The
// format may use %w to wrap a cause.
func Configurationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConfiguration}, args...)...)
}

// BatchError reports a batch operation in which some elements failed.
type BatchError struct {
	Op        string
	Succeeded int
	Failed    int
	// Kind is ErrPartialFailure or ErrTotalFailure.
	Kind error
}

// NewBatchError classifies a batch outcome. It returns nil when nothing
// failed. When distinguishTotal is false, any failure is a partial failure.
func NewBatchError(op string, succeeded, failed int, distinguishTotal bool) *BatchError {
	if failed == 0 {
		return nil
	}
	kind := ErrPartialFailure
	if distinguishTotal && succeeded == 0 {
		kind = ErrTotalFailure
	}
	return &BatchError{Op: op, Succeeded: succeeded, Failed: failed, Kind: kind}
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("%s: %d succeeded, %d failed", e.Op, e.Succeeded, e.Failed)
}

func (e *BatchError) Unwrap() error {
	return e.Kind
}

// IsCredentialError reports whether err stems from a bad or refused credential.
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrCredential) ||
		errors.Is(err, digitalocean.ErrInvalidCredential) ||
		errors.Is(err, digitalocean.ErrCredentialRejected)
}

// IsConfigurationError reports whether err stems from local settings.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration) ||
		errors.Is(err, config.ErrUnknownItem) ||
		errors.Is(err, config.ErrInvalidValue)
}
