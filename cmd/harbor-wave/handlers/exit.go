package handlers

import (
	"errors"

	"github.com/harborwave/harbor-wave/internal/provisioning"
)

// Exit codes.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitPrecondition = 2
	ExitNoCommand    = 4
	ExitTotalFailure = 9
)

// ErrNoCommand is returned when harbor-wave runs without a command.
var ErrNoCommand = errors.New("no command given")

// ExitCode maps an error returned by a handler to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrNoCommand):
		return ExitNoCommand
	case errors.Is(err, provisioning.ErrTotalFailure), errors.Is(err, provisioning.ErrValidationFailed):
		return ExitTotalFailure
	case errors.Is(err, provisioning.ErrPartialFailure):
		return ExitFailure
	case provisioning.IsConfigurationError(err), provisioning.IsCredentialError(err):
		return ExitPrecondition
	default:
		return ExitFailure
	}
}
