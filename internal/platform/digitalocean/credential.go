package digitalocean

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidCredential is returned when a token fails the local format check.
var ErrInvalidCredential = errors.New("invalid API credential")

var credentialPattern = regexp.MustCompile(`^[0-9a-fA-F]{64}$`)

// ValidateCredential checks the token format without touching the network.
// Any prefix ending in the last '.' or '_' (such as "dop_v1_") is stripped and
// the remainder must be exactly 64 hexadecimal characters.
func ValidateCredential(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: no API key set", ErrInvalidCredential)
	}
	body := token
	if i := strings.LastIndexAny(body, "._"); i >= 0 {
		body = body[i+1:]
	}
	if !credentialPattern.MatchString(body) {
		return ErrInvalidCredential
	}
	return nil
}
