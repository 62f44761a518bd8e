// Package payload builds the per-instance metadata blob delivered as droplet
// user data and read back by the guest init script.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harborwave/harbor-wave/internal/config"
)

// FilePrefix marks a payload that names a local file.
const FilePrefix = config.PayloadFilePrefix

// MaxUserDataSize is the provider's limit on droplet user data.
const MaxUserDataSize = 64 * 1024

var (
	// ErrUnreadable is returned when a FILE: payload cannot be read.
	ErrUnreadable = errors.New("payload file unreadable")

	// ErrTooLarge is returned when encoded metadata exceeds MaxUserDataSize.
	ErrTooLarge = errors.New("metadata exceeds user data limit")
)

// Source is a resolved payload.
type Source struct {
	Content string
	// Filename is the base name of the source file, empty for inline payloads.
	Filename string
}

// Resolve turns a configured payload into its content. A value starting with
// FILE: is read from disk; anything else is used verbatim.
func Resolve(raw string) (*Source, error) {
	path, ok := strings.CutPrefix(raw, FilePrefix)
	if !ok {
		return &Source{Content: raw}, nil
	}
	if path == "" {
		return nil, fmt.Errorf("%w: no path after %s", ErrUnreadable, FilePrefix)
	}

	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return &Source{Content: string(data), Filename: filepath.Base(path)}, nil
}

// Metadata is the JSON document each instance receives. Key names are fixed
// by the guest init script.
type Metadata struct {
	Sequence        int    `json:"sequence"`
	TotalVMs        int    `json:"total_vms"`
	BaseName        string `json:"base-name"`
	Domain          string `json:"domain"`
	Payload         string `json:"payload"`
	PayloadFilename string `json:"payload-filename"`
}

// New builds the metadata for instance sequence of total.
func New(src *Source, baseName, domain string, sequence, total int) Metadata {
	m := Metadata{
		Sequence: sequence,
		TotalVMs: total,
		BaseName: baseName,
		Domain:   domain,
	}
	if src != nil {
		m.Payload = src.Content
		m.PayloadFilename = src.Filename
	}
	return m
}

// Encode renders the metadata as user data.
func (m Metadata) Encode() (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	if len(data) > MaxUserDataSize {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), MaxUserDataSize)
	}
	return string(data), nil
}

// Decode parses user data produced by Encode.
func Decode(data string) (Metadata, error) {
	var m Metadata
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return Metadata{}, fmt.Errorf("failed to decode metadata: %w", err)
	}
	return m, nil
}
