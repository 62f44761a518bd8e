package handlers

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/go-logr/logr"

	"github.com/harborwave/harbor-wave/internal/config"
	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
	"github.com/harborwave/harbor-wave/internal/provisioning"
	"github.com/harborwave/harbor-wave/internal/ui"
)

// Options carries the global flags into every handler.
type Options struct {
	// ConfigDir overrides the config directory.
	ConfigDir string
	// Overrides maps config items to values given as flags. They apply to
	// this run only and are never saved.
	Overrides map[string]string
	// Terse switches listings to CSV.
	Terse bool
	// Output is table, json or yaml.
	Output string
	// Verbosity enables the structured log on stderr.
	Verbosity int
	// LogFormat is console or json.
	LogFormat string
}

// UserAgent is sent with every API request.
var UserAgent = "harbor-wave"

// Factory function variables - can be replaced in tests.
var (
	newStore = config.NewStore

	connect = func(token string) (digitalocean.Gateway, error) {
		return digitalocean.Connect(token,
			digitalocean.WithTimeouts(config.LoadTimeouts()),
			digitalocean.WithUserAgent(UserAgent),
		)
	}

	newPrinter = ui.NewStdPrinter

	newLogger = newZapLogger

	newProvisioningContext = provisioning.NewContext
)

// session is the per-invocation state shared by the handlers.
type session struct {
	opts    *Options
	store   *config.Store
	cfg     *config.Config
	printer *ui.Printer
	logger  logr.Logger
	flush   func()
}

// openSession loads the config, applies flag overrides, and sets up output.
func openSession(opts *Options) (*session, error) {
	if opts == nil {
		opts = &Options{}
	}
	switch opts.Output {
	case "", ui.FormatTable, ui.FormatJSON, ui.FormatYAML:
	default:
		return nil, provisioning.Configurationf("%w %q", ui.ErrUnknownFormat, opts.Output)
	}
	printer := newPrinter()
	printer.Terse = opts.Terse

	logger, flush, err := newLogger(opts.Verbosity, opts.LogFormat)
	if err != nil {
		return nil, provisioning.Configurationf("%w", err)
	}

	store := newStore(opts.ConfigDir)
	cfg, err := store.Load()
	if err != nil {
		flush()
		return nil, provisioning.Configurationf("%w", err)
	}
	if err := applyOverrides(cfg, opts.Overrides); err != nil {
		flush()
		return nil, err
	}

	return &session{
		opts:    opts,
		store:   store,
		cfg:     cfg,
		printer: printer,
		logger:  logger,
		flush:   flush,
	}, nil
}

// tableOutput reports whether results render as a human-readable table.
func tableOutput(opts *Options) bool {
	return opts.Output == "" || opts.Output == ui.FormatTable
}

func (s *session) close() {
	s.flush()
}

// applyOverrides sets every override on cfg in item-name order.
func applyOverrides(cfg *config.Config, overrides map[string]string) error {
	for _, name := range slices.Sorted(maps.Keys(overrides)) {
		if err := cfg.Set(name, overrides[name]); err != nil {
			return provisioning.Configurationf("--%s: %w", name, err)
		}
	}
	return nil
}

// cloud opens a provider session with the configured credential.
func (s *session) cloud() (digitalocean.Gateway, error) {
	gw, err := connect(s.cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", provisioning.ErrCredential, err)
	}
	return gw, nil
}

// provisioningContext wires the terminal observer in front of the log.
func (s *session) provisioningContext(ctx context.Context, cloud digitalocean.Gateway) *provisioning.Context {
	obs := ui.NewObserver(s.printer, provisioning.NewLogObserver(s.logger.WithName("harbor-wave")))
	return newProvisioningContext(ctx, s.cfg, cloud, obs)
}
