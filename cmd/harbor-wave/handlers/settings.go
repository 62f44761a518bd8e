package handlers

import (
	"fmt"
	"strings"

	"github.com/harborwave/harbor-wave/internal/config"
	"github.com/harborwave/harbor-wave/internal/provisioning"
)

// Set saves value for item. The API key goes to its own file; everything
// else to the settings file. Flag overrides are not saved.
func Set(opts *Options, item, value string) error {
	local := *opts
	local.Overrides = nil
	s, err := openSession(&local)
	if err != nil {
		return err
	}
	defer s.close()

	if item == config.ItemAPIKey {
		if err := s.store.SaveCredential(strings.TrimSpace(value)); err != nil {
			return err
		}
		s.printer.Message("%s saved to %s", item, s.store.CredentialPath())
		return nil
	}

	if err := s.cfg.Set(item, value); err != nil {
		return provisioning.Configurationf("%w", err)
	}
	if err := s.store.SaveSettings(s.cfg); err != nil {
		return err
	}
	got, _ := s.cfg.Get(item)
	s.printer.Message("%s set to %q", item, got)
	return nil
}

// Get prints the effective value of item, flag overrides included.
func Get(opts *Options, item string) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	v, err := s.cfg.Get(item)
	if err != nil {
		return provisioning.Configurationf("%w", err)
	}
	_, err = fmt.Fprintln(s.printer.Out(), v)
	return err
}

// setting is one row of print-config.
type setting struct {
	Item    string `json:"item" yaml:"item"`
	Value   string `json:"value" yaml:"value"`
	Default string `json:"default" yaml:"default"`
}

// PrintConfig prints every item with its effective value and default.
// Secrets are masked.
func PrintConfig(opts *Options) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	var settings []setting
	rows := make([][]string, 0, len(config.Items()))
	for _, it := range config.Items() {
		v := it.Value(s.cfg)
		if it.Secret {
			v = maskSecret(v)
		}
		settings = append(settings, setting{Item: it.Name, Value: v, Default: it.Default()})
		rows = append(rows, []string{it.Name, v, it.Default()})
	}
	return render(s, settings, []string{"ITEM", "VALUE", "DEFAULT"}, rows)
}

// Touch creates the config directory and default settings file.
func Touch(opts *Options) error {
	local := *opts
	local.Overrides = nil
	s, err := openSession(&local)
	if err != nil {
		return err
	}
	defer s.close()

	s.printer.Message("config in %s", s.store.Dir())
	return nil
}

// maskSecret keeps the last four characters of a set secret.
func maskSecret(v string) string {
	switch {
	case v == "":
		return ""
	case len(v) <= 8:
		return strings.Repeat("*", len(v))
	default:
		return strings.Repeat("*", 8) + v[len(v)-4:]
	}
}
