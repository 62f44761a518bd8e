package handlers

import (
	"context"

	"github.com/harborwave/harbor-wave/internal/provisioning/preflight"
)

// CheckConfig validates the effective config against the account and
// prints one line per item.
func CheckConfig(ctx context.Context, opts *Options) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	s.logger.V(1).Info("validating config", "dir", s.store.Dir())
	report, err := preflight.NewValidator(preflight.Connector(connect)).Validate(ctx, s.cfg)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(report.Checks))
	for _, c := range report.Checks {
		status := string(c.Status)
		if !s.printer.Terse && tableOutput(s.opts) {
			status = styleStatus(s, c.Status)
		}
		rows = append(rows, []string{c.Field, status, c.Message})
	}
	if err := render(s, report, []string{"FIELD", "STATUS", "MESSAGE"}, rows); err != nil {
		return err
	}

	if !s.printer.Terse {
		if n := report.Errors(); n > 0 {
			s.printer.Error("%d item(s) invalid", n)
		} else {
			s.printer.Message("config OK")
		}
	}
	return report.Err()
}

func styleStatus(s *session, st preflight.Status) string {
	styles := s.printer.Styles()
	switch st {
	case preflight.StatusOK:
		return styles.OK.Render(string(st))
	case preflight.StatusInvalid:
		return styles.Error.Render(string(st))
	default:
		return styles.Dim.Render(string(st))
	}
}
