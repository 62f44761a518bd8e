package handlers

import (
	"context"
	"strconv"

	"github.com/harborwave/harbor-wave/internal/provisioning/destroy"
	"github.com/harborwave/harbor-wave/internal/provisioning/fleet"
	"github.com/harborwave/harbor-wave/internal/ui"
)

var runDestroy = destroy.Destroy

// Destroy handles the destroy command. With ALL in args every droplet tagged
// with the fleet tag goes; otherwise only those named after base-name.
func Destroy(ctx context.Context, opts *Options, args []string) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.close()

	cloud, err := s.cloud()
	if err != nil {
		return err
	}
	pCtx := s.provisioningContext(ctx, cloud)

	if fleet.WantsAll(args) {
		s.printer.Message("destroying every droplet tagged %s", s.cfg.Tag)
	} else {
		s.printer.Message("destroying droplets tagged %s named %s*", s.cfg.Tag, s.cfg.BaseName)
	}

	report, err := runDestroy(pCtx, args)
	if report != nil {
		if rerr := renderDestroy(s.printer, report, s.cfg.UseDNS()); rerr != nil {
			return rerr
		}
	}
	return err
}

func renderDestroy(p *ui.Printer, report *destroy.Report, useDNS bool) error {
	rows := make([][]string, 0, len(report.Targets))
	for _, t := range report.Targets {
		result := "destroyed"
		if !t.Destroyed() {
			result = "failed"
		}
		dnsCol := "-"
		switch {
		case !useDNS || !t.Destroyed():
		case t.DNSErr != nil:
			dnsCol = "failed"
		default:
			dnsCol = "removed"
		}
		rows = append(rows, []string{t.Instance.Name, strconv.Itoa(t.Instance.ID), result, dnsCol})
	}
	if len(rows) > 0 {
		if err := p.Table([]string{"NAME", "ID", "RESULT", "DNS"}, rows); err != nil {
			return err
		}
	}

	if !p.Terse {
		p.Message("%d of %d destroyed, %d failed", report.Destroyed(), len(report.Targets), report.Failed())
		if useDNS {
			p.Submsg("%d DNS record(s) removed, %d failed", report.DNSRemoved(), report.DNSFailed())
		}
	}
	return nil
}
