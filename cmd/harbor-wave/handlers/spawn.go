package handlers

import (
	"context"
	"strconv"

	"github.com/harborwave/harbor-wave/internal/provisioning"
	"github.com/harborwave/harbor-wave/internal/provisioning/spawn"
	"github.com/harborwave/harbor-wave/internal/ui"
)

var runSpawn = spawn.Spawn

// Spawn handles the spawn command. args holds an optional instance count,
// default 1.
func Spawn(ctx context.Context, opts *Options, args []string) error {
	n, err := parseCount(args)
	if err != nil {
		return err
	}

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

	s.printer.Message("spawning %d droplet(s) from template %s in %s, tag %s", n, s.cfg.Template, s.cfg.Region, s.cfg.Tag)
	report, err := runSpawn(pCtx, n)
	if report != nil {
		if rerr := renderSpawn(s.printer, report); rerr != nil {
			return rerr
		}
	}
	return err
}

func parseCount(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, provisioning.Configurationf("instance count must be a positive integer, got %q", args[0])
	}
	return n, nil
}

func renderSpawn(p *ui.Printer, report *spawn.Report) error {
	rows := make([][]string, 0, len(report.Members))
	for _, m := range report.Members {
		id, address := "-", m.Address
		switch {
		case !m.Created():
			address = "create failed"
		default:
			id = strconv.Itoa(m.Instance.ID)
			if !report.Waited {
				address = "not waited"
			} else if address == "" {
				address = "timeout"
			}
		}
		dnsCol := "-"
		if report.DNS && m.Created() {
			dnsCol = string(m.DNS)
		}
		rows = append(rows, []string{m.Name, id, address, dnsCol})
	}
	if err := p.Table([]string{"NAME", "ID", "ADDRESS", "DNS"}, rows); err != nil {
		return err
	}

	if !p.Terse {
		p.Message("%s: %d of %d created, %d failed", report.Status(), report.Created(), report.Requested, report.Failed())
		if n := report.TimedOut(); n > 0 {
			p.Submsg("%d droplet(s) got no address in time", n)
		}
		if n := report.DNSFailed(); n > 0 {
			p.Submsg("%d DNS record(s) not published", n)
		}
	}
	return nil
}
