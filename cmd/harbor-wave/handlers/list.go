package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
	"github.com/harborwave/harbor-wave/internal/provisioning"
	"github.com/harborwave/harbor-wave/internal/provisioning/fleet"
)

// lister fetches one kind of listing and renders it.
type lister func(ctx context.Context, s *session, cloud digitalocean.Gateway) error

var listers = map[string]lister{
	"machines":   listMachines,
	"templates":  listTemplates,
	"regions":    listRegions,
	"sizes":      listSizes,
	"projects":   listProjects,
	"domains":    listDomains,
	"ssh-keys":   listKeys,
	"money-left": listBalance,
}

// ListTargets names what list accepts, in help order.
var ListTargets = []string{"machines", "templates", "regions", "sizes", "projects", "domains", "ssh-keys", "money-left"}

// List handles the list command.
func List(ctx context.Context, opts *Options, what string) error {
	fn, ok := listers[what]
	if !ok {
		return provisioning.Configurationf("cannot list %q, want one of %s", what, strings.Join(ListTargets, ", "))
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
	return fn(ctx, s, cloud)
}

// render prints v in the requested output format, falling back to a table.
func render(s *session, v interface{}, headers []string, rows [][]string) error {
	return s.printer.Structured(s.opts.Output, v, func() error {
		return s.printer.Table(headers, rows)
	})
}

func listMachines(ctx context.Context, s *session, cloud digitalocean.Gateway) error {
	instances, err := fleet.MembersByTag(ctx, cloud, s.cfg.Tag)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(instances))
	for _, in := range instances {
		rows = append(rows, []string{in.Name, strconv.Itoa(in.ID), in.Region, in.Size, in.Address, in.Status})
	}
	return render(s, instances, []string{"NAME", "ID", "REGION", "SIZE", "ADDRESS", "STATUS"}, rows)
}

func listTemplates(ctx context.Context, s *session, cloud digitalocean.Gateway) error {
	images, err := cloud.ListImages(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(images))
	for _, img := range images {
		rows = append(rows, []string{strconv.Itoa(img.ID), img.Name, img.Distribution, img.Created, strings.Join(img.Regions, " ")})
	}
	return render(s, images, []string{"ID", "NAME", "DISTRIBUTION", "CREATED", "REGIONS"}, rows)
}

func listRegions(ctx context.Context, s *session, cloud digitalocean.Gateway) error {
	regions, err := cloud.ListRegions(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(regions))
	for _, r := range regions {
		rows = append(rows, []string{r.Slug, r.Name, strconv.FormatBool(r.Available)})
	}
	return render(s, regions, []string{"SLUG", "NAME", "AVAILABLE"}, rows)
}

func listSizes(ctx context.Context, s *session, cloud digitalocean.Gateway) error {
	sizes, err := cloud.ListSizes(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(sizes))
	for _, sz := range sizes {
		rows = append(rows, []string{
			sz.Slug,
			strconv.Itoa(sz.Vcpus),
			fmt.Sprintf("%d MB", sz.Memory),
			fmt.Sprintf("%d GB", sz.Disk),
			fmt.Sprintf("$%.2f", sz.PriceMonthly),
		})
	}
	return render(s, sizes, []string{"SLUG", "VCPUS", "MEMORY", "DISK", "PRICE/MO"}, rows)
}

func listProjects(ctx context.Context, s *session, cloud digitalocean.Gateway) error {
	projects, err := cloud.ListProjects(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{p.Name, p.ID, strconv.FormatBool(p.IsDefault), p.Description})
	}
	return render(s, projects, []string{"NAME", "ID", "DEFAULT", "DESCRIPTION"}, rows)
}

func listDomains(ctx context.Context, s *session, cloud digitalocean.Gateway) error {
	domains, err := cloud.ListDomains(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(domains))
	for _, d := range domains {
		rows = append(rows, []string{d.Name, strconv.Itoa(d.TTL)})
	}
	return render(s, domains, []string{"NAME", "TTL"}, rows)
}

func listKeys(ctx context.Context, s *session, cloud digitalocean.Gateway) error {
	keys, err := cloud.ListKeys(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(keys))
	for i, k := range keys {
		mark := ""
		if i == s.cfg.SSHKeyN {
			mark = "*"
		}
		rows = append(rows, []string{strconv.Itoa(i) + mark, k.Name, strconv.Itoa(k.ID), k.Fingerprint})
	}
	return render(s, keys, []string{"INDEX", "NAME", "ID", "FINGERPRINT"}, rows)
}

func listBalance(ctx context.Context, s *session, cloud digitalocean.Gateway) error {
	b, err := cloud.GetBalance(ctx)
	if err != nil {
		return err
	}
	rows := [][]string{
		{"month-to-date balance", b.MonthToDateBalance},
		{"account balance", b.AccountBalance},
		{"month-to-date usage", b.MonthToDateUsage},
		{"generated at", b.GeneratedAt.Format(time.RFC3339)},
	}
	return render(s, b, []string{"ITEM", "VALUE"}, rows)
}
