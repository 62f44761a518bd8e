package spawn

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/harborwave/harbor-wave/internal/payload"
	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
	"github.com/harborwave/harbor-wave/internal/provisioning"
	"github.com/harborwave/harbor-wave/internal/util/naming"
	"github.com/harborwave/harbor-wave/internal/util/tags"
)

var (
	// ErrDomainNotRegistered is returned when the configured domain is not
	// managed by the account.
	ErrDomainNotRegistered = errors.New("domain not registered")

	// ErrPayloadUnreadable is returned when a FILE: payload cannot be read.
	ErrPayloadUnreadable = payload.ErrUnreadable

	// ErrSSHKeyIndex is returned when ssh-key-n is outside the account's key list.
	ErrSSHKeyIndex = errors.New("ssh key index out of range")
)

// Plan is a validated batch, ready to create.
type Plan struct {
	Count   int
	Members []Member
	SSHKey  digitalocean.Key
	Tags    []string
}

// Prepare checks every precondition and builds the per-instance metadata.
// It makes read-only provider calls and never creates anything.
func Prepare(ctx *provisioning.Context, n int) (*Plan, error) {
	cfg := ctx.Config
	if n < 1 {
		return nil, provisioning.Configurationf("instance count must be at least 1, got %d", n)
	}
	if cfg.BaseName == "" {
		return nil, provisioning.Configurationf("base-name is empty")
	}
	if cfg.Template == "" {
		return nil, provisioning.Configurationf("template is not set")
	}
	if !tags.Valid(cfg.Tag) {
		return nil, provisioning.Configurationf("tag %q is not a valid droplet tag", cfg.Tag)
	}

	src, err := payload.Resolve(cfg.Payload)
	if err != nil {
		return nil, provisioning.Configurationf("%w", err)
	}

	if cfg.UseDNS() {
		if err := checkDomain(ctx, cfg.Domain); err != nil {
			return nil, err
		}
	}

	key, err := sshKey(ctx, cfg.SSHKeyN)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Count:  n,
		SSHKey: key,
		Tags:   tags.NewBuilder(cfg.Tag).Build(),
	}
	for i := range n {
		host := naming.Host(cfg.BaseName, i, n)
		userData, err := payload.New(src, cfg.BaseName, cfg.Domain, i, n).Encode()
		if err != nil {
			return nil, provisioning.Configurationf("%w", err)
		}
		plan.Members = append(plan.Members, Member{
			Sequence: i,
			Name:     naming.FQDN(host, cfg.Domain),
			Host:     host,
			userData: userData,
		})
	}
	return plan, nil
}

func checkDomain(ctx *provisioning.Context, domain string) error {
	domains, err := ctx.Cloud.ListDomains(ctx)
	if err != nil {
		return fmt.Errorf("failed to list domains: %w", err)
	}
	want := strings.TrimSuffix(domain, ".")
	if !slices.ContainsFunc(domains, func(d digitalocean.Domain) bool { return strings.EqualFold(d.Name, want) }) {
		return provisioning.Configurationf("%w: %s", ErrDomainNotRegistered, domain)
	}
	return nil
}

func sshKey(ctx *provisioning.Context, index int) (digitalocean.Key, error) {
	keys, err := ctx.Cloud.ListKeys(ctx)
	if err != nil {
		return digitalocean.Key{}, fmt.Errorf("failed to list ssh keys: %w", err)
	}
	if index < 0 || index >= len(keys) {
		return digitalocean.Key{}, provisioning.Configurationf("%w: ssh-key-n is %d, account has %d keys",
			ErrSSHKeyIndex, index, len(keys))
	}
	return keys[index], nil
}
