package preflight

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/harborwave/harbor-wave/internal/config"
	"github.com/harborwave/harbor-wave/internal/payload"
	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
	"github.com/harborwave/harbor-wave/internal/provisioning"
	"github.com/harborwave/harbor-wave/internal/util/tags"
)

// Status scores one check.
type Status string

const (
	StatusOK      Status = "OK"
	StatusInvalid Status = "INVALID"
	StatusSkipped Status = "SKIPPED"
)

// Check is the result for one configuration item.
type Check struct {
	Field   string `json:"field" yaml:"field"`
	Status  Status `json:"status" yaml:"status"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Report is the ordered list of checks.
type Report struct {
	Checks []Check `json:"checks" yaml:"checks"`
	// Aborted is set when a fatal check stopped validation early.
	Aborted bool `json:"aborted" yaml:"aborted"`
}

// Errors counts INVALID checks. Zero means ready for provisioning.
func (r *Report) Errors() int {
	n := 0
	for _, c := range r.Checks {
		if c.Status == StatusInvalid {
			n++
		}
	}
	return n
}

// Err returns an ErrValidationFailed error when any check is INVALID.
func (r *Report) Err() error {
	if n := r.Errors(); n > 0 {
		return fmt.Errorf("%w: %d errors", provisioning.ErrValidationFailed, n)
	}
	return nil
}

// Check returns the check for field.
func (r *Report) Check(field string) (Check, bool) {
	i := slices.IndexFunc(r.Checks, func(c Check) bool { return c.Field == field })
	if i < 0 {
		return Check{}, false
	}
	return r.Checks[i], true
}

func (r *Report) add(field string, status Status, format string, args ...interface{}) {
	r.Checks = append(r.Checks, Check{Field: field, Status: status, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) ok(field, format string, args ...interface{}) {
	r.add(field, StatusOK, format, args...)
}

func (r *Report) invalid(field, format string, args ...interface{}) {
	r.add(field, StatusInvalid, format, args...)
}

func (r *Report) skip(field, format string, args ...interface{}) {
	r.add(field, StatusSkipped, format, args...)
}

// Connector opens a provider session for a token.
type Connector func(token string) (digitalocean.Gateway, error)

// Validator runs the checks.
type Validator struct {
	connect Connector
}

// NewValidator returns a Validator that opens sessions with connect.
func NewValidator(connect Connector) *Validator {
	return &Validator{connect: connect}
}

var baseNamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

const minNameLength = 2

// online check field names, in run order
var onlineFields = []string{"account", config.ItemRegion, config.ItemSize, config.ItemSSHKeyN,
	config.ItemProject, config.ItemTemplate, config.ItemDomain}

// Validate scores cfg. A provider that cannot be reached aborts validation
// with an error wrapping ErrProviderUnavailable; every other problem is
// reported as an INVALID check.
func (v *Validator) Validate(ctx context.Context, cfg *config.Config) (*Report, error) {
	r := &Report{}

	checkBaseName(r, cfg.BaseName)
	checkTag(r, cfg.Tag)
	checkPayload(r, cfg)

	if err := digitalocean.ValidateCredential(cfg.APIKey); err != nil {
		r.invalid(config.ItemAPIKey, "%v", err)
		r.abort()
		return r, nil
	}
	r.ok(config.ItemAPIKey, "well formed")

	cloud, err := v.connect(cfg.APIKey)
	if err != nil {
		r.invalid("account", "%v", err)
		r.abort()
		return r, nil
	}

	acct, err := cloud.GetAccount(ctx)
	if err != nil {
		if errors.Is(err, digitalocean.ErrProviderUnavailable) || ctx.Err() != nil {
			return r, fmt.Errorf("failed to reach account: %w", err)
		}
		r.invalid("account", "%v", err)
		r.abort()
		return r, nil
	}
	r.ok("account", "%s (%s)", acct.Email, acct.Status)

	online := []func(context.Context, *Report, digitalocean.Gateway, *config.Config) error{
		checkRegion, checkSize, checkSSHKey, checkProject, checkTemplate, checkDomain,
	}
	for _, check := range online {
		if err := check(ctx, r, cloud, cfg); err != nil {
			return r, err
		}
	}
	return r, nil
}

// abort marks the online checks that did not run.
func (r *Report) abort() {
	r.Aborted = true
	for _, f := range onlineFields {
		if _, done := r.Check(f); !done {
			r.skip(f, "not checked")
		}
	}
}

func checkBaseName(r *Report, name string) {
	switch {
	case name == "":
		r.invalid(config.ItemBaseName, "empty")
	case len(name) < minNameLength:
		r.invalid(config.ItemBaseName, "must be at least %d characters", minNameLength)
	case !baseNamePattern.MatchString(name):
		r.invalid(config.ItemBaseName, "must be alphanumeric")
	default:
		r.ok(config.ItemBaseName, "%s", name)
	}
}

func checkTag(r *Report, tag string) {
	switch {
	case tag == "":
		r.invalid(config.ItemTag, "empty")
	case len(tag) < minNameLength:
		r.invalid(config.ItemTag, "must be at least %d characters", minNameLength)
	case !tags.Valid(tag):
		r.invalid(config.ItemTag, "may only contain letters, digits, '-', '_' and ':'")
	default:
		r.ok(config.ItemTag, "%s", tag)
	}
}

func checkPayload(r *Report, cfg *config.Config) {
	path, isFile := cfg.PayloadFile()
	if !isFile {
		r.ok(config.ItemPayload, "inline, %d bytes", len(cfg.Payload))
		return
	}
	src, err := payload.Resolve(cfg.Payload)
	if err != nil {
		r.invalid(config.ItemPayload, "%v", err)
		return
	}
	r.ok(config.ItemPayload, "%s, %d bytes", path, len(src.Content))
}

func checkRegion(ctx context.Context, r *Report, cloud digitalocean.Gateway, cfg *config.Config) error {
	regions, err := cloud.ListRegions(ctx)
	if err != nil {
		return listFailed(r, config.ItemRegion, "regions", err)
	}
	i := slices.IndexFunc(regions, func(reg digitalocean.Region) bool { return reg.Slug == cfg.Region })
	switch {
	case i < 0:
		r.invalid(config.ItemRegion, "%q is not a known region", cfg.Region)
	case !regions[i].Available:
		r.invalid(config.ItemRegion, "%s is not accepting new droplets", cfg.Region)
	default:
		r.ok(config.ItemRegion, "%s (%s)", cfg.Region, regions[i].Name)
	}
	return nil
}

func checkSize(ctx context.Context, r *Report, cloud digitalocean.Gateway, cfg *config.Config) error {
	sizes, err := cloud.ListSizes(ctx)
	if err != nil {
		return listFailed(r, config.ItemSize, "sizes", err)
	}
	if !slices.ContainsFunc(sizes, func(s digitalocean.Size) bool { return s.Slug == cfg.Size }) {
		r.invalid(config.ItemSize, "%q is not a known size", cfg.Size)
		return nil
	}
	r.ok(config.ItemSize, "%s", cfg.Size)
	return nil
}

func checkSSHKey(ctx context.Context, r *Report, cloud digitalocean.Gateway, cfg *config.Config) error {
	keys, err := cloud.ListKeys(ctx)
	if err != nil {
		return listFailed(r, config.ItemSSHKeyN, "ssh keys", err)
	}
	if cfg.SSHKeyN < 0 || cfg.SSHKeyN >= len(keys) {
		r.invalid(config.ItemSSHKeyN, "index %d out of range, account has %d keys", cfg.SSHKeyN, len(keys))
		return nil
	}
	r.ok(config.ItemSSHKeyN, "%d: %s", cfg.SSHKeyN, keys[cfg.SSHKeyN].Name)
	return nil
}

func checkProject(ctx context.Context, r *Report, cloud digitalocean.Gateway, cfg *config.Config) error {
	if cfg.Project == "" {
		r.skip(config.ItemProject, "not set")
		return nil
	}
	projects, err := cloud.ListProjects(ctx)
	if err != nil {
		return listFailed(r, config.ItemProject, "projects", err)
	}
	if !slices.ContainsFunc(projects, func(p digitalocean.Project) bool { return p.Name == cfg.Project }) {
		r.invalid(config.ItemProject, "no project named %q", cfg.Project)
		return nil
	}
	r.ok(config.ItemProject, "%s", cfg.Project)
	return nil
}

func checkTemplate(ctx context.Context, r *Report, cloud digitalocean.Gateway, cfg *config.Config) error {
	if cfg.Template == "" {
		r.invalid(config.ItemTemplate, "not set")
		return nil
	}
	images, err := cloud.ListImages(ctx)
	if err != nil {
		return listFailed(r, config.ItemTemplate, "images", err)
	}
	i := slices.IndexFunc(images, func(img digitalocean.Image) bool {
		return strconv.Itoa(img.ID) == cfg.Template || (img.Slug != "" && img.Slug == cfg.Template)
	})
	if i < 0 {
		r.invalid(config.ItemTemplate, "%q is not one of the account's custom images", cfg.Template)
		return nil
	}
	r.ok(config.ItemTemplate, "%s (%s)", cfg.Template, images[i].Name)
	return nil
}

func checkDomain(ctx context.Context, r *Report, cloud digitalocean.Gateway, cfg *config.Config) error {
	if !cfg.UseDNS() {
		r.skip(config.ItemDomain, "DNS disabled")
		return nil
	}
	domains, err := cloud.ListDomains(ctx)
	if err != nil {
		return listFailed(r, config.ItemDomain, "domains", err)
	}
	want := strings.TrimSuffix(cfg.Domain, ".")
	if !slices.ContainsFunc(domains, func(d digitalocean.Domain) bool { return strings.EqualFold(d.Name, want) }) {
		r.invalid(config.ItemDomain, "%s is not managed by this account", cfg.Domain)
		return nil
	}
	r.ok(config.ItemDomain, "%s", cfg.Domain)
	return nil
}

// listFailed scores field INVALID for a permanent error and aborts
// validation for an unreachable provider.
func listFailed(r *Report, field, what string, err error) error {
	if errors.Is(err, digitalocean.ErrProviderUnavailable) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("failed to list %s: %w", what, err)
	}
	r.invalid(field, "could not list %s: %v", what, err)
	return nil
}
