package fleet

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/harborwave/harbor-wave/internal/platform/digitalocean"
)

// AllToken selects the whole tagged fleet in destroy arguments.
const AllToken = "ALL"

// MembersByTag returns the droplets tagged tag, in provider order.
func MembersByTag(ctx context.Context, cloud digitalocean.InstanceManager, tag string) ([]digitalocean.Instance, error) {
	instances, err := cloud.ListInstances(ctx, tag)
	if err != nil {
		return nil, fmt.Errorf("failed to list fleet %q: %w", tag, err)
	}
	return instances, nil
}

// MembersBySeries returns the instances whose name starts with baseName.
// The match is a case-sensitive literal prefix: "web" matches "web1" and
// "webhost" alike.
func MembersBySeries(baseName string, instances []digitalocean.Instance) []digitalocean.Instance {
	var out []digitalocean.Instance
	for _, in := range instances {
		if strings.HasPrefix(in.Name, baseName) {
			out = append(out, in)
		}
	}
	return out
}

// WantsAll reports whether args contain the literal ALL token.
func WantsAll(args []string) bool {
	return slices.Contains(args, AllToken)
}

// ResolveDestroyTargets returns the whole tagged fleet when args contain ALL,
// otherwise the tagged droplets in the baseName series.
func ResolveDestroyTargets(ctx context.Context, cloud digitalocean.InstanceManager, args []string, tag, baseName string) ([]digitalocean.Instance, error) {
	members, err := MembersByTag(ctx, cloud, tag)
	if err != nil {
		return nil, err
	}
	if WantsAll(args) {
		return members, nil
	}
	return MembersBySeries(baseName, members), nil
}
