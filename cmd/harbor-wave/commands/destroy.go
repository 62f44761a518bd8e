package commands

import (
	"github.com/spf13/cobra"

	"github.com/harborwave/harbor-wave/cmd/harbor-wave/handlers"
	"github.com/harborwave/harbor-wave/internal/provisioning/fleet"
)

// Destroy returns the destroy command.
func Destroy(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "destroy [ALL]",
		Short: "Destroy the droplets of the current series, or the whole fleet",
		Long: `Destroy deletes droplets carrying the fleet tag whose names start with
base-name. With ALL, every droplet carrying the fleet tag is deleted.
When a domain is set, the matching A records are removed too.

Example:
  harbor-wave destroy ALL -g wave-1

WARNING: This operation is irreversible.`,
		ValidArgs: []string{fleet.AllToken},
		Args:      usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Destroy(cmd.Context(), opts, args)
		},
	}
}
