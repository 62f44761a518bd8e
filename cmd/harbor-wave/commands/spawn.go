package commands

import (
	"github.com/spf13/cobra"

	"github.com/harborwave/harbor-wave/cmd/harbor-wave/handlers"
)

// Spawn returns the spawn command.
//
// Droplets are named after base-name with a sequence number when more than
// one is requested, tagged with the fleet tag, and get their metadata as
// user data.
func Spawn(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "spawn [N]",
		Short: "Create N droplets from the template (default 1)",
		Long: `Spawn creates N droplets from the configured template in parallel.

Each droplet receives a JSON metadata document as user data with its
sequence number, the fleet size, base-name, domain and payload. With wait
enabled, spawn polls until every droplet has a public address. With a
domain set, an A record per droplet is created or updated.

Example:
  harbor-wave spawn 3 -n web -d example.com`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Spawn(cmd.Context(), opts, args)
		},
	}
}
