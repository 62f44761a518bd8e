package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/harborwave/harbor-wave/cmd/harbor-wave/handlers"
)

// List returns the list command.
func List(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list {" + strings.Join(handlers.ListTargets, "|") + "}",
		Short: "List fleet droplets or account resources",
		Long: `List shows one kind of resource:

  machines     droplets carrying the fleet tag
  templates    custom images usable as template
  regions      datacenter regions
  sizes        droplet sizes with monthly price
  projects     account projects
  domains      managed DNS domains
  ssh-keys     SSH keys by index, the configured one marked with *
  money-left   account balance and month-to-date usage

Use -o json or -o yaml for machine-readable output, -T for CSV.`,
		ValidArgs: handlers.ListTargets,
		Args:      usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.List(cmd.Context(), opts, args[0])
		},
	}
}
