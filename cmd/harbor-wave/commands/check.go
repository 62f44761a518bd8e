package commands

import (
	"github.com/spf13/cobra"

	"github.com/harborwave/harbor-wave/cmd/harbor-wave/handlers"
)

// CheckConfig returns the check-config command.
//
// It validates the effective settings offline and against the account,
// one line per item.
func CheckConfig(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate settings against the account",
		Long: `Check-config scores every setting OK, INVALID or SKIPPED.

Offline checks cover base-name, tag, payload and the API key format. With a
well-formed key, the account is queried to confirm region, size, SSH key
index, project, template and domain. Exits 9 when any item is INVALID.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.CheckConfig(cmd.Context(), opts)
		},
	}
}
