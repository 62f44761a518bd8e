package commands

import (
	"github.com/spf13/cobra"

	"github.com/harborwave/harbor-wave/cmd/harbor-wave/handlers"
	"github.com/harborwave/harbor-wave/internal/config"
)

func itemNames() []string {
	items := config.Items()
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names
}

func completeItems(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return itemNames(), cobra.ShellCompDirectiveNoFileComp
}

// Set returns the set command.
func Set(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "set <item> [value]",
		Short: "Save a setting; an empty value restores the default",
		Long: `Set saves one setting to the config directory. api-key is written to
its own file readable only by the owner. Run print-config to see every item.`,
		Args:              usageArgs(cobra.RangeArgs(1, 2)),
		ValidArgsFunction: completeItems,
		RunE: func(_ *cobra.Command, args []string) error {
			value := ""
			if len(args) == 2 {
				value = args[1]
			}
			return handlers.Set(opts, args[0], value)
		},
	}
}

// Get returns the get command.
func Get(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:               "get <item>",
		Short:             "Print the effective value of a setting",
		Args:              usageArgs(cobra.ExactArgs(1)),
		ValidArgsFunction: completeItems,
		RunE: func(_ *cobra.Command, args []string) error {
			return handlers.Get(opts, args[0])
		},
	}
}

// PrintConfig returns the print-config command.
func PrintConfig(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "print-config",
		Short: "Print every setting with its default",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.PrintConfig(opts)
		},
	}
}

// Touch returns the touch command.
func Touch(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "touch",
		Short: "Create the config directory and default settings file",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Touch(opts)
		},
	}
}
