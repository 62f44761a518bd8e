// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/harborwave/harbor-wave/cmd/harbor-wave/handlers"
	"github.com/harborwave/harbor-wave/internal/config"
	"github.com/harborwave/harbor-wave/internal/provisioning"
)

// overrideFlags are the persistent flags named after config items. When
// given they override the stored value for one run.
var overrideFlags = []string{
	config.ItemAPIKey,
	config.ItemDomain,
	config.ItemSSHKeyN,
	config.ItemBaseName,
	config.ItemProject,
	config.ItemRegion,
	config.ItemSize,
	config.ItemTemplate,
	config.ItemTag,
	config.ItemWait,
	config.ItemPayload,
}

// Root returns the root command for the harbor-wave CLI.
//
// The root command owns the persistent flags shared by every subcommand.
// Run without a subcommand it prints usage and exits with code 4.
func Root() *cobra.Command {
	opts := &handlers.Options{}

	cmd := &cobra.Command{
		Use:   "harbor-wave",
		Short: "Spawn and tear down fleets of DigitalOcean droplets",
		Long: `harbor-wave creates numbered droplets from a custom image, hands each one
its sequence number and a payload, waits for addresses and publishes DNS
A records under a managed domain. destroy removes the fleet again.

Settings live in the config directory and are changed with set. Every
setting can be overridden for one run with the matching flag.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return provisioning.Configurationf("unknown command %q", args[0])
			}
			return nil
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.Overrides = collectOverrides(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Help()
			return handlers.ErrNoCommand
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return provisioning.Configurationf("%w", err)
	})

	pf := cmd.PersistentFlags()
	pf.StringP(config.ItemAPIKey, "a", "", "DigitalOcean API token")
	pf.StringP(config.ItemDomain, "d", "", "domain for instance DNS names")
	pf.IntP(config.ItemSSHKeyN, "k", config.DefaultSSHKeyN, "index of the account SSH key")
	pf.StringP(config.ItemBaseName, "n", config.DefaultBaseName, "base name for instances")
	pf.StringP(config.ItemProject, "p", "", "project to assign instances to")
	pf.StringP(config.ItemRegion, "r", config.DefaultRegion, "region slug")
	pf.StringP(config.ItemSize, "s", config.DefaultSize, "size slug")
	pf.StringP(config.ItemTemplate, "t", "", "custom image ID or slug")
	pf.StringP(config.ItemTag, "g", config.DefaultTag, "fleet tag")
	pf.BoolP(config.ItemWait, "w", config.DefaultWait, "wait for instance addresses")
	pf.String(config.ItemPayload, "", "payload for instances, or FILE:<path>")

	pf.BoolVarP(&opts.Terse, "terse", "T", false, "CSV output without headers")
	pf.StringVarP(&opts.Output, "output", "o", "table", "output format for listings: table, json or yaml")
	pf.StringVar(&opts.ConfigDir, "config-dir", "", "config directory (default: per-user config dir)")
	pf.CountVarP(&opts.Verbosity, "verbose", "v", "log to stderr, repeat for more detail")
	pf.StringVar(&opts.LogFormat, "log-format", handlers.LogFormatConsole, "log format: console or json")

	// Core commands
	cmd.AddCommand(Spawn(opts))
	cmd.AddCommand(Destroy(opts))
	cmd.AddCommand(List(opts))

	// Settings
	cmd.AddCommand(Set(opts))
	cmd.AddCommand(Get(opts))
	cmd.AddCommand(PrintConfig(opts))
	cmd.AddCommand(CheckConfig(opts))
	cmd.AddCommand(Touch(opts))

	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}

// collectOverrides returns the override flags that were set explicitly.
func collectOverrides(flags *pflag.FlagSet) map[string]string {
	overrides := make(map[string]string)
	flags.Visit(func(f *pflag.Flag) {
		for _, name := range overrideFlags {
			if f.Name == name {
				overrides[name] = f.Value.String()
			}
		}
	})
	return overrides
}

// usageArgs turns argument count errors into configuration errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return provisioning.Configurationf("%w", err)
		}
		return nil
	}
}
