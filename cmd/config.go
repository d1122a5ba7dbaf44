/*
Copyright © 2025 CODA Project
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/common-creation/tokenscope/internal/config"
)

func (c *cli) newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tokenscope configuration",
		Long: `View, create, and validate tokenscope configuration files.

Configuration is read from YAML or TOML files, then overridden by
TOKENSCOPE_* environment variables and command line flags.`,
		// Subcommands load configuration themselves so that a broken file
		// can still be located and replaced.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}

	configCmd.AddCommand(
		c.newConfigShowCmd(),
		c.newConfigPathCmd(),
		c.newConfigInitCmd(),
		c.newConfigValidateCmd(),
	)

	return configCmd
}

func (c *cli) newConfigShowCmd() *cobra.Command {
	var outputFormat string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Display the configuration after merging the config file, environment
variables and command line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfiguration()
			if err != nil {
				return err
			}

			var output []byte
			switch strings.ToLower(outputFormat) {
			case "json":
				output, err = json.MarshalIndent(cfg, "", "  ")
				output = append(output, '\n')
			case "toml":
				var b strings.Builder
				err = toml.NewEncoder(&b).Encode(cfg)
				output = []byte(b.String())
			case "yaml", "yml":
				output, err = yaml.Marshal(cfg)
			default:
				return fmt.Errorf("unsupported output format: %s (must be yaml, json or toml)", outputFormat)
			}
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(output)
			return err
		},
	}

	showCmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "output format (yaml, json, toml)")

	return showCmd
}

func (c *cli) newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), config.NewLoader().GetConfigPath(c.cfgFile))
			return nil
		},
	}
}

func (c *cli) newConfigInitCmd() *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a commented configuration file",
		Long: `Write a sample configuration file to the default location, or to the
path given with --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.cfgFile
			if path == "" {
				path = config.DefaultConfigPath()
			}

			if err := config.CreateSampleConfig(path, force); err != nil {
				return err
			}

			c.statusReporter(cmd.OutOrStdout()).PrintSuccess("Created config file at " + path)
			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return initCmd
}

func (c *cli) newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfiguration()
			if err != nil {
				return err
			}
			c.cfg = cfg

			path := config.NewLoader().GetConfigPath(c.cfgFile)
			c.statusReporter(cmd.OutOrStdout()).PrintSuccess("Configuration is valid (" + path + ")")
			return nil
		},
	}
}
