/*
Copyright © 2025 CODA Project

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/common-creation/tokenscope/internal/config"
	"github.com/common-creation/tokenscope/internal/logging"
	"github.com/common-creation/tokenscope/internal/report"
	"github.com/common-creation/tokenscope/internal/tokens"
)

// cli holds the state shared by every command of one invocation
type cli struct {
	v *viper.Viper

	cfgFile string
	debug   bool

	cfg       *config.Config
	logger    *log.Logger
	logCloser io.Closer
	estimator *tokens.Estimator
}

func newCLI() *cli {
	v := viper.New()

	// Environment variable support
	v.SetEnvPrefix("TOKENSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return &cli{
		v:      v,
		logger: logging.Discard(),
	}
}

// newRootCmd builds the command tree
func (c *cli) newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tokenscope",
		Short: "Estimate and visualize LLM token usage",
		Long: `tokenscope counts tokens for text and chat transcripts, shows how much
of a model's context window they use, and compares transcripts before and
after context reduction.

Transcripts are JSON or YAML files holding either a list of messages or a
chat request object with "model" and "messages" fields.`,
		Version:           GetVersionString(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/tokenscope/config.yaml)")
	flags.String("model", "", "model used for encoding and context window (overrides config)")
	flags.String("encoder", "", "encoder back-end: "+strings.Join(tokens.Backends(), ", "))
	flags.String("theme", "", "color theme: default, dark, light")
	flags.Bool("no-color", false, "disable colored output")
	flags.BoolVar(&c.debug, "debug", false, "enable debug logging")

	// Bind flags to viper
	c.v.BindPFlag("model", flags.Lookup("model"))
	c.v.BindPFlag("encoder", flags.Lookup("encoder"))
	c.v.BindPFlag("theme", flags.Lookup("theme"))
	c.v.BindPFlag("no_color", flags.Lookup("no-color"))

	rootCmd.AddCommand(
		c.newCountCmd(),
		c.newMessagesCmd(),
		c.newCompareCmd(),
		c.newWindowsCmd(),
		c.newViewCmd(),
		c.newConfigCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// setup loads configuration and builds the logger and estimator
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := c.loadConfiguration()
	if err != nil {
		return err
	}
	c.cfg = cfg

	logger, closer, err := logging.Open(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	c.logger = logger
	c.logCloser = closer

	registry, err := tokens.NewRegistry(cfg.Encoder)
	if err != nil {
		return err
	}
	c.estimator = tokens.NewEstimator(registry,
		tokens.WithLogger(logger),
		tokens.WithWindows(cfg.Windows()),
	)

	c.logger.Debug("configuration loaded",
		"model", cfg.Model,
		"encoder", cfg.Encoder,
		"theme", cfg.UI.Theme,
	)
	return nil
}

func (c *cli) loadConfiguration() (*config.Config, error) {
	loader := config.NewLoader()

	cfg, err := loader.Load(c.cfgFile)
	if err != nil {
		return nil, err
	}

	// Apply command line overrides
	if c.v.IsSet("model") {
		cfg.Model = c.v.GetString("model")
	}
	if c.v.IsSet("encoder") {
		cfg.Encoder = c.v.GetString("encoder")
	}
	if c.v.IsSet("theme") {
		cfg.UI.Theme = c.v.GetString("theme")
	}
	if c.v.GetBool("no_color") {
		cfg.UI.NoColor = true
	}
	if c.debug {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command line override: %w", err)
	}

	return cfg, nil
}

// modelOverridden reports whether the model came from a flag or the environment
func (c *cli) modelOverridden() bool {
	return c.v.IsSet("model")
}

// newReporter creates a reporter writing to w for the configured model
func (c *cli) newReporter(w io.Writer, model string) *report.Reporter {
	return report.NewReporter(w,
		report.WithEstimator(c.estimator),
		report.WithModel(model),
		report.WithTheme(c.cfg.UI.Theme),
		report.WithNoColor(c.cfg.UI.NoColor),
		report.WithBarWidth(c.cfg.UI.BarWidth),
	)
}

// statusReporter returns a reporter for status lines, usable before setup succeeded
func (c *cli) statusReporter(w io.Writer) *report.Reporter {
	noColor := os.Getenv("NO_COLOR") != "" || c.v.GetBool("no_color")
	theme := ""
	if c.cfg != nil {
		noColor = noColor || c.cfg.UI.NoColor
		theme = c.cfg.UI.Theme
	}

	return report.NewReporter(w,
		report.WithEstimator(tokens.NewEstimator(tokens.NewHeuristicRegistry())),
		report.WithTheme(theme),
		report.WithNoColor(noColor),
	)
}

func (c *cli) close() {
	if c.logCloser != nil {
		c.logCloser.Close()
	}
}

// Execute runs the root command and returns the process exit code
func Execute(ctx context.Context) int {
	return execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	c := newCLI()
	defer c.close()

	rootCmd := c.newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		c.statusReporter(errOut).PrintError(err.Error())
		return 1
	}
	return 0
}
