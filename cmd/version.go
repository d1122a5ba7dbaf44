/*
Copyright © 2025 CODA Project
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"sort"

	"github.com/spf13/cobra"

	"github.com/common-creation/tokenscope/internal/tokens"
)

// Version information variables
// These are set at build time using ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

// SetVersion sets the version information for the application
func SetVersion(version, commit, date string) {
	if version != "" {
		Version = version
	}
	if commit != "" {
		Commit = commit
	}
	if date != "" {
		Date = date
	}
}

func newVersionCmd() *cobra.Command {
	var (
		verbose    bool
		jsonOutput bool
	)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long: `Display detailed version information about tokenscope.

Shows the version number, build information, and platform details.`,
		Args: cobra.NoArgs,
		// Version output never depends on configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			info := getVersionInfo()
			out := cmd.OutOrStdout()

			if jsonOutput {
				return outputJSON(out, info)
			}
			if verbose {
				return outputVerbose(out, info)
			}

			fmt.Fprintf(out, "tokenscope version %s\n", info.Version)
			return nil
		},
	}

	versionCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed version information")
	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "output version information as JSON")

	return versionCmd
}

// VersionInfo contains all version-related information
type VersionInfo struct {
	Version   string            `json:"version"`
	Commit    string            `json:"commit"`
	Date      string            `json:"date"`
	GoVersion string            `json:"go_version"`
	Platform  string            `json:"platform"`
	Encoders  []string          `json:"encoders"`
	BuildInfo map[string]string `json:"build_info,omitempty"`
}

func getVersionInfo() VersionInfo {
	info := VersionInfo{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Encoders:  tokens.Backends(),
	}

	// Get build info if available
	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		info.BuildInfo = make(map[string]string)

		if buildInfo.Main.Version != "" {
			info.BuildInfo["module_version"] = buildInfo.Main.Version
		}

		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.Commit == "unknown" {
					info.Commit = setting.Value
				}
			case "vcs.time":
				if info.Date == "unknown" {
					info.Date = setting.Value
				}
			case "vcs.modified":
				info.BuildInfo["vcs_modified"] = setting.Value
			case "GOOS", "GOARCH", "CGO_ENABLED":
				info.BuildInfo[setting.Key] = setting.Value
			}
		}

		// Tokenizer library versions
		for _, dep := range buildInfo.Deps {
			switch dep.Path {
			case "github.com/tiktoken-go/tokenizer", "github.com/pkoukk/tiktoken-go":
				info.BuildInfo[dep.Path] = dep.Version
			}
		}
	}

	return info
}

func outputJSON(w io.Writer, info VersionInfo) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(info)
}

func outputVerbose(w io.Writer, info VersionInfo) error {
	fmt.Fprintf(w, "tokenscope version %s\n", info.Version)
	fmt.Fprintf(w, "Commit: %s\n", info.Commit)
	fmt.Fprintf(w, "Built: %s\n", info.Date)
	fmt.Fprintf(w, "Go version: %s\n", info.GoVersion)
	fmt.Fprintf(w, "Platform: %s\n", info.Platform)

	fmt.Fprintln(w, "\nEncoder back-ends:")
	for _, name := range info.Encoders {
		fmt.Fprintf(w, "  - %s\n", name)
	}

	if len(info.BuildInfo) > 0 {
		keys := make([]string, 0, len(info.BuildInfo))
		for key := range info.BuildInfo {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		fmt.Fprintln(w, "\nBuild information:")
		for _, key := range keys {
			fmt.Fprintf(w, "  %s: %s\n", key, info.BuildInfo[key])
		}
	}

	return nil
}

// GetVersionString returns a formatted version string
func GetVersionString() string {
	if Version == "dev" {
		return fmt.Sprintf("tokenscope %s (commit: %s)", Version, getShortCommit())
	}
	return fmt.Sprintf("tokenscope %s", Version)
}

func getShortCommit() string {
	if len(Commit) >= 7 {
		return Commit[:7]
	}
	return Commit
}
