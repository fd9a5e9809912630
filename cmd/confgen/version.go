package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"rustrial-os/confgen/pkg/cli"
)

var (
	// Version is the semantic version (set by build flags)
	Version = "0.1.0"
	// GitCommit is the git commit hash (set by build flags)
	GitCommit = "unknown"
	// BuildDate is the build timestamp (set by build flags)
	BuildDate = "unknown"
)

var versionFlags struct {
	format string
}

// versionInfo is the JSON shape of the version report.
type versionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OSArch    string `json:"os_arch"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including Git commit and build date.`,
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVar(&versionFlags.format, "format", "text", "output format: text, json")
}

func runVersion(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(versionFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}

	if format == cli.FormatJSON {
		return cli.WriteJSON(os.Stdout, versionInfo{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
			OSArch:    fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		})
	}

	fmt.Printf("confgen %s\n", Version)
	fmt.Printf("Git Commit: %s\n", GitCommit)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Go Version: %s\n", runtime.Version())
	fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return nil
}
