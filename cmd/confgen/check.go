package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"rustrial-os/confgen/pkg/cli"
	"rustrial-os/confgen/pkg/compiler"
	"rustrial-os/confgen/pkg/osconf"
)

var checkFlags struct {
	config string
	strict bool
	format string
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration document",
	Long: `Validate the configuration document without writing any output.

Every finding is reported, not just the first one, so a document with
several bad fields can be fixed in one pass. The exit code is non-zero
when the document does not validate.

Examples:
  # Validate config.toml
  confgen check

  # Validate a specific document, rejecting unknown fields
  confgen check --config boards/qemu.toml --strict

  # JSON findings for CI
  confgen check --format json`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFlags.config, "config", "c", "", "configuration document path")
	checkCmd.Flags().BoolVar(&checkFlags.strict, "strict", false, "reject unknown document sections and fields")
	checkCmd.Flags().StringVar(&checkFlags.format, "format", "text", "output format: text, json")
}

// checkFinding is one validation finding in the JSON report.
type checkFinding struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// checkReport is the JSON document emitted by check.
type checkReport struct {
	Valid        bool           `json:"valid"`
	ConfigPath   string         `json:"config_path,omitempty"`
	UsedDefaults bool           `json:"used_defaults"`
	Fields       int            `json:"fields,omitempty"`
	Constants    int            `json:"constants,omitempty"`
	Findings     []checkFinding `json:"findings,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	format, err := cli.ParseFormat(checkFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}

	req, err := buildRequest(s, checkFlags.config, cmd.Flags().Changed("config"),
		"", "", checkFlags.strict)
	if err != nil {
		return err
	}

	// Check never appends to the run ledger.
	comp := compiler.New(&compiler.Config{ToolVersion: Version})

	res, err := comp.Check(req)
	if err != nil {
		var verr *osconf.ValidationError
		if errors.As(err, &verr) {
			if rerr := reportFindings(os.Stdout, format, req.ConfigPath, verr); rerr != nil {
				return rerr
			}
			return cli.NewCommandError("check", fmt.Errorf("%d validation finding(s)", len(verr.Errors)))
		}
		return err
	}

	if format == cli.FormatJSON {
		configPath := req.ConfigPath
		if res.UsedDefaults {
			// Matches the run ledger convention: no path when the
			// built-in defaults stood in for a document.
			configPath = ""
		}
		return cli.WriteJSON(os.Stdout, checkReport{
			Valid:        true,
			ConfigPath:   configPath,
			UsedDefaults: res.UsedDefaults,
			Fields:       len(res.Config.Fields()),
			Constants:    res.RenderedFields(),
		})
	}

	if res.UsedDefaults {
		cli.Successf(os.Stdout, "Built-in defaults are valid (no document found)")
	} else {
		cli.Successf(os.Stdout, "Configuration is valid")
	}
	return nil
}

// reportFindings writes every validation finding to w.
func reportFindings(w io.Writer, format cli.OutputFormat, configPath string, verr *osconf.ValidationError) error {
	if format == cli.FormatJSON {
		report := checkReport{
			Valid:      false,
			ConfigPath: configPath,
		}
		for _, fe := range verr.Errors {
			report.Findings = append(report.Findings, checkFinding{
				Field:   fe.Path(),
				Kind:    string(fe.Kind),
				Message: fe.Reason,
			})
		}
		return cli.WriteJSON(w, report)
	}

	for _, fe := range verr.Errors {
		cli.Failuref(w, "%s: %s", fe.Path(), fe.Reason)
	}
	return nil
}
