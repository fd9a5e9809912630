package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rustrial-os/confgen/pkg/compiler"
	"rustrial-os/confgen/pkg/render"
	"rustrial-os/confgen/pkg/settings"
)

var generateFlags struct {
	config string
	output string
	target string
	strict bool
	stdout bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Compile the configuration document",
	Long: `Compile the configuration document into build constants.

The document is read from --config, the settings file, or config.toml
in the working directory. A document named explicitly with --config
must exist; the conventional location falls back to built-in defaults
when absent.

Examples:
  # Compile config.toml into src/config.rs
  confgen generate

  # Name the document and destination explicitly
  confgen generate --config boards/qemu.toml --output src/config.rs

  # Emit a C header for the native bootstrap code
  confgen generate --target c-header

  # Print the rendered output without touching the filesystem
  confgen generate --stdout`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	// The bare invocation runs the same flow, so the root command
	// carries the same flag set pointing at the same destinations.
	addGenerateFlags(generateCmd)
	addGenerateFlags(rootCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&generateFlags.config, "config", "c", "", "configuration document path")
	cmd.Flags().StringVarP(&generateFlags.output, "output", "o", "", "generated file path (default: the target's conventional location)")
	cmd.Flags().StringVarP(&generateFlags.target, "target", "t", "", "output language: rust, c-header")
	cmd.Flags().BoolVar(&generateFlags.strict, "strict", false, "reject unknown document sections and fields")
	cmd.Flags().BoolVar(&generateFlags.stdout, "stdout", false, "print the rendered output instead of writing the file")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}

	req, err := buildRequest(s, generateFlags.config, cmd.Flags().Changed("config"),
		generateFlags.output, generateFlags.target, generateFlags.strict)
	if err != nil {
		return err
	}

	rec, err := newRecorder(s)
	if err != nil {
		return err
	}
	defer rec.Close()

	comp := compiler.New(&compiler.Config{
		ToolVersion: Version,
		Recorder:    rec,
	})

	if generateFlags.stdout {
		res, err := comp.Render(cmd.Context(), req)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(res.Bytes)
		return err
	}

	res, err := comp.Compile(cmd.Context(), req)
	if err != nil {
		return err
	}

	fmt.Print(res.Summary())
	return nil
}

// buildRequest layers command flags over the settings to produce a
// compile request. Only an explicit --config makes the document
// mandatory; the settings path falls back to built-in defaults when the
// file is absent.
func buildRequest(s *settings.Settings, configFlag string, configChanged bool,
	outputFlag, targetFlag string, strictFlag bool) (compiler.Request, error) {

	req := compiler.Request{
		ConfigPath: s.Config,
		Output:     s.Output,
		Strict:     s.Strict,
	}

	target := s.Target
	if targetFlag != "" {
		target = targetFlag
	}
	parsed, err := render.ParseTarget(target)
	if err != nil {
		return compiler.Request{}, err
	}
	req.Target = parsed

	if configChanged {
		req.ConfigPath = configFlag
		req.ConfigRequired = true
	}
	if outputFlag != "" {
		req.Output = outputFlag
	}
	if strictFlag {
		req.Strict = true
	}

	return req, nil
}
