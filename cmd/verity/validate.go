package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"verity-hq/verity/pkg/cli"
	"verity-hq/verity/pkg/contract/diag"
	"verity-hq/verity/pkg/contract/parser"
	"verity-hq/verity/pkg/manager"
)

var validateFlags struct {
	file   string
	dir    string
	strict bool
	format string
	vars   []string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate contract files",
	Long: `Validate data contract and datasource files for syntax and semantic errors.

The validate command parses contract files and performs full validation:
  - YAML syntax validation
  - Top-level structure validation (documents must be objects)
  - Duplicate datasource declaration detection
  - Undefined datasource reference detection

Examples:
  # Validate a single file
  verity validate --file contracts/orders.yml

  # Validate a directory
  verity validate --dir contracts/

  # Strict mode (warnings as errors)
  verity validate --dir contracts/ --strict

  # JSON output for CI/CD
  verity validate --dir contracts/ --format json

  # Substitute ${NAME} placeholders
  verity validate --dir contracts/ --var DS_NAME=warehouse`,
	RunE: validateContracts,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.file, "file", "f", "", "contract file to validate")
	validateCmd.Flags().StringVarP(&validateFlags.dir, "dir", "d", "", "directory of contract files")
	validateCmd.Flags().BoolVar(&validateFlags.strict, "strict", false, "treat warnings as errors")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
	validateCmd.Flags().StringArrayVar(&validateFlags.vars, "var", nil, "variable substitution NAME=value (repeatable)")
}

func validateContracts(cmd *cobra.Command, args []string) error {
	if validateFlags.file == "" && validateFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}
	if validateFlags.file != "" && validateFlags.dir != "" {
		return fmt.Errorf("--file and --dir are mutually exclusive")
	}

	resolver, err := buildResolver(validateFlags.vars)
	if err != nil {
		return err
	}

	p := parser.NewParser(parser.WithResolver(resolver))
	loader := manager.NewContractLoader(nil, p)
	sink := diag.NewSink()

	if validateFlags.file != "" {
		if _, err := loader.LoadFromFile(validateFlags.file, sink); err != nil {
			return cli.NewCommandError("validate", err)
		}
	} else {
		if _, err := loader.LoadFromDirectory(validateFlags.dir, sink); err != nil {
			return cli.NewCommandError("validate", err)
		}
	}

	p.ValidateSemantics(sink)

	if validateFlags.format == "json" {
		return outputJSON(sink)
	}
	return outputText(sink, validateFlags.strict)
}

// buildResolver builds a variable resolver from --var flags; without flags the
// process environment is used.
func buildResolver(vars []string) (parser.Resolver, error) {
	if len(vars) == 0 {
		return parser.NewEnvResolver(), nil
	}

	values := make(map[string]string, len(vars))
	for _, v := range vars {
		name, value, ok := strings.Cut(v, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --var %q, expected NAME=value", v)
		}
		values[name] = value
	}
	return parser.NewMapResolver(values), nil
}

// diagnosticReport is the JSON shape of one diagnostic.
type diagnosticReport struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	DocsRef  string `json:"docs_ref,omitempty"`
}

// validationReport is the JSON shape of a whole run.
type validationReport struct {
	Valid       bool               `json:"valid"`
	Errors      int                `json:"errors"`
	Warnings    int                `json:"warnings"`
	Diagnostics []diagnosticReport `json:"diagnostics"`
}

func buildReport(sink *diag.Sink) validationReport {
	report := validationReport{
		Valid:       !sink.HasErrors(),
		Errors:      sink.CountSeverity(diag.SeverityError),
		Warnings:    sink.CountSeverity(diag.SeverityWarning),
		Diagnostics: []diagnosticReport{},
	}

	for _, d := range sink.Entries() {
		if d.Severity == diag.SeverityDebug && !verbose {
			continue
		}
		r := diagnosticReport{
			Severity: string(d.Severity),
			Message:  d.Message,
			DocsRef:  d.DocsRef,
		}
		if d.Location != nil {
			r.File = d.Location.File
			r.Line = d.Location.Line
			r.Column = d.Location.Column
		}
		report.Diagnostics = append(report.Diagnostics, r)
	}

	return report
}

func outputText(sink *diag.Sink, strict bool) error {
	report := buildReport(sink)

	for _, d := range report.Diagnostics {
		switch d.Severity {
		case "error":
			fmt.Printf("✗ Error: %s", d.Message)
		case "warning":
			fmt.Printf("⚠  Warning: %s", d.Message)
		default:
			fmt.Printf("  %s", d.Message)
		}
		if d.Line > 0 {
			fmt.Printf(" (%s:%d", d.File, d.Line)
			if d.Column > 0 {
				fmt.Printf(":%d", d.Column)
			}
			fmt.Print(")")
		} else if d.File != "" {
			fmt.Printf(" (%s)", d.File)
		}
		if d.DocsRef != "" {
			fmt.Printf(" [%s]", d.DocsRef)
		}
		fmt.Println()
	}

	fmt.Println("Summary:")
	fmt.Printf("  %d error(s), %d warning(s)\n", report.Errors, report.Warnings)

	if strict && report.Warnings > 0 {
		fmt.Println("  Strict mode enabled: treating warnings as errors")
		return cli.NewCommandError("validate", fmt.Errorf("validation failed"))
	}
	if report.Errors > 0 {
		return cli.NewCommandError("validate", fmt.Errorf("validation failed"))
	}

	return nil
}

func outputJSON(sink *diag.Sink) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(buildReport(sink)); err != nil {
		return err
	}
	if sink.HasErrors() {
		return cli.NewCommandError("validate", fmt.Errorf("validation failed"))
	}
	return nil
}
