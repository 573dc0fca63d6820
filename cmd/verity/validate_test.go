package main

import (
	"testing"

	"verity-hq/verity/pkg/contract/ast"
	"verity-hq/verity/pkg/contract/diag"
)

func TestBuildResolver(t *testing.T) {
	r, err := buildResolver([]string{"DS_NAME=warehouse", "ENV=prod"})
	if err != nil {
		t.Fatalf("buildResolver() error = %v", err)
	}
	if got := r.Resolve("datasource: ${DS_NAME}"); got != "datasource: warehouse" {
		t.Errorf("Resolve() = %q", got)
	}

	if _, err := buildResolver([]string{"missing-equals"}); err == nil {
		t.Error("buildResolver() expected error for malformed --var")
	}
	if _, err := buildResolver([]string{"=value"}); err == nil {
		t.Error("buildResolver() expected error for empty name")
	}
}

func TestBuildReport(t *testing.T) {
	sink := diag.NewSink()
	sink.Debug("Parsing file 'orders.yml'")
	sink.ErrorAt("Datasource 'prod' is not defined", ast.Location{File: "orders.yml", Line: 1, Column: 13})
	sink.Warning("Duplicate key \"dataset\", first occurrence wins", ast.Location{File: "orders.yml", Line: 4, Column: 1})

	report := buildReport(sink)

	if report.Valid {
		t.Error("Valid = true with an error diagnostic")
	}
	if report.Errors != 1 || report.Warnings != 1 {
		t.Errorf("counts = %d errors, %d warnings, want 1 and 1", report.Errors, report.Warnings)
	}
	// Debug entries are omitted unless --verbose
	if len(report.Diagnostics) != 2 {
		t.Errorf("Diagnostics = %d entries, want 2", len(report.Diagnostics))
	}
	if report.Diagnostics[0].File != "orders.yml" || report.Diagnostics[0].Line != 1 {
		t.Errorf("first diagnostic location = %+v", report.Diagnostics[0])
	}
}

func TestBuildReport_CleanRun(t *testing.T) {
	sink := diag.NewSink()
	sink.Debug("Parsing file 'orders.yml'")

	report := buildReport(sink)
	if !report.Valid {
		t.Error("Valid = false for a debug-only run")
	}
	if len(report.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %d entries, want 0", len(report.Diagnostics))
	}
}
