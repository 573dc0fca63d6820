package validator

import (
	"fmt"

	"verity-hq/verity/pkg/contract/ast"
	"verity-hq/verity/pkg/contract/diag"
)

// DuplicateNamesValidator reports datasource names declared more than once.
type DuplicateNamesValidator struct{}

// NewDuplicateNamesValidator creates the duplicate-declaration pass.
func NewDuplicateNamesValidator() *DuplicateNamesValidator {
	return &DuplicateNamesValidator{}
}

// Validate groups datasource declarations by name and emits one error per
// declaration site of every name declared more than once. Diagnostics for
// one name are contiguous, in declaration order. Datasource files whose
// 'name' field is absent or not a plain string are skipped.
func (v *DuplicateNamesValidator) Validate(files []*ast.File, sink *diag.Sink) {
	declarations := collectDeclarations(files)

	seen := make(map[string]bool)
	for _, decl := range declarations {
		if seen[decl.name] {
			continue
		}
		seen[decl.name] = true

		locations := declarationSites(declarations, decl.name)
		if len(locations) < 2 {
			continue
		}
		for _, loc := range locations {
			sink.ErrorAt(
				fmt.Sprintf("Datasource '%s' was declared %d times", decl.name, len(locations)),
				loc,
			)
		}
	}
}

// ReferencesValidator reports contract files referencing datasource names
// that were never declared.
type ReferencesValidator struct{}

// NewReferencesValidator creates the unresolved-reference pass.
func NewReferencesValidator() *ReferencesValidator {
	return &ReferencesValidator{}
}

// Validate checks every contract's string-typed 'datasource' field against
// the set of all declared datasource names, duplicates included. Contracts
// whose field is absent or not a plain string are skipped.
func (v *ReferencesValidator) Validate(files []*ast.File, sink *diag.Sink) {
	declared := make(map[string]bool)
	var declaredNames []string
	for _, decl := range collectDeclarations(files) {
		if !declared[decl.name] {
			declaredNames = append(declaredNames, decl.name)
		}
		declared[decl.name] = true
	}

	for _, file := range files {
		if !file.IsContract() {
			continue
		}
		ref, ok := file.Datasource()
		if !ok {
			continue
		}
		if !declared[ref.Value] {
			sink.ErrorAt(
				fmt.Sprintf("Datasource '%s' is not defined", ref.Value),
				ref.Location,
			)
			if suggestion := diag.SuggestDatasourceName(ref.Value, declaredNames); suggestion != "" {
				sink.Debug(suggestion)
			}
		}
	}
}

// declaration is one datasource name declaration site.
type declaration struct {
	name     string
	location ast.Location
}

// collectDeclarations gathers every string-typed datasource name with its
// declaration site, in file parse order.
func collectDeclarations(files []*ast.File) []declaration {
	var declarations []declaration
	for _, file := range files {
		if !file.IsDatasource() {
			continue
		}
		name, ok := file.Name()
		if !ok {
			continue
		}
		declarations = append(declarations, declaration{name: name.Value, location: name.Location})
	}
	return declarations
}

// declarationSites returns the declaration locations of one name, in
// declaration order.
func declarationSites(declarations []declaration, name string) []ast.Location {
	var locations []ast.Location
	for _, decl := range declarations {
		if decl.name == name {
			locations = append(locations, decl.location)
		}
	}
	return locations
}
