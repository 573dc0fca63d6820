package validator

import (
	"verity-hq/verity/pkg/contract/ast"
	"verity-hq/verity/pkg/contract/diag"
)

// Validator orchestrates the semantic validation passes over an ingested
// file set. Passes run in a fixed order: duplicate datasource declarations,
// then unresolved datasource references. Every pass is a pure read-only
// scan producing diagnostics only.
type Validator struct {
	duplicates *DuplicateNamesValidator
	references *ReferencesValidator
}

// New creates a validator with all semantic passes.
func New() *Validator {
	return &Validator{
		duplicates: NewDuplicateNamesValidator(),
		references: NewReferencesValidator(),
	}
}

// Validate runs all passes against the file set. It is stateless between
// calls: validating the same files twice emits identical diagnostics.
func (v *Validator) Validate(files []*ast.File, sink *diag.Sink) {
	v.duplicates.Validate(files, sink)
	v.references.Validate(files, sink)
}
