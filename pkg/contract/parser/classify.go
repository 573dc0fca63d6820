package parser

import "verity-hq/verity/pkg/contract/ast"

// Classify maps a validated root mapping to exactly one file kind. The rule
// is deterministic and total, evaluated in order:
//
//  1. a top-level 'datasource' key marks a data-contract file (contracts
//     reference a datasource; a document carrying both 'datasource' and
//     'name' is a contract),
//  2. a top-level 'name' key marks a datasource declaration,
//  3. anything else is an "other" file, left for plugins to interpret.
func Classify(root *ast.Mapping) ast.FileKind {
	if root.Has("datasource") {
		return ast.FileKindContract
	}
	if root.Has("name") {
		return ast.FileKindDatasource
	}
	return ast.FileKindOther
}
