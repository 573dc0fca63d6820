// Package contract is the convenience surface over the contract-language
// front end: parse a batch of documents and run semantic validation in one
// call. Callers needing plugins, a custom variable resolver, or incremental
// ingestion use pkg/contract/parser directly.
package contract

import (
	"verity-hq/verity/pkg/contract/ast"
	"verity-hq/verity/pkg/contract/diag"
	"verity-hq/verity/pkg/contract/parser"
)

// Document is one raw contract or datasource document plus its path label.
type Document struct {
	Path string
	Text string
}

// ParseAndValidate ingests every document and runs the cross-file semantic
// checks. It returns the successfully parsed files in parse order; the sink
// explains everything that went wrong. Absence of error-severity entries in
// the sink is the success signal.
func ParseAndValidate(docs []Document, sink *diag.Sink) []*ast.File {
	p := parser.NewParser()
	var files []*ast.File
	for _, doc := range docs {
		if file := p.Parse(doc.Text, doc.Path, sink); file != nil {
			files = append(files, file)
		}
	}
	p.ValidateSemantics(sink)
	return files
}

// Parse ingests a single document without semantic validation. Useful for
// inspecting the typed file before cross-file checks.
func Parse(text, path string, sink *diag.Sink) *ast.File {
	return parser.NewParser().Parse(text, path, sink)
}
