package parser

import (
	"fmt"

	"verity-hq/verity/pkg/contract/ast"
	"verity-hq/verity/pkg/contract/diag"
	"verity-hq/verity/pkg/contract/validator"
)

// DocsRefFileType is the documentation anchor attached to top-level shape
// errors. External tooling may render it as a help link.
const DocsRefFileType = "04-data-contract-language.md#file-type"

// Parser ingests contract and datasource YAML documents and accumulates the
// typed files parsed so far.
//
// Usage:
//
//	p := parser.NewParser()
//	sink := diag.NewSink()
//	f1 := p.Parse(text1, "contracts/orders.yml", sink)
//	f2 := p.Parse(text2, "datasources/warehouse.yml", sink)
//	p.ValidateSemantics(sink)
//
// The resolver and plugin list are fixed at construction and never mutated
// afterward. The file registry is mutated by Parse, so concurrent Parse
// calls on one instance require external synchronization; the Parser
// provides no internal locking.
type Parser struct {
	resolver Resolver
	plugins  []Plugin
	files    []*ast.File
}

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithResolver overrides the default no-op variable resolver. This is the
// seam where environment- or project-specific variable sources attach.
func WithResolver(r Resolver) Option {
	return func(p *Parser) {
		if r != nil {
			p.resolver = r
		}
	}
}

// WithPlugins registers parser plugins, invoked per file in the given order.
func WithPlugins(plugins ...Plugin) Option {
	return func(p *Parser) {
		p.plugins = append(p.plugins, plugins...)
	}
}

// NewParser creates a parser with a no-op resolver and no plugins.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		resolver: NoopResolver{},
		files:    make([]*ast.File, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse ingests one document. It either appends exactly one typed file to
// the registry and returns it, or appends a diagnostic explaining the
// failure and returns nil. Each call is independent: a failed file is
// terminal for that file only.
//
// path is a label used for diagnostic attribution; it is never dereferenced.
func (p *Parser) Parse(text, path string, sink *diag.Sink) *ast.File {
	resolved := p.resolver.Resolve(text)

	sink.Debug(fmt.Sprintf("Parsing file '%s'", path))

	root, err := parseTree(resolved, path, sink)
	if err != nil {
		synErr := err.(*SyntaxError)
		sink.ErrorAt(
			fmt.Sprintf("Invalid YAML: %s", synErr.Message),
			ast.Location{File: path, Line: synErr.Line, Column: 0},
		)
		return nil
	}

	mapping, ok := root.(*ast.Mapping)
	if !ok {
		sink.ErrorWithDocs(
			fmt.Sprintf("All top level YAML elements must be objects, but was '%s'", kindName(root)),
			DocsRefFileType,
			ast.Location{File: path, Line: 0, Column: 0},
		)
		return nil
	}

	// The retained content is the raw pre-substitution text.
	file := ast.NewFile(Classify(mapping), path, text, mapping)
	p.files = append(p.files, file)

	p.runPlugins(file, sink)

	return file
}

// Files returns the typed files ingested so far, in parse order. The
// returned slice is a copy.
func (p *Parser) Files() []*ast.File {
	out := make([]*ast.File, len(p.files))
	copy(out, p.files)
	return out
}

// ValidateSemantics runs the cross-file semantic checks over the current
// registry snapshot: duplicate datasource declarations first, then
// unresolved datasource references. It computes from scratch on every call,
// so calling it twice without intervening Parse calls produces identical
// diagnostics both times. Parsing after validation re-opens ingestion;
// revalidation requires calling ValidateSemantics again.
func (p *Parser) ValidateSemantics(sink *diag.Sink) {
	validator.New().Validate(p.files, sink)
}
