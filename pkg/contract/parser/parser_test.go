package parser

import (
	"fmt"
	"testing"

	"verity-hq/verity/pkg/contract/ast"
	"verity-hq/verity/pkg/contract/diag"
)

func errorEntries(sink *diag.Sink) []*diag.Diagnostic {
	return sink.BySeverity(diag.SeverityError)
}

func TestParser_ValidDocument(t *testing.T) {
	p := NewParser()
	sink := diag.NewSink()

	file := p.Parse("dataset: orders\ndatasource: warehouse\n", "contracts/orders.yml", sink)
	if file == nil {
		t.Fatal("Parse() returned nil for valid document")
	}
	if len(errorEntries(sink)) != 0 {
		t.Errorf("valid document appended error diagnostics: %v", sink.String())
	}
	if file.Kind() != ast.FileKindContract {
		t.Errorf("Kind() = %q, want contract", file.Kind())
	}
	if file.Path != "contracts/orders.yml" {
		t.Errorf("Path = %q", file.Path)
	}
	if len(p.Files()) != 1 {
		t.Errorf("registry holds %d files, want 1", len(p.Files()))
	}
}

func TestParser_TopLevelShape(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantKind string
	}{
		{name: "sequence", text: "- a\n- b\n", wantKind: "list"},
		{name: "scalar", text: "just a string\n", wantKind: "scalar"},
		{name: "empty document", text: "", wantKind: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser()
			sink := diag.NewSink()

			file := p.Parse(tt.text, "bad.yml", sink)
			if file != nil {
				t.Fatal("Parse() produced a file for a non-object top level")
			}

			errs := errorEntries(sink)
			if len(errs) != 1 {
				t.Fatalf("got %d error diagnostics, want exactly 1: %v", len(errs), sink.String())
			}
			want := fmt.Sprintf("All top level YAML elements must be objects, but was '%s'", tt.wantKind)
			if errs[0].Message != want {
				t.Errorf("message = %q, want %q", errs[0].Message, want)
			}
			if errs[0].Location == nil || errs[0].Location.Line != 0 || errs[0].Location.Column != 0 {
				t.Errorf("location = %v, want (bad.yml, 0, 0)", errs[0].Location)
			}
			if errs[0].DocsRef != DocsRefFileType {
				t.Errorf("docs ref = %q, want %q", errs[0].DocsRef, DocsRefFileType)
			}
			if len(p.Files()) != 0 {
				t.Error("dropped file still present in registry")
			}
		})
	}
}

func TestParser_SyntaxError(t *testing.T) {
	p := NewParser()
	sink := diag.NewSink()

	file := p.Parse("name: [unclosed\n", "broken.yml", sink)
	if file != nil {
		t.Fatal("Parse() produced a file for invalid YAML")
	}

	errs := errorEntries(sink)
	if len(errs) != 1 {
		t.Fatalf("got %d error diagnostics, want exactly 1: %v", len(errs), sink.String())
	}
	if errs[0].Location == nil || errs[0].Location.File != "broken.yml" {
		t.Fatalf("syntax error location = %v", errs[0].Location)
	}
	if errs[0].Location.Line <= 0 {
		t.Errorf("syntax error line = %d, want the parser's reported line", errs[0].Location.Line)
	}
}

func TestParser_FaultIsolation(t *testing.T) {
	p := NewParser()
	sink := diag.NewSink()

	if p.Parse(": not yaml: [", "broken.yml", sink) != nil {
		t.Fatal("broken file unexpectedly parsed")
	}
	file := p.Parse("name: db1\ntype: postgres\n", "ds.yml", sink)
	if file == nil {
		t.Fatal("valid file after a broken one was not parsed")
	}
	if len(p.Files()) != 1 {
		t.Fatalf("registry holds %d files, want 1", len(p.Files()))
	}

	// The surviving file participates in semantic validation.
	p.Parse("dataset: orders\ndatasource: db1\n", "orders.yml", sink)
	before := sink.Len()
	p.ValidateSemantics(sink)
	if sink.Len() != before {
		t.Errorf("expected no semantic findings, got: %v", sink.String())
	}
}

func TestParser_KeyOrderPreserved(t *testing.T) {
	p := NewParser()
	sink := diag.NewSink()

	file := p.Parse("b: 1\na: 2\n", "order.yml", sink)
	if file == nil {
		t.Fatal(sink.String())
	}
	keys := file.Root.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Errorf("iteration order = %v, want [b a]", keys)
	}
}

func TestParser_DuplicateKeyWarning(t *testing.T) {
	p := NewParser()
	sink := diag.NewSink()

	file := p.Parse("name: db1\nname: db2\n", "dup.yml", sink)
	if file == nil {
		t.Fatal(sink.String())
	}
	if sink.CountSeverity(diag.SeverityWarning) != 1 {
		t.Fatalf("want one duplicate-key warning, got: %v", sink.String())
	}
	name, ok := file.Name()
	if !ok || name.Value != "db1" {
		t.Errorf("first occurrence should win, got %v", name)
	}
}

func TestParser_NodeLocations(t *testing.T) {
	p := NewParser()
	sink := diag.NewSink()

	file := p.Parse("dataset: orders\ndatasource: warehouse\n", "c.yml", sink)
	if file == nil {
		t.Fatal(sink.String())
	}
	ref, ok := file.Datasource()
	if !ok {
		t.Fatal("datasource reference missing")
	}
	if ref.Location.Line != 2 || ref.Location.Column != 13 {
		t.Errorf("reference location = %v, want c.yml:2:13", ref.Location)
	}
}

func TestParser_DebugEntryPerParse(t *testing.T) {
	p := NewParser()
	sink := diag.NewSink()
	p.Parse("name: db1\n", "ds.yml", sink)

	debugs := sink.BySeverity(diag.SeverityDebug)
	if len(debugs) != 1 || debugs[0].Message != "Parsing file 'ds.yml'" {
		t.Errorf("debug entries = %v", debugs)
	}
}

func TestParser_ResolverSeam(t *testing.T) {
	resolver := NewMapResolver(map[string]string{"DS_NAME": "warehouse"})
	p := NewParser(WithResolver(resolver))
	sink := diag.NewSink()

	text := "name: ${DS_NAME}\n"
	file := p.Parse(text, "ds.yml", sink)
	if file == nil {
		t.Fatal(sink.String())
	}
	name, ok := file.Name()
	if !ok || name.Value != "warehouse" {
		t.Errorf("resolved name = %v, want warehouse", name)
	}
	// Retained content is the raw pre-substitution text.
	if file.Content != text {
		t.Errorf("Content = %q, want raw text", file.Content)
	}
}

// recordingPlugin remembers the files it saw and optionally panics.
type recordingPlugin struct {
	name   string
	seen   []string
	panics bool
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) Parse(file *ast.File, sink *diag.Sink) {
	p.seen = append(p.seen, file.Path)
	if p.panics {
		panic("plugin exploded")
	}
	file.Attach(p.name, len(p.seen))
}

func TestParser_PluginOrderAndIsolation(t *testing.T) {
	bad := &recordingPlugin{name: "bad", panics: true}
	good := &recordingPlugin{name: "good"}
	p := NewParser(WithPlugins(bad, good))
	sink := diag.NewSink()

	file := p.Parse("name: db1\n", "ds.yml", sink)
	if file == nil {
		t.Fatal(sink.String())
	}

	if len(bad.seen) != 1 || len(good.seen) != 1 {
		t.Fatalf("plugin invocations bad=%d good=%d, want 1 each", len(bad.seen), len(good.seen))
	}
	if _, ok := file.Extension("good"); !ok {
		t.Error("plugin after the panicking one did not run")
	}

	errs := errorEntries(sink)
	if len(errs) != 1 {
		t.Fatalf("want one plugin failure diagnostic, got %d", len(errs))
	}

	// A second file still reaches the plugins.
	p.Parse("name: db2\n", "ds2.yml", sink)
	if len(good.seen) != 2 {
		t.Error("plugin pass aborted for subsequent files")
	}
}

func TestParser_ValidateSemanticsIdempotent(t *testing.T) {
	p := NewParser()
	sink := diag.NewSink()
	p.Parse("name: db1\ntype: postgres\n", "a.yml", sink)
	p.Parse("name: db1\ntype: postgres\n", "b.yml", sink)

	first := diag.NewSink()
	p.ValidateSemantics(first)
	second := diag.NewSink()
	p.ValidateSemantics(second)

	if first.String() != second.String() {
		t.Errorf("validation output differs between calls:\n%s\nvs\n%s", first.String(), second.String())
	}
	if first.CountSeverity(diag.SeverityError) != 2 {
		t.Errorf("duplicate declarations produced %d errors, want 2:\n%s",
			first.CountSeverity(diag.SeverityError), first.String())
	}
}

func TestParser_ReopenIngestionAfterValidate(t *testing.T) {
	p := NewParser()
	sink := diag.NewSink()
	p.Parse("dataset: orders\ndatasource: db1\n", "orders.yml", sink)
	p.ValidateSemantics(sink)
	if sink.CountSeverity(diag.SeverityError) != 1 {
		t.Fatalf("expected one unresolved reference before declaring db1:\n%s", sink.String())
	}

	// Ingestion re-opens; the new declaration is only seen by an explicit
	// revalidation.
	p.Parse("name: db1\ntype: postgres\n", "ds.yml", sink)
	fresh := diag.NewSink()
	p.ValidateSemantics(fresh)
	if fresh.CountSeverity(diag.SeverityError) != 0 {
		t.Errorf("reference should resolve after revalidation:\n%s", fresh.String())
	}
}
