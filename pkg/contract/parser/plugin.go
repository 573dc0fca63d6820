package parser

import (
	"fmt"

	"verity-hq/verity/pkg/contract/ast"
	"verity-hq/verity/pkg/contract/diag"
)

// Plugin contributes additional structure or validation per parsed file.
// Parse is invoked once per successfully ingested file, in registration
// order. Plugins may append diagnostics and attach extensions via
// File.Attach, but must not remove or mutate the file's root node.
type Plugin interface {
	Name() string
	Parse(file *ast.File, sink *diag.Sink)
}

// runPlugins invokes every registered plugin against the file. A panicking
// plugin produces one error diagnostic and the pass continues with the next
// plugin, so one bad plugin cannot abort ingestion of the remaining files.
func (p *Parser) runPlugins(file *ast.File, sink *diag.Sink) {
	for _, plugin := range p.plugins {
		p.runPlugin(plugin, file, sink)
	}
}

func (p *Parser) runPlugin(plugin Plugin, file *ast.File, sink *diag.Sink) {
	defer func() {
		if r := recover(); r != nil {
			sink.ErrorAt(
				fmt.Sprintf("Plugin %q failed on file '%s': %v", plugin.Name(), file.Path, r),
				ast.Location{File: file.Path},
			)
		}
	}()
	plugin.Parse(file, sink)
}
