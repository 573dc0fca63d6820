package parser

import (
	"testing"

	"verity-hq/verity/pkg/contract/ast"
)

func TestClassify(t *testing.T) {
	mapping := func(keys ...string) *ast.Mapping {
		m := ast.NewMapping(ast.Location{File: "x.yml", Line: 1, Column: 1})
		for _, k := range keys {
			m.Put(k, ast.Location{}, &ast.Scalar{Value: "v"})
		}
		return m
	}

	tests := []struct {
		name string
		root *ast.Mapping
		want ast.FileKind
	}{
		{name: "datasource key marks contract", root: mapping("dataset", "datasource"), want: ast.FileKindContract},
		{name: "name key marks datasource", root: mapping("name", "type"), want: ast.FileKindDatasource},
		{name: "both keys resolve to contract", root: mapping("name", "datasource"), want: ast.FileKindContract},
		{name: "neither marks other", root: mapping("columns", "checks"), want: ast.FileKindOther},
		{name: "empty mapping is other", root: mapping(), want: ast.FileKindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.root); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}
