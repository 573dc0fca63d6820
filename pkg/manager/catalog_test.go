package manager

import (
	"context"
	"path/filepath"
	"testing"

	"verity-hq/verity/pkg/contract/ast"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCatalog_RecordAndEntries(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	files := []*ast.File{
		parseTestFile(t, "name: warehouse\n", "ds.yml"),
		parseTestFile(t, "datasource: warehouse\n", "orders.yml"),
		parseTestFile(t, "other: document\n", "misc.yml"),
	}
	if err := c.Record(ctx, "v1", files); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	entries, err := c.Entries(ctx, "v1")
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Entries() = %d entries, want 3", len(entries))
	}

	// Sorted by path: ds.yml, misc.yml, orders.yml
	if entries[0].Kind != "datasource" || entries[0].Datasource != "warehouse" {
		t.Errorf("ds.yml entry = %+v", entries[0])
	}
	if entries[1].Kind != "other" || entries[1].Datasource != "" {
		t.Errorf("misc.yml entry = %+v", entries[1])
	}
	if entries[2].Kind != "contract" || entries[2].Datasource != "warehouse" {
		t.Errorf("orders.yml entry = %+v", entries[2])
	}
}

func TestCatalog_RecordReplacesVersion(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	c.Record(ctx, "v1", []*ast.File{parseTestFile(t, "name: a\n", "a.yml")})
	c.Record(ctx, "v1", []*ast.File{parseTestFile(t, "name: b\n", "b.yml")})

	entries, err := c.Entries(ctx, "v1")
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Path != "b.yml" {
		t.Errorf("Entries() = %+v, want the replacement snapshot only", entries)
	}
}

func TestCatalog_LatestVersion(t *testing.T) {
	c := newTestCatalog(t)
	ctx := context.Background()

	latest, err := c.LatestVersion(ctx)
	if err != nil {
		t.Fatalf("LatestVersion() error = %v", err)
	}
	if latest != "" {
		t.Errorf("LatestVersion() = %q for empty catalog, want \"\"", latest)
	}

	c.Record(ctx, "v1", []*ast.File{parseTestFile(t, "name: a\n", "a.yml")})

	latest, err = c.LatestVersion(ctx)
	if err != nil {
		t.Fatalf("LatestVersion() error = %v", err)
	}
	if latest != "v1" {
		t.Errorf("LatestVersion() = %q, want v1", latest)
	}
}

func TestCatalog_EmptyPath(t *testing.T) {
	if _, err := NewCatalog(""); err == nil {
		t.Error("NewCatalog(\"\") expected error")
	}
}
