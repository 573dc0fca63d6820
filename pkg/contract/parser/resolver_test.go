package parser

import (
	"os"
	"testing"
)

func TestMapResolver(t *testing.T) {
	r := NewMapResolver(map[string]string{
		"DS_NAME": "warehouse",
		"SCHEMA":  "analytics",
	})

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "single placeholder", in: "name: ${DS_NAME}", want: "name: warehouse"},
		{name: "multiple placeholders", in: "${DS_NAME}.${SCHEMA}", want: "warehouse.analytics"},
		{name: "unknown left as-is", in: "name: ${MISSING}", want: "name: ${MISSING}"},
		{name: "no placeholders", in: "name: db1", want: "name: db1"},
		{name: "malformed placeholder untouched", in: "name: ${1BAD}", want: "name: ${1BAD}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.in); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNoopResolver(t *testing.T) {
	in := "datasource: ${ANYTHING}"
	if got := (NoopResolver{}).Resolve(in); got != in {
		t.Errorf("Resolve() = %q, want unchanged input", got)
	}
}

func TestEnvResolver(t *testing.T) {
	t.Setenv("VERITY_TEST_DS", "db1")

	r := NewEnvResolver()
	if got := r.Resolve("name: ${VERITY_TEST_DS}"); got != "name: db1" {
		t.Errorf("Resolve() = %q, want name: db1", got)
	}

	// The environment is captured at construction; later changes are not
	// observed by an existing resolver.
	os.Setenv("VERITY_TEST_DS", "db2")
	if got := r.Resolve("name: ${VERITY_TEST_DS}"); got != "name: db1" {
		t.Errorf("Resolve() after env change = %q, want captured value db1", got)
	}
}
