package ast

import "testing"

func TestMapping_OrderPreserved(t *testing.T) {
	m := NewMapping(Location{File: "t.yml", Line: 1, Column: 1})
	m.Put("b", Location{File: "t.yml", Line: 1, Column: 1}, &Scalar{Value: int64(1)})
	m.Put("a", Location{File: "t.yml", Line: 2, Column: 1}, &Scalar{Value: int64(2)})

	keys := m.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Errorf("Keys() = %v, want [b a]", keys)
	}
}

func TestMapping_PutDuplicate(t *testing.T) {
	m := NewMapping(Location{})
	if !m.Put("name", Location{Line: 1}, &Scalar{Value: "first"}) {
		t.Fatal("first Put() returned false")
	}
	if m.Put("name", Location{Line: 2}, &Scalar{Value: "second"}) {
		t.Error("duplicate Put() returned true")
	}

	node, ok := m.Get("name")
	if !ok {
		t.Fatal("Get() not found after Put")
	}
	if v, _ := node.(*Scalar).StringValue(); v != "first" {
		t.Errorf("duplicate key value = %q, want first occurrence to win", v)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestMapping_GetString(t *testing.T) {
	m := NewMapping(Location{})
	m.Put("name", Location{File: "ds.yml", Line: 3, Column: 7}, &Scalar{Value: "db1", Location: Location{File: "ds.yml", Line: 3, Column: 7}})
	m.Put("port", Location{}, &Scalar{Value: int64(5432)})
	m.Put("tags", Location{}, &Sequence{})

	tests := []struct {
		name   string
		key    string
		want   string
		wantOK bool
	}{
		{name: "string scalar", key: "name", want: "db1", wantOK: true},
		{name: "non-string scalar", key: "port", wantOK: false},
		{name: "non-scalar node", key: "tags", wantOK: false},
		{name: "absent key", key: "missing", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sv, ok := m.GetString(tt.key)
			if ok != tt.wantOK {
				t.Fatalf("GetString(%q) ok = %v, want %v", tt.key, ok, tt.wantOK)
			}
			if ok && sv.Value != tt.want {
				t.Errorf("GetString(%q) = %q, want %q", tt.key, sv.Value, tt.want)
			}
		})
	}
}

func TestLocation_String(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want string
	}{
		{name: "full", loc: Location{File: "a.yml", Line: 4, Column: 2}, want: "a.yml:4:2"},
		{name: "unknown", loc: Location{}, want: "<unknown>"},
		{name: "zero position", loc: Location{File: "a.yml"}, want: "a.yml:0:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.loc.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocation_IsValid(t *testing.T) {
	if (Location{File: "a.yml", Line: 1}).IsValid() != true {
		t.Error("expected valid location")
	}
	if (Location{File: "a.yml", Line: 0}).IsValid() {
		t.Error("line 0 should not be valid")
	}
	if (Location{Line: 3}).IsValid() {
		t.Error("missing file should not be valid")
	}
}
