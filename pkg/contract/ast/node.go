package ast

// NodeKind identifies the shape of a generic YAML node.
type NodeKind string

const (
	KindScalar   NodeKind = "scalar"
	KindMapping  NodeKind = "mapping"
	KindSequence NodeKind = "sequence"
)

// Node is a single value in the generic document tree. Every node reachable
// from a root carries the location of its opening token in source.
type Node interface {
	Kind() NodeKind
	Loc() Location
}

// Scalar is a leaf value. Value holds the decoded Go value (string, bool,
// int64, float64, or nil for YAML null); Tag is the resolved YAML tag
// (e.g. "!!str", "!!int").
type Scalar struct {
	Value    interface{}
	Tag      string
	Location Location
}

func (s *Scalar) Kind() NodeKind { return KindScalar }
func (s *Scalar) Loc() Location  { return s.Location }

// IsString returns true if the scalar holds text content.
func (s *Scalar) IsString() bool {
	_, ok := s.Value.(string)
	return ok
}

// StringValue returns the scalar's text content, or ok=false if the scalar
// does not hold a string.
func (s *Scalar) StringValue() (string, bool) {
	str, ok := s.Value.(string)
	return str, ok
}

// MappingEntry is a single key/value pair in a mapping, in document order.
type MappingEntry struct {
	Key    string
	KeyLoc Location
	Value  Node
}

// Mapping is an ordered collection of key/value pairs. Iteration over Entries
// yields keys in the order they appear in the document, never sorted. Keys
// are unique within one mapping; on duplicates the first occurrence wins.
type Mapping struct {
	Entries  []MappingEntry
	Location Location

	index map[string]int
}

func (m *Mapping) Kind() NodeKind { return KindMapping }
func (m *Mapping) Loc() Location  { return m.Location }

// NewMapping creates an empty mapping located at loc.
func NewMapping(loc Location) *Mapping {
	return &Mapping{Location: loc, index: make(map[string]int)}
}

// Put appends a key/value pair. It returns false without modifying the
// mapping if the key is already present.
func (m *Mapping) Put(key string, keyLoc Location, value Node) bool {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if _, ok := m.index[key]; ok {
		return false
	}
	m.index[key] = len(m.Entries)
	m.Entries = append(m.Entries, MappingEntry{Key: key, KeyLoc: keyLoc, Value: value})
	return true
}

// Get returns the value for key, or ok=false if the key is absent.
func (m *Mapping) Get(key string) (Node, bool) {
	i, ok := m.index[key]
	if !ok {
		return nil, false
	}
	return m.Entries[i].Value, true
}

// Has returns true if the mapping contains key.
func (m *Mapping) Has(key string) bool {
	_, ok := m.index[key]
	return ok
}

// Keys returns the mapping's keys in document order.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Len returns the number of entries in the mapping.
func (m *Mapping) Len() int { return len(m.Entries) }

// GetString returns the value for key as a located string, or ok=false when
// the key is absent or its value is not a string scalar. It never panics, so
// callers can probe loosely shaped documents without pre-checking.
func (m *Mapping) GetString(key string) (*StringValue, bool) {
	node, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	scalar, ok := node.(*Scalar)
	if !ok {
		return nil, false
	}
	str, ok := scalar.StringValue()
	if !ok {
		return nil, false
	}
	return &StringValue{Value: str, Location: scalar.Location}, true
}

// Sequence is an ordered list of nodes.
type Sequence struct {
	Items    []Node
	Location Location
}

func (s *Sequence) Kind() NodeKind { return KindSequence }
func (s *Sequence) Loc() Location  { return s.Location }

// Len returns the number of items in the sequence.
func (s *Sequence) Len() int { return len(s.Items) }

// StringValue wraps a string scalar together with its declaration site, so
// duplicate and reference checks can report exact source positions.
type StringValue struct {
	Value    string
	Location Location
}
