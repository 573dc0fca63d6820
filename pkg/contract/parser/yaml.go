package parser

import (
	"fmt"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"verity-hq/verity/pkg/contract/ast"
	"verity-hq/verity/pkg/contract/diag"
)

// yamlLinePattern extracts the failure line from a yaml.v3 error message.
// The library reports positions as "yaml: line N: ..." and does not expose
// a column, so syntax diagnostics carry column 0.
var yamlLinePattern = regexp.MustCompile(`line (\d+):`)

// SyntaxError reports malformed YAML together with the line the underlying
// parser failed at.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// parseTree parses resolved YAML text into the generic document tree.
// Duplicate mapping keys produce warning diagnostics; the first occurrence
// wins. A nil root with a nil error means the document was empty.
func parseTree(text, path string, sink *diag.Sink) (ast.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, &SyntaxError{Line: errorLine(err), Message: err.Error()}
	}

	// An empty document produces a zero node.
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, nil
	}

	// The document node wraps the actual top-level value.
	top := &root
	if top.Kind == yaml.DocumentNode {
		top = top.Content[0]
	}

	return buildNode(top, path, sink), nil
}

// buildNode converts one yaml.v3 node (and its subtree) into a generic node,
// carrying the position of its opening token.
func buildNode(n *yaml.Node, path string, sink *diag.Sink) ast.Node {
	loc := nodeLocation(n, path)

	switch n.Kind {
	case yaml.MappingNode:
		m := ast.NewMapping(loc)
		// Content holds alternating key and value nodes, in document order.
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			valueNode := n.Content[i+1]
			key := keyNode.Value
			value := buildNode(valueNode, path, sink)
			if !m.Put(key, nodeLocation(keyNode, path), value) {
				sink.Warning(
					fmt.Sprintf("Duplicate key %q, first occurrence wins", key),
					nodeLocation(keyNode, path),
				)
			}
		}
		return m

	case yaml.SequenceNode:
		seq := &ast.Sequence{Location: loc}
		for _, item := range n.Content {
			seq.Items = append(seq.Items, buildNode(item, path, sink))
		}
		return seq

	case yaml.AliasNode:
		// Resolve the alias to its anchor target; the alias site keeps its
		// own location for attribution.
		resolved := buildNode(n.Alias, path, sink)
		return relocate(resolved, loc)

	default:
		return &ast.Scalar{Value: scalarValue(n), Tag: n.Tag, Location: loc}
	}
}

// scalarValue decodes a scalar node into its natural Go value.
func scalarValue(n *yaml.Node) interface{} {
	switch n.Tag {
	case "!!null":
		return nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err == nil {
			return b
		}
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err == nil {
			return i
		}
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err == nil {
			return f
		}
	}
	return n.Value
}

// relocate returns a copy of node positioned at loc. Used for alias sites,
// where the value's content comes from the anchor but the diagnostic should
// point at the alias.
func relocate(node ast.Node, loc ast.Location) ast.Node {
	switch v := node.(type) {
	case *ast.Scalar:
		c := *v
		c.Location = loc
		return &c
	case *ast.Mapping:
		c := *v
		c.Location = loc
		return &c
	case *ast.Sequence:
		c := *v
		c.Location = loc
		return &c
	}
	return node
}

// nodeLocation extracts the source location of a yaml node.
func nodeLocation(n *yaml.Node, path string) ast.Location {
	if n == nil {
		return ast.Location{File: path}
	}
	return ast.Location{File: path, Line: n.Line, Column: n.Column}
}

// errorLine extracts the reported line number from a yaml.v3 error.
func errorLine(err error) int {
	matches := yamlLinePattern.FindStringSubmatch(err.Error())
	if len(matches) == 2 {
		if line, convErr := strconv.Atoi(matches[1]); convErr == nil {
			return line
		}
	}
	return 0
}

// kindName describes a node's shape in user-facing messages.
func kindName(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Sequence:
		return "list"
	case *ast.Scalar:
		if n.Value == nil {
			return "null"
		}
		return "scalar"
	case *ast.Mapping:
		return "object"
	}
	return "null"
}
