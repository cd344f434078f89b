// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Netclab Contributors

package eos

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parsing limits for desired documents and device output
const (
	// MaxDocumentDepth is the maximum nesting depth for a desired document.
	// EOS configuration blocks nest two or three levels in practice; the
	// limit guards against runaway recursion on malformed input.
	MaxDocumentDepth = 16

	// MaxCommandLength is the maximum length of a single CLI command
	MaxCommandLength = 1024
)

// Node is a single command in a command tree: the literal CLI command text
// and its ordered child commands. A node with no children is a leaf command;
// a node with children is a configuration block whose text is the
// context-entry command (e.g. "ip prefix-list PL-Loopback0").
//
// Child order is the declared document order and is semantically significant:
// ordering-sensitive commands such as numbered list entries ("seq 10 ..."
// before "seq 20 ...") are never reordered. Children are unique by command
// text among siblings.
type Node struct {
	// Text is the canonicalized CLI command text
	Text string

	// Children are the commands nested under this block, in document order
	Children []*Node
}

// Leaf reports whether the node is a leaf command (no nested commands)
func (n *Node) Leaf() bool {
	return len(n.Children) == 0
}

// child returns the child with the given canonicalized text, or nil
func (n *Node) child(text string) *Node {
	for _, c := range n.Children {
		if c.Text == text {
			return c
		}
	}
	return nil
}

// ensureChild returns the existing child with the given text, appending a
// new one in declaration order if absent
func (n *Node) ensureChild(text string) *Node {
	if c := n.child(text); c != nil {
		return c
	}
	c := &Node{Text: text}
	n.Children = append(n.Children, c)
	return c
}

// equal reports structural equality of two nodes, including child order
func (n *Node) equal(other *Node) bool {
	if n.Text != other.Text || len(n.Children) != len(other.Children) {
		return false
	}
	for i, c := range n.Children {
		if !c.equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Tree is an ordered hierarchical representation of CLI configuration,
// either a desired fragment (parsed from a document) or an observed fragment
// (parsed from device output). Two trees are comparable only when built
// through the same canonicalization rules; both ParseDocument and
// ParseRunningConfig share Canonicalize.
//
// Trees are built fresh per reconcile call and are not safe for concurrent
// mutation.
type Tree struct {
	// Roots are the top-level commands in document order
	Roots []*Node
}

// NewTree creates an empty command tree
func NewTree() *Tree {
	return &Tree{}
}

// Add inserts a command path into the tree, creating intermediate blocks as
// needed, and returns the final node. Existing nodes are reused, preserving
// their position.
//
// Example:
//
//	t := eos.NewTree()
//	t.Add("ip prefix-list PL-Loopback0", "seq 10 permit 10.0.0.1/32 eq 32")
//	t.Add("ip prefix-list PL-Loopback0", "seq 20 permit 10.0.0.2/32 eq 32")
func (t *Tree) Add(path ...string) *Node {
	var cur *Node
	for i, text := range path {
		text = Canonicalize(text)
		if i == 0 {
			cur = t.ensureRoot(text)
			continue
		}
		cur = cur.ensureChild(text)
	}
	return cur
}

// ensureRoot returns the existing top-level node with the given text,
// appending a new one if absent
func (t *Tree) ensureRoot(text string) *Node {
	for _, r := range t.Roots {
		if r.Text == text {
			return r
		}
	}
	r := &Node{Text: text}
	t.Roots = append(t.Roots, r)
	return r
}

// Empty reports whether the tree has no commands
func (t *Tree) Empty() bool {
	return len(t.Roots) == 0
}

// Equal reports structural equality of two trees, including sibling order
func (t *Tree) Equal(other *Tree) bool {
	if len(t.Roots) != len(other.Roots) {
		return false
	}
	for i, r := range t.Roots {
		if !r.equal(other.Roots[i]) {
			return false
		}
	}
	return true
}

// String renders the tree as indented CLI configuration text, three spaces
// per nesting level. Useful for debugging and logging.
func (t *Tree) String() string {
	var b strings.Builder
	for _, r := range t.Roots {
		renderNode(&b, r, 0)
	}
	return b.String()
}

func renderNode(b *strings.Builder, n *Node, depth int) {
	b.WriteString(strings.Repeat("   ", depth))
	b.WriteString(n.Text)
	b.WriteString("\n")
	for _, c := range n.Children {
		renderNode(b, c, depth+1)
	}
}

// Canonicalize normalizes a CLI command for comparison: leading and trailing
// whitespace is trimmed and internal whitespace runs collapse to a single
// space. Desired and observed trees are only comparable because both sides
// pass through this function.
func Canonicalize(command string) string {
	return strings.Join(strings.Fields(command), " ")
}

// ParseDocument parses a desired-configuration document into a command tree.
//
// The document is a nested ordered mapping (YAML or JSON) whose keys are CLI
// command strings and whose values are either an empty marker (leaf command)
// or a nested mapping of the same shape (configuration block):
//
//	ip prefix-list PL-Loopback0:
//	  seq 10 permit 10.0.0.1/32 eq 32: {}
//	  seq 20 permit 10.0.0.2/32 eq 32: {}
//
// Key order is preserved exactly as declared; it is meaningful, not
// cosmetic. An empty or null document yields an empty tree (a valid desired
// state meaning full teardown).
//
// Returns a parse-kind *EosError when a value is neither an empty marker nor
// a mapping, when a key repeats among siblings, or when the input is not a
// mapping at any level.
func ParseDocument(doc []byte) (*Tree, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return nil, &EosError{
			Operation: "parse-document",
			Kind:      KindParse,
			Message:   fmt.Sprintf("invalid document: %s", err.Error()),
			Err:       err,
		}
	}

	tree := NewTree()

	// Empty input decodes to a zero node; an explicit null document is a
	// null scalar. Both mean "no desired configuration".
	if root.Kind == 0 {
		return tree, nil
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, parseDocErr(root.Line, "document is not a mapping")
	}

	top := root.Content[0]
	if isNullNode(top) {
		return tree, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, parseDocErr(top.Line, "document is not a mapping")
	}

	parent := &Node{}
	if err := parseMapping(top, parent, 0); err != nil {
		return nil, err
	}
	tree.Roots = parent.Children
	return tree, nil
}

// parseMapping walks one mapping level of a desired document, appending the
// declared commands as children of parent in key order
func parseMapping(m *yaml.Node, parent *Node, depth int) error {
	if depth >= MaxDocumentDepth {
		return parseDocErr(m.Line, fmt.Sprintf("nesting exceeds %d levels", MaxDocumentDepth))
	}

	// yaml.MappingNode content alternates key, value
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, value := m.Content[i], m.Content[i+1]

		if key.Kind != yaml.ScalarNode {
			return parseDocErr(key.Line, "command key is not a string")
		}
		text := Canonicalize(key.Value)
		if text == "" {
			return parseDocErr(key.Line, "command key is empty")
		}
		if len(text) > MaxCommandLength {
			return parseDocErr(key.Line, fmt.Sprintf("command exceeds %d characters", MaxCommandLength))
		}
		if parent.child(text) != nil {
			return parseDocErr(key.Line, fmt.Sprintf("duplicate command %q among siblings", text))
		}

		node := parent.ensureChild(text)

		switch {
		case isNullNode(value):
			// Leaf marker ("cmd:" or "cmd: {}" with null value)
		case value.Kind == yaml.MappingNode:
			if err := parseMapping(value, node, depth+1); err != nil {
				return err
			}
		default:
			return parseDocErr(value.Line,
				fmt.Sprintf("value of %q must be an empty marker or a nested mapping", text))
		}
	}
	return nil
}

// isNullNode reports whether a YAML node is an empty leaf marker: a null
// scalar ("cmd:") or an empty mapping ("cmd: {}")
func isNullNode(n *yaml.Node) bool {
	if n.Kind == yaml.ScalarNode && n.Tag == "!!null" {
		return true
	}
	if n.Kind == yaml.MappingNode && len(n.Content) == 0 {
		return true
	}
	return false
}

func parseDocErr(line int, msg string) error {
	return &EosError{
		Operation: "parse-document",
		Kind:      KindParse,
		Message:   fmt.Sprintf("line %d: %s", line, msg),
	}
}

// ParseRunningConfig parses "show running-config" text output into a command
// tree comparable to a parsed desired document.
//
// Nesting is derived from indentation: a line indented deeper than the
// previous command is a child of it. Comment and separator lines ("!"),
// the terminating "end", and blank lines are skipped. Command text passes
// through Canonicalize so incidental whitespace differences never produce
// spurious diffs.
//
// Returns a parse-kind *EosError when a command exceeds MaxCommandLength,
// which indicates the output is not CLI configuration text.
func ParseRunningConfig(output string) (*Tree, error) {
	tree := NewTree()
	root := &Node{}

	type frame struct {
		indent int
		node   *Node
	}
	stack := []frame{{indent: -1, node: root}}

	for lineno, raw := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, "!") || trimmed == "end" {
			continue
		}

		indent := leadingSpaces(raw)
		text := Canonicalize(trimmed)
		if len(text) > MaxCommandLength {
			return nil, &EosError{
				Operation: "parse-running-config",
				Kind:      KindParse,
				Message:   fmt.Sprintf("line %d: command exceeds %d characters", lineno+1, MaxCommandLength),
			}
		}

		// Pop contexts that this line is not nested under
		for len(stack) > 1 && indent <= stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}

		node := stack[len(stack)-1].node.ensureChild(text)
		stack = append(stack, frame{indent: indent, node: node})
	}

	tree.Roots = root.Children
	return tree, nil
}

// leadingSpaces counts leading space characters; tabs count as one level of
// indentation each (EOS emits spaces, tabs only appear in hand-edited input)
func leadingSpaces(line string) int {
	n := 0
	for _, r := range line {
		if r != ' ' && r != '\t' {
			break
		}
		n++
	}
	return n
}
