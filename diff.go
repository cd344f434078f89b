// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Netclab Contributors

package eos

import "fmt"

// OpType identifies a convergence plan operation
type OpType string

const (
	// OpEnter enters a configuration block by issuing its context-entry
	// command; on EOS the same command creates the block when absent
	OpEnter OpType = "enter"

	// OpExit leaves the current configuration block
	OpExit OpType = "exit"

	// OpAdd adds a leaf command in the current context
	OpAdd OpType = "add"

	// OpRemove removes a command (leaf or whole block) in the current
	// context via its "no "-prefixed form
	OpRemove OpType = "remove"
)

// Op is a single convergence operation. Text is the literal CLI command for
// Enter, Add, and Remove; it is empty for Exit.
type Op struct {
	Type OpType
	Text string
}

// String returns a compact representation for logs and test failures
func (o Op) String() string {
	if o.Type == OpExit {
		return "exit"
	}
	return fmt.Sprintf("%s(%s)", o.Type, o.Text)
}

// Enter creates an enter-context operation
func Enter(text string) Op { return Op{Type: OpEnter, Text: text} }

// Exit creates an exit-context operation
func Exit() Op { return Op{Type: OpExit} }

// Add creates an add-command operation
func Add(text string) Op { return Op{Type: OpAdd, Text: text} }

// Remove creates a remove-command operation
func Remove(text string) Op { return Op{Type: OpRemove, Text: text} }

// Plan is an ordered sequence of convergence operations. Applying a plan's
// operations in order to the observed tree yields the desired tree.
type Plan []Op

// Commands flattens a plan into the literal CLI command batch:
//
//	Enter  -> the context-entry command
//	Exit   -> "exit"
//	Add    -> the command text
//	Remove -> "no " + the command text
//
// Flattening is a pure function independent of the diff algorithm, so
// context transitions stay explicit and testable in the plan itself.
func (p Plan) Commands() []string {
	cmds := make([]string, 0, len(p))
	for _, op := range p {
		switch op.Type {
		case OpEnter, OpAdd:
			cmds = append(cmds, op.Text)
		case OpExit:
			cmds = append(cmds, "exit")
		case OpRemove:
			cmds = append(cmds, "no "+op.Text)
		}
	}
	return cmds
}

// Diff computes the convergence plan that transforms the observed tree into
// the desired tree.
//
// The diff is a recursive structural comparison keyed by preorder traversal
// of the desired tree: desired order wins, so new commands are emitted in
// the position implied by the desired document, not the observed device
// order. Within each context, removals are emitted before any additions so
// that vacated slots (e.g. renumbered list entries) never collide with new
// entries.
//
// Per context with desired children D and observed children O:
//   - children in O but not in D emit Remove (the "no" form removes a whole
//     block on EOS, so branch subtrees are not expanded)
//   - children in both whose subtrees differ are recursed into via Enter /
//     Exit
//   - children in D but not in O are added with their entire subtree,
//     depth-first
//   - a leaf whose counterpart is a block (or vice versa) is removed and
//     re-added whole; partial leaf edits are not supported
//
// Two equal trees yield an empty plan. An empty desired tree against a
// non-empty observed tree yields a full-teardown plan of Remove operations.
//
// Sibling order alone is not reconciled: a context holding the desired
// command set in a different order produces no operations, even though
// Tree.Equal is order-sensitive. EOS commands whose relative order matters
// carry it in the command text (numbered entries such as "seq 10"), so a
// pure position difference has no device-visible effect.
func Diff(desired, observed *Tree) Plan {
	return diffChildren(desired.Roots, observed.Roots)
}

// diffChildren diffs one context level, removals first, then additions and
// recursions in desired order
func diffChildren(desired, observed []*Node) Plan {
	var plan Plan

	byText := make(map[string]*Node, len(desired))
	for _, d := range desired {
		byText[d.Text] = d
	}

	// Removals: observed commands with no desired counterpart, plus
	// shape changes (leaf vs block) which are re-added below
	for _, o := range observed {
		d, ok := byText[o.Text]
		if !ok || d.Leaf() != o.Leaf() {
			plan = append(plan, Remove(o.Text))
		}
	}

	// Additions and recursions, in desired document order
	for _, d := range desired {
		o := findNode(observed, d.Text)
		if o == nil || d.Leaf() != o.Leaf() {
			plan = appendSubtree(plan, d)
			continue
		}
		if d.Leaf() {
			// Identical leaf, nothing to do
			continue
		}
		if !d.equal(o) {
			inner := diffChildren(d.Children, o.Children)
			if len(inner) > 0 {
				plan = append(plan, Enter(d.Text))
				plan = append(plan, inner...)
				plan = append(plan, Exit())
			}
		}
	}

	return plan
}

// appendSubtree serializes a desired subtree depth-first: a leaf becomes a
// single Add, a block becomes Enter, its children, Exit
func appendSubtree(plan Plan, n *Node) Plan {
	if n.Leaf() {
		return append(plan, Add(n.Text))
	}
	plan = append(plan, Enter(n.Text))
	for _, c := range n.Children {
		plan = appendSubtree(plan, c)
	}
	return append(plan, Exit())
}

// findNode returns the node with the given text, or nil
func findNode(nodes []*Node, text string) *Node {
	for _, n := range nodes {
		if n.Text == text {
			return n
		}
	}
	return nil
}
