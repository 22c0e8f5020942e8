package model

import (
	"errors"
	"testing"
)

// buildTree wires a small fixed tree:
//
//	root -> a -> leaf1
//	          -> leaf2
//	     -> leaf3
func buildTree(t *testing.T) (*Tree, map[string]*Node) {
	t.Helper()
	doc := NewDocument()
	otus := doc.CreateOTUs()
	block, err := doc.CreateTreeBlock(otus)
	if err != nil {
		t.Fatalf("CreateTreeBlock failed: %v", err)
	}
	tree := block.CreateFloatTree()

	nodes := map[string]*Node{
		"root":  tree.CreateNode(),
		"a":     tree.CreateNode(),
		"leaf1": tree.CreateNode(),
		"leaf2": tree.CreateNode(),
		"leaf3": tree.CreateNode(),
	}
	for name, n := range nodes {
		n.SetLabel(name)
	}
	connect(t, tree, nodes["root"], nodes["a"])
	connect(t, tree, nodes["a"], nodes["leaf1"])
	connect(t, tree, nodes["a"], nodes["leaf2"])
	connect(t, tree, nodes["root"], nodes["leaf3"])
	return tree, nodes
}

func connect(t *testing.T, tree *Tree, from, to *Node) *Edge {
	t.Helper()
	e := tree.CreateEdge()
	if err := e.SetSource(from); err != nil {
		t.Fatalf("SetSource failed: %v", err)
	}
	if err := e.SetTarget(to); err != nil {
		t.Fatalf("SetTarget failed: %v", err)
	}
	return e
}

func TestTree_Root(t *testing.T) {
	tree, nodes := buildTree(t)

	root, err := tree.Root()
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	if root != nodes["root"] {
		t.Errorf("Expected root node, got %v", root.Label())
	}
	if !root.IsRoot() {
		t.Error("Root node should report IsRoot")
	}
	if nodes["leaf1"].Parent() != nodes["a"] {
		t.Error("leaf1's parent should be a")
	}
}

func TestTree_MultipleRoots(t *testing.T) {
	doc := NewDocument()
	otus := doc.CreateOTUs()
	block, _ := doc.CreateTreeBlock(otus)
	tree := block.CreateIntTree()

	tree.CreateNode()
	tree.CreateNode()

	_, err := tree.Root()
	if !errors.Is(err, ErrMultipleRoots) {
		t.Fatalf("Expected ErrMultipleRoots, got %v", err)
	}
}

func TestTree_TerminalsAndInternals(t *testing.T) {
	tree, _ := buildTree(t)

	terminals := tree.Terminals()
	internals := tree.Internals()
	total := len(tree.Nodes())

	if len(terminals)+len(internals) != total {
		t.Errorf("terminals (%d) + internals (%d) != total (%d)",
			len(terminals), len(internals), total)
	}
	if len(terminals) != 3 {
		t.Errorf("Expected 3 terminals, got %d", len(terminals))
	}
	if tree.NumTerminals() != len(terminals) {
		t.Errorf("NumTerminals %d != len(Terminals) %d", tree.NumTerminals(), len(terminals))
	}
}

func TestTree_IsolatedNode(t *testing.T) {
	doc := NewDocument()
	otus := doc.CreateOTUs()
	block, _ := doc.CreateTreeBlock(otus)
	tree := block.CreateIntTree()

	n := tree.CreateNode()
	if !n.IsTerminal() {
		t.Error("Isolated node should be terminal")
	}
	if n.IsInternal() {
		t.Error("Isolated node should not be internal")
	}
	if !n.IsRoot() {
		t.Error("Isolated node should be a root")
	}

	root, err := tree.Root()
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	if root != n {
		t.Error("Isolated node should be the tree root")
	}
	if tree.NumTerminals() != 1 {
		t.Errorf("Single-node tree should count 1 terminal, got %d", tree.NumTerminals())
	}
}

func TestTree_VisitDepthFirst(t *testing.T) {
	tree, _ := buildTree(t)

	var order []string
	err := tree.VisitDepthFirst(func(n *Node) error {
		order = append(order, n.Label())
		return nil
	})
	if err != nil {
		t.Fatalf("VisitDepthFirst failed: %v", err)
	}

	want := []string{"root", "a", "leaf1", "leaf2", "leaf3"}
	if len(order) != len(want) {
		t.Fatalf("Expected %d visits, got %d (%v)", len(want), len(order), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("Visit %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestTree_VisitDepthFirstCycle(t *testing.T) {
	doc := NewDocument()
	otus := doc.CreateOTUs()
	block, _ := doc.CreateTreeBlock(otus)
	tree := block.CreateIntTree()

	root := tree.CreateNode()
	a := tree.CreateNode()
	b := tree.CreateNode()
	connect(t, tree, root, a)
	connect(t, tree, a, b)
	connect(t, tree, b, a) // back edge

	err := tree.VisitDepthFirst(func(*Node) error { return nil })
	if !errors.Is(err, ErrCycleDetected) {
		t.Fatalf("Expected ErrCycleDetected, got %v", err)
	}
}

func TestTree_VisitorErrorAborts(t *testing.T) {
	tree, _ := buildTree(t)

	sentinel := errors.New("stop here")
	visits := 0
	err := tree.VisitDepthFirst(func(n *Node) error {
		visits++
		if n.Label() == "a" {
			return sentinel
		}
		return nil
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("Expected visitor error to propagate, got %v", err)
	}
	if visits != 2 {
		t.Errorf("Expected traversal to stop after 2 visits, got %d", visits)
	}
}

func TestTree_RootEdge(t *testing.T) {
	tree, nodes := buildTree(t)

	re, err := tree.CreateRootEdge()
	if err != nil {
		t.Fatalf("CreateRootEdge failed: %v", err)
	}
	if re.Target() != nodes["root"] {
		t.Error("Root edge should target the root node")
	}
	if re.Source() != nil {
		t.Error("Root edge must have no source")
	}
	if err := re.SetLength(FloatLength(0.1)); err != nil {
		t.Fatalf("SetLength on root edge failed: %v", err)
	}

	// The root edge must not give the root a parent
	if root, err := tree.Root(); err != nil || root != nodes["root"] {
		t.Errorf("Root changed after CreateRootEdge: %v, %v", root, err)
	}

	if _, err := tree.CreateRootEdge(); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Second CreateRootEdge should fail, got %v", err)
	}

	// A root edge cannot be rewired onto ordinary nodes
	if err := re.SetSource(nodes["a"]); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("SetSource on root edge should fail with ErrNotImplemented, got %v", err)
	}
	if err := re.SetTarget(nodes["a"]); !errors.Is(err, ErrNotImplemented) {
		t.Errorf("SetTarget on root edge should fail with ErrNotImplemented, got %v", err)
	}
	if re.Source() != nil || re.Target() != nodes["root"] {
		t.Error("Failed rewire must leave the root edge endpoints unchanged")
	}
}
