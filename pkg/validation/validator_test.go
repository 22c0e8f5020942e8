package validation

import (
	"testing"

	"github.com/phylograph/nexml/pkg/model"
)

func newTree(t *testing.T) (*model.Document, *model.Tree) {
	t.Helper()
	doc := model.NewDocument()
	otus := doc.CreateOTUs()
	block, err := doc.CreateTreeBlock(otus)
	if err != nil {
		t.Fatalf("CreateTreeBlock failed: %v", err)
	}
	return doc, block.CreateFloatTree()
}

func connect(t *testing.T, tree *model.Tree, from, to *model.Node) {
	t.Helper()
	e := tree.CreateEdge()
	if err := e.SetSource(from); err != nil {
		t.Fatalf("SetSource failed: %v", err)
	}
	if err := e.SetTarget(to); err != nil {
		t.Fatalf("SetTarget failed: %v", err)
	}
}

func validate(t *testing.T, doc *model.Document) *Result {
	t.Helper()
	result, err := NewDefaultValidator().Validate(doc)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	return result
}

func TestValidate_CleanTree(t *testing.T) {
	doc, tree := newTree(t)
	root := tree.CreateNode()
	a := tree.CreateNode()
	b := tree.CreateNode()
	connect(t, tree, root, a)
	connect(t, tree, root, b)

	result := validate(t, doc)
	if !result.Valid {
		t.Fatalf("Expected a clean result, got violations: %+v", result.Violations)
	}
	if len(result.Violations) != 0 {
		t.Errorf("Expected 0 violations, got %d", len(result.Violations))
	}
}

func TestValidate_MultipleRoots(t *testing.T) {
	doc, tree := newTree(t)
	r1 := tree.CreateNode()
	r2 := tree.CreateNode()
	a := tree.CreateNode()
	connect(t, tree, r1, a)
	_ = r2

	result := validate(t, doc)
	if result.Valid {
		t.Fatal("Expected the document to fail validation")
	}
	// Both parentless nodes are reported.
	if got := len(result.ByType(MultipleRoots)); got != 2 {
		t.Errorf("Expected 2 MultipleRoots violations, got %d", got)
	}
}

func TestValidate_Cycle(t *testing.T) {
	doc, tree := newTree(t)
	root := tree.CreateNode()
	a := tree.CreateNode()
	b := tree.CreateNode()
	connect(t, tree, root, a)
	connect(t, tree, a, b)
	connect(t, tree, b, a)

	result := validate(t, doc)
	if result.Valid {
		t.Fatal("Expected the document to fail validation")
	}
	if got := len(result.ByType(CycleFound)); got != 1 {
		t.Errorf("Expected 1 CycleFound violation, got %d", got)
	}
}

func TestValidate_UnattachedEdge(t *testing.T) {
	doc, tree := newTree(t)
	tree.CreateNode()
	tree.CreateEdge()

	result := validate(t, doc)
	if result.Valid {
		t.Fatal("Expected the document to fail validation")
	}
	if got := len(result.ByType(UnattachedEdge)); got != 1 {
		t.Errorf("Expected 1 UnattachedEdge violation, got %d", got)
	}
}

func TestValidate_UnreachableNodeIsWarning(t *testing.T) {
	doc, tree := newTree(t)
	root := tree.CreateNode()
	a := tree.CreateNode()
	b := tree.CreateNode()
	c := tree.CreateNode()
	connect(t, tree, root, a)
	// b <-> c is a two-node cycle with no parentless entry: no root can
	// reach it, so both nodes are flagged.
	connect(t, tree, b, c)
	connect(t, tree, c, b)

	result := validate(t, doc)
	if got := len(result.ByType(UnreachableNode)); got != 2 {
		t.Errorf("Expected 2 UnreachableNode violations, got %d", got)
	}
	for _, v := range result.ByType(UnreachableNode) {
		if v.Severity != Warning {
			t.Errorf("Expected Warning severity, got %v", v.Severity)
		}
	}
}

func TestValidate_DuplicateTaxonLabels(t *testing.T) {
	doc := model.NewDocument()
	otus := doc.CreateOTUs()
	otus.CreateOTU().SetLabel("chimp")
	otus.CreateOTU().SetLabel("chimp")
	otus.CreateOTU() // unlabeled

	result := validate(t, doc)
	if !result.Valid {
		t.Fatal("Label problems must not fail validation outright")
	}
	if got := len(result.ByType(DuplicateLabel)); got != 1 {
		t.Errorf("Expected 1 DuplicateLabel violation, got %d", got)
	}
	if got := len(result.ByType(UnlabeledTaxon)); got != 1 {
		t.Errorf("Expected 1 UnlabeledTaxon violation, got %d", got)
	}
}

func TestValidate_NetworksAreExemptFromRootedness(t *testing.T) {
	doc := model.NewDocument()
	otus := doc.CreateOTUs()
	block, err := doc.CreateTreeBlock(otus)
	if err != nil {
		t.Fatalf("CreateTreeBlock failed: %v", err)
	}
	nw := block.CreateFloatNetwork()
	n1 := nw.CreateNode()
	n2 := nw.CreateNode()
	n3 := nw.CreateNode()
	for _, pair := range [][2]*model.Node{{n1, n3}, {n2, n3}} {
		e := nw.CreateEdge()
		if err := e.SetSource(pair[0]); err != nil {
			t.Fatalf("SetSource failed: %v", err)
		}
		if err := e.SetTarget(pair[1]); err != nil {
			t.Fatalf("SetTarget failed: %v", err)
		}
	}

	result := validate(t, doc)
	if !result.Valid {
		t.Fatalf("Expected networks with two entry points to pass, got %+v", result.Violations)
	}
}
