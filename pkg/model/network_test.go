package model

import (
	"errors"
	"testing"
)

func TestTreeBlock_MakeIntNetwork(t *testing.T) {
	doc := NewDocument()
	mammals := doc.CreateOTUs()
	block, err := doc.CreateTreeBlock(mammals)
	if err != nil {
		t.Fatalf("CreateTreeBlock failed: %v", err)
	}

	network := block.CreateIntNetwork()
	if network.Kind() != IntKind {
		t.Fatalf("Expected integer kind, got %v", network.Kind())
	}

	node1 := network.CreateNode()
	node2 := network.CreateNode()
	edge := network.CreateEdge()
	if err := edge.SetSource(node1); err != nil {
		t.Fatalf("SetSource failed: %v", err)
	}
	if err := edge.SetTarget(node2); err != nil {
		t.Fatalf("SetTarget failed: %v", err)
	}

	if edge.Source() != node1 {
		t.Error("edge.Source should be node1")
	}
	if edge.Target() != node2 {
		t.Error("edge.Target should be node2")
	}

	if err := edge.SetLength(IntLength(34)); err != nil {
		t.Fatalf("SetLength failed: %v", err)
	}
	got, err := edge.Length().AsInt()
	if err != nil {
		t.Fatalf("AsInt failed: %v", err)
	}
	if got != 34 {
		t.Errorf("Expected length 34, got %d", got)
	}

	chimp := mammals.CreateOTU()
	chimp.SetLabel("chimp")
	if err := node2.SetOTU(chimp); err != nil {
		t.Fatalf("SetOTU failed: %v", err)
	}
	if node2.OTU() != chimp {
		t.Error("node2.OTU should be chimp")
	}
}

func TestTreeBlock_MakeFloatNetwork(t *testing.T) {
	doc := NewDocument()
	otus := doc.CreateOTUs()
	block, err := doc.CreateTreeBlock(otus)
	if err != nil {
		t.Fatalf("CreateTreeBlock failed: %v", err)
	}

	network := block.CreateFloatNetwork()
	node1 := network.CreateNode()
	node2 := network.CreateNode()
	edge := network.CreateEdge()
	if err := edge.SetSource(node1); err != nil {
		t.Fatalf("SetSource failed: %v", err)
	}
	if err := edge.SetTarget(node2); err != nil {
		t.Fatalf("SetTarget failed: %v", err)
	}

	if err := edge.SetLength(FloatLength(0.5)); err != nil {
		t.Fatalf("SetLength failed: %v", err)
	}
	if got := edge.Length().AsFloat(); got != 0.5 {
		t.Errorf("Expected length 0.5, got %g", got)
	}
}

func TestEdge_SetLengthTypeMismatch(t *testing.T) {
	doc := NewDocument()
	otus := doc.CreateOTUs()
	block, _ := doc.CreateTreeBlock(otus)
	network := block.CreateIntNetwork()

	node1 := network.CreateNode()
	node2 := network.CreateNode()
	edge := network.CreateEdge()
	if err := edge.SetSource(node1); err != nil {
		t.Fatalf("SetSource failed: %v", err)
	}
	if err := edge.SetTarget(node2); err != nil {
		t.Fatalf("SetTarget failed: %v", err)
	}
	if err := edge.SetLength(IntLength(34)); err != nil {
		t.Fatalf("SetLength failed: %v", err)
	}

	err := edge.SetLength(FloatLength(2.5))
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("Expected ErrTypeMismatch, got %v", err)
	}

	// Prior length must survive the failed call
	got, err := edge.Length().AsInt()
	if err != nil {
		t.Fatalf("AsInt failed: %v", err)
	}
	if got != 34 {
		t.Errorf("Failed SetLength changed the length to %d", got)
	}

	// A whole-number float is accepted by an integer edge
	if err := edge.SetLength(FloatLength(5.0)); err != nil {
		t.Fatalf("Whole-number float rejected: %v", err)
	}
	if got, _ := edge.Length().AsInt(); got != 5 {
		t.Errorf("Expected length 5, got %d", got)
	}
}

func TestEdge_CrossNetworkReference(t *testing.T) {
	doc := NewDocument()
	otus := doc.CreateOTUs()
	block, _ := doc.CreateTreeBlock(otus)

	network := block.CreateIntNetwork()
	other := block.CreateIntNetwork()

	foreign := other.CreateNode()
	edge := network.CreateEdge()

	if err := edge.SetSource(foreign); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("Expected ErrInvalidReference for cross-network source, got %v", err)
	}
	if err := edge.SetTarget(foreign); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("Expected ErrInvalidReference for cross-network target, got %v", err)
	}
	if edge.Source() != nil || edge.Target() != nil {
		t.Error("Failed attach must leave the edge unattached")
	}
}

func TestNode_SetOTUCrossContainer(t *testing.T) {
	doc := NewDocument()
	mammals := doc.CreateOTUs()
	birds := doc.CreateOTUs()
	block, _ := doc.CreateTreeBlock(mammals)
	network := block.CreateIntNetwork()

	node := network.CreateNode()
	sparrow := birds.CreateOTU()

	if err := node.SetOTU(sparrow); !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("Expected ErrInvalidReference, got %v", err)
	}
	if node.OTU() != nil {
		t.Error("Failed SetOTU must leave the node unbound")
	}
}

func TestEdge_ReattachUpdatesIndexes(t *testing.T) {
	doc := NewDocument()
	otus := doc.CreateOTUs()
	block, _ := doc.CreateTreeBlock(otus)
	network := block.CreateIntNetwork()

	a := network.CreateNode()
	b := network.CreateNode()
	c := network.CreateNode()

	edge := network.CreateEdge()
	if err := edge.SetSource(a); err != nil {
		t.Fatalf("SetSource failed: %v", err)
	}
	if err := edge.SetTarget(b); err != nil {
		t.Fatalf("SetTarget failed: %v", err)
	}

	// Rewire target b -> c; the old target loses its parent
	if err := edge.SetTarget(c); err != nil {
		t.Fatalf("SetTarget failed: %v", err)
	}
	if b.ParentEdge() != nil {
		t.Error("Old target still has a parent edge")
	}
	if c.ParentEdge() != edge {
		t.Error("New target has no parent edge")
	}
	if len(a.ChildEdges()) != 1 {
		t.Errorf("Expected 1 child edge on source, got %d", len(a.ChildEdges()))
	}
}
