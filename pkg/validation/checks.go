package validation

import (
	"fmt"

	"github.com/phylograph/nexml/pkg/model"
)

// RootednessCheck verifies that every tree has exactly one parentless node.
// Networks are exempt: they may legitimately have several entry points.
type RootednessCheck struct{}

func (c *RootednessCheck) Name() string { return "rootedness" }

func (c *RootednessCheck) Validate(doc *model.Document) ([]Violation, error) {
	violations := make([]Violation, 0)
	for _, tree := range allTrees(doc) {
		var roots []*model.Node
		for _, n := range tree.Nodes() {
			if n.IsRoot() {
				roots = append(roots, n)
			}
		}
		switch {
		case len(tree.Nodes()) > 0 && len(roots) == 0:
			violations = append(violations, Violation{
				Type:     NoRoot,
				Severity: Error,
				GraphID:  tree.ID(),
				Check:    c.Name(),
				Message:  "tree has no parentless node",
			})
		case len(roots) > 1:
			for _, r := range roots {
				violations = append(violations, Violation{
					Type:     MultipleRoots,
					Severity: Error,
					GraphID:  tree.ID(),
					EntityID: r.ID(),
					Check:    c.Name(),
					Message:  fmt.Sprintf("tree has %d parentless nodes", len(roots)),
				})
			}
		}
	}
	return violations, nil
}

// AcyclicityCheck walks every tree with three-color marking and reports any
// node where a directed cycle closes.
type AcyclicityCheck struct{}

func (c *AcyclicityCheck) Name() string { return "acyclicity" }

type dfsColor int

const (
	white dfsColor = iota
	gray
	black
)

func (c *AcyclicityCheck) Validate(doc *model.Document) ([]Violation, error) {
	violations := make([]Violation, 0)
	for _, tree := range allTrees(doc) {
		colors := make(map[*model.Node]dfsColor)
		for _, start := range tree.Nodes() {
			if colors[start] != white {
				continue
			}
			if offender := findCycle(start, colors); offender != nil {
				violations = append(violations, Violation{
					Type:     CycleFound,
					Severity: Error,
					GraphID:  tree.ID(),
					EntityID: offender.ID(),
					Check:    c.Name(),
					Message:  "directed cycle closes at this node",
				})
			}
		}
	}
	return violations, nil
}

// findCycle returns the node where a back edge was found, nil if the
// subgraph below n is acyclic.
func findCycle(n *model.Node, colors map[*model.Node]dfsColor) *model.Node {
	colors[n] = gray
	for _, child := range n.Children() {
		switch colors[child] {
		case gray:
			return child
		case white:
			if offender := findCycle(child, colors); offender != nil {
				return offender
			}
		}
	}
	colors[n] = black
	return nil
}

// EdgeAttachmentCheck reports edges with a missing endpoint. Such edges are
// representable in the model (edges are created unattached) but cannot be
// serialized.
type EdgeAttachmentCheck struct{}

func (c *EdgeAttachmentCheck) Name() string { return "edge-attachment" }

func (c *EdgeAttachmentCheck) Validate(doc *model.Document) ([]Violation, error) {
	violations := make([]Violation, 0)
	for _, block := range doc.TreeBlocks() {
		for _, g := range block.Graphs() {
			for _, e := range g.Edges() {
				if e.Source() != nil && e.Target() != nil {
					continue
				}
				violations = append(violations, Violation{
					Type:     UnattachedEdge,
					Severity: Error,
					GraphID:  g.ID(),
					EntityID: e.ID(),
					Check:    c.Name(),
					Message:  "edge has an unattached endpoint",
				})
			}
		}
	}
	return violations, nil
}

// ReachabilityCheck reports tree nodes that no parentless node can reach.
// They serialize fine but silently drop out of Newick output.
type ReachabilityCheck struct{}

func (c *ReachabilityCheck) Name() string { return "reachability" }

func (c *ReachabilityCheck) Validate(doc *model.Document) ([]Violation, error) {
	violations := make([]Violation, 0)
	for _, tree := range allTrees(doc) {
		reached := make(map[*model.Node]bool)
		for _, n := range tree.Nodes() {
			if n.IsRoot() {
				markReachable(n, reached)
			}
		}
		for _, n := range tree.Nodes() {
			if reached[n] {
				continue
			}
			violations = append(violations, Violation{
				Type:     UnreachableNode,
				Severity: Warning,
				GraphID:  tree.ID(),
				EntityID: n.ID(),
				Check:    c.Name(),
				Message:  "node is unreachable from any root",
			})
		}
	}
	return violations, nil
}

func markReachable(n *model.Node, reached map[*model.Node]bool) {
	if reached[n] {
		return
	}
	reached[n] = true
	for _, child := range n.Children() {
		markReachable(child, reached)
	}
}

// TaxaCheck flags taxa sharing a label (warning) and taxa with no label at
// all (info). Neither breaks serialization, both break Newick round trips.
type TaxaCheck struct{}

func (c *TaxaCheck) Name() string { return "taxa" }

func (c *TaxaCheck) Validate(doc *model.Document) ([]Violation, error) {
	violations := make([]Violation, 0)
	for _, container := range doc.OTUsBlocks() {
		seen := make(map[string]bool)
		for _, otu := range container.AllOTUs() {
			label := otu.Label()
			if label == "" {
				violations = append(violations, Violation{
					Type:     UnlabeledTaxon,
					Severity: Info,
					EntityID: otu.ID(),
					Check:    c.Name(),
					Message:  "taxon has no label",
				})
				continue
			}
			if seen[label] {
				violations = append(violations, Violation{
					Type:     DuplicateLabel,
					Severity: Warning,
					EntityID: otu.ID(),
					Check:    c.Name(),
					Message:  fmt.Sprintf("label %q is shared by more than one taxon", label),
				})
			}
			seen[label] = true
		}
	}
	return violations, nil
}

func allTrees(doc *model.Document) []*model.Tree {
	var trees []*model.Tree
	for _, block := range doc.TreeBlocks() {
		for _, g := range block.Graphs() {
			if t, ok := g.(*model.Tree); ok {
				trees = append(trees, t)
			}
		}
	}
	return trees
}
