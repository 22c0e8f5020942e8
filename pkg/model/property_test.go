package model

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// randomTree builds a tree with n nodes. Each node after the first attaches
// under an existing node chosen by the shape seed, so the result is always
// a single-rooted, acyclic tree.
func randomTree(n int, shape uint64) *Tree {
	doc := NewDocument()
	otus := doc.CreateOTUs()
	block, _ := doc.CreateTreeBlock(otus)
	tree := block.CreateFloatTree()

	nodes := make([]*Node, 0, n)
	nodes = append(nodes, tree.CreateNode())
	for i := 1; i < n; i++ {
		parent := nodes[int(shape%uint64(len(nodes)))]
		shape = shape/7 + 13
		child := tree.CreateNode()
		e := tree.CreateEdge()
		if err := e.SetSource(parent); err != nil {
			panic(err)
		}
		if err := e.SetTarget(child); err != nil {
			panic(err)
		}
		nodes = append(nodes, child)
	}
	return tree
}

// TestTreeInvariants uses property-based testing to verify classification
// and traversal invariants that must hold for any well-formed tree.
func TestTreeInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	// Property 1: every node is either terminal or internal, never both
	properties.Property("terminals and internals partition the nodes", prop.ForAll(
		func(n int, shape uint64) bool {
			tree := randomTree(n, shape)
			return len(tree.Terminals())+len(tree.Internals()) == len(tree.Nodes())
		},
		gen.IntRange(1, 40),
		gen.UInt64(),
	))

	// Property 2: the terminal count matches the terminal list
	properties.Property("NumTerminals agrees with Terminals", prop.ForAll(
		func(n int, shape uint64) bool {
			tree := randomTree(n, shape)
			return tree.NumTerminals() == len(tree.Terminals())
		},
		gen.IntRange(1, 40),
		gen.UInt64(),
	))

	// Property 3: depth-first traversal reaches every node exactly once
	properties.Property("depth-first visits every node once", prop.ForAll(
		func(n int, shape uint64) bool {
			tree := randomTree(n, shape)
			seen := make(map[*Node]int)
			if err := tree.VisitDepthFirst(func(node *Node) error {
				seen[node]++
				return nil
			}); err != nil {
				return false
			}
			if len(seen) != len(tree.Nodes()) {
				return false
			}
			for _, count := range seen {
				if count != 1 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 40),
		gen.UInt64(),
	))

	// Property 4: removing an OTU leaves no reference behind
	properties.Property("RemoveOTU leaves no dangling references", prop.ForAll(
		func(n int, shape uint64) bool {
			doc := NewDocument()
			otus := doc.CreateOTUs()
			block, _ := doc.CreateTreeBlock(otus)
			tree := block.CreateFloatTree()
			if err := otus.CreateOTUSet("sampled"); err != nil {
				return false
			}

			taxa := make([]*OTU, n)
			for i := 0; i < n; i++ {
				taxa[i] = otus.CreateOTU()
				node := tree.CreateNode()
				if err := node.SetOTU(taxa[i]); err != nil {
					return false
				}
				if err := otus.AddOTUToSet("sampled", taxa[i]); err != nil {
					return false
				}
			}

			victim := taxa[int(shape%uint64(n))]
			otus.RemoveOTU(victim)

			for _, o := range otus.AllOTUs() {
				if o == victim {
					return false
				}
			}
			members, err := otus.OTUsFromSet("sampled")
			if err != nil {
				return false
			}
			for _, o := range members {
				if o == victim {
					return false
				}
			}
			for _, node := range tree.Nodes() {
				if node.OTU() == victim {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 20),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
