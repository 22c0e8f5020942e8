package nexml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/phylograph/nexml/pkg/logging"
	"github.com/phylograph/nexml/pkg/model"
)

// Reader parses NeXML documents into the object model. Parsing is
// two-pass: identity-bearing entities (OTUs containers, OTUs, nodes) are
// materialized and indexed by their external id first, then cross
// references (node to OTU, edge endpoints, tree block to OTUs) are
// resolved by lookup.
type Reader struct {
	// Logger reports ignored content and recovered oddities. Nil means
	// silent.
	Logger logging.Logger
}

// Parse decodes a NeXML document with a silent reader.
func Parse(data []byte) (*model.Document, error) {
	r := &Reader{}
	return r.ReadBytes(data)
}

// ReadBytes decodes an in-memory NeXML document.
func (r *Reader) ReadBytes(data []byte) (*model.Document, error) {
	var raw inNexml
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode nexml document: %w", err)
	}
	return r.build(&raw)
}

// Read decodes a NeXML document from src. The source is read fully before
// the model is built.
func (r *Reader) Read(src io.Reader) (*model.Document, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read nexml source: %w", err)
	}
	return r.ReadBytes(data)
}

func (r *Reader) logger() logging.Logger {
	if r.Logger == nil {
		return logging.NewNopLogger()
	}
	return r.Logger
}

func (r *Reader) build(raw *inNexml) (*model.Document, error) {
	doc := model.NewDocument()

	for _, skipped := range raw.Characters {
		r.logger().Warn("ignoring characters block",
			logging.Field{Key: "id", Value: skipped.ID})
	}

	// Pass 1: taxa. Every otu id must be unique across the document; tree
	// blocks reference them later.
	otusByID := make(map[string]*model.OTUs)
	otuByID := make(map[string]*model.OTU)
	for _, rawOtus := range raw.Otus {
		container := doc.CreateOTUs()
		container.SetLabel(rawOtus.Label)
		applyMetas(container, rawOtus.Meta)
		if rawOtus.ID != "" {
			if _, dup := otusByID[rawOtus.ID]; dup {
				return nil, fmt.Errorf("otus %q: %w", rawOtus.ID, model.ErrDuplicateName)
			}
			otusByID[rawOtus.ID] = container
		}
		for _, rawOtu := range rawOtus.OTU {
			otu := container.CreateOTU()
			otu.SetLabel(rawOtu.Label)
			applyMetas(otu, rawOtu.Meta)
			if rawOtu.ID != "" {
				if _, dup := otuByID[rawOtu.ID]; dup {
					return nil, fmt.Errorf("otu %q: %w", rawOtu.ID, model.ErrDuplicateName)
				}
				otuByID[rawOtu.ID] = otu
			}
		}
	}

	// Pass 2: tree blocks, resolving taxa by id.
	for _, rawTrees := range raw.Trees {
		container, ok := otusByID[rawTrees.OtusRef]
		if !ok {
			return nil, fmt.Errorf("trees %q references otus %q: %w",
				rawTrees.ID, rawTrees.OtusRef, model.ErrInvalidReference)
		}
		block, err := doc.CreateTreeBlock(container)
		if err != nil {
			return nil, err
		}
		block.SetLabel(rawTrees.Label)
		applyMetas(block, rawTrees.Meta)

		for _, rawTree := range rawTrees.Tree {
			if err := r.buildTree(block, &rawTree, otuByID); err != nil {
				return nil, err
			}
		}
		for _, rawNetwork := range rawTrees.Network {
			if err := r.buildNetwork(block, &rawNetwork, otuByID); err != nil {
				return nil, err
			}
		}
	}
	return doc, nil
}

func (r *Reader) buildTree(block *model.TreeBlock, raw *inGraph, otuByID map[string]*model.OTU) error {
	var tree *model.Tree
	switch raw.Type {
	case typeIntTree:
		tree = block.CreateIntTree()
	case typeFloatTree:
		tree = block.CreateFloatTree()
	default:
		// Anything unrecognized falls back to the wider numeric domain.
		r.logger().Warn("unrecognized tree type, assuming float",
			logging.Field{Key: "id", Value: raw.ID},
			logging.Field{Key: "type", Value: raw.Type})
		tree = block.CreateFloatTree()
	}
	tree.SetLabel(raw.Label)
	applyMetas(tree, raw.Meta)

	nodeByID, err := buildNodes(&tree.Network, raw, otuByID)
	if err != nil {
		return err
	}
	if err := buildEdges(&tree.Network, raw, nodeByID); err != nil {
		return err
	}

	if raw.RootEdge != nil {
		target, ok := nodeByID[raw.RootEdge.Target]
		if !ok {
			return fmt.Errorf("rootedge %q references node %q: %w",
				raw.RootEdge.ID, raw.RootEdge.Target, model.ErrInvalidReference)
		}
		root, err := tree.Root()
		if err != nil {
			return fmt.Errorf("tree %q: %w", raw.ID, err)
		}
		if root != target {
			return fmt.Errorf("rootedge %q targets non-root node %q: %w",
				raw.RootEdge.ID, raw.RootEdge.Target, model.ErrInvalidReference)
		}
		re, err := tree.CreateRootEdge()
		if err != nil {
			return err
		}
		if raw.RootEdge.Length != "" {
			length, err := parseLength(raw.RootEdge.Length, tree.Kind())
			if err != nil {
				return fmt.Errorf("rootedge %q: %w", raw.RootEdge.ID, err)
			}
			if err := re.SetLength(length); err != nil {
				return err
			}
		}
		applyMetas(re, raw.RootEdge.Meta)
	}
	return nil
}

func (r *Reader) buildNetwork(block *model.TreeBlock, raw *inGraph, otuByID map[string]*model.OTU) error {
	var nw *model.Network
	switch raw.Type {
	case typeIntNetwork:
		nw = block.CreateIntNetwork()
	case typeFloatNetwork:
		nw = block.CreateFloatNetwork()
	default:
		r.logger().Warn("unrecognized network type, assuming float",
			logging.Field{Key: "id", Value: raw.ID},
			logging.Field{Key: "type", Value: raw.Type})
		nw = block.CreateFloatNetwork()
	}
	nw.SetLabel(raw.Label)
	applyMetas(nw, raw.Meta)

	nodeByID, err := buildNodes(nw, raw, otuByID)
	if err != nil {
		return err
	}
	return buildEdges(nw, raw, nodeByID)
}

// buildNodes materializes the graph's nodes and resolves their taxon
// bindings. Node ids are scoped to the enclosing tree or network element.
func buildNodes(nw *model.Network, raw *inGraph, otuByID map[string]*model.OTU) (map[string]*model.Node, error) {
	nodeByID := make(map[string]*model.Node, len(raw.Node))
	for _, rawNode := range raw.Node {
		node := nw.CreateNode()
		node.SetLabel(rawNode.Label)
		applyMetas(node, rawNode.Meta)
		if rawNode.Otu != "" {
			otu, ok := otuByID[rawNode.Otu]
			if !ok {
				return nil, fmt.Errorf("node %q references otu %q: %w",
					rawNode.ID, rawNode.Otu, model.ErrInvalidReference)
			}
			if err := node.SetOTU(otu); err != nil {
				return nil, err
			}
		}
		if rawNode.ID != "" {
			if _, dup := nodeByID[rawNode.ID]; dup {
				return nil, fmt.Errorf("node %q: %w", rawNode.ID, model.ErrDuplicateName)
			}
			nodeByID[rawNode.ID] = node
		}
	}
	return nodeByID, nil
}

func buildEdges(nw *model.Network, raw *inGraph, nodeByID map[string]*model.Node) error {
	for _, rawEdge := range raw.Edge {
		source, ok := nodeByID[rawEdge.Source]
		if !ok {
			return fmt.Errorf("edge %q references source node %q: %w",
				rawEdge.ID, rawEdge.Source, model.ErrInvalidReference)
		}
		target, ok := nodeByID[rawEdge.Target]
		if !ok {
			return fmt.Errorf("edge %q references target node %q: %w",
				rawEdge.ID, rawEdge.Target, model.ErrInvalidReference)
		}
		edge := nw.CreateEdge()
		if err := edge.SetSource(source); err != nil {
			return err
		}
		if err := edge.SetTarget(target); err != nil {
			return err
		}
		if rawEdge.Length != "" {
			length, err := parseLength(rawEdge.Length, nw.Kind())
			if err != nil {
				return fmt.Errorf("edge %q: %w", rawEdge.ID, err)
			}
			if err := edge.SetLength(length); err != nil {
				return err
			}
		}
		applyMetas(edge, rawEdge.Meta)
	}
	return nil
}

func parseLength(s string, kind model.WeightKind) (model.Length, error) {
	switch kind {
	case model.IntKind:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return model.Length{}, fmt.Errorf("length %q is not an integer: %w",
				s, model.ErrTypeMismatch)
		}
		return model.IntLength(v), nil
	default:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return model.Length{}, fmt.Errorf("length %q is not a number: %w",
				s, model.ErrTypeMismatch)
		}
		return model.FloatLength(v), nil
	}
}
