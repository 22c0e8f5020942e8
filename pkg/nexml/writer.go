package nexml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/phylograph/nexml/pkg/model"
)

// Writer serializes a model.Document as a NeXML document. The zero value
// writes with two-space indentation.
type Writer struct {
	// Indent is the per-level indentation string.
	Indent string
}

// Marshal serializes doc with the default writer.
func Marshal(doc *model.Document) ([]byte, error) {
	var buf bytes.Buffer
	w := &Writer{}
	if err := w.Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes doc to dst. OTUs blocks are written before tree blocks
// so that every taxon reference points backwards in the document.
func (w *Writer) Write(dst io.Writer, doc *model.Document) error {
	root := outNexml{
		Version: "0.9",
		NexNS:   nexNamespace,
		XsiNS:   xsiNamespace,
	}

	for _, c := range doc.OTUsBlocks() {
		root.Otus = append(root.Otus, composeOtus(c))
	}
	for _, block := range doc.TreeBlocks() {
		trees, err := composeTreeBlock(block)
		if err != nil {
			return err
		}
		root.Trees = append(root.Trees, trees)
	}

	if _, err := io.WriteString(dst, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(dst)
	indent := w.Indent
	if indent == "" {
		indent = "  "
	}
	enc.Indent("", indent)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode nexml document: %w", err)
	}
	return enc.Close()
}

func composeOtus(c *model.OTUs) outOtus {
	out := outOtus{
		ID:    c.ID(),
		Label: c.Label(),
		Meta:  metasFor(c),
	}
	for _, otu := range c.AllOTUs() {
		out.OTU = append(out.OTU, outOtu{
			ID:    otu.ID(),
			Label: otu.Label(),
			Meta:  metasFor(otu),
		})
	}
	return out
}

func composeTreeBlock(block *model.TreeBlock) (outTrees, error) {
	out := outTrees{
		ID:      block.ID(),
		Label:   block.Label(),
		OtusRef: block.OTUs().ID(),
		Meta:    metasFor(block),
	}
	for _, g := range block.Graphs() {
		switch v := g.(type) {
		case *model.Tree:
			tree, err := composeTree(v)
			if err != nil {
				return outTrees{}, err
			}
			out.Tree = append(out.Tree, tree)
		case *model.Network:
			nw, err := composeNetwork(v)
			if err != nil {
				return outTrees{}, err
			}
			out.Network = append(out.Network, nw)
		}
	}
	return out, nil
}

// derivedTreeKind chooses the output type tag by re-scanning every edge
// length for a non-integral value. It is recomputed on each serialization
// because lengths are mutable; a declared float tree whose lengths are all
// whole numbers serializes as an integer tree.
func derivedTreeKind(t *model.Tree) model.WeightKind {
	for _, e := range t.Edges() {
		if l := e.Length(); l != nil && !l.IsIntegral() {
			return model.FloatKind
		}
	}
	if re := t.RootEdge(); re != nil {
		if l := re.Length(); l != nil && !l.IsIntegral() {
			return model.FloatKind
		}
	}
	return model.IntKind
}

func composeTree(t *model.Tree) (outTree, error) {
	kind := derivedTreeKind(t)
	out := outTree{
		ID:    t.ID(),
		Label: t.Label(),
		Meta:  metasFor(t),
	}
	if kind == model.IntKind {
		out.XSIType = typeIntTree
	} else {
		out.XSIType = typeFloatTree
	}

	for _, n := range t.Nodes() {
		out.Node = append(out.Node, composeNode(n))
	}
	for _, e := range t.Edges() {
		edge, err := composeEdge(e, kind)
		if err != nil {
			return outTree{}, err
		}
		out.Edge = append(out.Edge, edge)
	}
	if re := t.RootEdge(); re != nil {
		length, err := formatLength(re.Length(), kind)
		if err != nil {
			return outTree{}, fmt.Errorf("root edge %s: %w", re.ID(), err)
		}
		out.RootEdge = &outRootEdge{
			ID:     re.ID(),
			Target: re.Target().ID(),
			Length: length,
			Meta:   metasFor(re),
		}
	}
	return out, nil
}

func composeNetwork(nw *model.Network) (outNetwork, error) {
	out := outNetwork{
		ID:    nw.ID(),
		Label: nw.Label(),
		Meta:  metasFor(nw),
	}
	if nw.Kind() == model.IntKind {
		out.XSIType = typeIntNetwork
	} else {
		out.XSIType = typeFloatNetwork
	}
	for _, n := range nw.Nodes() {
		out.Node = append(out.Node, composeNode(n))
	}
	for _, e := range nw.Edges() {
		edge, err := composeEdge(e, nw.Kind())
		if err != nil {
			return outNetwork{}, err
		}
		out.Edge = append(out.Edge, edge)
	}
	return out, nil
}

func composeNode(n *model.Node) outNode {
	out := outNode{
		ID:    n.ID(),
		Label: n.Label(),
		Meta:  metasFor(n),
	}
	if otu := n.OTU(); otu != nil {
		out.Otu = otu.ID()
	}
	return out
}

func composeEdge(e *model.Edge, kind model.WeightKind) (outEdge, error) {
	if e.Source() == nil || e.Target() == nil {
		return outEdge{}, fmt.Errorf("edge %s has an unattached endpoint: %w",
			e.ID(), model.ErrInvalidReference)
	}
	length, err := formatLength(e.Length(), kind)
	if err != nil {
		return outEdge{}, fmt.Errorf("edge %s: %w", e.ID(), err)
	}
	return outEdge{
		ID:     e.ID(),
		Source: e.Source().ID(),
		Target: e.Target().ID(),
		Length: length,
		Meta:   metasFor(e),
	}, nil
}

func formatLength(l *model.Length, kind model.WeightKind) (string, error) {
	if l == nil {
		return "", nil
	}
	if kind == model.IntKind {
		v, err := l.AsInt()
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(v, 10), nil
	}
	return strconv.FormatFloat(l.AsFloat(), 'g', -1, 64), nil
}
