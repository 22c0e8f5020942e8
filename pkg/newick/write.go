// Package newick emits and parses trees in the Newick nested-parenthesis
// format. Emission works on any acyclic single-rooted model.Tree; parsing
// builds float trees inside an existing tree block, binding leaf labels to
// the block's taxa.
package newick

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phylograph/nexml/pkg/model"
)

// Characters that force a label into single quotes.
const quoteForced = "()[]{}:;,='"

// Marshal renders the tree as a single Newick statement terminated by a
// semicolon. The tree must be single-rooted and acyclic.
func Marshal(t *model.Tree) (string, error) {
	root, err := t.Root()
	if err != nil {
		return "", err
	}
	if root == nil {
		return ";", nil
	}
	// A cyclic graph would recurse forever below; refuse it up front.
	if err := t.VisitDepthFirst(func(*model.Node) error { return nil }); err != nil {
		return "", err
	}

	var sb strings.Builder
	composeNode(&sb, t, root)
	sb.WriteByte(';')
	return sb.String(), nil
}

// Write renders the tree to dst with a trailing newline.
func Write(dst io.Writer, t *model.Tree) error {
	s, err := Marshal(t)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(dst, s)
	return err
}

func composeNode(sb *strings.Builder, t *model.Tree, n *model.Node) {
	children := n.Children()
	if len(children) > 0 {
		sb.WriteByte('(')
		for i, child := range children {
			if i > 0 {
				sb.WriteByte(',')
			}
			composeNode(sb, t, child)
		}
		sb.WriteByte(')')
	}
	sb.WriteString(escapeLabel(displayTag(n, len(children) == 0)))
	if l := branchLength(t, n); l != nil {
		sb.WriteByte(':')
		sb.WriteString(formatLength(*l))
	}
}

// displayTag picks the taxon label first, then the node label. Unlabeled
// leaves fall back to the node id so no terminal is anonymous.
func displayTag(n *model.Node, leaf bool) string {
	if otu := n.OTU(); otu != nil && otu.Label() != "" {
		return otu.Label()
	}
	if n.Label() != "" {
		return n.Label()
	}
	if leaf {
		return n.ID()
	}
	return ""
}

// branchLength is the length of the edge subtending n: the parent edge for
// interior nodes, the root edge (when present) for the root.
func branchLength(t *model.Tree, n *model.Node) *model.Length {
	if e := n.ParentEdge(); e != nil {
		return e.Length()
	}
	if re := t.RootEdge(); re != nil && re.Target() == n {
		return re.Length()
	}
	return nil
}

func formatLength(l model.Length) string {
	if v, err := l.AsInt(); err == nil {
		return strconv.FormatInt(v, 10)
	}
	return strconv.FormatFloat(l.AsFloat(), 'g', -1, 64)
}

func escapeLabel(label string) string {
	if label == "" {
		return label
	}
	if !strings.ContainsAny(label, quoteForced+" \t\n\r") {
		return label
	}
	return "'" + strings.ReplaceAll(label, "'", "''") + "'"
}
