package newick

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phylograph/nexml/pkg/model"
)

// ErrSyntax reports malformed Newick input.
var ErrSyntax = errors.New("malformed newick")

// Characters that terminate an unquoted label.
const unquotedEnd = "()[]:;, \t\n\r"

// Read parses every semicolon-terminated tree statement from src into
// block. Trees are created as float trees since Newick does not declare a
// numeric kind; leaf labels bind to the block's taxa, creating OTUs on
// first sight.
func Read(block *model.TreeBlock, src io.Reader) ([]*model.Tree, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read newick source: %w", err)
	}
	return ReadString(block, string(data))
}

// ReadString parses every tree statement in the given text. The text is
// checked against a scratch document first, so a syntax error in any
// statement leaves the caller's block and its taxa untouched.
func ReadString(block *model.TreeBlock, text string) ([]*model.Tree, error) {
	if _, err := parseAll(scratchBlock(), text); err != nil {
		return nil, err
	}
	return parseAll(block, text)
}

func parseAll(block *model.TreeBlock, text string) ([]*model.Tree, error) {
	p := &parser{input: text, block: block}
	trees := make([]*model.Tree, 0)
	for {
		p.skipSpace()
		if p.eof() {
			return trees, nil
		}
		tree, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
}

func scratchBlock() *model.TreeBlock {
	doc := model.NewDocument()
	block, err := doc.CreateTreeBlock(doc.CreateOTUs())
	if err != nil {
		panic(err)
	}
	return block
}

type parser struct {
	input string
	pos   int
	block *model.TreeBlock
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() && strings.IndexByte(" \t\n\r", p.input[p.pos]) >= 0 {
		p.pos++
	}
}

func (p *parser) errorf(format string, v ...any) error {
	return fmt.Errorf("offset %d: %s: %w", p.pos, fmt.Sprintf(format, v...), ErrSyntax)
}

func (p *parser) parseStatement() (*model.Tree, error) {
	tree := p.block.CreateFloatTree()
	p.skipSpace()
	// A bare semicolon is an empty tree, matching what Marshal emits for
	// one.
	if p.peek() == ';' {
		p.pos++
		return tree, nil
	}
	if err := p.parseSubtree(tree, nil); err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != ';' {
		return nil, p.errorf("expected ';', got %q", p.peek())
	}
	p.pos++
	return tree, nil
}

// parseSubtree reads one subtree and hangs it under parent (nil for the
// root). Grammar: subtree ::= '(' subtree (',' subtree)* ')' label? | label
// with an optional ':' length after either form.
func (p *parser) parseSubtree(tree *model.Tree, parent *model.Node) error {
	p.skipSpace()
	node := tree.CreateNode()

	var edge *model.Edge
	if parent != nil {
		edge = tree.CreateEdge()
		if err := edge.SetSource(parent); err != nil {
			return err
		}
		if err := edge.SetTarget(node); err != nil {
			return err
		}
	}

	internal := p.peek() == '('
	if internal {
		p.pos++
		for {
			if err := p.parseSubtree(tree, node); err != nil {
				return err
			}
			p.skipSpace()
			switch p.peek() {
			case ',':
				p.pos++
				continue
			case ')':
				p.pos++
			default:
				return p.errorf("expected ',' or ')', got %q", p.peek())
			}
			break
		}
	}

	label, err := p.parseLabel()
	if err != nil {
		return err
	}
	if label != "" {
		node.SetLabel(label)
		if !internal {
			if err := node.SetOTU(p.findOrCreateOTU(label)); err != nil {
				return err
			}
		}
	} else if !internal {
		return p.errorf("leaf without a label")
	}

	p.skipSpace()
	if p.peek() == ':' {
		p.pos++
		length, err := p.parseLength()
		if err != nil {
			return err
		}
		if edge == nil {
			// A length on the outermost subtree belongs to the edge
			// subtending the root.
			re, err := tree.CreateRootEdge()
			if err != nil {
				return err
			}
			edge = re
		}
		if err := edge.SetLength(model.FloatLength(length)); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseLabel() (string, error) {
	p.skipSpace()
	if p.peek() == '\'' {
		return p.parseQuotedLabel()
	}
	start := p.pos
	for !p.eof() && strings.IndexByte(unquotedEnd, p.input[p.pos]) < 0 {
		p.pos++
	}
	return p.input[start:p.pos], nil
}

// parseQuotedLabel reads a single-quoted label; a doubled quote is a
// literal quote.
func (p *parser) parseQuotedLabel() (string, error) {
	p.pos++
	var sb strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated quoted label")
		}
		c := p.input[p.pos]
		p.pos++
		if c != '\'' {
			sb.WriteByte(c)
			continue
		}
		if p.peek() == '\'' {
			sb.WriteByte('\'')
			p.pos++
			continue
		}
		return sb.String(), nil
	}
}

func (p *parser) parseLength() (float64, error) {
	p.skipSpace()
	start := p.pos
	for !p.eof() && strings.IndexByte("-+.eE0123456789", p.input[p.pos]) >= 0 {
		p.pos++
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, p.errorf("invalid branch length %q", p.input[start:p.pos])
	}
	return v, nil
}

func (p *parser) findOrCreateOTU(label string) *model.OTU {
	for _, otu := range p.block.OTUs().AllOTUs() {
		if otu.Label() == label {
			return otu
		}
	}
	otu := p.block.OTUs().CreateOTU()
	otu.SetLabel(label)
	return otu
}
