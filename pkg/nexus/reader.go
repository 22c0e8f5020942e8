// Package nexus reads the NEXUS interchange format: block-structured text
// files whose TAXA blocks declare taxa and whose TREES blocks wrap Newick
// tree statements, optionally with a TRANSLATE table mapping short tokens
// to taxon labels. Tree statements are delegated to the newick parser;
// CHARACTERS/DATA blocks and unknown blocks are skipped with a warning.
package nexus

import (
	"errors"
	"fmt"
	"io"

	"github.com/phylograph/nexml/pkg/logging"
	"github.com/phylograph/nexml/pkg/model"
	"github.com/phylograph/nexml/pkg/newick"
)

// ErrSyntax reports malformed NEXUS input.
var ErrSyntax = errors.New("malformed nexus")

// Reader parses NEXUS documents into the object model. Taxa declared by
// TAXLABELS and taxa implied by tree leaves share one OTUs container; every
// tree lands in one tree block bound to it.
type Reader struct {
	// Logger reports ignored blocks. Nil means silent.
	Logger logging.Logger
}

// Parse decodes a NEXUS document with a silent reader.
func Parse(data []byte) (*model.Document, error) {
	r := &Reader{}
	return r.ReadBytes(data)
}

// ReadBytes decodes an in-memory NEXUS document.
func (r *Reader) ReadBytes(data []byte) (*model.Document, error) {
	p := &parser{
		s:         newScanner(string(data)),
		doc:       model.NewDocument(),
		translate: make(map[string]string),
		logger:    r.logger(),
	}
	return p.build()
}

// Read decodes a NEXUS document from src. The source is read fully before
// parsing starts.
func (r *Reader) Read(src io.Reader) (*model.Document, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read nexus source: %w", err)
	}
	return r.ReadBytes(data)
}

func (r *Reader) logger() logging.Logger {
	if r.Logger == nil {
		return logging.NewNopLogger()
	}
	return r.Logger
}

type parser struct {
	s         *scanner
	doc       *model.Document
	otus      *model.OTUs
	block     *model.TreeBlock
	translate map[string]string
	ntax      int
	logger    logging.Logger
}

func (p *parser) build() (*model.Document, error) {
	tok, err := p.s.nextUpper()
	if err != nil {
		return nil, err
	}
	if tok != "#NEXUS" {
		return nil, p.s.errorf("expected #NEXUS header, got %q", tok)
	}

	for {
		tok, err := p.s.nextUpper()
		if err != nil {
			return nil, err
		}
		if tok == "" {
			break
		}
		if tok != "BEGIN" {
			continue
		}
		name, err := p.s.nextUpper()
		if err != nil {
			return nil, err
		}
		switch name {
		case "TAXA":
			err = p.parseTaxaBlock()
		case "TREES":
			err = p.parseTreesBlock()
		case "CHARACTERS", "DATA":
			p.logger.Warn("ignoring characters block",
				logging.Field{Key: "block", Value: name})
			err = p.skipBlock()
		default:
			p.logger.Warn("ignoring unknown block",
				logging.Field{Key: "block", Value: name})
			err = p.skipBlock()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := p.applyTranslate(); err != nil {
		return nil, err
	}
	return p.doc, nil
}

func (p *parser) parseTaxaBlock() error {
	if err := p.s.skipToSemicolon(); err != nil {
		return err
	}
	for {
		tok, err := p.s.nextUpper()
		if err != nil {
			return err
		}
		switch tok {
		case "", "END", "ENDBLOCK":
			return p.s.skipToSemicolon()
		case "DIMENSIONS":
			if err := p.parseDimensions(); err != nil {
				return err
			}
		case "TAXLABELS":
			if err := p.parseTaxLabels(); err != nil {
				return err
			}
		}
	}
}

func (p *parser) parseDimensions() error {
	for {
		tok, err := p.s.nextUpper()
		if err != nil {
			return err
		}
		switch tok {
		case ";", "":
			return nil
		case "NTAX":
			value, err := p.expectAssignedValue("NTAX")
			if err != nil {
				return err
			}
			n := 0
			if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
				return p.s.errorf("NTAX value %q is not numeric", value)
			}
			p.ntax = n
		}
	}
}

func (p *parser) expectAssignedValue(keyword string) (string, error) {
	eq, err := p.s.next()
	if err != nil {
		return "", err
	}
	if eq != "=" {
		return "", p.s.errorf("expected '=' after %s, got %q", keyword, eq)
	}
	return p.s.next()
}

func (p *parser) parseTaxLabels() error {
	container := p.ensureOTUs()
	count := 0
	for {
		tok, err := p.s.next()
		if err != nil {
			return err
		}
		if tok == "" {
			return p.s.errorf("unterminated TAXLABELS statement")
		}
		if tok == ";" {
			break
		}
		otu := container.CreateOTU()
		otu.SetLabel(tok)
		count++
	}
	if p.ntax > 0 && count != p.ntax {
		p.logger.Warn("TAXLABELS count disagrees with NTAX",
			logging.Field{Key: "ntax", Value: p.ntax},
			logging.Field{Key: "labels", Value: count})
	}
	return nil
}

func (p *parser) parseTreesBlock() error {
	if err := p.s.skipToSemicolon(); err != nil {
		return err
	}
	for {
		tok, err := p.s.nextUpper()
		if err != nil {
			return err
		}
		switch tok {
		case "", "END", "ENDBLOCK":
			return p.s.skipToSemicolon()
		case "TRANSLATE":
			if err := p.parseTranslate(); err != nil {
				return err
			}
		case "TREE":
			if err := p.parseTree(); err != nil {
				return err
			}
		}
	}
}

func (p *parser) parseTranslate() error {
	for {
		token, err := p.s.next()
		if err != nil {
			return err
		}
		if token == ";" || token == "" {
			return nil
		}
		label, err := p.s.next()
		if err != nil {
			return err
		}
		if label == "" || label == ";" || label == "," {
			return p.s.errorf("TRANSLATE entry for %q has no label", token)
		}
		p.translate[token] = label
		sep, err := p.s.next()
		if err != nil {
			return err
		}
		switch sep {
		case ";":
			return nil
		case ",":
		default:
			return p.s.errorf("expected ',' in TRANSLATE after %q = %q, got %q",
				token, label, sep)
		}
	}
}

func (p *parser) parseTree() error {
	name, err := p.s.next()
	if err != nil {
		return err
	}
	eq, err := p.s.next()
	if err != nil {
		return err
	}
	if eq != "=" {
		return p.s.errorf("expected '=' in definition of tree %q, got %q", name, eq)
	}
	statement, err := p.s.rawStatement()
	if err != nil {
		return err
	}
	block, err := p.ensureTreeBlock()
	if err != nil {
		return err
	}
	trees, err := newick.ReadString(block, statement+";")
	if err != nil {
		return fmt.Errorf("tree %q: %w", name, err)
	}
	for _, t := range trees {
		t.SetLabel(name)
	}
	return nil
}

// skipBlock consumes tokens until the block's END, then its terminating
// ';'. Matrix rows and other statement contents tokenize harmlessly.
func (p *parser) skipBlock() error {
	for {
		tok, err := p.s.nextUpper()
		if err != nil {
			return err
		}
		switch tok {
		case "", "END", "ENDBLOCK":
			return p.s.skipToSemicolon()
		}
	}
}

func (p *parser) ensureOTUs() *model.OTUs {
	if p.otus == nil {
		p.otus = p.doc.CreateOTUs()
	}
	return p.otus
}

func (p *parser) ensureTreeBlock() (*model.TreeBlock, error) {
	if p.block == nil {
		block, err := p.doc.CreateTreeBlock(p.ensureOTUs())
		if err != nil {
			return nil, err
		}
		p.block = block
	}
	return p.block, nil
}

// applyTranslate rewrites taxa created from TRANSLATE tokens to their
// declared labels. Leaf nodes are rebound to the taxon carrying the real
// label (reusing one declared by TAXLABELS when present) and the token
// taxon is removed.
func (p *parser) applyTranslate() error {
	if p.otus == nil || len(p.translate) == 0 {
		return nil
	}
	for _, otu := range p.otus.AllOTUs() {
		label, ok := p.translate[otu.Label()]
		if !ok {
			continue
		}
		target := p.findOrCreateOTU(label)
		if target == otu {
			continue
		}
		if p.block != nil {
			for _, g := range p.block.Graphs() {
				for _, n := range g.Nodes() {
					if n.OTU() == otu {
						if err := n.SetOTU(target); err != nil {
							return err
						}
					}
				}
			}
		}
		p.otus.RemoveOTU(otu)
	}
	return nil
}

func (p *parser) findOrCreateOTU(label string) *model.OTU {
	for _, otu := range p.otus.AllOTUs() {
		if otu.Label() == label {
			return otu
		}
	}
	otu := p.otus.CreateOTU()
	otu.SetLabel(label)
	return otu
}
