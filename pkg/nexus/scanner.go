package nexus

import (
	"fmt"
	"strings"
)

// NEXUS token boundaries. Bracketed comments may nest and can appear
// anywhere between tokens.
const (
	punctuation = "()[]{}/\\,;:=*'\"`+-<>"
	whitespace  = " \x00\t\n\r"
)

// scanner produces NEXUS tokens: quoted labels (with doubled-quote
// escapes), single punctuation characters, and bare words.
type scanner struct {
	input string
	pos   int
	line  int
}

func newScanner(input string) *scanner {
	return &scanner{input: input, line: 1}
}

func (s *scanner) errorf(format string, v ...any) error {
	return fmt.Errorf("line %d: %s: %w", s.line, fmt.Sprintf(format, v...), ErrSyntax)
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.input[s.pos]
}

func (s *scanner) advance() byte {
	c := s.input[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
	}
	return c
}

// skipComment consumes a bracketed comment, including nested brackets.
// Assumes the cursor is on the opening '['.
func (s *scanner) skipComment() {
	s.advance()
	for !s.eof() {
		switch s.advance() {
		case '[':
			s.pos--
			s.skipComment()
		case ']':
			return
		}
	}
}

func (s *scanner) skipToSignificant() {
	for !s.eof() {
		switch {
		case strings.IndexByte(whitespace, s.peek()) >= 0:
			s.advance()
		case s.peek() == '[':
			s.skipComment()
		default:
			return
		}
	}
}

// next returns the next token, or the empty string at end of input.
func (s *scanner) next() (string, error) {
	s.skipToSignificant()
	if s.eof() {
		return "", nil
	}
	if s.peek() == '\'' {
		return s.quotedToken()
	}
	if strings.IndexByte(punctuation, s.peek()) >= 0 {
		return string(s.advance()), nil
	}
	var sb strings.Builder
	for !s.eof() &&
		strings.IndexByte(whitespace, s.peek()) < 0 &&
		strings.IndexByte(punctuation, s.peek()) < 0 {
		sb.WriteByte(s.advance())
	}
	return sb.String(), nil
}

// nextUpper returns the next token upper-cased, for keyword matching.
func (s *scanner) nextUpper() (string, error) {
	tok, err := s.next()
	if err != nil {
		return "", err
	}
	return strings.ToUpper(tok), nil
}

func (s *scanner) quotedToken() (string, error) {
	s.advance()
	var sb strings.Builder
	for {
		if s.eof() {
			return "", s.errorf("unterminated quoted token")
		}
		c := s.advance()
		if c != '\'' {
			sb.WriteByte(c)
			continue
		}
		if s.peek() == '\'' {
			sb.WriteByte('\'')
			s.advance()
			continue
		}
		return sb.String(), nil
	}
}

// skipToSemicolon consumes tokens up to and including the next ';'.
func (s *scanner) skipToSemicolon() error {
	for {
		tok, err := s.next()
		if err != nil {
			return err
		}
		if tok == ";" || tok == "" {
			return nil
		}
	}
}

// rawStatement captures the raw text up to the next statement-terminating
// ';', preserving quoted labels verbatim and dropping bracketed comments
// (rooting comments like [&R] among them). The ';' is consumed but not
// returned.
func (s *scanner) rawStatement() (string, error) {
	var sb strings.Builder
	for !s.eof() {
		switch s.peek() {
		case '[':
			s.skipComment()
		case ';':
			s.advance()
			return sb.String(), nil
		case '\'':
			sb.WriteByte(s.advance())
			for !s.eof() {
				c := s.advance()
				sb.WriteByte(c)
				if c == '\'' {
					if s.peek() == '\'' {
						sb.WriteByte(s.advance())
						continue
					}
					break
				}
			}
		default:
			sb.WriteByte(s.advance())
		}
	}
	return "", s.errorf("unterminated statement")
}
