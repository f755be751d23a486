package vcd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Fixed parse buffer sizes. Tokens are collected into stack buffers so a
// runaway token fails with ErrTokenTooLong instead of growing without
// bound.
const (
	maxKeywordLen = 16 // longest command keyword is "enddefinitions"
	maxTokenLen   = 32 // numbers, identifier codes, vector values
	maxShortLen   = 8  // $end and timescale tokens
)

// DefaultMaxScopeDepth bounds $scope nesting unless the caller overrides
// Parser.MaxScopeDepth.
const DefaultMaxScopeDepth = 64

// Parser reads VCD commands from a byte stream one at a time. It is not
// safe for concurrent use; parse independent files with independent
// Parser instances.
type Parser struct {
	// MaxScopeDepth limits $scope nesting during ParseHeader. Deeper
	// input fails with ErrScopeDepthExceeded.
	MaxScopeDepth int

	r *bufio.Reader

	// Open simulation command block, if any. Set by $dumpall/$dumpoff/
	// $dumpon/$dumpvars, consumed by the matching $end.
	simCommand SimulationCommand
	simOpen    bool
}

// NewParser creates a parser over r. The reader is consumed strictly
// forward; the parser never seeks or pushes bytes back.
func NewParser(r io.Reader) *Parser {
	return &Parser{
		MaxScopeDepth: DefaultMaxScopeDepth,
		r:             bufio.NewReader(r),
	}
}

// Next returns the next command in the stream. It skips whitespace,
// dispatches on the first byte of the command and decodes exactly one
// command. At the end of the stream it returns io.EOF, unless a
// simulation command block is still open, which fails with
// ErrUnterminatedCommand. After any other error the stream position is
// undefined and iteration must stop.
func (p *Parser) Next() (Command, error) {
	for {
		b, err := p.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				if p.simOpen {
					return nil, fmt.Errorf("%w: $%s", ErrUnterminatedCommand, p.simCommand)
				}
				return nil, io.EOF
			}
			return nil, err
		}

		switch {
		case isSpace(b):
			continue
		case b == '$':
			return p.parseCommand()
		case b == '#':
			return p.parseTimestamp()
		case b == '0' || b == '1' || b == 'x' || b == 'X' || b == 'z' || b == 'Z':
			return p.parseScalar(b)
		case b == 'b' || b == 'B':
			return p.parseVector()
		case b == 'r' || b == 'R':
			return p.parseReal()
		case b == 's' || b == 'S':
			return p.parseString()
		default:
			return nil, fmt.Errorf("%w: unexpected character %q", ErrInvalidKeyword, b)
		}
	}
}

// ParseHeader consumes commands from the start of the stream up to and
// including $enddefinitions $end and assembles them into a Header. After
// it returns, the stream sits at the simulation body and Next yields
// timestamps and value changes.
func (p *Parser) ParseHeader() (*Header, error) {
	var header Header
	for {
		cmd, err := p.Next()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("%w in header", ErrUnexpectedEOF)
			}
			return nil, err
		}

		switch c := cmd.(type) {
		case Enddefinitions:
			return &header, nil
		case Comment:
			header.Comment = c.Text
		case Date:
			header.Date = c.Text
		case Version:
			header.Version = c.Text
		case Timescale:
			ts := c
			header.Timescale = &ts
		case ScopeDef:
			scope, err := p.parseScope(c.Type, c.Identifier, 0)
			if err != nil {
				return nil, err
			}
			header.Scope = *scope
		default:
			return nil, fmt.Errorf("%w in header: %T", ErrUnexpectedCommand, cmd)
		}
	}
}

// parseScope recursively collects the body of a just-declared scope until
// its matching $upscope, preserving declaration order.
func (p *Parser) parseScope(scopeType ScopeType, identifier string, depth int) (*Scope, error) {
	if depth >= p.MaxScopeDepth {
		return nil, fmt.Errorf("%w: %d levels", ErrScopeDepthExceeded, depth+1)
	}

	scope := &Scope{Type: scopeType, Identifier: identifier}
	for {
		cmd, err := p.Next()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("%w in $scope", ErrUnexpectedEOF)
			}
			return nil, err
		}

		switch c := cmd.(type) {
		case Upscope:
			return scope, nil
		case ScopeDef:
			child, err := p.parseScope(c.Type, c.Identifier, depth+1)
			if err != nil {
				return nil, err
			}
			scope.Children = append(scope.Children, child)
		case VarDef:
			scope.Children = append(scope.Children, &Var{
				Type:      c.Type,
				Size:      c.Size,
				Code:      c.Code,
				Reference: c.Reference,
			})
		default:
			return nil, fmt.Errorf("%w in $scope: %T", ErrUnexpectedCommand, cmd)
		}
	}
}

// parseCommand decodes one $-prefixed command. The $ has already been
// consumed.
func (p *Parser) parseCommand() (Command, error) {
	var buf [maxKeywordLen]byte
	keyword, err := p.readToken(buf[:])
	if err != nil {
		return nil, err
	}

	switch string(keyword) {
	case "comment":
		text, err := p.readStringCommand()
		if err != nil {
			return nil, err
		}
		return Comment{Text: text}, nil

	case "date":
		text, err := p.readStringCommand()
		if err != nil {
			return nil, err
		}
		return Date{Text: text}, nil

	case "version":
		text, err := p.readStringCommand()
		if err != nil {
			return nil, err
		}
		return Version{Text: text}, nil

	case "timescale":
		return p.parseTimescale()

	case "scope":
		var tbuf [maxTokenLen]byte
		tok, err := p.readToken(tbuf[:])
		if err != nil {
			return nil, err
		}
		scopeType, err := ParseScopeType(string(tok))
		if err != nil {
			return nil, err
		}
		identifier, err := p.readTokenString()
		if err != nil {
			return nil, err
		}
		if err := p.readCommandEnd(); err != nil {
			return nil, err
		}
		return ScopeDef{Type: scopeType, Identifier: identifier}, nil

	case "upscope":
		if err := p.readCommandEnd(); err != nil {
			return nil, err
		}
		return Upscope{}, nil

	case "var":
		var tbuf [maxTokenLen]byte
		tok, err := p.readToken(tbuf[:])
		if err != nil {
			return nil, err
		}
		varType, err := ParseVarType(string(tok))
		if err != nil {
			return nil, err
		}
		size, err := p.readUint(32)
		if err != nil {
			return nil, err
		}
		if size == 0 {
			return nil, fmt.Errorf("%w: variable size must be positive", ErrInvalidNumber)
		}
		code, err := p.readIDCode()
		if err != nil {
			return nil, err
		}
		reference, err := p.readTokenString()
		if err != nil {
			return nil, err
		}
		if err := p.readCommandEnd(); err != nil {
			return nil, err
		}
		return VarDef{Type: varType, Size: uint32(size), Code: code, Reference: reference}, nil

	case "enddefinitions":
		if err := p.readCommandEnd(); err != nil {
			return nil, err
		}
		return Enddefinitions{}, nil

	case "dumpall", "dumpoff", "dumpon", "dumpvars":
		// Simulation commands are not terminated inline; the matching
		// $end arrives after the interior value changes.
		kind, err := ParseSimulationCommand(string(keyword))
		if err != nil {
			return nil, err
		}
		p.simCommand = kind
		p.simOpen = true
		return Begin{Kind: kind}, nil

	case "end":
		if !p.simOpen {
			return nil, ErrUnmatchedEnd
		}
		p.simOpen = false
		return End{Kind: p.simCommand}, nil

	default:
		return nil, fmt.Errorf("%w: $%s", ErrInvalidKeyword, keyword)
	}
}

// parseTimescale decodes the argument of $timescale. Both the compact
// form "100ns" and the spaced form "100 ns" are accepted.
func (p *Parser) parseTimescale() (Command, error) {
	var buf [maxShortLen]byte
	tok, err := p.readToken(buf[:])
	if err != nil {
		return nil, err
	}

	numStr, unitStr := string(tok), ""
	if i := bytes.IndexFunc(tok, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		numStr, unitStr = string(tok[:i]), string(tok[i:])
	} else {
		var ubuf [maxShortLen]byte
		utok, err := p.readToken(ubuf[:])
		if err != nil {
			return nil, err
		}
		unitStr = string(utok)
	}

	magnitude, err := strconv.ParseUint(numStr, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: timescale magnitude %q", ErrInvalidNumber, numStr)
	}
	unit, err := ParseTimescaleUnit(unitStr)
	if err != nil {
		return nil, err
	}
	if err := p.readCommandEnd(); err != nil {
		return nil, err
	}
	return Timescale{Magnitude: uint32(magnitude), Unit: unit}, nil
}

// parseTimestamp decodes the integer following a #.
func (p *Parser) parseTimestamp() (Command, error) {
	t, err := p.readUint(64)
	if err != nil {
		return nil, err
	}
	return Timestamp{Time: t}, nil
}

// parseScalar decodes a scalar change. Uniquely among the change kinds the
// value byte precedes the identifier code, and has already been consumed.
func (p *Parser) parseScalar(initial byte) (Command, error) {
	value, err := ParseValue(initial)
	if err != nil {
		return nil, err
	}
	code, err := p.readIDCode()
	if err != nil {
		return nil, err
	}
	return ChangeScalar{Code: code, Value: value}, nil
}

// parseVector decodes a b-prefixed vector change: every byte of the value
// token is one logic value, most significant bit first.
func (p *Parser) parseVector() (Command, error) {
	var buf [maxTokenLen]byte
	tok, err := p.readToken(buf[:])
	if err != nil {
		return nil, err
	}
	values := make([]Value, len(tok))
	for i, b := range tok {
		if values[i], err = ParseValue(b); err != nil {
			return nil, err
		}
	}
	code, err := p.readIDCode()
	if err != nil {
		return nil, err
	}
	return ChangeVector{Code: code, Values: values}, nil
}

// parseReal decodes an r-prefixed real change.
func (p *Parser) parseReal() (Command, error) {
	var buf [maxTokenLen]byte
	tok, err := p.readDataToken(buf[:])
	if err != nil {
		return nil, err
	}
	value, err := strconv.ParseFloat(string(tok), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: real value %q", ErrInvalidNumber, tok)
	}
	code, err := p.readIDCode()
	if err != nil {
		return nil, err
	}
	return ChangeReal{Code: code, Value: value}, nil
}

// parseString decodes an s-prefixed string change.
func (p *Parser) parseString() (Command, error) {
	value, err := p.readTokenString()
	if err != nil {
		return nil, err
	}
	code, err := p.readIDCode()
	if err != nil {
		return nil, err
	}
	return ChangeString{Code: code, Value: value}, nil
}

// readToken skips leading whitespace and collects the following
// non-whitespace bytes into buf, stopping at the next whitespace byte.
// A token longer than buf fails with ErrTokenTooLong; end of input before
// the token is complete fails with ErrUnexpectedEOF.
func (p *Parser) readToken(buf []byte) ([]byte, error) {
	n := 0
	for {
		b, err := p.readByte()
		if err != nil {
			return nil, err
		}
		if isSpace(b) {
			if n > 0 {
				return buf[:n], nil
			}
			continue
		}
		if n == len(buf) {
			return nil, ErrTokenTooLong
		}
		buf[n] = b
		n++
	}
}

// readDataToken reads a bounded token that must be data: an $end here
// means a terminator arrived where a value was required.
func (p *Parser) readDataToken(buf []byte) ([]byte, error) {
	tok, err := p.readToken(buf)
	if err != nil {
		return nil, err
	}
	if string(tok) == "$end" {
		return nil, ErrUnexpectedEnd
	}
	return tok, nil
}

// readTokenString reads one whitespace-delimited token of unbounded
// length, validating it as UTF-8.
func (p *Parser) readTokenString() (string, error) {
	var tok []byte
	for {
		b, err := p.readByte()
		if err != nil {
			return "", err
		}
		if isSpace(b) {
			if len(tok) > 0 {
				break
			}
			continue
		}
		tok = append(tok, b)
	}
	if !utf8.Valid(tok) {
		return "", ErrInvalidText
	}
	return string(tok), nil
}

// readStringCommand reads the free-form text of $comment, $date and
// $version: raw bytes up to the literal $end terminator, which is
// stripped along with surrounding whitespace. Unlike tokens, the text may
// span multiple words and lines.
func (p *Parser) readStringCommand() (string, error) {
	term := []byte("$end")
	var raw []byte
	for !bytes.HasSuffix(raw, term) {
		b, err := p.readByte()
		if err != nil {
			return "", err
		}
		raw = append(raw, b)
	}
	raw = raw[:len(raw)-4]
	if !utf8.Valid(raw) {
		return "", ErrInvalidText
	}
	return strings.TrimSpace(string(raw)), nil
}

// readCommandEnd consumes the $end token that terminates most commands.
func (p *Parser) readCommandEnd() error {
	var buf [maxShortLen]byte
	tok, err := p.readToken(buf[:])
	if err != nil {
		return err
	}
	if string(tok) != "$end" {
		return fmt.Errorf("%w, got %q", ErrExpectedEnd, tok)
	}
	return nil
}

// readUint reads a bounded token and parses it as an unsigned integer of
// the given bit width.
func (p *Parser) readUint(bits int) (uint64, error) {
	var buf [maxTokenLen]byte
	tok, err := p.readDataToken(buf[:])
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(string(tok), 10, bits)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, tok)
	}
	return v, nil
}

// readIDCode reads a bounded token as an identifier code.
func (p *Parser) readIDCode() (IDCode, error) {
	var buf [maxTokenLen]byte
	tok, err := p.readDataToken(buf[:])
	if err != nil {
		return "", err
	}
	return IDCode(tok), nil
}

// readByte returns the next input byte. End of input inside a command is
// always an error; only Next treats it as end of stream. I/O errors other
// than io.EOF pass through verbatim.
func (p *Parser) readByte() (byte, error) {
	b, err := p.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, ErrUnexpectedEOF
		}
		return 0, err
	}
	return b, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
