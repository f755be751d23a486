package vcd

import (
	"errors"
	"io"
	"os"
	"reflect"
	"strings"
	"testing"
)

// drain iterates the parser to exhaustion, failing the test on any error.
func drain(t *testing.T, p *Parser) []Command {
	t.Helper()
	var cmds []Command
	for {
		cmd, err := p.Next()
		if err == io.EOF {
			return cmds
		}
		if err != nil {
			t.Fatalf("Next failed after %d commands: %v", len(cmds), err)
		}
		cmds = append(cmds, cmd)
	}
}

func TestWikipediaSample(t *testing.T) {
	data, err := os.ReadFile("testdata/wikipedia.vcd")
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}

	p := NewParser(strings.NewReader(string(data)))
	header, err := p.ParseHeader()
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}

	if header.Comment != "Any comment text." {
		t.Errorf("Comment = %q, want %q", header.Comment, "Any comment text.")
	}
	if header.Date != "Date text." {
		t.Errorf("Date = %q, want %q", header.Date, "Date text.")
	}
	if header.Version != "VCD generator text." {
		t.Errorf("Version = %q, want %q", header.Version, "VCD generator text.")
	}
	if header.Timescale == nil {
		t.Fatal("Timescale is nil")
	}
	if header.Timescale.Magnitude != 100 || header.Timescale.Unit != UnitNS {
		t.Errorf("Timescale = %v, want 100ns", header.Timescale)
	}

	if header.Scope.Type != ScopeModule || header.Scope.Identifier != "logic" {
		t.Errorf("Root scope = %s %q, want module \"logic\"", header.Scope.Type, header.Scope.Identifier)
	}
	if len(header.Scope.Children) != 7 {
		t.Fatalf("Expected 7 children, got %d", len(header.Scope.Children))
	}
	v, ok := header.Scope.Children[0].(*Var)
	if !ok {
		t.Fatalf("Expected *Var, found %T", header.Scope.Children[0])
	}
	if v.Type != VarWire || v.Size != 8 || v.Code != "#" || v.Reference != "data" {
		t.Errorf("First var = %+v, want wire 8 # data", v)
	}

	expected := []Command{
		Begin{Kind: Dumpvars},
		ChangeVector{Code: "#", Values: []Value{ValueX, ValueX, ValueX, ValueX, ValueX, ValueX, ValueX, ValueX}},
		ChangeScalar{Code: "$", Value: ValueX},
		ChangeScalar{Code: "%", Value: Value0},
		ChangeScalar{Code: "&", Value: ValueX},
		ChangeScalar{Code: "'", Value: ValueX},
		ChangeScalar{Code: "(", Value: Value1},
		ChangeScalar{Code: ")", Value: Value0},
		End{Kind: Dumpvars},
		Timestamp{Time: 0},
		ChangeVector{Code: "#", Values: []Value{Value1, Value0, Value0, Value0, Value0, Value0, Value0, Value1}},
		ChangeScalar{Code: "$", Value: Value0},
		ChangeScalar{Code: "%", Value: Value1},
		Timestamp{Time: 2211},
		ChangeScalar{Code: "'", Value: Value0},
		Timestamp{Time: 2296},
		// A width-1 vector stays a one-element vector, not a scalar.
		ChangeVector{Code: "#", Values: []Value{Value0}},
		ChangeScalar{Code: "$", Value: Value1},
		Timestamp{Time: 2302},
		ChangeScalar{Code: "$", Value: Value0},
		Timestamp{Time: 2303},
	}

	got := drain(t, p)
	if len(got) != len(expected) {
		t.Fatalf("Expected %d commands, got %d", len(expected), len(got))
	}
	for i := range expected {
		if !reflect.DeepEqual(got[i], expected[i]) {
			t.Errorf("Command %d = %#v, want %#v", i, got[i], expected[i])
		}
	}
}

func TestTimescaleForms(t *testing.T) {
	for _, input := range []string{
		"$timescale 100 ns $end\n",
		"$timescale 100ns $end\n",
	} {
		p := NewParser(strings.NewReader(input))
		cmd, err := p.Next()
		if err != nil {
			t.Fatalf("Next(%q) failed: %v", input, err)
		}
		ts, ok := cmd.(Timescale)
		if !ok {
			t.Fatalf("Expected Timescale, got %T", cmd)
		}
		if ts.Magnitude != 100 || ts.Unit != UnitNS {
			t.Errorf("Parsed %q as %v, want 100ns", input, ts)
		}
	}
}

func TestTimescaleErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"$timescale abc $end", ErrInvalidNumber},
		{"$timescale 10 eons $end", ErrInvalidTimescaleUnit},
		{"$timescale 10 ns", ErrUnexpectedEOF},
		{"$timescale 10 ns nope\n", ErrExpectedEnd},
	}
	for _, tt := range tests {
		p := NewParser(strings.NewReader(tt.input))
		if _, err := p.Next(); !errors.Is(err, tt.want) {
			t.Errorf("Next(%q) error = %v, want %v", tt.input, err, tt.want)
		}
	}
}

func TestScalarChange(t *testing.T) {
	p := NewParser(strings.NewReader("0%\n"))
	cmd, err := p.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	want := ChangeScalar{Code: "%", Value: Value0}
	if cmd != want {
		t.Errorf("Command = %#v, want %#v", cmd, want)
	}
}

func TestVectorChange(t *testing.T) {
	p := NewParser(strings.NewReader("b10000001 #\n"))
	cmd, err := p.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	want := ChangeVector{
		Code:   "#",
		Values: []Value{Value1, Value0, Value0, Value0, Value0, Value0, Value0, Value1},
	}
	if !reflect.DeepEqual(cmd, want) {
		t.Errorf("Command = %#v, want %#v", cmd, want)
	}
}

func TestRealChange(t *testing.T) {
	p := NewParser(strings.NewReader("r1.25 !\n"))
	cmd, err := p.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	want := ChangeReal{Code: "!", Value: 1.25}
	if cmd != want {
		t.Errorf("Command = %#v, want %#v", cmd, want)
	}
}

func TestStringChange(t *testing.T) {
	p := NewParser(strings.NewReader("sRESET !\n"))
	cmd, err := p.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	want := ChangeString{Code: "!", Value: "RESET"}
	if cmd != want {
		t.Errorf("Command = %#v, want %#v", cmd, want)
	}
}

func TestDumpBlockPairing(t *testing.T) {
	p := NewParser(strings.NewReader("$dumpvars\n0%\n$end\n"))
	cmds := drain(t, p)
	want := []Command{
		Begin{Kind: Dumpvars},
		ChangeScalar{Code: "%", Value: Value0},
		End{Kind: Dumpvars},
	}
	if !reflect.DeepEqual(cmds, want) {
		t.Errorf("Commands = %#v, want %#v", cmds, want)
	}
}

func TestUnmatchedEnd(t *testing.T) {
	p := NewParser(strings.NewReader("$end\n"))
	if _, err := p.Next(); !errors.Is(err, ErrUnmatchedEnd) {
		t.Errorf("Next error = %v, want %v", err, ErrUnmatchedEnd)
	}
}

func TestUnterminatedSimulationCommand(t *testing.T) {
	p := NewParser(strings.NewReader("$dumpoff\n0%\n"))
	if _, err := p.Next(); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if _, err := p.Next(); err != nil {
		t.Fatalf("Change failed: %v", err)
	}
	if _, err := p.Next(); !errors.Is(err, ErrUnterminatedCommand) {
		t.Errorf("Next error at EOF = %v, want %v", err, ErrUnterminatedCommand)
	}
}

func TestTokenTooLong(t *testing.T) {
	// 40 digits exceed the fixed 32-byte token buffer.
	p := NewParser(strings.NewReader("#1111111111111111111111111111111111111111\n"))
	if _, err := p.Next(); !errors.Is(err, ErrTokenTooLong) {
		t.Errorf("Next error = %v, want %v", err, ErrTokenTooLong)
	}
}

func TestInvalidValueByte(t *testing.T) {
	// 'a' is not a dispatch byte: typed error, no panic.
	p := NewParser(strings.NewReader("a%\n"))
	if _, err := p.Next(); !errors.Is(err, ErrInvalidKeyword) {
		t.Errorf("Next error = %v, want %v", err, ErrInvalidKeyword)
	}

	// A bad bit inside a vector value fails value decoding.
	p = NewParser(strings.NewReader("b01a0 #\n"))
	if _, err := p.Next(); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Next error = %v, want %v", err, ErrInvalidValue)
	}
}

func TestInvalidText(t *testing.T) {
	// Invalid UTF-8 in an owned token (string change value).
	p := NewParser(strings.NewReader("s\xff\xfe !\n"))
	if _, err := p.Next(); !errors.Is(err, ErrInvalidText) {
		t.Errorf("Next error = %v, want %v", err, ErrInvalidText)
	}

	// Invalid UTF-8 in a $end-terminated text field.
	p = NewParser(strings.NewReader("$comment \xff\xfe $end\n"))
	if _, err := p.Next(); !errors.Is(err, ErrInvalidText) {
		t.Errorf("Next error = %v, want %v", err, ErrInvalidText)
	}

	// Invalid UTF-8 in a scope identifier.
	p = NewParser(strings.NewReader("$scope module \xff $end\n"))
	if _, err := p.Next(); !errors.Is(err, ErrInvalidText) {
		t.Errorf("Next error = %v, want %v", err, ErrInvalidText)
	}
}

func TestInvalidKeyword(t *testing.T) {
	p := NewParser(strings.NewReader("$frobnicate $end\n"))
	if _, err := p.Next(); !errors.Is(err, ErrInvalidKeyword) {
		t.Errorf("Next error = %v, want %v", err, ErrInvalidKeyword)
	}
}

func TestEmptyInput(t *testing.T) {
	p := NewParser(strings.NewReader("  \n\t \r\n"))
	if _, err := p.Next(); err != io.EOF {
		t.Errorf("Next error = %v, want io.EOF", err)
	}
}

func TestNestedScopeOrdering(t *testing.T) {
	input := `
$scope module top $end
$var wire 1 ! clk $end
$scope module sub $end
$var reg 4 " counter $end
$upscope $end
$var wire 1 # rst $end
$upscope $end
$enddefinitions $end
`
	p := NewParser(strings.NewReader(input))
	header, err := p.ParseHeader()
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}

	root := header.Scope
	if root.Identifier != "top" || len(root.Children) != 3 {
		t.Fatalf("Root = %q with %d children, want top with 3", root.Identifier, len(root.Children))
	}

	// Declaration order: clk, sub, rst.
	if v, ok := root.Children[0].(*Var); !ok || v.Reference != "clk" {
		t.Errorf("Children[0] = %#v, want var clk", root.Children[0])
	}
	sub, ok := root.Children[1].(*Scope)
	if !ok || sub.Identifier != "sub" {
		t.Fatalf("Children[1] = %#v, want scope sub", root.Children[1])
	}
	if v, ok := root.Children[2].(*Var); !ok || v.Reference != "rst" {
		t.Errorf("Children[2] = %#v, want var rst", root.Children[2])
	}

	if len(sub.Children) != 1 {
		t.Fatalf("sub has %d children, want 1", len(sub.Children))
	}
	counter, ok := sub.Children[0].(*Var)
	if !ok {
		t.Fatalf("sub.Children[0] = %#v, want *Var", sub.Children[0])
	}
	if counter.Type != VarReg || counter.Size != 4 || counter.Code != `"` {
		t.Errorf("counter = %+v, want reg 4 \"", counter)
	}
}

func TestUnexpectedCommandInScope(t *testing.T) {
	input := "$scope module top $end\n#0\n$upscope $end\n$enddefinitions $end\n"
	p := NewParser(strings.NewReader(input))
	if _, err := p.ParseHeader(); !errors.Is(err, ErrUnexpectedCommand) {
		t.Errorf("ParseHeader error = %v, want %v", err, ErrUnexpectedCommand)
	}
}

func TestUnexpectedCommandInHeader(t *testing.T) {
	p := NewParser(strings.NewReader("#0\n$enddefinitions $end\n"))
	if _, err := p.ParseHeader(); !errors.Is(err, ErrUnexpectedCommand) {
		t.Errorf("ParseHeader error = %v, want %v", err, ErrUnexpectedCommand)
	}
}

func TestHeaderEOF(t *testing.T) {
	p := NewParser(strings.NewReader("$date today $end\n"))
	if _, err := p.ParseHeader(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("ParseHeader error = %v, want %v", err, ErrUnexpectedEOF)
	}
}

func TestScopeEOF(t *testing.T) {
	p := NewParser(strings.NewReader("$scope module top $end\n$var wire 1 ! clk $end\n"))
	if _, err := p.ParseHeader(); !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("ParseHeader error = %v, want %v", err, ErrUnexpectedEOF)
	}
}

func TestScopeDepthLimit(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 6; i++ {
		sb.WriteString("$scope module s $end\n")
	}
	for i := 0; i < 6; i++ {
		sb.WriteString("$upscope $end\n")
	}
	sb.WriteString("$enddefinitions $end\n")

	p := NewParser(strings.NewReader(sb.String()))
	p.MaxScopeDepth = 4
	if _, err := p.ParseHeader(); !errors.Is(err, ErrScopeDepthExceeded) {
		t.Errorf("ParseHeader error = %v, want %v", err, ErrScopeDepthExceeded)
	}
}

func TestVarErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"$var flux 1 ! clk $end", ErrInvalidVarType},
		{"$var wire zero ! clk $end", ErrInvalidNumber},
		{"$var wire 0 ! clk $end", ErrInvalidNumber},
		{"$var wire 1 $end\n", ErrUnexpectedEnd},
	}
	for _, tt := range tests {
		p := NewParser(strings.NewReader(tt.input))
		if _, err := p.Next(); !errors.Is(err, tt.want) {
			t.Errorf("Next(%q) error = %v, want %v", tt.input, err, tt.want)
		}
	}
}

func TestMultiWordTextFields(t *testing.T) {
	input := "$comment generated by\n  sim v2.1 $end\n$enddefinitions $end\n"
	p := NewParser(strings.NewReader(input))
	header, err := p.ParseHeader()
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	want := "generated by\n  sim v2.1"
	if header.Comment != want {
		t.Errorf("Comment = %q, want %q", header.Comment, want)
	}
}
