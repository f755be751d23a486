package vcd

import "errors"

// Sentinel errors for every class of parse failure. Errors returned by the
// parser wrap one of these and can be classified with errors.Is. I/O errors
// from the underlying reader are returned verbatim and wrap none of them.
var (
	// ErrUnexpectedEOF reports that the input ended where more was required
	// (inside the header, inside a $scope body, or before a token).
	ErrUnexpectedEOF = errors.New("vcd: unexpected end of input")

	// ErrTokenTooLong reports a token exceeding its fixed parse buffer.
	ErrTokenTooLong = errors.New("vcd: token too long")

	// ErrInvalidText reports a text field that is not well-formed UTF-8.
	ErrInvalidText = errors.New("vcd: invalid UTF-8 text")

	// ErrInvalidKeyword reports an unrecognized $-command keyword or an
	// unrecognized dispatch character at the start of a command.
	ErrInvalidKeyword = errors.New("vcd: invalid keyword")

	// ErrInvalidScopeType reports an unrecognized $scope type token.
	ErrInvalidScopeType = errors.New("vcd: invalid scope type")

	// ErrInvalidVarType reports an unrecognized $var type token.
	ErrInvalidVarType = errors.New("vcd: invalid variable type")

	// ErrInvalidTimescaleUnit reports an unrecognized $timescale unit.
	ErrInvalidTimescaleUnit = errors.New("vcd: invalid timescale unit")

	// ErrInvalidNumber reports a token that failed to parse as the
	// required integer or float.
	ErrInvalidNumber = errors.New("vcd: invalid number")

	// ErrInvalidValue reports a value byte outside 0, 1, x, X, z, Z.
	ErrInvalidValue = errors.New("vcd: invalid value")

	// ErrUnmatchedEnd reports an $end with no open simulation command.
	ErrUnmatchedEnd = errors.New("vcd: unmatched $end")

	// ErrUnterminatedCommand reports end of input while a simulation
	// command block ($dumpvars, ...) is still open.
	ErrUnterminatedCommand = errors.New("vcd: unterminated simulation command")

	// ErrUnexpectedEnd reports an $end token where a data token (number,
	// identifier code) was required.
	ErrUnexpectedEnd = errors.New("vcd: unexpected $end")

	// ErrExpectedEnd reports a missing $end terminator after a command.
	ErrExpectedEnd = errors.New("vcd: expected $end")

	// ErrUnexpectedCommand reports a command that is not allowed where it
	// appeared (inside the header or inside a $scope body).
	ErrUnexpectedCommand = errors.New("vcd: unexpected command")

	// ErrScopeDepthExceeded reports $scope nesting past Parser.MaxScopeDepth.
	ErrScopeDepthExceeded = errors.New("vcd: scope nesting too deep")
)
