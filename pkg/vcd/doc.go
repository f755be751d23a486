// Package vcd provides a streaming parser for Value Change Dump (VCD)
// files, the plain-text waveform-trace format produced by digital-logic
// simulators.
//
// The parser performs a single linear pass over the input: bytes are
// tokenized on whitespace boundaries, each token run is decoded into one
// typed Command, and commands are handed to the caller one at a time. The
// parser never buffers the waveform; consumers that need random access must
// build their own index on top of the command stream.
//
// # Overview
//
// The package provides:
//   - Parser: wraps any io.Reader and yields Commands lazily via Next
//   - ParseHeader: consumes the declaration section up to $enddefinitions
//     and returns the Header (date, version, timescale, scope tree)
//   - Command: a closed set of types covering every unit of the format,
//     from $scope declarations to scalar/vector/real/string value changes
//   - Value: the four-state logic value (0, 1, x, z)
//
// # Usage
//
// Typical use parses the header once and then drains the body:
//
//	f, err := os.Open("trace.vcd")
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//
//	p := vcd.NewParser(f)
//	header, err := p.ParseHeader()
//	if err != nil {
//		return err
//	}
//
//	for {
//		cmd, err := p.Next()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		switch c := cmd.(type) {
//		case vcd.Timestamp:
//			fmt.Printf("#%d\n", c.Time)
//		case vcd.ChangeScalar:
//			fmt.Printf("%s = %s\n", c.Code, c.Value)
//		}
//	}
//
// # Error Handling
//
// Parsing is fail-fast: the first malformed token produces an error and the
// stream position is undefined afterwards, so callers must stop iterating.
// All parse failures wrap one of the package's sentinel errors
// (ErrTokenTooLong, ErrInvalidKeyword, ...) and can be classified with
// errors.Is. I/O errors from the underlying reader are propagated as-is.
//
// # Limitations
//
//   - A Parser must not be shared across goroutines; parse independent
//     files with independent Parser instances instead
//   - No writer: this package only reads VCD
//   - Malformed input is never recovered from or skipped
package vcd
