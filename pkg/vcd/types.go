package vcd

import "fmt"

// Value represents one four-state logic value as used by scalar and vector
// change records.
type Value uint8

const (
	Value0 Value = iota // logic low
	Value1              // logic high
	ValueX              // unknown
	ValueZ              // high impedance
)

var valueNames = map[Value]string{
	Value0: "0",
	Value1: "1",
	ValueX: "x",
	ValueZ: "z",
}

func (v Value) String() string {
	if name, ok := valueNames[v]; ok {
		return name
	}
	return fmt.Sprintf("Value(%d)", uint8(v))
}

// ParseValue decodes a single value byte. Valid bytes are 0, 1, x, X, z
// and Z; anything else fails with ErrInvalidValue.
func ParseValue(b byte) (Value, error) {
	switch b {
	case '0':
		return Value0, nil
	case '1':
		return Value1, nil
	case 'x', 'X':
		return ValueX, nil
	case 'z', 'Z':
		return ValueZ, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, b)
	}
}

// IDCode is the short identifier code that correlates a $var declaration
// with the value change records for that signal. It is an opaque key with
// no numeric meaning: two codes refer to the same signal exactly when they
// compare equal.
type IDCode string

// VarType is the declared type of a $var.
type VarType uint8

const (
	VarEvent VarType = iota
	VarInteger
	VarParameter
	VarReal
	VarReg
	VarSupply0
	VarSupply1
	VarTime
	VarTri
	VarTriAnd
	VarTriOr
	VarTriReg
	VarTri0
	VarTri1
	VarWAnd
	VarWire
	VarWOr
)

var varTypeNames = map[VarType]string{
	VarEvent:     "event",
	VarInteger:   "integer",
	VarParameter: "parameter",
	VarReal:      "real",
	VarReg:       "reg",
	VarSupply0:   "supply0",
	VarSupply1:   "supply1",
	VarTime:      "time",
	VarTri:       "tri",
	VarTriAnd:    "triand",
	VarTriOr:     "trior",
	VarTriReg:    "trireg",
	VarTri0:      "tri0",
	VarTri1:      "tri1",
	VarWAnd:      "wand",
	VarWire:      "wire",
	VarWOr:       "wor",
}

func (t VarType) String() string {
	if name, ok := varTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("VarType(%d)", uint8(t))
}

// ParseVarType decodes a $var type keyword, failing with ErrInvalidVarType
// on anything outside the closed VCD set.
func ParseVarType(s string) (VarType, error) {
	switch s {
	case "event":
		return VarEvent, nil
	case "integer":
		return VarInteger, nil
	case "parameter":
		return VarParameter, nil
	case "real":
		return VarReal, nil
	case "reg":
		return VarReg, nil
	case "supply0":
		return VarSupply0, nil
	case "supply1":
		return VarSupply1, nil
	case "time":
		return VarTime, nil
	case "tri":
		return VarTri, nil
	case "triand":
		return VarTriAnd, nil
	case "trior":
		return VarTriOr, nil
	case "trireg":
		return VarTriReg, nil
	case "tri0":
		return VarTri0, nil
	case "tri1":
		return VarTri1, nil
	case "wand":
		return VarWAnd, nil
	case "wire":
		return VarWire, nil
	case "wor":
		return VarWOr, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidVarType, s)
	}
}

// ScopeType is the declared kind of a $scope.
type ScopeType uint8

const (
	ScopeBegin ScopeType = iota
	ScopeFork
	ScopeFunction
	ScopeModule
	ScopeTask
)

var scopeTypeNames = map[ScopeType]string{
	ScopeBegin:    "begin",
	ScopeFork:     "fork",
	ScopeFunction: "function",
	ScopeModule:   "module",
	ScopeTask:     "task",
}

func (t ScopeType) String() string {
	if name, ok := scopeTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ScopeType(%d)", uint8(t))
}

// ParseScopeType decodes a $scope type keyword, failing with
// ErrInvalidScopeType on anything outside the closed VCD set.
func ParseScopeType(s string) (ScopeType, error) {
	switch s {
	case "begin":
		return ScopeBegin, nil
	case "fork":
		return ScopeFork, nil
	case "function":
		return ScopeFunction, nil
	case "module":
		return ScopeModule, nil
	case "task":
		return ScopeTask, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidScopeType, s)
	}
}

// TimescaleUnit is the unit of the $timescale declaration.
type TimescaleUnit uint8

const (
	UnitS TimescaleUnit = iota
	UnitMS
	UnitUS
	UnitNS
	UnitPS
	UnitFS
)

var timescaleUnitNames = map[TimescaleUnit]string{
	UnitS:  "s",
	UnitMS: "ms",
	UnitUS: "us",
	UnitNS: "ns",
	UnitPS: "ps",
	UnitFS: "fs",
}

func (u TimescaleUnit) String() string {
	if name, ok := timescaleUnitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("TimescaleUnit(%d)", uint8(u))
}

// Divisor returns how many of the unit make up one second
// (UnitMS.Divisor() == 1000, UnitFS.Divisor() == 1e15).
func (u TimescaleUnit) Divisor() uint64 {
	switch u {
	case UnitS:
		return 1
	case UnitMS:
		return 1_000
	case UnitUS:
		return 1_000_000
	case UnitNS:
		return 1_000_000_000
	case UnitPS:
		return 1_000_000_000_000
	default:
		return 1_000_000_000_000_000
	}
}

// ParseTimescaleUnit decodes a $timescale unit keyword, failing with
// ErrInvalidTimescaleUnit on anything outside s/ms/us/ns/ps/fs.
func ParseTimescaleUnit(s string) (TimescaleUnit, error) {
	switch s {
	case "s":
		return UnitS, nil
	case "ms":
		return UnitMS, nil
	case "us":
		return UnitUS, nil
	case "ns":
		return UnitNS, nil
	case "ps":
		return UnitPS, nil
	case "fs":
		return UnitFS, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimescaleUnit, s)
	}
}

// SimulationCommand identifies which bracketed simulation command block
// ($dumpall ... $end and friends) is open.
type SimulationCommand uint8

const (
	Dumpall SimulationCommand = iota
	Dumpoff
	Dumpon
	Dumpvars
)

var simulationCommandNames = map[SimulationCommand]string{
	Dumpall:  "dumpall",
	Dumpoff:  "dumpoff",
	Dumpon:   "dumpon",
	Dumpvars: "dumpvars",
}

func (c SimulationCommand) String() string {
	if name, ok := simulationCommandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("SimulationCommand(%d)", uint8(c))
}

// ParseSimulationCommand decodes a simulation command keyword (without the
// leading $), failing with ErrInvalidKeyword on anything else.
func ParseSimulationCommand(s string) (SimulationCommand, error) {
	switch s {
	case "dumpall":
		return Dumpall, nil
	case "dumpoff":
		return Dumpoff, nil
	case "dumpon":
		return Dumpon, nil
	case "dumpvars":
		return Dumpvars, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKeyword, s)
	}
}

// Var is one $var declaration: a signal with a type, a bit width, an
// identifier code and the name it was declared under.
type Var struct {
	Type      VarType
	Size      uint32 // bit width, always positive
	Code      IDCode
	Reference string
}

// ScopeItem is one entry in a scope body, in declaration order: either a
// nested *Scope or a *Var.
type ScopeItem interface {
	isScopeItem()
}

func (*Scope) isScopeItem() {}
func (*Var) isScopeItem()   {}

// Scope is a named level of the design hierarchy. Children preserve
// declaration order and are owned exclusively by their scope.
type Scope struct {
	Type       ScopeType
	Identifier string
	Children   []ScopeItem
}

// Timescale is the simulation time resolution declared by $timescale.
type Timescale struct {
	Magnitude uint32
	Unit      TimescaleUnit
}

func (Timescale) isCommand() {}

func (ts Timescale) String() string {
	return fmt.Sprintf("%d%s", ts.Magnitude, ts.Unit)
}

// Header aggregates everything declared before $enddefinitions. Text
// fields are empty when the corresponding command is absent; Timescale is
// nil when no $timescale was declared.
type Header struct {
	Comment   string
	Date      string
	Version   string
	Timescale *Timescale
	Scope     Scope
}

// FindScope resolves a path of scope identifiers starting at the root
// scope (path[0] must name the root) and returns the scope it ends at, or
// nil if any element does not match.
func (h *Header) FindScope(path ...string) *Scope {
	if len(path) == 0 || h.Scope.Identifier != path[0] {
		return nil
	}
	scope := &h.Scope
	for _, name := range path[1:] {
		var next *Scope
		for _, item := range scope.Children {
			if child, ok := item.(*Scope); ok && child.Identifier == name {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		scope = next
	}
	return scope
}

// FindVar resolves a path whose leading elements name scopes (starting at
// the root) and whose last element is a variable reference. Returns nil if
// the path does not resolve.
func (h *Header) FindVar(path ...string) *Var {
	if len(path) < 2 {
		return nil
	}
	scope := h.FindScope(path[:len(path)-1]...)
	if scope == nil {
		return nil
	}
	ref := path[len(path)-1]
	for _, item := range scope.Children {
		if v, ok := item.(*Var); ok && v.Reference == ref {
			return v
		}
	}
	return nil
}
