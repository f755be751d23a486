package vcd

// Command is one parsed unit of a VCD stream. The set of implementations
// is closed: Comment, Date, Version, Timescale, ScopeDef, Upscope, VarDef,
// Enddefinitions, Begin, End, Timestamp, ChangeScalar, ChangeVector,
// ChangeReal and ChangeString. Consumers are expected to type-switch over
// the concrete types.
type Command interface {
	isCommand()
}

// Comment carries the text of a $comment section, trimmed of surrounding
// whitespace.
type Comment struct {
	Text string
}

// Date carries the text of a $date section.
type Date struct {
	Text string
}

// Version carries the text of a $version section.
type Version struct {
	Text string
}

// ScopeDef opens a scope. It declares the scope only; the nested body up
// to the matching Upscope follows as further commands (ParseHeader
// assembles them into a Scope tree).
type ScopeDef struct {
	Type       ScopeType
	Identifier string
}

// Upscope closes the innermost open scope.
type Upscope struct{}

// VarDef declares a variable inside the current scope.
type VarDef struct {
	Type      VarType
	Size      uint32
	Code      IDCode
	Reference string
}

// Enddefinitions terminates the header section.
type Enddefinitions struct{}

// Begin opens a simulation command block ($dumpall, $dumpoff, $dumpon or
// $dumpvars). Value changes follow until the matching End.
type Begin struct {
	Kind SimulationCommand
}

// End closes the open simulation command block.
type End struct {
	Kind SimulationCommand
}

// Timestamp advances simulation time (a #-prefixed line).
type Timestamp struct {
	Time uint64
}

// ChangeScalar records a new value on a single-bit signal.
type ChangeScalar struct {
	Code  IDCode
	Value Value
}

// ChangeVector records a new value on a multi-bit signal, most significant
// bit first, exactly as wide as written in the file.
type ChangeVector struct {
	Code   IDCode
	Values []Value
}

// ChangeReal records a new value on a real-valued signal.
type ChangeReal struct {
	Code  IDCode
	Value float64
}

// ChangeString records a new value on a string-valued signal.
type ChangeString struct {
	Code  IDCode
	Value string
}

func (Comment) isCommand()        {}
func (Date) isCommand()           {}
func (Version) isCommand()        {}
func (ScopeDef) isCommand()       {}
func (Upscope) isCommand()        {}
func (VarDef) isCommand()         {}
func (Enddefinitions) isCommand() {}
func (Begin) isCommand()          {}
func (End) isCommand()            {}
func (Timestamp) isCommand()      {}
func (ChangeScalar) isCommand()   {}
func (ChangeVector) isCommand()   {}
func (ChangeReal) isCommand()     {}
func (ChangeString) isCommand()   {}
