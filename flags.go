package framegraph

import "fmt"

// Flags is the per-access word the client attaches to read and write
// declarations. The graph itself interprets only the FlagsIgnored
// sentinel: a pre-read or pre-write hook is invoked for an access iff its
// flags differ from FlagsIgnored. Everything else is client vocabulary —
// usage transitions for the barrier hooks, packed binding locations via
// Binding, or anything the client's own hooks understand.
//
// The same word is used for the graph's internal record flags; those bits
// are the Flag* constants below.
type Flags uint32

// FlagsIgnored marks an access the hooks should not be called for.
// It is the implicit flags word of every create and import.
const FlagsIgnored Flags = 0xFFFFFFFF

// Record flag bits.
const (
	// FlagImported marks a resource backed by a client-owned GPU object.
	// Imported resources are never created or destroyed by the graph.
	FlagImported Flags = 0x0001

	// FlagTransient marks a resource created through CreateTexture or
	// CreateBuffer, whose GPU object the hooks materialize and destroy.
	FlagTransient Flags = 0x0002

	// FlagHasSideEffects marks a pass whose output is externally
	// observable. Such passes are never culled. The bit is set
	// automatically when a pass writes an imported resource.
	FlagHasSideEffects Flags = 0x8000
)

// String returns a readable form of the record flag bits.
func (f Flags) String() string {
	if f == FlagsIgnored {
		return "Ignored"
	}
	s := ""
	if f&FlagImported != 0 {
		s += "|Imported"
	}
	if f&FlagTransient != 0 {
		s += "|Transient"
	}
	if f&FlagHasSideEffects != 0 {
		s += "|HasSideEffects"
	}
	if s == "" {
		return fmt.Sprintf("Flags(%#x)", uint32(f))
	}
	return s[1:]
}
