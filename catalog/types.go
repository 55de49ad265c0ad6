package catalog

import "fmt"

// Kind identifies which of the catalog's four entity lists a Handle refers to.
type Kind uint8

const (
	KindVariable Kind = iota
	KindGroup
	KindCurve
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindGroup:
		return "group"
	case KindCurve:
		return "curve"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Handle is an opaque, generation-stamped reference into one of the
// catalog's entity lists. It replaces the source's raw-pointer identity
// check: a Handle is only valid against a Catalog whose corresponding list
// is still on the same generation the Handle was minted from, so a Handle
// obtained before a repopulation (create_group, remove_all_groups,
// recalc_checksum) is rejected even though its Index might coincidentally
// still be in range.
type Handle struct {
	Kind       Kind
	Index      uint16
	Generation uint32
}

func (h Handle) String() string {
	return fmt.Sprintf("%s#%d@%d", h.Kind, h.Index, h.Generation)
}

// Variable is a server-resident opaque byte-valued register.
type Variable struct {
	ID       uint8
	Size     int
	Writable bool
}

// Group is an ordered aggregate of Variables with a derived total size.
// Vars holds Handles into the catalog's variable list, in server-declared
// order.
type Group struct {
	ID       uint8
	Writable bool
	Vars     []Handle
	Size     int
}

// Curve is a large block-addressable, checksummed byte array.
type Curve struct {
	ID        uint8
	Writable  bool
	BlockSize uint16
	NBlocks   uint16
	Checksum  [ChecksumSize]byte
}

// ChecksumSize is the fixed length of a Curve's checksum field.
const ChecksumSize = 16

// Function is a server-side callable accepting at most 15 bytes of input
// and producing at most 15 bytes of output.
type Function struct {
	ID         uint8
	InputSize  int
	OutputSize int
}

// Version is the server's reported (or, for legacy servers, assumed) SLLP
// version.
type Version struct {
	Major    uint8
	Minor    uint8
	Revision uint8
}

// String formats the version as "M.mm.rrr", matching the reference client's
// snprintf format exactly.
func (v Version) String() string {
	return fmt.Sprintf("%d.%02d.%03d", v.Major, v.Minor, v.Revision)
}
