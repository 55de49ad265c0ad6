package catalog

import (
	"github.com/arloliu/go-sllp/internal/util"
	"github.com/arloliu/go-sllp/wire"
)

// list is a generation-stamped, generic backing store for one of the
// catalog's four entity kinds. It replaces the reference implementation's
// four near-identical macro-generated `contains`/`get_list` pairs (one
// generic type parameterized by kind, instead of four copy-pasted ones).
type list[T any] struct {
	items      []T
	generation uint32
}

// populate replaces the list's contents and bumps its generation, so any
// Handle minted against the previous contents is rejected by contains.
func (l *list[T]) populate(items []T) {
	l.items = items
	l.generation++
}

// reset clears the list and bumps its generation, even if it was already
// empty, so stale per-item state (e.g. a group's Vars slice) can never
// survive a failed repopulation.
func (l *list[T]) reset() {
	l.items = nil
	l.generation++
}

func (l *list[T]) len() int {
	return len(l.items)
}

// at returns a copy of the item at idx and whether idx is in range.
func (l *list[T]) at(idx uint16) (T, bool) {
	var zero T
	if int(idx) >= len(l.items) {
		return zero, false
	}
	return l.items[idx], true
}

// handle mints a Handle for idx at the list's current generation, without
// checking that idx is in range; a Handle minted for an out-of-range idx is
// rejected by contains.
func (l *list[T]) handle(kind Kind, idx uint16) Handle {
	return Handle{Kind: kind, Index: idx, Generation: l.generation}
}

// contains reports whether h refers to a live entry of this list: the
// handle's kind and generation must match, and its index must be in range.
func (l *list[T]) contains(kind Kind, h Handle) bool {
	return h.Kind == kind && h.Generation == l.generation && int(h.Index) < len(l.items)
}

// snapshot returns a defensive copy of the list's current items, so a
// caller mutating the returned slice can never corrupt the catalog.
func (l *list[T]) snapshot() []T {
	return util.CloneSlice(l.items, 0)
}

// Catalog is the client's per-instance entity model: four typed lists
// (Variables, Groups, Curves, Functions) plus the negotiated server
// Version. It starts empty and is populated exactly once by the handshake
// (see client.Init), then mutated only by CreateGroup, RemoveAllGroups and
// RecalcChecksum.
//
// Catalog is not safe for concurrent use, matching the single-owner,
// synchronous client it belongs to (spec §5).
type Catalog struct {
	version Version
	vars    list[Variable]
	groups  list[Group]
	curves  list[Curve]
	funcs   list[Function]
}

// New returns an empty Catalog.
func New() *Catalog {
	return &Catalog{}
}

// Version returns the negotiated server version.
func (c *Catalog) Version() Version { return c.version }

// SetVersion records the server version decoded during the handshake.
func (c *Catalog) SetVersion(v Version) { c.version = v }

// Vars returns a defensive copy of the current variable list.
func (c *Catalog) Vars() []Variable { return c.vars.snapshot() }

// Groups returns a defensive copy of the current group list.
func (c *Catalog) Groups() []Group { return c.groups.snapshot() }

// Curves returns a defensive copy of the current curve list.
func (c *Catalog) Curves() []Curve { return c.curves.snapshot() }

// Funcs returns a defensive copy of the current function list.
func (c *Catalog) Funcs() []Function { return c.funcs.snapshot() }

// VarCount, GroupCount, CurveCount and FuncCount report the current list
// lengths without allocating a defensive copy.
func (c *Catalog) VarCount() int   { return c.vars.len() }
func (c *Catalog) GroupCount() int { return c.groups.len() }
func (c *Catalog) CurveCount() int { return c.curves.len() }
func (c *Catalog) FuncCount() int  { return c.funcs.len() }

// SetVars replaces the variable list wholesale (handshake step 2).
func (c *Catalog) SetVars(vars []Variable) { c.vars.populate(vars) }

// SetGroups replaces the group list wholesale (handshake step 3, and
// re-population after create_group/remove_all_groups).
func (c *Catalog) SetGroups(groups []Group) { c.groups.populate(groups) }

// ResetGroups clears the group list and bumps its generation. Used when
// group population fails partway through: per spec §9's prescribed fix,
// this clears stale per-group Vars slices too, not just the count.
func (c *Catalog) ResetGroups() { c.groups.reset() }

// SetCurves replaces the curve list wholesale (handshake step 4, and
// re-population after recalc_checksum).
func (c *Catalog) SetCurves(curves []Curve) { c.curves.populate(curves) }

// SetFuncs replaces the function list wholesale (handshake step 5).
func (c *Catalog) SetFuncs(funcs []Function) { c.funcs.populate(funcs) }

// VarHandle mints a Handle to the variable at idx, at the list's current
// generation. idx is not range-checked here: a Handle for an index the list
// does not have never resolves through Variable.
func (c *Catalog) VarHandle(idx uint16) Handle { return c.vars.handle(KindVariable, idx) }

// GroupHandle mints a Handle to the group at idx.
func (c *Catalog) GroupHandle(idx uint16) Handle { return c.groups.handle(KindGroup, idx) }

// CurveHandle mints a Handle to the curve at idx.
func (c *Catalog) CurveHandle(idx uint16) Handle { return c.curves.handle(KindCurve, idx) }

// FuncHandle mints a Handle to the function at idx.
func (c *Catalog) FuncHandle(idx uint16) Handle { return c.funcs.handle(KindFunction, idx) }

// Variable resolves h to a Variable, failing if h does not refer to a live
// entry of the current variable list.
func (c *Catalog) Variable(h Handle) (Variable, bool) {
	if !c.vars.contains(KindVariable, h) {
		return Variable{}, false
	}
	return c.vars.at(h.Index)
}

// Group resolves h to a Group.
func (c *Catalog) Group(h Handle) (Group, bool) {
	if !c.groups.contains(KindGroup, h) {
		return Group{}, false
	}
	return c.groups.at(h.Index)
}

// Curve resolves h to a Curve.
func (c *Catalog) Curve(h Handle) (Curve, bool) {
	if !c.curves.contains(KindCurve, h) {
		return Curve{}, false
	}
	return c.curves.at(h.Index)
}

// Function resolves h to a Function.
func (c *Catalog) Function(h Handle) (Function, bool) {
	if !c.funcs.contains(KindFunction, h) {
		return Function{}, false
	}
	return c.funcs.at(h.Index)
}

// DecodeVariableByte decodes one byte of a VAR_LIST response into a
// Variable's Size and Writable fields per spec §3: the high bit is
// writable, the low 7 bits are size, with 0 denoting VarMaxSize.
func DecodeVariableByte(id uint8, b byte) Variable {
	size := int(b & wire.SizeMask)
	if size == 0 {
		size = wire.VarMaxSize
	}
	return Variable{
		ID:       id,
		Size:     size,
		Writable: b&wire.WritableMask != 0,
	}
}

// DecodeGroupDescriptorByte decodes one byte of a GROUP_LIST response into
// a group's writable flag and expected member count, per spec §3.
func DecodeGroupDescriptorByte(b byte) (writable bool, memberCount int) {
	return b&wire.WritableMask != 0, int(b & wire.SizeMask)
}

// DecodeCurveRecord decodes one CurveListInfo-byte record of a CURVE_LIST
// response, per spec §3: writable:u8, block_size:u16, nblocks:u16, all
// big-endian, with nblocks==0 denoting CurveMaxBlocks.
func DecodeCurveRecord(id uint8, record []byte) Curve {
	blockSize := uint16(record[1])<<8 | uint16(record[2])
	nblocks := uint16(record[3])<<8 | uint16(record[4])
	if nblocks == 0 {
		nblocks = wire.CurveMaxBlocks
	}

	return Curve{
		ID:        id,
		Writable:  record[0] != 0,
		BlockSize: blockSize,
		NBlocks:   nblocks,
	}
}

// DecodeFunctionByte decodes one byte of a FUNC_LIST response into a
// function's input/output sizes, per spec §3: high nibble input size, low
// nibble output size.
func DecodeFunctionByte(id uint8, b byte) Function {
	return Function{
		ID:         id,
		InputSize:  int(b>>4) & 0xF,
		OutputSize: int(b) & 0xF,
	}
}
