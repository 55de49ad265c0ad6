// Package catalog implements the SLLP client's typed, in-memory model of a
// server's Variables, Groups, Curves and Functions (component D of the
// protocol engine). It is populated exactly once by the handshake and
// thereafter mutated only by group creation/removal and checksum recalc.
//
// Entities are resolved through a Handle rather than a pointer into the
// catalog's backing arrays. A Handle embeds a generation counter bumped on
// every repopulation of the list it belongs to. This is how the catalog
// rejects references that predate a repopulation without relying on pointer
// identity (see DESIGN.md's discussion of the source's pointer-comparison
// based validity check).
package catalog
