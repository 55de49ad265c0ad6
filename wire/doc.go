// Package wire implements the SLLP frame codec: the bit-exact encoding and
// decoding of the on-wire unit opcode(1) || size(2, big-endian) || payload(size),
// and the enumeration of protocol opcodes exchanged between a client and an
// SLLP-speaking embedded server.
//
// Layout constants (HeaderSize, MaxPayload, MaxMessage, the curve-related
// byte layouts) are fixed by the protocol and match the retrieved reference
// implementation. Decode treats the declared payload size as authoritative:
// a received buffer whose length disagrees with the declared size is a
// communication fault, not a best-effort truncate-or-overrun.
package wire
