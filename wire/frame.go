package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// HeaderSize is the size of the SLLP frame header in bytes: opcode(1) + size(2).
	HeaderSize = 3

	// MaxPayload is the largest payload this module will encode or accept,
	// matching the reference server's fixed buffer bound.
	MaxPayload = 4096

	// MaxMessage is the largest complete frame (header + payload).
	MaxMessage = HeaderSize + MaxPayload

	// CurveBlockSize is the protocol's fixed curve block size in bytes.
	CurveBlockSize = 1024

	// CurveListInfo is the number of bytes one curve occupies in a CURVE_LIST response.
	CurveListInfo = 5

	// CurveBlockInfo is the size of the curve_id+offset prefix on a curve block transfer.
	CurveBlockInfo = 3

	// CurveChecksumSize is the fixed length of a curve's checksum byte array.
	CurveChecksumSize = 16

	// VarMaxSize is the largest size a variable may declare; the wire value 0
	// in a variable descriptor byte denotes this size (wrap-around encoding).
	VarMaxSize = 0x7F

	// CurveMaxBlocks is the value a decoded curve's block count of 0 denotes.
	CurveMaxBlocks = 0xFFFF

	// WritableMask is the high bit of a variable/group descriptor byte. (A
	// curve record's writable flag is its whole first byte, not this bit.)
	WritableMask = 0x80
	// SizeMask is the low 7 bits of a variable/group descriptor byte.
	SizeMask = 0x7F
)

// ErrFrameTooShort is returned by Decode when the buffer is too small to
// hold even a header.
var ErrFrameTooShort = errors.New("wire: frame shorter than header")

// ErrFrameSize is returned by Decode when the declared payload size in the
// header disagrees with the number of payload bytes actually present. Per
// the protocol's declared size is authoritative: a mismatch here is a
// communication fault, not something to silently truncate or overrun.
var ErrFrameSize = errors.New("wire: declared payload size does not match received length")

// ErrPayloadTooLarge is returned by Encode when the payload exceeds MaxPayload.
var ErrPayloadTooLarge = errors.New("wire: payload exceeds MaxPayload")

// Encode produces the byte sequence [opcode, size_hi, size_lo, payload...]
// for the given opcode and payload. The returned slice is always exactly
// HeaderSize+len(payload) bytes.
func Encode(op Opcode, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, len(payload), MaxPayload)
	}

	buf := make([]byte, HeaderSize+len(payload))
	buf[0] = byte(op)
	binary.BigEndian.PutUint16(buf[1:3], uint16(len(payload))) //nolint:gosec
	copy(buf[HeaderSize:], payload)

	return buf, nil
}

// EncodeInto is like Encode but writes into a caller-supplied scratch
// buffer (which must be at least HeaderSize+len(payload) bytes) and returns
// the written slice. It lets a single-owner client reuse one buffer across
// calls instead of allocating a frame per command.
func EncodeInto(dst []byte, op Opcode, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, fmt.Errorf("%w: %d > %d", ErrPayloadTooLarge, len(payload), MaxPayload)
	}
	n := HeaderSize + len(payload)
	if len(dst) < n {
		return nil, fmt.Errorf("wire: scratch buffer too small: need %d, have %d", n, len(dst))
	}

	dst[0] = byte(op)
	binary.BigEndian.PutUint16(dst[1:3], uint16(len(payload))) //nolint:gosec
	copy(dst[HeaderSize:n], payload)

	return dst[:n], nil
}

// Decode parses a received frame, returning its opcode and payload.
//
// The declared 16-bit size field is authoritative: if the number of bytes
// after the header doesn't equal the declared size, Decode returns
// ErrFrameSize rather than truncating or overrunning (see DESIGN.md,
// "response length ambiguity").
func Decode(buf []byte) (Opcode, []byte, error) {
	if len(buf) < HeaderSize {
		return 0, nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrFrameTooShort, len(buf), HeaderSize)
	}

	op := Opcode(buf[0])
	declared := binary.BigEndian.Uint16(buf[1:3])
	actual := len(buf) - HeaderSize

	if int(declared) != actual {
		return 0, nil, fmt.Errorf("%w: declared %d, got %d", ErrFrameSize, declared, actual)
	}

	payload := make([]byte, actual)
	copy(payload, buf[HeaderSize:])

	return op, payload, nil
}
