package client

import "errors"

// Sentinel errors for the four error kinds of spec.md §7. Every error this
// package returns wraps exactly one of these via %w, so callers can use
// errors.Is regardless of the added context.
var (
	// ErrParamInvalid indicates a null/absent required input, a reference
	// that doesn't belong to this client's catalog, a write attempted on a
	// read-only entity, or an empty group-creation list.
	ErrParamInvalid = errors.New("sllp: invalid parameter")

	// ErrParamOutOfRange indicates a bin-op code outside the six defined
	// operations, a curve offset past nblocks, or a curve write whose
	// length exceeds block_size.
	ErrParamOutOfRange = errors.New("sllp: parameter out of range")

	// ErrComm indicates a transport failure, a short or malformed response,
	// or a response opcode other than the one the operation expects.
	ErrComm = errors.New("sllp: communication fault")

	// ErrOpNotSupported is not a failure: it is the response-level signal
	// (opcode OpErrOpNotSupported) the handshake's version query uses to
	// detect a legacy "version 1.0" server. No operation of this package
	// returns it (the handshake checks the opcode directly); Describe still
	// maps it to a name.
	ErrOpNotSupported = errors.New("sllp: operation not supported")
)

// Describe maps an error returned by this package to a short,
// human-readable string suitable for diagnostic logging (spec.md §7). It
// unwraps to the nearest recognized sentinel via errors.Is, falling back to
// err.Error() for anything else.
func Describe(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrParamInvalid):
		return "invalid parameter"
	case errors.Is(err, ErrParamOutOfRange):
		return "parameter out of range"
	case errors.Is(err, ErrComm):
		return "communication fault"
	case errors.Is(err, ErrOpNotSupported):
		return "operation not supported"
	default:
		return err.Error()
	}
}
