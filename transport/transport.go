package transport

import "context"

// Transport is the minimal byte-level abstraction the SLLP client core
// depends on. Send transmits exactly one request frame; Recv receives
// exactly one response frame. Neither does any retrying: a non-nil error
// from either is a communication fault as far as the core is concerned
// (spec.md §4.C, §7 ErrComm).
//
// Implementations are free to interpret ctx as they see fit (e.g. applying
// it as a read/write deadline); the core itself enforces no timeout at this
// layer (spec.md §5).
type Transport interface {
	Send(ctx context.Context, frame []byte) error
	Recv(ctx context.Context) ([]byte, error)
}
