// Package transport provides the two byte-level callbacks the SLLP client
// core consumes (component A): Send and Recv. The core has no opinion on
// sockets, serial lines or shared memory; it treats any Transport the same
// way.
//
// This package ships two concrete adapters: NetTransport, which frames a
// request/response exchange over a net.Conn with optional read/write
// deadlines, and LoopbackTransport, an in-memory adapter used as the mock
// transport in tests (spec.md §8's "mock transport").
package transport
