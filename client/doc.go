// Package client implements the SLLP client's command engine (component C),
// handshake (component E) and command surface (component F) on top of the
// wire codec (package wire) and entity catalog (package catalog).
//
// A Client is single-owner and synchronous: every exported method blocks
// until its one request/response exchange completes or the transport
// returns an error. There is no retry, no pipelining, and no background
// goroutine — concurrent use of a single Client from multiple goroutines is
// undefined, matching spec.md §5.
package client
