package transport

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/arloliu/go-sllp/wire"
)

// NetTransport frames one SLLP request/response exchange over a net.Conn.
// It reads exactly one frame on Recv by reading the fixed-size header
// first, then the declared payload length, mirroring the way the teacher's
// connection adapters read a fixed header before a variable-length body
// (hsmsss/conn_active.go, secs1/conn.go).
type NetTransport struct {
	Conn net.Conn

	// Timeout bounds each individual Send/Recv call via SetWriteDeadline /
	// SetReadDeadline. Zero means no deadline is applied.
	Timeout time.Duration
}

// NewNetTransport wraps conn with default (no) timeout.
func NewNetTransport(conn net.Conn) *NetTransport {
	return &NetTransport{Conn: conn}
}

func (t *NetTransport) deadline() time.Time {
	if t.Timeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(t.Timeout)
}

// Send writes frame in full to the underlying connection.
func (t *NetTransport) Send(ctx context.Context, frame []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := t.Conn.SetWriteDeadline(t.deadline()); err != nil {
		return fmt.Errorf("transport: set write deadline: %w", err)
	}

	if _, err := t.Conn.Write(frame); err != nil {
		return fmt.Errorf("transport: write: %w", err)
	}

	return nil
}

// Recv reads exactly one SLLP frame: the fixed HeaderSize-byte header, then
// the number of payload bytes it declares.
func (t *NetTransport) Recv(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := t.Conn.SetReadDeadline(t.deadline()); err != nil {
		return nil, fmt.Errorf("transport: set read deadline: %w", err)
	}

	header := make([]byte, wire.HeaderSize)
	if _, err := io.ReadFull(t.Conn, header); err != nil {
		return nil, fmt.Errorf("transport: read header: %w", err)
	}

	size := binary.BigEndian.Uint16(header[1:3])
	frame := make([]byte, wire.HeaderSize+int(size))
	copy(frame, header)

	if size > 0 {
		if _, err := io.ReadFull(t.Conn, frame[wire.HeaderSize:]); err != nil {
			return nil, fmt.Errorf("transport: read payload: %w", err)
		}
	}

	return frame, nil
}

// Close closes the underlying connection.
func (t *NetTransport) Close() error {
	return t.Conn.Close()
}
