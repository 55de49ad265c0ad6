package client

import (
	"context"
	"fmt"

	"github.com/arloliu/go-sllp/wire"
)

// exchange implements the command engine (spec.md §4.C): encode the
// request, send it, receive the response, decode it, and hand back its
// opcode and payload. It never retries and applies no timeout of its own —
// that's the transport's job (spec.md §5).
func (c *Client) exchange(ctx context.Context, op wire.Opcode, payload []byte) (wire.Opcode, []byte, error) {
	frame, err := wire.EncodeInto(c.scratch[:], op, payload)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: encode request: %v", ErrParamInvalid, err) //nolint:errorlint
	}

	if err := c.transport.Send(ctx, frame); err != nil {
		return 0, nil, fmt.Errorf("%w: send: %v", ErrComm, err) //nolint:errorlint
	}

	respFrame, err := c.transport.Recv(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: recv: %v", ErrComm, err) //nolint:errorlint
	}

	respOp, respPayload, err := wire.Decode(respFrame)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: decode response: %v", ErrComm, err) //nolint:errorlint
	}

	c.logger.Debug("sllp exchange",
		"requestOpcode", op.String(),
		"responseOpcode", respOp.String(),
		"payloadSize", len(respPayload),
	)

	return respOp, respPayload, nil
}

// expectOpcode fails the exchange with ErrComm if got != want, the way
// every command method's wire table row specifies exactly one OK response
// opcode (spec.md §4.F: "any other opcode is ErrComm").
func expectOpcode(want, got wire.Opcode) error {
	if got != want {
		return fmt.Errorf("%w: expected %s response, got %s", ErrComm, want, got)
	}
	return nil
}
