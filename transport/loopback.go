package transport

import (
	"context"
	"errors"
)

// ErrNoMoreResponses is returned by LoopbackTransport.Recv when its canned
// response queue is empty.
var ErrNoMoreResponses = errors.New("transport: no more canned responses")

// LoopbackTransport is an in-memory Transport used to drive a Client
// against canned responses in tests, mirroring spec.md §8's "mock
// transport" scenarios. Queue each expected response frame with
// QueueResponse before exercising the client; Sent records every frame the
// client actually transmitted, in order.
type LoopbackTransport struct {
	Sent [][]byte

	responses [][]byte

	// SendErr, if non-nil, is returned by every call to Send instead of
	// recording the frame, simulating a transport-level send failure.
	SendErr error
	// RecvErr, if non-nil, is returned by every call to Recv instead of
	// popping the response queue, simulating a transport-level receive
	// failure.
	RecvErr error
}

// NewLoopbackTransport returns an empty LoopbackTransport.
func NewLoopbackTransport() *LoopbackTransport {
	return &LoopbackTransport{}
}

// QueueResponse appends frame to the queue of responses Recv will hand out,
// in FIFO order.
func (lt *LoopbackTransport) QueueResponse(frame []byte) {
	lt.responses = append(lt.responses, frame)
}

// QueueResponses appends several frames at once, in order.
func (lt *LoopbackTransport) QueueResponses(frames ...[]byte) {
	lt.responses = append(lt.responses, frames...)
}

func (lt *LoopbackTransport) Send(_ context.Context, frame []byte) error {
	if lt.SendErr != nil {
		return lt.SendErr
	}

	sent := make([]byte, len(frame))
	copy(sent, frame)
	lt.Sent = append(lt.Sent, sent)

	return nil
}

func (lt *LoopbackTransport) Recv(_ context.Context) ([]byte, error) {
	if lt.RecvErr != nil {
		return nil, lt.RecvErr
	}

	if len(lt.responses) == 0 {
		return nil, ErrNoMoreResponses
	}

	frame := lt.responses[0]
	lt.responses = lt.responses[1:]

	return frame, nil
}
