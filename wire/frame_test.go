package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	require := require.New(t)

	cases := [][]byte{
		{},
		{0x01},
		{0xAA, 0xBB, 0xCC, 0xDD},
		make([]byte, 512),
	}

	for _, payload := range cases {
		buf, err := Encode(OpVarValue, payload)
		require.NoError(err)

		op, decoded, err := Decode(buf)
		require.NoError(err)
		require.Equal(OpVarValue, op)
		require.Equal(payload, decoded)
	}
}

func TestEncodeRejectsOversizePayload(t *testing.T) {
	_, err := Encode(OpVarWrite, make([]byte, MaxPayload+1))
	require.ErrorIs(t, err, ErrPayloadTooLarge)
}

func TestDecodeRejectsShortFrame(t *testing.T) {
	_, _, err := Decode([]byte{0x01, 0x00})
	require.ErrorIs(t, err, ErrFrameTooShort)
}

func TestDecodeRejectsSizeMismatch(t *testing.T) {
	// declares 4 bytes of payload but only 1 is present
	buf := []byte{byte(OpOK), 0x00, 0x04, 0xAA}
	_, _, err := Decode(buf)
	require.ErrorIs(t, err, ErrFrameSize)
}

func TestCurveBlockRequestWireBytes(t *testing.T) {
	// Scenario 6 from spec.md §8: curve_block_request emits
	// [CURVE_BLOCK_REQUEST, 0, 3, c.id, 0x01, 0x02]
	payload := []byte{5, 0x01, 0x02}
	buf, err := Encode(OpCurveBlockReq, payload)
	require.NoError(t, err)
	require.Equal(t, []byte{byte(OpCurveBlockReq), 0x00, 0x03, 5, 0x01, 0x02}, buf)
}

func TestEncodeIntoReusesBuffer(t *testing.T) {
	require := require.New(t)
	scratch := make([]byte, MaxMessage)

	out, err := EncodeInto(scratch, OpVarBinOp, []byte{3, 'T', 0x80})
	require.NoError(err)
	require.Equal([]byte{byte(OpVarBinOp), 0x00, 0x03, 3, 'T', 0x80}, out)

	// The backing array is the scratch buffer, not a fresh allocation.
	require.Same(&scratch[0], &out[0])
}
