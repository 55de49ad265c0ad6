package client

import (
	"context"
	"testing"

	"github.com/arloliu/go-sllp/catalog"
	"github.com/arloliu/go-sllp/transport"
	"github.com/arloliu/go-sllp/wire"
	"github.com/stretchr/testify/require"
)

// frame builds a response frame for the given opcode/payload using the
// wire codec under test, the way a real server would.
func frame(t *testing.T, op wire.Opcode, payload []byte) []byte {
	t.Helper()
	buf, err := wire.Encode(op, payload)
	require.NoError(t, err)
	return buf
}

// handshakeFixture describes the canned server state a test wants Init to
// observe: variable descriptor bytes, group descriptor bytes plus each
// group's member variable IDs, curve records plus each curve's checksum,
// and function descriptor bytes.
type handshakeFixture struct {
	versionResp    []byte // response frame for QUERY_VERSION
	varsPayload    []byte
	groupsPayload  []byte
	groupMembers   [][]byte // groupMembers[i] = payload for GROUP_QUERY{i}
	curvesPayload  []byte
	curveChecksums [][]byte // curveChecksums[i] = 16-byte checksum for curve i, nil to skip
	funcsPayload   []byte
}

func newClientWithFixture(t *testing.T, fx handshakeFixture) (*Client, *transport.LoopbackTransport) {
	t.Helper()

	lt := transport.NewLoopbackTransport()

	lt.QueueResponse(fx.versionResp)
	lt.QueueResponse(frame(t, wire.OpVarList, fx.varsPayload))
	lt.QueueResponse(frame(t, wire.OpGroupList, fx.groupsPayload))
	for _, members := range fx.groupMembers {
		lt.QueueResponse(frame(t, wire.OpGroup, members))
	}
	lt.QueueResponse(frame(t, wire.OpCurveList, fx.curvesPayload))
	for _, csum := range fx.curveChecksums {
		if csum == nil {
			lt.QueueResponse(frame(t, wire.OpErrOpNotSupported, nil))
			continue
		}
		lt.QueueResponse(frame(t, wire.OpCurveCsum, csum))
	}
	lt.QueueResponse(frame(t, wire.OpFuncList, fx.funcsPayload))

	c, err := New(lt)
	require.NoError(t, err)
	require.NoError(t, c.Init(context.Background()))

	return c, lt
}

func TestHandshakeVersion1Dot0(t *testing.T) {
	require := require.New(t)

	c, _ := newClientWithFixture(t, handshakeFixture{
		versionResp: frame(t, wire.OpErrOpNotSupported, nil),
	})

	require.Equal("1.00.000", c.Version().String())
	require.Zero(len(c.Vars()))
	require.Zero(len(c.Groups()))
	require.Zero(len(c.Curves()))
	require.Zero(len(c.Funcs()))
	require.True(c.Initialized())
}

func TestVariableDecoding(t *testing.T) {
	require := require.New(t)

	c, _ := newClientWithFixture(t, handshakeFixture{
		versionResp: frame(t, wire.OpErrOpNotSupported, nil),
		varsPayload: []byte{0x82, 0x04, 0x00},
	})

	vars := c.Vars()
	require.Equal([]catalog.Variable{
		{ID: 0, Size: 2, Writable: true},
		{ID: 1, Size: 4, Writable: false},
		{ID: 2, Size: wire.VarMaxSize, Writable: false},
	}, vars)
}

func TestReadOnlyWriteRejected(t *testing.T) {
	require := require.New(t)

	c, lt := newClientWithFixture(t, handshakeFixture{
		versionResp: frame(t, wire.OpErrOpNotSupported, nil),
		varsPayload: []byte{0x82, 0x04, 0x00},
	})

	sentBefore := len(lt.Sent)

	h := c.VarHandle(1) // var[1] is read-only
	err := c.WriteVar(context.Background(), h, []byte{1, 2, 3, 4})
	require.ErrorIs(err, ErrParamInvalid)
	require.Len(lt.Sent, sentBefore)
}

func TestBinOpVarToggle(t *testing.T) {
	require := require.New(t)

	// four 1-byte variables, var[3] writable
	c, lt := newClientWithFixture(t, handshakeFixture{
		versionResp: frame(t, wire.OpErrOpNotSupported, nil),
		varsPayload: []byte{0x01, 0x01, 0x01, 0x81},
	})

	lt.QueueResponse(frame(t, wire.OpOK, nil))

	h := c.VarHandle(3)
	err := c.BinOpVar(context.Background(), wire.BinOpToggle, h, []byte{0x80})
	require.NoError(err)

	require.Equal([]byte{byte(wire.OpVarBinOp), 0x00, 0x03, 3, 'T', 0x80}, lt.Sent[len(lt.Sent)-1])
}

func TestBinOpInvalidCode(t *testing.T) {
	c, _ := newClientWithFixture(t, handshakeFixture{
		versionResp: frame(t, wire.OpErrOpNotSupported, nil),
		varsPayload: []byte{0x81},
	})

	h := c.VarHandle(0)
	err := c.BinOpVar(context.Background(), wire.BinOp(99), h, []byte{0x80})
	require.ErrorIs(t, err, ErrParamOutOfRange)
}

func TestFuncExecuteDomainError(t *testing.T) {
	require := require.New(t)

	c, lt := newClientWithFixture(t, handshakeFixture{
		versionResp:  frame(t, wire.OpErrOpNotSupported, nil),
		funcsPayload: []byte{0x12}, // input_size=1, output_size=2
	})

	lt.QueueResponse(frame(t, wire.OpFuncError, []byte{0x07}))

	h := c.FuncHandle(0)
	output := []byte{0xFF, 0xFF}
	errByte, err := c.FuncExecute(context.Background(), h, []byte{0x01}, output)

	require.NoError(err)
	require.Equal(byte(0x07), errByte)
	require.Equal([]byte{0xFF, 0xFF}, output) // untouched
}

func TestFuncExecuteSuccess(t *testing.T) {
	require := require.New(t)

	c, lt := newClientWithFixture(t, handshakeFixture{
		versionResp:  frame(t, wire.OpErrOpNotSupported, nil),
		funcsPayload: []byte{0x12},
	})

	lt.QueueResponse(frame(t, wire.OpFuncReturn, []byte{0xAA, 0xBB}))

	h := c.FuncHandle(0)
	output := make([]byte, 2)
	errByte, err := c.FuncExecute(context.Background(), h, []byte{0x01}, output)

	require.NoError(err)
	require.Equal(byte(0), errByte)
	require.Equal([]byte{0xAA, 0xBB}, output)
}

func TestCurveBlockRequest(t *testing.T) {
	require := require.New(t)

	// one curve: writable, block_size=4, nblocks=512
	curveRecord := []byte{0x01, 0x00, 0x04, 0x02, 0x00}

	c, lt := newClientWithFixture(t, handshakeFixture{
		versionResp:    frame(t, wire.OpErrOpNotSupported, nil),
		curvesPayload:  curveRecord,
		curveChecksums: [][]byte{make([]byte, catalog.ChecksumSize)},
	})

	h := c.CurveHandle(0)
	curve, ok := c.catalog.Curve(h)
	require.True(ok)
	require.True(curve.Writable) // record[0] is the whole writable byte, not a high-bit flag

	lt.QueueResponse(frame(t, wire.OpCurveBlock, []byte{curve.ID, 0x01, 0x02, 0xAA, 0xBB, 0xCC, 0xDD}))

	data, err := c.CurveBlockRequest(context.Background(), h, 0x0102)
	require.NoError(err)
	require.Equal([]byte{0xAA, 0xBB, 0xCC, 0xDD}, data)
	require.Equal([]byte{byte(wire.OpCurveBlockReq), 0x00, 0x03, curve.ID, 0x01, 0x02}, lt.Sent[len(lt.Sent)-1])
}

func TestCurveBlockSend(t *testing.T) {
	require := require.New(t)

	// one curve: writable, block_size=4, nblocks=512
	curveRecord := []byte{0x01, 0x00, 0x04, 0x02, 0x00}

	c, lt := newClientWithFixture(t, handshakeFixture{
		versionResp:    frame(t, wire.OpErrOpNotSupported, nil),
		curvesPayload:  curveRecord,
		curveChecksums: [][]byte{make([]byte, catalog.ChecksumSize)},
	})

	h := c.CurveHandle(0)
	curve, ok := c.catalog.Curve(h)
	require.True(ok)

	lt.QueueResponse(frame(t, wire.OpOK, nil))

	err := c.CurveBlockSend(context.Background(), h, 0x0001, []byte{0xAA, 0xBB, 0xCC, 0xDD})
	require.NoError(err)
	require.Equal([]byte{byte(wire.OpCurveBlock), 0x00, 0x07, curve.ID, 0x00, 0x01, 0xAA, 0xBB, 0xCC, 0xDD}, lt.Sent[len(lt.Sent)-1])
}

func TestCurveBlockRequestOffsetOutOfRange(t *testing.T) {
	curveRecord := []byte{0x01, 0x00, 0x04, 0x00, 0x01} // nblocks=1

	c, _ := newClientWithFixture(t, handshakeFixture{
		versionResp:    frame(t, wire.OpErrOpNotSupported, nil),
		curvesPayload:  curveRecord,
		curveChecksums: [][]byte{nil},
	})

	h := c.CurveHandle(0)
	_, err := c.CurveBlockRequest(context.Background(), h, 5)
	require.ErrorIs(t, err, ErrParamOutOfRange)
}

func TestCreateGroupAndRemoveAllGroups(t *testing.T) {
	require := require.New(t)

	c, lt := newClientWithFixture(t, handshakeFixture{
		versionResp: frame(t, wire.OpErrOpNotSupported, nil),
		varsPayload: []byte{0x81, 0x82}, // var0 size1 writable, var1 size2 writable
	})

	// create_group response, then the group-list re-population exchange.
	lt.QueueResponse(frame(t, wire.OpOK, nil))
	lt.QueueResponse(frame(t, wire.OpGroupList, []byte{0x82})) // 1 group, writable, 2 members
	lt.QueueResponse(frame(t, wire.OpGroup, []byte{0, 1}))

	v0 := c.VarHandle(0)
	v1 := c.VarHandle(1)
	require.NoError(c.CreateGroup(context.Background(), []catalog.Handle{v0, v1}))

	groups := c.Groups()
	require.Len(groups, 1)
	require.Equal(3, groups[0].Size) // 1 + 2

	lt.QueueResponse(frame(t, wire.OpOK, nil))
	lt.QueueResponse(frame(t, wire.OpGroupList, nil))
	require.NoError(c.RemoveAllGroups(context.Background()))
	require.Empty(c.Groups())
}

func TestCreateGroupEmptyListRejected(t *testing.T) {
	c, _ := newClientWithFixture(t, handshakeFixture{
		versionResp: frame(t, wire.OpErrOpNotSupported, nil),
	})

	err := c.CreateGroup(context.Background(), nil)
	require.ErrorIs(t, err, ErrParamInvalid)
}

func TestNewRejectsNilTransport(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrParamInvalid)
}

func TestQueryVersionIgnoresResponseOpcode(t *testing.T) {
	require := require.New(t)

	// queryVersion only special-cases OpErrOpNotSupported; any other
	// opcode carrying >=3 payload bytes is read as the version triple,
	// matching the reference client's behavior of not re-checking the
	// response opcode for this one step.
	c, _ := newClientWithFixture(t, handshakeFixture{
		versionResp: frame(t, wire.OpFuncList, []byte{1, 2, 3}),
	})

	require.Equal("1.02.003", c.Version().String())
}

func TestQueryVersionShortPayloadIsCommError(t *testing.T) {
	lt := transport.NewLoopbackTransport()
	lt.QueueResponse(frame(t, wire.OpFuncList, nil))

	c, err := New(lt)
	require.NoError(t, err)

	err = c.Init(context.Background())
	require.ErrorIs(t, err, ErrComm)
}

func TestWriteVarWrongValueSizeRejected(t *testing.T) {
	c, _ := newClientWithFixture(t, handshakeFixture{
		versionResp: frame(t, wire.OpErrOpNotSupported, nil),
		varsPayload: []byte{0x82}, // writable, size 2
	})

	h := c.VarHandle(0)
	err := c.WriteVar(context.Background(), h, []byte{0x01})
	require.ErrorIs(t, err, ErrParamInvalid)
}

func TestHandleFromPreviousGenerationRejectedAfterGroupMutation(t *testing.T) {
	require := require.New(t)

	c, lt := newClientWithFixture(t, handshakeFixture{
		versionResp:   frame(t, wire.OpErrOpNotSupported, nil),
		varsPayload:   []byte{0x81},
		groupsPayload: []byte{0x81},
		groupMembers:  [][]byte{{0}},
	})

	staleGroup := c.GroupHandle(0)

	lt.QueueResponse(frame(t, wire.OpOK, nil))
	lt.QueueResponse(frame(t, wire.OpGroupList, nil))
	require.NoError(c.RemoveAllGroups(context.Background()))

	_, err := c.ReadGroup(context.Background(), staleGroup)
	require.ErrorIs(err, ErrParamInvalid)
}
