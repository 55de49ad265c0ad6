package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeVariableByte(t *testing.T) {
	require := require.New(t)

	// Scenario 2 from spec.md §8.
	payload := []byte{0x82, 0x04, 0x00}
	vars := make([]Variable, len(payload))
	for i, b := range payload {
		vars[i] = DecodeVariableByte(uint8(i), b) //nolint:gosec
	}

	require.Equal(Variable{ID: 0, Size: 2, Writable: true}, vars[0])
	require.Equal(Variable{ID: 1, Size: 4, Writable: false}, vars[1])
	require.Equal(Variable{ID: 2, Size: 0x7F, Writable: false}, vars[2])
}

func TestHandleRejectedAfterRepopulation(t *testing.T) {
	require := require.New(t)

	cat := New()
	cat.SetVars([]Variable{{ID: 0, Size: 1, Writable: true}})
	h := cat.VarHandle(0)

	v, ok := cat.Variable(h)
	require.True(ok)
	require.Equal(uint8(0), v.ID)

	// Repopulating bumps the generation; the old handle must now be rejected
	// even though index 0 is still in range, per spec §9's identity-based
	// validity requirement.
	cat.SetVars([]Variable{{ID: 0, Size: 1, Writable: true}})
	_, ok = cat.Variable(h)
	require.False(ok)

	fresh := cat.VarHandle(0)
	_, ok = cat.Variable(fresh)
	require.True(ok)
}

func TestGroupResetClearsStaleVars(t *testing.T) {
	require := require.New(t)

	cat := New()
	cat.SetVars([]Variable{{ID: 0, Size: 2, Writable: true}})
	cat.SetGroups([]Group{{ID: 0, Writable: true, Vars: []Handle{cat.VarHandle(0)}, Size: 2}})
	require.Equal(1, cat.GroupCount())

	cat.ResetGroups()
	require.Equal(0, cat.GroupCount())
	require.Empty(cat.Groups())
}

func TestHandleKindMismatchRejected(t *testing.T) {
	require := require.New(t)

	cat := New()
	cat.SetVars([]Variable{{ID: 0, Size: 1, Writable: true}})
	cat.SetGroups([]Group{{ID: 0, Writable: true, Size: 1}})

	// A group handle must not resolve as a variable, even at generation 1 index 0.
	groupHandle := cat.GroupHandle(0)
	_, ok := cat.Variable(groupHandle)
	require.False(ok)
}

func TestDecodeCurveRecord(t *testing.T) {
	require := require.New(t)

	record := []byte{0x01, 0x04, 0x00, 0x00, 0x00} // writable, block_size=1024, nblocks=0 -> max
	curve := DecodeCurveRecord(3, record)

	require.Equal(uint8(3), curve.ID)
	require.True(curve.Writable)
	require.Equal(uint16(1024), curve.BlockSize)
	require.Equal(uint16(0xFFFF), curve.NBlocks)
}

func TestDecodeFunctionByte(t *testing.T) {
	f := DecodeFunctionByte(1, 0x12)
	require.Equal(t, Function{ID: 1, InputSize: 1, OutputSize: 2}, f)
}

func TestVersionString(t *testing.T) {
	v := Version{Major: 1, Minor: 0, Revision: 0}
	require.Equal(t, "1.00.000", v.String())
}
