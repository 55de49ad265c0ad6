package client

import (
	"context"
	"fmt"

	"github.com/arloliu/go-sllp/catalog"
	"github.com/arloliu/go-sllp/wire"
)

// ReadVar issues VAR_READ for the variable h and returns its current value.
func (c *Client) ReadVar(ctx context.Context, h catalog.Handle) ([]byte, error) {
	v, ok := c.catalog.Variable(h)
	if !ok {
		return nil, fmt.Errorf("%w: unknown variable handle %s", ErrParamInvalid, h)
	}

	op, payload, err := c.exchange(ctx, wire.OpVarRead, []byte{v.ID})
	if err != nil {
		return nil, err
	}
	if err := expectOpcode(wire.OpVarValue, op); err != nil {
		return nil, err
	}
	if len(payload) != v.Size {
		return nil, fmt.Errorf("%w: expected %d value bytes, got %d", ErrComm, v.Size, len(payload))
	}

	return payload, nil
}

// WriteVar issues VAR_WRITE for the variable h with value, which must be
// exactly v.Size bytes.
func (c *Client) WriteVar(ctx context.Context, h catalog.Handle, value []byte) error {
	v, ok := c.catalog.Variable(h)
	if !ok {
		return fmt.Errorf("%w: unknown variable handle %s", ErrParamInvalid, h)
	}
	if !v.Writable {
		return fmt.Errorf("%w: variable %d is not writable", ErrParamInvalid, v.ID)
	}
	if value == nil || len(value) != v.Size {
		return fmt.Errorf("%w: value must be exactly %d bytes", ErrParamInvalid, v.Size)
	}

	payload := make([]byte, 1+v.Size)
	payload[0] = v.ID
	copy(payload[1:], value)

	op, _, err := c.exchange(ctx, wire.OpVarWrite, payload)
	if err != nil {
		return err
	}

	return expectOpcode(wire.OpOK, op)
}

// WriteReadVars issues VAR_WRITE_READ: writes writeValue to writeVar, then
// returns the current value of readVar in a single exchange.
func (c *Client) WriteReadVars(ctx context.Context, writeVar catalog.Handle, writeValue []byte, readVar catalog.Handle) ([]byte, error) {
	wv, ok := c.catalog.Variable(writeVar)
	if !ok {
		return nil, fmt.Errorf("%w: unknown write variable handle %s", ErrParamInvalid, writeVar)
	}
	if !wv.Writable {
		return nil, fmt.Errorf("%w: variable %d is not writable", ErrParamInvalid, wv.ID)
	}
	rv, ok := c.catalog.Variable(readVar)
	if !ok {
		return nil, fmt.Errorf("%w: unknown read variable handle %s", ErrParamInvalid, readVar)
	}
	if writeValue == nil || len(writeValue) != wv.Size {
		return nil, fmt.Errorf("%w: write value must be exactly %d bytes", ErrParamInvalid, wv.Size)
	}

	payload := make([]byte, 2+wv.Size)
	payload[0] = wv.ID
	payload[1] = rv.ID
	copy(payload[2:], writeValue)

	op, respPayload, err := c.exchange(ctx, wire.OpVarWriteRead, payload)
	if err != nil {
		return nil, err
	}
	if err := expectOpcode(wire.OpVarValue, op); err != nil {
		return nil, err
	}
	if len(respPayload) != rv.Size {
		return nil, fmt.Errorf("%w: expected %d value bytes, got %d", ErrComm, rv.Size, len(respPayload))
	}

	return respPayload, nil
}

// ReadGroup issues GROUP_READ for the group h and returns the concatenated
// values of its member variables, in order.
func (c *Client) ReadGroup(ctx context.Context, h catalog.Handle) ([]byte, error) {
	g, ok := c.catalog.Group(h)
	if !ok {
		return nil, fmt.Errorf("%w: unknown group handle %s", ErrParamInvalid, h)
	}

	op, payload, err := c.exchange(ctx, wire.OpGroupRead, []byte{g.ID})
	if err != nil {
		return nil, err
	}
	if err := expectOpcode(wire.OpGroupValues, op); err != nil {
		return nil, err
	}
	if len(payload) != g.Size {
		return nil, fmt.Errorf("%w: expected %d value bytes, got %d", ErrComm, g.Size, len(payload))
	}

	return payload, nil
}

// WriteGroup issues GROUP_WRITE for the group h with values, which must be
// exactly g.Size bytes.
func (c *Client) WriteGroup(ctx context.Context, h catalog.Handle, values []byte) error {
	g, ok := c.catalog.Group(h)
	if !ok {
		return fmt.Errorf("%w: unknown group handle %s", ErrParamInvalid, h)
	}
	if !g.Writable {
		return fmt.Errorf("%w: group %d is not writable", ErrParamInvalid, g.ID)
	}
	if values == nil || len(values) != g.Size {
		return fmt.Errorf("%w: values must be exactly %d bytes", ErrParamInvalid, g.Size)
	}

	payload := make([]byte, 1+g.Size)
	payload[0] = g.ID
	copy(payload[1:], values)

	op, _, err := c.exchange(ctx, wire.OpGroupWrite, payload)
	if err != nil {
		return err
	}

	return expectOpcode(wire.OpOK, op)
}

// BinOpVar issues VAR_BIN_OP, applying op with mask to the variable h.
func (c *Client) BinOpVar(ctx context.Context, op wire.BinOp, h catalog.Handle, mask []byte) error {
	if !op.Valid() {
		return fmt.Errorf("%w: bin-op code %d is not one of the six defined operations", ErrParamOutOfRange, op)
	}

	v, ok := c.catalog.Variable(h)
	if !ok {
		return fmt.Errorf("%w: unknown variable handle %s", ErrParamInvalid, h)
	}
	if !v.Writable {
		return fmt.Errorf("%w: variable %d is not writable", ErrParamInvalid, v.ID)
	}
	if mask == nil || len(mask) != v.Size {
		return fmt.Errorf("%w: mask must be exactly %d bytes", ErrParamInvalid, v.Size)
	}

	code, _ := op.Code()
	payload := make([]byte, 2+v.Size)
	payload[0] = v.ID
	payload[1] = code
	copy(payload[2:], mask)

	respOp, _, err := c.exchange(ctx, wire.OpVarBinOp, payload)
	if err != nil {
		return err
	}

	return expectOpcode(wire.OpOK, respOp)
}

// BinOpGroup issues GROUP_BIN_OP, applying op with mask to the group h.
func (c *Client) BinOpGroup(ctx context.Context, op wire.BinOp, h catalog.Handle, mask []byte) error {
	if !op.Valid() {
		return fmt.Errorf("%w: bin-op code %d is not one of the six defined operations", ErrParamOutOfRange, op)
	}

	g, ok := c.catalog.Group(h)
	if !ok {
		return fmt.Errorf("%w: unknown group handle %s", ErrParamInvalid, h)
	}
	if !g.Writable {
		return fmt.Errorf("%w: group %d is not writable", ErrParamInvalid, g.ID)
	}
	if mask == nil || len(mask) != g.Size {
		return fmt.Errorf("%w: mask must be exactly %d bytes", ErrParamInvalid, g.Size)
	}

	code, _ := op.Code()
	payload := make([]byte, 2+g.Size)
	payload[0] = g.ID
	payload[1] = code
	copy(payload[2:], mask)

	respOp, _, err := c.exchange(ctx, wire.OpGroupBinOp, payload)
	if err != nil {
		return err
	}

	return expectOpcode(wire.OpOK, respOp)
}

// CreateGroup issues GROUP_CREATE with the given member variables (at
// least one), then repopulates the group catalog (spec.md §4.F
// post-condition).
func (c *Client) CreateGroup(ctx context.Context, vars []catalog.Handle) error {
	if len(vars) == 0 {
		return fmt.Errorf("%w: at least one variable is required to create a group", ErrParamInvalid)
	}

	ids := make([]byte, len(vars))
	for i, h := range vars {
		v, ok := c.catalog.Variable(h)
		if !ok {
			return fmt.Errorf("%w: unknown variable handle %s", ErrParamInvalid, h)
		}
		ids[i] = v.ID
	}

	op, _, err := c.exchange(ctx, wire.OpGroupCreate, ids)
	if err != nil {
		return err
	}
	if err := expectOpcode(wire.OpOK, op); err != nil {
		return err
	}

	return c.updateGroups(ctx)
}

// RemoveAllGroups issues GROUP_REMOVE_ALL, then repopulates the group
// catalog. The server-reserved first three groups are re-created by the
// server itself (spec.md §3 invariant 4); this client does not special-case
// them.
func (c *Client) RemoveAllGroups(ctx context.Context) error {
	op, _, err := c.exchange(ctx, wire.OpGroupRemoveAll, nil)
	if err != nil {
		return err
	}
	if err := expectOpcode(wire.OpOK, op); err != nil {
		return err
	}

	return c.updateGroups(ctx)
}

// CurveBlockRequest issues CURVE_BLOCK_REQUEST for curve h at the given
// block offset and returns the returned block's data.
func (c *Client) CurveBlockRequest(ctx context.Context, h catalog.Handle, offset uint16) ([]byte, error) {
	curve, ok := c.catalog.Curve(h)
	if !ok {
		return nil, fmt.Errorf("%w: unknown curve handle %s", ErrParamInvalid, h)
	}
	if offset > curve.NBlocks {
		return nil, fmt.Errorf("%w: offset %d past nblocks %d", ErrParamOutOfRange, offset, curve.NBlocks)
	}

	payload := []byte{curve.ID, byte(offset >> 8), byte(offset)}

	op, respPayload, err := c.exchange(ctx, wire.OpCurveBlockReq, payload)
	if err != nil {
		return nil, err
	}
	if err := expectOpcode(wire.OpCurveBlock, op); err != nil {
		return nil, err
	}
	if len(respPayload) < wire.CurveBlockInfo {
		return nil, fmt.Errorf("%w: curve block response shorter than prefix", ErrComm)
	}

	data := make([]byte, len(respPayload)-wire.CurveBlockInfo)
	copy(data, respPayload[wire.CurveBlockInfo:])

	return data, nil
}

// CurveBlockSend issues CURVE_BLOCK, writing data to curve h at the given
// block offset.
func (c *Client) CurveBlockSend(ctx context.Context, h catalog.Handle, offset uint16, data []byte) error {
	curve, ok := c.catalog.Curve(h)
	if !ok {
		return fmt.Errorf("%w: unknown curve handle %s", ErrParamInvalid, h)
	}
	if !curve.Writable {
		return fmt.Errorf("%w: curve %d is not writable", ErrParamInvalid, curve.ID)
	}
	if offset > curve.NBlocks {
		return fmt.Errorf("%w: offset %d past nblocks %d", ErrParamOutOfRange, offset, curve.NBlocks)
	}
	if len(data) > int(curve.BlockSize) {
		return fmt.Errorf("%w: data length %d exceeds block size %d", ErrParamOutOfRange, len(data), curve.BlockSize)
	}

	payload := make([]byte, wire.CurveBlockInfo+len(data))
	payload[0] = curve.ID
	payload[1] = byte(offset >> 8)
	payload[2] = byte(offset)
	copy(payload[wire.CurveBlockInfo:], data)

	op, _, err := c.exchange(ctx, wire.OpCurveBlock, payload)
	if err != nil {
		return err
	}

	return expectOpcode(wire.OpOK, op)
}

// RecalcChecksum issues CURVE_RECALC_CSUM for curve h, then repopulates the
// curve catalog (spec.md §4.F post-condition). If repopulation fails, that
// failure is reported as RecalcChecksum's own failure.
func (c *Client) RecalcChecksum(ctx context.Context, h catalog.Handle) error {
	curve, ok := c.catalog.Curve(h)
	if !ok {
		return fmt.Errorf("%w: unknown curve handle %s", ErrParamInvalid, h)
	}

	op, _, err := c.exchange(ctx, wire.OpCurveRecalcCsum, []byte{curve.ID})
	if err != nil {
		return err
	}
	if err := expectOpcode(wire.OpOK, op); err != nil {
		return err
	}

	return c.updateCurves(ctx)
}

// FuncExecute issues FUNC_EXECUTE for function h with input, writing the
// result into output (which must be exactly f.OutputSize bytes when
// f.OutputSize > 0).
//
// A FUNC_ERROR response is not a transport failure: it's a successful call
// whose domain error byte is returned as errByte, with output left
// untouched (spec.md §4.F func_execute result semantics, §9 "Function
// error vs transport error").
func (c *Client) FuncExecute(ctx context.Context, h catalog.Handle, input []byte, output []byte) (errByte byte, err error) {
	f, ok := c.catalog.Function(h)
	if !ok {
		return 0, fmt.Errorf("%w: unknown function handle %s", ErrParamInvalid, h)
	}
	if f.InputSize > 0 && (input == nil || len(input) != f.InputSize) {
		return 0, fmt.Errorf("%w: input must be exactly %d bytes", ErrParamInvalid, f.InputSize)
	}
	if f.OutputSize > 0 && (output == nil || len(output) != f.OutputSize) {
		return 0, fmt.Errorf("%w: output buffer must be exactly %d bytes", ErrParamInvalid, f.OutputSize)
	}

	payload := make([]byte, 1+f.InputSize)
	payload[0] = f.ID
	if f.InputSize > 0 {
		copy(payload[1:], input)
	}

	op, respPayload, err := c.exchange(ctx, wire.OpFuncExecute, payload)
	if err != nil {
		return 0, err
	}

	switch op {
	case wire.OpFuncReturn:
		if f.OutputSize > 0 {
			if len(respPayload) < f.OutputSize {
				return 0, fmt.Errorf("%w: expected %d output bytes, got %d", ErrComm, f.OutputSize, len(respPayload))
			}
			copy(output, respPayload[:f.OutputSize])
		}
		return 0, nil
	case wire.OpFuncError:
		if len(respPayload) < 1 {
			return 0, fmt.Errorf("%w: FUNC_ERROR response missing error byte", ErrComm)
		}
		return respPayload[0], nil
	default:
		return 0, fmt.Errorf("%w: expected FUNC_RETURN or FUNC_ERROR, got %s", ErrComm, op)
	}
}
