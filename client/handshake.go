package client

import (
	"context"
	"fmt"

	"github.com/arloliu/go-sllp/catalog"
	"github.com/arloliu/go-sllp/wire"
)

// Init runs the handshake (spec.md §4.E): version query, then variables,
// groups, curves and functions population, in that order, stopping at the
// first failure. On success the client is marked Initialized.
func (c *Client) Init(ctx context.Context) error {
	if err := c.queryVersion(ctx); err != nil {
		return err
	}
	if err := c.updateVars(ctx); err != nil {
		return err
	}
	if err := c.updateGroups(ctx); err != nil {
		return err
	}
	if err := c.updateCurves(ctx); err != nil {
		return err
	}
	if err := c.updateFuncs(ctx); err != nil {
		return err
	}

	c.initialized = true
	c.logger.Info("sllp handshake complete",
		"version", c.catalog.Version().String(),
		"vars", c.catalog.VarCount(),
		"groups", c.catalog.GroupCount(),
		"curves", c.catalog.CurveCount(),
		"funcs", c.catalog.FuncCount(),
	)

	return nil
}

// queryVersion implements handshake step 1. A response opcode of
// OpErrOpNotSupported is not a failure: it is the legacy server's way of
// saying "version 1.0" (spec.md §4.E step 1, §7 ErrOpNotSupported).
func (c *Client) queryVersion(ctx context.Context) error {
	op, payload, err := c.exchange(ctx, wire.OpQueryVersion, nil)
	if err != nil {
		return err
	}

	if op == wire.OpErrOpNotSupported {
		c.catalog.SetVersion(catalog.Version{Major: 1, Minor: 0, Revision: 0})
		return nil
	}

	if len(payload) < 3 {
		return fmt.Errorf("%w: version response too short: %d bytes", ErrComm, len(payload))
	}

	c.catalog.SetVersion(catalog.Version{Major: payload[0], Minor: payload[1], Revision: payload[2]})

	return nil
}

// updateVars implements handshake step 2.
func (c *Client) updateVars(ctx context.Context) error {
	op, payload, err := c.exchange(ctx, wire.OpVarQueryList, nil)
	if err != nil {
		return err
	}
	if err := expectOpcode(wire.OpVarList, op); err != nil {
		return err
	}

	vars := make([]catalog.Variable, len(payload))
	for i, b := range payload {
		vars[i] = catalog.DecodeVariableByte(uint8(i), b) //nolint:gosec
	}
	c.catalog.SetVars(vars)

	return nil
}

// updateGroups implements handshake step 3, including the §9-prescribed
// fix: any failure during per-group population fully clears the group
// list (not just its count) before surfacing ErrComm.
func (c *Client) updateGroups(ctx context.Context) error {
	op, payload, err := c.exchange(ctx, wire.OpGroupQueryList, nil)
	if err != nil {
		return err
	}
	if err := expectOpcode(wire.OpGroupList, op); err != nil {
		return err
	}

	groups := make([]catalog.Group, len(payload))
	for i, b := range payload {
		writable, _ := catalog.DecodeGroupDescriptorByte(b)
		groups[i] = catalog.Group{ID: uint8(i), Writable: writable} //nolint:gosec
	}

	for i := range groups {
		gop, gpayload, err := c.exchange(ctx, wire.OpGroupQuery, []byte{uint8(i)}) //nolint:gosec
		if err != nil {
			c.catalog.ResetGroups()
			return err
		}
		if err := expectOpcode(wire.OpGroup, gop); err != nil {
			c.catalog.ResetGroups()
			return err
		}

		vars := make([]catalog.Handle, len(gpayload))
		size := 0
		for j, varID := range gpayload {
			h := c.catalog.VarHandle(uint16(varID))
			v, ok := c.catalog.Variable(h)
			if !ok {
				c.catalog.ResetGroups()
				return fmt.Errorf("%w: group %d references unknown variable %d", ErrComm, i, varID)
			}
			vars[j] = h
			size += v.Size
		}

		groups[i].Vars = vars
		groups[i].Size = size
	}

	c.catalog.SetGroups(groups)

	return nil
}

// updateCurves implements handshake step 4. Per-curve checksum fetch
// failure is non-fatal: the field is left zero and population continues
// (spec.md §9 "non-fatal checksum fetch").
func (c *Client) updateCurves(ctx context.Context) error {
	op, payload, err := c.exchange(ctx, wire.OpCurveQueryList, nil)
	if err != nil {
		return err
	}
	if err := expectOpcode(wire.OpCurveList, op); err != nil {
		return err
	}
	if len(payload)%wire.CurveListInfo != 0 {
		return fmt.Errorf("%w: curve list payload size %d not a multiple of %d", ErrComm, len(payload), wire.CurveListInfo)
	}

	count := len(payload) / wire.CurveListInfo
	curves := make([]catalog.Curve, count)

	for i := 0; i < count; i++ {
		record := payload[i*wire.CurveListInfo : (i+1)*wire.CurveListInfo]
		curves[i] = catalog.DecodeCurveRecord(uint8(i), record) //nolint:gosec

		cop, cpayload, err := c.exchange(ctx, wire.OpCurveQueryCsum, []byte{uint8(i)}) //nolint:gosec
		if err != nil || cop != wire.OpCurveCsum || len(cpayload) < catalog.ChecksumSize {
			continue
		}
		copy(curves[i].Checksum[:], cpayload[:catalog.ChecksumSize])
	}

	c.catalog.SetCurves(curves)

	return nil
}

// updateFuncs implements handshake step 5.
func (c *Client) updateFuncs(ctx context.Context) error {
	op, payload, err := c.exchange(ctx, wire.OpFuncQueryList, nil)
	if err != nil {
		return err
	}
	if err := expectOpcode(wire.OpFuncList, op); err != nil {
		return err
	}

	funcs := make([]catalog.Function, len(payload))
	for i, b := range payload {
		funcs[i] = catalog.DecodeFunctionByte(uint8(i), b) //nolint:gosec
	}
	c.catalog.SetFuncs(funcs)

	return nil
}
