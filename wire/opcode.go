package wire

// Opcode identifies an SLLP request or response message. Values are a
// single byte, assigned densely in the order the reference client issues
// or expects them; the shared protocol header that fixes these numbers
// server-side was not part of the retrieved sources, so the assignment
// below is this module's own enumeration (see DESIGN.md, "Open Question
// decisions").
type Opcode uint8

const (
	OpQueryVersion Opcode = iota // CMD_QUERY_VERSION
	OpErrOpNotSupported          // CMD_ERR_OP_NOT_SUPPORTED

	OpVarQueryList // CMD_VAR_QUERY_LIST
	OpVarList      // CMD_VAR_LIST

	OpGroupQueryList // CMD_GROUP_QUERY_LIST
	OpGroupList      // CMD_GROUP_LIST
	OpGroupQuery     // CMD_GROUP_QUERY
	OpGroup          // CMD_GROUP

	OpCurveQueryList // CMD_CURVE_QUERY_LIST
	OpCurveList      // CMD_CURVE_LIST
	OpCurveQueryCsum // CMD_CURVE_QUERY_CSUM
	OpCurveCsum      // CMD_CURVE_CSUM

	OpFuncQueryList // CMD_FUNC_QUERY_LIST
	OpFuncList      // CMD_FUNC_LIST

	OpOK // CMD_OK

	OpVarRead      // CMD_VAR_READ
	OpVarValue     // CMD_VAR_VALUE
	OpVarWrite     // CMD_VAR_WRITE
	OpVarWriteRead // CMD_VAR_WRITE_READ

	OpGroupRead   // CMD_GROUP_READ
	OpGroupValues // CMD_GROUP_VALUES
	OpGroupWrite  // CMD_GROUP_WRITE

	OpVarBinOp   // CMD_VAR_BIN_OP
	OpGroupBinOp // CMD_GROUP_BIN_OP

	OpGroupCreate     // CMD_GROUP_CREATE
	OpGroupRemoveAll  // CMD_GROUP_REMOVE_ALL
	OpCurveBlockReq   // CMD_CURVE_BLOCK_REQUEST
	OpCurveBlock      // CMD_CURVE_BLOCK
	OpCurveRecalcCsum // CMD_CURVE_RECALC_CSUM

	OpFuncExecute // CMD_FUNC_EXECUTE
	OpFuncReturn  // CMD_FUNC_RETURN
	OpFuncError   // CMD_FUNC_ERROR
)

var opcodeNames = map[Opcode]string{
	OpQueryVersion:       "query_version",
	OpErrOpNotSupported:  "err_op_not_supported",
	OpVarQueryList:       "var_query_list",
	OpVarList:            "var_list",
	OpGroupQueryList:     "group_query_list",
	OpGroupList:          "group_list",
	OpGroupQuery:         "group_query",
	OpGroup:              "group",
	OpCurveQueryList:     "curve_query_list",
	OpCurveList:          "curve_list",
	OpCurveQueryCsum:     "curve_query_csum",
	OpCurveCsum:          "curve_csum",
	OpFuncQueryList:      "func_query_list",
	OpFuncList:           "func_list",
	OpOK:                 "ok",
	OpVarRead:            "var_read",
	OpVarValue:           "var_value",
	OpVarWrite:           "var_write",
	OpVarWriteRead:       "var_write_read",
	OpGroupRead:          "group_read",
	OpGroupValues:        "group_values",
	OpGroupWrite:         "group_write",
	OpVarBinOp:           "var_bin_op",
	OpGroupBinOp:         "group_bin_op",
	OpGroupCreate:        "group_create",
	OpGroupRemoveAll:     "group_remove_all",
	OpCurveBlockReq:      "curve_block_request",
	OpCurveBlock:         "curve_block",
	OpCurveRecalcCsum:    "curve_recalc_csum",
	OpFuncExecute:        "func_execute",
	OpFuncReturn:         "func_return",
	OpFuncError:          "func_error",
}

// String returns a short diagnostic name for the opcode, or "unknown" if it
// isn't one of the opcodes defined by this package.
func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "unknown"
}

// BinOp identifies one of the six bitwise operations applicable to a
// variable or group payload via VAR_BIN_OP / GROUP_BIN_OP.
type BinOp uint8

const (
	BinOpAnd BinOp = iota
	BinOpOr
	BinOpXor
	BinOpSet
	BinOpClear
	BinOpToggle

	binOpCount
)

var binOpCodes = map[BinOp]byte{
	BinOpAnd:    'A',
	BinOpOr:     'O',
	BinOpXor:    'X',
	BinOpSet:    'S',
	BinOpClear:  'C',
	BinOpToggle: 'T',
}

// Code returns the single ASCII byte the protocol uses to encode this
// bin-op in a request payload, and whether op is one of the six defined
// operations.
func (op BinOp) Code() (byte, bool) {
	c, ok := binOpCodes[op]
	return c, ok
}

// Valid reports whether op is one of the six defined bin-op kinds.
func (op BinOp) Valid() bool {
	return op < binOpCount
}
