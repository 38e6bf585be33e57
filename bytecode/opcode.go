package bytecode

import "github.com/arloliu/malie/format"

// operandSizes holds the operand byte count of every known opcode. Opcodes not
// listed take no operand.
var operandSizes = [format.MaxKnownOpcode + 1]int{
	format.OpJmp:       4,
	format.OpJnz:       4,
	format.OpJz:        4,
	format.OpCall:      5,
	format.OpCallShort: 2,
	format.OpPush:      4,
	format.OpPushStr8:  1,
	format.OpPushStr16: 2,
	format.OpPushStr32: 4,
	format.OpPushValue: 4,
	format.OpPushByte:  1,
	format.OpCallFunc:  4,
	format.OpInitStack: 4,
	format.OpJmpShort:  1,
	format.OpRet:       1,
}

// Known reports whether op is part of the instruction set.
func Known(op format.Opcode) bool {
	return op <= format.MaxKnownOpcode
}

// OperandSize returns the number of operand bytes following op.
// Unknown opcodes report false.
func OperandSize(op format.Opcode) (int, bool) {
	if !Known(op) {
		return 0, false
	}

	return operandSizes[op], true
}
