package bytecode

import (
	"encoding/hex"
	"fmt"
	"iter"

	"github.com/arloliu/malie/endian"
	"github.com/arloliu/malie/format"
	"github.com/arloliu/malie/section"
)

// Instruction is one decoded instruction.
type Instruction struct {
	// Pos is the offset of the opcode byte within the walked slice.
	Pos    int
	Opcode format.Opcode
	// Operand aliases the walked slice.
	Operand []byte
	// Known is false for opcodes outside the instruction set; such opcodes are
	// treated as a single byte.
	Known bool
}

// Size returns the encoded size of the instruction in bytes.
func (in Instruction) Size() int {
	return 1 + len(in.Operand)
}

// Target returns the absolute offset a jump-class instruction points to.
func (in Instruction) Target() (uint32, bool) {
	if !in.Opcode.IsJump() || len(in.Operand) != section.JumpOperandSize {
		return 0, false
	}

	return endian.GetLittleEndianEngine().Uint32(in.Operand), true
}

func (in Instruction) String() string {
	if target, ok := in.Target(); ok {
		return fmt.Sprintf("%08X  %-12s 0x%X", in.Pos, in.Opcode, target)
	}
	if len(in.Operand) == 0 {
		return fmt.Sprintf("%08X  %s", in.Pos, in.Opcode)
	}

	return fmt.Sprintf("%08X  %-12s %s", in.Pos, in.Opcode, hex.EncodeToString(in.Operand))
}

// Walk decodes code sequentially from its first byte.
//
// The sequence ends when the next instruction would run past the slice, so a
// trailing partial instruction is never yielded.
func Walk(code []byte) iter.Seq[Instruction] {
	return func(yield func(Instruction) bool) {
		pos := 0
		for pos < len(code) {
			op := format.Opcode(code[pos])
			size, known := OperandSize(op)
			if pos+1+size > len(code) {
				return
			}

			in := Instruction{
				Pos:     pos,
				Opcode:  op,
				Operand: code[pos+1 : pos+1+size : pos+1+size],
				Known:   known,
			}
			if !yield(in) {
				return
			}
			pos += in.Size()
		}
	}
}
