// Package bytecode walks Malie VM bytecode and relocates jump targets that point
// into the label block.
//
// Instructions are a 1-byte opcode followed by a fixed-size operand. Jump-class
// opcodes (jmp, jnz, jz) carry a 4-byte absolute container offset; when labels
// move during export their operands are rewritten from a section.RelocationMap.
package bytecode
