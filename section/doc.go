// Package section defines the low-level binary structures and constants of a Malie
// script container.
//
// A container is an opaque byte stream with no header describing its own layout.
// Four boundaries are discovered by scanning (see the locate package) and kept in
// a Regions value:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (opaque, copied verbatim)                        │
//	├─────────────────────────────────────────────────────────┤ LabelStart
//	│ Label block                                             │
//	│  - UTF-16LE text, 0x0000 terminated                     │
//	│  - optional extra 0x0000 padding after an entry         │
//	├─────────────────────────────────────────────────────────┤ LabelEnd
//	│ Bytecode block                                          │
//	│  - opcode(1) + operand(N) instructions                  │
//	│  - jmp/jnz/jz operands are absolute label offsets       │
//	├─────────────────────────────────────────────────────────┤ OffsetTablePos
//	│ Offset table                                            │
//	│  - count (u32)                                          │
//	│  - count × OffsetEntry (8 bytes: offset u32, length u32)│
//	├─────────────────────────────────────────────────────────┤ StringTablePos
//	│ Payload length (u32)                                    │
//	│ Payload: UTF-16LE strings, each 0x0000 terminated       │
//	└─────────────────────────────────────────────────────────┘
//
// All integers are little-endian.
//
// The package also defines RelocationMap, the offset mapping produced when the
// label block is re-encoded and consumed when bytecode jump operands are patched.
package section
