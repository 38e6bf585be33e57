package format

import (
	"fmt"
	"strings"
)

type (
	Opcode          uint8
	LocateStrategy  uint8
	CompressionType uint8
	DumpFormat      uint8
)

// Malie VM opcodes. Only the jump-class opcodes (jmp, jnz, jz) carry an absolute
// offset that needs relocation.
const (
	OpJmp          Opcode = 0x00 // OpJmp jumps to an absolute offset.
	OpJnz          Opcode = 0x01 // OpJnz jumps to an absolute offset when the top of stack is non-zero.
	OpJz           Opcode = 0x02 // OpJz jumps to an absolute offset when the top of stack is zero.
	OpCall         Opcode = 0x03 // OpCall calls func:4 with param:1.
	OpCallShort    Opcode = 0x04 // OpCallShort calls func:1 with param:1.
	OpMaskEip      Opcode = 0x05
	OpPushR32      Opcode = 0x06
	OpPopR32       Opcode = 0x07
	OpPush         Opcode = 0x08 // OpPush pushes value:4.
	OpPushStr8     Opcode = 0x09 // OpPushStr8 pushes string index:1.
	OpPushStr16    Opcode = 0x0A // OpPushStr16 pushes string index:2.
	OpNone         Opcode = 0x0B
	OpPushStr32    Opcode = 0x0C // OpPushStr32 pushes string index:4.
	OpPushValue    Opcode = 0x0D // OpPushValue pushes value:4.
	OpPop          Opcode = 0x0E
	OpPushZero     Opcode = 0x0F
	OpUnknown10    Opcode = 0x10
	OpPushByte     Opcode = 0x11 // OpPushByte pushes value:1.
	OpPushSP       Opcode = 0x12
	OpNeg          Opcode = 0x13
	OpAdd          Opcode = 0x14
	OpSub          Opcode = 0x15
	OpMul          Opcode = 0x16
	OpDiv          Opcode = 0x17
	OpMod          Opcode = 0x18
	OpAnd          Opcode = 0x19
	OpOr           Opcode = 0x1A
	OpXor          Opcode = 0x1B
	OpNot          Opcode = 0x1C
	OpBool         Opcode = 0x1D
	OpLogicalAnd   Opcode = 0x1E
	OpLogicalOr    Opcode = 0x1F
	OpLogicalNot   Opcode = 0x20
	OpIsL          Opcode = 0x21
	OpIsLE         Opcode = 0x22
	OpIsNLE        Opcode = 0x23
	OpIsNL         Opcode = 0x24
	OpIsEQ         Opcode = 0x25
	OpIsNEQ        Opcode = 0x26
	OpShl          Opcode = 0x27
	OpSar          Opcode = 0x28
	OpInc          Opcode = 0x29
	OpDec          Opcode = 0x2A
	OpAddReg       Opcode = 0x2B
	OpDebug        Opcode = 0x2C
	OpCallFunc     Opcode = 0x2D // OpCallFunc calls func:4.
	OpAddFP        Opcode = 0x2E
	OpFPCopy       Opcode = 0x2F
	OpFPGet        Opcode = 0x30
	OpInitStack    Opcode = 0x31 // OpInitStack reserves n:4 stack slots.
	OpJmpShort     Opcode = 0x32 // OpJmpShort jumps by a relative offset:1.
	OpRet          Opcode = 0x33 // OpRet returns value:1.
	MaxKnownOpcode        = OpRet
)

const (
	StrategyTrailingLength LocateStrategy = 0x1 // StrategyTrailingLength matches the trailing payload length field.
	StrategyTerminatorScan LocateStrategy = 0x2 // StrategyTerminatorScan derives the last string length from its terminator.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	DumpYAML DumpFormat = 0x1 // DumpYAML is the human-editable project format.
	DumpCBOR DumpFormat = 0x2 // DumpCBOR is the compact binary project format.
)

var opcodeNames = [...]string{
	"jmp", "jnz", "jz", "call", "call.s", "mask", "push.r32", "pop.r32",
	"push", "pushstr.8", "pushstr.16", "none", "pushstr.32", "push.v", "pop", "push.0",
	"unk10", "push.b", "push.sp", "neg", "add", "sub", "mul", "div",
	"mod", "and", "or", "xor", "not", "bool", "land", "lor",
	"lnot", "isl", "isle", "isnle", "isnl", "iseq", "isneq", "shl",
	"sar", "inc", "dec", "addreg", "debug", "callf", "addfp", "fpcopy",
	"fpget", "initstack", "jmp.s", "ret",
}

func (o Opcode) String() string {
	if int(o) < len(opcodeNames) {
		return opcodeNames[o]
	}

	return fmt.Sprintf("op%02X", uint8(o))
}

// IsJump reports whether the opcode carries an absolute 4-byte jump target.
func (o Opcode) IsJump() bool {
	return o == OpJmp || o == OpJnz || o == OpJz
}

func (s LocateStrategy) String() string {
	switch s {
	case StrategyTrailingLength:
		return "TrailingLength"
	case StrategyTerminatorScan:
		return "TerminatorScan"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (d DumpFormat) String() string {
	switch d {
	case DumpYAML:
		return "YAML"
	case DumpCBOR:
		return "CBOR"
	default:
		return "Unknown"
	}
}

// ParseCompression parses a case-insensitive compression name.
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}

// ParseDumpFormat parses a case-insensitive project format name.
func ParseDumpFormat(name string) (DumpFormat, error) {
	switch strings.ToLower(name) {
	case "", "yaml", "yml":
		return DumpYAML, nil
	case "cbor":
		return DumpCBOR, nil
	default:
		return 0, fmt.Errorf("unknown dump format %q", name)
	}
}

// ParseLocateStrategy parses a case-insensitive strategy name such as
// "trailing-length" or "TerminatorScan".
func ParseLocateStrategy(name string) (LocateStrategy, error) {
	switch strings.ReplaceAll(strings.ToLower(name), "-", "") {
	case "trailinglength":
		return StrategyTrailingLength, nil
	case "terminatorscan":
		return StrategyTerminatorScan, nil
	default:
		return 0, fmt.Errorf("unknown locate strategy %q", name)
	}
}
