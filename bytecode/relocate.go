package bytecode

import (
	"github.com/arloliu/malie/endian"
	"github.com/arloliu/malie/section"
)

// Stats summarizes one relocation pass.
type Stats struct {
	// Instructions is the number of instructions walked.
	Instructions int
	// Jumps is the number of jump-class instructions with a target in the label block.
	Jumps int
	// Patched is the number of jump operands rewritten to a new offset.
	Patched int
	// Missing is the number of in-block targets with no relocation entry. They
	// are left unchanged.
	Missing int
	// Unknown is the number of opcodes outside the instruction set.
	Unknown int
}

// Relocate rewrites, in place, every jump operand of code whose target lies in
// [start, end) to the offset recorded for it in relocations.
//
// Targets are absolute container offsets, independent of where code itself sits.
func Relocate(code []byte, relocations section.RelocationMap, start, end int) Stats {
	engine := endian.GetLittleEndianEngine()

	var stats Stats
	for in := range Walk(code) {
		stats.Instructions++
		if !in.Known {
			stats.Unknown++
			continue
		}

		target, ok := in.Target()
		if !ok || int64(target) < int64(start) || int64(target) >= int64(end) {
			continue
		}
		stats.Jumps++

		to, ok := relocations.Lookup(target)
		if !ok {
			stats.Missing++
			continue
		}
		if to != target {
			engine.PutUint32(in.Operand, to)
			stats.Patched++
		}
	}

	return stats
}
