package locate

import "github.com/arloliu/malie/section"

// bytecodeMarkers are opcode bytes that dominate the first instructions of a
// bytecode block (push/pop, jz, short call, push value) and rarely appear as the
// low byte of a label code unit.
var bytecodeMarkers = [256]bool{
	0x02: true,
	0x04: true,
	0x06: true,
	0x07: true,
	0x0D: true,
	0x0E: true,
	0x11: true,
}

// ScoreBytecode counts marker bytes at even positions within the first
// BytecodeProbeBytes bytes of window. Even positions are the low bytes of
// UTF-16LE code units.
func ScoreBytecode(window []byte) int {
	n := min(len(window), section.BytecodeProbeBytes)
	score := 0
	for i := 0; i < n; i += 2 {
		if bytecodeMarkers[window[i]] {
			score++
		}
	}

	return score
}

// LooksLikeBytecode reports whether a label candidate is more likely the start
// of the bytecode block than label text.
//
// The heuristic can misclassify text that happens to resemble bytecode; it is
// kept as-is and callers surface a cut-short label block as a warning.
func LooksLikeBytecode(window []byte) bool {
	return ScoreBytecode(window) >= section.BytecodeScoreThreshold
}
