package section

// Sizes of the fixed binary fields of a container.
const (
	CodeUnitSize     = 2 // text is stored as 2-byte UTF-16LE code units
	CountFieldSize   = 4 // string table entry count (u32)
	OffsetEntrySize  = 8 // offset(u32) + length(u32)
	PayloadFieldSize = 4 // total string payload length (u32)
	JumpOperandSize  = 4 // absolute jump target (u32)
)

// Label region scan parameters.
const (
	// LabelSignature is the ASCII marker that anchors the label block.
	LabelSignature = "MALIE_LABEL"
	// LabelStartWindow bounds the backward search for the delimiter preceding the signature.
	LabelStartWindow = 200
	// OffsetTableMargin keeps the forward label scan this many bytes clear of the offset table.
	OffsetTableMargin = 100
	// MaxLabelScanEntries caps the number of entries the forward label scan visits.
	MaxLabelScanEntries = 100000
	// MaxLabelChunkBytes splits over-long runs during the forward scan.
	MaxLabelChunkBytes = 500
	// LabelEndNullRun is the number of consecutive empty entries that ends the block.
	LabelEndNullRun = 3
)

// Bytecode-likelihood heuristic parameters.
const (
	// BytecodeProbeBytes is the window inspected at the start of a candidate entry.
	BytecodeProbeBytes = 20
	// BytecodeScoreThreshold is the minimum score that classifies a window as bytecode.
	BytecodeScoreThreshold = 5
)
