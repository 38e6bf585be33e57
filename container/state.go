package container

// State is the lifecycle state of an Engine.
type State uint8

const (
	StateUnparsed State = iota
	StateLocating
	StateDecoded
	StateEncoding
	StateDone
)

func (s State) String() string {
	switch s {
	case StateUnparsed:
		return "Unparsed"
	case StateLocating:
		return "Locating"
	case StateDecoded:
		return "Decoded"
	case StateEncoding:
		return "Encoding"
	case StateDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// canExport reports whether a session is available for Export.
func (s State) canExport() bool {
	return s == StateDecoded || s == StateDone
}
