// Package errs defines the sentinel errors shared by all malie packages.
//
// Errors are returned wrapped with context (fmt.Errorf("...: %w", err)); callers
// match them with errors.Is.
package errs

import "errors"

// Container layout errors.
var (
	// ErrFormatNotRecognized is returned by Import when no region layout could be
	// found with any locate strategy. It wraps the last underlying cause.
	ErrFormatNotRecognized = errors.New("container format not recognized")
	// ErrSignatureNotFound indicates the MALIE_LABEL signature is absent.
	ErrSignatureNotFound = errors.New("label signature not found")
	// ErrStringTableNotFound indicates no self-referential payload length field was found.
	ErrStringTableNotFound = errors.New("string table length field not found")
	// ErrOffsetTableNotFound indicates the backward entry scan ran off the stream.
	ErrOffsetTableNotFound = errors.New("offset table not found")
	// ErrInvalidRegions indicates discovered region bounds violate their ordering.
	ErrInvalidRegions = errors.New("invalid region bounds")
	// ErrTruncatedStream indicates a read ran past the end of the container.
	ErrTruncatedStream = errors.New("truncated stream")
	// ErrInvalidOffsetEntrySize indicates a buffer too small for an offset table entry.
	ErrInvalidOffsetEntrySize = errors.New("invalid offset entry size")
)

// Session errors.
var (
	// ErrNotDecoded is returned by Export/Save before a successful Import/Open.
	ErrNotDecoded = errors.New("container not decoded")
	// ErrPartitionMismatch indicates the edited list length differs from what the last Open reported.
	ErrPartitionMismatch = errors.New("edited list does not match the opened partition")
	// ErrSegmentCountMismatch indicates segments were added or removed for an entry.
	ErrSegmentCountMismatch = errors.New("segment count mismatch")
	// ErrInvalidStrategyCount indicates an engine configured with no or too many locate strategies.
	ErrInvalidStrategyCount = errors.New("invalid locate strategy count")
)

// Project document errors.
var (
	// ErrSourceMismatch indicates a project document was dumped from a different container.
	ErrSourceMismatch = errors.New("project source does not match container")
	// ErrStaleEntry indicates a project entry's original text no longer matches the container.
	ErrStaleEntry = errors.New("stale project entry")
	// ErrInvalidEnvelope indicates a malformed project archive envelope.
	ErrInvalidEnvelope = errors.New("invalid project envelope")
	// ErrUnsupportedVersion indicates a project document or envelope version this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported project version")
)

// Configuration errors.
var (
	// ErrInvalidClassifier indicates a label classifier expression failed to compile.
	ErrInvalidClassifier = errors.New("invalid classifier expression")
	// ErrInvalidConfig indicates a configuration value outside its allowed set.
	ErrInvalidConfig = errors.New("invalid configuration")
)
