package container

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/arloliu/malie/bytecode"
	"github.com/arloliu/malie/encoding"
	"github.com/arloliu/malie/errs"
	"github.com/arloliu/malie/format"
	"github.com/arloliu/malie/internal/options"
	"github.com/arloliu/malie/internal/pool"
)

// ExportStats summarizes the last Export.
type ExportStats struct {
	bytecode.Stats
	// Moved is the number of labels written at a different offset.
	Moved int
	// LabelDelta is the label block size change in bytes.
	LabelDelta int
	// Size is the size of the exported container.
	Size int
}

// Engine imports a container, exposes its labels and strings as one flat list,
// and exports an edited list back to container bytes.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	*EngineConfig
	state   State
	session *Session
	last    ExportStats
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) (*Engine, error) {
	config := newEngineConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return &Engine{EngineConfig: config}, nil
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Session returns the decoded session, or nil before a successful Import.
func (e *Engine) Session() *Session {
	return e.session
}

// LastExport returns the statistics of the most recent successful Export.
func (e *Engine) LastExport() ExportStats {
	return e.last
}

// Import decodes data and returns every label text followed by every string
// text. data is copied.
//
// Each configured strategy is tried in order; when all fail the error wraps
// errs.ErrFormatNotRecognized and the last cause. A failed Import discards any
// previous session.
func (e *Engine) Import(data []byte) ([]string, error) {
	e.state = StateLocating
	e.session = nil
	e.last = ExportStats{}

	src := bytes.Clone(data)

	var lastErr error
	for attempt, strategy := range e.strategies {
		session, err := e.decode(src, strategy)
		if err == nil {
			e.session = session
			e.state = StateDecoded
			e.logDecoded(session)

			return session.Texts(), nil
		}

		lastErr = err
		e.logger.Warn("locate attempt failed",
			"attempt", attempt+1,
			"strategy", strategy.String(),
			"error", err)
	}

	e.state = StateUnparsed

	return nil, fmt.Errorf("%w: %w", errs.ErrFormatNotRecognized, lastErr)
}

func (e *Engine) decode(data []byte, strategy format.LocateStrategy) (*Session, error) {
	located, err := e.locator.Locate(data, strategy)
	if err != nil {
		return nil, err
	}

	labels, err := encoding.DecodeLabels(data, located.LabelStart, located.LabelEnd)
	if err != nil {
		return nil, fmt.Errorf("decode labels: %w", err)
	}

	strs, err := encoding.DecodeStringTable(data, located.OffsetTablePos, located.StringTablePos)
	if err != nil {
		return nil, fmt.Errorf("decode string table: %w", err)
	}

	regions := located
	regions.LabelEnd = labels.End

	return &Session{
		data:     data,
		regions:  regions,
		located:  located,
		strategy: strategy,
		labels:   labels,
		strings:  strs,
	}, nil
}

func (e *Engine) logDecoded(s *Session) {
	e.logger.Debug("container decoded",
		"strategy", s.strategy.String(),
		"regions", s.regions.String(),
		"labels", s.LabelCount(),
		"strings", s.StringCount())

	if s.Truncated() {
		e.logger.Warn("label block cut short at bytecode-like data",
			"located_end", s.located.LabelEnd,
			"decoded_end", s.regions.LabelEnd)
	}
}

// Export rebuilds the container from texts, which must hold one text per label
// followed by one per string, in Import order.
//
// Labels are re-encoded first; jump operands in the bytecode that pointed at a
// label are rewritten to the label's new offset. The header is copied verbatim.
func (e *Engine) Export(texts []string) ([]byte, error) {
	if !e.state.canExport() || e.session == nil {
		return nil, fmt.Errorf("%w: engine is %s", errs.ErrNotDecoded, e.state)
	}

	s := e.session
	nLabels := s.LabelCount()
	if len(texts) != nLabels+s.StringCount() {
		return nil, fmt.Errorf("%w: got %d texts, want %d labels + %d strings",
			errs.ErrPartitionMismatch, len(texts), nLabels, s.StringCount())
	}

	e.state = StateEncoding
	out, stats, err := e.export(s, texts[:nLabels], texts[nLabels:])
	if err != nil {
		e.state = StateDecoded
		return nil, err
	}

	e.last = stats
	e.state = StateDone
	e.logExported(stats)

	return out, nil
}

func (e *Engine) export(s *Session, labelTexts, stringTexts []string) ([]byte, ExportStats, error) {
	var stats ExportStats

	labels := encoding.NewLabelEncoder(s.regions.LabelStart, s.labels.Lead)
	defer labels.Reset()
	for i := range s.labels.Entries {
		if err := labels.Write(s.labels.Entries[i], labelTexts[i]); err != nil {
			return nil, stats, fmt.Errorf("encode labels: %w", err)
		}
	}
	relocations := labels.Relocations()

	table := encoding.NewStringTableEncoder(len(s.strings))
	defer table.Reset()
	for i := range s.strings {
		if err := table.Write(s.strings[i], stringTexts[i]); err != nil {
			return nil, stats, fmt.Errorf("encode string table: %w", err)
		}
	}

	code := bytes.Clone(s.Bytecode())
	stats.Stats = bytecode.Relocate(code, relocations, s.regions.LabelStart, s.regions.LabelEnd)
	stats.Moved = relocations.Moved()
	stats.LabelDelta = labels.Size() - s.regions.LabelSize()

	buf := pool.GetOutputBuffer()
	defer pool.PutOutputBuffer(buf)

	buf.Grow(len(s.Header()) + labels.Size() + len(code) + table.Size())
	buf.MustWrite(s.Header())
	buf.MustWrite(labels.Bytes())
	buf.MustWrite(code)
	buf.B = table.AppendTo(buf.B)

	out := bytes.Clone(buf.Bytes())
	stats.Size = len(out)

	return out, stats, nil
}

func (e *Engine) logExported(stats ExportStats) {
	attrs := []any{
		slog.Int("instructions", stats.Instructions),
		slog.Int("jumps", stats.Jumps),
		slog.Int("patched", stats.Patched),
		slog.Int("missing", stats.Missing),
		slog.Int("unknown_opcodes", stats.Unknown),
		slog.Int("moved_labels", stats.Moved),
		slog.Int("label_delta", stats.LabelDelta),
		slog.Int("size", stats.Size),
	}

	if stats.Missing > 0 {
		e.logger.Warn("jump targets without a label left unchanged", attrs...)
		return
	}
	e.logger.Debug("container exported", attrs...)
}
