package container

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arloliu/malie/encoding"
	"github.com/arloliu/malie/endian"
	"github.com/arloliu/malie/errs"
	"github.com/arloliu/malie/format"
	"github.com/arloliu/malie/internal/logging"
	"github.com/arloliu/malie/internal/testutil"
	"github.com/arloliu/malie/locate"
	"github.com/stretchr/testify/require"
)

func sampleContainer() testutil.Container {
	return testutil.Container{
		Labels: []testutil.Label{
			{Text: "MALIE_LABEL"},
			{Text: "scene_01", Padded: true},
			{Text: "Alice"},
		},
		Bytecode: testutil.Jump(byte(format.OpJmp), 32),
		Strings:  []string{"hello", "world"},
	}
}

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()

	engine, err := NewEngine(opts...)
	require.NoError(t, err)

	return engine
}

func TestEngine_RoundTripIdentity(t *testing.T) {
	tests := []struct {
		name      string
		container testutil.Container
	}{
		{"sample", sampleContainer()},
		{"no strings", testutil.Container{
			Labels: []testutil.Label{{Text: "MALIE_LABEL"}, {Text: "x"}},
		}},
		{"padded last label", testutil.Container{
			Labels:  []testutil.Label{{Text: "MALIE_LABEL"}, {Text: "x", Padded: true}},
			Strings: []string{"a"},
		}},
		{"control characters", testutil.Container{
			Labels:  []testutil.Label{{Text: "MALIE_LABEL"}, {Text: "選択肢"}},
			Strings: []string{"\tline one\nline two\r\n", "", "こんにちは"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, layout := tt.container.Build()
			engine := newEngine(t)

			texts, err := engine.Import(data)
			require.NoError(t, err)
			require.Equal(t, StateDecoded, engine.State())
			require.Equal(t, layout.Regions, engine.Session().Regions())
			require.Len(t, texts, len(tt.container.Labels)+len(tt.container.Strings))

			out, err := engine.Export(texts)
			require.NoError(t, err)
			require.Equal(t, data, out)
			require.Equal(t, StateDone, engine.State())

			stats := engine.LastExport()
			require.Zero(t, stats.Patched)
			require.Zero(t, stats.Moved)
			require.Zero(t, stats.LabelDelta)
			require.Equal(t, len(data), stats.Size)
		})
	}
}

func TestEngine_Import(t *testing.T) {
	data, layout := sampleContainer().Build()
	engine := newEngine(t)

	texts, err := engine.Import(data)
	require.NoError(t, err)
	require.Equal(t, []string{"MALIE_LABEL", "scene_01", "Alice", "hello", "world"}, texts)

	s := engine.Session()
	require.Equal(t, 3, s.LabelCount())
	require.Equal(t, 2, s.StringCount())
	require.Equal(t, format.StrategyTrailingLength, s.Strategy())
	require.Equal(t, testutil.DefaultHeader, s.Header())
	require.Equal(t, data[layout.Regions.LabelEnd:layout.Regions.OffsetTablePos], s.Bytecode())
	require.Equal(t, len(data), s.Size())
	require.False(t, s.Truncated())

	// The engine keeps its own copy.
	data[layout.LabelOffsets[2]] = 'X'
	require.Equal(t, "Alice", s.Labels().Entries[2].Text)
	require.Equal(t, byte('A'), s.Source()[layout.LabelOffsets[2]])
}

func TestEngine_FixedLocatorScenario(t *testing.T) {
	c := testutil.Container{
		Labels:  []testutil.Label{{Text: "A"}, {Text: "BB"}},
		Strings: []string{"hello", "world"},
	}
	data, layout := c.Build()
	engine := newEngine(t, WithLocator(locate.Fixed{Regions: layout.Regions}))

	texts, err := engine.Import(data)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "BB", "hello", "world"}, texts)
	require.Equal(t, 2, engine.Session().LabelCount())

	texts[0] = "Z"
	out, err := engine.Export(texts)
	require.NoError(t, err)

	block, err := encoding.DecodeLabels(out, layout.Regions.LabelStart, layout.Regions.LabelEnd)
	require.NoError(t, err)
	require.Equal(t, []string{"Z", "BB"}, block.Texts())
	require.Equal(t, data[layout.Regions.OffsetTablePos:], out[layout.Regions.OffsetTablePos:])
	require.Equal(t, data[:layout.Regions.LabelStart], out[:layout.Regions.LabelStart])
}

func TestEngine_SignatureRequiredWithoutFixedLocator(t *testing.T) {
	c := testutil.Container{
		Labels:  []testutil.Label{{Text: "A"}, {Text: "BB"}},
		Strings: []string{"hello", "world"},
	}
	data, _ := c.Build()

	_, err := newEngine(t).Import(data)
	require.ErrorIs(t, err, errs.ErrFormatNotRecognized)
	require.ErrorIs(t, err, errs.ErrSignatureNotFound)
}

func TestEngine_JumpRelocation(t *testing.T) {
	c := testutil.Container{
		Labels: []testutil.Label{
			{Text: "MALIE_LABEL"},
			{Text: strings.Repeat("a", 33)},
			{Text: "target"},
		},
		Bytecode: testutil.Jump(byte(format.OpJz), 100),
		Strings:  []string{"hello"},
	}
	data, layout := c.Build()
	require.Equal(t, 100, layout.LabelOffsets[2])

	engine := newEngine(t)
	texts, err := engine.Import(data)
	require.NoError(t, err)

	texts[1] = strings.Repeat("a", 23)
	out, err := engine.Export(texts)
	require.NoError(t, err)

	stats := engine.LastExport()
	require.Equal(t, 1, stats.Jumps)
	require.Equal(t, 1, stats.Patched)
	require.Zero(t, stats.Missing)
	require.Equal(t, 1, stats.Moved)
	require.Equal(t, -20, stats.LabelDelta)

	reread := newEngine(t)
	edited, err := reread.Import(out)
	require.NoError(t, err)
	require.Equal(t, texts, edited)
	require.Equal(t, uint32(80), reread.Session().Labels().Entries[2].Offset)

	code := reread.Session().Bytecode()
	operand := code[len(testutil.Prologue)+1:]
	require.Equal(t, uint32(80), endian.GetLittleEndianEngine().Uint32(operand))
}

func TestEngine_MissingJumpTarget(t *testing.T) {
	c := sampleContainer()
	// Inside the label block but not at a label start.
	c.Bytecode = testutil.Jump(byte(format.OpJmp), 10)
	data, layout := c.Build()

	engine := newEngine(t)
	texts, err := engine.Import(data)
	require.NoError(t, err)

	texts[1] = "s"
	out, err := engine.Export(texts)
	require.NoError(t, err)
	require.Equal(t, 1, engine.LastExport().Missing)

	codeStart := layout.CodeStart + engine.LastExport().LabelDelta
	require.Equal(t, testutil.Jump(byte(format.OpJmp), 10), out[codeStart:codeStart+5])
}

func TestEngine_RetryWithTerminatorScan(t *testing.T) {
	// "\b" followed by a terminator reads as a payload length field that
	// matches the 8 bytes after it.
	c := sampleContainer()
	c.Strings = []string{"x\b", "abc"}
	data, layout := c.Build()

	engine := newEngine(t)
	texts, err := engine.Import(data)
	require.NoError(t, err)
	require.Equal(t, format.StrategyTerminatorScan, engine.Session().Strategy())
	require.Equal(t, layout.Regions, engine.Session().Regions())
	require.Equal(t, []string{"x\b", "abc"}, texts[3:])

	out, err := engine.Export(texts)
	require.NoError(t, err)
	require.Equal(t, data, out)

	single := newEngine(t, WithStrategies(format.StrategyTrailingLength))
	_, err = single.Import(data)
	require.ErrorIs(t, err, errs.ErrFormatNotRecognized)
	require.ErrorIs(t, err, errs.ErrInvalidOffsetEntrySize)
	require.Equal(t, StateUnparsed, single.State())
}

func TestEngine_TruncatedLabelBlock(t *testing.T) {
	data, layout := sampleContainer().Build()
	regions := layout.Regions
	// Claim the prologue and the first unit of the jump as label data.
	regions.LabelEnd += len(testutil.Prologue) + 2

	engine := newEngine(t, WithLocator(locate.Fixed{Regions: regions}))
	texts, err := engine.Import(data)
	require.NoError(t, err)

	s := engine.Session()
	require.True(t, s.Truncated())
	require.Equal(t, layout.Regions.LabelEnd, s.Regions().LabelEnd)
	require.Equal(t, regions.LabelEnd, s.Located().LabelEnd)

	out, err := engine.Export(texts)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestEngine_Export_Errors(t *testing.T) {
	engine := newEngine(t)

	_, err := engine.Export(nil)
	require.ErrorIs(t, err, errs.ErrNotDecoded)

	data, _ := sampleContainer().Build()
	texts, err := engine.Import(data)
	require.NoError(t, err)

	_, err = engine.Export(texts[:len(texts)-1])
	require.ErrorIs(t, err, errs.ErrPartitionMismatch)
	require.Equal(t, StateDecoded, engine.State())

	// Re-export reuses the session.
	first, err := engine.Export(texts)
	require.NoError(t, err)
	second, err := engine.Export(texts)
	require.NoError(t, err)
	require.Equal(t, first, second)

	// A failed import drops the session.
	_, err = engine.Import([]byte{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrFormatNotRecognized)
	require.Nil(t, engine.Session())
	_, err = engine.Export(texts)
	require.ErrorIs(t, err, errs.ErrNotDecoded)
}

func TestEngine_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, logging.LevelDebug, logging.FormatText)

	engine := newEngine(t, WithLogger(logger))
	_, err := engine.Import([]byte("not a container"))
	require.Error(t, err)
	require.Contains(t, buf.String(), "locate attempt failed")
	require.Contains(t, buf.String(), "strategy=TerminatorScan")

	buf.Reset()
	data, _ := sampleContainer().Build()
	texts, err := engine.Import(data)
	require.NoError(t, err)
	_, err = engine.Export(texts)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "container decoded")
	require.Contains(t, buf.String(), "container exported")
}

func TestNewEngine_Options(t *testing.T) {
	_, err := NewEngine(WithStrategies())
	require.ErrorIs(t, err, errs.ErrInvalidStrategyCount)

	_, err = NewEngine(WithStrategies(format.StrategyTerminatorScan, format.StrategyTrailingLength, format.StrategyTerminatorScan))
	require.ErrorIs(t, err, errs.ErrInvalidStrategyCount)

	_, err = NewEngine(WithLocator(nil))
	require.Error(t, err)

	engine, err := NewEngine(WithLogger(nil), WithStrategies(format.StrategyTerminatorScan))
	require.NoError(t, err)
	require.Equal(t, []format.LocateStrategy{format.StrategyTerminatorScan}, engine.strategies)
	require.Equal(t, StateUnparsed, engine.State())
}

func TestState_String(t *testing.T) {
	require.Equal(t, "Unparsed", StateUnparsed.String())
	require.Equal(t, "Locating", StateLocating.String())
	require.Equal(t, "Decoded", StateDecoded.String())
	require.Equal(t, "Encoding", StateEncoding.String())
	require.Equal(t, "Done", StateDone.String())
	require.Equal(t, "Unknown", State(42).String())
}

func TestEngine_EmptyLastStringRetries(t *testing.T) {
	// Two terminators in a row end the stream, so the trailing length scan
	// stops at the last terminator pair.
	c := sampleContainer()
	c.Strings = []string{"hello", ""}
	data, layout := c.Build()

	engine := newEngine(t)
	texts, err := engine.Import(data)
	require.NoError(t, err)
	require.Equal(t, format.StrategyTerminatorScan, engine.Session().Strategy())
	require.Equal(t, layout.Regions, engine.Session().Regions())
	require.Equal(t, []string{"hello", ""}, texts[3:])

	out, err := engine.Export(texts)
	require.NoError(t, err)
	require.Equal(t, data, out)
}
