package encoding

import (
	"testing"

	"github.com/arloliu/malie/endian"
	"github.com/arloliu/malie/errs"
	"github.com/arloliu/malie/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestDecodeStringTable(t *testing.T) {
	data, layout := sampleLabels().Build()

	entries, err := DecodeStringTable(data, layout.Regions.OffsetTablePos, layout.Regions.StringTablePos)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, "hello", entries[0].Text)
	require.Equal(t, uint32(0), entries[0].Offset)
	require.Equal(t, uint32(10), entries[0].Length)
	require.Equal(t, "world", entries[1].Text)
	require.Equal(t, uint32(12), entries[1].Offset)
	require.Equal(t, 1, entries[1].Index)
}

func TestStringTable_UnchangedRoundTrip(t *testing.T) {
	tests := [][]string{
		nil,
		{"hello", "world"},
		{"", "line\r\nbreak", "こんにちは"},
	}
	for _, strs := range tests {
		c := sampleLabels()
		c.Strings = strs
		data, layout := c.Build()

		entries, err := DecodeStringTable(data, layout.Regions.OffsetTablePos, layout.Regions.StringTablePos)
		require.NoError(t, err)

		texts := make([]string, len(entries))
		for i, e := range entries {
			texts[i] = e.Text
		}
		out, err := EncodeStringTable(entries, texts)
		require.NoError(t, err)
		require.Equal(t, data[layout.Regions.OffsetTablePos:], out)
	}
}

func TestStringTableEncoder_Edited(t *testing.T) {
	data, layout := sampleLabels().Build()
	entries, err := DecodeStringTable(data, layout.Regions.OffsetTablePos, layout.Regions.StringTablePos)
	require.NoError(t, err)

	enc := NewStringTableEncoder(len(entries))
	defer enc.Reset()
	require.NoError(t, enc.Write(entries[0], "hello"))
	require.NoError(t, enc.Write(entries[1], "hi"))
	require.Equal(t, 2, enc.Len())

	c := sampleLabels()
	c.Strings = []string{"hello", "hi"}
	want, wantLayout := c.Build()
	require.Equal(t, want[wantLayout.Regions.OffsetTablePos:], enc.Bytes())
	require.Equal(t, len(want)-wantLayout.Regions.OffsetTablePos, enc.Size())

	prefix := []byte{0xAA}
	require.Equal(t, append([]byte{0xAA}, enc.Bytes()...), enc.AppendTo(prefix))
}

func TestDecodeStringTable_Errors(t *testing.T) {
	engine := endian.GetLittleEndianEngine()
	data, layout := sampleLabels().Build()
	r := layout.Regions

	t.Run("count disagrees with length field position", func(t *testing.T) {
		bad := append([]byte{}, data...)
		engine.PutUint32(bad[r.OffsetTablePos:], 3)
		_, err := DecodeStringTable(bad, r.OffsetTablePos, r.StringTablePos)
		require.ErrorIs(t, err, errs.ErrInvalidOffsetEntrySize)
	})

	t.Run("string past the stream", func(t *testing.T) {
		bad := append([]byte{}, data...)
		// Length of the second entry.
		engine.PutUint32(bad[r.OffsetTablePos+4+8+4:], 1000)
		_, err := DecodeStringTable(bad, r.OffsetTablePos, r.StringTablePos)
		require.ErrorIs(t, err, errs.ErrTruncatedStream)
	})

	t.Run("count field past the stream", func(t *testing.T) {
		_, err := DecodeStringTable(data, len(data)-2, len(data))
		require.ErrorIs(t, err, errs.ErrTruncatedStream)
	})
}

func TestEncodeStringTable_PartitionMismatch(t *testing.T) {
	_, err := EncodeStringTable([]StringEntry{{Text: "a", Raw: testutil.UTF16("a")}}, nil)
	require.ErrorIs(t, err, errs.ErrPartitionMismatch)
}
