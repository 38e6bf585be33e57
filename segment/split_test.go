package segment

import (
	"testing"

	"github.com/arloliu/malie/errs"
	"github.com/stretchr/testify/require"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Split
	}{
		{"empty", "", Split{Segments: []string{""}}},
		{"plain", "hello", Split{Segments: []string{"hello"}}},
		{"only control", "\r\n", Split{Prefix: "\r\n", Segments: []string{""}}},
		{
			"prefix and suffix", "\tHello\n",
			Split{Prefix: "\t", Suffix: "\n", Segments: []string{"Hello"}},
		},
		{
			"middle runs", "one\ntwo\r\nthree",
			Split{Segments: []string{"one", "two", "three"}, Runs: []string{"\n", "\r\n"}},
		},
		{
			"all together", "\a「台詞」\b\x00次\x07",
			Split{Prefix: "\a", Suffix: "\x07", Segments: []string{"「台詞」", "次"}, Runs: []string{"\b\x00"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := SplitText(tt.in)
			require.Equal(t, tt.want.Prefix, sp.Prefix)
			require.Equal(t, tt.want.Suffix, sp.Suffix)
			require.Equal(t, tt.want.Segments, sp.Segments)
			require.Len(t, sp.Runs, len(tt.want.Runs))
			for i := range tt.want.Runs {
				require.Equal(t, tt.want.Runs[i], sp.Runs[i])
			}
			require.Equal(t, len(sp.Segments), sp.Count())
			require.Equal(t, tt.in, sp.Join())
		})
	}
}

func TestIsControl(t *testing.T) {
	for _, r := range []rune{'\t', '\n', '\r', '\a', '\b', 0, 31} {
		require.True(t, IsControl(r))
	}
	for _, r := range []rune{' ', 'a', 'あ', 127} {
		require.False(t, IsControl(r))
	}
}

func TestSegmenter_Lossless(t *testing.T) {
	texts := []string{"", "plain", "\tpre", "post\n", "a\nb\n\nc", "\r\n", "名前\a台詞"}

	var sg Segmenter
	sg.Build(texts)
	require.Equal(t, len(texts), sg.Len())

	flat := sg.Flatten()
	require.Len(t, flat, sg.Total())

	merged, err := sg.Merge(flat)
	require.NoError(t, err)
	require.Equal(t, texts, merged)

	sum := 0
	for i := range texts {
		sum += sg.Count(i)
		require.Equal(t, texts[i], sg.Split(i).Join())
	}
	require.Equal(t, sg.Total(), sum)
}

func TestSegmenter_MergeEdited(t *testing.T) {
	var sg Segmenter
	sg.Build([]string{"\tone\ntwo\n", "three"})
	require.Equal(t, []string{"one", "two", "three"}, sg.Flatten())

	merged, err := sg.Merge([]string{"uno", "dos", "tres"})
	require.NoError(t, err)
	require.Equal(t, []string{"\tuno\ndos\n", "tres"}, merged)

	merged, err = sg.MergeEntries([][]string{{"1", "2"}, {"3"}})
	require.NoError(t, err)
	require.Equal(t, []string{"\t1\n2\n", "3"}, merged)
}

func TestSegmenter_CountMismatch(t *testing.T) {
	var sg Segmenter
	sg.Build([]string{"a\nb", "c"})

	_, err := sg.Merge([]string{"a", "b"})
	require.ErrorIs(t, err, errs.ErrSegmentCountMismatch)

	_, err = sg.MergeEntries([][]string{{"a"}, {"c"}})
	require.ErrorIs(t, err, errs.ErrSegmentCountMismatch)

	_, err = sg.MergeEntries([][]string{{"a", "b"}})
	require.ErrorIs(t, err, errs.ErrSegmentCountMismatch)
}

func TestSegmenter_Rebuild(t *testing.T) {
	var sg Segmenter
	sg.Build([]string{"a\nb\nc"})
	first := sg.Splits()
	require.Len(t, first, 1)

	sg.Build([]string{"x"})
	require.Equal(t, 1, sg.Total())
	require.Equal(t, []string{"x"}, sg.Flatten())
}
