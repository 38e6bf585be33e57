package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/malie/errs"
	"github.com/arloliu/malie/format"
	"github.com/arloliu/malie/segment"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	require.Equal(t, format.DumpYAML, c.DumpFormat())
	require.Equal(t, format.CompressionNone, c.Compression())

	strategies, err := c.Strategies()
	require.NoError(t, err)
	require.Equal(t, []format.LocateStrategy{format.StrategyTrailingLength, format.StrategyTerminatorScan}, strategies)

	classifier, err := c.Classifier()
	require.NoError(t, err)
	require.IsType(t, segment.DefaultClassifier{}, classifier)

	opts, err := c.EditorOptions(nil)
	require.NoError(t, err)
	require.Len(t, opts, 4)
	require.NotNil(t, c.Logger(io.Discard))
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
[editor]
filter = true
classifier = 'length <= 8 && standard(label)'
strategies = ["terminator-scan"]

[dump]
format = "cbor"
compression = "zstd"

[log]
level = "debug"
format = "json"
`))
	require.NoError(t, err)
	require.True(t, c.Editor.Filter)
	require.Equal(t, format.DumpCBOR, c.DumpFormat())
	require.Equal(t, format.CompressionZstd, c.Compression())

	strategies, err := c.Strategies()
	require.NoError(t, err)
	require.Equal(t, []format.LocateStrategy{format.StrategyTerminatorScan}, strategies)

	classifier, err := c.Classifier()
	require.NoError(t, err)
	require.True(t, classifier.Visible("Alice"))
	require.False(t, classifier.Visible("Alexandria"))
	require.False(t, classifier.Visible("v_alice"))
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	c, err := Parse([]byte("[dump]\ncompression = \"lz4\"\n"))
	require.NoError(t, err)
	require.Equal(t, format.DumpYAML, c.DumpFormat())
	require.Equal(t, format.CompressionLZ4, c.Compression())
	require.Equal(t, "info", c.Log.Level)
	require.Len(t, c.Editor.Strategies, 2)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown key", "[editor]\nfilters = true\n"},
		{"dump format", "[dump]\nformat = \"json\"\n"},
		{"compression", "[dump]\ncompression = \"gzip\"\n"},
		{"log level", "[log]\nlevel = \"loud\"\n"},
		{"log format", "[log]\nformat = \"xml\"\n"},
		{"no strategies", "[editor]\nstrategies = []\n"},
		{"too many strategies", "[editor]\nstrategies = [\"trailing-length\", \"trailing-length\", \"terminator-scan\"]\n"},
		{"bad strategy", "[editor]\nstrategies = [\"guess\"]\n"},
		{"bad classifier", "[editor]\nclassifier = \"label +\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.ErrorIs(t, err, errs.ErrInvalidConfig)
		})
	}

	_, err := Parse([]byte("[editor\n"))
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), c)

	path := filepath.Join(t.TempDir(), "malietl.toml")
	require.NoError(t, os.WriteFile(path, []byte("[editor]\nfilter = true\n"), 0o600))

	c, err = Load(path)
	require.NoError(t, err)
	require.True(t, c.Editor.Filter)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"loud\"\n"), 0o600))
	_, err = Load(path)
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
	require.Contains(t, err.Error(), path)
}
