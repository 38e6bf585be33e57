package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
		{"another string", "another test string", 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestDigest(t *testing.T) {
	// BLAKE3 of the empty input.
	require.Equal(t, "af1349b9f5f9a1a6a0404dea36dcc9499bcb25c9adc112b7cc9a93cae41f3262", Digest(nil))

	d := Digest([]byte("scene.dat"))
	require.Len(t, d, 64)
	require.Equal(t, d, Digest([]byte("scene.dat")))
	require.NotEqual(t, d, Digest([]byte("scene.dat ")))
}

func BenchmarkID(b *testing.B) {
	s := "v_alice_0001_scene"
	for b.Loop() {
		ID(s)
	}
}
