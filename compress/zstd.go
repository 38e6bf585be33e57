package compress

// ZstdCompressor stores project archives as zstd frames. The pure Go build and
// the libzstd build (tag gozstd) read each other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor returns the zstd archive codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
