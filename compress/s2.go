package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor stores project archives in the S2 block format. It is the
// fastest codec to open, which suits documents reloaded on every apply.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor returns the S2 archive codec.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes a serialized document as one S2 block. Empty input stays empty.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.EncodeBetter(nil, data), nil
}

// Decompress decodes an S2 block. The size recorded in the block header is
// checked against MaxArchiveSize before any output is allocated.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if size > MaxArchiveSize {
		return nil, fmt.Errorf("s2: archive declares %d bytes, limit is %d", size, MaxArchiveSize)
	}

	out, err := s2.Decode(make([]byte, size), data)
	if err != nil {
		return nil, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
