//go:build cgo && gozstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"
)

// zstdArchiveLevel is close to the ratio the pure Go build gets from
// SpeedBetterCompression, so archives from either build are similar in size.
const zstdArchiveLevel = 7

// Compress encodes a serialized document with libzstd.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, zstdArchiveLevel), nil
}

// Decompress decodes a zstd frame written by either build. Output larger than
// MaxArchiveSize is rejected.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if len(out) > MaxArchiveSize {
		return nil, fmt.Errorf("zstd: archive is %d bytes, limit is %d", len(out), MaxArchiveSize)
	}

	return out, nil
}
