package compress

import (
	"fmt"

	"github.com/arloliu/malie/format"
)

// MaxArchiveSize bounds the decompressed size of a project document. Codecs
// that know the size before decoding reject larger input up front.
const MaxArchiveSize = 128 * 1024 * 1024

// Compressor compresses a serialized project document.
//
// The returned slice is owned by the caller; the input is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores data produced by the matching Compressor.
//
// Corrupt input or input from another algorithm returns an error.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. Built-in codecs are stateless and safe for
// concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one compression call.
type CompressionStats struct {
	Algorithm      format.CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// CompressionRatio returns compressed size / original size, or 0 for empty input.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage.
func (s CompressionStats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.CompressionRatio()) * 100.0
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for a compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// Compress compresses data with the built-in codec for compressionType and
// reports the sizes.
func Compress(compressionType format.CompressionType, data []byte) ([]byte, CompressionStats, error) {
	stats := CompressionStats{Algorithm: compressionType, OriginalSize: int64(len(data))}

	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, stats, err
	}

	out, err := codec.Compress(data)
	if err != nil {
		return nil, stats, fmt.Errorf("%s compress: %w", compressionType, err)
	}
	stats.CompressedSize = int64(len(out))

	return out, stats, nil
}

// Decompress restores data with the built-in codec for compressionType.
func Decompress(compressionType format.CompressionType, data []byte) ([]byte, error) {
	codec, err := GetCodec(compressionType)
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%s decompress: %w", compressionType, err)
	}

	return out, nil
}
