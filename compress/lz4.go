package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var errLZ4Header = errors.New("lz4: invalid size header")

// lz4CompressorPool pools lz4.Compressor instances for reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses with the LZ4 block format.
//
// The output starts with the uvarint size of the original data. A body of
// exactly that size is stored uncompressed; LZ4 leaves incompressible input
// uncompressed and that case must round-trip too.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 compression.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out := binary.AppendUvarint(nil, uint64(len(data)))
	header := len(out)
	out = append(out, make([]byte, lz4.CompressBlockBound(len(data)))...)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, out[header:])
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(data) {
		return append(out[:header], data...), nil
	}

	return out[:header+n], nil
}

// Decompress decompresses the input data using LZ4 decompression.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, n := binary.Uvarint(data)
	if n <= 0 || size == 0 || size > MaxArchiveSize {
		return nil, errLZ4Header
	}
	body := data[n:]

	if uint64(len(body)) == size {
		return append([]byte(nil), body...), nil
	}

	buf := make([]byte, size)
	written, err := lz4.UncompressBlock(body, buf)
	if err != nil {
		return nil, err
	}
	if uint64(written) != size {
		return nil, fmt.Errorf("lz4: decompressed %d bytes, header declares %d", written, size)
	}

	return buf, nil
}
