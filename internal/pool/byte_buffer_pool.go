package pool

import (
	"io"
	"sync"
)

// Default buffer sizes. Script containers are typically a few hundred KiB to a
// few MiB; label blocks and string tables are encoded into separate buffers.
const (
	SectionBufferDefaultSize  = 1024 * 64        // 64KiB
	SectionBufferMaxThreshold = 1024 * 1024 * 4  // 4MiB
	OutputBufferDefaultSize   = 1024 * 1024      // 1MiB
	OutputBufferMaxThreshold  = 1024 * 1024 * 32 // 32MiB
)

type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// WriteNullUnits appends n 0x0000 code units.
func (bb *ByteBuffer) WriteNullUnits(n int) {
	for range n {
		bb.B = append(bb.B, 0, 0)
	}
}

// Grow ensures the buffer can hold requiredBytes more bytes without reallocating.
//
// Small buffers grow by SectionBufferDefaultSize; larger ones by 25% of their
// capacity, or by requiredBytes when that is more.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := SectionBufferDefaultSize
	if cap(bb.B) > 4*SectionBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers backed by sync.Pool.
// Buffers that grew past maxThreshold are dropped instead of being retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	sectionPool = NewByteBufferPool(SectionBufferDefaultSize, SectionBufferMaxThreshold)
	outputPool  = NewByteBufferPool(OutputBufferDefaultSize, OutputBufferMaxThreshold)
)

// GetSectionBuffer retrieves a buffer for encoding one container section.
func GetSectionBuffer() *ByteBuffer {
	return sectionPool.Get()
}

// PutSectionBuffer returns a section buffer to its pool.
func PutSectionBuffer(bb *ByteBuffer) {
	sectionPool.Put(bb)
}

// GetOutputBuffer retrieves a buffer for assembling a whole container.
func GetOutputBuffer() *ByteBuffer {
	return outputPool.Get()
}

// PutOutputBuffer returns an output buffer to its pool.
func PutOutputBuffer(bb *ByteBuffer) {
	outputPool.Put(bb)
}
