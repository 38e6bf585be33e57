package pool

import (
	"bytes"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, cap(bb.B))
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)

	bb.MustWrite([]byte("ab"))
	n, err := bb.Write([]byte("cd"))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []byte("abcd"), bb.Bytes())

	originalCap := cap(bb.B)
	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.Equal(t, originalCap, cap(bb.B))
}

func TestByteBuffer_WriteNullUnits(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte{'A', 0})
	bb.WriteNullUnits(2)
	bb.WriteNullUnits(0)

	require.Equal(t, []byte{'A', 0, 0, 0, 0, 0}, bb.Bytes())
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte("data"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(4), n)
	require.Equal(t, "data", out.String())

	n, err = bb.WriteTo(&errorWriter{err: io.ErrShortWrite})
	require.ErrorIs(t, err, io.ErrShortWrite)
	require.Equal(t, int64(0), n)
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(100)
		bb.Grow(50)
		require.Equal(t, 100, cap(bb.B))
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(10)
		bb.MustWrite([]byte("0123456789"))
		bb.Grow(20)
		require.Equal(t, 10+SectionBufferDefaultSize, cap(bb.B))
		require.Equal(t, []byte("0123456789"), bb.Bytes())
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * SectionBufferDefaultSize
		bb := NewByteBuffer(size)
		bb.MustWrite(make([]byte, size))
		bb.Grow(1)
		require.Equal(t, size+size/4, cap(bb.B))
	})

	t.Run("request larger than growth step", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(SectionBufferDefaultSize * 2)
		require.GreaterOrEqual(t, cap(bb.B), SectionBufferDefaultSize*2)
	})
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	p := NewByteBufferPool(1024, 4096)

	bb := p.Get()
	require.GreaterOrEqual(t, cap(bb.B), 1024)
	bb.Grow(10000)
	p.Put(bb)

	next := p.Get()
	require.LessOrEqual(t, cap(next.B), 4096, "oversized buffers are not retained")

	p.Put(nil)
}

func TestSectionAndOutputBuffers(t *testing.T) {
	section := GetSectionBuffer()
	require.NotNil(t, section)
	require.Equal(t, 0, section.Len())
	section.MustWrite([]byte("label"))
	PutSectionBuffer(section)

	again := GetSectionBuffer()
	require.Equal(t, 0, again.Len(), "pooled buffers come back empty")
	PutSectionBuffer(again)

	out := GetOutputBuffer()
	require.GreaterOrEqual(t, cap(out.B), OutputBufferDefaultSize)
	PutOutputBuffer(out)
}

func TestPool_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 32
	const numIterations = 200

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for range numGoroutines {
		go func() {
			defer wg.Done()
			for range numIterations {
				bb := GetSectionBuffer()
				bb.MustWrite([]byte("data"))
				assert.Equal(t, 4, bb.Len())
				PutSectionBuffer(bb)
			}
		}()
	}

	wg.Wait()
}

func BenchmarkPool_GetWritePut(b *testing.B) {
	data := make([]byte, 4096)
	b.ReportAllocs()
	for b.Loop() {
		bb := GetSectionBuffer()
		bb.MustWrite(data)
		PutSectionBuffer(bb)
	}
}

type errorWriter struct {
	err error
}

func (ew *errorWriter) Write(_ []byte) (int, error) {
	return 0, ew.err
}
