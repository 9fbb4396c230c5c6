package parquetutils

import (
	"io"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/xitongsys/parquet-go/source"
)

var (
	_ source.ParquetFile = (*Buffer)(nil)
	_ io.WriterAt        = (*Buffer)(nil)
)

// Buffer is an in-memory parquet file.
type Buffer struct {
	buf []byte
	loc int
	m   sync.Mutex
}

// NewBuffer creates a new empty in-memory parquet file.
func NewBuffer() *Buffer {
	return &Buffer{buf: make([]byte, 0, 512)}
}

// NewBufferFrom creates an in-memory parquet file backed by the given bytes.
func NewBufferFrom(s []byte) *Buffer {
	return &Buffer{buf: s}
}

func (b *Buffer) Create(string) (source.ParquetFile, error) {
	return NewBuffer(), nil
}

func (b *Buffer) Open(string) (source.ParquetFile, error) {
	return NewBufferFrom(b.Bytes()), nil
}

func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	b.m.Lock()
	defer b.m.Unlock()

	loc := b.loc
	switch whence {
	case io.SeekStart:
		loc = int(offset)
	case io.SeekCurrent:
		loc += int(offset)
	case io.SeekEnd:
		loc = len(b.buf) + int(offset)
	default:
		return int64(b.loc), errors.New("seek: invalid whence")
	}
	if loc < 0 {
		return int64(b.loc), errors.New("seek: negative position")
	}
	b.loc = min(loc, len(b.buf))
	return int64(b.loc), nil
}

func (b *Buffer) Read(p []byte) (int, error) {
	b.m.Lock()
	defer b.m.Unlock()

	n := copy(p, b.buf[b.loc:])
	b.loc += n
	if b.loc == len(b.buf) {
		return n, io.EOF
	}
	return n, nil
}

func (b *Buffer) Write(p []byte) (int, error) {
	n, err := b.WriteAt(p, int64(b.loc))
	if err != nil {
		return 0, err
	}
	b.m.Lock()
	b.loc += n
	b.m.Unlock()
	return n, nil
}

// WriteAt writes p at pos, growing the buffer when needed.
func (b *Buffer) WriteAt(p []byte, pos int64) (int, error) {
	b.m.Lock()
	defer b.m.Unlock()

	end := pos + int64(len(p))
	if int64(len(b.buf)) < end {
		if int64(cap(b.buf)) < end {
			grown := make([]byte, end, end*2)
			copy(grown, b.buf)
			b.buf = grown
		}
		b.buf = b.buf[:end]
	}
	copy(b.buf[pos:], p)
	return len(p), nil
}

func (*Buffer) Close() error {
	return nil
}

// Bytes returns the underlying bytes.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Reset empties the buffer and keeps the allocated storage.
func (b *Buffer) Reset() {
	b.m.Lock()
	defer b.m.Unlock()
	b.buf = b.buf[:0]
	b.loc = 0
}
