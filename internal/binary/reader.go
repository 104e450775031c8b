// Package binary provides bounds-checked binary reading primitives.
//
// Decoders read at absolute offsets through a SafeReader so that a
// truncated or hostile file produces a descriptive error instead of a
// short read or an out-of-range slice.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ByteOrder selects the byte order for multi-byte reads.
type ByteOrder int

const (
	// BigEndian byte order. Used by PNG, JPEG segments, MP4 atoms, ID3v2.
	BigEndian ByteOrder = iota
	// LittleEndian byte order. Used by RIFF/WAV and TIFF (II variant).
	LittleEndian
)

// SafeReader wraps io.ReaderAt with bounds checking and contextual errors.
//
// ReadAt calls on the underlying reader are independent, so a single
// SafeReader may be shared by concurrently running decoders.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a SafeReader over r.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{r: r, size: size, path: path}
}

// Path returns the file path associated with this reader.
func (sr *SafeReader) Path() string { return sr.path }

// Size returns the total input size in bytes.
func (sr *SafeReader) Size() int64 { return sr.size }

// ReadAt fills b from the given offset. The what argument names the
// structure being read and appears in error messages.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off >= sr.size {
		return fmt.Errorf("%s: offset %d out of bounds (size %d) while reading %s",
			sr.path, off, sr.size, what)
	}
	if off+int64(len(b)) > sr.size {
		return fmt.Errorf("%s: read of %d bytes at offset %d exceeds size %d while reading %s",
			sr.path, len(b), off, sr.size, what)
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: read %s at offset %d: %w", sr.path, what, off, err)
	}
	if n < len(b) {
		return fmt.Errorf("%s: short read for %s at offset %d: got %d of %d bytes",
			sr.path, what, off, n, len(b))
	}
	return nil
}

// Read reads a numeric value of type T at off using the given byte order.
func Read[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string, order ByteOrder) (T, error) {
	var zero T
	var size int
	switch any(zero).(type) {
	case uint8:
		size = 1
	case uint16:
		size = 2
	case uint32:
		size = 4
	case uint64:
		size = 8
	}

	buf := make([]byte, size)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return zero, err
	}

	bo := binary.ByteOrder(binary.BigEndian)
	if order == LittleEndian {
		bo = binary.LittleEndian
	}

	var val T
	switch any(zero).(type) {
	case uint8:
		val = T(buf[0])
	case uint16:
		val = T(bo.Uint16(buf))
	case uint32:
		val = T(bo.Uint32(buf))
	case uint64:
		val = T(bo.Uint64(buf))
	}
	return val, nil
}

// ReadBE reads a big-endian value of type T at the given offset.
func ReadBE[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	return Read[T](sr, off, what, BigEndian)
}

// ReadLE reads a little-endian value of type T at the given offset.
func ReadLE[T uint8 | uint16 | uint32 | uint64](sr *SafeReader, off int64, what string) (T, error) {
	return Read[T](sr, off, what, LittleEndian)
}

// ReadString reads length bytes at off and returns them as a string.
func (sr *SafeReader) ReadString(off int64, length int, what string) (string, error) {
	buf := make([]byte, length)
	if err := sr.ReadAt(buf, off, what); err != nil {
		return "", err
	}
	return string(buf), nil
}
