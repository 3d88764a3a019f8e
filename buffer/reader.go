// Package buffer reads request bodies of a known length.
package buffer

import (
	"errors"
	"io"
)

// DefaultMaxSize bounds the body a BuffReader accepts unless SetMaxSize is called.
const DefaultMaxSize = 10 << 20

// BuffReader reads exactly len bytes from Reader, chunkSize bytes at a time.
type BuffReader struct {
	Reader    io.Reader
	len       int
	maxSize   int
	chunkSize int
}

// Predefined errors for BuffReader.
var (
	// ErrNotHaveLen is returned when the length is zero or negative.
	ErrNotHaveLen = errors.New("length must be greater than zero")

	// ErrReaderIsNil is returned when Read is called on a nil BuffReader.
	ErrReaderIsNil = errors.New("reader is nil")

	// ErrBodyMaxSize is returned when the body size exceeds the maximum allowed limit.
	ErrBodyMaxSize = errors.New("body exceeds max allowed size")
)

// NewBuffReader creates a BuffReader for a body of len bytes.
//
// The reader starts with a 10MB size limit and 4096 byte chunks.
func NewBuffReader(reader io.Reader, len int) (*BuffReader, error) {
	if len <= 0 {
		return nil, ErrNotHaveLen
	}

	return &BuffReader{
		Reader:    reader,
		len:       len,
		maxSize:   DefaultMaxSize,
		chunkSize: 4096,
	}, nil
}

// SetMaxSize updates the maximum allowed size.
func (br *BuffReader) SetMaxSize(size int) {
	br.maxSize = size
}

// Len returns the number of bytes Read will return.
func (br *BuffReader) Len() int {
	return br.len
}

// Read returns the whole body.
//
// io.ErrUnexpectedEOF is returned when the reader ends before len bytes.
func (br *BuffReader) Read() ([]byte, error) {
	if br == nil {
		return nil, ErrReaderIsNil
	}

	if br.len > br.maxSize {
		return nil, ErrBodyMaxSize
	}

	buf := make([]byte, br.len)
	read := 0

	for read < br.len {
		chunk := br.chunkSize
		if remaining := br.len - read; chunk > remaining {
			chunk = remaining
		}

		n, err := br.Reader.Read(buf[read : read+chunk])
		read += n

		if err != nil {
			if err == io.EOF {
				if read < br.len {
					return nil, io.ErrUnexpectedEOF
				}
				break
			}

			return nil, err
		}
	}

	return buf, nil
}
