package httpio

import (
	"bufio"
	"bytes"
	"io"
)

const crlf = "\r\n"

// WriteTo writes the response in HTTP/1.1 wire form: the header lines, the
// Set-Cookie lines, an empty line and the body. No header is added.
func (res *Response) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64

	write := func(s string) error {
		written, err := bw.WriteString(s)
		n += int64(written)
		return err
	}

	for line := range res.Headers() {
		if err := write(line + crlf); err != nil {
			return n, err
		}
	}

	for line := range res.CookieHeaders() {
		if err := write(line + crlf); err != nil {
			return n, err
		}
	}

	if err := write(crlf); err != nil {
		return n, err
	}

	if err := write(res.content); err != nil {
		return n, err
	}

	return n, bw.Flush()
}

// Bytes returns the wire form produced by WriteTo.
func (res *Response) Bytes() []byte {
	var buf bytes.Buffer
	// writes to a bytes.Buffer do not fail
	_, _ = res.WriteTo(&buf)
	return buf.Bytes()
}
