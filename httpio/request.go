package httpio

import (
	"fmt"
	"io"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/Murilinho145SG/respond/buffer"
)

// Request represents an HTTP request with method, path, headers, version and body.
type Request struct {
	// Method is the HTTP method (e.g., GET, POST, PUT).
	Method string

	// Path is the request target.
	Path string

	// Version is the protocol as sent, e.g. HTTP/1.1.
	Version string

	// Headers stores the request headers under canonical names.
	Headers Headers

	// Body is nil when the request has no Content-Length.
	Body *buffer.BuffReader

	// RemoteAddr is filled in by the server.
	RemoteAddr string
}

// NewRequest creates and returns a new empty Request instance.
func NewRequest() *Request {
	return &Request{}
}

// Header returns the first value of the named header, matched case-insensitively.
func (r *Request) Header(name string) string {
	value, _ := r.Headers.Get(textproto.CanonicalMIMEHeaderKey(name))
	return value
}

// Parse reads the request line and headers from the raw head of a request,
// without the terminating empty line.
func (r *Request) Parse(head []byte) error {
	lines := strings.Split(string(head), "\r\n")

	parts := strings.Split(lines[0], " ")
	if len(parts) != 3 || parts[0] == "" || !strings.HasPrefix(parts[2], "HTTP/") {
		return fmt.Errorf("%w: %q", ErrInvalidRequestLine, lines[0])
	}
	r.Method = parts[0]
	r.Path = strings.TrimSpace(parts[1])
	r.Version = parts[2]

	for _, line := range lines[1:] {
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			return fmt.Errorf("%w: %q", ErrInvalidHeader, line)
		}

		key = textproto.CanonicalMIMEHeaderKey(textproto.TrimString(key))
		r.Headers.Add(key, textproto.TrimString(value))
	}

	return nil
}

// SetBody wraps body in a BuffReader sized by the Content-Length header.
// Requests without a usable Content-Length keep a nil Body.
func (r *Request) SetBody(body io.Reader) error {
	if body == nil {
		return nil
	}

	lengthStr := r.Header("Content-Length")
	if lengthStr == "" {
		return nil
	}

	length, err := strconv.Atoi(lengthStr)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidContentLength, lengthStr, err)
	}
	if length == 0 {
		return nil
	}

	br, err := buffer.NewBuffReader(body, length)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidContentLength, lengthStr, err)
	}

	r.Body = br
	return nil
}
