package httpio

import (
	"strings"
	"time"
)

// TimeFormat is the IMF-fixdate layout used for the Expires attribute.
const TimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// Cookie is a Set-Cookie directive before it is put on the wire.
type Cookie struct {
	Name     string
	Value    string
	Expires  int64 // unix seconds
	Secure   bool
	HTTPOnly bool
}

// ExpiresAt returns Expires as a UTC time.
func (c Cookie) ExpiresAt() time.Time {
	return time.Unix(c.Expires, 0).UTC()
}

// String renders the cookie as a Set-Cookie header value. Name and value are
// written as stored.
func (c Cookie) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte('=')
	b.WriteString(c.Value)
	b.WriteString("; Expires=")
	b.WriteString(c.ExpiresAt().Format(TimeFormat))
	if c.Secure {
		b.WriteString("; Secure")
	}
	if c.HTTPOnly {
		b.WriteString("; HttpOnly")
	}

	return b.String()
}

type cookieFlags struct {
	secure   *bool
	httpOnly *bool
}

// CookieOption overrides a builder default for a single SetCookie call.
type CookieOption func(*cookieFlags)

// WithSecure sets the Secure flag of one cookie.
func WithSecure(secure bool) CookieOption {
	return func(f *cookieFlags) {
		f.secure = &secure
	}
}

// WithHTTPOnly sets the HttpOnly flag of one cookie.
func WithHTTPOnly(httpOnly bool) CookieOption {
	return func(f *cookieFlags) {
		f.httpOnly = &httpOnly
	}
}
