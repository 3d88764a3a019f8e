package httpio

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Errors reported by Validate. Each failure is wrapped with the offending name.
var (
	ErrInvalidHeaderName  = errors.New("invalid header name")
	ErrInvalidHeaderValue = errors.New("invalid header value")
	ErrInvalidCookieName  = errors.New("invalid cookie name")
	ErrInvalidCookieValue = errors.New("invalid cookie value")
)

// Validate checks the stored headers and cookies against the HTTP grammar.
// The setters accept anything; callers that want strictness call Validate
// before handing the response to a transport. Every violation is reported,
// use multierr.Errors to split them.
func (res *Response) Validate() error {
	var err error

	for name, values := range res.headers.All() {
		if !isToken(name) {
			err = multierr.Append(err, fmt.Errorf("%w: %q", ErrInvalidHeaderName, name))
		}
		for _, value := range values {
			if strings.ContainsAny(value, "\r\n\x00") {
				err = multierr.Append(err, fmt.Errorf("%w: %s: %q", ErrInvalidHeaderValue, name, value))
			}
		}
	}

	for _, cookie := range res.Cookies() {
		if !isToken(cookie.Name) {
			err = multierr.Append(err, fmt.Errorf("%w: %q", ErrInvalidCookieName, cookie.Name))
		}
		if !isCookieValue(cookie.Value) {
			err = multierr.Append(err, fmt.Errorf("%w: %s: %q", ErrInvalidCookieValue, cookie.Name, cookie.Value))
		}
	}

	return err
}

// isToken reports whether s is a non-empty RFC 9110 token.
func isToken(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if !isTokenChar(s[i]) {
			return false
		}
	}

	return true
}

func isTokenChar(c byte) bool {
	if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
		return true
	}

	return strings.IndexByte("!#$%&'*+-.^_`|~", c) >= 0
}

// isCookieValue follows the cookie-octet rule of RFC 6265, allowing the
// value to be wrapped in double quotes.
func isCookieValue(s string) bool {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= 0x20 || c >= 0x7f || c == '"' || c == ',' || c == ';' || c == '\\' {
			return false
		}
	}

	return true
}
