package httpio

import (
	"fmt"
	"iter"
	"slices"
	"strconv"
	"time"

	"github.com/Murilinho145SG/respond/status"
)

// Version is the protocol version written in every status line.
const Version = "1.1"

// Response accumulates the status, headers, cookies and body of one HTTP
// response. It must not be shared between goroutines.
type Response struct {
	code    int
	headers Headers
	content string

	cookieNames []string
	cookies     map[string]Cookie

	// defaults for SetCookie calls that do not override them
	secure   bool
	httpOnly bool

	policy MultiValuePolicy
	now    func() time.Time
}

// Option configures a Response created by NewResponse.
type Option func(*Response)

// WithClock replaces time.Now as the source of cookie expiry times.
func WithClock(now func() time.Time) Option {
	return func(res *Response) {
		res.now = now
	}
}

// WithMultiValue selects how repeated header values are rendered.
func WithMultiValue(policy MultiValuePolicy) Option {
	return func(res *Response) {
		res.policy = policy
	}
}

// WithCookieDefaults sets the HttpOnly and Secure defaults for cookies.
func WithCookieDefaults(httpOnly, secure bool) Option {
	return func(res *Response) {
		res.httpOnly = httpOnly
		res.secure = secure
	}
}

// NewResponse returns a 200 response with no headers, cookies or body.
func NewResponse(opts ...Option) *Response {
	res := &Response{
		code:     status.OK,
		cookies:  make(map[string]Cookie),
		secure:   true,
		httpOnly: true,
		policy:   LinePerValue,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(res)
	}

	return res
}

// SetStatusCode sets the HTTP status code. Codes without a registered reason
// phrase are rejected with an *InvalidStatusCodeError and the current code is kept.
func (res *Response) SetStatusCode(code int) error {
	if !status.Valid(code) {
		return &InvalidStatusCodeError{Code: code}
	}

	res.code = code
	return nil
}

// StatusCode returns the current status code.
func (res *Response) StatusCode() int {
	return res.code
}

// SetHeader replaces every header named name with value.
func (res *Response) SetHeader(name, value string) {
	res.headers.Set(name, value)
}

// AddHeader adds value to the header named name.
func (res *Response) AddHeader(name, value string) {
	res.headers.Add(name, value)
}

// Header gives direct access to the stored headers.
func (res *Response) Header() *Headers {
	return &res.headers
}

// StatusLine returns "HTTP/<version> <code> <reason>".
func (res *Response) StatusLine() string {
	text, _ := status.Text(res.code)
	return "HTTP/" + Version + " " + strconv.Itoa(res.code) + " " + text
}

// Headers yields the status line followed by one line per header, in
// insertion order. Repeated values follow the response's MultiValuePolicy.
// Cookies are not included, see CookieHeaders.
func (res *Response) Headers() iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield(res.StatusLine()) {
			return
		}

		for line := range res.headers.Lines(res.policy) {
			if !yield(line) {
				return
			}
		}
	}
}

// HeaderLines collects Headers into a slice.
func (res *Response) HeaderLines() []string {
	return slices.Collect(res.Headers())
}

// SetCookie stores a cookie that expires expiresIn seconds from now. Secure
// and HttpOnly come from the response defaults unless overridden by opts.
// Setting a cookie with an existing name replaces it.
func (res *Response) SetCookie(name, value string, expiresIn int, opts ...CookieOption) {
	flags := cookieFlags{}
	for _, opt := range opts {
		opt(&flags)
	}

	cookie := Cookie{
		Name:     name,
		Value:    value,
		Expires:  res.now().Unix() + int64(expiresIn),
		Secure:   res.secure,
		HTTPOnly: res.httpOnly,
	}
	if flags.secure != nil {
		cookie.Secure = *flags.secure
	}
	if flags.httpOnly != nil {
		cookie.HTTPOnly = *flags.httpOnly
	}

	if _, ok := res.cookies[name]; !ok {
		res.cookieNames = append(res.cookieNames, name)
	}
	res.cookies[name] = cookie
}

// Cookie returns the stored cookie named name.
func (res *Response) Cookie(name string) (Cookie, bool) {
	cookie, ok := res.cookies[name]
	return cookie, ok
}

// Cookies returns the stored cookies in the order they were first set.
func (res *Response) Cookies() []Cookie {
	cookies := make([]Cookie, 0, len(res.cookieNames))
	for _, name := range res.cookieNames {
		cookies = append(cookies, res.cookies[name])
	}

	return cookies
}

// CookieHeaders yields one "Set-Cookie: ..." line per stored cookie.
func (res *Response) CookieHeaders() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range res.cookieNames {
			if !yield("Set-Cookie: " + res.cookies[name].String()) {
				return
			}
		}
	}
}

// SetHTTPOnly sets the HttpOnly default used by later SetCookie calls.
func (res *Response) SetHTTPOnly(httpOnly bool) {
	res.httpOnly = httpOnly
}

// SetSecure sets the Secure default used by later SetCookie calls.
func (res *Response) SetSecure(secure bool) {
	res.secure = secure
}

// SetContent sets the body.
func (res *Response) SetContent(content string) {
	res.content = content
}

// Content returns the body.
func (res *Response) Content() string {
	return res.content
}

// Redirect points the response at url with 301 Moved Permanently.
func (res *Response) Redirect(url string) {
	res.SetHeader("Location", url)
	res.code = status.MovedPermanently
}

// RedirectWithStatus points the response at url with a 3xx code of the
// caller's choosing. Nothing is changed if code is rejected.
func (res *Response) RedirectWithStatus(url string, code int) error {
	if !status.Valid(code) {
		return &InvalidStatusCodeError{Code: code}
	}
	if !status.IsRedirect(code) {
		return fmt.Errorf("%w: %d", ErrNotRedirect, code)
	}

	res.SetHeader("Location", url)
	res.code = code
	return nil
}
