package respond

import (
	"github.com/Murilinho145SG/respond/httpio"
	"github.com/Murilinho145SG/respond/log"
	"github.com/Murilinho145SG/respond/status"
)

// Handler fills res for req. The server writes res once the handler returns.
type Handler func(res *httpio.Response, req *httpio.Request)

// Text sets a plain text body with code.
func Text(res *httpio.Response, code int, body string) {
	if err := res.SetStatusCode(code); err != nil {
		log.ErrorSkip(1, err)
		res.SetStatusCode(status.InternalServerError)
	}
	res.SetHeader("Content-Type", "text/plain; charset=utf-8")
	res.SetContent(body)
}

// Error answers with err's message as a plain text body.
func Error(res *httpio.Response, err error, code int) {
	Text(res, code, err.Error()+"\n")
}

// NotFound is used for requests that match no route.
func NotFound(res *httpio.Response, req *httpio.Request) {
	Text(res, status.NotFound, "404 page not found\n")
}

// RedirectHandler answers every request with a redirect to target.
func RedirectHandler(target string, code int) (Handler, error) {
	if err := httpio.NewResponse().RedirectWithStatus(target, code); err != nil {
		return nil, err
	}

	return func(res *httpio.Response, req *httpio.Request) {
		res.RedirectWithStatus(target, code)
	}, nil
}
