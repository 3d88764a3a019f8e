package httpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

func TestValidate(t *testing.T) {
	t.Run("Valid response", func(t *testing.T) {
		res := NewResponse()
		res.SetHeader("Content-Type", "text/html; charset=utf-8")
		res.AddHeader("X-Custom_Header", "a")
		res.SetCookie("session", "YWJj", 60)
		res.SetCookie("quoted", `"abc"`, 60)

		assert.NoError(t, res.Validate())
	})

	t.Run("Every violation is reported", func(t *testing.T) {
		res := NewResponse()
		res.SetHeader("Bad Name", "ok")
		res.SetHeader("X-Split", "a\r\nInjected: yes")
		res.SetHeader("", "empty name")
		res.SetCookie("bad;name", "ok", 60)
		res.SetCookie("ok", "has space", 60)

		err := res.Validate()
		errs := multierr.Errors(err)
		assert.Len(t, errs, 5)
		assert.ErrorIs(t, err, ErrInvalidHeaderName)
		assert.ErrorIs(t, err, ErrInvalidHeaderValue)
		assert.ErrorIs(t, err, ErrInvalidCookieName)
		assert.ErrorIs(t, err, ErrInvalidCookieValue)
	})

	t.Run("Setters stay permissive", func(t *testing.T) {
		res := NewResponse()
		res.SetHeader("Bad Name", "v")

		assert.Equal(t, []string{"HTTP/1.1 200 OK", "Bad Name: v"}, res.HeaderLines())
	})
}
