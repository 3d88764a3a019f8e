package respond

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Murilinho145SG/respond/httpio"
)

func TestParseRoute(t *testing.T) {
	router := NewRouter()
	router.Route("/users", func(res *httpio.Response, req *httpio.Request) {
		res.SetContent("users")
	})

	tests := []struct {
		path  string
		found bool
	}{
		{"/users", true},
		{"/users?page=2", true},
		{"/users/", false},
		{"/", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			handler := router.ParseRoute(&httpio.Request{Path: tt.path})
			assert.Equal(t, tt.found, handler != nil)
		})
	}
}

func TestRouterRedirect(t *testing.T) {
	router := NewRouter()
	require.NoError(t, router.Redirect("/old", "/new", 302))
	assert.ErrorIs(t, router.Redirect("/bad", "/new", 200), httpio.ErrNotRedirect)
	assert.ErrorIs(t, router.Redirect("/bad", "/new", 399), httpio.ErrInvalidStatusCode)
	assert.Nil(t, router.ParseRoute(&httpio.Request{Path: "/bad"}))

	res := httpio.NewResponse()
	router.ParseRoute(&httpio.Request{Path: "/old"})(res, &httpio.Request{})
	assert.Equal(t, []string{"HTTP/1.1 302 Found", "Location: /new"}, res.HeaderLines())
}

func TestText(t *testing.T) {
	res := httpio.NewResponse()
	Text(res, 799, "unknown code")

	assert.Equal(t, 500, res.StatusCode())
	assert.Equal(t, "unknown code", res.Content())
}
