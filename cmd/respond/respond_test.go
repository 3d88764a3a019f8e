package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Murilinho145SG/respond/config"
	"github.com/Murilinho145SG/respond/httpio"
)

func TestBuildResponse(t *testing.T) {
	now := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	clock := func() time.Time { return now }

	tests := []struct {
		name     string
		opts     renderOptions
		expected string
	}{
		{
			name: "Status header and body",
			opts: renderOptions{
				status:  404,
				headers: []string{"Content-Type: text/plain"},
				body:    "nope",
			},
			expected: "HTTP/1.1 404 Not Found\r\nContent-Type: text/plain\r\n\r\nnope",
		},
		{
			name: "Joined headers",
			opts: renderOptions{
				status:     200,
				addHeaders: []string{"Vary: Accept", "Vary: Cookie"},
				join:       true,
			},
			expected: "HTTP/1.1 200 OK\r\nVary: Accept, Cookie\r\n\r\n",
		},
		{
			name: "Cookies and redirect",
			opts: renderOptions{
				status:     200,
				cookies:    []string{"session=abc"},
				cookieTTL:  60,
				noHTTPOnly: true,
				redirect:   "/login",
			},
			expected: "HTTP/1.1 301 Moved Permanently\r\n" +
				"Location: /login\r\n" +
				"Set-Cookie: session=abc; Expires=Tue, 02 Jan 2024 15:05:05 GMT; Secure\r\n" +
				"\r\n",
		},
		{
			name: "Redirect status",
			opts: renderOptions{
				status:         200,
				redirect:       "/tmp",
				redirectStatus: 307,
			},
			expected: "HTTP/1.1 307 Temporary Redirect\r\nLocation: /tmp\r\n\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := buildResponse(tt.opts, clock)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(res.Bytes()))
		})
	}
}

func TestBuildResponseErrors(t *testing.T) {
	tests := []struct {
		name string
		opts renderOptions
	}{
		{"Invalid status", renderOptions{status: 999}},
		{"Malformed header", renderOptions{status: 200, headers: []string{"no colon"}}},
		{"Malformed cookie", renderOptions{status: 200, cookies: []string{"novalue"}}},
		{"Redirect with 200", renderOptions{status: 200, redirect: "/x", redirectStatus: 200}},
		{"Strict", renderOptions{status: 200, headers: []string{"Bad Name: v"}, strict: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildResponse(tt.opts, time.Now)
			assert.Error(t, err)
		})
	}
}

func TestRenderCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"render", "--status", "404", "--header", "Content-Type: text/plain", "--body", "nope"})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "HTTP/1.1 404 Not Found\r\nContent-Type: text/plain\r\n\r\nnope", out.String())
}

func TestNewRouter(t *testing.T) {
	cfg := config.Default()
	cfg.Redirects = []config.Redirect{{Path: "/old", Target: "/", Status: 302}}
	cfg.Limiter.MaxAttempts = 1

	router, err := newRouter(cfg)
	require.NoError(t, err)

	serve := func(path string) *httpio.Response {
		req := &httpio.Request{Method: "GET", Path: path, RemoteAddr: "10.0.0.1:4000"}
		res := httpio.NewResponse()
		router.ParseRoute(req)(res, req)
		return res
	}

	res := serve("/status?code=418")
	assert.Equal(t, 418, res.StatusCode())
	assert.Equal(t, "I'm a teapot\n", res.Content())

	res = serve("/old")
	assert.Equal(t, []string{"HTTP/1.1 302 Found", "Location: /"}, res.HeaderLines())

	res = serve("/")
	assert.Equal(t, 429, res.StatusCode(), "limiter allows one attempt per address")
}

func TestHandlers(t *testing.T) {
	tests := []struct {
		name    string
		handler func(*httpio.Response, *httpio.Request)
		path    string
		code    int
	}{
		{"Index", index, "/", 200},
		{"Registered status", statusHandler, "/status?code=503", 503},
		{"Unregistered status", statusHandler, "/status?code=299", 400},
		{"Non numeric status", statusHandler, "/status?code=abc", 400},
		{"Cookie", cookieHandler, "/cookie?name=theme&value=dark&ttl=60", 200},
		{"Cookie without name", cookieHandler, "/cookie?value=dark", 400},
		{"Cookie with bad ttl", cookieHandler, "/cookie?name=a&ttl=soon", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := httpio.NewResponse()
			tt.handler(res, &httpio.Request{Path: tt.path})
			assert.Equal(t, tt.code, res.StatusCode())
		})
	}

	res := httpio.NewResponse()
	cookieHandler(res, &httpio.Request{Path: "/cookie?name=theme&value=dark&ttl=60"})
	cookie, ok := res.Cookie("theme")
	require.True(t, ok)
	assert.Equal(t, "dark", cookie.Value)
}
