package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/Murilinho145SG/respond/httpio"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	filename := filepath.Join(t.TempDir(), "respond.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0o644))
	return filename
}

func TestLoad(t *testing.T) {
	filename := writeConfig(t, `
addr: 127.0.0.1:9000
timeout: 3s
requestId: true
multiValue: join
cookies:
  secure: false
  httpOnly: true
redirects:
  - path: /old
    target: /new
  - path: /tmp
    target: https://example.com/
    status: 307
limiter:
  maxAttempts: 5
  window: 1m
log:
  level: debug
`)

	config, err := Load(filename)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", config.Addr)
	assert.Equal(t, 8192, config.ReadSize)
	assert.Equal(t, 3*time.Second, config.Timeout)
	assert.True(t, config.RequestID)
	assert.Equal(t, "join", config.MultiValue)
	assert.Equal(t, Cookies{Secure: false, HTTPOnly: true}, config.Cookies)
	assert.Equal(t, []Redirect{
		{Path: "/old", Target: "/new", Status: 301},
		{Path: "/tmp", Target: "https://example.com/", Status: 307},
	}, config.Redirects)
	assert.Equal(t, Limiter{MaxAttempts: 5, Window: time.Minute}, config.Limiter)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, 100, config.Log.MaxSizeMB)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "addr: [unterminated"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, `
addr: ""
multiValue: semicolon
redirects:
  - path: /x
    target: /y
    status: 200
`))
	assert.Len(t, multierr.Errors(err), 3)
	assert.ErrorIs(t, err, httpio.ErrUnknownPolicy)
	assert.ErrorIs(t, err, httpio.ErrNotRedirect)
}

func TestResponseOptions(t *testing.T) {
	config := Default()
	config.MultiValue = "join"
	config.Cookies.Secure = false

	res := httpio.NewResponse(config.ResponseOptions()...)
	res.AddHeader("X", "a")
	res.AddHeader("X", "b")
	res.SetCookie("s", "v", 0)

	assert.Equal(t, []string{"HTTP/1.1 200 OK", "X: a, b"}, res.HeaderLines())
	cookie, _ := res.Cookie("s")
	assert.False(t, cookie.Secure)
	assert.True(t, cookie.HTTPOnly)
}
