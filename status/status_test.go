package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		code     int
		expected string
		found    bool
	}{
		{200, "OK", true},
		{301, "Moved Permanently", true},
		{306, "Reserved", true},
		{404, "Not Found", true},
		{418, "I'm a teapot", true},
		{425, "Reserved for WebDAV advanced collections expired proposal", true},
		{511, "Network Authentication Required", true},
		{0, "", false},
		{199, "", false},
		{421, "", false},
		{451, "", false},
		{600, "", false},
		{-404, "", false},
	}

	for _, tt := range tests {
		text, ok := Text(tt.code)
		assert.Equal(t, tt.found, ok, "code %d", tt.code)
		assert.Equal(t, tt.expected, text, "code %d", tt.code)
		assert.Equal(t, tt.found, Valid(tt.code), "code %d", tt.code)
	}
}

func TestCodes(t *testing.T) {
	codes := Codes()
	assert.Len(t, codes, 60)
	assert.IsIncreasing(t, codes)
	assert.Equal(t, Continue, codes[0])
	assert.Equal(t, NetworkAuthenticationRequired, codes[len(codes)-1])

	for _, code := range codes {
		assert.GreaterOrEqual(t, code, 100)
		assert.Less(t, code, 600)
	}
}

func TestIsRedirect(t *testing.T) {
	assert.True(t, IsRedirect(MovedPermanently))
	assert.True(t, IsRedirect(TemporaryRedirect))
	assert.True(t, IsRedirect(306))
	assert.False(t, IsRedirect(OK))
	assert.False(t, IsRedirect(399))
	assert.False(t, IsRedirect(NotFound))
}
