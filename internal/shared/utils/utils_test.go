package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
		ok   bool
	}{
		{"42", 42, true},
		{" 7 ", 7, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			id, ok := ParseID(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/book/3/", SafeNext("/book/3/", "/"))
	assert.Equal(t, "/", SafeNext("", "/"))
	assert.Equal(t, "/", SafeNext("https://evil.example/", "/"))
	assert.Equal(t, "/", SafeNext("//evil.example/", "/"))
	assert.Equal(t, "/", SafeNext("/\\evil.example", "/"))
}

func TestLoginURL(t *testing.T) {
	assert.Equal(t, "/accounts/login/?next=%2Fuserprofile%2F", LoginURL("/accounts/login/", "/userprofile/"))
}
