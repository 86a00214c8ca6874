package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatusCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"200", true},
		{"404", true},
		{"599", true},
		{"2XX", true},
		{"5xx", true},
		{"default", true},
		{"x-custom", true},
		{"600", false},
		{"099", false},
		{"6XX", false},
		{"20", false},
		{"abc", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateStatusCode(tt.code))
		})
	}
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, 2, StatusClass("201"))
	assert.Equal(t, 2, StatusClass("2XX"))
	assert.Equal(t, 4, StatusClass("404"))
	assert.Equal(t, 0, StatusClass("default"))

	assert.True(t, IsSuccessCode("204"))
	assert.True(t, IsSuccessCode("2XX"))
	assert.False(t, IsSuccessCode("default"))
	assert.False(t, IsSuccessCode("301"))

	assert.True(t, IsErrorCode("404"))
	assert.True(t, IsErrorCode("5XX"))
	assert.False(t, IsErrorCode("200"))
}

func TestMethodRank(t *testing.T) {
	assert.Equal(t, 0, MethodRank(MethodGet))
	assert.Equal(t, 7, MethodRank(MethodTrace))
	assert.Equal(t, len(Methods), MethodRank("connect"))
	assert.Less(t, MethodRank(MethodPost), MethodRank(MethodDelete))
}
