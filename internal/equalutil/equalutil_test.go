package equalutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/x3t/openapi-diff/internal/equalutil"
)

func ptr[T any](v T) *T { return &v }

func TestEqualPtr(t *testing.T) {
	tests := []struct {
		name string
		a, b *float64
		want bool
	}{
		{"both nil", nil, nil, true},
		{"a nil", nil, ptr(3.14), false},
		{"b nil", ptr(3.14), nil, false},
		{"same value", ptr(3.14), ptr(3.14), true},
		{"different value", ptr(3.14), ptr(2.71), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, equalutil.EqualPtr(tt.a, tt.b))
		})
	}

	assert.True(t, equalutil.EqualPtr(ptr(10), ptr(10)))
	assert.False(t, equalutil.EqualPtr(ptr(10), ptr(11)))
}

func TestEqualValues(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil and value", nil, "x", false},
		{"int and float", 1, 1.0, true},
		{"int64 and int", int64(7), 7, true},
		{"different numbers", 1, 2, false},
		{"number and string", 1, "1", false},
		{"strings", "a", "a", true},
		{"bools", true, false, false},
		{"lists", []any{1, "a"}, []any{1.0, "a"}, true},
		{"list length", []any{1}, []any{1, 2}, false},
		{"maps", map[string]any{"a": 1}, map[string]any{"a": 1.0}, true},
		{"map key missing", map[string]any{"a": 1}, map[string]any{"b": 1}, false},
		{"nested", map[string]any{"a": []any{true}}, map[string]any{"a": []any{true}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, equalutil.EqualValues(tt.a, tt.b))
		})
	}
}
