package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func joinWithSeparator(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}

func TestKeySerializer_SerializeKey(t *testing.T) {
	serializer := NewKeySerializer("vaccines")
	id := uuid.MustParse("6f1c2f1e-8d1c-4b7a-9a55-0e5e3f7d2c11")
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("BRT", -3*60*60))

	tests := []struct {
		name   string
		method string
		args   []any
		want   string
	}{
		{name: "no args", method: "list", want: joinWithSeparator("vaccines", "list")},
		{name: "int id", method: "get", args: []any{int64(42)}, want: joinWithSeparator("vaccines", "get", "42")},
		{name: "basic types", method: "get", args: []any{1, "hello", true}, want: joinWithSeparator("vaccines", "get", "1", "hello", "true")},
		{name: "nil", method: "get", args: []any{nil}, want: joinWithSeparator("vaccines", "get", "nil")},
		{name: "stringer", method: "get", args: []any{id}, want: joinWithSeparator("vaccines", "get", id.String())},
		{name: "time is normalized to UTC", method: "since", args: []any{ts}, want: joinWithSeparator("vaccines", "since", "2024-03-01T15:00:00Z")},
		{name: "string slice", method: "in", args: []any{[]string{"a", "b"}}, want: joinWithSeparator("vaccines", "in", "[a,b]")},
		{name: "nested any slice", method: "in", args: []any{[]any{1, "x", nil}}, want: joinWithSeparator("vaccines", "in", "[1,x,nil]")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serializer.SerializeKey(tt.method, tt.args...))
		})
	}
}

func TestKeySerializer_EmptyNamespace(t *testing.T) {
	serializer := NewKeySerializer("  ")
	assert.Equal(t, "list", serializer.SerializeKey("list"))
	assert.Equal(t, joinWithSeparator("get", "7"), serializer.SerializeKey("get", 7))
}

func TestKeySerializer_Stable(t *testing.T) {
	a := NewKeySerializer("vaccines")
	b := NewKeySerializer("vaccines")
	assert.Equal(t, a.SerializeKey("list"), b.SerializeKey("list"))
	assert.NotEqual(t, a.SerializeKey("list"), NewKeySerializer("employees").SerializeKey("list"))
}
