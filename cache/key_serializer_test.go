package cache

import (
	"testing"

	"github.com/google/uuid"
)

func TestDefaultKeySerializer(t *testing.T) {
	s := NewDefaultKeySerializer()
	id := uuid.MustParse("0190d1a2-7c00-7000-8000-000000000001")

	tests := []struct {
		name string
		ns   string
		args []any
		want string
	}{
		{"namespace only", "currency", nil, "currency"},
		{"string", "currency", []any{"USD"}, "currency::USD"},
		{"numbers and bools", "m", []any{1, int64(2), uint64(3), true}, "m::1::2::3::true"},
		{"nil", "m", []any{nil}, "m::nil"},
		{"stringer", "product", []any{id}, "product::0190d1a2-7c00-7000-8000-000000000001"},
		{"json fallback", "m", []any{map[string]int{"b": 2, "a": 1}}, `m::{"a":1,"b":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.SerializeKey(tt.ns, tt.args...); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
