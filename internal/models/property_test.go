package models

import (
	"math"
	"testing"
)

func TestHasValidPrice(t *testing.T) {
	cases := []struct {
		name  string
		price *float64
		want  bool
	}{
		{"absent", nil, false},
		{"zero", ptr(0), true},
		{"positive", ptr(450000), true},
		{"negative", ptr(-1), false},
		{"positive infinity", ptr(math.Inf(1)), false},
		{"negative infinity", ptr(math.Inf(-1)), false},
		{"nan", ptr(math.NaN()), false},
	}

	for _, tc := range cases {
		p := Property{Price: tc.price}
		if got := p.HasValidPrice(); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func ptr(v float64) *float64 { return &v }
