package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractBudget(t *testing.T) {
	tests := []struct {
		name string
		plan string
		want string
		ok   bool
	}{
		{
			name: "simple span",
			plan: "Scope the work. The estimated budget is $1,200 USD for materials.",
			want: "$1,200",
			ok:   true,
		},
		{
			name: "range span",
			plan: "Estimated Budget: $2,500 - $4,000 USD total.",
			want: "$2,500 - $4,000",
			ok:   true,
		},
		{
			name: "case insensitive phrase",
			plan: "ESTIMATED BUDGET of $500 USD.",
			want: "$500",
			ok:   true,
		},
		{
			name: "missing phrase",
			plan: "The budget is $500 USD.",
			ok:   false,
		},
		{
			name: "missing dollar sign",
			plan: "The estimated budget is 500 USD.",
			ok:   false,
		},
		{
			name: "missing USD terminator",
			plan: "The estimated budget is $500 for the season.",
			ok:   false,
		},
		{
			name: "dollar before phrase ignored",
			plan: "Rent is $900. The estimated budget is $150 USD.",
			want: "$150",
			ok:   true,
		},
		{
			name: "empty plan",
			plan: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractBudget(tt.plan)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
