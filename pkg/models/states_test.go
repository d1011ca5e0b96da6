package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeState(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"full name", "Colorado", "CO"},
		{"full name lowercase", "texas", "TX"},
		{"two-word name", "New Mexico", "NM"},
		{"code passes through", "FL", "FL"},
		{"lowercase code uppercased", "fl", "FL"},
		{"whitespace trimmed", "  Florida ", "FL"},
		{"unknown value unchanged", "Puerto Rico", "Puerto Rico"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeState(tt.in))
		})
	}
}

func TestStateName(t *testing.T) {
	assert.Equal(t, "Colorado", StateName("CO"))
	assert.Equal(t, "New York", StateName("ny"))
	assert.Equal(t, "District Of Columbia", StateName("DC"))
	assert.Equal(t, "ZZ", StateName("ZZ"), "unknown codes pass through")
}

func TestValidLeadStatus(t *testing.T) {
	for _, status := range LeadStatuses {
		assert.True(t, ValidLeadStatus(status), "status %q should be valid", status)
	}
	assert.False(t, ValidLeadStatus("archived"))
	assert.False(t, ValidLeadStatus(""))
}
