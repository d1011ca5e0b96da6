package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		region string
		want   string
	}{
		{"national format", "(303) 555-0142", "", "+13035550142"},
		{"dashed", "303-555-0142", "US", "+13035550142"},
		{"already e164", "+13035550142", "", "+13035550142"},
		{"international with country code", "+13035550142", "GB", "+13035550142"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw, tt.region)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_Rejects(t *testing.T) {
	for _, raw := range []string{"", "12345", "not a phone"} {
		_, err := Normalize(raw, "US")
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestNormalizeOrKeep(t *testing.T) {
	assert.Equal(t, "+13035550142", NormalizeOrKeep("(303) 555-0142"))
	assert.Equal(t, "ring the office", NormalizeOrKeep("ring the office"))
	assert.Equal(t, "", NormalizeOrKeep(""))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("303-555-0142", "US"))
	assert.False(t, Valid("12345", "US"))
}
