package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus_CanonicalPassThrough(t *testing.T) {
	for _, s := range []string{StatusInProgress, StatusTreated, StatusClosed} {
		got, ok := NormalizeStatus(s)
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}
}

func TestNormalizeStatus_Aliases(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"open", StatusInProgress},
		{"in-progress", StatusInProgress},
		{"En Cours", StatusInProgress},
		{"treated", StatusTreated},
		{"Traitée", StatusTreated},
		{"traitee", StatusTreated},
		{"closed", StatusClosed},
		{"Clôturée", StatusClosed},
		{"cloture", StatusClosed},
		{"  open  ", StatusInProgress},
	}
	for _, tt := range tests {
		got, ok := NormalizeStatus(tt.raw)
		assert.True(t, ok, "raw %q", tt.raw)
		assert.Equal(t, tt.expected, got, "raw %q", tt.raw)
	}
}

func TestNormalizeStatus_Unknown(t *testing.T) {
	for _, raw := range []string{"", "done", "ARCHIVED", "in progress!"} {
		got, ok := NormalizeStatus(raw)
		assert.False(t, ok, "raw %q", raw)
		assert.Empty(t, got)
	}
}
