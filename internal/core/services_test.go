package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServices(t *testing.T) {
	db := &mockDB{}
	s := NewServices(db)

	require.NotNil(t, s)
	assert.NotNil(t, s.Anomaly)
	assert.NotNil(t, s.MaintenanceWindow)
	assert.NotNil(t, s.Comment)
	assert.NotNil(t, s.Dashboard)
	assert.NotNil(t, s.APIKey)
}
