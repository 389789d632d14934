package tui_test

import (
	"bytes"
	"testing"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/tui"
	"github.com/stretchr/testify/assert"
)

func TestNewModel(t *testing.T) {
	m := tui.NewModel(nil, nil)

	assert.NotNil(t, m.Output)
	assert.NotNil(t, m.Now)
	assert.Nil(t, m.Result)
	assert.False(t, m.Refreshing)
	assert.Positive(t, m.TickInterval)
}

func TestModel_WithDisableTick(t *testing.T) {
	m := tui.NewModel(&bytes.Buffer{}, nil)
	assert.False(t, m.DisableTick)
	assert.NotNil(t, m.Init())

	m = m.WithDisableTick()
	assert.True(t, m.DisableTick)
	assert.Nil(t, m.Init())
}
