package app_test

import (
	"context"
	"testing"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/app"
	_ "github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/wiring" // Register providers
	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
)

func TestAppWiring(t *testing.T) {
	t.Setenv("EDPPM_HOME", t.TempDir())

	// Verify that the application graph can be constructed
	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
}
