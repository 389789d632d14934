package detector_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/detector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectEnvironment_NonTerminal(t *testing.T) {
	tests := []struct {
		name    string
		ciValue string
	}{
		{name: "CI=true", ciValue: "true"},
		{name: "CI=1", ciValue: "1"},
		{name: "CI=false", ciValue: "false"},
		{name: "no CI", ciValue: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CI", tt.ciValue)

			assert.Equal(t, detector.ModeLinear, detector.DetectEnvironment(&bytes.Buffer{}))

			f, err := os.Create(filepath.Join(t.TempDir(), "out"))
			require.NoError(t, err)
			defer f.Close()
			assert.Equal(t, detector.ModeLinear, detector.DetectEnvironment(f), "regular files are not terminals")
		})
	}
}

func TestResolveMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		flag string
		auto detector.OutputMode
		want detector.OutputMode
	}{
		{flag: "tui", auto: detector.ModeLinear, want: detector.ModeTUI},
		{flag: "linear", auto: detector.ModeTUI, want: detector.ModeLinear},
		{flag: "ci", auto: detector.ModeTUI, want: detector.ModeLinear},
		{flag: "auto", auto: detector.ModeTUI, want: detector.ModeTUI},
		{flag: "", auto: detector.ModeLinear, want: detector.ModeLinear},
		{flag: "fancy", auto: detector.ModeTUI, want: detector.ModeTUI},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			t.Parallel()
			got := detector.ResolveMode(tt.auto, tt.flag)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}
