package process_test

import (
	"context"
	"errors"
	"testing"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/adapters/process"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func listing(infos ...process.Info) process.Lister {
	return func(context.Context) ([]process.Info, error) { return infos, nil }
}

func TestDetector_Running(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		procs []process.Info
		want  bool
	}{
		{name: "exact name", procs: []process.Info{{Name: "edmarketconnector.exe"}}, want: true},
		{name: "case insensitive", procs: []process.Info{{Name: "EDMarketConnector.exe"}}, want: true},
		{
			name:  "truncated comm with full cmdline",
			procs: []process.Info{{Name: "edmarketconnec", Cmdline: []string{`C:\Program Files\EDMC\EDMarketConnector.exe`, "--force-localserver"}}},
			want:  true,
		},
		{name: "unix path", procs: []process.Info{{Name: "python3", Cmdline: []string{"/opt/edmc/edmarketconnector.exe"}}}, want: true},
		{name: "other processes", procs: []process.Info{{Name: "bash"}, {Name: "EliteDangerous64.exe"}}, want: false},
		{name: "none", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			d := process.New("edmarketconnector.exe", mocks.NewMockLogger(ctrl)).WithLister(listing(tt.procs...))
			assert.Equal(t, tt.want, d.Running(context.Background()))
		})
	}
}

func TestDetector_ListError(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug("process scan failed: permission denied")

	d := process.New("edmarketconnector.exe", logger).WithLister(func(context.Context) ([]process.Info, error) {
		return nil, errors.New("permission denied")
	})
	assert.False(t, d.Running(context.Background()))
}

func TestDetector_EmptyName(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	d := process.New("", mocks.NewMockLogger(ctrl)).WithLister(func(context.Context) ([]process.Info, error) {
		t.Fatal("lister called without a process name")
		return nil, nil
	})
	assert.False(t, d.Running(context.Background()))
}

func TestListProcesses_IncludesSelf(t *testing.T) {
	t.Parallel()

	procs, err := process.ListProcesses(context.Background())
	if err != nil {
		t.Skipf("process listing unavailable: %v", err)
	}
	assert.NotEmpty(t, procs)
}
