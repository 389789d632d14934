package daemon

import (
	"context"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ ports.DaemonClient = (*Client)(nil)

// Client implements ports.DaemonClient.
type Client struct {
	conn *grpc.ClientConn
}

// Dial creates a client for the daemon socket at socketPath.
// grpc.NewClient returns immediately; the connection is made on the first RPC.
func Dial(socketPath string) (*Client, error) {
	conn, err := grpc.NewClient("unix://"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, zerr.Wrap(err, "daemon client creation failed")
	}
	return &Client{conn: conn}, nil
}

func (c *Client) invoke(ctx context.Context, method string, out any) error {
	if err := c.conn.Invoke(ctx, fullMethod(method), &emptypb.Empty{}, out); err != nil {
		return fromStatus(err)
	}
	return nil
}

// Ping implements ports.DaemonClient.
func (c *Client) Ping(ctx context.Context) error {
	return c.invoke(ctx, methodPing, &structpb.Struct{})
}

// Status implements ports.DaemonClient.
func (c *Client) Status(ctx context.Context) (*ports.DaemonStatus, error) {
	out := &structpb.Struct{}
	if err := c.invoke(ctx, methodStatus, out); err != nil {
		return nil, err
	}
	f := out.GetFields()
	st := &ports.DaemonStatus{
		Running:       f["running"].GetBoolValue(),
		PID:           int(f["pid"].GetNumberValue()),
		Uptime:        time.Duration(f["uptime_ms"].GetNumberValue()) * time.Millisecond,
		LastActivity:  time.Unix(int64(f["last_activity_unix"].GetNumberValue()), 0),
		IdleRemaining: time.Duration(f["idle_remaining_ms"].GetNumberValue()) * time.Millisecond,
		Refreshing:    f["refreshing"].GetBoolValue(),
	}
	if v, ok := f["last_refresh_unix"]; ok {
		st.LastRefresh = time.Unix(int64(v.GetNumberValue()), 0)
	}
	return st, nil
}

// Snapshot implements ports.DaemonClient.
func (c *Client) Snapshot(ctx context.Context) (*domain.RefreshResult, error) {
	out := &structpb.Struct{}
	if err := c.invoke(ctx, methodSnapshot, out); err != nil {
		return nil, err
	}
	if len(out.GetFields()) == 0 {
		return nil, nil
	}
	return structToResult(out)
}

// Refresh implements ports.DaemonClient.
func (c *Client) Refresh(ctx context.Context) error {
	return c.invoke(ctx, methodRefresh, &emptypb.Empty{})
}

// Shutdown implements ports.DaemonClient.
func (c *Client) Shutdown(ctx context.Context) error {
	return c.invoke(ctx, methodShutdown, &emptypb.Empty{})
}

// Close implements ports.DaemonClient.
func (c *Client) Close() error {
	return c.conn.Close()
}
