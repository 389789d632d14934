package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Engine is the refresh engine served by the daemon.
type Engine interface {
	// StartRefresh starts a cycle in the background or returns its rejection.
	StartRefresh(ctx context.Context) error
	// Latest returns the most recent snapshot or nil.
	Latest() *domain.RefreshResult
	// Refreshing reports whether a cycle is in flight.
	Refreshing() bool
}

// Server implements the daemon RPC service.
type Server struct {
	lifecycle  *Lifecycle
	engine     Engine
	logger     ports.Logger
	layout     domain.Layout
	grpcServer *grpc.Server

	// cycles started over RPC outlive the request.
	cycleCtx context.Context
}

var _ daemonService = (*Server)(nil)

// NewServer creates a new daemon server.
func NewServer(layout domain.Layout, lifecycle *Lifecycle, engine Engine, logger ports.Logger) *Server {
	s := &Server{
		lifecycle:  lifecycle,
		engine:     engine,
		logger:     logger,
		layout:     layout,
		grpcServer: grpc.NewServer(),
		cycleCtx:   context.Background(),
	}
	s.grpcServer.RegisterService(&serviceDesc, s)
	return s
}

// Serve listens on the daemon socket until ctx is done or a shutdown is requested.
func (s *Server) Serve(ctx context.Context) error {
	s.cycleCtx = ctx
	socketPath := s.layout.DaemonSocketPath()

	if err := os.MkdirAll(s.layout.Root, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create daemon directory")
	}

	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return zerr.Wrap(err, "failed to remove stale socket")
	}

	lis, err := net.Listen("unix", socketPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen on daemon socket"), "path", socketPath)
	}

	if err := os.Chmod(socketPath, domain.SocketPerm); err != nil {
		_ = lis.Close()
		return zerr.Wrap(err, "failed to set socket permissions")
	}

	if err := s.writePIDFile(); err != nil {
		_ = lis.Close()
		return err
	}

	defer s.cleanup()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.grpcServer.Serve(lis)
	}()

	s.logger.Info(fmt.Sprintf("daemon listening on %s", socketPath))

	select {
	case <-ctx.Done():
		s.grpcServer.GracefulStop()
		return nil
	case <-s.lifecycle.ShutdownChan():
		s.grpcServer.GracefulStop()
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) cleanup() {
	_ = os.Remove(s.layout.DaemonSocketPath())
	_ = os.Remove(s.layout.DaemonPIDPath())
}

func (s *Server) writePIDFile() error {
	pid := strconv.Itoa(os.Getpid())
	if err := os.WriteFile(s.layout.DaemonPIDPath(), []byte(pid), domain.PrivateFilePerm); err != nil {
		return zerr.Wrap(err, "failed to write daemon pid file")
	}
	return nil
}

// Ping resets the inactivity timer.
func (s *Server) Ping(_ context.Context) (*structpb.Struct, error) {
	s.lifecycle.ResetTimer()
	return structpb.NewStruct(map[string]any{
		"idle_remaining_ms": s.lifecycle.IdleRemaining().Milliseconds(),
	})
}

// Status reports the daemon state.
func (s *Server) Status(_ context.Context) (*structpb.Struct, error) {
	s.lifecycle.ResetTimer()
	fields := map[string]any{
		"running":            true,
		"pid":                os.Getpid(),
		"uptime_ms":          s.lifecycle.Uptime().Milliseconds(),
		"last_activity_unix": s.lifecycle.LastActivity().Unix(),
		"idle_remaining_ms":  s.lifecycle.IdleRemaining().Milliseconds(),
		"refreshing":         s.engine.Refreshing(),
	}
	if latest := s.engine.Latest(); latest != nil {
		fields["last_refresh_unix"] = latest.CompletedAt.Unix()
	}
	return structpb.NewStruct(fields)
}

// Snapshot returns the latest published result. An empty struct means none yet.
func (s *Server) Snapshot(_ context.Context) (*structpb.Struct, error) {
	s.lifecycle.ResetTimer()
	latest := s.engine.Latest()
	if latest == nil {
		return &structpb.Struct{}, nil
	}
	out, err := resultToStruct(latest)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// Refresh starts a cycle. Rejections map to ResourceExhausted (cooldown) and Aborted (concurrent).
func (s *Server) Refresh(_ context.Context) (*emptypb.Empty, error) {
	s.lifecycle.ResetTimer()
	if err := s.engine.StartRefresh(s.cycleCtx); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

// Shutdown stops the daemon after the response is sent.
func (s *Server) Shutdown(_ context.Context) (*emptypb.Empty, error) {
	s.lifecycle.Shutdown()
	return &emptypb.Empty{}, nil
}

func toStatus(err error) error {
	var cooldown *domain.CooldownError
	switch {
	case errors.As(err, &cooldown):
		st := status.New(codes.ResourceExhausted, err.Error())
		if withDetails, detErr := st.WithDetails(durationpb.New(cooldown.Remaining)); detErr == nil {
			st = withDetails
		}
		return st.Err()
	case errors.Is(err, domain.ErrConcurrentRefreshRejected):
		return status.Error(codes.Aborted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func fromStatus(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.ResourceExhausted:
		var remaining time.Duration
		for _, d := range st.Details() {
			if dur, ok := d.(*durationpb.Duration); ok {
				remaining = dur.AsDuration()
			}
		}
		return domain.NewCooldownError(remaining)
	case codes.Aborted:
		return zerr.With(zerr.Wrap(domain.ErrConcurrentRefreshRejected, "daemon rejected refresh"), "detail", st.Message())
	case codes.Unavailable:
		return zerr.Wrap(err, domain.ErrDaemonUnavailable.Error())
	default:
		return zerr.Wrap(err, "daemon request failed")
	}
}
