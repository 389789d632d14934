// Package daemon implements the background refresh daemon.
// It provides a gRPC server and client over a Unix domain socket.
// Messages are protobuf well-known types, so no generated code is needed.
package daemon

import (
	"context"
	"encoding/json"

	"github.com/OpticsC/Elite-Dangerous-Power-Play-Monitor/internal/core/domain"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const serviceName = "edppm.daemon.v1.Daemon"

const (
	methodPing     = "Ping"
	methodStatus   = "Status"
	methodSnapshot = "Snapshot"
	methodRefresh  = "Refresh"
	methodShutdown = "Shutdown"
)

// daemonService is the server side of the RPC surface.
type daemonService interface {
	Ping(ctx context.Context) (*structpb.Struct, error)
	Status(ctx context.Context) (*structpb.Struct, error)
	Snapshot(ctx context.Context) (*structpb.Struct, error)
	Refresh(ctx context.Context) (*emptypb.Empty, error)
	Shutdown(ctx context.Context) (*emptypb.Empty, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*daemonService)(nil),
	Methods: []grpc.MethodDesc{
		unary(methodPing, func(s daemonService, ctx context.Context) (proto.Message, error) { return s.Ping(ctx) }),
		unary(methodStatus, func(s daemonService, ctx context.Context) (proto.Message, error) { return s.Status(ctx) }),
		unary(methodSnapshot, func(s daemonService, ctx context.Context) (proto.Message, error) { return s.Snapshot(ctx) }),
		unary(methodRefresh, func(s daemonService, ctx context.Context) (proto.Message, error) { return s.Refresh(ctx) }),
		unary(methodShutdown, func(s daemonService, ctx context.Context) (proto.Message, error) { return s.Shutdown(ctx) }),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "edppm/daemon/v1",
}

func fullMethod(name string) string {
	return "/" + serviceName + "/" + name
}

// unary builds the handler for a method that takes an empty request.
func unary(name string, call func(daemonService, context.Context) (proto.Message, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(emptypb.Empty)
			if err := dec(in); err != nil {
				return nil, err
			}
			s, _ := srv.(daemonService)
			if interceptor == nil {
				return call(s, ctx)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, _ any) (any, error) {
				return call(s, ctx)
			})
		},
	}
}

// resultToStruct encodes a snapshot through its JSON form.
func resultToStruct(r *domain.RefreshResult) (*structpb.Struct, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode snapshot")
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.Wrap(err, "failed to encode snapshot")
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode snapshot")
	}
	return s, nil
}

// structToResult decodes a snapshot. Integers survive the float64 round trip below 2^53.
func structToResult(s *structpb.Struct) (*domain.RefreshResult, error) {
	data, err := json.Marshal(s.AsMap())
	if err != nil {
		return nil, zerr.Wrap(err, "failed to decode snapshot")
	}
	var r domain.RefreshResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, zerr.Wrap(err, "failed to decode snapshot")
	}
	return &r, nil
}
