package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// loggingInterceptor logs one line per unary call.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "latency", time.Since(start)}

	switch code {
	case codes.OK, codes.NotFound, codes.Canceled:
		s.logger.Debug(ctx, "rpc", args...)
	case codes.Internal, codes.Unknown, codes.DataLoss:
		s.logger.Error(ctx, "rpc", append(args, "error", err.Error())...)
	default:
		s.logger.Warn(ctx, "rpc", args...)
	}

	return resp, err
}
