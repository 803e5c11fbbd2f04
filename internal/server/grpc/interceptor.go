package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/zkpauth/internal/common"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const requestIDKey ctxKey = "requestID"

// RequestIDFromContext returns the id assigned by the request interceptor.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestInterceptor tags each call with a request id, taken from the
// x-request-id metadata or freshly generated, echoes it back in the
// response header and logs the outcome.
func (s *GRPCServer) requestInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	var requestID string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.RequestIDHeaderName); len(values) > 0 {
			requestID = values[0]
		}
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}

	ctx = context.WithValue(ctx, requestIDKey, requestID)
	// Fails only outside a real transport stream, e.g. in direct calls.
	_ = grpc.SetHeader(ctx, metadata.Pairs(common.RequestIDHeaderName, requestID))

	start := time.Now()
	resp, err := handler(ctx, req)

	s.logger.Info(ctx, "request handled",
		"request_id", requestID,
		"method", info.FullMethod,
		"duration", time.Since(start).String(),
		"code", status.Code(err).String(),
	)
	return resp, err
}
