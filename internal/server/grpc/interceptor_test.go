package grpc

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/zkpauth/internal/common"
	"github.com/dmitrijs2005/zkpauth/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type logEntry struct {
	msg  string
	args []any
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (r *recordingLogger) record(msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, logEntry{msg: msg, args: args})
}

func (r *recordingLogger) Debug(_ context.Context, msg string, args ...any) { r.record(msg, args) }
func (r *recordingLogger) Info(_ context.Context, msg string, args ...any)  { r.record(msg, args) }
func (r *recordingLogger) Warn(_ context.Context, msg string, args ...any)  { r.record(msg, args) }
func (r *recordingLogger) Error(_ context.Context, msg string, args ...any) { r.record(msg, args) }
func (r *recordingLogger) With(...any) logging.Logger                       { return r }

func argValue(args []any, key string) any {
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == key {
			return args[i+1]
		}
	}
	return nil
}

func TestInterceptor_UsesIncomingRequestID(t *testing.T) {
	l := &recordingLogger{}
	s := NewGRPCServer("", l, &fakeCoordinator{})

	ctx := metadata.NewIncomingContext(context.Background(),
		metadata.New(map[string]string{common.RequestIDHeaderName: "req-42"}))
	info := &grpc.UnaryServerInfo{FullMethod: "/zkp_auth.Auth/Register"}

	var seen string
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		seen = RequestIDFromContext(ctx)
		return "ok", nil
	}

	resp, err := s.requestInterceptor(ctx, nil, info, h)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, "req-42", seen)

	require.Len(t, l.entries, 1)
	assert.Equal(t, "req-42", argValue(l.entries[0].args, "request_id"))
	assert.Equal(t, "/zkp_auth.Auth/Register", argValue(l.entries[0].args, "method"))
	assert.Equal(t, "OK", argValue(l.entries[0].args, "code"))
}

func TestInterceptor_GeneratesRequestID(t *testing.T) {
	s := NewGRPCServer("", logging.NopLogger{}, &fakeCoordinator{})
	info := &grpc.UnaryServerInfo{FullMethod: "/zkp_auth.Auth/Register"}

	var seen string
	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		seen = RequestIDFromContext(ctx)
		return nil, nil
	}

	_, err := s.requestInterceptor(context.Background(), nil, info, h)
	require.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, seen)
}

func TestInterceptor_LogsErrorCode(t *testing.T) {
	l := &recordingLogger{}
	s := NewGRPCServer("", l, &fakeCoordinator{})
	info := &grpc.UnaryServerInfo{FullMethod: "/zkp_auth.Auth/VerifyAuthentication"}

	h := func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, status.Error(codes.FailedPrecondition, "no pending challenge")
	}

	_, err := s.requestInterceptor(context.Background(), nil, info, h)
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	require.Len(t, l.entries, 1)
	assert.Equal(t, "FailedPrecondition", argValue(l.entries[0].args, "code"))
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, RequestIDFromContext(context.WithValue(context.Background(), requestIDKey, 5)))
}
