// Package grpc exposes the session coordinator over the zkp_auth.Auth gRPC
// service.
package grpc

import (
	"context"
	"math/big"
	"net"

	"github.com/dmitrijs2005/zkpauth/internal/logging"
	pb "github.com/dmitrijs2005/zkpauth/internal/proto"
	"github.com/dmitrijs2005/zkpauth/internal/server/services"
	"google.golang.org/grpc"
)

// coordinator is the subset of services.Coordinator used by the handlers.
type coordinator interface {
	Register(ctx context.Context, username string, y1, y2 *big.Int) error
	BeginChallenge(ctx context.Context, username string, r1, r2 *big.Int) (*services.ChallengeResult, error)
	Verify(ctx context.Context, authID string, s *big.Int) (*services.VerifyResult, error)
}

type GRPCServer struct {
	pb.UnimplementedAuthServer
	address string
	coord   coordinator
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, c coordinator) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		coord:   c,
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.requestInterceptor))
	pb.RegisterAuthServer(srv, s)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	<-stopped
	return nil
}
