package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/zkpauth/internal/common"
	pb "github.com/dmitrijs2005/zkpauth/internal/proto"
	"github.com/dmitrijs2005/zkpauth/internal/server/services"
	"github.com/dmitrijs2005/zkpauth/internal/zkp"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {
	y1, err := zkp.DecodeInt(req.GetY1())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	y2, err := zkp.DecodeInt(req.GetY2())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	if err := s.coord.Register(ctx, req.GetUser(), y1, y2); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &pb.RegisterResponse{}, nil
}

func (s *GRPCServer) CreateAuthenticationChallenge(ctx context.Context, req *pb.AuthenticationChallengeRequest) (*pb.AuthenticationChallengeResponse, error) {
	r1, err := zkp.DecodeInt(req.GetR1())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	r2, err := zkp.DecodeInt(req.GetR2())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	result, err := s.coord.BeginChallenge(ctx, req.GetUser(), r1, r2)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	if result.Status != services.ChallengeIssued {
		return &pb.AuthenticationChallengeResponse{Status: pb.ChallengeStatusNotRegistered}, nil
	}
	return &pb.AuthenticationChallengeResponse{
		Status: pb.ChallengeStatusIssued,
		AuthId: result.AuthID,
		C:      zkp.EncodeInt(result.C),
	}, nil
}

func (s *GRPCServer) VerifyAuthentication(ctx context.Context, req *pb.AuthenticationAnswerRequest) (*pb.AuthenticationAnswerResponse, error) {
	sv, err := zkp.DecodeInt(req.GetS())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	result, err := s.coord.Verify(ctx, req.GetAuthId(), sv)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	if result.Status != services.VerifyAccepted {
		return &pb.AuthenticationAnswerResponse{Status: pb.VerifyStatusWrongCredentials}, nil
	}
	return &pb.AuthenticationAnswerResponse{
		Status:    pb.VerifyStatusAccepted,
		SessionId: result.SessionToken,
	}, nil
}

// toStatus maps coordinator errors onto gRPC codes. Storage and internal
// details stay in the server log.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrMalformedInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrUnknownIdentity):
		return status.Error(codes.NotFound, common.ErrUnknownIdentity.Error())
	case errors.Is(err, common.ErrNoPendingChallenge):
		return status.Error(codes.FailedPrecondition, common.ErrNoPendingChallenge.Error())
	case errors.Is(err, common.ErrStorageFailure):
		s.logger.Error(ctx, err.Error())
		return status.Error(codes.Unavailable, common.ErrStorageFailure.Error())
	default:
		s.logger.Error(ctx, err.Error())
		return status.Error(codes.Internal, "internal error")
	}
}
