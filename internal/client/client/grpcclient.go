package client

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/dmitrijs2005/zkpauth/internal/common"
	pb "github.com/dmitrijs2005/zkpauth/internal/proto"
	"github.com/dmitrijs2005/zkpauth/internal/zkp"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      pb.AuthClient
}

// NewGRPCClient connects lazily to endpointURL. Each call is bounded by
// timeout when it is positive. Extra dial options are appended to the
// defaults.
func NewGRPCClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.requestInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = pb.NewAuthClient(conn)
	return c, nil
}

// requestInterceptor adds a fresh request id and the per-call timeout.
func (s *GRPCClient) requestInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	ctx = metadata.AppendToOutgoingContext(ctx, common.RequestIDHeaderName, uuid.NewString())
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (s *GRPCClient) Register(ctx context.Context, username string, y1, y2 *big.Int) error {
	req := &pb.RegisterRequest{User: username, Y1: zkp.EncodeInt(y1), Y2: zkp.EncodeInt(y2)}

	if _, err := s.client.Register(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) CreateChallenge(ctx context.Context, username string, r1, r2 *big.Int) (*Challenge, error) {
	req := &pb.AuthenticationChallengeRequest{User: username, R1: zkp.EncodeInt(r1), R2: zkp.EncodeInt(r2)}

	resp, err := s.client.CreateAuthenticationChallenge(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	if resp.GetStatus() != pb.ChallengeStatusIssued {
		return &Challenge{Registered: false}, nil
	}

	c, err := zkp.DecodeInt(resp.GetC())
	if err != nil {
		return nil, fmt.Errorf("%w: challenge: %v", ErrBadResponse, err)
	}
	if resp.GetAuthId() == "" {
		return nil, fmt.Errorf("%w: empty auth id", ErrBadResponse)
	}
	return &Challenge{Registered: true, AuthID: resp.GetAuthId(), C: c}, nil
}

func (s *GRPCClient) Verify(ctx context.Context, authID string, sv *big.Int) (*Answer, error) {
	req := &pb.AuthenticationAnswerRequest{AuthId: authID, S: zkp.EncodeInt(sv)}

	resp, err := s.client.VerifyAuthentication(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	if resp.GetStatus() != pb.VerifyStatusAccepted {
		return &Answer{Accepted: false}, nil
	}
	if resp.GetSessionId() == "" {
		return nil, fmt.Errorf("%w: empty session id", ErrBadResponse)
	}
	return &Answer{Accepted: true, SessionID: resp.GetSessionId()}, nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrMalformedInput, st.Message())
	case codes.NotFound:
		return common.ErrUnknownIdentity
	case codes.FailedPrecondition:
		return common.ErrNoPendingChallenge
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
