package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	Auth_ServiceName                                  = "zkp_auth.Auth"
	Auth_Register_FullMethodName                      = "/zkp_auth.Auth/Register"
	Auth_CreateAuthenticationChallenge_FullMethodName = "/zkp_auth.Auth/CreateAuthenticationChallenge"
	Auth_VerifyAuthentication_FullMethodName          = "/zkp_auth.Auth/VerifyAuthentication"
)

// AuthClient is the client API for the zkp_auth.Auth service.
type AuthClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	CreateAuthenticationChallenge(ctx context.Context, in *AuthenticationChallengeRequest, opts ...grpc.CallOption) (*AuthenticationChallengeResponse, error)
	VerifyAuthentication(ctx context.Context, in *AuthenticationAnswerRequest, opts ...grpc.CallOption) (*AuthenticationAnswerResponse, error)
}

type authClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) AuthClient {
	return &authClient{cc}
}

func (c *authClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	out := new(RegisterResponse)
	if err := c.invoke(ctx, Auth_Register_FullMethodName, in.ToStruct(), out.FromStruct, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authClient) CreateAuthenticationChallenge(ctx context.Context, in *AuthenticationChallengeRequest, opts ...grpc.CallOption) (*AuthenticationChallengeResponse, error) {
	out := new(AuthenticationChallengeResponse)
	if err := c.invoke(ctx, Auth_CreateAuthenticationChallenge_FullMethodName, in.ToStruct(), out.FromStruct, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authClient) VerifyAuthentication(ctx context.Context, in *AuthenticationAnswerRequest, opts ...grpc.CallOption) (*AuthenticationAnswerResponse, error) {
	out := new(AuthenticationAnswerResponse)
	if err := c.invoke(ctx, Auth_VerifyAuthentication_FullMethodName, in.ToStruct(), out.FromStruct, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *authClient) invoke(ctx context.Context, method string, in *structpb.Struct, decode func(*structpb.Struct) error, opts []grpc.CallOption) error {
	raw := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, raw, opts...); err != nil {
		return err
	}
	return decode(raw)
}

// AuthServer is the server API for the zkp_auth.Auth service.
// Implementations must embed UnimplementedAuthServer.
type AuthServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	CreateAuthenticationChallenge(context.Context, *AuthenticationChallengeRequest) (*AuthenticationChallengeResponse, error)
	VerifyAuthentication(context.Context, *AuthenticationAnswerRequest) (*AuthenticationAnswerResponse, error)
	mustEmbedUnimplementedAuthServer()
}

type UnimplementedAuthServer struct{}

func (UnimplementedAuthServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedAuthServer) CreateAuthenticationChallenge(context.Context, *AuthenticationChallengeRequest) (*AuthenticationChallengeResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateAuthenticationChallenge not implemented")
}
func (UnimplementedAuthServer) VerifyAuthentication(context.Context, *AuthenticationAnswerRequest) (*AuthenticationAnswerResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method VerifyAuthentication not implemented")
}
func (UnimplementedAuthServer) mustEmbedUnimplementedAuthServer() {}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&Auth_ServiceDesc, srv)
}

// structMessage is implemented by every request type.
type structMessage interface {
	FromStruct(*structpb.Struct) error
}

// unaryHandler decodes the wire Struct into a typed request, runs the
// interceptor chain with the typed value, and encodes the typed response.
func unaryHandler[Req structMessage, Resp interface{ ToStruct() *structpb.Struct }](
	method string,
	newReq func() Req,
	call func(AuthServer, context.Context, Req) (Resp, error),
) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		raw := new(structpb.Struct)
		if err := dec(raw); err != nil {
			return nil, err
		}
		in := newReq()
		if err := in.FromStruct(raw); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		handler := func(ctx context.Context, req any) (any, error) {
			resp, err := call(srv.(AuthServer), ctx, req.(Req))
			if err != nil {
				return nil, err
			}
			return resp.ToStruct(), nil
		}
		if interceptor == nil {
			return handler(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		return interceptor(ctx, in, info, handler)
	}
}

var Auth_ServiceDesc = grpc.ServiceDesc{
	ServiceName: Auth_ServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler: unaryHandler(Auth_Register_FullMethodName,
				func() *RegisterRequest { return new(RegisterRequest) },
				AuthServer.Register),
		},
		{
			MethodName: "CreateAuthenticationChallenge",
			Handler: unaryHandler(Auth_CreateAuthenticationChallenge_FullMethodName,
				func() *AuthenticationChallengeRequest { return new(AuthenticationChallengeRequest) },
				AuthServer.CreateAuthenticationChallenge),
		},
		{
			MethodName: "VerifyAuthentication",
			Handler: unaryHandler(Auth_VerifyAuthentication_FullMethodName,
				func() *AuthenticationAnswerRequest { return new(AuthenticationAnswerRequest) },
				AuthServer.VerifyAuthentication),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "zkp_auth.proto",
}
