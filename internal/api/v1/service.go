package apiv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "realm.v1.Accounts"

// Full method names, as seen by interceptors.
const (
	MethodRegister       = "/" + ServiceName + "/Register"
	MethodLogin          = "/" + ServiceName + "/Login"
	MethodChangePassword = "/" + ServiceName + "/ChangePassword"
	MethodChangeEmail    = "/" + ServiceName + "/ChangeEmail"
	MethodProfile        = "/" + ServiceName + "/Profile"
)

// AccountsServer is the server API for the Accounts service.
type AccountsServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	ChangePassword(context.Context, *ChangePasswordRequest) (*ChangePasswordResponse, error)
	ChangeEmail(context.Context, *ChangeEmailRequest) (*ChangeEmailResponse, error)
	Profile(context.Context, *ProfileRequest) (*ProfileResponse, error)
}

// UnimplementedAccountsServer returns codes.Unimplemented for every method.
type UnimplementedAccountsServer struct{}

func (UnimplementedAccountsServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedAccountsServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedAccountsServer) ChangePassword(context.Context, *ChangePasswordRequest) (*ChangePasswordResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ChangePassword not implemented")
}
func (UnimplementedAccountsServer) ChangeEmail(context.Context, *ChangeEmailRequest) (*ChangeEmailResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ChangeEmail not implemented")
}
func (UnimplementedAccountsServer) Profile(context.Context, *ProfileRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Profile not implemented")
}

// unary adapts a typed AccountsServer method to a grpc.MethodHandler.
func unary[Req, Resp any](fullMethod string, call func(AccountsServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AccountsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AccountsServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AccountsServiceDesc is the grpc.ServiceDesc for the Accounts service.
var AccountsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AccountsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(MethodRegister, AccountsServer.Register)},
		{MethodName: "Login", Handler: unary(MethodLogin, AccountsServer.Login)},
		{MethodName: "ChangePassword", Handler: unary(MethodChangePassword, AccountsServer.ChangePassword)},
		{MethodName: "ChangeEmail", Handler: unary(MethodChangeEmail, AccountsServer.ChangeEmail)},
		{MethodName: "Profile", Handler: unary(MethodProfile, AccountsServer.Profile)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "realm/v1/accounts",
}

// RegisterAccountsServer registers srv on s.
func RegisterAccountsServer(s grpc.ServiceRegistrar, srv AccountsServer) {
	s.RegisterService(&AccountsServiceDesc, srv)
}

// AccountsClient is the client API for the Accounts service.
type AccountsClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*ChangePasswordResponse, error)
	ChangeEmail(ctx context.Context, in *ChangeEmailRequest, opts ...grpc.CallOption) (*ChangeEmailResponse, error)
	Profile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
}

type accountsClient struct {
	cc grpc.ClientConnInterface
}

// NewAccountsClient returns a client that sends every call with the JSON codec.
func NewAccountsClient(cc grpc.ClientConnInterface) AccountsClient {
	return &accountsClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(Codec)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *accountsClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *accountsClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *accountsClient) ChangePassword(ctx context.Context, in *ChangePasswordRequest, opts ...grpc.CallOption) (*ChangePasswordResponse, error) {
	return invoke[ChangePasswordResponse](ctx, c.cc, MethodChangePassword, in, opts)
}

func (c *accountsClient) ChangeEmail(ctx context.Context, in *ChangeEmailRequest, opts ...grpc.CallOption) (*ChangeEmailResponse, error) {
	return invoke[ChangeEmailResponse](ctx, c.cc, MethodChangeEmail, in, opts)
}

func (c *accountsClient) Profile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodProfile, in, opts)
}
