package v2

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Totarae/URLRelay/internal/relay"
)

const (
	ServiceName       = "relay.v1.Relay"
	ShortenFullMethod = "/" + ServiceName + "/Shorten"
)

// RelayServer gRPC-контракт ретранслятора: длинный URL на входе, короткий на выходе.
type RelayServer interface {
	Shorten(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

// ServiceDesc описание сервиса для grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RelayServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Shorten", Handler: shortenHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "relay/v1/relay.proto",
}

func shortenHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RelayServer).Shorten(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ShortenFullMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RelayServer).Shorten(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Shortener то же, что использует HTTP-обработчик.
type Shortener interface {
	Shorten(ctx context.Context, longURL string) (string, error)
}

type GRPCServer struct {
	Service Shortener
}

func NewGRPCServer(svc Shortener) *GRPCServer {
	return &GRPCServer{Service: svc}
}

// Register регистрирует сервис на gRPC-сервере.
func Register(s grpc.ServiceRegistrar, srv RelayServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func (s *GRPCServer) Shorten(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	short, err := s.Service.Shorten(ctx, req.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.String(short), nil
}

func toStatus(err error) error {
	var rerr *relay.Error
	if !errors.As(err, &rerr) {
		return status.Error(codes.Internal, relay.MsgInternal)
	}

	switch rerr.Kind {
	case relay.KindInvalidInput:
		return status.Error(codes.InvalidArgument, rerr.Message)
	case relay.KindServerMisconfigured:
		return status.Error(codes.FailedPrecondition, rerr.Message)
	case relay.KindUpstreamRejected:
		return status.Error(codeFromHTTP(rerr.Status), rerr.Message)
	default:
		return status.Error(codes.Internal, rerr.Message)
	}
}

func codeFromHTTP(httpStatus int) codes.Code {
	switch {
	case httpStatus == http.StatusBadRequest, httpStatus == http.StatusUnprocessableEntity:
		return codes.InvalidArgument
	case httpStatus == http.StatusUnauthorized:
		return codes.Unauthenticated
	case httpStatus == http.StatusForbidden:
		return codes.PermissionDenied
	case httpStatus == http.StatusNotFound:
		return codes.NotFound
	case httpStatus == http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case httpStatus >= 500:
		return codes.Unavailable
	default:
		return codes.Unknown
	}
}

// LoggingInterceptor пишет в лог каждый unary-вызов.
func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.Info("gRPC Request",
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
		)
		return resp, err
	}
}
