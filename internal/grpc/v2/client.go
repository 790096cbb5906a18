package v2

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// RelayClient клиентская сторона RelayServer.
type RelayClient struct {
	cc grpc.ClientConnInterface
}

func NewRelayClient(cc grpc.ClientConnInterface) *RelayClient {
	return &RelayClient{cc: cc}
}

// Shorten возвращает короткий URL для longURL.
func (c *RelayClient) Shorten(ctx context.Context, longURL string, opts ...grpc.CallOption) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, ShortenFullMethod, wrapperspb.String(longURL), out, opts...); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}
