package node

import (
	"context"
	"errors"
	"time"

	"github.com/lioia/pagerank/pkg/codec"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// RankerClient calls the Ranker service over conn
type RankerClient struct {
	cc grpc.ClientConnInterface
}

func NewRankerClient(cc grpc.ClientConnInterface) *RankerClient {
	return &RankerClient{cc: cc}
}

func (c *RankerClient) Rank(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, rankFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Submit encodes req, calls the service and decodes its answer
func (c *RankerClient) Submit(ctx context.Context, req codec.RankRequest) (codec.RankResponse, error) {
	in, err := codec.EncodeRequest(req)
	if err != nil {
		return codec.RankResponse{}, err
	}
	out, err := c.Rank(ctx, in)
	if err != nil {
		return codec.RankResponse{}, err
	}
	resp := codec.DecodeResponse(out)
	if resp.Error != "" {
		return resp, errors.New(resp.Error)
	}
	return resp, nil
}

type Client struct {
	Client *RankerClient
	Ctx    context.Context
	conn   *grpc.ClientConn
	cancel context.CancelFunc
}

// Utility function to create a gRPC client to `url`
// Has to be closed (`c.Close()`)
func NodeCall(url string, timeout time.Duration) (Client, error) {
	conn, err := grpc.Dial(
		url,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return Client{}, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	return Client{
		conn:   conn,
		Client: NewRankerClient(conn),
		Ctx:    ctx,
		cancel: cancel,
	}, nil
}

func (c Client) Close() {
	c.cancel()
	c.conn.Close()
}
