package node

import (
	"context"

	"github.com/lioia/pagerank/pkg/codec"
	"github.com/lioia/pagerank/pkg/utils"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	rankerServiceName = "pagerank.Ranker"
	rankFullMethod    = "/" + rankerServiceName + "/Rank"
)

// RankerServer is the gRPC service computing rank tables.
// Requests and responses are google.protobuf.Struct messages laid out by
// the codec package.
type RankerServer interface {
	Rank(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var rankerServiceDesc = grpc.ServiceDesc{
	ServiceName: rankerServiceName,
	HandlerType: (*RankerServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Rank",
			Handler:    rankHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pagerank.proto",
}

func RegisterRankerServer(s grpc.ServiceRegistrar, srv RankerServer) {
	s.RegisterService(&rankerServiceDesc, srv)
}

func rankHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RankerServer).Rank(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: rankFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RankerServer).Rank(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type NodeServerImpl struct {
	Ranker *Ranker
}

// From client to node: compute both rank tables of the uploaded graph
func (s *NodeServerImpl) Rank(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := codec.DecodeRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	resp, err := s.Ranker.Handle(req)
	if err != nil {
		utils.ServerLog("Request %s failed: %v", resp.ID, err)
		if IsInvalidInput(err) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	return codec.EncodeResponse(resp)
}

// NewGRPCServer returns a gRPC server exposing ranker
func NewGRPCServer(ranker *Ranker) *grpc.Server {
	server := grpc.NewServer()
	RegisterRankerServer(server, &NodeServerImpl{Ranker: ranker})
	return server
}
