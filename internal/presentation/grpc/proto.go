package grpc

// proto.go defines the gRPC server interface derived from
// meridian/underwriting/v1/underwriting.proto. This file serves as a stand-in
// for buf-generated code; the json codec serialises the message types
// directly. Once `buf generate` is run, replace this file with the import
// from the generated package.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/meridianbank/underwriting-service/internal/application/dto"
)

// Message types are the application DTOs; the json codec encodes them as-is.
type (
	EvaluateApplicationRequest  = dto.EvaluateApplicationRequest
	EvaluateApplicationResponse = dto.RoutingResultResponse
)

// UnderwritingServiceServer is the server API for UnderwritingService.
// It mirrors the proto interface from meridian.underwriting.v1.
type UnderwritingServiceServer interface {
	EvaluateApplication(context.Context, *EvaluateApplicationRequest) (*EvaluateApplicationResponse, error)
	mustEmbedUnimplementedUnderwritingServiceServer()
}

// UnimplementedUnderwritingServiceServer provides forward-compatible default implementations.
type UnimplementedUnderwritingServiceServer struct{}

func (UnimplementedUnderwritingServiceServer) EvaluateApplication(context.Context, *EvaluateApplicationRequest) (*EvaluateApplicationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method EvaluateApplication not implemented")
}
func (UnimplementedUnderwritingServiceServer) mustEmbedUnimplementedUnderwritingServiceServer() {}

// RegisterUnderwritingServiceServer registers the server implementation.
func RegisterUnderwritingServiceServer(s *grpclib.Server, srv UnderwritingServiceServer) {
	s.RegisterService(&_UnderwritingService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _UnderwritingService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "meridian.underwriting.v1.UnderwritingService",
	HandlerType: (*UnderwritingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "EvaluateApplication", Handler: _UnderwritingService_EvaluateApplication_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _UnderwritingService_EvaluateApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(EvaluateApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(UnderwritingServiceServer).EvaluateApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/meridian.underwriting.v1.UnderwritingService/EvaluateApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(UnderwritingServiceServer).EvaluateApplication(ctx, req.(*EvaluateApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}
