package handler

import (
	"context"
	"errors"

	"github.com/MikhailRaia/mini-shortener/internal/proto"
	"github.com/MikhailRaia/mini-shortener/internal/service"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type ShortenerGRPCServer struct {
	proto.UnimplementedShortenerServiceServer
	urlService URLService
	baseURL    string
}

// NewShortenerGRPCServer creates the gRPC front of urlService. baseURL is
// used to build short URLs when the service has no configured base URL.
func NewShortenerGRPCServer(urlService URLService, baseURL string) *ShortenerGRPCServer {
	return &ShortenerGRPCServer{
		urlService: urlService,
		baseURL:    baseURL,
	}
}

func (s *ShortenerGRPCServer) Name(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(s.urlService.Identify()), nil
}

func (s *ShortenerGRPCServer) Shorten(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	result, err := s.urlService.ShortenURL(ctx, req.GetValue(), s.baseURL)
	if err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			return nil, status.Error(codes.InvalidArgument, "url is required")
		}
		return nil, status.Errorf(codes.Internal, "failed to shorten URL: %v", err)
	}

	resp, err := structpb.NewStruct(map[string]interface{}{
		"code":        result.Code,
		"shortUrl":    result.ShortURL,
		"originalUrl": result.OriginalURL,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}

	return resp, nil
}

func (s *ShortenerGRPCServer) Expand(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	if req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "code is required")
	}

	originalURL, err := s.urlService.Resolve(ctx, req.GetValue())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return nil, status.Error(codes.NotFound, "url not found")
		}
		return nil, status.Errorf(codes.Internal, "failed to expand URL: %v", err)
	}

	return wrapperspb.String(originalURL), nil
}

func (s *ShortenerGRPCServer) List(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	all := s.urlService.ListAll(ctx)

	fields := make(map[string]interface{}, len(all))
	for code, originalURL := range all {
		fields[code] = originalURL
	}

	resp, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}

	return resp, nil
}
