package telemetry

import (
	grpcprometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// NewHealthServer returns a *grpc.Server pre-instrumented with
// go-grpc-prometheus interceptors and serving the standard
// grpc.health.v1.Health service, grounded on the teacher's
// pkg/util.NewGrpcServer() (interceptors) and its destination server's
// health registration. The engine itself is reachable over the southbound
// gateway's websocket transport, not gRPC; this server exists purely so
// `reactor serve` can be health-checked the way every other teacher-style
// control-plane process is.
func NewHealthServer() (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(
		grpc.UnaryInterceptor(grpcprometheus.UnaryServerInterceptor),
		grpc.StreamInterceptor(grpcprometheus.StreamServerInterceptor),
	)
	grpcprometheus.Register(srv)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	return srv, hs
}
