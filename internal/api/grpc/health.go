package grpc

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"fleetrent-backend/internal/api/grpc/interceptor"
	"fleetrent-backend/internal/logger"
)

// ServiceName is the service reported by the health endpoint besides the
// overall "" entry
const ServiceName = "fleetrent.RentalService"

// HealthServer exposes grpc.health.v1.Health and reflection for probes and
// grpcurl
type HealthServer struct {
	server *grpc.Server
	health *health.Server
}

// NewHealthServer starts out NOT_SERVING until SetServing(true) is called
func NewHealthServer() *HealthServer {
	s := grpc.NewServer(
		grpc.UnaryInterceptor(interceptor.NewLoggingInterceptor().Unary()),
	)
	h := health.NewServer()
	h.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	h.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	healthpb.RegisterHealthServer(s, h)
	// Register reflection service for grpcurl
	reflection.Register(s)

	return &HealthServer{server: s, health: h}
}

func (h *HealthServer) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", st)
	h.health.SetServingStatus(ServiceName, st)
	logger.Info("Health status changed", "status", st.String())
}

// Serve blocks until Stop is called
func (h *HealthServer) Serve(lis net.Listener) error {
	logger.Info("gRPC health server listening", "address", lis.Addr().String())
	return h.server.Serve(lis)
}

// Stop reports NOT_SERVING to watchers and drains the server
func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.server.GracefulStop()
}
