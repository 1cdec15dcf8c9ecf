// Package server implements the gRPC server for the daemon.
package server

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name the daemon reports under. The
// empty name reports the same status for clients that check the server as
// a whole.
const ServiceName = "presence.Renderer"

// Server is the daemon's gRPC server.
type Server struct {
	grpcServer *grpc.Server
	listener   net.Listener
	port       int
	health     *health.Server
}

// New creates a new server listening on the specified port.
// Pass port 0 for dynamic allocation.
func New(host string, port int) (*Server, error) {
	listener, err := (&net.ListenConfig{}).Listen(context.TODO(), "tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen: %w", err)
	}

	// Get actual port if dynamically allocated
	actualPort := listener.Addr().(*net.TCPAddr).Port

	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, hs)

	srv := &Server{
		grpcServer: grpcServer,
		listener:   listener,
		port:       actualPort,
		health:     hs,
	}
	srv.SetServing(false)
	return srv, nil
}

// Port returns the port the server is listening on.
func (s *Server) Port() int {
	return s.port
}

// SetServing reports whether the renderer is ready. It is not serving until
// the language and theme definitions are loaded.
func (s *Server) SetServing(ok bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Serve starts serving requests. This blocks until Stop is called.
func (s *Server) Serve() error {
	return s.grpcServer.Serve(s.listener)
}

// Stop gracefully stops the server.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
