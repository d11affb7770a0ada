package metrics

import (
	"github.com/google/wire"
)

// ProviderSet is a Wire provider set for metrics
var ProviderSet = wire.NewSet(
	NewMetricsServer,
	ProvideMenuMetricsRecorder,
)

// NewMetricsServer creates a new metrics server from config
func NewMetricsServer(config MetricsConfig) *Server {
	return NewServer(config)
}

// ProvideMenuMetricsRecorder registers menu metrics on the server registry.
func ProvideMenuMetricsRecorder(server *Server) *MenuMetricsRecorder {
	return NewMenuMetricsRecorder(server.GetRegistry())
}
