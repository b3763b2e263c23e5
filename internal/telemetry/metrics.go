// Package telemetry wires prometheus/client_golang metrics for the
// engine's packet-in, flow-programming and registry activity, grounded on
// the teacher's controller/api/destination/endpoint_metrics.go promauto
// style (here as struct fields rather than package variables), and the
// gRPC health server in grpcserver.go. The admin HTTP server lives in
// pkg/adminserver.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is the engine's prometheus surface. Every counter/gauge is
// registered once at construction against its own registry so multiple
// Dispatchers (as in tests) never collide on prometheus's default
// registerer.
type Metrics struct {
	PacketInTotal          *prometheus.CounterVec
	FlowModsInstalledTotal prometheus.Counter
	GroupModsInstalledTotal prometheus.Counter
	GroupIDAllocationsTotal prometheus.Counter
	SwitchesRegistered     prometheus.Gauge
	PathErrorsTotal        prometheus.Counter
}

// New registers and returns a fresh Metrics against reg.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PacketInTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reactor_packet_in_total",
				Help: "Total number of OFPT_PACKET_IN events handled, by ethertype.",
			},
			[]string{"eth_type"},
		),
		FlowModsInstalledTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "reactor_flow_mods_installed_total",
				Help: "Total number of OFPT_FLOW_MOD messages sent to switches.",
			},
		),
		GroupModsInstalledTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "reactor_group_mods_installed_total",
				Help: "Total number of OFPT_GROUP_MOD (fast-failover) messages sent to switches.",
			},
		),
		GroupIDAllocationsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "reactor_groupid_allocations_total",
				Help: "Total number of (forward, reverse) group id pairs allocated.",
			},
		),
		SwitchesRegistered: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "reactor_switches_registered",
				Help: "Number of switches currently registered in the SwitchRegistry.",
			},
		),
		PathErrorsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "reactor_path_errors_total",
				Help: "Total number of packet-ins dropped because the PathOracle returned no path.",
			},
		),
	}
}
