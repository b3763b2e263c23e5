package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/octofabric/reactor/internal/dispatcher"
	"github.com/octofabric/reactor/internal/flowprogram"
	"github.com/octofabric/reactor/internal/gateway"
	"github.com/octofabric/reactor/internal/ofproto"
	"github.com/octofabric/reactor/internal/pathoracle"
	"github.com/octofabric/reactor/internal/registry"
	"github.com/octofabric/reactor/internal/telemetry"
	"github.com/octofabric/reactor/internal/topology"
	"github.com/octofabric/reactor/pkg/adminserver"
	"github.com/octofabric/reactor/pkg/config"
)

func newServeCommand() *cobra.Command {
	var (
		configPath  string
		listenAddr  string
		adminAddr   string
		healthAddr  string
		weight      string
		enablePprof bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reactive forwarding core",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := config.Config{
				ListenAddr:  listenAddr,
				AdminAddr:   adminAddr,
				HealthAddr:  healthAddr,
				Weight:      pathoracle.Weight(weight),
				EnablePprof: enablePprof,
			}
			cfg, err := config.Load(configPath, overrides)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), configPath, overrides, cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a JSON config file, re-read on change")
	cmd.Flags().StringVar(&listenAddr, "listen-addr", "", "southbound websocket listen address")
	cmd.Flags().StringVar(&adminAddr, "admin-addr", "", "HTTP admin/metrics listen address")
	cmd.Flags().StringVar(&healthAddr, "health-addr", "", "gRPC health-check listen address")
	cmd.Flags().StringVar(&weight, "weight", "", "path weighting mode: hop, delay or bw")
	cmd.Flags().BoolVar(&enablePprof, "enable-pprof", false, "expose /debug/pprof/* on the admin server")
	return cmd
}

// inboundFrame is the JSON envelope a southbound session sends upstream;
// the mirror image of gateway's outbound envelope.
type inboundFrame struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

func runServe(ctx context.Context, configPath string, overrides, cfg config.Config) error {
	log.Infof("starting reactor serve (weight=%s)", cfg.Weight)

	reg := registry.New(log.NewEntry(log.StandardLogger()))
	topo := topology.NewStore()
	wsgw := gateway.NewWSGateway()
	alloc := flowprogram.NewAllocator()
	oracle := pathoracle.NewCachedOracle(cfg.Weight, nil, nil)

	promReg := prometheus.NewRegistry()
	metrics := telemetry.New(promReg)

	disp := dispatcher.New(topo, oracle, reg, wsgw, alloc, metrics, log.NewEntry(log.StandardLogger()))

	ready := false
	adminSrv := adminserver.NewServer(cfg.AdminAddr, promReg, cfg.EnablePprof, &ready)
	go func() {
		log.Infof("serving admin endpoint on %s", cfg.AdminAddr)
		if err := adminSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("admin server error")
		}
	}()

	healthSrv, _ := telemetry.NewHealthServer()
	healthLis, err := net.Listen("tcp", cfg.HealthAddr)
	if err != nil {
		return err
	}
	go func() {
		log.Infof("serving gRPC health on %s", cfg.HealthAddr)
		if err := healthSrv.Serve(healthLis); err != nil {
			log.WithError(err).Error("health server error")
		}
	}()

	southboundCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go config.WatchWeight(southboundCtx, configPath, overrides, func(updated config.Config) {
		log.Infof("config changed: weight mode now %s", updated.Weight)
		oracle.SetWeight(updated.Weight)
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/switch", southboundHandler(disp, wsgw))
	southboundSrv := &http.Server{Addr: cfg.ListenAddr, Handler: mux}
	go func() {
		log.Infof("serving southbound websocket on %s", cfg.ListenAddr)
		if err := southboundSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("southbound server error")
		}
	}()

	ready = true

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down reactor")
	cancel()
	_ = southboundSrv.Close()
	healthSrv.GracefulStop()
	return adminSrv.Shutdown(context.Background())
}

// southboundHandler upgrades one switch's connection, learns its dpid from
// the first "hello" frame, binds it into the gateway and registry, and
// then feeds every subsequent packet_in/error frame into the dispatcher
// until the connection closes. Frames of any other kind are ignored; the
// switch's state changes are derived from the connection opening and
// closing.
func southboundHandler(disp *dispatcher.Dispatcher, wsgw *gateway.WSGateway) http.HandlerFunc {
	upgrader := websocket.Upgrader{}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.WithError(err).Warn("southbound: upgrade failed")
			return
		}
		defer conn.Close()

		var hello struct {
			Dpid uint64 `json:"dpid"`
		}
		if err := conn.ReadJSON(&hello); err != nil {
			log.WithError(err).Warn("southbound: missing hello frame")
			return
		}
		dpid := ofproto.SwitchID(hello.Dpid)
		sess := wsgw.Bind(dpid, conn)
		disp.HandleStateChange(ofproto.StateChange{Switch: dpid, State: ofproto.StateMain}, sess)
		defer func() {
			wsgw.Remove(dpid)
			disp.HandleStateChange(ofproto.StateChange{Switch: dpid, State: ofproto.StateDead}, nil)
		}()

		for {
			var in inboundFrame
			if err := conn.ReadJSON(&in); err != nil {
				return
			}
			switch in.Kind {
			case "packet_in":
				var pi ofproto.PacketIn
				if err := json.Unmarshal(in.Payload, &pi); err == nil {
					disp.HandlePacketIn(r.Context(), pi)
				}
			case "error":
				var em ofproto.ErrorMsg
				if err := json.Unmarshal(in.Payload, &em); err == nil {
					disp.HandleError(em)
				}
			}
		}
	}
}
