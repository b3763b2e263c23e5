// Package dispatcher implements ReactiveDispatcher (spec §2.5, §4.3): the
// event loop that turns packet-in, state-change and error notifications
// into TopologyView lookups, SwitchRegistry membership changes and
// FlowProgrammer invocations. It owns no network I/O of its own — every
// outbound message goes through a gateway.Gateway, and every inbound event
// arrives already decoded off the southbound transport's wire framing.
package dispatcher

import (
	"context"

	logging "github.com/sirupsen/logrus"

	"github.com/octofabric/reactor/internal/flowprogram"
	"github.com/octofabric/reactor/internal/gateway"
	"github.com/octofabric/reactor/internal/ofproto"
	"github.com/octofabric/reactor/internal/pathoracle"
	"github.com/octofabric/reactor/internal/registry"
	"github.com/octofabric/reactor/internal/telemetry"
	"github.com/octofabric/reactor/internal/topology"
)

// Dispatcher wires the engine's read-side collaborators (TopologyView,
// PathOracle, SwitchRegistry) to its one write-side collaborator
// (MessageGateway). It holds no topology or path state of its own.
type Dispatcher struct {
	topo     *topology.Store
	oracle   pathoracle.Oracle
	reg      *registry.Registry
	gw       gateway.Gateway
	groupIDs *flowprogram.Allocator
	metrics  *telemetry.Metrics
	log      *logging.Entry
}

// New returns a Dispatcher wired to its collaborators. None of the
// pointers may be nil.
func New(topo *topology.Store, oracle pathoracle.Oracle, reg *registry.Registry, gw gateway.Gateway, groupIDs *flowprogram.Allocator, metrics *telemetry.Metrics, log *logging.Entry) *Dispatcher {
	return &Dispatcher{
		topo:     topo,
		oracle:   oracle,
		reg:      reg,
		gw:       gw,
		groupIDs: groupIDs,
		metrics:  metrics,
		log:      log.WithField("component", "dispatcher"),
	}
}

// HandleStateChange mirrors a switch's MAIN_DISPATCHER/DEAD_DISPATCHER
// transition into SwitchRegistry membership (spec §4.3). sess is the
// southbound session to register; it is ignored on a DeadDispatcher
// transition.
func (d *Dispatcher) HandleStateChange(sc ofproto.StateChange, sess registry.Session) {
	switch sc.State {
	case ofproto.StateMain:
		if sess != nil {
			d.reg.Register(sess)
		}
	case ofproto.StateDead:
		d.reg.Unregister(sc.Switch)
	}
	d.metrics.SwitchesRegistered.Set(float64(d.reg.Len()))
}

// HandleError logs an observed OFPT_ERROR without touching engine state
// (spec §7: "no engine-side recovery; surfaced via logging only").
func (d *Dispatcher) HandleError(em ofproto.ErrorMsg) {
	d.log.WithFields(logging.Fields{
		"dpid": em.Switch,
		"type": em.Type,
		"code": em.Code,
	}).Error("switch reported OFPT_ERROR")
}

// HandlePacketIn is the core reactive-forwarding entry point (spec §4.3).
// A frame that fails to decode, or whose endpoints aren't yet located, is
// dropped silently — the next ARP round will populate the access table
// (spec §7: "missing datum" policy). A panic raised while handling the
// packet-in is recovered and logged, so it never escapes to the caller.
func (d *Dispatcher) HandlePacketIn(ctx context.Context, pi ofproto.PacketIn) {
	defer func() {
		if r := recover(); r != nil {
			d.log.WithField("dpid", pi.Switch).Errorf("packet_in handling panicked: %v", r)
		}
	}()

	fr, ok := decode(pi.Data)
	if !ok {
		return
	}

	view := d.topo.Load()

	switch {
	case fr.ARP != nil:
		d.metrics.PacketInTotal.WithLabelValues("arp").Inc()
		d.handleARP(ctx, pi, fr.ARP, view)
	case fr.IPv4 != nil:
		d.metrics.PacketInTotal.WithLabelValues("ipv4").Inc()
		d.handleIPv4(ctx, pi, fr.IPv4, view)
	}
}

// handleARP resolves the target IP via TopologyView.Locate: a hit sends a
// single targeted PacketOut, a miss floods every unknown access port
// (spec §4.3's ARP path).
func (d *Dispatcher) handleARP(ctx context.Context, pi ofproto.PacketIn, arp *arpFrame, view *topology.View) {
	if key, ok := view.Locate(arp.TargetIP); ok {
		po := ofproto.PacketOut{
			Switch:   key.Switch,
			BufferID: ofproto.NoBuffer,
			InPort:   ofproto.PortController,
			OutPort:  key.Port,
			Data:     pi.Data,
		}
		if err := d.gw.SendPacketOut(ctx, po); err != nil {
			d.log.WithError(err).WithField("dpid", key.Switch).Warn("arp reply packet_out failed")
		}
		return
	}

	for _, ak := range view.UnknownAccessPorts() {
		if ak.Switch == pi.Switch && ak.Port == pi.InPort {
			continue // never flood back out the port the request arrived on
		}
		po := ofproto.PacketOut{
			Switch:   ak.Switch,
			BufferID: ofproto.NoBuffer,
			InPort:   ofproto.PortController,
			OutPort:  ak.Port,
			Data:     pi.Data,
		}
		if err := d.gw.SendPacketOut(ctx, po); err != nil {
			d.log.WithError(err).WithField("dpid", ak.Switch).Warn("arp flood packet_out failed")
		}
	}
}

// handleIPv4 resolves both endpoints, asks the PathOracle for a primary
// path and hands the result to FlowProgrammer (spec §4.3's IPv4 path,
// §4.2). An unknown endpoint is dropped silently; no path or a
// FlowProgrammer error is logged and dropped — the packet itself is never
// retried by the dispatcher.
func (d *Dispatcher) handleIPv4(ctx context.Context, pi ofproto.PacketIn, ip *ipv4Frame, view *topology.View) {
	srcKey, okSrc := view.Locate(ip.Src)
	dstKey, okDst := view.Locate(ip.Dst)
	if !okSrc || !okDst {
		return
	}

	pair, ok := d.oracle.Paths(srcKey.Switch, dstKey.Switch)
	if !ok {
		d.metrics.PathErrorsTotal.Inc()
		d.log.WithFields(logging.Fields{"src": ip.Src, "dst": ip.Dst}).Info("Path error!")
		return
	}

	fwd, rev := d.groupIDs.Next()
	d.metrics.GroupIDAllocationsTotal.Inc()
	req := flowprogram.Request{
		Path:     pair.Primary,
		Cycles:   view.Cycles,
		LinkPort: view.PortFacing,
		Tuple: flowprogram.FlowTuple{
			EthType: ofproto.EthTypeIPv4,
			Src:     ip.Src.String(),
			Dst:     ip.Dst.String(),
		},
		InPort:        pi.InPort,
		DstAccessPort: dstKey.Port,
		GroupFwd:      fwd,
		GroupRev:      rev,
		BufferID:      pi.BufferID,
		Data:          pi.Data,
	}

	emission, po, err := flowprogram.Program(req)
	if err != nil {
		d.log.WithError(err).Info("flow programming aborted")
		return
	}
	d.emit(ctx, emission, po)
}

// emit sends every message of an Emission through the gateway, logging
// and continuing past any individual send failure rather than aborting
// the remainder — a single unreachable switch along the path never blocks
// programming the rest of it.
func (d *Dispatcher) emit(ctx context.Context, e flowprogram.Emission, po *ofproto.PacketOut) {
	for _, fm := range e.Flows {
		if err := d.gw.SendFlowMod(ctx, fm); err != nil {
			d.log.WithError(err).WithField("dpid", fm.Switch).Warn("send flow_mod failed")
			continue
		}
		d.metrics.FlowModsInstalledTotal.Inc()
	}
	for _, gm := range e.Groups {
		if err := d.gw.SendGroupMod(ctx, gm); err != nil {
			d.log.WithError(err).WithField("dpid", gm.Switch).Warn("send group_mod failed")
			continue
		}
		d.metrics.GroupModsInstalledTotal.Inc()
	}
	if po != nil {
		if err := d.gw.SendPacketOut(ctx, *po); err != nil {
			d.log.WithError(err).WithField("dpid", po.Switch).Warn("send packet_out failed")
		}
	}
}
