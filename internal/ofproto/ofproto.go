// Package ofproto defines the OpenFlow 1.3 control-message vocabulary the
// reactive forwarding core consumes and emits (spec §6). It deliberately
// stops at the data types: encoding these onto (or decoding them off) a
// wire socket is the job of a southbound codec, which is out of scope for
// this module (spec §1) — ofproto values are handed to a
// gateway.Gateway implementation that owns the actual bytes.
package ofproto

import "fmt"

// SwitchID is an OpenFlow datapath identifier.
type SwitchID uint64

func (d SwitchID) String() string { return fmt.Sprintf("%016x", uint64(d)) }

// Port is an OpenFlow port number local to one switch.
type Port uint32

// Reserved port sentinels used by the engine (spec §3, §6).
const (
	// PortController routes a packet to the control channel.
	PortController Port = 0xfffffffd
	// PortLocal is the switch's local networking stack port.
	PortLocal Port = 0xfffffffe
	// PortInPort echoes the packet back out the port it arrived on.
	PortInPort Port = 0xfffffff8
	// PortAny is Port(0), the value the original source used to mean "no
	// in_port constraint". Port(0) is also a legal, specific port number,
	// so matches never use it as a wildcard: the AnyInPort marker below
	// expresses "no in_port constraint" instead (see design note on the
	// "0 means wildcard" bug).
	PortAny Port = 0
)

// NoBuffer marks a PacketOut/PacketIn as carrying no switch-side buffer.
const NoBuffer uint32 = 0xffffffff

// InPort is an explicit optional in_port match constraint. The original
// Python source overloads src_port==0 to mean "no in_port in the match";
// that conflates "no constraint" with "constrain to port 0". Set==false
// here means "no in_port clause in the match" (the forward/backward
// *_wildcard entries of spec §4.2.3); Set==true with Port==0 is a genuine,
// if unusual, match against port zero.
type InPort struct {
	Port Port
	Set  bool
}

// AnyInPort is the zero-value "no in_port constraint" marker.
var AnyInPort = InPort{}

// ExactInPort builds a constrained in_port match.
func ExactInPort(p Port) InPort { return InPort{Port: p, Set: true} }

// EthType values used in matches.
const (
	EthTypeARP  uint16 = 0x0806
	EthTypeIPv4 uint16 = 0x0800
)

// Match is the subset of OFPMatch fields the engine ever sets (spec §6):
// eth_type is always present; ipv4_src/ipv4_dst/in_port are optional.
type Match struct {
	EthType uint16
	IPv4Src *string // nil when unset
	IPv4Dst *string // nil when unset
	InPort  InPort
}

// Action is either an output-to-port action or a group action, per spec §6
// ("either OFPActionOutput(port) or OFPActionGroup(group_id)"): IsGroup
// selects which one, GroupID is meaningful only when it is true and Output
// only when it is false.
type Action struct {
	Output  Port
	IsGroup bool
	GroupID GroupID
}

// OutputAction builds a plain output action.
func OutputAction(p Port) Action { return Action{Output: p} }

// GroupAction builds a group-indirection action.
func GroupAction(gid GroupID) Action { return Action{IsGroup: true, GroupID: gid} }

// GroupID is a 32-bit OpenFlow group identifier (spec §3: monotonically
// increasing, stepped by 2 per packet-in, never reused).
type GroupID uint32

// FlowMod is an OFPT_FLOW_MOD: priority 1, no timeouts, a single
// OFPIT_APPLY_ACTIONS instruction (spec §6).
type FlowMod struct {
	Switch   SwitchID
	Priority uint16
	Match    Match
	Actions  []Action
}

// Bucket is one OFPBucket of a Fast-Failover group: actions are tried in
// bucket order, the first bucket whose WatchPort is up is used.
type Bucket struct {
	WatchPort Port
	Actions   []Action
}

// GroupMod is an OFPT_GROUP_MOD, command=OFPGC_ADD, type=OFPGT_FF, with
// exactly two buckets (spec §6, invariant 4 of spec §8).
type GroupMod struct {
	Switch  SwitchID
	GroupID GroupID
	Buckets [2]Bucket
}

// PacketOut is an OFPT_PACKET_OUT. Exactly one of BufferID (valid, i.e. not
// NoBuffer) or Data (non-nil) is set per spec §4.2.6.
type PacketOut struct {
	Switch    SwitchID
	BufferID  uint32
	InPort    Port
	OutPort   Port
	Data      []byte
}

// PacketIn is an OFPT_PACKET_IN as delivered to the dispatcher.
type PacketIn struct {
	Switch   SwitchID
	InPort   Port
	BufferID uint32
	Data     []byte
}

// PortStatus is an OFPT_PORT_STATUS notification (registry maintenance
// only; the engine does not act on individual port flaps beyond what the
// FF groups already handle in the dataplane).
type PortStatus struct {
	Switch SwitchID
	Port   Port
	Live   bool
}

// DispatcherState mirrors Ryu's MAIN_DISPATCHER/DEAD_DISPATCHER states that
// drive SwitchRegistry membership (spec §4.3).
type DispatcherState int

const (
	// StateMain: the switch handshake completed and it is accepting flow
	// programming.
	StateMain DispatcherState = iota
	// StateDead: the switch connection was torn down.
	StateDead
)

// StateChange is an OFPT_STATE_CHANGE event.
type StateChange struct {
	Switch SwitchID
	State  DispatcherState
}

// ErrorMsg is an observed OFPT_ERROR (spec §7: "no engine-side recovery").
type ErrorMsg struct {
	Switch SwitchID
	Type   uint16
	Code   uint16
}
