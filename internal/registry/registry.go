// Package registry maintains the process-wide dpid -> active switch
// session mapping (spec §2.6, SwitchRegistry). It is mutated only by the
// state-change handler in the dispatcher and read by the dispatcher and
// the FlowProgrammer (spec §5).
package registry

import (
	"sync"

	logging "github.com/sirupsen/logrus"

	"github.com/octofabric/reactor/internal/ofproto"
)

// Session is whatever the southbound gateway needs to address a connected
// switch; the engine itself only ever looks sessions up by dpid, it never
// inspects their contents.
type Session interface {
	SwitchID() ofproto.SwitchID
}

// Registry is a mutex-guarded dpid -> Session map.
type Registry struct {
	mu       sync.RWMutex
	sessions map[ofproto.SwitchID]Session
	log      *logging.Entry
}

// New returns an empty Registry.
func New(log *logging.Entry) *Registry {
	return &Registry{
		sessions: make(map[ofproto.SwitchID]Session),
		log:      log.WithField("component", "switch-registry"),
	}
}

// Register adds (or replaces) the session for dpid. Called on
// OFPT_STATE_CHANGE -> MAIN_DISPATCHER (spec §4.3).
func (r *Registry) Register(s Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	dpid := s.SwitchID()
	if _, exists := r.sessions[dpid]; !exists {
		r.log.Debugf("register datapath: %s", dpid)
	}
	r.sessions[dpid] = s
}

// Unregister removes dpid's session. Called on OFPT_STATE_CHANGE ->
// DEAD_DISPATCHER (spec §4.3).
func (r *Registry) Unregister(dpid ofproto.SwitchID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[dpid]; exists {
		r.log.Debugf("unregister datapath: %s", dpid)
		delete(r.sessions, dpid)
	}
}

// Get returns the session for dpid, if currently registered.
func (r *Registry) Get(dpid ofproto.SwitchID) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[dpid]
	return s, ok
}

// Len reports the number of live switch sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// All returns a snapshot slice of every registered dpid.
func (r *Registry) All() []ofproto.SwitchID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ofproto.SwitchID, 0, len(r.sessions))
	for dpid := range r.sessions {
		out = append(out, dpid)
	}
	return out
}
