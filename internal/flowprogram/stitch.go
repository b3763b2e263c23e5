package flowprogram

import (
	"github.com/octofabric/reactor/internal/graph"
	"github.com/octofabric/reactor/internal/ofproto"
)

// LinkPort resolves the port on switch a that faces switch b.
type LinkPort func(a, b ofproto.SwitchID) (ofproto.Port, bool)

// usedCycle records one cycle consulted while walking the path, along
// with the direction in which forward traffic detours around it: walking
// the cycle from position p to p+dir. Every hop that uses the cycle
// rewrites the entry, and every hop stores the direction in that same
// orientation, so the entries for one covered edge agree. Spec §9's
// first open question ("cir_dir[j] is the direction chosen for
// path_cir[j] ... add to both or neither") is resolved here by recording
// (cycle, direction) as a single atomic map entry, never two parallel
// slices that can drift out of sync.
type usedCycle struct {
	cycle graph.Cycle
	dir   int
}

func cycleKey(c graph.Cycle) string {
	b := make([]byte, 0, len(c)*9)
	for _, v := range c {
		b = append(b, []byte(v.String())...)
		b = append(b, ',')
	}
	return string(b)
}

// stitchOffPath installs the return-stitch entries of spec §4.2.4 for
// every vertex of every used cycle that does not already appear on the
// primary path.
func stitchOffPath(e *Emission, used map[string]usedCycle, path []ofproto.SwitchID, tuple FlowTuple, link LinkPort) {
	onPath := make(map[ofproto.SwitchID]struct{}, len(path))
	for _, s := range path {
		onPath[s] = struct{}{}
	}

	back := tuple.Reverse()

	for _, uc := range used {
		c, d := uc.cycle, uc.dir
		k := c.Len()
		for p := 0; p < k; p++ {
			w := c.At(p)
			if _, onP := onPath[w]; onP {
				continue
			}
			pred := c.At(p - d)
			succ := c.At(p + d)

			inPort, ok1 := link(w, pred)
			outPort, ok2 := link(w, succ)
			if !ok1 || !ok2 {
				continue // spec §7: graph inconsistency, skip this stitch entry
			}

			e.exact(w, tuple, inPort, ofproto.OutputAction(outPort))
			e.exact(w, back, outPort, ofproto.OutputAction(inPort))
		}
	}
}
