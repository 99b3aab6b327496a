package physics

import "fmt"

// Handle names a body in an Arena. A handle whose slot has since been
// recycled no longer resolves.
type Handle struct {
	Index uint32
	Gen   uint32
}

// NoHandle never resolves.
var NoHandle = Handle{}

// Valid reports whether h was issued by an arena. It does not check liveness.
func (h Handle) Valid() bool { return h.Gen != 0 }

func (h Handle) String() string {
	return fmt.Sprintf("body#%d.%d", h.Index, h.Gen)
}

type slot struct {
	body Body
	gen  uint32
}

// Arena stores bodies in recycled slots tagged with a generation counter.
type Arena struct {
	slots []slot
	free  []uint32
	live  int
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Insert stores b and returns its handle.
func (a *Arena) Insert(b Body) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}
	s := &a.slots[idx]
	s.gen++
	s.body = b
	a.live++
	return Handle{Index: idx, Gen: s.gen}
}

// Get resolves h. It reports false for removed or recycled handles.
func (a *Arena) Get(h Handle) (Body, bool) {
	if !h.Valid() || int(h.Index) >= len(a.slots) {
		return nil, false
	}
	s := a.slots[h.Index]
	if s.gen != h.Gen || s.body == nil {
		return nil, false
	}
	return s.body, true
}

// Remove frees the slot behind h. It reports whether h was live.
func (a *Arena) Remove(h Handle) bool {
	if _, ok := a.Get(h); !ok {
		return false
	}
	a.slots[h.Index].body = nil
	a.free = append(a.free, h.Index)
	a.live--
	return true
}

// Len returns the number of live bodies.
func (a *Arena) Len() int { return a.live }

// Each calls fn for every live body in slot order.
func (a *Arena) Each(fn func(Handle, Body)) {
	for i, s := range a.slots {
		if s.body != nil {
			fn(Handle{Index: uint32(i), Gen: s.gen}, s.body)
		}
	}
}
