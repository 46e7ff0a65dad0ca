package state

// Tracker records, for the function under analysis, which objects were
// observed with no prior state and therefore are assumed to start on a side.
//
// A Left call with no prior state means the object started on the Right, and
// vice versa. An object found in both sets has contradictory evidence.
type Tracker struct {
	startLeft  map[Object]struct{}
	startRight map[Object]struct{}
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		startLeft:  make(map[Object]struct{}),
		startRight: make(map[Object]struct{}),
	}
}

// Assume records that obj is assumed to start on side.
func (t *Tracker) Assume(obj Object, side Side) {
	if side == Left {
		t.startLeft[obj] = struct{}{}
		return
	}
	t.startRight[obj] = struct{}{}
}

// StartsOn reports the recorded assumptions for obj.
func (t *Tracker) StartsOn(obj Object) (left, right bool) {
	_, left = t.startLeft[obj]
	_, right = t.startRight[obj]
	return left, right
}

// Len returns the number of recorded assumptions.
func (t *Tracker) Len() int {
	return len(t.startLeft) + len(t.startRight)
}

// Reset drops every assumption.
func (t *Tracker) Reset() {
	clear(t.startLeft)
	clear(t.startRight)
}

// Resolve turns StartState into a concrete side for obj.
func (t *Tracker) Resolve(obj Object) State {
	left, right := t.StartsOn(obj)
	switch {
	case left && right:
		return Undefined
	case left:
		return StateLeft
	case right:
		return StateRight
	default:
		return Undefined
	}
}

// ResolveSet replaces a StartState member of possible with its resolution.
func (t *Tracker) ResolveSet(obj Object, possible Set) Set {
	var out Set
	for _, st := range possible.States() {
		if st == StartState {
			st = t.Resolve(obj)
		}
		out = out.Add(st)
	}
	return out
}
