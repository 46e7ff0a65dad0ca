package state

import "testing"

func TestSideOpposite(t *testing.T) {
	if Left.Opposite() != Right {
		t.Errorf("Left.Opposite() = %v, want right", Left.Opposite())
	}
	if Right.Opposite() != Left {
		t.Errorf("Right.Opposite() = %v, want left", Right.Opposite())
	}
	if Left.State() != StateLeft || Right.State() != StateRight {
		t.Error("Side.State() does not map to the matching state")
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name   string
		set    Set
		want   int
		merged bool
		str    string
	}{
		{name: "empty", set: Of(), want: 0, str: "{}"},
		{name: "single", set: Of(StateLeft), want: 1, str: "{left}"},
		{name: "duplicate", set: Of(StateLeft, StateLeft), want: 1, str: "{left}"},
		{name: "two", set: Of(StateRight, StartState), want: 2, merged: true, str: "{right, start_state}"},
		{name: "all", set: Of(StateLeft, StateRight, StartState, Undefined), want: 4, merged: true, str: "{left, right, start_state, undefined}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Len(); got != tt.want {
				t.Errorf("Len() = %d, want %d", got, tt.want)
			}
			if got := tt.set.Merged(); got != tt.merged {
				t.Errorf("Merged() = %v, want %v", got, tt.merged)
			}
			if got := tt.set.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
		})
	}

	s := Of(StateLeft).Union(Of(StartState))
	if !s.Has(StateLeft) || !s.Has(StartState) || s.Has(StateRight) {
		t.Errorf("Union() = %v", s)
	}
}

func TestTrackerResolve(t *testing.T) {
	x := Object{Family: "lock", Name: "x"}
	y := Object{Family: "lock", Name: "y"}

	tests := []struct {
		name   string
		assume []Side
		want   State
	}{
		{name: "neither", want: Undefined},
		{name: "left only", assume: []Side{Left}, want: StateLeft},
		{name: "right only", assume: []Side{Right}, want: StateRight},
		{name: "both", assume: []Side{Left, Right}, want: Undefined},
		{name: "right twice", assume: []Side{Right, Right}, want: StateRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			for _, side := range tt.assume {
				tr.Assume(x, side)
			}
			if got := tr.Resolve(x); got != tt.want {
				t.Errorf("Resolve(x) = %v, want %v", got, tt.want)
			}
			if got := tr.Resolve(y); got != Undefined {
				t.Errorf("Resolve(y) = %v, want undefined", got)
			}
		})
	}
}

func TestTrackerSymDisambiguates(t *testing.T) {
	symA, symB := new(int), new(int)
	a := Object{Family: "lock", Name: "mu", Sym: symA}
	b := Object{Family: "lock", Name: "mu", Sym: symB}

	tr := NewTracker()
	tr.Assume(a, Right)

	if got := tr.Resolve(a); got != StateRight {
		t.Errorf("Resolve(a) = %v, want right", got)
	}
	if got := tr.Resolve(b); got != Undefined {
		t.Errorf("Resolve(b) = %v, want undefined", got)
	}
}

func TestTrackerResolveSet(t *testing.T) {
	x := Object{Name: "x"}
	tr := NewTracker()
	tr.Assume(x, Right)

	got := tr.ResolveSet(x, Of(StateLeft, StartState))
	if got != Of(StateLeft, StateRight) {
		t.Errorf("ResolveSet() = %v, want {left, right}", got)
	}

	got = tr.ResolveSet(x, Of(StateRight, StartState))
	if got != Of(StateRight) {
		t.Errorf("ResolveSet() = %v, want {right}", got)
	}
}

func TestTrackerReset(t *testing.T) {
	x := Object{Name: "x"}
	tr := NewTracker()
	tr.Assume(x, Left)
	tr.Assume(x, Right)

	if tr.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tr.Len())
	}

	tr.Reset()

	if tr.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", tr.Len())
	}
	if left, right := tr.StartsOn(x); left || right {
		t.Errorf("StartsOn(x) after Reset = %v, %v", left, right)
	}
}
