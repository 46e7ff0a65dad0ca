// Package basic checks protocol families given with -families:
//
//	preempt preemptDisable ; preemptEnable ;
//	conn(arg0) hold ; drop ;
package basic

func preemptDisable() {}
func preemptEnable()  {}

type handle struct{ id int }

func hold(h *handle) {}
func drop(h *handle) {}

func work() {}

// ===== SHOULD NOT REPORT =====

// [GOOD]: Disable and enable in sequence
func goodPair() {
	preemptDisable()
	work()
	preemptEnable()
}

// [GOOD]: Both branches enable again
func goodBothBranches(cond bool) {
	preemptDisable()
	if cond {
		work()
		preemptEnable()
	} else {
		preemptEnable()
	}
}

// [GOOD]: Balanced inside a loop
func goodLoop(n int) {
	for i := 0; i < n; i++ {
		preemptDisable()
		work()
		preemptEnable()
	}
}

// [GOOD]: Every return point enables again
func goodEarlyReturn(cond bool) error {
	preemptDisable()
	if cond {
		preemptEnable()
		return nil
	}
	work()
	preemptEnable()
	return nil
}

// [GOOD]: Deferred enable runs at every return
func goodDeferred(cond bool) {
	preemptDisable()
	defer preemptEnable()
	if cond {
		return
	}
	work()
}

// [GOOD]: A balanced section on one path leaves the entry state intact
func goodSectionOnOnePath(cond bool) {
	if cond {
		preemptDisable()
		work()
		preemptEnable()
	}
}

// [GOOD]: Enabled on an inner branch before disabling on the outer one
func goodNestedEnable(a, c bool) {
	if a {
		if c {
			preemptEnable()
		}
		preemptDisable()
	}
}

// [GOOD]: Enable first, disable last
func goodEnableFirst(cond bool) {
	preemptEnable()
	if cond {
		work()
	}
	preemptDisable()
}

// [GOOD]: Single paths are not audited
func goodLeaveDisabled() {
	preemptDisable()
}

// [GOOD]: Entered disabled
func enableOnly() {
	preemptEnable()
}

// [GOOD]: What enableOnly assumed on entry does not carry over
func goodFreshScope(cond bool) {
	if cond {
		preemptDisable()
		preemptEnable()
	}
}

// [GOOD]: Each argument is tracked on its own
func goodArgs(a, b *handle) {
	hold(a)
	hold(b)
	drop(b)
	drop(a)
}

// ===== SHOULD REPORT =====

// [BAD]: Disabled twice
func badDouble() {
	preemptDisable()
	preemptDisable() // want `double call to 'preemptDisable'`
	preemptEnable()
}

// [BAD]: Enabled on one branch only
func badBranch(cond bool) {
	preemptDisable()
	if cond {
		preemptEnable()
	}
} // want `returning with unbalanced preempt`

// [BAD]: Enabled on one branch of a function entered disabled
func badConditionalEnable(cond bool) {
	if cond {
		preemptEnable()
	}
} // want `returning with unbalanced preempt`

// [BAD]: Branches end in opposite states
func badDiverge(cond bool) error {
	if cond {
		preemptDisable()
	} else {
		preemptEnable()
	}
	return nil // want `returning with unbalanced preempt`
}

// [BAD]: Disabled again on a path that never enabled
func badDoubleOnOnePath(cond bool) {
	preemptDisable()
	if cond {
		preemptEnable()
	}
	preemptDisable() // want `double call to 'preemptDisable'`
	preemptEnable()
}

// [BAD]: Disabled again on the next iteration
func badLoop(n int) {
	for i := 0; i < n; i++ {
		preemptDisable() // want `double call to 'preemptDisable'`
	}
} // want `returning with unbalanced preempt`

// [BAD]: Cases disagree on the entry state
func badUndefined(mode int) {
	switch mode {
	case 0:
		preemptDisable()
	case 1:
		preemptEnable()
	}
} // want `returning with unbalanced preempt`

// [BAD]: One handle dropped on one path only
func badArgs(a, b *handle, cond bool) {
	hold(a)
	hold(b)
	if cond {
		drop(a)
	}
	drop(b)
} // want `returning with unbalanced a`

// [BAD]: Handle held twice
func badArgsDouble(a *handle) {
	hold(a)
	hold(a) // want `double call to 'hold'`
	drop(a)
}
