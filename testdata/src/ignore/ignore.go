// Package ignore checks //balanced:ignore directives with -families:
//
//	guard lock ; unlock ;
package ignore

func lock()   {}
func unlock() {}

// ===== SHOULD NOT REPORT =====

// [GOOD]: Ignored on the previous line
func ignoredDouble() {
	lock()
	//balanced:ignore double
	lock()
	unlock()
}

// [GOOD]: Ignored on the same line
func ignoredUnbalanced(cond bool) {
	lock()
	if cond {
		unlock()
	}
} //balanced:ignore unbalanced - released by the caller

// [GOOD]: Directive without checker names ignores all
func ignoredAll(cond bool) {
	lock()
	if cond {
		unlock()
	}
	//balanced:ignore
}

// ===== SHOULD REPORT =====

// [BAD]: Directive names the other checker
func wrongChecker() {
	lock()
	//balanced:ignore unbalanced // want `unused balanced:ignore directive for checker\(s\): unbalanced`
	lock() // want `double call to 'lock'`
	unlock()
}

// [BAD]: Only one of the listed checkers was needed
func partiallyUsed() {
	lock()
	//balanced:ignore double,unbalanced // want `unused balanced:ignore directive for checker\(s\): unbalanced`
	lock()
	unlock()
}

// [BAD]: Nothing to ignore
func unusedDirective() {
	lock()
	//balanced:ignore // want `unused balanced:ignore directive`
	unlock()
}

// [BAD]: Unknown checker name
func unknownChecker() {
	lock()
	//balanced:ignore deadlock // want `unused balanced:ignore directive for checker\(s\): deadlock`
	lock() // want `double call to 'lock'`
	unlock()
}
