// Package directive checks functions registered with pair directives.
package directive

//balanced:left irq
func irqSave() {}

//balanced:right irq
func irqRestore() {}

type conn struct{ busy bool }

// hold marks c busy.
//
//balanced:left conn(recv)
func (c *conn) hold() { c.busy = true }

//balanced:right conn(recv) - returned to the pool
func (c *conn) release() { c.busy = false }

//balanced:left conn(bogus) // want `malformed balanced directive: invalid object selector`
func (c *conn) broken() {}

func work() {}

// ===== SHOULD NOT REPORT =====

// [GOOD]: Save and restore
func goodIRQ() {
	irqSave()
	work()
	irqRestore()
}

// [GOOD]: Malformed directives register nothing
func goodBroken(c *conn) {
	c.broken()
	c.broken()
}

// ===== SHOULD REPORT =====

// [BAD]: Restored on one branch only
func badIRQ(cond bool) {
	irqSave()
	if cond {
		irqRestore()
	}
} // want `returning with unbalanced irq`

// [BAD]: Held twice
func badConn(c *conn) {
	c.hold()
	c.hold() // want `double call to 'directive.conn.hold'`
	c.release()
}
