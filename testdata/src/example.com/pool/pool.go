// Package pool checks that diagnostics name functions by their package
// name rather than the full import path.
package pool

type Conn struct{ open bool }

//balanced:left pool(recv)
func (c *Conn) Get() { c.open = true }

//balanced:right pool(recv)
func (c *Conn) Put() { c.open = false }

// ===== SHOULD NOT REPORT =====

// [GOOD]: Taken and returned
func goodGetPut(c *Conn) {
	c.Get()
	c.Put()
}

// ===== SHOULD REPORT =====

// [BAD]: Taken twice
func badGetTwice(c *Conn) {
	c.Get()
	c.Get() // want `double call to 'pool.Conn.Get'`
	c.Put()
}

// [BAD]: Returned twice on one path
func badPutTwice(c *Conn, cond bool) {
	c.Get()
	if cond {
		c.Put()
	}
	c.Put() // want `double call to 'pool.Conn.Put'`
}
