// Package pair provides //balanced:left and //balanced:right directive
// parsing.
//
// # Overview
//
// The directives register functions of the analyzed package as one side
// of a protocol family, without a config file:
//
//	//balanced:left irq
//	func irqSave() { ... }
//
//	//balanced:right irq
//	func irqRestore() { ... }
//
// An object selector follows the family name in parentheses, as in the
// config text format:
//
//	//balanced:left conn(recv)
//	func (c *conn) hold() { ... }
//
// Methods of unexported types can be marked this way even though no spec
// string names them.
//
// # Scope
//
// Directives apply to the package being analyzed. Functions of other
// packages are registered with -config or -families.
package pair
