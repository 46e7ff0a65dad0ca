package ssa

import (
	"cmp"
	"fmt"
	"go/token"
	"maps"
	"slices"

	"golang.org/x/tools/go/ssa"

	"github.com/mpyw/balanced/internal/balance"
	"github.com/mpyw/balanced/internal/registry"
	"github.com/mpyw/balanced/internal/state"
)

// Reporter receives the diagnostics of the engine.
type Reporter func(pos token.Pos, category, message string)

// callSite is a call to a registered function.
type callSite struct {
	name     string
	side     state.Side
	obj      state.Object
	pos      token.Pos
	deferred bool
}

// path is the dataflow state of the paths reaching a program point that
// have the same deferred calls pending.
type path struct {
	objs map[state.Object]state.Set
	// fresh holds objects whose state only arrived over back edges.
	fresh  map[state.Object]bool
	defers []*callSite
}

func newPath() *path {
	return &path{
		objs:  make(map[state.Object]state.Set),
		fresh: make(map[state.Object]bool),
	}
}

func (p *path) clone() *path {
	return &path{objs: maps.Clone(p.objs), fresh: maps.Clone(p.fresh), defers: slices.Clone(p.defers)}
}

func (p *path) equal(o *path) bool {
	return maps.Equal(p.objs, o.objs) && maps.Equal(p.fresh, o.fresh) && slices.Equal(p.defers, o.defers)
}

func (p *path) set(obj state.Object, st state.State) {
	p.objs[obj] = state.Of(st)
	delete(p.fresh, obj)
}

func (p *path) pushDefer(site *callSite) {
	if !slices.Contains(p.defers, site) {
		p.defers = append(p.defers, site)
	}
}

// frame is the dataflow state at a program point, split by pending defers
// so a deferred call only runs on the paths that registered it.
type frame []*path

func (f frame) clone() frame {
	out := make(frame, len(f))
	for i, p := range f {
		out[i] = p.clone()
	}
	return out
}

func (f frame) equal(o frame) bool {
	return slices.EqualFunc(f, o, (*path).equal)
}

// merge unions the paths of f into one. An object missing on a path
// contributes StartState.
func (f frame) merge() *path {
	if len(f) == 1 {
		return f[0]
	}

	merged := newPath()
	for _, p := range f {
		for obj := range p.objs {
			merged.objs[obj] = 0
		}
	}
	for obj := range merged.objs {
		for _, p := range f {
			s, ok := p.objs[obj]
			if !ok {
				s = state.Of(state.StartState)
			}
			merged.objs[obj] = merged.objs[obj].Union(s)
		}
	}
	return merged
}

// exit is a return point with the state that reaches it.
type exit struct {
	ret  *ssa.Return
	path *path
}

type reportKey struct {
	pos      token.Pos
	category string
	message  string
}

// Engine walks SSA control flow and drives a [balance.Checker].
//
// Analysis of one function runs in three phases. Block entry states are
// first solved to a fixed point; a tracked object missing on a reachable
// predecessor enters the join as StartState. Every reachable block is then
// replayed once from its solved entry state, feeding registered calls to the
// checker. Return points are audited last, after all calls were observed.
type Engine struct {
	reg    *registry.Registry
	report Reporter

	frame frame
	// view is the frame as it was before the current call.
	view      frame
	cur       *path
	pos       token.Pos
	inlined   bool
	reachable bool
	reported  map[reportKey]bool
}

var _ balance.Engine = (*Engine)(nil)

// NewEngine creates an engine for the registered functions.
func NewEngine(reg *registry.Registry, report Reporter) *Engine {
	return &Engine{reg: reg, report: report}
}

// Analyze checks fn and clears the checker's observations afterwards.
func (e *Engine) Analyze(fn *ssa.Function, c *balance.Checker) {
	defer c.AfterFunc()

	if len(fn.Blocks) == 0 {
		return
	}

	e.inlined = isSubstitution(fn)
	e.reported = make(map[reportKey]bool)

	sites := e.collect(fn)
	if len(sites) == 0 {
		return
	}

	entries := e.solve(fn, sites)

	var exits []exit
	for _, b := range fn.Blocks {
		in, ok := entries[b]
		if !ok {
			continue
		}
		e.frame = in.clone()
		e.reachable = true

		for _, instr := range b.Instrs {
			if ret, ok := instr.(*ssa.Return); ok {
				for _, p := range e.frame {
					e.cur = p
					e.runDefers(c)
				}
				exits = append(exits, exit{ret: ret, path: e.frame.merge()})
				continue
			}

			site := sites[instr]
			if site == nil {
				continue
			}
			if site.deferred {
				for _, p := range e.frame {
					p.pushDefer(site)
				}
				continue
			}
			e.view = e.frame.clone()
			for _, p := range e.frame {
				e.cur = p
				e.pos = site.pos
				c.OnCall(e, site.name, site.side, site.obj)
			}
		}
	}

	for _, x := range exits {
		e.cur = x.path
		e.frame = frame{x.path}
		e.view = e.frame
		if x.ret.Pos().IsValid() {
			e.pos = x.ret.Pos()
			c.AuditReturn(e)
		} else {
			e.pos = endPos(fn)
			c.EndFunc(e)
		}
	}
}

// isSubstitution reports whether fn is a specialised copy of another
// function body rather than a function written in source.
func isSubstitution(fn *ssa.Function) bool {
	return fn.Synthetic != "" || fn.Origin() != nil
}

// collect finds registered calls and deferred calls in fn.
func (e *Engine) collect(fn *ssa.Function) map[ssa.Instruction]*callSite {
	sites := make(map[ssa.Instruction]*callSite)

	for _, b := range fn.Blocks {
		for _, instr := range b.Instrs {
			var call *ssa.CallCommon
			deferred := false

			switch instr := instr.(type) {
			case *ssa.Call:
				call = instr.Common()
			case *ssa.Defer:
				call = instr.Common()
				deferred = true
			default:
				continue
			}

			entry, ok := e.reg.Match(ExtractCalledFunc(call))
			if !ok {
				continue
			}
			obj, ok := ObjectOf(entry, call)
			if !ok {
				continue
			}

			pos := instr.Pos()
			if !pos.IsValid() {
				pos = call.Pos()
			}
			sites[instr] = &callSite{
				name:     entry.Func.FullName(),
				side:     entry.Side,
				obj:      obj,
				pos:      pos,
				deferred: deferred,
			}
		}
	}

	disambiguate(fn, sites)
	return sites
}

// disambiguate appends the declaring line to the names of distinct objects
// that are spelled the same, e.g. a shadowed local.
func disambiguate(fn *ssa.Function, sites map[ssa.Instruction]*callSite) {
	type key struct{ family, name string }
	syms := make(map[key][]any)
	for _, site := range sites {
		k := key{site.obj.Family, site.obj.Name}
		if site.obj.Sym != nil && !slices.Contains(syms[k], site.obj.Sym) {
			syms[k] = append(syms[k], site.obj.Sym)
		}
	}

	renamed := make(map[state.Object]state.Object)
	for k, list := range syms {
		if len(list) < 2 {
			continue
		}
		slices.SortStableFunc(list, func(a, b any) int {
			return cmp.Compare(symPos(a), symPos(b))
		})
		for i, sym := range list {
			obj := state.Object{Family: k.family, Name: k.name, Sym: sym}
			suffix := fmt.Sprintf("#%d", i+1)
			if pos := symPos(sym); pos.IsValid() {
				suffix = fmt.Sprintf("line %d", fn.Prog.Fset.Position(pos).Line)
			}
			renamed[obj] = state.Object{Family: k.family, Name: fmt.Sprintf("%s (%s)", k.name, suffix), Sym: sym}
		}
	}

	for _, site := range sites {
		if obj, ok := renamed[site.obj]; ok {
			site.obj = obj
		}
	}
}

func symPos(sym any) token.Pos {
	if v, ok := sym.(interface{ Pos() token.Pos }); ok {
		return v.Pos()
	}
	return token.NoPos
}

// solve computes the entry state of every reachable block.
func (e *Engine) solve(fn *ssa.Function, sites map[ssa.Instruction]*callSite) map[*ssa.BasicBlock]frame {
	entry := fn.Blocks[0]
	in := map[*ssa.BasicBlock]frame{entry: {newPath()}}
	out := make(map[*ssa.BasicBlock]frame)

	work := []*ssa.BasicBlock{entry}
	queued := map[*ssa.BasicBlock]bool{entry: true}

	for len(work) > 0 {
		b := work[0]
		work = work[1:]
		queued[b] = false

		f := in[b].clone()
		transfer(f, b, sites)

		if old, ok := out[b]; ok && old.equal(f) {
			continue
		}
		out[b] = f

		for _, succ := range b.Succs {
			joined := join(succ, out)
			if old, ok := in[succ]; ok && old.equal(joined) {
				continue
			}
			in[succ] = joined
			if !queued[succ] {
				queued[succ] = true
				work = append(work, succ)
			}
		}
	}

	return in
}

// transfer applies the calls of b to every path of f.
func transfer(f frame, b *ssa.BasicBlock, sites map[ssa.Instruction]*callSite) {
	for _, instr := range b.Instrs {
		site := sites[instr]
		if site == nil {
			continue
		}
		for _, p := range f {
			if site.deferred {
				p.pushDefer(site)
				continue
			}
			p.set(site.obj, site.side.State())
		}
	}
}

// incoming is a path arriving at a join.
type incoming struct {
	path    *path
	forward bool
}

// join merges the exit states of the solved predecessors of b. Paths with
// the same pending defers are merged; the others stay apart.
func join(b *ssa.BasicBlock, out map[*ssa.BasicBlock]frame) frame {
	var groups [][]incoming
	for _, pred := range b.Preds {
		f, ok := out[pred]
		if !ok {
			continue
		}
		// An edge from a block b dominates closes a loop.
		forward := !b.Dominates(pred)
		for _, p := range f {
			i := slices.IndexFunc(groups, func(g []incoming) bool {
				return slices.Equal(g[0].path.defers, p.defers)
			})
			if i < 0 {
				groups = append(groups, nil)
				i = len(groups) - 1
			}
			groups[i] = append(groups[i], incoming{path: p, forward: forward})
		}
	}

	joined := make(frame, 0, len(groups))
	for _, g := range groups {
		joined = append(joined, joinPaths(g))
	}
	return joined
}

// joinPaths unions the incoming paths of one defer group. An object missing
// on an incoming path contributes StartState, and stays fresh when every
// forward path left it without an explicit state.
func joinPaths(g []incoming) *path {
	joined := newPath()
	joined.defers = slices.Clone(g[0].path.defers)

	for _, in := range g {
		for obj := range in.path.objs {
			joined.objs[obj] = 0
		}
	}
	for obj := range joined.objs {
		forward, fresh := false, true
		for _, in := range g {
			s, ok := in.path.objs[obj]
			if !ok {
				s = state.Of(state.StartState)
			}
			joined.objs[obj] = joined.objs[obj].Union(s)

			if in.forward {
				forward = true
				if ok && !in.path.fresh[obj] {
					fresh = false
				}
			}
		}
		if forward && fresh {
			joined.fresh[obj] = true
		}
	}

	return joined
}

// runDefers applies the pending deferred calls of the current path in LIFO
// order. Other paths do not see them.
func (e *Engine) runDefers(c *balance.Checker) {
	for i := len(e.cur.defers) - 1; i >= 0; i-- {
		site := e.cur.defers[i]
		e.view = frame{e.cur.clone()}
		e.pos = site.pos
		c.OnCall(e, site.name, site.side, site.obj)
	}
	e.cur.defers = nil
}

// Possible implements [balance.Engine]. An object missing on the current
// path but held by another path at this point is at StartState here.
func (e *Engine) Possible(obj state.Object) (state.Set, bool) {
	if s, ok := e.cur.objs[obj]; ok {
		return s, true
	}
	for _, p := range e.view {
		if _, ok := p.objs[obj]; ok {
			return state.Of(state.StartState), true
		}
	}
	return 0, false
}

// Untouched implements [balance.Engine]. It looks at every path reaching
// the current point, not only the current one.
func (e *Engine) Untouched(obj state.Object) bool {
	for _, p := range e.view {
		if _, ok := p.objs[obj]; ok && !p.fresh[obj] {
			return false
		}
	}
	return true
}

// SetState implements [balance.Engine].
func (e *Engine) SetState(obj state.Object, st state.State) {
	e.cur.set(obj, st)
}

// Objects implements [balance.Engine]. Objects are ordered by name.
func (e *Engine) Objects() []state.Object {
	objs := slices.Collect(maps.Keys(e.cur.objs))
	slices.SortFunc(objs, func(a, b state.Object) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Family, b.Family))
	})
	return objs
}

// Inlined implements [balance.Engine].
func (e *Engine) Inlined() bool {
	return e.inlined
}

// Reachable implements [balance.Engine].
func (e *Engine) Reachable() bool {
	return e.reachable
}

// Reportf implements [balance.Engine]. Identical diagnostics at one
// position are reported once, e.g. a deferred call audited at every return.
func (e *Engine) Reportf(category, format string, args ...any) {
	key := reportKey{pos: e.pos, category: category, message: fmt.Sprintf(format, args...)}
	if e.reported[key] {
		return
	}
	e.reported[key] = true
	e.report(key.pos, key.category, key.message)
}
