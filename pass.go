package framegraph

import (
	"errors"
	"fmt"
)

// Pass declaration errors.
var (
	// ErrPassAlreadyOpen is raised when OpenPass is called while another
	// pass is still open.
	ErrPassAlreadyOpen = errors.New("framegraph: a pass is already open")

	// ErrNoOpenPass is raised when a declaration or ClosePass happens with
	// no pass open.
	ErrNoOpenPass = errors.New("framegraph: no pass is open")

	// ErrNilExecute is raised when a pass is opened without an execute
	// callback.
	ErrNilExecute = errors.New("framegraph: pass execute callback is nil")
)

// PassExecuteFunc is the body of a pass. It runs during Execute, after the
// pass's create and pre-read/pre-write hooks and before its destroy hooks.
type PassExecuteFunc func(g *Graph, ctx *RenderContext)

// passInfo is the record of one declared pass. The six spans window the
// flat declaration arrays; they are final once the pass is closed.
type passInfo struct {
	name    string
	execute PassExecuteFunc
	flags   Flags // FlagHasSideEffects
	final   bool
	index   int32

	refCount int32 // number of outputs still referenced; computed by Compile

	texCreate span
	texRead   span
	texWrite  span
	bufCreate span
	bufRead   span
	bufWrite  span
}

// OpenPass begins declaring a pass. All resource declarations until the
// matching ClosePass accrue to it. Opening a pass while another is open
// panics with ErrPassAlreadyOpen.
func (g *Graph) OpenPass(name string, execute PassExecuteFunc) Pass {
	return g.openPass(name, execute, false)
}

// OpenFinalPass begins declaring a pass that is marked as a graph output.
// Final passes are never culled and their written resources keep a
// standing reference, so the work feeding them always survives Compile.
func (g *Graph) OpenFinalPass(name string, execute PassExecuteFunc) Pass {
	return g.openPass(name, execute, true)
}

func (g *Graph) openPass(name string, execute PassExecuteFunc, final bool) Pass {
	if g.current != nil {
		panic(fmt.Errorf("%w: cannot open %q while %q is open", ErrPassAlreadyOpen, name, g.current.name))
	}
	if execute == nil {
		panic(fmt.Errorf("%w: pass %q", ErrNilExecute, name))
	}
	if len(g.passes) == cap(g.passes) {
		panic(fmt.Errorf("%w: pass capacity %d", ErrCapacity, cap(g.passes)))
	}
	g.passes = append(g.passes, passInfo{
		name:    name,
		execute: execute,
		final:   final,
		index:   int32(len(g.passes)),
	})
	p := &g.passes[len(g.passes)-1]
	p.texCreate.reset(int32(len(g.texCreate)))
	p.texRead.reset(int32(len(g.texRead)))
	p.texWrite.reset(int32(len(g.texWrite)))
	p.bufCreate.reset(int32(len(g.bufCreate)))
	p.bufRead.reset(int32(len(g.bufRead)))
	p.bufWrite.reset(int32(len(g.bufWrite)))
	g.current = p
	return Pass{index: uint32(p.index), generation: g.generation}
}

// ClosePass ends the open pass. Its declaration spans never change again.
func (g *Graph) ClosePass() {
	if g.current == nil {
		panic(fmt.Errorf("%w: ClosePass", ErrNoOpenPass))
	}
	g.current = nil
}

// PassName returns the name a pass was declared with.
func (g *Graph) PassName(p Pass) string {
	if !g.IsValidPass(p) {
		panic(fmt.Errorf("%w: pass {index %d, generation %d}", ErrInvalidHandle, p.index, p.generation))
	}
	return g.passes[p.index].name
}

func (g *Graph) mustOpen(op string) *passInfo {
	if g.current == nil {
		panic(fmt.Errorf("%w: %s", ErrNoOpenPass, op))
	}
	return g.current
}

// passContains reports whether idx occurs in the window s of arr. The
// windows are small, so a linear scan is the right tool.
func passContains(arr []int32, s span, idx int32) bool {
	for _, v := range arr[s.begin:s.end] {
		if v == idx {
			return true
		}
	}
	return false
}
