package framegraph

import (
	"errors"
	"fmt"

	"github.com/gogpu/framegraph/arena"
)

// Compile errors.
var (
	// ErrPassStillOpen is raised when Compile or Execute runs while a pass
	// has not been closed.
	ErrPassStillOpen = errors.New("framegraph: a pass is still open")
)

// Compile derives the live set of passes and the lifetime of every
// resource. It must run after all passes are closed and before Execute.
//
// The work proceeds in four steps: reset all counts, count references
// (each pass is referenced once per output it produces, each resource once
// per pass that reads it), cull backwards from every unreferenced resource
// through its producer, then walk the surviving passes in declaration
// order assigning each resource its producing and last-consuming pass.
// Passes with side effects and final passes are never culled; outputs of
// final passes hold a standing reference.
//
// The culling work stack is allocated from scratch and holds at most one
// entry per resource. Compile keeps no pointer into the scratch memory
// after it returns; the caller reclaims it by resetting the allocator.
func (g *Graph) Compile(scratch arena.Allocator) {
	if g.current != nil {
		panic(fmt.Errorf("%w: Compile", ErrPassStillOpen))
	}
	if len(g.passes) == 0 {
		return
	}

	// Reset. Lifetimes and counts are recomputed from scratch on every
	// compile; only the build-time declarations persist.
	for i := range g.textures {
		g.textures[i].first = nil
		g.textures[i].last = nil
		g.textures[i].refCount = 0
	}
	for i := range g.buffers {
		g.buffers[i].first = nil
		g.buffers[i].last = nil
		g.buffers[i].refCount = 0
	}

	// Count. A pass is referenced by each resource it outputs; a resource
	// is referenced by each pass reading it. Outputs of final passes get
	// one extra reference so they can never drain to zero.
	for i := range g.passes {
		p := &g.passes[i]
		p.refCount = p.texWrite.size() + p.bufWrite.size()
		for _, idx := range g.texRead[p.texRead.begin:p.texRead.end] {
			g.textures[idx].refCount++
		}
		for _, idx := range g.bufRead[p.bufRead.begin:p.bufRead.end] {
			g.buffers[idx].refCount++
		}
		for _, idx := range g.texWrite[p.texWrite.begin:p.texWrite.end] {
			g.textures[idx].first = p
			if p.final {
				g.textures[idx].refCount++
			}
		}
		for _, idx := range g.bufWrite[p.bufWrite.begin:p.bufWrite.end] {
			g.buffers[idx].first = p
			if p.final {
				g.buffers[idx].refCount++
			}
		}
	}

	// Cull. Every resource nobody reads takes one reference off its
	// producer; a producer drained to zero releases its own inputs in
	// turn. Each resource enters the stack at most once, when its count
	// reaches zero, so the stack capacity below is exact. The records the
	// stack points at are rooted in the graph's tables, so the untraced
	// scratch memory holds no lone references.
	stack := arena.MakeSlice[*resourceInfo](scratch, len(g.textures)+len(g.buffers))[:0]
	for i := range g.textures {
		if g.textures[i].refCount == 0 {
			stack = append(stack, &g.textures[i].resourceInfo)
		}
	}
	for i := range g.buffers {
		if g.buffers[i].refCount == 0 {
			stack = append(stack, &g.buffers[i].resourceInfo)
		}
	}
	for len(stack) > 0 {
		rsc := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		producer := rsc.first
		if producer == nil || producer.flags&FlagHasSideEffects != 0 {
			continue
		}
		if producer.refCount < 1 {
			panic(fmt.Sprintf("framegraph: ref-count underflow on pass %q", producer.name))
		}
		producer.refCount--
		if producer.refCount == 0 && !producer.final {
			for _, idx := range g.texRead[producer.texRead.begin:producer.texRead.end] {
				t := &g.textures[idx]
				t.refCount--
				if t.refCount == 0 {
					stack = append(stack, &t.resourceInfo)
				}
			}
			for _, idx := range g.bufRead[producer.bufRead.begin:producer.bufRead.end] {
				b := &g.buffers[idx]
				b.refCount--
				if b.refCount == 0 {
					stack = append(stack, &b.resourceInfo)
				}
			}
		}
	}

	// Lifetime. Surviving passes in declaration order; later passes
	// overwrite last, so each resource ends with its latest consumer.
	for i := range g.passes {
		p := &g.passes[i]
		if p.refCount == 0 && !p.final {
			continue
		}
		for _, idx := range g.texCreate[p.texCreate.begin:p.texCreate.end] {
			g.textures[idx].first = p
		}
		for _, idx := range g.bufCreate[p.bufCreate.begin:p.bufCreate.end] {
			g.buffers[idx].first = p
		}
		for _, idx := range g.texRead[p.texRead.begin:p.texRead.end] {
			g.textures[idx].last = p
		}
		for _, idx := range g.bufRead[p.bufRead.begin:p.bufRead.end] {
			g.buffers[idx].last = p
		}
		for _, idx := range g.texWrite[p.texWrite.begin:p.texWrite.end] {
			g.textures[idx].last = p
		}
		for _, idx := range g.bufWrite[p.bufWrite.begin:p.bufWrite.end] {
			g.buffers[idx].last = p
		}
	}

	g.culled = culledCounts{}
	for i := range g.passes {
		p := &g.passes[i]
		if p.refCount == 0 && !p.final && p.flags&FlagHasSideEffects == 0 {
			g.culled.passes++
		}
	}
	for i := range g.textures {
		if g.textures[i].refCount == 0 {
			g.culled.resources++
		}
	}
	for i := range g.buffers {
		if g.buffers[i].refCount == 0 {
			g.culled.resources++
		}
	}
	g.compiled = true

	slogger().Debug("framegraph: compile",
		"passes", len(g.passes),
		"culled_passes", g.culled.passes,
		"textures", len(g.textures),
		"buffers", len(g.buffers),
		"culled_resources", g.culled.resources)
}
