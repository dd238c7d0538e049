package framegraph

import (
	"fmt"
)

// Execute runs the surviving passes in declaration order. A pass is
// skipped iff its reference count drained to zero and it has neither side
// effects nor the final mark.
//
// Around each surviving pass the hooks run in a fixed sequence:
//
//  1. Create hooks for the pass's created textures, then buffers, in
//     declaration order. Imported resources never appear here.
//  2. Pre-read hooks for every read whose flags are not FlagsIgnored,
//     textures then buffers, in declaration order.
//  3. Pre-write hooks, same rule.
//  4. The pass's execute callback.
//  5. Destroy hooks for every transient resource whose last consumer is
//     this pass, textures then buffers.
//
// Resources must exist before barriers and descriptor sets are built,
// barriers must precede the pass body, and a resource may only be
// destroyed once the pass ending its lifetime has run — hence the fixed
// order.
//
// Execute mutates no graph state; it may be called again after another
// Compile. All eight hooks must be set or Execute panics.
func (g *Graph) Execute(ctx *RenderContext) {
	if g.current != nil {
		panic(fmt.Errorf("%w: Execute", ErrPassStillOpen))
	}
	g.texHooks.mustComplete()
	g.bufHooks.mustComplete()

	for i := range g.passes {
		p := &g.passes[i]
		if p.refCount == 0 && p.flags&FlagHasSideEffects == 0 && !p.final {
			slogger().Debug("framegraph: pass culled", "pass", p.name)
			continue
		}

		for _, idx := range g.texCreate[p.texCreate.begin:p.texCreate.end] {
			t := &g.textures[idx]
			g.texHooks.Create(ctx, t.texture, t.desc)
		}
		for _, idx := range g.bufCreate[p.bufCreate.begin:p.bufCreate.end] {
			b := &g.buffers[idx]
			g.bufHooks.Create(ctx, b.buffer, b.desc)
		}

		// Each access is prepared with the flags its own declaration
		// recorded, looked up by range position.
		for pos := p.texRead.begin; pos < p.texRead.end; pos++ {
			if f := g.texReadFlags[pos]; f != FlagsIgnored {
				g.texHooks.PreRead(ctx, g.textures[g.texRead[pos]].texture, f)
			}
		}
		for pos := p.bufRead.begin; pos < p.bufRead.end; pos++ {
			if f := g.bufReadFlags[pos]; f != FlagsIgnored {
				g.bufHooks.PreRead(ctx, g.buffers[g.bufRead[pos]].buffer, f)
			}
		}

		for pos := p.texWrite.begin; pos < p.texWrite.end; pos++ {
			if f := g.texWriteFlags[pos]; f != FlagsIgnored {
				g.texHooks.PreWrite(ctx, g.textures[g.texWrite[pos]].texture, f)
			}
		}
		for pos := p.bufWrite.begin; pos < p.bufWrite.end; pos++ {
			if f := g.bufWriteFlags[pos]; f != FlagsIgnored {
				g.bufHooks.PreWrite(ctx, g.buffers[g.bufWrite[pos]].buffer, f)
			}
		}

		p.execute(g, ctx)

		for j := range g.textures {
			t := &g.textures[j]
			if t.last == p && t.flags&FlagImported == 0 {
				g.texHooks.Destroy(ctx, t.texture)
			}
		}
		for j := range g.buffers {
			b := &g.buffers[j]
			if b.last == p && b.flags&FlagImported == 0 {
				g.bufHooks.Destroy(ctx, b.buffer)
			}
		}
	}
}
