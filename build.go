package framegraph

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// Declaration errors. All violate the per-pass declaration rules and are
// reported by panicking: a malformed declaration means the recorded frame
// would be malformed, and there is nothing to recover.
var (
	// ErrReadOfCreated is raised when a pass reads a resource it created.
	ErrReadOfCreated = errors.New("framegraph: pass reads a resource it creates")

	// ErrReadOfWritten is raised when a pass reads a resource it writes.
	ErrReadOfWritten = errors.New("framegraph: pass reads a resource it writes")

	// ErrWriteOfRead is raised when a pass writes a resource it reads.
	ErrWriteOfRead = errors.New("framegraph: pass writes a resource it reads")
)

// CreateTexture declares a transient texture owned by the open pass. The
// object slot and descriptor are stored untouched; the create hook
// receives both when the pass executes, and the destroy hook receives the
// slot when the texture's last consumer has run.
func (g *Graph) CreateTexture(name string, tex *TextureResource, desc *hal.TextureDescriptor) Texture {
	p := g.mustOpen("CreateTexture")
	idx := g.pushTexture(textureInfo{
		resourceInfo: resourceInfo{name: name, first: p, flags: FlagTransient},
		texture:      tex,
		desc:         desc,
	})
	pushIndex(&g.texCreate, &p.texCreate, idx, "texture create")
	return Texture{index: uint32(idx), generation: g.generation}
}

// ImportTexture declares a texture backed by a client-owned GPU object,
// such as the swapchain backbuffer. Imported textures are graph-level:
// they may be declared with no pass open, and the create/destroy hooks
// never fire for them. A pass that writes an imported texture is marked
// as having side effects and survives culling.
func (g *Graph) ImportTexture(name string, tex *TextureResource, desc *hal.TextureDescriptor) Texture {
	idx := g.pushTexture(textureInfo{
		resourceInfo: resourceInfo{name: name, flags: FlagImported},
		texture:      tex,
		desc:         desc,
	})
	return Texture{index: uint32(idx), generation: g.generation}
}

// ReadTexture declares that the open pass reads t. The flags word is
// recorded with this declaration and is what the pass's pre-read hook
// receives; pass FlagsIgnored to suppress the hook. Reading the same
// texture twice in one pass is a no-op. Reading a texture the pass
// creates or writes panics.
func (g *Graph) ReadTexture(t Texture, flags Flags) Texture {
	p := g.mustOpen("ReadTexture")
	g.mustValidTexture(t)
	idx := int32(t.index)
	if passContains(g.texCreate, p.texCreate, idx) {
		panic(fmt.Errorf("%w: %q in pass %q", ErrReadOfCreated, g.textures[idx].name, p.name))
	}
	if passContains(g.texWrite, p.texWrite, idx) {
		panic(fmt.Errorf("%w: %q in pass %q", ErrReadOfWritten, g.textures[idx].name, p.name))
	}
	if passContains(g.texRead, p.texRead, idx) {
		return t
	}
	pushAccess(&g.texRead, &g.texReadFlags, &p.texRead, idx, flags, "texture read")
	g.texFlags[idx] = flags
	return t
}

// WriteTexture declares that the open pass writes t and returns the
// handle to write through. Two cases:
//
// If the pass created t itself, the write is recorded against the same
// node and the same handle comes back.
//
// Otherwise the write is renamed: the pass implicitly reads t, a new node
// is cloned from it with this pass as producer, and the returned handle
// refers to the clone. Renaming keeps the dependency graph acyclic — any
// later consumer of the texture's new contents reads the clone, never the
// input — and chains multiple writers of one logical texture linearly.
//
// Writing an imported texture (directly or through a clone) marks the
// pass as having side effects. Writing a texture the pass reads panics.
func (g *Graph) WriteTexture(t Texture, flags Flags) Texture {
	p := g.mustOpen("WriteTexture")
	g.mustValidTexture(t)
	idx := int32(t.index)
	if passContains(g.texRead, p.texRead, idx) {
		panic(fmt.Errorf("%w: %q in pass %q", ErrWriteOfRead, g.textures[idx].name, p.name))
	}

	if passContains(g.texCreate, p.texCreate, idx) {
		if !passContains(g.texWrite, p.texWrite, idx) {
			pushAccess(&g.texWrite, &g.texWriteFlags, &p.texWrite, idx, flags, "texture write")
			g.texFlags[idx] = flags
		}
		if g.textures[idx].flags&FlagImported != 0 {
			p.flags |= FlagHasSideEffects
		}
		return t
	}

	// Write-rename: read the input, write a fresh version node. The
	// implicit read carries FlagsIgnored for this declaration only; it
	// does not disturb the slot's accessor value.
	pushAccess(&g.texRead, &g.texReadFlags, &p.texRead, idx, FlagsIgnored, "texture read")
	src := &g.textures[idx]
	clone := g.pushTexture(textureInfo{
		resourceInfo: resourceInfo{
			name:  src.name,
			first: p,
			flags: src.flags & FlagImported,
		},
		texture: src.texture,
		desc:    src.desc,
	})
	pushAccess(&g.texWrite, &g.texWriteFlags, &p.texWrite, clone, flags, "texture write")
	g.texFlags[clone] = flags
	if g.textures[idx].flags&FlagImported != 0 {
		p.flags |= FlagHasSideEffects
	}
	return Texture{index: uint32(clone), generation: g.generation}
}

// CreateBuffer declares a transient buffer owned by the open pass,
// following the same protocol as CreateTexture.
func (g *Graph) CreateBuffer(name string, buf *BufferResource, desc *hal.BufferDescriptor) Buffer {
	p := g.mustOpen("CreateBuffer")
	idx := g.pushBuffer(bufferInfo{
		resourceInfo: resourceInfo{name: name, first: p, flags: FlagTransient},
		buffer:       buf,
		desc:         desc,
	})
	pushIndex(&g.bufCreate, &p.bufCreate, idx, "buffer create")
	return Buffer{index: uint32(idx), generation: g.generation}
}

// ImportBuffer declares a buffer backed by a client-owned GPU object,
// following the same protocol as ImportTexture.
func (g *Graph) ImportBuffer(name string, buf *BufferResource, desc *hal.BufferDescriptor) Buffer {
	idx := g.pushBuffer(bufferInfo{
		resourceInfo: resourceInfo{name: name, flags: FlagImported},
		buffer:       buf,
		desc:         desc,
	})
	return Buffer{index: uint32(idx), generation: g.generation}
}

// ReadBuffer declares that the open pass reads b, following the same
// protocol as ReadTexture.
func (g *Graph) ReadBuffer(b Buffer, flags Flags) Buffer {
	p := g.mustOpen("ReadBuffer")
	g.mustValidBuffer(b)
	idx := int32(b.index)
	if passContains(g.bufCreate, p.bufCreate, idx) {
		panic(fmt.Errorf("%w: %q in pass %q", ErrReadOfCreated, g.buffers[idx].name, p.name))
	}
	if passContains(g.bufWrite, p.bufWrite, idx) {
		panic(fmt.Errorf("%w: %q in pass %q", ErrReadOfWritten, g.buffers[idx].name, p.name))
	}
	if passContains(g.bufRead, p.bufRead, idx) {
		return b
	}
	pushAccess(&g.bufRead, &g.bufReadFlags, &p.bufRead, idx, flags, "buffer read")
	g.bufFlags[idx] = flags
	return b
}

// WriteBuffer declares that the open pass writes b, following the same
// protocol as WriteTexture, including write-renaming.
func (g *Graph) WriteBuffer(b Buffer, flags Flags) Buffer {
	p := g.mustOpen("WriteBuffer")
	g.mustValidBuffer(b)
	idx := int32(b.index)
	if passContains(g.bufRead, p.bufRead, idx) {
		panic(fmt.Errorf("%w: %q in pass %q", ErrWriteOfRead, g.buffers[idx].name, p.name))
	}

	if passContains(g.bufCreate, p.bufCreate, idx) {
		if !passContains(g.bufWrite, p.bufWrite, idx) {
			pushAccess(&g.bufWrite, &g.bufWriteFlags, &p.bufWrite, idx, flags, "buffer write")
			g.bufFlags[idx] = flags
		}
		if g.buffers[idx].flags&FlagImported != 0 {
			p.flags |= FlagHasSideEffects
		}
		return b
	}

	pushAccess(&g.bufRead, &g.bufReadFlags, &p.bufRead, idx, FlagsIgnored, "buffer read")
	src := &g.buffers[idx]
	clone := g.pushBuffer(bufferInfo{
		resourceInfo: resourceInfo{
			name:  src.name,
			first: p,
			flags: src.flags & FlagImported,
		},
		buffer: src.buffer,
		desc:   src.desc,
	})
	pushAccess(&g.bufWrite, &g.bufWriteFlags, &p.bufWrite, clone, flags, "buffer write")
	g.bufFlags[clone] = flags
	if g.buffers[idx].flags&FlagImported != 0 {
		p.flags |= FlagHasSideEffects
	}
	return Buffer{index: uint32(clone), generation: g.generation}
}
