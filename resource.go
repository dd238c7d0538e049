package framegraph

import (
	"errors"
	"fmt"

	"github.com/gogpu/wgpu/hal"
)

// Accessor errors.
var (
	// ErrInvalidHandle is raised when a handle fails validation: its index
	// is out of range or it was issued by an earlier build session.
	ErrInvalidHandle = errors.New("framegraph: invalid resource handle")
)

// TextureResource is the client-owned slot for a texture's realized GPU
// object. The graph stores the pointer and hands it to the hooks
// untouched; the create hook typically fills HAL from the descriptor and
// the destroy hook clears it again. Versions of one logical texture
// produced by write-renaming all share one slot.
type TextureResource struct {
	// HAL is the realized GPU texture, nil until the create hook ran.
	HAL hal.Texture
}

// BufferResource is the client-owned slot for a buffer's realized GPU
// object, following the same rules as TextureResource.
type BufferResource struct {
	// HAL is the realized GPU buffer, nil until the create hook ran.
	HAL hal.Buffer
}

// span is a [begin, end) window into one of the flat declaration arrays.
// A pass's declarations are contiguous because exactly one pass is open
// at a time, so a window fully describes the pass's share of an array.
type span struct {
	begin int32
	end   int32
}

func (s span) size() int32 { return s.end - s.begin }

func (s *span) reset(at int32) { s.begin, s.end = at, at }

// resourceInfo is the part of a resource record shared by textures and
// buffers. first and last are recomputed by every Compile.
type resourceInfo struct {
	name     string
	first    *passInfo // producing pass
	last     *passInfo // last consuming pass
	flags    Flags     // FlagImported, FlagTransient
	refCount int32
}

type textureInfo struct {
	resourceInfo
	texture *TextureResource
	desc    *hal.TextureDescriptor
}

type bufferInfo struct {
	resourceInfo
	buffer *BufferResource
	desc   *hal.BufferDescriptor
}

// GetTexture returns the client object slot of t.
// It panics with ErrInvalidHandle on a stale or out-of-range handle.
func (g *Graph) GetTexture(t Texture) *TextureResource {
	g.mustValidTexture(t)
	return g.textures[t.index].texture
}

// GetTextureDesc returns the descriptor of t.
func (g *Graph) GetTextureDesc(t Texture) *hal.TextureDescriptor {
	g.mustValidTexture(t)
	return g.textures[t.index].desc
}

// GetTextureFlags returns the access flags word most recently declared
// for t's slot. The flags a particular pass declared travel with that
// declaration to its pre-read/pre-write hooks regardless of later
// declarations on the same slot.
func (g *Graph) GetTextureFlags(t Texture) Flags {
	g.mustValidTexture(t)
	return g.texFlags[t.index]
}

// GetBuffer returns the client object slot of b.
// It panics with ErrInvalidHandle on a stale or out-of-range handle.
func (g *Graph) GetBuffer(b Buffer) *BufferResource {
	g.mustValidBuffer(b)
	return g.buffers[b.index].buffer
}

// GetBufferDesc returns the descriptor of b.
func (g *Graph) GetBufferDesc(b Buffer) *hal.BufferDescriptor {
	g.mustValidBuffer(b)
	return g.buffers[b.index].desc
}

// GetBufferFlags returns the access flags word most recently declared
// for b's slot, following the same rules as GetTextureFlags.
func (g *Graph) GetBufferFlags(b Buffer) Flags {
	g.mustValidBuffer(b)
	return g.bufFlags[b.index]
}

func (g *Graph) mustValidTexture(t Texture) {
	if !g.IsValidTexture(t) {
		panic(fmt.Errorf("%w: texture {index %d, generation %d}", ErrInvalidHandle, t.index, t.generation))
	}
}

func (g *Graph) mustValidBuffer(b Buffer) {
	if !g.IsValidBuffer(b) {
		panic(fmt.Errorf("%w: buffer {index %d, generation %d}", ErrInvalidHandle, b.index, b.generation))
	}
}
