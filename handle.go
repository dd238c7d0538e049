package framegraph

import "math"

// Texture is a value handle to a texture node in the graph.
//
// Handles carry the index of the node and the generation of the build
// session that produced them. Handles from a released graph fail
// validation on any graph built afterwards. The zero value is not a valid
// handle; use InvalidTexture for an explicit "no texture".
type Texture struct {
	index      uint32
	generation uint32
}

// Buffer is a value handle to a buffer node in the graph.
// It follows the same rules as Texture.
type Buffer struct {
	index      uint32
	generation uint32
}

// Pass is a value handle to a declared pass.
type Pass struct {
	index      uint32
	generation uint32
}

// Invalid handle sentinels. Comparing against these is the way to test a
// handle that may never have been assigned.
var (
	InvalidTexture = Texture{index: math.MaxUint32, generation: math.MaxUint32}
	InvalidBuffer  = Buffer{index: math.MaxUint32, generation: math.MaxUint32}
	InvalidPass    = Pass{index: math.MaxUint32, generation: math.MaxUint32}
)

// IsValidTexture reports whether t refers to a node of this graph's
// current build session.
func (g *Graph) IsValidTexture(t Texture) bool {
	return uint(t.index) < uint(len(g.textures)) && t.generation == g.generation
}

// IsValidBuffer reports whether b refers to a node of this graph's
// current build session.
func (g *Graph) IsValidBuffer(b Buffer) bool {
	return uint(b.index) < uint(len(g.buffers)) && b.generation == g.generation
}

// IsValidPass reports whether p refers to a pass of this graph's current
// build session.
func (g *Graph) IsValidPass(p Pass) bool {
	return uint(p.index) < uint(len(g.passes)) && p.generation == g.generation
}
