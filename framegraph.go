package framegraph

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/framegraph/arena"
)

// Setup errors.
var (
	// ErrCapacity is raised when an append would exceed a capacity fixed
	// at setup time. Sizing the graph is the caller's contract; the graph
	// never reallocates.
	ErrCapacity = errors.New("framegraph: capacity exhausted")

	// ErrInvalidConfig is raised by New for non-positive capacities.
	ErrInvalidConfig = errors.New("framegraph: invalid config")
)

// generationCounter issues a fresh build-session tag for every New, so
// handles can never validate against a graph they were not issued by.
var generationCounter atomic.Uint32

// Config holds the capacities of a graph. Both are hard limits: the graph
// allocates all of its storage up front and panics with ErrCapacity when a
// limit is hit.
type Config struct {
	// ResourceCapacity is the maximum number of texture nodes and,
	// separately, buffer nodes — including the clones produced by
	// write-renaming. It also bounds each of the six declaration arrays.
	ResourceCapacity int

	// PassCapacity is the maximum number of passes.
	PassCapacity int
}

// Graph is a single-frame scheduler for GPU passes. See the package
// documentation for the build/compile/execute life cycle.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	alloc      arena.Allocator
	generation uint32

	// Resource records. Appended to by create, import, and the clones
	// made by write-renaming; capacities never grow.
	textures []textureInfo
	buffers  []bufferInfo

	// Per-slot access flags, indexed by resource index. These back the
	// GetTextureFlags/GetBufferFlags accessors and always hold the flags
	// most recently declared for a slot.
	texFlags []Flags
	bufFlags []Flags

	// Flat declaration arrays; each pass owns a contiguous window of each.
	texCreate []int32
	texRead   []int32
	texWrite  []int32
	bufCreate []int32
	bufRead   []int32
	bufWrite  []int32

	// Per-declaration access flags, parallel to the read/write arrays
	// above and indexed by range position. Immutable once declared, so a
	// later pass touching the same resource index can never change what
	// an earlier pass's pre-read/pre-write hooks see.
	texReadFlags  []Flags
	texWriteFlags []Flags
	bufReadFlags  []Flags
	bufWriteFlags []Flags

	passes  []passInfo
	current *passInfo

	texHooks TextureHooks
	bufHooks BufferHooks

	compiled bool
	culled   culledCounts
}

type culledCounts struct {
	passes    int
	resources int
}

// New builds an empty graph. Its declaration and flag arrays are carved
// out of a; its resource and pass tables are ordinary Go slices, not
// allocator memory. The allocator must outlive the graph; Release returns
// the memory to it.
func New(a arena.Allocator, cfg Config) *Graph {
	if cfg.ResourceCapacity <= 0 || cfg.PassCapacity <= 0 {
		panic(fmt.Errorf("%w: resource capacity %d, pass capacity %d",
			ErrInvalidConfig, cfg.ResourceCapacity, cfg.PassCapacity))
	}
	rc, pc := cfg.ResourceCapacity, cfg.PassCapacity
	// Record and pass tables hold client pointers (objects, descriptors,
	// callbacks) and therefore live in GC-visible memory. The pointer-free
	// declaration and flag arrays come from the allocator.
	g := &Graph{
		alloc:      a,
		generation: generationCounter.Add(1),
		textures:   make([]textureInfo, 0, rc),
		buffers:    make([]bufferInfo, 0, rc),
		texFlags:   arena.MakeSlice[Flags](a, rc),
		bufFlags:   arena.MakeSlice[Flags](a, rc),
		texCreate:  arena.MakeSlice[int32](a, rc)[:0],
		texRead:    arena.MakeSlice[int32](a, rc)[:0],
		texWrite:   arena.MakeSlice[int32](a, rc)[:0],
		bufCreate:  arena.MakeSlice[int32](a, rc)[:0],
		bufRead:    arena.MakeSlice[int32](a, rc)[:0],
		bufWrite:   arena.MakeSlice[int32](a, rc)[:0],

		texReadFlags:  arena.MakeSlice[Flags](a, rc)[:0],
		texWriteFlags: arena.MakeSlice[Flags](a, rc)[:0],
		bufReadFlags:  arena.MakeSlice[Flags](a, rc)[:0],
		bufWriteFlags: arena.MakeSlice[Flags](a, rc)[:0],

		passes: make([]passInfo, 0, pc),
	}
	slogger().Debug("framegraph: setup",
		"resource_capacity", rc, "pass_capacity", pc, "generation", g.generation)
	return g
}

// Release drops every record and invalidates all handles issued by this
// build session. The memory goes back to the setup allocator; the graph
// must not be used afterwards.
func (g *Graph) Release() {
	g.generation = 0
	g.textures, g.buffers = nil, nil
	g.texFlags, g.bufFlags = nil, nil
	g.texCreate, g.texRead, g.texWrite = nil, nil, nil
	g.bufCreate, g.bufRead, g.bufWrite = nil, nil, nil
	g.texReadFlags, g.texWriteFlags = nil, nil
	g.bufReadFlags, g.bufWriteFlags = nil, nil
	g.passes, g.current = nil, nil
	g.compiled = false
	g.alloc.Release()
}

// Append helpers. All growth funnels through these so the capacity
// contract is enforced in one place.

func (g *Graph) pushTexture(ti textureInfo) int32 {
	if len(g.textures) == cap(g.textures) {
		panic(fmt.Errorf("%w: %d texture records", ErrCapacity, cap(g.textures)))
	}
	g.textures = append(g.textures, ti)
	i := int32(len(g.textures) - 1)
	g.texFlags[i] = FlagsIgnored
	return i
}

func (g *Graph) pushBuffer(bi bufferInfo) int32 {
	if len(g.buffers) == cap(g.buffers) {
		panic(fmt.Errorf("%w: %d buffer records", ErrCapacity, cap(g.buffers)))
	}
	g.buffers = append(g.buffers, bi)
	i := int32(len(g.buffers) - 1)
	g.bufFlags[i] = FlagsIgnored
	return i
}

func pushIndex(arr *[]int32, s *span, idx int32, what string) {
	if len(*arr) == cap(*arr) {
		panic(fmt.Errorf("%w: %d %s entries", ErrCapacity, cap(*arr), what))
	}
	*arr = append(*arr, idx)
	s.end = int32(len(*arr))
}

// pushAccess records a read or write declaration: the resource index and
// the flags the declaring pass attached to this particular access. The
// two arrays grow in lockstep.
func pushAccess(arr *[]int32, flagsArr *[]Flags, s *span, idx int32, flags Flags, what string) {
	pushIndex(arr, s, idx, what)
	*flagsArr = append(*flagsArr, flags)
}
