package framegraph

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/framegraph/arena"
)

// fakeTexture and fakeBuffer satisfy the hal resource interfaces without
// a GPU.
type fakeTexture struct{ label string }

func (*fakeTexture) Destroy()                            {}
func (*fakeTexture) NativeHandle() uintptr               { return 0 }
func (*fakeTexture) CurrentUsage() gputypes.TextureUsage { return 0 }
func (*fakeTexture) AddPendingRef()                      {}
func (*fakeTexture) DecPendingRef()                      {}

type fakeBuffer struct{ label string }

func (*fakeBuffer) Destroy()              {}
func (*fakeBuffer) NativeHandle() uintptr { return 0 }

// harness wires a graph to hooks that record every invocation as a
// readable event string, so tests can assert the exact callback trace.
type harness struct {
	g        *Graph
	alloc    *arena.Linear
	scratch  *arena.Linear
	events   []string
	texNames map[*TextureResource]string
	bufNames map[*BufferResource]string
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{
		alloc:    arena.NewLinear(1 << 20),
		scratch:  arena.NewLinear(1 << 16),
		texNames: make(map[*TextureResource]string),
		bufNames: make(map[*BufferResource]string),
	}
	h.g = New(h.alloc, cfg)
	h.g.SetTextureHooks(TextureHooks{
		Create: func(_ *RenderContext, tex *TextureResource, desc *hal.TextureDescriptor) {
			tex.HAL = &fakeTexture{label: desc.Label}
			h.record("create_texture:%s", h.texName(tex))
		},
		PreRead: func(_ *RenderContext, tex *TextureResource, flags Flags) {
			h.record("preread_texture:%s:%#x", h.texName(tex), uint32(flags))
		},
		PreWrite: func(_ *RenderContext, tex *TextureResource, flags Flags) {
			h.record("prewrite_texture:%s:%#x", h.texName(tex), uint32(flags))
		},
		Destroy: func(_ *RenderContext, tex *TextureResource) {
			h.record("destroy_texture:%s", h.texName(tex))
			tex.HAL = nil
		},
	})
	h.g.SetBufferHooks(BufferHooks{
		Create: func(_ *RenderContext, buf *BufferResource, desc *hal.BufferDescriptor) {
			buf.HAL = &fakeBuffer{label: desc.Label}
			h.record("create_buffer:%s", h.bufName(buf))
		},
		PreRead: func(_ *RenderContext, buf *BufferResource, flags Flags) {
			h.record("preread_buffer:%s:%#x", h.bufName(buf), uint32(flags))
		},
		PreWrite: func(_ *RenderContext, buf *BufferResource, flags Flags) {
			h.record("prewrite_buffer:%s:%#x", h.bufName(buf), uint32(flags))
		},
		Destroy: func(_ *RenderContext, buf *BufferResource) {
			h.record("destroy_buffer:%s", h.bufName(buf))
			buf.HAL = nil
		},
	})
	return h
}

func (h *harness) record(format string, args ...any) {
	h.events = append(h.events, fmt.Sprintf(format, args...))
}

// texture registers a named object slot so hook events can refer to it.
func (h *harness) texture(name string) *TextureResource {
	tex := &TextureResource{}
	h.texNames[tex] = name
	return tex
}

func (h *harness) buffer(name string) *BufferResource {
	buf := &BufferResource{}
	h.bufNames[buf] = name
	return buf
}

func (h *harness) texName(tex *TextureResource) string {
	if name, ok := h.texNames[tex]; ok {
		return name
	}
	return "?"
}

func (h *harness) bufName(buf *BufferResource) string {
	if name, ok := h.bufNames[buf]; ok {
		return name
	}
	return "?"
}

// exec is a pass body that records its invocation.
func (h *harness) exec(name string) PassExecuteFunc {
	return func(*Graph, *RenderContext) {
		h.record("execute:%s", name)
	}
}

func (h *harness) compileAndExecute() {
	h.g.Compile(h.scratch)
	h.g.Execute(&RenderContext{})
	h.scratch.Reset()
}

func (h *harness) wantEvents(t *testing.T, want ...string) {
	t.Helper()
	if len(h.events) != len(want) {
		t.Fatalf("got %d events %v, want %d events %v", len(h.events), h.events, len(want), want)
	}
	for i := range want {
		if h.events[i] != want[i] {
			t.Errorf("event[%d] = %q, want %q (full trace %v)", i, h.events[i], want[i], h.events)
		}
	}
}

// mustPanic asserts that fn panics with an error wrapping want.
func mustPanic(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %v, got none", want)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v (%T) is not an error", r, r)
		}
		if !errors.Is(err, want) {
			t.Fatalf("panic = %v, want %v", err, want)
		}
	}()
	fn()
}
