package framegraph

import (
	"strings"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/framegraph/arena"
)

func TestNew(t *testing.T) {
	h := newHarness(t, Config{ResourceCapacity: 16, PassCapacity: 4})
	if h.g == nil {
		t.Fatal("New returned nil")
	}
	stats := h.g.Stats()
	if stats.Passes != 0 || stats.Textures != 0 || stats.Buffers != 0 {
		t.Errorf("fresh graph stats = %v, want empty", stats)
	}
	if stats.Compiled {
		t.Error("fresh graph reports Compiled")
	}
}

func TestNewInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero resources", Config{ResourceCapacity: 0, PassCapacity: 4}},
		{"zero passes", Config{ResourceCapacity: 16, PassCapacity: 0}},
		{"negative", Config{ResourceCapacity: -1, PassCapacity: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustPanic(t, ErrInvalidConfig, func() {
				New(arena.NewLinear(1<<16), tt.cfg)
			})
		})
	}
}

func TestHandleValidity(t *testing.T) {
	h := newHarness(t, Config{ResourceCapacity: 16, PassCapacity: 4})
	g := h.g

	g.OpenPass("P", h.exec("P"))
	tex := g.CreateTexture("t", h.texture("t"), RenderTargetDesc("t", 8, 8, gputypes.TextureFormatRGBA8Unorm))
	buf := g.CreateBuffer("b", h.buffer("b"), StorageBufferDesc("b", 256))
	g.ClosePass()

	if !g.IsValidTexture(tex) {
		t.Error("fresh texture handle is invalid")
	}
	if !g.IsValidBuffer(buf) {
		t.Error("fresh buffer handle is invalid")
	}
	if g.IsValidTexture(InvalidTexture) {
		t.Error("InvalidTexture validates")
	}
	if g.IsValidBuffer(InvalidBuffer) {
		t.Error("InvalidBuffer validates")
	}
	if g.IsValidPass(InvalidPass) {
		t.Error("InvalidPass validates")
	}
}

func TestReleaseInvalidatesHandles(t *testing.T) {
	h := newHarness(t, Config{ResourceCapacity: 16, PassCapacity: 4})
	g := h.g

	g.OpenPass("P", h.exec("P"))
	tex := g.CreateTexture("t", h.texture("t"), RenderTargetDesc("t", 8, 8, gputypes.TextureFormatRGBA8Unorm))
	g.ClosePass()
	g.Release()

	// Handles from the released session must not validate on a new graph
	// backed by the same allocator.
	h.alloc.Reset()
	g2 := New(h.alloc, Config{ResourceCapacity: 16, PassCapacity: 4})
	g2.OpenPass("Q", h.exec("Q"))
	g2.CreateTexture("u", h.texture("u"), RenderTargetDesc("u", 8, 8, gputypes.TextureFormatRGBA8Unorm))
	g2.ClosePass()

	if g2.IsValidTexture(tex) {
		t.Error("stale handle validates on a rebuilt graph")
	}
	mustPanic(t, ErrInvalidHandle, func() { g2.GetTexture(tex) })
}

func TestCapacityExhaustion(t *testing.T) {
	h := newHarness(t, Config{ResourceCapacity: 2, PassCapacity: 1})
	g := h.g

	g.OpenPass("P", h.exec("P"))
	g.CreateTexture("a", h.texture("a"), RenderTargetDesc("a", 8, 8, gputypes.TextureFormatRGBA8Unorm))
	g.CreateTexture("b", h.texture("b"), RenderTargetDesc("b", 8, 8, gputypes.TextureFormatRGBA8Unorm))
	mustPanic(t, ErrCapacity, func() {
		g.CreateTexture("c", h.texture("c"), RenderTargetDesc("c", 8, 8, gputypes.TextureFormatRGBA8Unorm))
	})
	g.ClosePass()

	mustPanic(t, ErrCapacity, func() { g.OpenPass("Q", h.exec("Q")) })
}

func TestAccessors(t *testing.T) {
	h := newHarness(t, Config{ResourceCapacity: 16, PassCapacity: 4})
	g := h.g

	slot := h.texture("t")
	desc := RenderTargetDesc("t", 32, 16, gputypes.TextureFormatRGBA8Unorm)
	g.OpenPass("P", h.exec("P"))
	tex := g.CreateTexture("t", slot, desc)
	bslot := h.buffer("b")
	bdesc := UniformBufferDesc("b", 64)
	buf := g.CreateBuffer("b", bslot, bdesc)
	g.ClosePass()

	if got := g.GetTexture(tex); got != slot {
		t.Errorf("GetTexture = %p, want %p", got, slot)
	}
	if got := g.GetTextureDesc(tex); got != desc {
		t.Errorf("GetTextureDesc = %p, want %p", got, desc)
	}
	if got := g.GetTextureFlags(tex); got != FlagsIgnored {
		t.Errorf("GetTextureFlags = %v, want FlagsIgnored", got)
	}
	if got := g.GetBuffer(buf); got != bslot {
		t.Errorf("GetBuffer = %p, want %p", got, bslot)
	}
	if got := g.GetBufferDesc(buf); got != bdesc {
		t.Errorf("GetBufferDesc = %p, want %p", got, bdesc)
	}
	if got := g.GetBufferFlags(buf); got != FlagsIgnored {
		t.Errorf("GetBufferFlags = %v, want FlagsIgnored", got)
	}
}

func TestPassName(t *testing.T) {
	h := newHarness(t, Config{ResourceCapacity: 4, PassCapacity: 4})
	p := h.g.OpenPass("GBuffer", h.exec("GBuffer"))
	h.g.ClosePass()
	if got := h.g.PassName(p); got != "GBuffer" {
		t.Errorf("PassName = %q, want %q", got, "GBuffer")
	}
}

func TestStatsString(t *testing.T) {
	s := GraphStats{Passes: 3, CulledPasses: 1, Textures: 5, Buffers: 2, CulledResources: 4}
	str := s.String()
	for _, want := range []string{"3 passes", "1 culled", "5 textures", "2 buffers"} {
		if !strings.Contains(str, want) {
			t.Errorf("Stats.String() = %q, missing %q", str, want)
		}
	}
}
