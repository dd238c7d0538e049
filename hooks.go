package framegraph

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Hook errors.
var (
	// ErrMissingHook is raised by Execute when any of the eight resource
	// hooks is unset.
	ErrMissingHook = errors.New("framegraph: resource hook not set")
)

// The texture hook signatures. Each hook receives the render context
// first; the graph calls hooks synchronously and expects them not to
// return before their GPU commands are issued.
type (
	// CreateTextureFunc materializes a transient texture from its
	// descriptor into the client object slot.
	CreateTextureFunc func(ctx *RenderContext, tex *TextureResource, desc *hal.TextureDescriptor)

	// PreReadTextureFunc prepares a texture the pass is about to read:
	// descriptor tables, barriers. Called only for reads whose flags are
	// not FlagsIgnored.
	PreReadTextureFunc func(ctx *RenderContext, tex *TextureResource, flags Flags)

	// PreWriteTextureFunc prepares a texture the pass is about to write:
	// attachments, barriers. Called only for writes whose flags are not
	// FlagsIgnored.
	PreWriteTextureFunc func(ctx *RenderContext, tex *TextureResource, flags Flags)

	// DestroyTextureFunc releases a transient texture whose lifetime
	// ended. Write-renamed versions share one object slot, so the hook
	// may run more than once per slot; clearing the slot makes repeats
	// harmless.
	DestroyTextureFunc func(ctx *RenderContext, tex *TextureResource)
)

// The buffer hook signatures, mirroring the texture ones.
type (
	CreateBufferFunc   func(ctx *RenderContext, buf *BufferResource, desc *hal.BufferDescriptor)
	PreReadBufferFunc  func(ctx *RenderContext, buf *BufferResource, flags Flags)
	PreWriteBufferFunc func(ctx *RenderContext, buf *BufferResource, flags Flags)
	DestroyBufferFunc  func(ctx *RenderContext, buf *BufferResource)
)

// TextureHooks bundles the four texture hooks. All four must be set
// before Execute.
type TextureHooks struct {
	Create   CreateTextureFunc
	PreRead  PreReadTextureFunc
	PreWrite PreWriteTextureFunc
	Destroy  DestroyTextureFunc
}

// BufferHooks bundles the four buffer hooks. All four must be set before
// Execute.
type BufferHooks struct {
	Create   CreateBufferFunc
	PreRead  PreReadBufferFunc
	PreWrite PreWriteBufferFunc
	Destroy  DestroyBufferFunc
}

// SetTextureHooks installs the texture hooks.
func (g *Graph) SetTextureHooks(h TextureHooks) { g.texHooks = h }

// SetBufferHooks installs the buffer hooks.
func (g *Graph) SetBufferHooks(h BufferHooks) { g.bufHooks = h }

func (h TextureHooks) mustComplete() {
	if h.Create == nil || h.PreRead == nil || h.PreWrite == nil || h.Destroy == nil {
		panic(fmt.Errorf("%w: texture hooks", ErrMissingHook))
	}
}

func (h BufferHooks) mustComplete() {
	if h.Create == nil || h.PreRead == nil || h.PreWrite == nil || h.Destroy == nil {
		panic(fmt.Errorf("%w: buffer hooks", ErrMissingHook))
	}
}

// ResourceDevice is the slice of a hal device the built-in hooks need.
// hal.Device satisfies it; tests supply fakes.
type ResourceDevice interface {
	CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error)
	DestroyTexture(texture hal.Texture)
	CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error)
	DestroyBuffer(buffer hal.Buffer)
}

// DeviceTextureHooks returns texture hooks that create and destroy
// transient textures on dev and leave pre-read/pre-write empty. The
// create hook panics if the device fails: hooks are infallible by
// contract, and a failed allocation means the frame cannot be recorded.
func DeviceTextureHooks(dev ResourceDevice) TextureHooks {
	return TextureHooks{
		Create: func(_ *RenderContext, tex *TextureResource, desc *hal.TextureDescriptor) {
			t, err := dev.CreateTexture(desc)
			if err != nil {
				panic(fmt.Errorf("framegraph: create texture %q: %w", desc.Label, err))
			}
			tex.HAL = t
		},
		PreRead:  func(*RenderContext, *TextureResource, Flags) {},
		PreWrite: func(*RenderContext, *TextureResource, Flags) {},
		Destroy: func(_ *RenderContext, tex *TextureResource) {
			if tex.HAL != nil {
				dev.DestroyTexture(tex.HAL)
				tex.HAL = nil
			}
		},
	}
}

// DeviceBufferHooks returns buffer hooks that create and destroy
// transient buffers on dev, mirroring DeviceTextureHooks.
func DeviceBufferHooks(dev ResourceDevice) BufferHooks {
	return BufferHooks{
		Create: func(_ *RenderContext, buf *BufferResource, desc *hal.BufferDescriptor) {
			b, err := dev.CreateBuffer(desc)
			if err != nil {
				panic(fmt.Errorf("framegraph: create buffer %q: %w", desc.Label, err))
			}
			buf.HAL = b
		},
		PreRead:  func(*RenderContext, *BufferResource, Flags) {},
		PreWrite: func(*RenderContext, *BufferResource, Flags) {},
		Destroy: func(_ *RenderContext, buf *BufferResource) {
			if buf.HAL != nil {
				dev.DestroyBuffer(buf.HAL)
				buf.HAL = nil
			}
		},
	}
}

// BarrierTextureHooks extends DeviceTextureHooks with pre-read/pre-write
// hooks that issue usage transitions on the context's command encoder.
// Under these hooks the flags word of a read or write carries the target
// gputypes.TextureUsage. The previous usage is tracked per object slot
// across the frame, starting from zero (undefined).
func BarrierTextureHooks(dev ResourceDevice) TextureHooks {
	usage := make(map[*TextureResource]gputypes.TextureUsage)
	transition := func(ctx *RenderContext, tex *TextureResource, flags Flags) {
		if ctx.Encoder == nil || tex.HAL == nil {
			return
		}
		next := gputypes.TextureUsage(flags)
		ctx.Encoder.TransitionTextures([]hal.TextureBarrier{{
			Texture: tex.HAL,
			Usage:   hal.TextureUsageTransition{OldUsage: usage[tex], NewUsage: next},
		}})
		usage[tex] = next
	}
	h := DeviceTextureHooks(dev)
	h.PreRead = transition
	h.PreWrite = transition
	return h
}

// BarrierBufferHooks extends DeviceBufferHooks with usage-transition
// barriers, mirroring BarrierTextureHooks; the flags word carries the
// target gputypes.BufferUsage.
func BarrierBufferHooks(dev ResourceDevice) BufferHooks {
	usage := make(map[*BufferResource]gputypes.BufferUsage)
	transition := func(ctx *RenderContext, buf *BufferResource, flags Flags) {
		if ctx.Encoder == nil || buf.HAL == nil {
			return
		}
		next := gputypes.BufferUsage(flags)
		ctx.Encoder.TransitionBuffers([]hal.BufferBarrier{{
			Buffer: buf.HAL,
			Usage:  hal.BufferUsageTransition{OldUsage: usage[buf], NewUsage: next},
		}})
		usage[buf] = next
	}
	h := DeviceBufferHooks(dev)
	h.PreRead = transition
	h.PreWrite = transition
	return h
}
