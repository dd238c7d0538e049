package framegraph

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Descriptor constructors for the common transient resources of a frame.
// They only fill in hal descriptors; nothing is allocated until the
// create hook runs for the pass that owns the resource.

// RenderTargetDesc describes a 2D color render target that can also be
// sampled by later passes.
func RenderTargetDesc(label string, width, height uint32, format gputypes.TextureFormat) *hal.TextureDescriptor {
	return &hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	}
}

// DepthTargetDesc describes a 2D depth attachment.
func DepthTargetDesc(label string, width, height uint32) *hal.TextureDescriptor {
	return &hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatDepth32Float,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	}
}

// StorageTextureDesc describes a 2D texture written by compute passes and
// sampled afterwards.
func StorageTextureDesc(label string, width, height uint32, format gputypes.TextureFormat) *hal.TextureDescriptor {
	return &hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageStorageBinding | gputypes.TextureUsageTextureBinding,
	}
}

// StorageBufferDesc describes a shader-writable buffer.
func StorageBufferDesc(label string, size uint64) *hal.BufferDescriptor {
	return &hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	}
}

// UniformBufferDesc describes a uniform buffer uploaded from the CPU.
func UniformBufferDesc(label string, size uint64) *hal.BufferDescriptor {
	return &hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	}
}
