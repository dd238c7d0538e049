package passes

import (
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/framegraph"
)

// BlitPass copies a rendered texture into an imported target, typically
// the swapchain backbuffer. Because the target is imported, the pass is
// marked as having side effects and anchors the frame: everything feeding
// the source survives culling.
type BlitPass struct {
	// Pass is the handle returned by the graph, set by Setup.
	Pass framegraph.Pass

	// Src is the texture read by the pass.
	Src framegraph.Texture

	// Dst is the renamed handle of the imported target after the write.
	Dst framegraph.Texture
}

// Setup declares the pass: read src, write target. The target handle must
// come from ImportTexture.
func (p *BlitPass) Setup(g *framegraph.Graph, src, target framegraph.Texture) {
	p.Pass = g.OpenPass("Blit", p.execute)
	p.Src = g.ReadTexture(src, framegraph.Binding{
		Stages: framegraph.PipelineStageFragment,
		Kind:   framegraph.BindingKindSampledImage,
	}.Encode())
	p.Dst = g.WriteTexture(target, framegraph.FlagsIgnored)
	g.ClosePass()
}

func (p *BlitPass) execute(g *framegraph.Graph, ctx *framegraph.RenderContext) {
	src := g.GetTexture(p.Src)
	dst := g.GetTexture(p.Dst)
	if ctx.Encoder == nil || src.HAL == nil || dst.HAL == nil {
		return
	}
	desc := g.GetTextureDesc(p.Src)
	ctx.Encoder.CopyTextureToTexture(src.HAL, dst.HAL, []hal.TextureCopy{{
		SrcBase: hal.ImageCopyTexture{Texture: src.HAL},
		DstBase: hal.ImageCopyTexture{Texture: dst.HAL},
		Size:    desc.Size,
	}})
}
