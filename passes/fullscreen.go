package passes

import (
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/framegraph"
)

// FullscreenPass renders a fullscreen post-process effect (FXAA, tone
// mapping, blur) from one input texture into one created output of the
// same dimensions. The output descriptor is derived from the input's, so
// chaining post-process passes needs no size bookkeeping.
type FullscreenPass struct {
	// Name labels the pass and its output texture.
	Name string

	// Source is the WGSL shader of the effect.
	Source string

	// Final marks the pass as a graph output so it survives culling even
	// when nothing downstream reads the result.
	Final bool

	// Draw records the effect's draw commands. It runs from the pass's
	// execute callback; nil is allowed while wiring a frame up. The execute
	// callback does not compile the shader: p.Module() is nil until
	// EnsureShader has been called.
	Draw func(g *framegraph.Graph, ctx *framegraph.RenderContext, p *FullscreenPass)

	// Pass, Input, and Output are set by Setup.
	Pass   framegraph.Pass
	Input  framegraph.Texture
	Output framegraph.Texture

	target framegraph.TextureResource
	module hal.ShaderModule
}

// Setup declares the pass: sample input, create and write an output
// render target sized like the input.
func (p *FullscreenPass) Setup(g *framegraph.Graph, input framegraph.Texture) {
	if p.Final {
		p.Pass = g.OpenFinalPass(p.Name, p.execute)
	} else {
		p.Pass = g.OpenPass(p.Name, p.execute)
	}
	p.Input = g.ReadTexture(input, framegraph.Binding{
		Set:    2,
		Index:  0,
		Stages: framegraph.PipelineStageFragment,
		Kind:   framegraph.BindingKindCombinedImageSampler,
	}.Encode())

	in := g.GetTextureDesc(input)
	p.Output = g.CreateTexture(p.Name+"_RT", &p.target,
		framegraph.RenderTargetDesc(p.Name+"_RT", in.Size.Width, in.Size.Height, in.Format))
	g.WriteTexture(p.Output, framegraph.FlagsIgnored)
	g.ClosePass()
}

// EnsureShader compiles the effect shader and creates its module on the
// device. Safe to call every frame; the module is created once.
func (p *FullscreenPass) EnsureShader(device ShaderDevice) error {
	if p.module != nil {
		return nil
	}
	module, err := NewShaderModule(device, p.Name, p.Source)
	if err != nil {
		return err
	}
	p.module = module
	return nil
}

// ReleaseShader destroys the shader module, if one was created.
func (p *FullscreenPass) ReleaseShader(device ShaderDevice) {
	if p.module != nil {
		device.DestroyShaderModule(p.module)
		p.module = nil
	}
}

// Module returns the compiled shader module, or nil before EnsureShader.
func (p *FullscreenPass) Module() hal.ShaderModule { return p.module }

func (p *FullscreenPass) execute(g *framegraph.Graph, ctx *framegraph.RenderContext) {
	if p.Draw != nil {
		p.Draw(g, ctx, p)
	}
}
