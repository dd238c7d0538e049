package framegraph

// BindingKind describes how a pass samples or accesses a texture it
// declared a read or write on.
type BindingKind uint8

const (
	// BindingKindCombinedImageSampler binds texture and sampler together.
	BindingKindCombinedImageSampler BindingKind = iota
	// BindingKindSampledImage binds the texture for sampled access.
	BindingKindSampledImage
	// BindingKindStorageImage binds the texture for storage access.
	BindingKindStorageImage
)

// PipelineStages is a bitmask of the shader stages an access is visible
// to.
type PipelineStages uint8

const (
	// PipelineStageVertex marks visibility in vertex shaders.
	PipelineStageVertex PipelineStages = 1 << iota
	// PipelineStageFragment marks visibility in fragment shaders.
	PipelineStageFragment
	// PipelineStageCompute marks visibility in compute shaders.
	PipelineStageCompute
)

// Binding packs a descriptor-set location into a Flags word, so that a
// pre-read hook can build descriptor tables without any side channel
// between the pass's setup and execute code.
//
//	g.ReadTexture(input, framegraph.Binding{
//		Set:    2,
//		Index:  0,
//		Stages: framegraph.PipelineStageFragment,
//		Kind:   framegraph.BindingKindCombinedImageSampler,
//	}.Encode())
type Binding struct {
	// Set is the descriptor set the resource is bound in.
	Set uint8

	// Index is the binding index within the set.
	Index uint8

	// Stages is the set of pipeline stages the binding is visible to.
	Stages PipelineStages

	// Kind is the access kind of the binding.
	Kind BindingKind
}

// Encode packs the binding into a Flags word. The encoding never collides
// with FlagsIgnored, so an encoded binding always reaches the hooks.
func (b Binding) Encode() Flags {
	return Flags(b.Kind)<<24 | Flags(b.Stages)<<16 | Flags(b.Set)<<8 | Flags(b.Index)
}

// DecodeBinding unpacks a Flags word produced by Binding.Encode.
func DecodeBinding(f Flags) Binding {
	return Binding{
		Kind:   BindingKind(f >> 24),
		Stages: PipelineStages(f >> 16),
		Set:    uint8(f >> 8),
		Index:  uint8(f),
	}
}
