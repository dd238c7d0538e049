// Package framegraph provides a declarative, single-frame scheduler for
// GPU work.
//
// A frame graph separates the declaration of a frame's render passes from
// their execution. The client declares passes and, for each pass, the
// textures and buffers it creates, reads, and writes. The graph then culls
// passes that do not contribute to the frame's outputs, derives a
// serialized execution order from the read/write dependencies, computes
// the lifetime of every transient resource, and drives client hooks to
// materialize, prepare, and destroy resources around each pass body.
//
// # Architecture
//
// The graph runs through three phases, all on one goroutine:
//
//   - Build: OpenPass/OpenFinalPass begin a pass; CreateTexture,
//     ImportTexture, ReadTexture, WriteTexture (and the buffer variants)
//     declare resource usage; ClosePass ends the pass. Writing a resource
//     the pass did not create clones the resource record, so every logical
//     version of a resource is a distinct node and the dependency graph
//     stays acyclic.
//   - Compile: reference counts are computed for passes and resources, a
//     work-list pass culls everything the frame's outputs do not depend
//     on, and each surviving resource is assigned its producing and
//     last-consuming pass.
//   - Execute: surviving passes run in declaration order. Around each pass
//     body the graph invokes the client hooks in a fixed sequence: create
//     hooks for the pass's transient resources, pre-read and pre-write
//     hooks for every declared access whose flags are not FlagsIgnored,
//     the pass's execute callback, then destroy hooks for every transient
//     resource whose lifetime ends at this pass.
//
// The graph interprets nothing about the GPU: resource objects, their
// descriptors, and the render context are carried through to the hooks
// untouched. Barriers and descriptor sets are the client's business inside
// the pre-read/pre-write hooks; DeviceTextureHooks and BarrierTextureHooks
// provide ready-made adapters over a hal device.
//
// All storage is sized at setup time and is append-only until Release.
// The pointer-free declaration and flag arrays are carved out of a
// caller-supplied arena.Allocator; the resource and pass tables hold client
// pointers and are ordinary fixed-capacity slices that do not come from the
// allocator. Exceeding the configured capacities is a programming error and
// panics.
//
// # Example
//
//	alloc := arena.NewLinear(1 << 20)
//	g := framegraph.New(alloc, framegraph.Config{
//		ResourceCapacity: 256,
//		PassCapacity:     32,
//	})
//	g.SetTextureHooks(framegraph.DeviceTextureHooks(device))
//	g.SetBufferHooks(framegraph.DeviceBufferHooks(device))
//
//	var gbuffer gbufferPass
//	gbuffer.setup(g)
//	var lighting lightingPass
//	lighting.setup(g, gbuffer.normal, gbuffer.albedo)
//
//	g.Compile(scratch)
//	g.Execute(&framegraph.RenderContext{Device: device, Encoder: enc})
//	g.Release()
//
// Thread Safety: a Graph is NOT safe for concurrent use. Build, compile,
// and execute are strictly sequential phases on a single goroutine.
package framegraph
