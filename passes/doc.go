// Package passes provides ready-made frame graph passes for common frame
// plumbing: blitting a result into an imported target and fullscreen
// post-processing with a WGSL shader.
//
// Each pass type follows the same shape: a Setup method that opens a
// pass on the graph and declares its resources, and an execute callback
// the graph invokes when the pass survives compilation. Client render
// passes are expected to look the same; these exist so an application's
// first frame graph needs no boilerplate.
package passes
