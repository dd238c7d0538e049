package framegraph

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (e.g. a gogpu.App) implements the provider and hands it to the
// code recording the frame; the graph itself never calls it, it only
// carries it on the RenderContext so hooks and pass bodies can reach the
// shared device and queue.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, keeping the
// frame graph compatible with the gpucontext ecosystem under a local
// name.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle with no device behind it, for tests
// and headless use.
type NullDeviceHandle struct{}

// Device returns nil.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// RenderContext carries the client's GPU state through Execute into every
// hook and pass body. The graph treats it as opaque: it only passes the
// pointer along. All fields are optional as far as the core is concerned.
// The built-in barrier hooks skip their transitions when Encoder is nil;
// the built-in device hooks do not read Device and use the device passed
// to DeviceTextureHooks or DeviceBufferHooks instead.
type RenderContext struct {
	// Device creates and destroys transient resources. hal.Device
	// satisfies ResourceDevice.
	Device ResourceDevice

	// Encoder is the command encoder the frame is recorded into. The
	// barrier hooks and pass bodies issue their commands here.
	Encoder hal.CommandEncoder

	// Host is the host application's device provider, passed through for
	// pass bodies that need the shared gpucontext device or queue.
	Host DeviceHandle
}
