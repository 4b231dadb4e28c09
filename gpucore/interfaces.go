package gpucore

// Platform identifies the windowing system a [NativeWindow] belongs to.
type Platform uint8

// Platforms.
const (
	PlatformUnknown Platform = iota
	PlatformX11
	PlatformWayland
	PlatformWin32
	PlatformCocoa
	// PlatformHeadless is a window with no OS counterpart.
	PlatformHeadless
)

// String returns the platform name.
func (p Platform) String() string {
	switch p {
	case PlatformX11:
		return "x11"
	case PlatformWayland:
		return "wayland"
	case PlatformWin32:
		return "win32"
	case PlatformCocoa:
		return "cocoa"
	case PlatformHeadless:
		return "headless"
	default:
		return "unknown"
	}
}

// NativeWindow carries the raw handles a backend needs to create a surface.
//
//   - X11: Display is the Display*, Window is the XID.
//   - Wayland: Display is the wl_display*, Window is the wl_surface*.
//   - Win32: Display is the HINSTANCE, Window is the HWND.
//   - Cocoa: Window is the CAMetalLayer*.
type NativeWindow struct {
	Platform Platform
	Display  uintptr
	Window   uintptr
}

// WindowHandle is anything that can expose its native window handles.
type WindowHandle interface {
	NativeWindow() (NativeWindow, error)
}

// Instance is the backend entry point. One per application.
type Instance interface {
	// CreateSurface creates a presentable surface for a native window.
	// Returns an error wrapping [ErrUnsupportedWindow] when the backend
	// cannot present to that platform.
	CreateSurface(w NativeWindow) (Surface, error)

	// EnumerateAdapters lists the adapters matching opts. The order is the
	// backend's own; callers apply [SelectAdapter].
	EnumerateAdapters(opts AdapterOptions) ([]Adapter, error)

	// Release destroys the instance. All children must be released first.
	Release()
}

// Adapter is one physical GPU.
type Adapter interface {
	Info() AdapterInfo

	// SurfaceCapabilities returns what this adapter can present to s.
	// An empty result means the adapter is not compatible with s.
	SurfaceCapabilities(s Surface) SurfaceCapabilities

	// RequestDevice opens a logical device and its queue.
	RequestDevice(desc DeviceDescriptor) (Device, Queue, error)

	Release()
}

// Surface is the presentable target bound to one window.
type Surface interface {
	// Configure applies cfg. The surface must not have an acquired texture.
	Configure(dev Device, cfg SurfaceConfiguration) error

	// Unconfigure drops the current configuration.
	Unconfigure(dev Device)

	// AcquireTexture returns the next presentable texture. Recoverable
	// failures wrap [ErrSurfaceOutdated], [ErrSurfaceLost] or
	// [ErrSurfaceTimeout].
	AcquireTexture() (SurfaceTexture, error)

	// DiscardTexture returns an acquired texture without presenting it.
	DiscardTexture(tex SurfaceTexture)

	Release()
}

// SurfaceTexture is a texture acquired from a [Surface] for one frame.
type SurfaceTexture interface {
	// CreateView creates a render-attachment view of the whole texture.
	CreateView() (TextureView, error)
}

// TextureView is a view usable as a render pass color attachment.
type TextureView interface {
	Release()
}

// Device creates GPU objects.
type Device interface {
	CreateShaderModule(desc ShaderModuleDescriptor) (ShaderModule, error)
	CreateRenderPipeline(desc RenderPipelineDescriptor) (RenderPipeline, error)
	CreateCommandEncoder(label string) (CommandEncoder, error)
	Release()
}

// ShaderModule is a compiled shader.
type ShaderModule interface {
	Release()
}

// RenderPipeline is an immutable compiled render pipeline.
type RenderPipeline interface {
	Release()
}

// CommandEncoder records render passes into a [CommandBuffer].
//
// An encoder is single use: after Finish or Release it must not be used.
type CommandEncoder interface {
	BeginRenderPass(desc RenderPassDescriptor) (RenderPassEncoder, error)
	Finish() (CommandBuffer, error)
	Release()
}

// RenderPassEncoder records draw commands within one render pass.
type RenderPassEncoder interface {
	SetPipeline(p RenderPipeline)
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	End() error
}

// CommandBuffer is a finished, submittable command list.
type CommandBuffer interface {
	Release()
}

// Queue submits work and presents frames.
type Queue interface {
	// Submit executes buffers in order.
	Submit(buffers ...CommandBuffer) error

	// Present queues tex for display on s. tex must have been acquired from s.
	Present(s Surface, tex SurfaceTexture) error
}
