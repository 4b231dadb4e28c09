package headless

import (
	"sync"

	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/gputypes"
)

// Draw is one recorded draw call.
type Draw struct {
	VertexCount   uint32
	InstanceCount uint32
	FirstVertex   uint32
	FirstInstance uint32
}

// Pass is one recorded render pass.
type Pass struct {
	Label      string
	LoadOp     gputypes.LoadOp
	StoreOp    gputypes.StoreOp
	ClearValue gputypes.Color

	// TargetFormat and TargetWidth/TargetHeight describe the attachment.
	TargetFormat gputypes.TextureFormat
	TargetWidth  uint32
	TargetHeight uint32

	// Pipeline is the id of the last pipeline bound before each draw, or 0.
	Pipeline uint64
	Draws    []Draw
}

// Frame is one presented surface texture and the passes submitted to it.
type Frame struct {
	Texture uint64
	Width   uint32
	Height  uint32
	Format  gputypes.TextureFormat
	Passes  []Pass
}

type objectKind int

const (
	kindInstance objectKind = iota
	kindSurface
	kindAdapter
	kindDevice
	kindShader
	kindPipeline
	kindEncoder
	kindCommandBuffer
	kindView
	kindCount
)

var kindNames = [kindCount]string{
	kindInstance:      "instance",
	kindSurface:       "surface",
	kindAdapter:       "adapter",
	kindDevice:        "device",
	kindShader:        "shader module",
	kindPipeline:      "render pipeline",
	kindEncoder:       "command encoder",
	kindCommandBuffer: "command buffer",
	kindView:          "texture view",
}

// Recorder collects everything submitted to a headless backend.
// It is safe for concurrent use.
type Recorder struct {
	mu sync.Mutex

	nextID         uint64
	live           [kindCount]int
	configurations []gpucore.SurfaceConfiguration
	frames         []Frame
	pending        map[uint64][]Pass
	submissions    int
	acquires       int
	acquireErrs    []error
}

func newRecorder() *Recorder {
	return &Recorder{pending: make(map[uint64][]Pass)}
}

func (r *Recorder) id() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	return r.nextID
}

func (r *Recorder) track(k objectKind, delta int) {
	r.mu.Lock()
	r.live[k] += delta
	r.mu.Unlock()
}

// FailAcquire queues errors returned by the next AcquireTexture calls, one
// per call, before acquisition succeeds again.
func (r *Recorder) FailAcquire(errs ...error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.acquireErrs = append(r.acquireErrs, errs...)
}

// nextAcquireError pops the next injected acquire failure.
func (r *Recorder) nextAcquireError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.acquires++
	if len(r.acquireErrs) == 0 {
		return nil
	}
	err := r.acquireErrs[0]
	r.acquireErrs = r.acquireErrs[1:]
	return err
}

func (r *Recorder) configured(cfg gpucore.SurfaceConfiguration) {
	r.mu.Lock()
	r.configurations = append(r.configurations, cfg)
	r.mu.Unlock()
}

func (r *Recorder) submitted(passes map[uint64][]Pass) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions++
	for tex, p := range passes {
		r.pending[tex] = append(r.pending[tex], p...)
	}
}

func (r *Recorder) presented(t *texture) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, Frame{
		Texture: t.id,
		Width:   t.width,
		Height:  t.height,
		Format:  t.format,
		Passes:  r.pending[t.id],
	})
	delete(r.pending, t.id)
}

func (r *Recorder) discarded(t *texture) {
	r.mu.Lock()
	delete(r.pending, t.id)
	r.mu.Unlock()
}

// Configurations returns every configuration successfully applied to any
// surface, in order.
func (r *Recorder) Configurations() []gpucore.SurfaceConfiguration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]gpucore.SurfaceConfiguration(nil), r.configurations...)
}

// Frames returns every presented frame, in order.
func (r *Recorder) Frames() []Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Frame(nil), r.frames...)
}

// Submissions returns the number of successful Queue.Submit calls.
func (r *Recorder) Submissions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.submissions
}

// Acquires returns the number of AcquireTexture calls, failed ones included.
func (r *Recorder) Acquires() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.acquires
}

// Leaks returns a description of every object kind with more creations than
// releases. Empty when everything was released.
func (r *Recorder) Leaks() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	leaks := make(map[string]int)
	for k, n := range r.live {
		if n != 0 {
			leaks[kindNames[k]] = n
		}
	}
	return leaks
}
