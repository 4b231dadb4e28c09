package headless

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/gputypes"
)

// errEncoderFinished is returned when using an encoder after Finish.
var errEncoderFinished = errors.New("headless: command encoder already finished")

type device struct {
	rec   *Recorder
	caps  gpucore.SurfaceCapabilities
	label string
}

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

type shaderModule struct {
	rec      *Recorder
	wgsl     string
	released bool
}

func (m *shaderModule) Release() {
	if m.released {
		return
	}
	m.released = true
	m.rec.track(kindShader, -1)
}

type renderPipeline struct {
	id       uint64
	rec      *Recorder
	format   gputypes.TextureFormat
	released bool
}

func (p *renderPipeline) Release() {
	if p.released {
		return
	}
	p.released = true
	p.rec.track(kindPipeline, -1)
}

func (d *device) CreateShaderModule(desc gpucore.ShaderModuleDescriptor) (gpucore.ShaderModule, error) {
	if desc.WGSL == "" {
		return nil, fmt.Errorf("headless: shader module %q: empty source", desc.Label)
	}
	if len(desc.SPIRV) > 0 && desc.SPIRV[0] != spirvMagic {
		return nil, fmt.Errorf("headless: shader module %q: bad SPIR-V magic %#x", desc.Label, desc.SPIRV[0])
	}
	d.rec.track(kindShader, +1)
	return &shaderModule{rec: d.rec, wgsl: desc.WGSL}, nil
}

func (d *device) CreateRenderPipeline(desc gpucore.RenderPipelineDescriptor) (gpucore.RenderPipeline, error) {
	m, ok := desc.Module.(*shaderModule)
	if !ok || m.released {
		return nil, fmt.Errorf("headless: pipeline %q: invalid shader module", desc.Label)
	}
	for _, entry := range []struct{ stage, name string }{
		{"vertex", desc.VertexEntry},
		{"fragment", desc.FragmentEntry},
	} {
		if !hasEntryPoint(m.wgsl, entry.stage, entry.name) {
			return nil, fmt.Errorf("headless: pipeline %q: %s entry point %q not found", desc.Label, entry.stage, entry.name)
		}
	}
	if desc.Target.Format == gputypes.TextureFormatUndefined {
		return nil, fmt.Errorf("headless: pipeline %q: undefined target format", desc.Label)
	}
	if desc.Multisample.Count != 1 {
		return nil, fmt.Errorf("headless: pipeline %q: sample count %d unsupported", desc.Label, desc.Multisample.Count)
	}
	d.rec.track(kindPipeline, +1)
	return &renderPipeline{id: d.rec.id(), rec: d.rec, format: desc.Target.Format}, nil
}

// hasEntryPoint reports whether wgsl declares fn name under @stage.
func hasEntryPoint(wgsl, stage, name string) bool {
	re := regexp.MustCompile(`@` + stage + `\s+fn\s+` + regexp.QuoteMeta(name) + `\s*\(`)
	return re.MatchString(wgsl)
}

func (d *device) CreateCommandEncoder(label string) (gpucore.CommandEncoder, error) {
	d.rec.track(kindEncoder, +1)
	return &commandEncoder{rec: d.rec, label: label, passes: make(map[uint64][]Pass)}, nil
}

func (d *device) Release() {
	d.rec.track(kindDevice, -1)
}

type commandEncoder struct {
	rec      *Recorder
	label    string
	passes   map[uint64][]Pass
	textures []*texture
	open     *renderPass
	finished bool
	released bool
	err      error
}

func (e *commandEncoder) BeginRenderPass(desc gpucore.RenderPassDescriptor) (gpucore.RenderPassEncoder, error) {
	if e.finished {
		return nil, errEncoderFinished
	}
	if e.open != nil {
		return nil, errors.New("headless: render pass already open")
	}
	v, ok := desc.View.(*view)
	if !ok || v.released {
		return nil, errors.New("headless: render pass needs a live surface view")
	}
	e.open = &renderPass{
		enc: e,
		tex: v.tex,
		pass: Pass{
			Label:        desc.Label,
			LoadOp:       desc.LoadOp,
			StoreOp:      desc.StoreOp,
			ClearValue:   desc.ClearValue,
			TargetFormat: v.tex.format,
			TargetWidth:  v.tex.width,
			TargetHeight: v.tex.height,
		},
	}
	return e.open, nil
}

func (e *commandEncoder) Finish() (gpucore.CommandBuffer, error) {
	if e.finished {
		return nil, errEncoderFinished
	}
	if e.open != nil {
		return nil, errors.New("headless: render pass not ended")
	}
	e.finished = true
	if e.err != nil {
		return nil, e.err
	}
	e.rec.track(kindCommandBuffer, +1)
	return &commandBuffer{rec: e.rec, passes: e.passes, textures: e.textures}, nil
}

func (e *commandEncoder) Release() {
	if e.released {
		return
	}
	e.released = true
	e.rec.track(kindEncoder, -1)
}

type renderPass struct {
	enc      *commandEncoder
	tex      *texture
	pass     Pass
	pipeline *renderPipeline
	err      error
}

func (p *renderPass) SetPipeline(rp gpucore.RenderPipeline) {
	pl, ok := rp.(*renderPipeline)
	if !ok || pl.released {
		p.err = errors.New("headless: invalid pipeline")
		return
	}
	if pl.format != p.tex.format {
		p.err = fmt.Errorf("%w: pipeline %s, attachment %s",
			ErrFormatMismatch, gpucore.FormatName(pl.format), gpucore.FormatName(p.tex.format))
		return
	}
	p.pipeline = pl
	p.pass.Pipeline = pl.id
}

func (p *renderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	if p.pipeline == nil && p.err == nil {
		p.err = errors.New("headless: draw without pipeline")
		return
	}
	p.pass.Draws = append(p.pass.Draws, Draw{
		VertexCount:   vertexCount,
		InstanceCount: instanceCount,
		FirstVertex:   firstVertex,
		FirstInstance: firstInstance,
	})
}

func (p *renderPass) End() error {
	e := p.enc
	if e.open != p {
		return errors.New("headless: render pass already ended")
	}
	e.open = nil
	if p.err != nil {
		e.err = p.err
		return p.err
	}
	e.passes[p.tex.id] = append(e.passes[p.tex.id], p.pass)
	e.textures = append(e.textures, p.tex)
	return nil
}

type commandBuffer struct {
	rec       *Recorder
	passes    map[uint64][]Pass
	textures  []*texture
	submitted bool
	released  bool
}

func (b *commandBuffer) Release() {
	if b.released {
		return
	}
	b.released = true
	b.rec.track(kindCommandBuffer, -1)
}

type queue struct {
	dev *device
}

func (q *queue) Submit(buffers ...gpucore.CommandBuffer) error {
	cbs := make([]*commandBuffer, 0, len(buffers))
	for _, cb := range buffers {
		b, ok := cb.(*commandBuffer)
		if !ok || b.released || b.submitted {
			return errors.New("headless: invalid command buffer")
		}
		for _, t := range b.textures {
			s := t.surface
			if s.generation != t.generation {
				return fmt.Errorf("%w: texture %d", ErrStaleTexture, t.id)
			}
			if t.width != s.config.Width || t.height != s.config.Height {
				return fmt.Errorf("%w: %dx%d vs %dx%d",
					ErrDimensionMismatch, t.width, t.height, s.config.Width, s.config.Height)
			}
		}
		cbs = append(cbs, b)
	}
	for _, b := range cbs {
		b.submitted = true
		q.dev.rec.submitted(b.passes)
	}
	return nil
}

func (q *queue) Present(s gpucore.Surface, tex gpucore.SurfaceTexture) error {
	surf, ok := s.(*surface)
	if !ok {
		return errors.New("headless: foreign surface")
	}
	t, ok := tex.(*texture)
	if !ok || t.surface != surf || surf.acquired != t {
		return fmt.Errorf("%w: texture not acquired from this surface", ErrStaleTexture)
	}
	surf.acquired = nil
	if t.generation != surf.generation {
		surf.rec.discarded(t)
		return fmt.Errorf("%w: texture %d", ErrStaleTexture, t.id)
	}
	surf.rec.presented(t)
	return nil
}
