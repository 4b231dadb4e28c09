//go:build rust

package rust

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/frameloop/gpucore"
)

type device struct {
	raw     *wgpu.Device
	adapter *wgpu.Adapter
}

func (d *device) CreateShaderModule(desc gpucore.ShaderModuleDescriptor) (gpucore.ShaderModule, error) {
	raw, err := d.raw.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          desc.Label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: desc.WGSL},
	})
	if err != nil {
		return nil, fmt.Errorf("rust: compile %q: %w", desc.Label, err)
	}
	return &shaderModule{raw: raw}, nil
}

func (d *device) CreateRenderPipeline(desc gpucore.RenderPipelineDescriptor) (gpucore.RenderPipeline, error) {
	if desc.PolygonMode != gpucore.PolygonModeFill {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPolygonMode, desc.PolygonMode)
	}
	if desc.Target.Blend != nil {
		return nil, ErrUnsupportedBlend
	}
	module, ok := desc.Module.(*shaderModule)
	if !ok {
		return nil, ErrForeignObject
	}
	format, ok := formatToWGPU(desc.Target.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, desc.Target.Format)
	}

	layout, err := d.raw.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label: desc.Label + "_layout",
	})
	if err != nil {
		return nil, fmt.Errorf("rust: create pipeline layout: %w", err)
	}

	raw, err := d.raw.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module.raw,
			EntryPoint: desc.VertexEntry,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module.raw,
			EntryPoint: desc.FragmentEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMask(desc.Target.WriteMask),
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  topology(desc.Primitive.Topology),
			FrontFace: frontFace(desc.Primitive.FrontFace),
			CullMode:  cullMode(desc.Primitive.CullMode),
		},
		Multisample: wgpu.MultisampleState{
			Count: desc.Multisample.Count,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		layout.Release()
		return nil, fmt.Errorf("rust: create render pipeline: %w", err)
	}
	return &renderPipeline{raw: raw, layout: layout}, nil
}

func (d *device) CreateCommandEncoder(label string) (gpucore.CommandEncoder, error) {
	raw, err := d.raw.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("rust: create command encoder: %w", err)
	}
	return &commandEncoder{raw: raw}, nil
}

func (d *device) Release() {
	if d.raw != nil {
		d.raw.Release()
		d.raw = nil
	}
}

type shaderModule struct {
	raw *wgpu.ShaderModule
}

func (m *shaderModule) Release() {
	if m.raw != nil {
		m.raw.Release()
		m.raw = nil
	}
}

type renderPipeline struct {
	raw    *wgpu.RenderPipeline
	layout *wgpu.PipelineLayout
}

func (p *renderPipeline) Release() {
	if p.raw != nil {
		p.raw.Release()
		p.layout.Release()
		p.raw, p.layout = nil, nil
	}
}

type commandEncoder struct {
	raw *wgpu.CommandEncoder
}

func (e *commandEncoder) BeginRenderPass(desc gpucore.RenderPassDescriptor) (gpucore.RenderPassEncoder, error) {
	view, ok := desc.View.(*textureView)
	if !ok {
		return nil, ErrForeignObject
	}
	c := desc.ClearValue
	rp := e.raw.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: desc.Label,
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view.raw,
			LoadOp:     loadOp(desc.LoadOp),
			StoreOp:    storeOp(desc.StoreOp),
			ClearValue: wgpu.Color{R: c.R, G: c.G, B: c.B, A: c.A},
		}},
	})
	return &renderPass{raw: rp}, nil
}

func (e *commandEncoder) Finish() (gpucore.CommandBuffer, error) {
	cb, err := e.raw.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("rust: finish encoding: %w", err)
	}
	return &commandBuffer{raw: cb}, nil
}

func (e *commandEncoder) Release() {
	if e.raw != nil {
		e.raw.Release()
		e.raw = nil
	}
}

type renderPass struct {
	raw *wgpu.RenderPassEncoder
	err error
}

func (rp *renderPass) SetPipeline(p gpucore.RenderPipeline) {
	pipe, ok := p.(*renderPipeline)
	if !ok {
		rp.err = ErrForeignObject
		return
	}
	rp.raw.SetPipeline(pipe.raw)
}

func (rp *renderPass) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	rp.raw.Draw(vertexCount, instanceCount, firstVertex, firstInstance)
}

func (rp *renderPass) End() error {
	rp.raw.End()
	rp.raw.Release()
	return rp.err
}

type commandBuffer struct {
	raw *wgpu.CommandBuffer
}

func (c *commandBuffer) Release() {
	if c.raw != nil {
		c.raw.Release()
		c.raw = nil
	}
}

type queue struct {
	raw *wgpu.Queue
}

func (q *queue) Submit(buffers ...gpucore.CommandBuffer) error {
	raw := make([]*wgpu.CommandBuffer, 0, len(buffers))
	for _, b := range buffers {
		cb, ok := b.(*commandBuffer)
		if !ok {
			return ErrForeignObject
		}
		raw = append(raw, cb.raw)
	}
	q.raw.Submit(raw...)
	return nil
}

// Present shows the surface's current texture. wgpu-native presents the
// texture it handed out last, so tex only needs to belong to this backend.
func (q *queue) Present(s gpucore.Surface, tex gpucore.SurfaceTexture) error {
	ss, ok := s.(*surface)
	if !ok {
		return ErrForeignObject
	}
	t, ok := tex.(*surfaceTexture)
	if !ok {
		return ErrForeignObject
	}
	ss.raw.Present()
	if t.raw != nil {
		t.raw.Release()
		t.raw = nil
	}
	return nil
}
