// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/frameloop/gpucore"
)

const (
	// submitTimeout bounds the wait for a submitted frame.
	submitTimeout = 5 * time.Second
	pollInterval  = 100 * time.Microsecond
)

type device struct {
	raw hal.Device
}

func (d *device) CreateShaderModule(desc gpucore.ShaderModuleDescriptor) (gpucore.ShaderModule, error) {
	raw, err := d.raw.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: shaderSource(desc),
	})
	if err != nil {
		return nil, fmt.Errorf("native: compile %q: %w", desc.Label, err)
	}
	return &shaderModule{raw: raw, device: d}, nil
}

// shaderSource prefers precompiled SPIR-V over WGSL.
func shaderSource(desc gpucore.ShaderModuleDescriptor) hal.ShaderSource {
	if len(desc.SPIRV) > 0 {
		return hal.ShaderSource{SPIRV: desc.SPIRV}
	}
	return hal.ShaderSource{WGSL: desc.WGSL}
}

func (d *device) CreateRenderPipeline(desc gpucore.RenderPipelineDescriptor) (gpucore.RenderPipeline, error) {
	if desc.PolygonMode != gpucore.PolygonModeFill {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPolygonMode, desc.PolygonMode)
	}
	module, ok := desc.Module.(*shaderModule)
	if !ok {
		return nil, ErrForeignObject
	}

	layout, err := d.raw.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: desc.Label + "_layout",
	})
	if err != nil {
		return nil, fmt.Errorf("native: create pipeline layout: %w", err)
	}

	raw, err := d.raw.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     module.raw,
			EntryPoint: desc.VertexEntry,
		},
		Fragment: &hal.FragmentState{
			Module:     module.raw,
			EntryPoint: desc.FragmentEntry,
			Targets:    []gputypes.ColorTargetState{desc.Target},
		},
		Primitive:   desc.Primitive,
		Multisample: desc.Multisample,
	})
	if err != nil {
		d.raw.DestroyPipelineLayout(layout)
		return nil, fmt.Errorf("native: create render pipeline: %w", err)
	}
	return &renderPipeline{raw: raw, layout: layout, device: d}, nil
}

func (d *device) CreateCommandEncoder(label string) (gpucore.CommandEncoder, error) {
	raw, err := d.raw.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, fmt.Errorf("native: create command encoder: %w", err)
	}
	if err := raw.BeginEncoding(label); err != nil {
		return nil, fmt.Errorf("native: begin encoding: %w", err)
	}
	return &commandEncoder{raw: raw, device: d}, nil
}

func (d *device) Release() {
	if d.raw != nil {
		d.raw.Destroy()
		d.raw = nil
	}
}

type shaderModule struct {
	raw    hal.ShaderModule
	device *device
}

func (m *shaderModule) Release() {
	if m.raw != nil {
		m.device.raw.DestroyShaderModule(m.raw)
		m.raw = nil
	}
}

type renderPipeline struct {
	raw    hal.RenderPipeline
	layout hal.PipelineLayout
	device *device
}

func (p *renderPipeline) Release() {
	if p.raw != nil {
		p.device.raw.DestroyRenderPipeline(p.raw)
		p.device.raw.DestroyPipelineLayout(p.layout)
		p.raw, p.layout = nil, nil
	}
}

type commandEncoder struct {
	raw      hal.CommandEncoder
	device   *device
	finished bool
}

func (e *commandEncoder) BeginRenderPass(desc gpucore.RenderPassDescriptor) (gpucore.RenderPassEncoder, error) {
	view, ok := desc.View.(*textureView)
	if !ok {
		return nil, ErrForeignObject
	}
	rp := e.raw.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: desc.Label,
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       view.raw,
				LoadOp:     desc.LoadOp,
				StoreOp:    desc.StoreOp,
				ClearValue: desc.ClearValue,
			},
		},
	})
	return &renderPass{raw: rp}, nil
}

func (e *commandEncoder) Finish() (gpucore.CommandBuffer, error) {
	cb, err := e.raw.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("native: end encoding: %w", err)
	}
	e.finished = true
	return &commandBuffer{raw: cb, device: e.device}, nil
}

// Release discards an unfinished recording.
func (e *commandEncoder) Release() {
	if !e.finished {
		e.raw.DiscardEncoding()
		e.finished = true
	}
}

type renderPass struct {
	raw hal.RenderPassEncoder
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
	return rp.err
}

type commandBuffer struct {
	raw    hal.CommandBuffer
	device *device
}

func (c *commandBuffer) Release() {
	if c.raw != nil {
		c.device.raw.FreeCommandBuffer(c.raw)
		c.raw = nil
	}
}

type queue struct {
	raw    hal.Queue
	device *device
}

// Submit submits the buffers and waits until the GPU has executed them.
func (q *queue) Submit(buffers ...gpucore.CommandBuffer) error {
	raw := make([]hal.CommandBuffer, 0, len(buffers))
	for _, b := range buffers {
		cb, ok := b.(*commandBuffer)
		if !ok {
			return ErrForeignObject
		}
		raw = append(raw, cb.raw)
	}

	idx, err := q.raw.Submit(raw)
	if err != nil {
		return fmt.Errorf("native: submit: %w", err)
	}
	return waitCompleted(q.raw.PollCompleted, idx, submitTimeout)
}

// waitCompleted polls until poll reports idx completed or timeout elapses.
func waitCompleted(poll func() uint64, idx uint64, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for poll() < idx {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: submission %d", ErrSubmitTimeout, idx)
		}
		time.Sleep(pollInterval)
	}
	return nil
}

func (q *queue) Present(s gpucore.Surface, tex gpucore.SurfaceTexture) error {
	ss, ok := s.(*surface)
	if !ok {
		return ErrForeignObject
	}
	t, ok := tex.(*surfaceTexture)
	if !ok {
		return ErrForeignObject
	}
	if err := q.raw.Present(ss.raw, t.raw, nil); err != nil {
		return fmt.Errorf("native: present: %w", surfaceError(err))
	}
	t.raw = nil
	return nil
}
