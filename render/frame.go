// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/frameloop/gpucore"
	"github.com/gogpu/frameloop/internal/logging"
	"github.com/gogpu/frameloop/pipeline"
	"github.com/gogpu/frameloop/surface"
	"github.com/gogpu/gputypes"
)

// Frame errors.
var (
	// ErrFrameInFlight is returned when RenderFrame is re-entered while a
	// frame is still being recorded or presented.
	ErrFrameInFlight = errors.New("render: frame in flight")

	// ErrFormatMismatch is returned when the pipeline's output format
	// differs from the surface format.
	ErrFormatMismatch = errors.New("render: pipeline format does not match surface format")

	// ErrAcquireFailed is returned when the surface texture could not be
	// acquired, including after one reconfigure-and-retry.
	ErrAcquireFailed = errors.New("render: surface texture acquisition failed")

	// ErrNoPipeline is returned when RenderFrame is called with a nil pipeline.
	ErrNoPipeline = errors.New("render: nil pipeline")
)

// State is the position of the renderer in the per-frame state machine.
//
// State transitions:
//
//	Idle -> Acquired -> Recorded -> Submitted -> Presented
//	  ^                                              |
//	  +----------------------------------------------+
//
// Any failure after Acquired discards the texture and returns to Idle.
type State uint8

// Frame states.
const (
	StateIdle State = iota
	StateAcquired
	StateRecorded
	StateSubmitted
	StatePresented
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAcquired:
		return "Acquired"
	case StateRecorded:
		return "Recorded"
	case StateSubmitted:
		return "Submitted"
	case StatePresented:
		return "Presented"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// Options configures what each frame records.
type Options struct {
	// ClearColor fills the target before drawing.
	ClearColor gputypes.Color

	// VertexCount and InstanceCount are passed to the single draw call.
	VertexCount   uint32
	InstanceCount uint32

	// Label prefixes command encoder and render pass labels.
	Label string

	Logger *slog.Logger
}

// DefaultClearColor is the color the target is cleared to each frame.
var DefaultClearColor = gputypes.Color{R: 0.1, G: 0.2, B: 0.8, A: 1.0}

// DefaultOptions clears to [DefaultClearColor] and draws three vertices,
// one instance.
func DefaultOptions() Options {
	return Options{
		ClearColor:    DefaultClearColor,
		VertexCount:   3,
		InstanceCount: 1,
		Label:         "frame",
	}
}

// Stats counts frame outcomes since the renderer was created.
type Stats struct {
	// Frames is the number of presented frames.
	Frames uint64
	// Skipped is the number of frames skipped because the surface had no
	// area or timed out.
	Skipped uint64
	// Recoveries is the number of times the surface was reconfigured after
	// it reported itself outdated or lost.
	Recoveries uint64
}

// FrameRenderer records, submits and presents one frame at a time.
//
// FrameRenderer is not safe for concurrent use.
type FrameRenderer struct {
	surfaces *surface.Manager
	device   gpucore.Device
	queue    gpucore.Queue
	opts     Options
	log      *slog.Logger

	state State
	stats Stats
}

// New creates a renderer presenting to surfaces.
func New(surfaces *surface.Manager, dev gpucore.Device, q gpucore.Queue, opts Options) *FrameRenderer {
	if opts.Label == "" {
		opts.Label = "frame"
	}
	return &FrameRenderer{
		surfaces: surfaces,
		device:   dev,
		queue:    q,
		opts:     opts,
		log:      logging.OrNop(opts.Logger),
	}
}

// State returns the renderer state. Idle or Presented between frames.
func (r *FrameRenderer) State() State { return r.state }

// Stats returns frame counters.
func (r *FrameRenderer) Stats() Stats { return r.stats }

// Options returns the per-frame recording options.
func (r *FrameRenderer) Options() Options { return r.opts }

// RenderFrame acquires the next surface texture, clears it, draws with p,
// submits and presents.
//
// When the surface has no area the frame is skipped and nil is returned.
// An outdated or lost surface is reconfigured from its last size and the
// acquire retried once; a second failure is returned wrapped in
// [ErrAcquireFailed]. A timed-out acquire skips the frame.
func (r *FrameRenderer) RenderFrame(p *pipeline.Pipeline) error {
	if r.state != StateIdle && r.state != StatePresented {
		return fmt.Errorf("%w: state %s", ErrFrameInFlight, r.state)
	}
	if p == nil {
		return ErrNoPipeline
	}
	if !r.surfaces.Configured() {
		r.stats.Skipped++
		r.log.Debug("render: surface has no area, skipping frame")
		return nil
	}

	tex, err := r.acquire()
	if err != nil {
		if errors.Is(err, gpucore.ErrSurfaceTimeout) {
			r.stats.Skipped++
			r.log.Warn("render: surface acquire timed out, skipping frame")
			return nil
		}
		return err
	}
	r.state = StateAcquired

	presented := false
	defer func() {
		if !presented {
			r.surfaces.Discard(tex)
			r.state = StateIdle
		}
	}()

	cfg := r.surfaces.Config()
	if p.Format() != cfg.Format {
		return fmt.Errorf("%w: pipeline %s, surface %s",
			ErrFormatMismatch, gpucore.FormatName(p.Format()), gpucore.FormatName(cfg.Format))
	}

	view, err := tex.CreateView()
	if err != nil {
		return fmt.Errorf("render: create view: %w", err)
	}
	defer view.Release()

	cmd, err := r.record(view, p)
	if err != nil {
		return err
	}
	r.state = StateRecorded

	err = r.queue.Submit(cmd)
	cmd.Release()
	if err != nil {
		return fmt.Errorf("render: submit: %w", err)
	}
	r.state = StateSubmitted

	presented = true
	if err := r.surfaces.Present(r.queue, tex); err != nil {
		r.state = StateIdle
		if gpucore.IsSurfaceRecoverable(err) {
			r.log.Warn("render: surface changed during present", "err", err)
			if rerr := r.surfaces.Recover(); rerr != nil {
				return fmt.Errorf("render: recover after present: %w", rerr)
			}
			r.stats.Recoveries++
			return nil
		}
		return err
	}
	r.state = StatePresented
	r.stats.Frames++
	r.log.Debug("render: frame presented",
		"frame", r.stats.Frames,
		"width", cfg.Width, "height", cfg.Height)
	return nil
}

// acquire takes the next texture, reconfiguring and retrying once if the
// surface is outdated or lost.
func (r *FrameRenderer) acquire() (gpucore.SurfaceTexture, error) {
	tex, err := r.surfaces.Acquire()
	if err == nil {
		return tex, nil
	}
	if errors.Is(err, gpucore.ErrSurfaceTimeout) {
		return nil, err
	}
	if !gpucore.IsSurfaceRecoverable(err) {
		return nil, fmt.Errorf("%w: %w", ErrAcquireFailed, err)
	}

	r.log.Warn("render: surface needs reconfiguration", "err", err)
	if rerr := r.surfaces.Recover(); rerr != nil {
		return nil, fmt.Errorf("%w: recover: %w", ErrAcquireFailed, rerr)
	}
	r.stats.Recoveries++

	tex, err = r.surfaces.Acquire()
	if err != nil {
		if errors.Is(err, gpucore.ErrSurfaceTimeout) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: after reconfigure: %w", ErrAcquireFailed, err)
	}
	return tex, nil
}

// record encodes one render pass: clear, bind p, draw.
func (r *FrameRenderer) record(view gpucore.TextureView, p *pipeline.Pipeline) (gpucore.CommandBuffer, error) {
	encoder, err := r.device.CreateCommandEncoder(r.opts.Label + "_encoder")
	if err != nil {
		return nil, fmt.Errorf("render: create command encoder: %w", err)
	}
	defer encoder.Release()

	rp, err := encoder.BeginRenderPass(gpucore.RenderPassDescriptor{
		Label:      r.opts.Label + "_pass",
		View:       view,
		LoadOp:     gputypes.LoadOpClear,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: r.opts.ClearColor,
	})
	if err != nil {
		return nil, fmt.Errorf("render: begin render pass: %w", err)
	}
	rp.SetPipeline(p.Handle())
	rp.Draw(r.opts.VertexCount, r.opts.InstanceCount, 0, 0)
	if err := rp.End(); err != nil {
		return nil, fmt.Errorf("render: end render pass: %w", err)
	}

	cmd, err := encoder.Finish()
	if err != nil {
		return nil, fmt.Errorf("render: finish encoding: %w", err)
	}
	return cmd, nil
}
