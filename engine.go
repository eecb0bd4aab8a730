// SPDX-FileCopyrightText : © 2022-2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package wallglass

// engine.go is the driver loop: it runs the six frame phases in strict
// sequence (§2) and owns the registries/scheduler every phase touches.
// The engine never talks to Wayland or Vulkan directly; it is handed a
// device.Output per monitor and a Wallpaper per monitor and only calls
// through those interfaces, keeping the windowing and GPU collaborators
// out of this package's import graph (§1, §6).

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kestrelpane/wallglass/device"
)

// mainFlushable is implemented by every Assets[T] instance the engine
// tracks so PostExtract can drain drops and flush change lists without
// the engine needing to know each T.
type mainFlushable interface {
	DrainDrops()
	Flush()
}

// renderFlushable is implemented by every RenderAssets/RefAssets
// instance so Render:Update can drop pending-removed entries uniformly.
type renderFlushable interface {
	FlushPhase()
}

// Updatable is implemented by main-world systems that need to advance
// their own state during Update(main), before Extract runs - e.g. a
// video wallpaper's decode pull loop, which must mark its source asset
// changed in time for this frame's Extract to see it (§4.2's "source
// assets reflect this frame's changes before Extract" ordering).
type Updatable interface {
	Update(delta time.Duration)
}

// PipelineFactory builds the per-monitor Wallpaper pipeline (transition,
// mesh, or video, per §9's supplemented per-monitor pipeline set) for a
// newly plugged monitor. The engine never constructs GPU resources
// itself (§1, §6); the factory is supplied by whatever owns the render
// package's concrete types.
type PipelineFactory func(sig MonitorPlugged) (Wallpaper, error)

// Resizer is implemented by a pipeline Wallpaper that owns size-
// dependent GPU resources - TransitionWallpaper's offscreen targets,
// ImageWallpaper's cached upload - that must be reallocated when their
// monitor's ResizeRequested fires.
type Resizer interface {
	HandleResize(size device.Size) error
}

// Engine drives the main/render world split described in §2.
type Engine struct {
	Config Config
	Time   Time
	World  *World

	extraction *Extraction
	mainRegs   []mainFlushable
	renderRegs []renderFlushable
	updaters   []Updatable

	monitors        map[MonitorId]device.Output
	pipelines       map[MonitorId]Wallpaper
	pipelineFactory PipelineFactory
	onStop          []func()
}

// NewEngine returns an Engine ready to register asset types and
// extraction systems before the driver loop starts.
func NewEngine(cfg Config) *Engine {
	return &Engine{
		Config:     cfg,
		World:      NewWorld(),
		extraction: NewExtraction(),
		monitors:   make(map[MonitorId]device.Output),
		pipelines:  make(map[MonitorId]Wallpaper),
	}
}

// SetPipelineFactory installs the factory PlugMonitor uses to build
// each newly plugged monitor's pipeline. Must be called before the
// driver starts raising MonitorPlugged signals.
func (e *Engine) SetPipelineFactory(f PipelineFactory) { e.pipelineFactory = f }

// TrackMain registers a main-world Assets[T] so PostExtract drains and
// flushes it every frame.
func (e *Engine) TrackMain(a mainFlushable) { e.mainRegs = append(e.mainRegs, a) }

// TrackRender registers a render-world RenderAssets/RefAssets so
// Render:Update flushes its pending removals every frame.
func (e *Engine) TrackRender(r renderFlushable) { e.renderRegs = append(e.renderRegs, r) }

// TrackUpdate registers a main-world system to advance during
// Update(main), before Extract runs.
func (e *Engine) TrackUpdate(u Updatable) { e.updaters = append(e.updaters, u) }

// AddExtractSystem registers one Extract-phase system.
func (e *Engine) AddExtractSystem(s ExtractSystem) { e.extraction.Add(s) }

// PlugMonitor implements the MonitorPlugged signal (§6): records the
// output so wallpapers can be driven against it, then - if a
// PipelineFactory is installed - builds and registers that monitor's
// own pipeline, matching this signal's documented contract of creating
// the monitor's transition/mesh/video pipelines.
func (e *Engine) PlugMonitor(sig MonitorPlugged, out device.Output) error {
	e.monitors[sig.Id] = out
	slog.Info("wallglass: monitor plugged", "id", sig.Id, "width", sig.Size.Width, "height", sig.Size.Height)
	if e.pipelineFactory == nil {
		return nil
	}
	wp, err := e.pipelineFactory(sig)
	if err != nil {
		return fmt.Errorf("wallglass: build pipeline for monitor %d: %w", sig.Id, err)
	}
	e.pipelines[sig.Id] = wp
	return nil
}

// UnplugMonitor implements the MonitorUnplugged signal (§6): drops the
// output and tears down the monitor's pipeline, if one was built.
func (e *Engine) UnplugMonitor(sig MonitorUnplugged) {
	delete(e.monitors, sig.Id)
	if wp, ok := e.pipelines[sig.Id]; ok {
		if d, ok := wp.(interface{ Destroy() }); ok {
			d.Destroy()
		}
		delete(e.pipelines, sig.Id)
	}
	slog.Info("wallglass: monitor unplugged", "id", sig.Id)
}

// ResizeMonitor implements the ResizeRequested signal (§6): reallocates
// any size-dependent resources sig.Id's pipeline owns, if it implements
// Resizer.
func (e *Engine) ResizeMonitor(sig ResizeRequested) error {
	wp, ok := e.pipelines[sig.Id]
	if !ok {
		return nil
	}
	r, ok := wp.(Resizer)
	if !ok {
		return nil
	}
	if err := r.HandleResize(sig.Size); err != nil {
		return fmt.Errorf("wallglass: resize monitor %d: %w", sig.Id, err)
	}
	return nil
}

// Output returns the registered output for id, if any.
func (e *Engine) Output(id MonitorId) (device.Output, bool) {
	out, ok := e.monitors[id]
	return out, ok
}

// Wallpapers returns the pipelines built by PlugMonitor, keyed by
// monitor, for the driver loop to pass into Tick.
func (e *Engine) Wallpapers() map[MonitorId]Wallpaper { return e.pipelines }

// Tick runs one full frame: Update, Extract, PrepareRender, Render,
// Present, PostExtract, in that order, against the given set of active
// wallpapers. prepare and present are supplied by the render package's
// concrete GPU backend; wallglass only sequences them.
func (e *Engine) Tick(
	ctx context.Context,
	now time.Time,
	delta time.Duration,
	wallpapers map[MonitorId]Wallpaper,
	prepare func(context.Context) error,
	present func(context.Context) error,
) (map[MonitorId]FrameInfo, error) {
	// Update(main)
	e.Time.Advance(delta)
	for _, u := range e.updaters {
		u.Update(delta)
	}
	e.World.Propagate()

	// Extract(main->render)
	if err := e.extraction.Run(ctx); err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	// PrepareRender(render)
	if prepare != nil {
		if err := prepare(ctx); err != nil {
			return nil, fmt.Errorf("prepare render: %w", err)
		}
	}

	// Render(render): drive every active monitor's wallpaper.
	infos := make(map[MonitorId]FrameInfo, len(wallpapers))
	for id, wp := range wallpapers {
		out, ok := e.monitors[id]
		if !ok {
			slog.Warn("wallglass: no output registered for monitor", "id", id)
			continue
		}
		info, err := wp.Frame(out, now)
		if err != nil {
			infos[id] = info
			continue
		}
		switch info.Err {
		case FrameStopRequested:
			slog.Info("wallglass: wallpaper requested stop", "monitor", id)
		case FrameSkip:
			slog.Warn("wallglass: wallpaper skipped a frame", "monitor", id)
		}
		infos[id] = info
	}

	// Present(render)
	if present != nil {
		if err := present(ctx); err != nil {
			return nil, fmt.Errorf("present: %w", err)
		}
	}

	// Render:Update - flush render-world removals queued this frame.
	for _, r := range e.renderRegs {
		r.FlushPhase()
	}

	// PostExtract(main cleanup)
	for _, a := range e.mainRegs {
		a.DrainDrops()
		a.Flush()
	}

	return infos, nil
}

// NextWakeup derives the driver's next scheduled wake-up for a monitor
// from this tick's FrameInfo results, bounded below by the monitor's
// native frame interval, per §4.6.
func NextWakeup(info FrameInfo, nativeInterval time.Duration) time.Duration {
	wake := Fallback60Hz
	if info.HasTargetFrameTime {
		wake = info.TargetFrameTime
	}
	if wake < nativeInterval {
		wake = nativeInterval
	}
	return wake
}
