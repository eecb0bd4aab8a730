// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package wallglass

// transition.go implements the crossfade compositor (§4.5): two child
// wallpapers rendered to offscreen targets, blended on the output
// surface by a radial mask whose radius grows or shrinks over a
// configured duration.

import (
	"fmt"
	"math"
	"time"

	"github.com/tanema/gween/ease"

	"github.com/kestrelpane/wallglass/device"
)

// Direction chooses whether the radial mask grows (Out, revealing "to")
// or shrinks (In, revealing "from" as it closes over "to").
type Direction int

const (
	// DirectionOut grows the radius from 0 to radius_scale.
	DirectionOut Direction = iota
	// DirectionIn shrinks the radius from radius_scale to 0.
	DirectionIn
)

// TransitionConfig parameterizes a TransitionWallpaper.
type TransitionConfig struct {
	Duration    time.Duration
	Direction   Direction
	Easing      ease.TweenFunc // nil defaults to ease.Linear.
	Centre      [2]float32     // normalized device coordinates, range [-1,1].
}

// Wallpaper is the frame contract every presentable wallpaper
// implements, including a TransitionWallpaper itself: "coroutine-ish
// frame calls" (§9) are modeled as a plain function returning a
// FrameInfo, with no suspension - the driver owns the scheduling clock.
type Wallpaper interface {
	Frame(out device.Output, now time.Time) (FrameInfo, error)
}

// childSlot tracks one child's own frame-pacing negotiation (§5):
// its offscreen target stays valid between renders until its
// remaining target frame time has elapsed.
type childSlot struct {
	wallpaper Wallpaper
	remaining time.Duration
	rendered  bool // has this slot rendered at least once.
}

// TransitionWallpaper composes two wallpapers with a radial crossfade.
// Each child renders into its own offscreen target (§3, §4.5) rather
// than the real output; only the final radial-blend pass, owned by the
// GPU collaborator (§6), draws to the monitor surface, sampling these
// two targets as its inputs.
type TransitionWallpaper struct {
	from, to childSlot
	cfg      TransitionConfig

	alloc                device.OffscreenAllocator
	fromTarget, toTarget device.Output
	targetSize           device.Size
	targetFormat         device.PixelFormat

	started       bool
	start         time.Time
	lastFrameTime time.Time
	finished      bool
}

// NewTransitionWallpaper begins a transition between from and to,
// allocating the two offscreen targets each child renders into (§3
// "two offscreen textures matching monitor size/format") via alloc,
// sized to size/format - normally the plugged monitor's own, per §6's
// MonitorPlugged signal. The animation clock starts lazily on the
// first Frame call (the "Fresh" state of §4.5).
func NewTransitionWallpaper(from, to Wallpaper, cfg TransitionConfig, alloc device.OffscreenAllocator, size device.Size, format device.PixelFormat) (*TransitionWallpaper, error) {
	if cfg.Easing == nil {
		cfg.Easing = ease.Linear
	}
	tw := &TransitionWallpaper{
		from:  childSlot{wallpaper: from},
		to:    childSlot{wallpaper: to},
		cfg:   cfg,
		alloc: alloc,
	}
	if err := tw.allocateTargets(size, format); err != nil {
		return nil, err
	}
	return tw, nil
}

// allocateTargets (re)creates both offscreen render targets at size/format.
func (tw *TransitionWallpaper) allocateTargets(size device.Size, format device.PixelFormat) error {
	from, err := tw.alloc.AllocateOffscreen(size, format)
	if err != nil {
		return fmt.Errorf("wallglass: allocate transition from-target: %w", err)
	}
	to, err := tw.alloc.AllocateOffscreen(size, format)
	if err != nil {
		return fmt.Errorf("wallglass: allocate transition to-target: %w", err)
	}
	tw.fromTarget, tw.toTarget = from, to
	tw.targetSize, tw.targetFormat = size, format
	return nil
}

// HandleResize reallocates both offscreen targets to the new size,
// implementing the Resizer contract so the engine's ResizeMonitor
// handler can drive it from a ResizeRequested signal (§6, §9).
func (tw *TransitionWallpaper) HandleResize(size device.Size) error {
	return tw.allocateTargets(size, tw.targetFormat)
}

// Targets returns the two offscreen render targets the GPU
// collaborator's radial-blend pass samples from and to as textures.
func (tw *TransitionWallpaper) Targets() (from, to device.Output) {
	return tw.fromTarget, tw.toTarget
}

// Destroy releases both offscreen targets, for callers (e.g. the
// engine's UnplugMonitor) that tear down a monitor's pipeline. Targets
// that don't separately own a destructor (e.g. test stand-ins) are
// left to the garbage collector.
func (tw *TransitionWallpaper) Destroy() {
	for _, target := range [...]device.Output{tw.fromTarget, tw.toTarget} {
		if d, ok := target.(interface{ Destroy() }); ok {
			d.Destroy()
		}
	}
}

// Finished reports whether elapsed >= cfg.Duration.
func (tw *TransitionWallpaper) Finished() bool { return tw.finished }

// Resolve collapses a finished transition to its terminal child ("to"),
// recursing into any child that is itself a TransitionWallpaper so a
// transition nested inside another individually resolves as it
// finishes, per §4.5's resolve operation and §8 property 9.
func (tw *TransitionWallpaper) Resolve() Wallpaper {
	if tw.finished {
		return resolveWallpaper(tw.to.wallpaper)
	}
	tw.from.wallpaper = resolveWallpaper(tw.from.wallpaper)
	tw.to.wallpaper = resolveWallpaper(tw.to.wallpaper)
	return tw
}

func resolveWallpaper(w Wallpaper) Wallpaper {
	if nested, ok := w.(*TransitionWallpaper); ok {
		return nested.Resolve()
	}
	return w
}

// Frame renders one tick of the transition: each child into its own
// offscreen target according to its own negotiated cadence. Frame does
// not draw to out; the radial-blend pass onto the surface is drawn by
// the GPU collaborator from Targets and BlendParams.
func (tw *TransitionWallpaper) Frame(out device.Output, now time.Time) (FrameInfo, error) {
	if !tw.started {
		tw.started = true
		tw.start = now
		tw.lastFrameTime = now
	}
	elapsed := now.Sub(tw.start)
	tw.finished = elapsed >= tw.cfg.Duration
	sinceLast := now.Sub(tw.lastFrameTime)
	tw.lastFrameTime = now

	fromInfo, err := tw.renderChild(&tw.from, tw.fromTarget, now, sinceLast)
	if err != nil {
		return FrameInfo{}, err
	}
	toInfo, err := tw.renderChild(&tw.to, tw.toTarget, now, sinceLast)
	if err != nil {
		return FrameInfo{}, err
	}

	return BestWith60fps(fromInfo, toInfo), nil
}

// BlendParams returns the (centre, radius, direction) the render
// package's radial-blend pass pushes as fragment push constants for
// the given moment in the animation, per §4.5 steps 2-4.
func (tw *TransitionWallpaper) BlendParams(out device.Output, now time.Time) (centre [2]float32, radius float32, direction Direction) {
	if !tw.started {
		return tw.cfg.Centre, 0, tw.cfg.Direction
	}
	elapsed := now.Sub(tw.start)
	t := tw.normalizedT(elapsed)
	radius = radiusScale(out.Size(), tw.cfg.Centre) * t
	return tw.cfg.Centre, radius, tw.cfg.Direction
}

// normalizedT computes easing(elapsed/duration), flipped for
// DirectionIn, per §4.5 step 3.
func (tw *TransitionWallpaper) normalizedT(elapsed time.Duration) float32 {
	d := float32(tw.cfg.Duration.Seconds())
	if d <= 0 {
		d = 1
	}
	frac := float32(elapsed.Seconds()) / d
	if frac > 1 {
		frac = 1
	}
	t := tw.cfg.Easing(frac, 0, 1, 1)
	if tw.cfg.Direction == DirectionIn {
		t = 1 - t
	}
	return t
}

// renderChild renders slot's wallpaper into target (one of the two
// offscreen textures) if its remaining target frame time has elapsed
// (or this is its first render), otherwise decrements its remainder by
// sinceLast and leaves the offscreen target's contents as-is, per
// §4.5 step 1.
func (tw *TransitionWallpaper) renderChild(slot *childSlot, target device.Output, now time.Time, sinceLast time.Duration) (FrameInfo, error) {
	if slot.rendered && slot.remaining > sinceLast {
		slot.remaining -= sinceLast
		return FrameInfo{TargetFrameTime: slot.remaining, HasTargetFrameTime: true}, nil
	}
	info, err := slot.wallpaper.Frame(target, now)
	if err != nil {
		return FrameInfo{}, err
	}
	slot.rendered = true
	if info.HasTargetFrameTime {
		slot.remaining = info.TargetFrameTime
	} else {
		slot.remaining = 0
	}
	return info, nil
}

// radiusScale computes the aspect-corrected max distance from centre to
// any screen corner (§4.5 step 2), with centre in normalized device
// coordinates [-1,1] and corners at the four viewport extremes.
func radiusScale(size device.Size, centre [2]float32) float32 {
	aspect := float32(size.Width) / float32(size.Height)
	if aspect <= 0 || math.IsNaN(float64(aspect)) {
		aspect = 1
	}
	corners := [4][2]float32{{-aspect, -1}, {aspect, -1}, {-aspect, 1}, {aspect, 1}}
	var maxDist float32
	for _, c := range corners {
		dx, dy := c[0]-centre[0]*aspect, c[1]-centre[1]
		dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		if dist > maxDist {
			maxDist = dist
		}
	}
	return maxDist
}
