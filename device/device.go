// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package device describes the narrow interface the core render graph
// consumes from its Wayland/layer-shell collaborator (§6). The
// collaborator itself - protocol plumbing, output enumeration, surface
// setup - is an external concern this repository never implements;
// this package only names the shapes that cross the boundary, mirroring
// how the engine's own device package kept platform windowing behind a
// small Device interface rather than leaking it into the renderer.
package device

// Size is a pixel dimension pair.
type Size struct {
	Width, Height uint32
}

// PixelFormat is the surface color format a monitor's swapchain was
// created with, queried by the Wayland collaborator and propagated to
// pipeline creation per §6.
type PixelFormat uint32

const (
	PixelFormatUnknown PixelFormat = iota
	PixelFormatBGRA8Unorm
	PixelFormatRGBA8Unorm
	PixelFormatRGBA16Float
)

// CommandEncoder is the minimal recording surface a wallpaper's frame
// call needs from the graphics backend: submitting the work recorded
// for the frame. The concrete implementation is supplied by the GPU
// collaborator; this interface exists so device and the per-wallpaper
// frame contract do not need to import any GPU machinery.
type CommandEncoder interface {
	// Submit finalizes and submits the recorded work for this frame.
	Submit() error
}

// SurfaceView is the swapchain image a frame renders into.
type SurfaceView interface {
	Size() Size
	Format() PixelFormat
}

// Output is the per-monitor handle the Wayland collaborator hands to
// the core: a live surface plus the encoder/view pair supplied to each
// wallpaper's frame call.
type Output interface {
	Size() Size
	Format() PixelFormat
	// Acquire returns this frame's surface view and a fresh command
	// encoder to record into.
	Acquire() (SurfaceView, CommandEncoder, error)
}

// OffscreenAllocator is implemented by the GPU collaborator (§6): it
// creates an Output-shaped render target that is never presented to a
// real monitor, sized and formatted to match one, for compositors
// (the transition crossfade, §4.5) that need their children to render
// somewhere other than the final surface.
type OffscreenAllocator interface {
	AllocateOffscreen(size Size, format PixelFormat) (Output, error)
}

// StillImageTexture is a GPU-resident, sampled copy of a decoded still
// image, owned by the collaborator that uploaded it.
type StillImageTexture interface {
	Size() Size
	Destroy()
}

// StillImageUploader is implemented by the GPU collaborator (§6): it
// uploads pixels already scaled to a monitor's size as a sampled
// texture for a still-image wallpaper's fullscreen-triangle pass.
type StillImageUploader interface {
	UploadStillImage(pixels []byte, size Size) (StillImageTexture, error)
}
