//go:build linux

// SPDX-FileCopyrightText : © 2022-2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/kestrelpane/wallglass"
	"github.com/kestrelpane/wallglass/device"
)

// video_pass.go implements §4.4.3: the fullscreen-triangle YUV->RGB
// presentation pass. The render pass object, pipeline and shader
// modules are created by the GPU collaborator the command-encoder
// came from (§6); this package owns the two things that are this
// core's responsibility: deriving the push constant from the output
// surface, and computing the FrameInfo the driver schedules from.

// ScreenSizePushConstant is the fragment push constant §4.4.3 names:
// the surface dimensions the YUV->RGB shader needs to convert a
// fragment's window-space coordinate into a normalized sample UV.
type ScreenSizePushConstant struct {
	ScreenWidth  uint32
	ScreenHeight uint32
}

// VideoPresentationPass draws one RenderVideo's Y/UV planes as a
// single fullscreen triangle. Load existing contents, store the
// result, no depth attachment, per §4.4.3.
type VideoPresentationPass struct {
	Video *RenderVideo
}

// PushConstant derives the §4.4.3 push constant from the target
// surface, after confirming surface's pixel format is one this pass's
// pipeline can present.
func (p *VideoPresentationPass) PushConstant(surface device.SurfaceView) (ScreenSizePushConstant, error) {
	if _, err := p.OutputFormat(surface); err != nil {
		return ScreenSizePushConstant{}, err
	}
	size := surface.Size()
	return ScreenSizePushConstant{ScreenWidth: size.Width, ScreenHeight: size.Height}, nil
}

// OutputFormat maps surface's pixel format to the pack-shared
// gputypes.TextureFormat the GPU collaborator (re)creates this pass's
// pipeline against whenever the swapchain format changes.
func (p *VideoPresentationPass) OutputFormat(surface device.SurfaceView) (gputypes.TextureFormat, error) {
	f, err := ToGPUTextureFormat(surface.Format())
	if err != nil {
		return 0, fmt.Errorf("render: video presentation pass: %w", err)
	}
	return f, nil
}

// FrameInfo reports the stream-timebase-derived target frame time
// when currentFrameDuration is known, falling back to 60fps
// otherwise, matching §4.4.3's "FrameInfo returned" clause.
func (p *VideoPresentationPass) FrameInfo(currentFrameDuration time.Duration) wallglass.FrameInfo {
	d := currentFrameDuration
	if d <= 0 {
		d = wallglass.Fallback60Hz
	}
	return wallglass.FrameInfo{TargetFrameTime: d, HasTargetFrameTime: true}
}
