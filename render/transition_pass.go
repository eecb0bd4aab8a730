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

// transition_pass.go implements the render side of §4.5 step 4: a
// fullscreen triangle whose fragment shader samples the from/to
// textures and mixes them by the radial mask wallglass.TransitionWallpaper
// computes. As with video_pass.go, the pipeline/shader objects belong
// to the GPU collaborator; this package only builds the push constant.

// BlendPushConstant is the fragment push constant the radial blend
// shader reads: the mask centre in normalized device coordinates, the
// current radius, and which side of the mask shows `to` vs `from`.
type BlendPushConstant struct {
	Centre    [2]float32
	Radius    float32
	Direction uint32 // 0 = Out, 1 = In, matching wallglass.Direction's order.
}

// TransitionBlendPass draws one frame of a transition's radial blend.
type TransitionBlendPass struct {
	Transition *wallglass.TransitionWallpaper
}

// PushConstant derives this frame's BlendPushConstant from the
// transition's current animation state, after confirming out's surface
// format is one this pass's pipeline can present.
func (p *TransitionBlendPass) PushConstant(out device.Output, now time.Time) (BlendPushConstant, error) {
	if _, err := p.OutputFormat(out); err != nil {
		return BlendPushConstant{}, err
	}
	centre, radius, direction := p.Transition.BlendParams(out, now)
	return BlendPushConstant{Centre: centre, Radius: radius, Direction: uint32(direction)}, nil
}

// OutputFormat maps out's surface format to the pack-shared
// gputypes.TextureFormat the GPU collaborator (re)creates the blend
// pipeline against whenever the monitor's format changes.
func (p *TransitionBlendPass) OutputFormat(out device.Output) (gputypes.TextureFormat, error) {
	f, err := ToGPUTextureFormat(out.Format())
	if err != nil {
		return 0, fmt.Errorf("render: transition blend pass: %w", err)
	}
	return f, nil
}
