// SPDX-FileCopyrightText : © 2022-2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package render owns the GPU resource lifecycle: the Vulkan
// device/queue wrapper, the DMA-BUF video import path (§4.4.2), and
// the fullscreen-triangle render passes (§4.4.3, §4.5). It is grounded
// on the engine's own render/vulkan.go image/texture lifecycle
// functions (createImage, createImageView, findMemoryType,
// disposeImage, loadTexture - cited by name throughout this package),
// retargeted from "upload a decoded image" to "import an
// already-resident DMA-BUF as a multi-planar YUV texture".
package render

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/kestrelpane/wallglass/device"
)

// ToGPUTextureFormat maps the surface color format the Wayland
// collaborator reports (§6) to the pack-shared gputypes.TextureFormat,
// so this package's public surface matches the rest of the retrieval
// pack's GPU stack instead of inventing a fourth enum.
func ToGPUTextureFormat(f device.PixelFormat) (gputypes.TextureFormat, error) {
	switch f {
	case device.PixelFormatBGRA8Unorm:
		return gputypes.TextureFormatBGRA8Unorm, nil
	case device.PixelFormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm, nil
	case device.PixelFormatRGBA16Float:
		return gputypes.TextureFormatRGBA16Float, nil
	default:
		return 0, fmt.Errorf("render: unsupported surface format %v", f)
	}
}
