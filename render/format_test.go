// SPDX-FileCopyrightText : © 2022-2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/kestrelpane/wallglass/device"
)

func TestToGPUTextureFormatKnownFormats(t *testing.T) {
	cases := []struct {
		in   device.PixelFormat
		want gputypes.TextureFormat
	}{
		{device.PixelFormatBGRA8Unorm, gputypes.TextureFormatBGRA8Unorm},
		{device.PixelFormatRGBA8Unorm, gputypes.TextureFormatRGBA8Unorm},
		{device.PixelFormatRGBA16Float, gputypes.TextureFormatRGBA16Float},
	}
	for _, c := range cases {
		got, err := ToGPUTextureFormat(c.in)
		if err != nil {
			t.Fatalf("ToGPUTextureFormat(%v): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ToGPUTextureFormat(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestToGPUTextureFormatUnknownIsError(t *testing.T) {
	if _, err := ToGPUTextureFormat(device.PixelFormatUnknown); err == nil {
		t.Fatalf("expected error for unknown pixel format")
	}
}
