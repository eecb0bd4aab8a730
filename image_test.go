// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package wallglass

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/kestrelpane/wallglass/device"
)

type stubStillTexture struct {
	size      device.Size
	destroyed bool
}

func (t *stubStillTexture) Size() device.Size { return t.size }
func (t *stubStillTexture) Destroy()          { t.destroyed = true }

type stubUploader struct {
	uploads []device.Size
	last    *stubStillTexture
}

func (u *stubUploader) UploadStillImage(pixels []byte, size device.Size) (device.StillImageTexture, error) {
	u.uploads = append(u.uploads, size)
	u.last = &stubStillTexture{size: size}
	return u.last, nil
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestNewImageWallpaperDecodesAndRejectsGarbage(t *testing.T) {
	if _, err := NewImageWallpaper([]byte("not an image"), &stubUploader{}); err == nil {
		t.Fatalf("expected decode error for garbage input")
	}

	w, err := NewImageWallpaper(testPNG(t, 4, 4), &stubUploader{})
	if err != nil {
		t.Fatalf("NewImageWallpaper: %v", err)
	}
	if w.format != "png" {
		t.Fatalf("format = %q, want png", w.format)
	}
}

func TestImageWallpaperFrameUploadsOnceThenReusesTexture(t *testing.T) {
	up := &stubUploader{}
	w, err := NewImageWallpaper(testPNG(t, 4, 4), up)
	if err != nil {
		t.Fatalf("NewImageWallpaper: %v", err)
	}
	out := stubOutput{size: device.Size{Width: 1920, Height: 1080}}

	if _, err := w.Frame(out, time.Now()); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if _, err := w.Frame(out, time.Now()); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if len(up.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1 (same size should not re-upload)", len(up.uploads))
	}
}

func TestImageWallpaperFrameReuploadsOnResize(t *testing.T) {
	up := &stubUploader{}
	w, err := NewImageWallpaper(testPNG(t, 4, 4), up)
	if err != nil {
		t.Fatalf("NewImageWallpaper: %v", err)
	}
	first := stubOutput{size: device.Size{Width: 1920, Height: 1080}}
	second := stubOutput{size: device.Size{Width: 2560, Height: 1440}}

	if _, err := w.Frame(first, time.Now()); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	prev := up.last
	if _, err := w.Frame(second, time.Now()); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if len(up.uploads) != 2 {
		t.Fatalf("uploads = %d, want 2 (resize should re-upload)", len(up.uploads))
	}
	if !prev.destroyed {
		t.Fatalf("previous texture was not destroyed after resize")
	}
}

func TestImageWallpaperHandleResizeDropsTexture(t *testing.T) {
	up := &stubUploader{}
	w, err := NewImageWallpaper(testPNG(t, 4, 4), up)
	if err != nil {
		t.Fatalf("NewImageWallpaper: %v", err)
	}
	out := stubOutput{size: device.Size{Width: 100, Height: 100}}
	if _, err := w.Frame(out, time.Now()); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	texture := up.last
	if err := w.HandleResize(out.size); err != nil {
		t.Fatalf("HandleResize: %v", err)
	}
	if !texture.destroyed {
		t.Fatalf("HandleResize did not destroy the cached texture")
	}
	if _, err := w.Frame(out, time.Now()); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if len(up.uploads) != 2 {
		t.Fatalf("uploads = %d, want 2 (HandleResize should force a re-upload)", len(up.uploads))
	}
}
