// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package wallglass

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/text/unicode/norm"

	"github.com/kestrelpane/wallglass/device"
)

// ImageWallpaper presents a single decoded still image scaled to each
// monitor's output size, per the still-image branch of §4.4 (the
// video pipeline's stream-of-frames case has exactly one frame).
// Decode happens once at construction; the scaled upload is redone
// only when the output size changes, not every Frame call.
type ImageWallpaper struct {
	uploader device.StillImageUploader
	src      image.Image
	format   string

	texture     device.StillImageTexture
	textureSize device.Size
}

// NewImageWallpaper decodes encoded still-image bytes - JPEG, PNG, or
// any format registered via a blank image/... import - and returns a
// wallpaper that uploads a size-matched scaled copy through uploader
// on the first Frame call and again after every resize.
func NewImageWallpaper(encoded []byte, uploader device.StillImageUploader) (*ImageWallpaper, error) {
	src, format, err := image.Decode(bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecodeFailed, err)
	}
	// Container format names arrive from codec probing as plain ASCII
	// today, but normalize them before they reach structured logs so a
	// future codec identifier carrying combining marks compares equal
	// to its precomposed form instead of silently fragmenting log
	// aggregation by form.
	slog.Info("wallglass: decoded still image", "format", norm.NFC.String(format))
	return &ImageWallpaper{uploader: uploader, src: src, format: format}, nil
}

// Frame uploads (or re-uploads, after a resize) a copy of the source
// image scaled to out's current size, then reports a steady 60fps
// cadence - a still image has no natural frame rate of its own.
func (w *ImageWallpaper) Frame(out device.Output, now time.Time) (FrameInfo, error) {
	size := out.Size()
	if w.texture == nil || w.textureSize != size {
		texture, err := w.upload(size)
		if err != nil {
			return FrameInfo{}, err
		}
		if w.texture != nil {
			w.texture.Destroy()
		}
		w.texture, w.textureSize = texture, size
	}
	return FrameInfo{TargetFrameTime: Fallback60Hz, HasTargetFrameTime: true}, nil
}

func (w *ImageWallpaper) upload(size device.Size) (device.StillImageTexture, error) {
	dst := image.NewRGBA(image.Rect(0, 0, int(size.Width), int(size.Height)))
	draw.CatmullRom.Scale(dst, dst.Bounds(), w.src, w.src.Bounds(), draw.Over, nil)
	texture, err := w.uploader.UploadStillImage(dst.Pix, size)
	if err != nil {
		return nil, fmt.Errorf("%w: upload: %v", ErrImageDecodeFailed, err)
	}
	return texture, nil
}

// HandleResize drops the cached texture so the next Frame call
// re-scales and re-uploads at the new size, mirroring
// TransitionWallpaper's resize handling.
func (w *ImageWallpaper) HandleResize(device.Size) error {
	if w.texture != nil {
		w.texture.Destroy()
		w.texture = nil
	}
	return nil
}

// Destroy releases the uploaded texture, if any.
func (w *ImageWallpaper) Destroy() {
	if w.texture != nil {
		w.texture.Destroy()
		w.texture = nil
	}
}
