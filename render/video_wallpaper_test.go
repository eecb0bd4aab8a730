//go:build linux

// SPDX-FileCopyrightText : © 2022-2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kestrelpane/wallglass"
	"github.com/kestrelpane/wallglass/device"
	"github.com/kestrelpane/wallglass/video"
)

// fakeDemuxer/fakeDecoder mirror the video package's own internal test
// stubs (unexported there, so re-declared here): total packets, then
// end-of-stream, and one frame out per packet in.
type fakeDemuxer struct {
	total, pos int
}

func (d *fakeDemuxer) VideoStreamIndex() int { return 0 }
func (d *fakeDemuxer) ReadPacket() (video.Packet, error) {
	if d.pos >= d.total {
		return video.Packet{}, video.ErrEndOfStream
	}
	d.pos++
	return video.Packet{StreamIndex: 0}, nil
}
func (d *fakeDemuxer) SeekStart() error { d.pos = 0; return nil }

type fakeDecoder struct{ pending int }

func (d *fakeDecoder) Send(video.Packet) error { d.pending++; return nil }
func (d *fakeDecoder) Receive() (video.Frame, error) {
	if d.pending == 0 {
		return video.Frame{}, video.ErrDecoderNeedsMore
	}
	d.pending--
	return video.Frame{Duration: time.Second / 24}, nil
}

type fakeExporter struct {
	err error
}

func (e *fakeExporter) SyncAndExport(video.VASurfaceID, uintptr) (video.DmaBufDescriptor, error) {
	return video.DmaBufDescriptor{}, e.err
}

func newTestVideoWallpaper(t *testing.T, exporter video.DmaBufExporter) (*VideoWallpaper, *wallglass.Engine) {
	t.Helper()
	v, err := video.New(&fakeDemuxer{total: 5}, &fakeDecoder{}, video.PixelFormatYUV420P, [2]uint32{1920, 1080}, false)
	if err != nil {
		t.Fatalf("video.New: %v", err)
	}
	eng := wallglass.NewEngine(wallglass.NewConfig())
	w := NewVideoWallpaper(t.Name(), v, exporter, nil, 0, eng)
	return w, eng
}

func TestVideoWallpaperFrameWithNoImportYetIsANoop(t *testing.T) {
	w, _ := newTestVideoWallpaper(t, &fakeExporter{})
	info, err := w.Frame(stubOutput{size: device.Size{Width: 100, Height: 100}}, time.Now())
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if info.HasTargetFrameTime {
		t.Fatalf("expected no opinion before any frame has been imported, got %+v", info)
	}
}

func TestVideoWallpaperExtractSurfacesExporterFailure(t *testing.T) {
	w, _ := newTestVideoWallpaper(t, &fakeExporter{err: wallglass.ErrVaSyncFailed})
	w.Update(time.Second) // pull a decode frame so CurrentFrame() is present.

	if err := w.runExtract(context.Background()); err != nil {
		t.Fatalf("runExtract itself should log-and-skip, not return: %v", err)
	}
	if _, ok := w.renderAssets.Get(w.id); ok {
		t.Fatalf("no RenderVideo should exist after a failed export")
	}
}

func TestVideoWallpaperExtractRejectsNoFrameYet(t *testing.T) {
	w, _ := newTestVideoWallpaper(t, &fakeExporter{})
	_, ok, err := w.extract(w.video)
	if ok || err == nil {
		t.Fatalf("extract() with no decoded frame = (ok=%v, err=%v), want ok=false and a non-nil error", ok, err)
	}
}

func TestRenderVideosFlushPhaseDestroysRemoved(t *testing.T) {
	ra := renderVideos{wallglass.NewRenderAssets[*video.Video, *RenderVideo]()}
	id := wallglass.AssetId(1)
	lookup := func(wallglass.AssetId) (*video.Video, bool) { return nil, true }
	extract := func(*video.Video) (*RenderVideo, bool, error) { return &RenderVideo{}, true, nil }

	if err := ra.ExtractUpdatePhase([]wallglass.AssetId{id}, nil, lookup, extract, nil, false); err != nil {
		t.Fatalf("ExtractUpdatePhase: %v", err)
	}
	rv, ok := ra.Get(id)
	if !ok {
		t.Fatalf("expected RenderVideo inserted for id %d", id)
	}

	ra.RemovePhase([]wallglass.AssetId{id})
	ra.FlushPhase()

	if !rv.destroyed {
		t.Fatalf("FlushPhase did not destroy the removed RenderVideo")
	}
	if _, ok := ra.Get(id); ok {
		t.Fatalf("expected entry erased from the render asset map after flush")
	}
}

var _ = errors.Is // keep errors imported for future assertion additions without churn.
