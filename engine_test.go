// SPDX-FileCopyrightText : © 2022-2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package wallglass

import (
	"context"
	"testing"
	"time"

	"github.com/kestrelpane/wallglass/device"
)

func TestEngineTickDrivesWallpapersAndFlushes(t *testing.T) {
	eng := NewEngine(NewConfig())
	assets := NewAssets[stubMesh]()
	eng.TrackMain(assets)

	h := assets.Add(stubMesh{verts: 1})
	h.Release()

	out := stubOutput{size: device.Size{Width: 100, Height: 100}}
	eng.PlugMonitor(MonitorPlugged{Id: 1, Size: out.size}, out)

	wp := &stubWallpaper{}
	infos, err := eng.Tick(context.Background(), time.Now(), 16*time.Millisecond,
		map[MonitorId]Wallpaper{1: wp}, nil, nil)
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if wp.frames != 1 {
		t.Fatalf("wallpaper.Frame called %d times, want 1", wp.frames)
	}
	if _, ok := infos[1]; !ok {
		t.Fatalf("missing FrameInfo for monitor 1")
	}

	if _, ok := assets.Get(h.Id); ok {
		t.Fatalf("released asset survived PostExtract")
	}
}

func TestEnginePlugMonitorBuildsAndUnplugDestroysPipeline(t *testing.T) {
	eng := NewEngine(NewConfig())
	built := 0
	destroyed := 0
	eng.SetPipelineFactory(func(sig MonitorPlugged) (Wallpaper, error) {
		built++
		return &destroyableWallpaper{onDestroy: func() { destroyed++ }}, nil
	})

	out := stubOutput{size: device.Size{Width: 1920, Height: 1080}}
	if err := eng.PlugMonitor(MonitorPlugged{Id: 1, Size: out.size}, out); err != nil {
		t.Fatalf("PlugMonitor: %v", err)
	}
	if built != 1 {
		t.Fatalf("pipeline built %d times, want 1", built)
	}
	if _, ok := eng.Wallpapers()[1]; !ok {
		t.Fatalf("Wallpapers() missing pipeline for monitor 1")
	}

	eng.UnplugMonitor(MonitorUnplugged{Id: 1})
	if destroyed != 1 {
		t.Fatalf("pipeline destroyed %d times, want 1", destroyed)
	}
	if _, ok := eng.Wallpapers()[1]; ok {
		t.Fatalf("Wallpapers() still has pipeline after unplug")
	}
}

func TestEngineResizeMonitorInvokesResizer(t *testing.T) {
	eng := NewEngine(NewConfig())
	resized := device.Size{}
	eng.SetPipelineFactory(func(sig MonitorPlugged) (Wallpaper, error) {
		return &resizableWallpaper{onResize: func(s device.Size) { resized = s }}, nil
	})
	out := stubOutput{size: device.Size{Width: 100, Height: 100}}
	if err := eng.PlugMonitor(MonitorPlugged{Id: 1, Size: out.size}, out); err != nil {
		t.Fatalf("PlugMonitor: %v", err)
	}

	if err := eng.ResizeMonitor(ResizeRequested{Id: 1, Size: device.Size{Width: 200, Height: 150}}); err != nil {
		t.Fatalf("ResizeMonitor: %v", err)
	}
	if resized != (device.Size{Width: 200, Height: 150}) {
		t.Fatalf("HandleResize received %+v, want 200x150", resized)
	}
}

type destroyableWallpaper struct {
	onDestroy func()
}

func (w *destroyableWallpaper) Frame(device.Output, time.Time) (FrameInfo, error) {
	return FrameInfo{}, nil
}
func (w *destroyableWallpaper) Destroy() { w.onDestroy() }

type resizableWallpaper struct {
	onResize func(device.Size)
}

func (w *resizableWallpaper) Frame(device.Output, time.Time) (FrameInfo, error) {
	return FrameInfo{}, nil
}
func (w *resizableWallpaper) HandleResize(size device.Size) error {
	w.onResize(size)
	return nil
}

func TestEngineTickSkipsUnregisteredMonitor(t *testing.T) {
	eng := NewEngine(NewConfig())
	wp := &stubWallpaper{}
	infos, err := eng.Tick(context.Background(), time.Now(), 16*time.Millisecond,
		map[MonitorId]Wallpaper{99: wp}, nil, nil)
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if len(infos) != 0 {
		t.Fatalf("expected no frame info for a monitor without an output")
	}
	if wp.frames != 0 {
		t.Fatalf("wallpaper should not be driven without a registered output")
	}
}
