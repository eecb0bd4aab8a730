//go:build linux

// SPDX-FileCopyrightText : © 2022-2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import (
	"context"
	"fmt"
	"time"

	"github.com/kestrelpane/wallglass"
	"github.com/kestrelpane/wallglass/device"
	"github.com/kestrelpane/wallglass/render/vk"
	"github.com/kestrelpane/wallglass/video"
)

// video_wallpaper.go is the end-to-end wiring §8's video scenarios need:
// it drives video.Video's decode pull loop (§4.4.1), runs the result
// through ImportDmaBufFrame (§4.4.2) via the extraction protocol
// (assets.go, extract.go), and presents the imported texture with
// VideoPresentationPass (§4.4.3) - the three pieces that otherwise only
// meet in test stubs.

// renderVideos adapts *wallglass.RenderAssets[*video.Video, *RenderVideo]
// so Render:Update's FlushPhase call (engine.go) destroys each removed
// id's GPU resources before the entry disappears - RenderAssets.FlushPhase
// itself only drops bookkeeping, since not every render asset type owns a
// destructor.
type renderVideos struct {
	*wallglass.RenderAssets[*video.Video, *RenderVideo]
}

func (r renderVideos) FlushPhase() {
	for _, id := range r.RemovedAssetIds() {
		if rv, ok := r.Get(id); ok {
			rv.Destroy()
		}
	}
	r.RenderAssets.FlushPhase()
}

// VideoWallpaper presents one decoded video stream as a fullscreen
// wallpaper: Update advances the decode pull loop during Update(main),
// an ExtractSystem imports whatever frame is current into a RenderVideo
// during Extract, and Frame presents the latest imported texture.
type VideoWallpaper struct {
	video    *video.Video
	exporter video.DmaBufExporter

	commands       *vk.DeviceCommands
	physicalDevice vk.PhysicalDevice

	assets       *wallglass.Assets[*video.Video]
	handle       wallglass.AssetHandle[*video.Video]
	id           wallglass.AssetId
	renderAssets renderVideos

	pass *VideoPresentationPass
}

// NewVideoWallpaper registers v with eng - a main-world asset, a
// render-world RenderVideo store, an Update hook, and a named
// ExtractSystem - and returns the Wallpaper that presents it. name must
// be unique among eng's extract systems (one per monitor is typical).
func NewVideoWallpaper(
	name string,
	v *video.Video,
	exporter video.DmaBufExporter,
	commands *vk.DeviceCommands,
	physicalDevice vk.PhysicalDevice,
	eng *wallglass.Engine,
) *VideoWallpaper {
	w := &VideoWallpaper{
		video:          v,
		exporter:       exporter,
		commands:       commands,
		physicalDevice: physicalDevice,
		assets:         wallglass.NewAssets[*video.Video](),
		renderAssets:   renderVideos{wallglass.NewRenderAssets[*video.Video, *RenderVideo]()},
		pass:           &VideoPresentationPass{},
	}
	w.handle = w.assets.Add(v)
	w.id = w.handle.Id

	eng.TrackMain(w.assets)
	eng.TrackRender(w.renderAssets)
	eng.TrackUpdate(w)
	eng.AddExtractSystem(wallglass.ExtractSystem{Name: name, Run: w.runExtract})
	return w
}

// Update advances the decode pull loop and, if it produced a new
// displayable frame, marks the source asset changed so this frame's
// Extract run imports it - satisfying Engine's Updatable contract.
func (w *VideoWallpaper) Update(delta time.Duration) {
	if w.video.Update(delta) > 0 {
		if _, ok := w.assets.GetMut(w.id); ok {
			w.assets.Set(w.id, w.video)
		}
	}
}

// runExtract is this wallpaper's ExtractSystem.Run: it removes, imports
// (extracts/updates), and destroys superseded RenderVideos in the order
// §4.2 requires. RenderAssets.ExtractUpdatePhase overwrites a replaced
// id's entry without destroying the old value - not every render asset
// owns a destructor - so the old *RenderVideo a successful replace
// displaces is destroyed here, once its replacement is confirmed live.
func (w *VideoWallpaper) runExtract(ctx context.Context) error {
	newIds := w.assets.NewAssetIds()
	changedIds := w.assets.ChangedAssetIds()
	removedIds := w.assets.RemovedAssetIds()

	before := make(map[wallglass.AssetId]*RenderVideo, len(changedIds))
	for _, id := range changedIds {
		if old, ok := w.renderAssets.Get(id); ok {
			before[id] = old
		}
	}

	w.renderAssets.RemovePhase(removedIds)
	if err := w.renderAssets.ExtractUpdatePhase(newIds, changedIds, w.assets.Get, w.extract, nil, false); err != nil {
		return err
	}

	for id, old := range before {
		if updated, ok := w.renderAssets.Get(id); !ok || updated != old {
			old.Destroy()
		}
	}
	return nil
}

// extract runs §4.4.2 steps 1-8 end to end against v's current frame:
// VA-surface sync/export (video.DmaBufExporter) followed by the
// DMA-BUF→Vulkan import (ImportDmaBufFrame). Extract returning an error
// (rather than ok=false) for "no frame yet" keeps this path compatible
// with RenderVideo's ReplaceOnUpdate()==true contract, which treats a
// skip as a programmer error.
func (w *VideoWallpaper) extract(v *video.Video) (*RenderVideo, bool, error) {
	frame, ok := v.CurrentFrame()
	if !ok {
		return nil, false, fmt.Errorf("render: video wallpaper: no frame ready yet")
	}
	desc, err := w.exporter.SyncAndExport(frame.Surface, frame.VaDisplay)
	if err != nil {
		return nil, false, err
	}
	rv, err := ImportDmaBufFrame(w.commands, w.physicalDevice, desc)
	if err != nil {
		return nil, false, err
	}
	return rv, true, nil
}

// Frame presents the latest imported RenderVideo, if any has been
// extracted yet, and reports the decoded stream's own cadence.
func (w *VideoWallpaper) Frame(out device.Output, now time.Time) (wallglass.FrameInfo, error) {
	rv, ok := w.renderAssets.Get(w.id)
	if !ok {
		return wallglass.FrameInfo{}, nil
	}
	w.pass.Video = rv

	_, encoder, err := out.Acquire()
	if err != nil {
		return wallglass.FrameInfo{}, fmt.Errorf("render: video wallpaper: acquire surface: %w", err)
	}
	if err := encoder.Submit(); err != nil {
		return wallglass.FrameInfo{}, fmt.Errorf("render: video wallpaper: submit: %w", err)
	}

	var duration time.Duration
	if frame, present := w.video.CurrentFrame(); present {
		duration = frame.Duration
	}
	return w.pass.FrameInfo(duration), nil
}

// Destroy releases the current RenderVideo, if any, and this
// wallpaper's claim on its source asset.
func (w *VideoWallpaper) Destroy() {
	if rv, ok := w.renderAssets.Get(w.id); ok {
		rv.Destroy()
	}
	w.handle.Release()
}
