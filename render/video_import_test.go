//go:build linux

// SPDX-FileCopyrightText : © 2022-2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import (
	"errors"
	"testing"

	"github.com/kestrelpane/wallglass/video"
)

func TestImportDmaBufFrameRejectsWrongPlaneCount(t *testing.T) {
	_, err := ImportDmaBufFrame(nil, 0, video.DmaBufDescriptor{Planes: []video.PlaneLayout{{}}})
	if !errors.Is(err, ErrGpuImportFailed) {
		t.Fatalf("err = %v, want wrapped ErrGpuImportFailed", err)
	}
}

func TestRenderVideoReplaceOnUpdate(t *testing.T) {
	if !(&RenderVideo{}).ReplaceOnUpdate() {
		t.Fatalf("RenderVideo.ReplaceOnUpdate() = false, want true (§4.4.2 invariant 3)")
	}
}

// Destroy on a zero-value RenderVideo never reaches the real command
// table: every DeviceCommands destroy/free method guards its handle
// argument before touching the receiver, so commands stays nil here
// without panicking. This exercises the exactly-once guard itself,
// independent of a real GPU connection.
func TestRenderVideoDestroyIsIdempotentAndNilSafe(t *testing.T) {
	rv := &RenderVideo{}
	rv.Destroy()
	if !rv.destroyed {
		t.Fatalf("Destroy did not mark the video destroyed")
	}
	rv.Destroy() // must not panic or double-run teardown
}
