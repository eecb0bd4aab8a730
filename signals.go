// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package wallglass

// signals.go describes the inbound contract of the Wayland collaborator
// (§6): the three signals it raises into the core, and the MonitorId
// space they're keyed by. The collaborator itself - protocol, output
// enumeration, layer-shell setup - is out of scope; wallglass only
// depends on these three shapes and on device.Output (see the device
// package) for the per-frame surface/encoder handoff.

import "github.com/kestrelpane/wallglass/device"

// MonitorId identifies one connected output for the life of its
// connection. Not reused after MonitorUnplugged; a reconnect of the
// same physical display gets a new id.
type MonitorId uint32

// MonitorPlugged signals that a new output became available. The core
// reacts by creating that monitor's per-output pipelines: transition,
// one mesh pipeline per material, and video.
type MonitorPlugged struct {
	Id     MonitorId
	Size   device.Size
	Format device.PixelFormat
}

// MonitorUnplugged signals that an output is gone. The core drops
// every pipeline created for Id.
type MonitorUnplugged struct {
	Id MonitorId
}

// ResizeRequested signals that an output's size changed. The core
// reallocates any active transition's offscreen targets and any other
// size-dependent effect textures for Id.
type ResizeRequested struct {
	Id   MonitorId
	Size device.Size
}
