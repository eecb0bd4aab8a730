//go:build linux

// SPDX-FileCopyrightText : © 2022-2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import (
	"fmt"

	"github.com/kestrelpane/wallglass/render/vk"
	"github.com/kestrelpane/wallglass/video"
)

// device.go is this package's Vulkan device/queue bootstrap, the
// minimal slice of the deleted render/vulkan.go's instance/device
// setup this repo still needs: enough to hand ImportDmaBufFrame and
// the presentation passes a PhysicalDevice and a DeviceCommands table.
// Instance and logical-device creation themselves (vkCreateInstance,
// vkCreateDevice, extension negotiation, surface creation) are owned
// by the GPU collaborator that also supplies device.Output (§6); this
// package accepts the resulting handles rather than creating them, so
// it never has to duplicate the collaborator's extension/validation
// layer policy.

// GpuDevice pairs the physical/logical device handles the import and
// presentation passes need with the resolved command table that talks
// to them.
type GpuDevice struct {
	Instance       vk.Instance
	PhysicalDevice vk.PhysicalDevice
	Device         vk.Device
	Commands       *vk.DeviceCommands
}

// NewGpuDevice resolves the command table against an already-created
// instance/physical-device/device triple. Vulkan loader initialization
// (vk.Load) must have already succeeded.
func NewGpuDevice(instance vk.Instance, physicalDevice vk.PhysicalDevice, device vk.Device) (*GpuDevice, error) {
	commands, err := vk.NewDeviceCommands(instance, device)
	if err != nil {
		return nil, fmt.Errorf("render: resolving device commands: %w", err)
	}
	return &GpuDevice{
		Instance:       instance,
		PhysicalDevice: physicalDevice,
		Device:         device,
		Commands:       commands,
	}, nil
}

// ImportVideoFrame is a thin convenience wrapper around
// ImportDmaBufFrame bound to this device, so callers driving the
// per-monitor video pipeline don't need to thread PhysicalDevice and
// Commands through separately at every call site.
func (g *GpuDevice) ImportVideoFrame(desc video.DmaBufDescriptor) (*RenderVideo, error) {
	return ImportDmaBufFrame(g.Commands, g.PhysicalDevice, desc)
}
