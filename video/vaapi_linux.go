//go:build linux

// SPDX-FileCopyrightText : © 2022-2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package video

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// vaapi_linux.go implements the VA-API half of §4.4.2 steps 1-2 that
// video.go declares as the DmaBufExporter interface: block until the
// decoder has finished writing a surface, then export it as a
// DRM-PRIME descriptor with no pixel copy. Grounded on the same
// purego dlopen/dlsym/SyscallN idiom render/vk/sys_linux.go and
// proc.go use for Vulkan - libva has no cgo-free Go binding in the
// retrieval pack, so this package loads it exactly the way the
// collaborator boundary's sibling package loads libvulkan.

const (
	vaExportSurfaceReadOnly     = 0x0001
	vaExportSurfaceSeparateLayers = 0x0004
	vaSurfaceAttribMemTypeDrmPrime2 = 0x0008

	vaStatusSuccess = 0
)

// vaDrmPrimeObject mirrors libva's VADRMPRIMESurfaceDescriptor.objects[i]:
// one exported dma-buf plus its allocation size and format modifier.
type vaDrmPrimeObject struct {
	Fd                int32
	Size              uint32
	DrmFormatModifier uint64
}

// vaDrmPrimeLayer mirrors VADRMPRIMESurfaceDescriptor.layers[i]: the
// DRM fourcc this layer is described in and, per plane, which object
// it lives in plus its byte offset and row pitch.
type vaDrmPrimeLayer struct {
	DrmFormat   uint32
	NumPlanes   uint32
	ObjectIndex [4]uint32
	Offset      [4]uint32
	Pitch       [4]uint32
}

// vaDrmPrimeSurfaceDescriptor mirrors libva's
// VADRMPRIMESurfaceDescriptor (va_drmcommon.h) field-for-field, the
// shape vaExportSurfaceHandle writes into.
type vaDrmPrimeSurfaceDescriptor struct {
	Fourcc     uint32
	Width      uint32
	Height     uint32
	NumObjects uint32
	Objects    [4]vaDrmPrimeObject
	NumLayers  uint32
	Layers     [4]vaDrmPrimeLayer
}

// LibvaExporter is the concrete DmaBufExporter backed by a dynamically
// loaded libva. One instance is bound to the display handle its
// decoder collaborator opened; SyncAndExport's vaDisplay argument is
// carried through unchanged for cross-check, not re-resolved here.
type LibvaExporter struct {
	handle              uintptr
	vaSyncSurface       uintptr
	vaExportSurfaceHandle uintptr
}

// NewLibvaExporter dlopens libva (preferring the versioned soname) and
// resolves the two entry points §4.4.2 steps 1-2 need.
func NewLibvaExporter() (*LibvaExporter, error) {
	var handle uintptr
	var err error
	for _, name := range []string{"libva.so.2", "libva.so"} {
		handle, err = purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			break
		}
	}
	if handle == 0 {
		return nil, fmt.Errorf("video: loading libva failed: %w", err)
	}
	sync, err := purego.Dlsym(handle, "vaSyncSurface")
	if err != nil {
		return nil, fmt.Errorf("video: vaSyncSurface not found: %w", err)
	}
	export, err := purego.Dlsym(handle, "vaExportSurfaceHandle")
	if err != nil {
		return nil, fmt.Errorf("video: vaExportSurfaceHandle not found: %w", err)
	}
	return &LibvaExporter{handle: handle, vaSyncSurface: sync, vaExportSurfaceHandle: export}, nil
}

// SyncAndExport implements video.DmaBufExporter: vaSyncSurface blocks
// until the decoder has finished writing surface, then
// vaExportSurfaceHandle exports it READ_ONLY|SEPARATE_LAYERS as
// DRM-PRIME, matching §4.4.2 steps 1-2 exactly.
func (e *LibvaExporter) SyncAndExport(surface VASurfaceID, vaDisplay uintptr) (DmaBufDescriptor, error) {
	if r1, _, _ := purego.SyscallN(e.vaSyncSurface, vaDisplay, uintptr(surface)); r1 != vaStatusSuccess {
		return DmaBufDescriptor{}, fmt.Errorf("%w: vaSyncSurface status %d", ErrVaSyncFailed, int32(r1))
	}

	var desc vaDrmPrimeSurfaceDescriptor
	flags := uintptr(vaExportSurfaceReadOnly | vaExportSurfaceSeparateLayers)
	r1, _, _ := purego.SyscallN(e.vaExportSurfaceHandle, vaDisplay, uintptr(surface),
		uintptr(vaSurfaceAttribMemTypeDrmPrime2), flags, uintptr(unsafe.Pointer(&desc)))
	if r1 != vaStatusSuccess {
		return DmaBufDescriptor{}, fmt.Errorf("%w: vaExportSurfaceHandle status %d", ErrVaExportFailed, int32(r1))
	}
	return drmPrimeToDescriptor(desc)
}

// drmPrimeToDescriptor converts a filled-in libva DRM-PRIME descriptor
// into this package's DmaBufDescriptor, collecting the planes of every
// layer in layer order: with SEPARATE_LAYERS an NV12 surface comes back
// as one layer per plane (Y, then UV). The fd and modifier are taken
// from object 0.
func drmPrimeToDescriptor(desc vaDrmPrimeSurfaceDescriptor) (DmaBufDescriptor, error) {
	var planes []PlaneLayout
	for l := 0; l < int(desc.NumLayers) && l < len(desc.Layers); l++ {
		layer := desc.Layers[l]
		for i := 0; i < int(layer.NumPlanes) && i < len(layer.Offset); i++ {
			planes = append(planes, PlaneLayout{Offset: uint64(layer.Offset[i]), Pitch: uint64(layer.Pitch[i])})
		}
	}
	if len(planes) == 0 {
		return DmaBufDescriptor{}, fmt.Errorf("%w: export produced no planes", ErrVaExportFailed)
	}
	return DmaBufDescriptor{
		Fd:                desc.Objects[0].Fd,
		DrmFormatModifier: desc.Objects[0].DrmFormatModifier,
		Planes:            planes,
		Width:             desc.Width,
		Height:            desc.Height,
	}, nil
}
