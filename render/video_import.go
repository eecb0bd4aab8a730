//go:build linux

// SPDX-FileCopyrightText : © 2022-2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/kestrelpane/wallglass"
	"github.com/kestrelpane/wallglass/render/vk"
	"github.com/kestrelpane/wallglass/video"
)

// ErrGpuImportFailed is re-exported from the root package so callers
// importing only render can still errors.Is against the §7 error
// table without a second import.
var ErrGpuImportFailed = wallglass.ErrGpuImportFailed

// ptrOf returns v's address as the uintptr pNext chains expect.
func ptrOf[T any](v *T) uintptr { return uintptr(unsafe.Pointer(v)) }

// video_import.go implements §4.4.2 steps 3-8: given a DRM-PRIME
// descriptor already exported by the VA-API collaborator (steps 1-2,
// video.DmaBufExporter), build a foreign Vulkan image sharing that
// memory with no pixel copy, and wrap it as a RenderVideo. Grounded on
// the deleted render/vulkan.go's createImage/createImageView/
// findMemoryType/disposeImage/loadTexture, retargeted from "upload a
// decoded image" to "import an already-resident DMA-BUF".

// RenderVideo is the GPU-resident result of importing one decoded
// video frame: a foreign image plus its two plane views, owning the
// DMA-BUF fd and the device memory imported from it. Per §4.4.2
// invariant 3 there is one RenderVideo per video at a time; a newly
// decoded frame replaces the previous one (REPLACE_ON_UPDATE, see
// assets.go's RenderAsset interface).
type RenderVideo struct {
	commands *vk.DeviceCommands

	Image  vk.Image
	Luma   vk.ImageView // plane 0, sampled as R8_UNORM.
	Chroma vk.ImageView // plane 1, sampled as R8G8_UNORM.
	memory vk.DeviceMemory

	// fd is the DMA-BUF file descriptor Vulkan imported memory from.
	// Vulkan's import takes a reference of its own, but the fd itself is
	// still ours to close once the image holding it is torn down.
	fd int32

	Width, Height uint32

	destroyed bool
}

// ReplaceOnUpdate marks RenderVideo as a replace-on-update render
// asset: each successfully imported frame supersedes the previous
// RenderVideo outright rather than being merged into it.
func (r *RenderVideo) ReplaceOnUpdate() bool { return true }

// ImportDmaBufFrame runs §4.4.2 steps 3-8 against an already-exported
// DRM-PRIME descriptor. On any failure the returned error is one of
// ErrGpuImportFailed's causes and no resources are left allocated;
// per §7's policy this failure is fatal for the frame, not the video -
// callers keep presenting the previous RenderVideo.
func ImportDmaBufFrame(commands *vk.DeviceCommands, physicalDevice vk.PhysicalDevice, desc video.DmaBufDescriptor) (*RenderVideo, error) {
	if len(desc.Planes) != 2 {
		return nil, fmt.Errorf("%w: nv12 import needs exactly 2 planes, got %d", ErrGpuImportFailed, len(desc.Planes))
	}

	// Step 3: check the format, DRM-modifier tiling, usage and flags
	// before spending a create call on them. No handle-type or modifier
	// info is chained, so DMA-BUF importability itself is not queried.
	var formatProps vk.ImageFormatProperties2
	formatProps.SType = vk.STRUCTURE_TYPE_IMAGE_FORMAT_PROPERTIES_2
	queryInfo := vk.PhysicalDeviceImageFormatInfo2{
		SType:  vk.STRUCTURE_TYPE_PHYSICAL_DEVICE_IMAGE_FORMAT_INFO_2,
		Format: vk.FORMAT_G8_B8R8_2PLANE_420_UNORM,
		Tiling: vk.IMAGE_TILING_DRM_FORMAT_MODIFIER_EXT,
		Usage:  vk.IMAGE_USAGE_SAMPLED_BIT,
		Flags:  vk.IMAGE_CREATE_MUTABLE_FORMAT_BIT,
	}
	if err := commands.GetPhysicalDeviceImageFormatProperties2(physicalDevice, &queryInfo, &formatProps); err != nil {
		return nil, fmt.Errorf("%w: format unsupported for dma-buf import: %v", ErrGpuImportFailed, err)
	}

	// Step 4: build the pNext chain and create the foreign image.
	viewFormats := [2]vk.Format{vk.FORMAT_R8_UNORM, vk.FORMAT_R8G8_UNORM}
	planeLayouts := make([]vk.SubresourceLayout, len(desc.Planes))
	for i, p := range desc.Planes {
		planeLayouts[i] = vk.SubresourceLayout{Offset: vk.DeviceSize(p.Offset), RowPitch: vk.DeviceSize(p.Pitch)}
	}
	modifierInfo := vk.ImageDrmFormatModifierExplicitCreateInfoEXT{
		SType:             vk.STRUCTURE_TYPE_IMAGE_DRM_FORMAT_MODIFIER_EXPLICIT_CREATE_INFO_EXT,
		DrmFormatModifier: desc.DrmFormatModifier,
		PlaneLayoutCount:  uint32(len(planeLayouts)),
		PPlaneLayouts:     &planeLayouts[0],
	}
	formatListInfo := vk.ImageFormatListCreateInfo{
		SType:           vk.STRUCTURE_TYPE_IMAGE_FORMAT_LIST_CREATE_INFO,
		PNext:           ptrOf(&modifierInfo),
		ViewFormatCount: uint32(len(viewFormats)),
		PViewFormats:    &viewFormats[0],
	}
	externalInfo := vk.ExternalMemoryImageCreateInfo{
		SType:       vk.STRUCTURE_TYPE_EXTERNAL_MEMORY_IMAGE_CREATE_INFO,
		PNext:       ptrOf(&formatListInfo),
		HandleTypes: vk.EXTERNAL_MEMORY_HANDLE_TYPE_DMA_BUF_BIT_EXT,
	}
	createInfo := vk.ImageCreateInfo{
		SType:       vk.STRUCTURE_TYPE_IMAGE_CREATE_INFO,
		PNext:       ptrOf(&externalInfo),
		Flags:       vk.IMAGE_CREATE_MUTABLE_FORMAT_BIT,
		Format:      vk.FORMAT_G8_B8R8_2PLANE_420_UNORM,
		Extent:      vk.Extent3D{Width: desc.Width, Height: desc.Height, Depth: 1},
		MipLevels:   1,
		ArrayLayers: 1,
		Samples:     1,
		Tiling:      vk.IMAGE_TILING_DRM_FORMAT_MODIFIER_EXT,
		Usage:       vk.IMAGE_USAGE_SAMPLED_BIT,
	}

	image, err := commands.CreateImage(&createInfo)
	if err != nil {
		return nil, fmt.Errorf("%w: create foreign image: %v", ErrGpuImportFailed, err)
	}
	rv := &RenderVideo{commands: commands, Image: image, Width: desc.Width, Height: desc.Height, fd: desc.Fd}

	// Step 5: pick a device-local memory type matching the image's requirements.
	reqs := commands.GetImageMemoryRequirements(image)
	memProps := commands.GetPhysicalDeviceMemoryProperties(physicalDevice)
	typeIndex, err := vk.FindMemoryType(memProps, reqs.MemoryTypeBits, vk.MEMORY_PROPERTY_DEVICE_LOCAL_BIT)
	if err != nil {
		rv.Destroy()
		return nil, fmt.Errorf("%w: %v", ErrGpuImportFailed, err)
	}

	// Step 6: import the DMA-BUF fd and bind.
	importInfo := vk.ImportMemoryFdInfoKHR{
		SType:      vk.STRUCTURE_TYPE_IMPORT_MEMORY_FD_INFO_KHR,
		HandleType: vk.EXTERNAL_MEMORY_HANDLE_TYPE_DMA_BUF_BIT_EXT,
		Fd:         desc.Fd,
	}
	allocInfo := vk.MemoryAllocateInfo{
		SType:           vk.STRUCTURE_TYPE_MEMORY_ALLOCATE_INFO,
		PNext:           ptrOf(&importInfo),
		AllocationSize:  reqs.Size,
		MemoryTypeIndex: typeIndex,
	}
	memory, err := commands.AllocateMemory(&allocInfo)
	if err != nil {
		rv.Destroy()
		return nil, fmt.Errorf("%w: import dma-buf memory: %v", ErrGpuImportFailed, err)
	}
	rv.memory = memory

	if err := commands.BindImageMemory(image, memory, 0); err != nil {
		rv.Destroy()
		return nil, fmt.Errorf("%w: bind image memory: %v", ErrGpuImportFailed, err)
	}

	// Step 8: one aspect-restricted view per plane.
	luma, err := commands.CreateImageView(planeView(image, vk.FORMAT_R8_UNORM, vk.IMAGE_ASPECT_PLANE_0_BIT))
	if err != nil {
		rv.Destroy()
		return nil, fmt.Errorf("%w: create luma view: %v", ErrGpuImportFailed, err)
	}
	rv.Luma = luma

	chroma, err := commands.CreateImageView(planeView(image, vk.FORMAT_R8G8_UNORM, vk.IMAGE_ASPECT_PLANE_1_BIT))
	if err != nil {
		rv.Destroy()
		return nil, fmt.Errorf("%w: create chroma view: %v", ErrGpuImportFailed, err)
	}
	rv.Chroma = chroma

	return rv, nil
}

func planeView(image vk.Image, format vk.Format, aspect vk.ImageAspectFlagBits) *vk.ImageViewCreateInfo {
	return &vk.ImageViewCreateInfo{
		SType:  vk.STRUCTURE_TYPE_IMAGE_VIEW_CREATE_INFO,
		Image:  image,
		Format: format,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: aspect,
			LevelCount: 1,
			LayerCount: 1,
		},
	}
}

// Destroy releases the view(s), then the memory, then the image, then
// the DMA-BUF fd itself, in that order, exactly once - the destructor
// ordering §4.4.2 step 7 and invariant list require so the fd never
// outlives the image that references it. A zero-value RenderVideo (no
// frame ever imported) has no fd to close.
func (r *RenderVideo) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	r.commands.DestroyImageView(r.Luma)
	r.commands.DestroyImageView(r.Chroma)
	r.commands.FreeMemory(r.memory)
	r.commands.DestroyImage(r.Image)
	if r.fd > 0 {
		unix.Close(int(r.fd))
	}
}
