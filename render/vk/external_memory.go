// SPDX-FileCopyrightText : © 2022-2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package vk

// external_memory.go extends the generated vk package with the
// external-memory / DRM-format-modifier struct surface the teacher's
// copy of this package never needed: importing a DMA-BUF file
// descriptor as a foreign Vulkan image (§4.4.2). Constant names follow
// external.go's SCREAMING_SNAKE_CASE convention
// (mirroring the vk.xml token the generator would have produced);
// struct and named types follow basetype.go's PascalCase Go types.

// StructureType identifies the concrete type of a Vulkan extensible
// struct via its sType field, the mechanism every pNext chain below
// relies on.
type StructureType uint32

const (
	STRUCTURE_TYPE_IMAGE_CREATE_INFO                                StructureType = 14
	STRUCTURE_TYPE_IMAGE_VIEW_CREATE_INFO                           StructureType = 15
	STRUCTURE_TYPE_MEMORY_ALLOCATE_INFO                             StructureType = 5
	STRUCTURE_TYPE_EXTERNAL_MEMORY_IMAGE_CREATE_INFO                StructureType = 1000072002
	STRUCTURE_TYPE_IMAGE_FORMAT_LIST_CREATE_INFO                    StructureType = 1000147000
	STRUCTURE_TYPE_IMAGE_DRM_FORMAT_MODIFIER_EXPLICIT_CREATE_INFO_EXT StructureType = 1000158004
	STRUCTURE_TYPE_IMPORT_MEMORY_FD_INFO_KHR                        StructureType = 1000074002
	STRUCTURE_TYPE_PHYSICAL_DEVICE_EXTERNAL_IMAGE_FORMAT_INFO       StructureType = 1000071000
	STRUCTURE_TYPE_EXTERNAL_IMAGE_FORMAT_PROPERTIES                 StructureType = 1000071001
	STRUCTURE_TYPE_PHYSICAL_DEVICE_IMAGE_DRM_FORMAT_MODIFIER_INFO_EXT StructureType = 1000158000
	STRUCTURE_TYPE_PHYSICAL_DEVICE_IMAGE_FORMAT_INFO_2              StructureType = 1000059004
	STRUCTURE_TYPE_IMAGE_FORMAT_PROPERTIES_2                        StructureType = 1000059005
)

// ExternalMemoryHandleTypeFlagBits selects the kind of external memory
// being imported or exported. DMA_BUF is the only one this package
// uses.
type ExternalMemoryHandleTypeFlagBits uint32

const (
	EXTERNAL_MEMORY_HANDLE_TYPE_OPAQUE_FD_BIT  ExternalMemoryHandleTypeFlagBits = 0x00000001
	EXTERNAL_MEMORY_HANDLE_TYPE_DMA_BUF_BIT_EXT ExternalMemoryHandleTypeFlagBits = 0x00000200
)

// ExternalMemoryFeatureFlagBits reports whether a handle type can be
// imported, exported, or only used within the process that created it.
type ExternalMemoryFeatureFlagBits uint32

const (
	EXTERNAL_MEMORY_FEATURE_DEDICATED_ONLY_BIT ExternalMemoryFeatureFlagBits = 0x00000001
	EXTERNAL_MEMORY_FEATURE_EXPORTABLE_BIT     ExternalMemoryFeatureFlagBits = 0x00000002
	EXTERNAL_MEMORY_FEATURE_IMPORTABLE_BIT     ExternalMemoryFeatureFlagBits = 0x00000004
)

// Format is the Vulkan image format enum. Only the formats §4.4.2
// names are declared; the rest of the Vulkan Format enum is out of
// scope for a DMA-BUF-only image path.
type Format uint32

const (
	FORMAT_R8_UNORM                    Format = 9
	FORMAT_R8G8_UNORM                  Format = 16
	FORMAT_G8_B8R8_2PLANE_420_UNORM    Format = 1000156006
)

// ImageTiling selects how an image's texels are laid out in memory.
// DRM_FORMAT_MODIFIER_EXT defers the layout to an explicit per-plane
// description instead of Vulkan's own optimal/linear choice.
type ImageTiling uint32

const (
	IMAGE_TILING_OPTIMAL                ImageTiling = 0
	IMAGE_TILING_LINEAR                 ImageTiling = 1
	IMAGE_TILING_DRM_FORMAT_MODIFIER_EXT ImageTiling = 1000158000
)

// ImageCreateFlagBits. MUTABLE_FORMAT is required whenever an image
// will be viewed through a format other than its own (the Y/UV plane
// views, §4.4.2 step 8).
type ImageCreateFlagBits uint32

const (
	IMAGE_CREATE_MUTABLE_FORMAT_BIT ImageCreateFlagBits = 0x00000008
	IMAGE_CREATE_EXTENDED_USAGE_BIT ImageCreateFlagBits = 0x00000100
)

// ImageUsageFlagBits.
type ImageUsageFlagBits uint32

const (
	IMAGE_USAGE_SAMPLED_BIT ImageUsageFlagBits = 0x00000004
)

// ImageAspectFlagBits. PLANE_0/PLANE_1 select a DRM-format-modifier
// image's individual planes for view creation and subresource layout
// queries.
type ImageAspectFlagBits uint32

const (
	IMAGE_ASPECT_PLANE_0_BIT ImageAspectFlagBits = 0x00000010
	IMAGE_ASPECT_PLANE_1_BIT ImageAspectFlagBits = 0x00000020
)

// MemoryPropertyFlagBits.
type MemoryPropertyFlagBits uint32

const (
	MEMORY_PROPERTY_DEVICE_LOCAL_BIT MemoryPropertyFlagBits = 0x00000001
)

// SubresourceLayout describes one plane's byte offset and row pitch
// within its image's bound memory, as reported by DRM-PRIME export and
// consumed verbatim by ImageDrmFormatModifierExplicitCreateInfoEXT.
type SubresourceLayout struct {
	Offset     DeviceSize
	Size       DeviceSize
	RowPitch   DeviceSize
	ArrayPitch DeviceSize
	DepthPitch DeviceSize
}

// ExternalMemoryImageCreateInfo marks an image as backed by external
// memory of the given handle types (§4.4.2 step 4a).
type ExternalMemoryImageCreateInfo struct {
	SType       StructureType
	PNext       uintptr
	HandleTypes ExternalMemoryHandleTypeFlagBits
}

// ImageFormatListCreateInfo names the formats an image may be viewed
// through when created with IMAGE_CREATE_MUTABLE_FORMAT_BIT (§4.4.2
// step 4b): the Y plane as R8_UNORM, the UV plane as R8G8_UNORM.
type ImageFormatListCreateInfo struct {
	SType           StructureType
	PNext           uintptr
	ViewFormatCount uint32
	PViewFormats    *Format
}

// ImageDrmFormatModifierExplicitCreateInfoEXT carries the DRM format
// modifier and the per-plane subresource layouts exported by
// DRM-PRIME, so the image's tiling exactly matches what the decoder
// produced (§4.4.2 step 4c).
type ImageDrmFormatModifierExplicitCreateInfoEXT struct {
	SType             StructureType
	PNext             uintptr
	DrmFormatModifier uint64
	PlaneLayoutCount  uint32
	PPlaneLayouts     *SubresourceLayout
}

// ImportMemoryFdInfoKHR imports a DMA-BUF file descriptor as device
// memory when chained onto a MemoryAllocateInfo (§4.4.2 step 6).
// Ownership of Fd transfers to Vulkan on a successful
// vkAllocateMemory; a failed call leaves the fd owned by the caller.
type ImportMemoryFdInfoKHR struct {
	SType      StructureType
	PNext      uintptr
	HandleType ExternalMemoryHandleTypeFlagBits
	Fd         int32
}

// PhysicalDeviceExternalImageFormatInfo queries whether a given handle
// type is supported for an image format when chained onto
// PhysicalDeviceImageFormatInfo2. ImportDmaBufFrame's step 3 query does
// not chain it.
type PhysicalDeviceExternalImageFormatInfo struct {
	SType      StructureType
	PNext      uintptr
	HandleType ExternalMemoryHandleTypeFlagBits
}

// ExternalImageFormatProperties is returned chained onto
// ImageFormatProperties2, reporting whether the queried handle type is
// importable/exportable for the queried format.
type ExternalImageFormatProperties struct {
	SType                          StructureType
	PNext                          uintptr
	ExternalMemoryFeatures         ExternalMemoryFeatureFlagBits
	ExportFromImportedHandleTypes  ExternalMemoryHandleTypeFlagBits
	CompatibleHandleTypes          ExternalMemoryHandleTypeFlagBits
}

// PhysicalDeviceImageDrmFormatModifierInfoEXT chains onto
// PhysicalDeviceImageFormatInfo2 to query support for a specific DRM
// format modifier rather than Vulkan's optimal/linear tiling.
type PhysicalDeviceImageDrmFormatModifierInfoEXT struct {
	SType                 StructureType
	PNext                 uintptr
	DrmFormatModifier     uint64
	SharingMode           uint32
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   *uint32
}

// PhysicalDeviceImageFormatInfo2 is the query struct for
// vkGetPhysicalDeviceImageFormatProperties2, used in step 3 to check
// the target format, tiling, usage and flags before creating the image.
// With no extension struct chained it does not check DMA-BUF import.
type PhysicalDeviceImageFormatInfo2 struct {
	SType  StructureType
	PNext  uintptr
	Format Format
	Type   uint32
	Tiling ImageTiling
	Usage  ImageUsageFlagBits
	Flags  ImageCreateFlagBits
}

// ImageFormatProperties2 is the result struct for
// vkGetPhysicalDeviceImageFormatProperties2.
type ImageFormatProperties2 struct {
	SType StructureType
	PNext uintptr
}

// Extent3D is the minimal 3D size struct ImageCreateInfo needs.
type Extent3D struct{ Width, Height, Depth uint32 }

// Image, ImageView and DeviceMemory are the opaque non-dispatchable
// handles the import path allocates and must destroy, matching the
// teacher's plain-uint64-handle convention.
type (
	Image        uint64
	ImageView    uint64
	DeviceMemory uint64
)

// Instance, PhysicalDevice and Device are the opaque dispatchable
// handles the import path queries and allocates against.
type (
	Instance       uintptr
	PhysicalDevice uintptr
	Device         uintptr
)

// ImageCreateInfo describes the foreign image created in §4.4.2 step
// 4. PNext is expected to chain ExternalMemoryImageCreateInfo ->
// ImageFormatListCreateInfo -> ImageDrmFormatModifierExplicitCreateInfoEXT.
type ImageCreateInfo struct {
	SType                 StructureType
	PNext                 uintptr
	Flags                 ImageCreateFlagBits
	ImageType             uint32
	Format                Format
	Extent                Extent3D
	MipLevels             uint32
	ArrayLayers           uint32
	Samples               uint32
	Tiling                ImageTiling
	Usage                 ImageUsageFlagBits
	SharingMode           uint32
	QueueFamilyIndexCount uint32
	PQueueFamilyIndices   *uint32
	InitialLayout         uint32
}

// ComponentMapping is the identity-by-default channel swizzle used for
// the Y and UV plane views.
type ComponentMapping struct{ R, G, B, A uint32 }

// ImageSubresourceRange restricts a view to one plane/mip/layer range.
type ImageSubresourceRange struct {
	AspectMask     ImageAspectFlagBits
	BaseMipLevel   uint32
	LevelCount     uint32
	BaseArrayLayer uint32
	LayerCount     uint32
}

// ImageViewCreateInfo describes one of the two aspect-restricted views
// created in §4.4.2 step 8.
type ImageViewCreateInfo struct {
	SType            StructureType
	PNext            uintptr
	Flags            uint32
	Image            Image
	ViewType         uint32
	Format           Format
	Components       ComponentMapping
	SubresourceRange ImageSubresourceRange
}

// MemoryRequirements is the result of vkGetImageMemoryRequirements,
// used to pick a compatible memory type index (§4.4.2 step 5).
type MemoryRequirements struct {
	Size           DeviceSize
	Alignment      DeviceSize
	MemoryTypeBits uint32
}

// MemoryAllocateInfo describes the import-backed allocation of
// §4.4.2 step 6. PNext chains ImportMemoryFdInfoKHR.
type MemoryAllocateInfo struct {
	SType           StructureType
	PNext           uintptr
	AllocationSize  DeviceSize
	MemoryTypeIndex uint32
}

// MemoryType and PhysicalDeviceMemoryProperties describe the device's
// memory heaps, walked by FindMemoryType (grounded on the deleted
// render/vulkan.go's findMemoryType) to pick a
// device-local memory type for the imported allocation.
type MemoryType struct {
	PropertyFlags MemoryPropertyFlagBits
	HeapIndex     uint32
}

type PhysicalDeviceMemoryProperties struct {
	MemoryTypeCount uint32
	MemoryTypes     [MAX_MEMORY_TYPES]MemoryType
	MemoryHeapCount uint32
}
