package vk

import "strconv"

// Result is VkResult: a signed status code returned by nearly every
// Vulkan command. Only the codes this binding's commands actually
// return are declared, not the full Vulkan enum.
type Result int32

const (
	SUCCESS        Result = 0
	NOT_READY      Result = 1
	TIMEOUT        Result = 2
	EVENT_SET      Result = 3
	EVENT_RESET    Result = 4
	INCOMPLETE     Result = 5
	ERROR_OUT_OF_HOST_MEMORY    Result = -1
	ERROR_OUT_OF_DEVICE_MEMORY  Result = -2
	ERROR_INITIALIZATION_FAILED Result = -3
	ERROR_DEVICE_LOST           Result = -4
	ERROR_MEMORY_MAP_FAILED     Result = -5
	ERROR_FORMAT_NOT_SUPPORTED  Result = -11
	ERROR_FRAGMENTED_POOL       Result = -12
	ERROR_UNKNOWN               Result = -13
	ERROR_OUT_OF_POOL_MEMORY    Result = -1000069000
	ERROR_INVALID_EXTERNAL_HANDLE Result = -1000072003
	ERROR_INVALID_DRM_FORMAT_MODIFIER_PLANE_LAYOUT_EXT Result = -1000158000
)

// IsError reports whether r indicates a failed Vulkan call, matching
// the generator's own convention of treating any negative VkResult as
// an error and non-negative codes (SUCCESS, INCOMPLETE, ...) as
// successful-but-informational.
func (r Result) IsError() bool { return r < 0 }

// String names the result codes this binding declares; anything else
// falls back to its numeric value. Hand-written rather than stringer-
// generated since this package only declares the VkResult codes the
// DMA-BUF import path actually returns, not the full enum.
func (r Result) String() string {
	switch r {
	case SUCCESS:
		return "SUCCESS"
	case NOT_READY:
		return "NOT_READY"
	case TIMEOUT:
		return "TIMEOUT"
	case EVENT_SET:
		return "EVENT_SET"
	case EVENT_RESET:
		return "EVENT_RESET"
	case INCOMPLETE:
		return "INCOMPLETE"
	case ERROR_OUT_OF_HOST_MEMORY:
		return "ERROR_OUT_OF_HOST_MEMORY"
	case ERROR_OUT_OF_DEVICE_MEMORY:
		return "ERROR_OUT_OF_DEVICE_MEMORY"
	case ERROR_INITIALIZATION_FAILED:
		return "ERROR_INITIALIZATION_FAILED"
	case ERROR_DEVICE_LOST:
		return "ERROR_DEVICE_LOST"
	case ERROR_MEMORY_MAP_FAILED:
		return "ERROR_MEMORY_MAP_FAILED"
	case ERROR_FORMAT_NOT_SUPPORTED:
		return "ERROR_FORMAT_NOT_SUPPORTED"
	case ERROR_FRAGMENTED_POOL:
		return "ERROR_FRAGMENTED_POOL"
	case ERROR_UNKNOWN:
		return "ERROR_UNKNOWN"
	case ERROR_OUT_OF_POOL_MEMORY:
		return "ERROR_OUT_OF_POOL_MEMORY"
	case ERROR_INVALID_EXTERNAL_HANDLE:
		return "ERROR_INVALID_EXTERNAL_HANDLE"
	case ERROR_INVALID_DRM_FORMAT_MODIFIER_PLANE_LAYOUT_EXT:
		return "ERROR_INVALID_DRM_FORMAT_MODIFIER_PLANE_LAYOUT_EXT"
	default:
		return "Result(" + strconv.FormatInt(int64(r), 10) + ")"
	}
}
