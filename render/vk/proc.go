//go:build linux

package vk

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// proc.go resolves Vulkan instance/device-level function pointers
// through vkGetInstanceProcAddr/vkGetDeviceProcAddr, the mechanism
// every extension command (and several of the core ones this package
// exercises for DMA-BUF import, §4.4.2) must go through rather than a
// plain dlsym.
var (
	getInstanceProcAddr vkCommand
	getDeviceProcAddr   vkCommand
)

// Load opens the Vulkan loader and resolves vkGetInstanceProcAddr,
// the single symbol every other Vulkan entry point is reached
// through. It opens the library named with OverrideDefaultVulkanLibrary
// if one was set, otherwise the platform default.
func Load() error {
	if err := loadLibrary(overrideLibName); err != nil {
		return err
	}
	cmd, err := resolveCommand("vkGetInstanceProcAddr")
	if err != nil {
		return err
	}
	getInstanceProcAddr = cmd
	return nil
}

// GetInstanceProcAddr resolves a Vulkan command pointer scoped to
// instance (pass 0 for global commands such as
// vkCreateInstance/vkEnumerateInstanceExtensionProperties).
func GetInstanceProcAddr(instance Instance, name string) (uintptr, error) {
	if getInstanceProcAddr.fnHandle == 0 {
		return 0, fmt.Errorf("vk: Load() was not called")
	}
	cname := sys_stringToBytePointer(name)
	r1, _, _ := purego.SyscallN(getInstanceProcAddr.fnHandle, uintptr(instance), uintptr(unsafe.Pointer(cname)))
	if r1 == 0 {
		return 0, fmt.Errorf("vk: %s not available", name)
	}
	return r1, nil
}

// GetDeviceProcAddr resolves a Vulkan command pointer scoped to a
// specific device, preferred over GetInstanceProcAddr for
// device-level commands once a device exists (§4.4.2 steps 4-8 all
// run against one logical device).
func GetDeviceProcAddr(instance Instance, device Device, name string) (uintptr, error) {
	if getDeviceProcAddr.fnHandle == 0 {
		addr, err := GetInstanceProcAddr(instance, "vkGetDeviceProcAddr")
		if err != nil {
			return 0, err
		}
		getDeviceProcAddr = vkCommand{protoName: "vkGetDeviceProcAddr", fnHandle: addr}
	}
	cname := sys_stringToBytePointer(name)
	r1, _, _ := purego.SyscallN(getDeviceProcAddr.fnHandle, uintptr(device), uintptr(unsafe.Pointer(cname)))
	if r1 == 0 {
		return 0, fmt.Errorf("vk: %s not available on device", name)
	}
	return r1, nil
}
