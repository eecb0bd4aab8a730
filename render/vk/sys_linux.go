//go:build linux

package vk

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// sys_linux.go is this package's Linux loader: the teacher's bindings
// only ever shipped a Windows loader (windows.LazyDLL-based), so this
// is a from-scratch loadLibrary/vkCommand pair built on
// ebitengine/purego's dlopen/dlsym wrapper instead of cgo.
var dlHandle uintptr

type vkCommand struct {
	protoName string
	argCount  int
	hasReturn bool
	fnHandle  uintptr
}

func loadLibrary(overrideLibName string) error {
	libName := "libvulkan.so.1"
	if overrideLibName != "" {
		libName = overrideLibName
	}
	handle, err := purego.Dlopen(libName, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return fmt.Errorf("vk: loading %s failed: %w", libName, err)
	}
	dlHandle = handle
	return nil
}

// resolveCommand looks up name in the loaded Vulkan library via dlsym,
// for commands resolved without going through vkGetInstanceProcAddr
// (vkGetInstanceProcAddr itself, and vkEnumerateInstanceVersion-style
// global commands).
func resolveCommand(name string) (vkCommand, error) {
	if dlHandle == 0 {
		return vkCommand{}, fmt.Errorf("vk: library not loaded, call loadLibrary first")
	}
	sym, err := purego.Dlsym(dlHandle, name)
	if err != nil {
		return vkCommand{}, fmt.Errorf("vk: symbol %s not found: %w", name, err)
	}
	return vkCommand{protoName: name, fnHandle: sym}, nil
}
