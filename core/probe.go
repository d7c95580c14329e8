package core

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// InstanceExtensions enumerates extensions supported by the Vulkan
// loader on this host.
func InstanceExtensions() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil, fmt.Errorf("vk.EnumerateInstanceExtensionProperties(): %s", err)
	}
	properties := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, properties)); err != nil {
		return nil, fmt.Errorf("vk.EnumerateInstanceExtensionProperties(): %s", err)
	}

	names := make([]string, 0, count)
	for _, ext := range properties {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

// InstanceLayers enumerates layers supported by the Vulkan loader,
// used to confirm validation layers before requesting them.
func InstanceLayers() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil, fmt.Errorf("vk.EnumerateInstanceLayerProperties(): %s", err)
	}
	properties := make([]vk.LayerProperties, count)
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, properties)); err != nil {
		return nil, fmt.Errorf("vk.EnumerateInstanceLayerProperties(): %s", err)
	}

	names := make([]string, 0, count)
	for _, layer := range properties {
		layer.Deref()
		names = append(names, vk.ToString(layer.LayerName[:]))
	}
	return names, nil
}

// DeviceExtensions enumerates the extensions a physical device supports.
func DeviceExtensions(device vk.PhysicalDevice) ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(device, "", &count, nil)); err != nil {
		return nil, fmt.Errorf("vk.EnumerateDeviceExtensionProperties(): %s", err)
	}
	properties := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(device, "", &count, properties)); err != nil {
		return nil, fmt.Errorf("vk.EnumerateDeviceExtensionProperties(): %s", err)
	}

	names := make([]string, 0, count)
	for _, ext := range properties {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

// QueueFamilies returns the dereferenced queue family properties of a
// physical device, in driver order.
func QueueFamilies(device vk.PhysicalDevice) []vk.QueueFamilyProperties {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &count, nil)
	families := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(device, &count, families)
	for idx := range families {
		families[idx].Deref()
	}
	return families
}

// SwapchainSupport describes what a physical device can do with a
// given surface. It is read fresh from the driver every time it is
// needed, capabilities go stale across device selection.
type SwapchainSupport struct {
	Capabilities vk.SurfaceCapabilities
	Formats      []vk.SurfaceFormat
	PresentModes []vk.PresentMode
}

// Adequate reports whether the surface offers at least one format and
// one present mode. Empty lists are valid intermediate states during
// suitability checks, but nothing can be rendered through them.
func (s *SwapchainSupport) Adequate() bool {
	return len(s.Formats) > 0 && len(s.PresentModes) > 0
}

// QuerySwapchainSupport performs the three independent surface queries
// against the driver and dereferences the results.
func QuerySwapchainSupport(device vk.PhysicalDevice, surface vk.Surface) (SwapchainSupport, error) {
	var support SwapchainSupport

	if err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(device, surface, &support.Capabilities)); err != nil {
		return support, fmt.Errorf("vk.GetPhysicalDeviceSurfaceCapabilities(): %s", err)
	}
	support.Capabilities.Deref()
	support.Capabilities.CurrentExtent.Deref()
	support.Capabilities.MinImageExtent.Deref()
	support.Capabilities.MaxImageExtent.Deref()

	var formatCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(device, surface, &formatCount, nil)); err != nil {
		return support, fmt.Errorf("vk.GetPhysicalDeviceSurfaceFormats(): %s", err)
	}
	support.Formats = make([]vk.SurfaceFormat, formatCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(device, surface, &formatCount, support.Formats)); err != nil {
		return support, fmt.Errorf("vk.GetPhysicalDeviceSurfaceFormats(): %s", err)
	}
	for idx := range support.Formats {
		support.Formats[idx].Deref()
	}

	var modeCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(device, surface, &modeCount, nil)); err != nil {
		return support, fmt.Errorf("vk.GetPhysicalDeviceSurfacePresentModes(): %s", err)
	}
	support.PresentModes = make([]vk.PresentMode, modeCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(device, surface, &modeCount, support.PresentModes)); err != nil {
		return support, fmt.Errorf("vk.GetPhysicalDeviceSurfacePresentModes(): %s", err)
	}

	return support, nil
}
