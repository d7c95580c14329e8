package device

import vk "github.com/vulkan-go/vulkan"

// PhysicalDeviceInfo describes available physical properties of a rendering device
type PhysicalDeviceInfo struct {
	ID            int
	VendorID      int
	DriverVersion int
	Name          string
	Type          string
	Invalid       bool
	Extensions    []string
	Layers        []string
	Memory        uint
	MaxImage2D    uint32

	GraphicsFamily int32
	PresentFamily  int32
}

// Device describes a non-concrete probing device
type Device interface {
	PhysicalDevices() []PhysicalDeviceInfo
	Inner() interface{}
	Destroy()
}

// TypeName translates a Vulkan device type into a readable label.
func TypeName(deviceType vk.PhysicalDeviceType) string {
	switch deviceType {
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete"
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual"
	case vk.PhysicalDeviceTypeCpu:
		return "cpu"
	default:
		return "other"
	}
}
