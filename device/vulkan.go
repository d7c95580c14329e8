package device

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// DefaultVulkanApplicationInfo identifies the probing tool to the driver
var DefaultVulkanApplicationInfo = &vk.ApplicationInfo{
	SType:              vk.StructureTypeApplicationInfo,
	ApiVersion:         vk.MakeVersion(1, 0, 0),
	ApplicationVersion: vk.MakeVersion(1, 0, 0),
	PApplicationName:   "HelloVK probe\x00",
	PEngineName:        "HelloVK\x00",
}

// NewVulkanDevice creates a headless Vulkan instance for probing the
// physical devices on this host. No surface or logical device is set
// up, the result is only good for inventory queries.
func NewVulkanDevice(appInfo *vk.ApplicationInfo) (Device, error) {
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return nil, err
	}

	if err := vk.Init(); err != nil {
		return nil, err
	}

	v := &Vulkan{}

	var extensions []string
	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
	}

	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &v.instance)); err != nil {
		return nil, err
	}
	vk.InitInstance(v.instance)

	if err := v.enumerateDevices(); err != nil {
		v.Destroy()
		return nil, err
	}

	return v, nil
}

// Vulkan is the Vulkan implementation of the probing Device
type Vulkan struct {
	availableDevices []vk.PhysicalDevice

	instance vk.Instance
}

func (v *Vulkan) enumerateDevices() error {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &deviceCount, nil)); err != nil {
		return fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	v.availableDevices = make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &deviceCount, v.availableDevices)); err != nil {
		return fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	return nil
}

// PhysicalDevices implements interface
func (v *Vulkan) PhysicalDevices() []PhysicalDeviceInfo {
	pdi := make([]PhysicalDeviceInfo, len(v.availableDevices))

	for i := 0; i < len(v.availableDevices); i++ {
		pdi[i].GraphicsFamily = -1
		pdi[i].PresentFamily = -1

		// Get extension info
		var numDeviceExtensions uint32
		if err := vk.Error(vk.EnumerateDeviceExtensionProperties(v.availableDevices[i], "", &numDeviceExtensions, nil)); err != nil {
			pdi[i].Invalid = true
		}
		deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
		if err := vk.Error(vk.EnumerateDeviceExtensionProperties(v.availableDevices[i], "", &numDeviceExtensions, deviceExt)); err != nil {
			pdi[i].Invalid = true
		}
		for _, ext := range deviceExt {
			ext.Deref()
			pdi[i].Extensions = append(pdi[i].Extensions, vk.ToString(ext.ExtensionName[:]))
		}

		// Get layers info
		var numDeviceLayers uint32
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(v.availableDevices[i], &numDeviceLayers, nil)); err != nil {
			pdi[i].Invalid = true
		}
		deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(v.availableDevices[i], &numDeviceLayers, deviceLayers)); err != nil {
			pdi[i].Invalid = true
		}
		for _, layer := range deviceLayers {
			layer.Deref()
			pdi[i].Layers = append(pdi[i].Layers, vk.ToString(layer.LayerName[:]))
		}

		// Get memory info
		var memoryProperties vk.PhysicalDeviceMemoryProperties
		vk.GetPhysicalDeviceMemoryProperties(v.availableDevices[i], &memoryProperties)
		memoryProperties.Deref()
		for iMem := (uint32)(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
			memoryProperties.MemoryHeaps[iMem].Deref()
			pdi[i].Memory = pdi[i].Memory + uint(memoryProperties.MemoryHeaps[iMem].Size)
		}

		// Get general device info
		var physicalDeviceProperties vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(v.availableDevices[i], &physicalDeviceProperties)
		physicalDeviceProperties.Deref()
		physicalDeviceProperties.Limits.Deref()
		pdi[i].ID = (int)(physicalDeviceProperties.DeviceID)
		pdi[i].VendorID = (int)(physicalDeviceProperties.VendorID)
		pdi[i].Name = vk.ToString(physicalDeviceProperties.DeviceName[:])
		pdi[i].Type = TypeName(physicalDeviceProperties.DeviceType)
		pdi[i].DriverVersion = (int)(physicalDeviceProperties.DriverVersion)
		pdi[i].MaxImage2D = physicalDeviceProperties.Limits.MaxImageDimension2D

		// Get queue family info, presentation capability needs a
		// surface so only the graphics family is resolved here
		var numFamilies uint32
		vk.GetPhysicalDeviceQueueFamilyProperties(v.availableDevices[i], &numFamilies, nil)
		families := make([]vk.QueueFamilyProperties, numFamilies)
		vk.GetPhysicalDeviceQueueFamilyProperties(v.availableDevices[i], &numFamilies, families)
		for idx := range families {
			families[idx].Deref()
			if families[idx].QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
				pdi[i].GraphicsFamily = int32(idx)
				break
			}
		}
	}
	return pdi
}

// Inner implements interface
func (v *Vulkan) Inner() interface{} {
	return v.instance
}

// Destroy implements interface
func (v *Vulkan) Destroy() {
	if v == nil {
		return
	}
	v.availableDevices = nil
	vk.DestroyInstance(v.instance, nil)
}
