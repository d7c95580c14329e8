package core

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

const familyUnset = -1

// QueueFamilySelection is a pair of queue family indices resolved for
// a device and surface. The two may coincide on most hardware.
type QueueFamilySelection struct {
	Graphics int32
	Present  int32
}

// Complete reports whether both a graphics and a presentation capable
// family were found.
func (s QueueFamilySelection) Complete() bool {
	return s.Graphics != familyUnset && s.Present != familyUnset
}

// Shared reports whether graphics and presentation resolve to the same
// family, which avoids cross-queue image ownership transfers.
func (s QueueFamilySelection) Shared() bool {
	return s.Complete() && s.Graphics == s.Present
}

// DistinctFamilies returns the set of family indices in the selection,
// one entry when the families coincide.
func (s QueueFamilySelection) DistinctFamilies() []uint32 {
	if s.Shared() {
		return []uint32{uint32(s.Graphics)}
	}
	return []uint32{uint32(s.Graphics), uint32(s.Present)}
}

// SelectQueueFamilies scans queue family properties in driver order,
// recording the first graphics capable index and the first index that
// can present to the surface. The scan short-circuits once both are
// found. The result may be incomplete, callers check Complete.
func SelectQueueFamilies(families []vk.QueueFamilyProperties, supportsPresent func(family uint32) bool) QueueFamilySelection {
	selection := QueueFamilySelection{Graphics: familyUnset, Present: familyUnset}
	for idx, family := range families {
		if selection.Graphics == familyUnset && family.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
			selection.Graphics = int32(idx)
		}
		if selection.Present == familyUnset && supportsPresent(uint32(idx)) {
			selection.Present = int32(idx)
		}
		if selection.Complete() {
			break
		}
	}
	return selection
}

// FindQueueFamilies resolves the queue family selection for a physical
// device against the target surface.
func FindQueueFamilies(device vk.PhysicalDevice, surface vk.Surface) QueueFamilySelection {
	return SelectQueueFamilies(QueueFamilies(device), func(family uint32) bool {
		var supported vk.Bool32
		vk.GetPhysicalDeviceSurfaceSupport(device, family, surface, &supported)
		return supported.B()
	})
}

// ScoreDevice rates a candidate from already-probed data. Zero means
// the device cannot run the pipeline at all. Otherwise the score
// prefers a shared graphics/present family, discrete GPUs and higher
// maximum 2D image dimensions, in that order of magnitude.
func ScoreDevice(properties vk.PhysicalDeviceProperties, features vk.PhysicalDeviceFeatures,
	selection QueueFamilySelection, hasExtensions bool, support SwapchainSupport) uint32 {

	if features.GeometryShader != vk.True {
		return 0
	}
	if !selection.Complete() {
		return 0
	}
	if !hasExtensions {
		return 0
	}
	if !support.Adequate() {
		return 0
	}

	score := uint32(1)
	if selection.Shared() {
		score += 100
	}
	if properties.DeviceType == vk.PhysicalDeviceTypeDiscreteGpu {
		score += 1000
	}
	score += properties.Limits.MaxImageDimension2D
	return score
}

// RateSuitability probes a physical device and rates it for the target
// surface. Swapchain support is only consulted once the swapchain
// extension itself is confirmed.
func RateSuitability(device vk.PhysicalDevice, surface vk.Surface, requiredExtensions []string) (uint32, error) {
	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(device, &properties)
	properties.Deref()
	properties.Limits.Deref()

	var features vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(device, &features)
	features.Deref()

	selection := FindQueueFamilies(device, surface)

	hasExtensions, err := hasDeviceExtensions(device, requiredExtensions)
	if err != nil {
		return 0, err
	}

	var support SwapchainSupport
	if hasExtensions {
		if support, err = QuerySwapchainSupport(device, surface); err != nil {
			return 0, err
		}
	}

	return ScoreDevice(properties, features, selection, hasExtensions, support), nil
}

// PickBest rates every candidate and returns the highest scoring one.
// Ties resolve to the first candidate encountered, so the choice is
// deterministic for a fixed driver enumeration order.
func PickBest(devices []vk.PhysicalDevice, surface vk.Surface, requiredExtensions []string) (vk.PhysicalDevice, error) {
	if len(devices) == 0 {
		return nil, ErrNoCompatibleGPU
	}

	scores := make([]uint32, len(devices))
	for idx, device := range devices {
		score, err := RateSuitability(device, surface, requiredExtensions)
		if err != nil {
			return nil, err
		}
		scores[idx] = score
	}

	best, bestScore := bestScoreIndex(scores)
	if bestScore == 0 {
		return nil, ErrNoSuitableGPU
	}
	return devices[best], nil
}

// bestScoreIndex reduces scores to the index of the maximum. Equal
// scores keep the earlier index, the choice stays deterministic for a
// fixed enumeration order instead of collapsing ties arbitrarily.
func bestScoreIndex(scores []uint32) (int, uint32) {
	best, bestScore := 0, uint32(0)
	for idx, score := range scores {
		if score > bestScore {
			best, bestScore = idx, score
		}
	}
	return best, bestScore
}

func hasDeviceExtensions(device vk.PhysicalDevice, required []string) (bool, error) {
	available, err := DeviceExtensions(device)
	if err != nil {
		return false, err
	}
	_, ok := containsAll(available, required)
	return ok, nil
}

// CreateLogicalDevice derives a logical device from the selection,
// requesting one queue per distinct family index. Validation layers
// ride along when debug mode was decided at instance creation.
func CreateLogicalDevice(physicalDevice vk.PhysicalDevice, selection QueueFamilySelection,
	extensions, layers []string) (vk.Device, vk.Queue, vk.Queue, error) {

	queuePriorities := []float32{1.0}
	var queueInfos []vk.DeviceQueueCreateInfo
	for _, family := range selection.DistinctFamilies() {
		queueInfos = append(queueInfos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: queuePriorities,
		})
	}

	var features vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(physicalDevice, &features)
	features.Deref()

	dci := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		PEnabledFeatures:        []vk.PhysicalDeviceFeatures{features},
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: safeStrings(extensions),
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     safeStrings(layers),
	}

	var device vk.Device
	if err := vk.Error(vk.CreateDevice(physicalDevice, &dci, nil, &device)); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: vk.CreateDevice(): %s", ErrDeviceCreation, err)
	}

	var graphicsQueue, presentQueue vk.Queue
	vk.GetDeviceQueue(device, uint32(selection.Graphics), 0, &graphicsQueue)
	vk.GetDeviceQueue(device, uint32(selection.Present), 0, &presentQueue)

	return device, graphicsQueue, presentQueue, nil
}
