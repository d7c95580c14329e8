package core_test

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"

	"github.com/devblok/hellovk/core"
)

func graphicsFamily() vk.QueueFamilyProperties {
	return vk.QueueFamilyProperties{
		QueueFlags: vk.QueueFlags(vk.QueueGraphicsBit),
		QueueCount: 1,
	}
}

func computeFamily() vk.QueueFamilyProperties {
	return vk.QueueFamilyProperties{
		QueueFlags: vk.QueueFlags(vk.QueueComputeBit),
		QueueCount: 1,
	}
}

func TestSelectQueueFamiliesSharedFamily(t *testing.T) {
	families := []vk.QueueFamilyProperties{graphicsFamily()}

	selection := core.SelectQueueFamilies(families, func(uint32) bool { return true })

	if !selection.Complete() {
		t.Fatal("selection should be complete")
	}
	if selection.Graphics != 0 || selection.Present != 0 {
		t.Errorf("selection = {%d %d}, want {0 0}", selection.Graphics, selection.Present)
	}
	if !selection.Shared() {
		t.Error("coinciding families should report Shared")
	}
	if got := selection.DistinctFamilies(); len(got) != 1 || got[0] != 0 {
		t.Errorf("DistinctFamilies() = %v, want [0]", got)
	}
}

func TestSelectQueueFamiliesNoGraphics(t *testing.T) {
	families := []vk.QueueFamilyProperties{computeFamily(), computeFamily()}

	selection := core.SelectQueueFamilies(families, func(uint32) bool { return true })

	if selection.Complete() {
		t.Error("selection should be incomplete without a graphics family")
	}
	if selection.Graphics != -1 {
		t.Errorf("graphics index = %d, want unset", selection.Graphics)
	}
	if selection.Present != 0 {
		t.Errorf("present index = %d, want 0", selection.Present)
	}
}

func TestSelectQueueFamiliesSeparatePresent(t *testing.T) {
	families := []vk.QueueFamilyProperties{graphicsFamily(), graphicsFamily()}

	selection := core.SelectQueueFamilies(families, func(family uint32) bool {
		return family == 1
	})

	if !selection.Complete() {
		t.Fatal("selection should be complete")
	}
	if selection.Graphics != 0 || selection.Present != 1 {
		t.Errorf("selection = {%d %d}, want {0 1}", selection.Graphics, selection.Present)
	}
	if selection.Shared() {
		t.Error("distinct families should not report Shared")
	}
	if got := selection.DistinctFamilies(); len(got) != 2 {
		t.Errorf("DistinctFamilies() = %v, want two entries", got)
	}
}

func adequateSupport() core.SwapchainSupport {
	return core.SwapchainSupport{
		Formats:      []vk.SurfaceFormat{{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear}},
		PresentModes: []vk.PresentMode{vk.PresentModeFifo},
	}
}

func completeSelection() core.QueueFamilySelection {
	return core.QueueFamilySelection{Graphics: 0, Present: 0}
}

func TestScoreDeviceMissingGeometryShader(t *testing.T) {
	properties := vk.PhysicalDeviceProperties{
		DeviceType: vk.PhysicalDeviceTypeDiscreteGpu,
		Limits:     vk.PhysicalDeviceLimits{MaxImageDimension2D: 16384},
	}
	features := vk.PhysicalDeviceFeatures{GeometryShader: vk.False}

	if score := core.ScoreDevice(properties, features, completeSelection(), true, adequateSupport()); score != 0 {
		t.Errorf("score = %d, want 0 for a device without geometry shaders", score)
	}
}

func TestScoreDeviceGates(t *testing.T) {
	properties := vk.PhysicalDeviceProperties{DeviceType: vk.PhysicalDeviceTypeDiscreteGpu}
	features := vk.PhysicalDeviceFeatures{GeometryShader: vk.True}

	incomplete := core.QueueFamilySelection{Graphics: 0, Present: -1}
	if score := core.ScoreDevice(properties, features, incomplete, true, adequateSupport()); score != 0 {
		t.Errorf("score = %d, want 0 for incomplete queue families", score)
	}
	if score := core.ScoreDevice(properties, features, completeSelection(), false, adequateSupport()); score != 0 {
		t.Errorf("score = %d, want 0 without required extensions", score)
	}
	if score := core.ScoreDevice(properties, features, completeSelection(), true, core.SwapchainSupport{}); score != 0 {
		t.Errorf("score = %d, want 0 without surface formats and present modes", score)
	}
}

func TestScoreDeviceDiscreteGPU(t *testing.T) {
	properties := vk.PhysicalDeviceProperties{
		DeviceType: vk.PhysicalDeviceTypeDiscreteGpu,
		Limits:     vk.PhysicalDeviceLimits{MaxImageDimension2D: 4096},
	}
	features := vk.PhysicalDeviceFeatures{GeometryShader: vk.True}

	score := core.ScoreDevice(properties, features, completeSelection(), true, adequateSupport())
	if score < 1000 {
		t.Errorf("score = %d, want at least 1000 for a discrete GPU", score)
	}
	// 1 base + 100 shared family + 1000 discrete + max dimension
	if want := uint32(1 + 100 + 1000 + 4096); score != want {
		t.Errorf("score = %d, want %d", score, want)
	}
}

func TestScoreDeviceSharedFamilyBonus(t *testing.T) {
	properties := vk.PhysicalDeviceProperties{
		DeviceType: vk.PhysicalDeviceTypeIntegratedGpu,
		Limits:     vk.PhysicalDeviceLimits{MaxImageDimension2D: 2048},
	}
	features := vk.PhysicalDeviceFeatures{GeometryShader: vk.True}

	shared := core.ScoreDevice(properties, features, completeSelection(), true, adequateSupport())
	separate := core.ScoreDevice(properties, features,
		core.QueueFamilySelection{Graphics: 0, Present: 1}, true, adequateSupport())

	if shared-separate != 100 {
		t.Errorf("shared family bonus = %d, want 100", shared-separate)
	}
}
