package core

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// SwapchainConfig is the resolved swapchain negotiation result,
// derived deterministically from a SwapchainSupport descriptor.
type SwapchainConfig struct {
	Format      vk.SurfaceFormat
	PresentMode vk.PresentMode
	Extent      vk.Extent2D
	ImageCount  uint32
}

// ChooseSurfaceFormat prefers 8bit BGRA with nonlinear sRGB. A single
// entry of FormatUndefined means the surface has no preference, in
// which case the preferred pair is synthesized. Otherwise the first
// listed format is the fallback.
func ChooseSurfaceFormat(available []vk.SurfaceFormat) vk.SurfaceFormat {
	preferred := vk.SurfaceFormat{
		Format:     vk.FormatB8g8r8a8Unorm,
		ColorSpace: vk.ColorSpaceSrgbNonlinear,
	}

	if len(available) == 1 && available[0].Format == vk.FormatUndefined {
		return preferred
	}
	for _, format := range available {
		if format.Format == preferred.Format && format.ColorSpace == preferred.ColorSpace {
			return format
		}
	}
	return available[0]
}

// ChoosePresentMode prefers the low-latency mailbox mode. FIFO is
// guaranteed by the spec, so the fallback never fails.
func ChoosePresentMode(available []vk.PresentMode) vk.PresentMode {
	for _, mode := range available {
		if mode == vk.PresentModeMailbox {
			return mode
		}
	}
	return vk.PresentModeFifo
}

// ChooseExtent uses the surface's fixed extent when the compositor
// dictates one, otherwise clamps the requested window size into the
// supported range componentwise.
func ChooseExtent(capabilities vk.SurfaceCapabilities, width, height uint32) vk.Extent2D {
	if capabilities.CurrentExtent.Width != vk.MaxUint32 {
		return capabilities.CurrentExtent
	}
	return vk.Extent2D{
		Width:  clamp(width, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clamp(height, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

// ChooseImageCount requests one image above the driver minimum so the
// application never waits on the driver to release one. A maximum of
// zero means the driver imposes no upper bound.
func ChooseImageCount(capabilities vk.SurfaceCapabilities) uint32 {
	count := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && count > capabilities.MaxImageCount {
		count = capabilities.MaxImageCount
	}
	return count
}

// NegotiateSwapchain resolves a concrete configuration from fresh
// surface support data and the requested window dimensions.
func NegotiateSwapchain(support SwapchainSupport, width, height uint32) SwapchainConfig {
	return SwapchainConfig{
		Format:      ChooseSurfaceFormat(support.Formats),
		PresentMode: ChoosePresentMode(support.PresentModes),
		Extent:      ChooseExtent(support.Capabilities, width, height),
		ImageCount:  ChooseImageCount(support.Capabilities),
	}
}

// CreateSwapchain instantiates the negotiated configuration. Image
// sharing is concurrent across both families only when graphics and
// presentation live on different ones.
func CreateSwapchain(device vk.Device, surface vk.Surface, config SwapchainConfig, selection QueueFamilySelection) (vk.Swapchain, error) {
	scci := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          surface,
		MinImageCount:    config.ImageCount,
		ImageFormat:      config.Format.Format,
		ImageColorSpace:  config.Format.ColorSpace,
		ImageExtent:      config.Extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		PreTransform:     vk.SurfaceTransformIdentityBit,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      config.PresentMode,
		Clipped:          vk.True,
		ImageSharingMode: vk.SharingModeExclusive,
	}
	if !selection.Shared() {
		families := selection.DistinctFamilies()
		scci.ImageSharingMode = vk.SharingModeConcurrent
		scci.QueueFamilyIndexCount = uint32(len(families))
		scci.PQueueFamilyIndices = families
	}

	var swapchain vk.Swapchain
	if err := vk.Error(vk.CreateSwapchain(device, &scci, nil, &swapchain)); err != nil {
		return vk.NullSwapchain, fmt.Errorf("%w: vk.CreateSwapchain(): %s", ErrSwapchainCreation, err)
	}
	return swapchain, nil
}

// SwapchainImages retrieves the images backing a swapchain. The driver
// may allocate more than requested, so the count is always re-queried.
func SwapchainImages(device vk.Device, swapchain vk.Swapchain) ([]vk.Image, error) {
	var count uint32
	if err := vk.Error(vk.GetSwapchainImages(device, swapchain, &count, nil)); err != nil {
		return nil, fmt.Errorf("%w: vk.GetSwapchainImages(): %s", ErrSwapchainCreation, err)
	}
	images := make([]vk.Image, count)
	if err := vk.Error(vk.GetSwapchainImages(device, swapchain, &count, images)); err != nil {
		return nil, fmt.Errorf("%w: vk.GetSwapchainImages(): %s", ErrSwapchainCreation, err)
	}
	return images, nil
}

func createImageView(device vk.Device, image vk.Image, format vk.Format) (vk.ImageView, error) {
	ivci := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image,
		ViewType: vk.ImageViewType2d,
		Format:   format,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	}

	var view vk.ImageView
	if err := vk.Error(vk.CreateImageView(device, &ivci, nil, &view)); err != nil {
		return vk.NullImageView, fmt.Errorf("%w: vk.CreateImageView(): %s", ErrImageViewCreation, err)
	}
	return view, nil
}

func clamp(value, min, max uint32) uint32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
