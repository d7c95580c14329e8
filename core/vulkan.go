package core

import (
	"fmt"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// ValidationLayerName is the layer requested when debug mode is on.
const ValidationLayerName = "VK_LAYER_KHRONOS_validation"

// DefaultVulkanApplicationInfo application info describes a Vulkan application
var DefaultVulkanApplicationInfo = &vk.ApplicationInfo{
	SType:              vk.StructureTypeApplicationInfo,
	ApiVersion:         vk.MakeVersion(1, 0, 0),
	ApplicationVersion: vk.MakeVersion(1, 0, 0),
	PApplicationName:   safeString("HelloVK"),
	PEngineName:        safeString("HelloVK"),
}

// NewVulkanInstance creates a Vulkan instance. The proc address comes
// from the windowing library, pass nil to use the system loader.
func NewVulkanInstance(appInfo *vk.ApplicationInfo, procAddr unsafe.Pointer, cfg InstanceConfiguration) (Instance, error) {
	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, fmt.Errorf("%w: vk.SetDefaultGetInstanceProcAddr(): %s", ErrInstanceCreation, err)
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}

	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("%w: vk.Init(): %s", ErrInstanceCreation, err)
	}

	if cfg.DebugMode {
		layers, err := InstanceLayers()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInstanceCreation, err)
		}
		if missing, ok := containsAll(layers, []string{ValidationLayerName}); !ok {
			return nil, fmt.Errorf("%w: %s", ErrValidationLayerUnavailable, missing)
		}
		cfg.Layers = append(cfg.Layers, ValidationLayerName)
		cfg.Extensions = append(cfg.Extensions, "VK_EXT_debug_report")
	}

	available, err := InstanceExtensions()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInstanceCreation, err)
	}
	if missing, ok := containsAll(available, cfg.Extensions); !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequiredExtension, missing)
	}

	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(cfg.Extensions)),
		PpEnabledExtensionNames: safeStrings(cfg.Extensions),
		EnabledLayerCount:       uint32(len(cfg.Layers)),
		PpEnabledLayerNames:     safeStrings(cfg.Layers),
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		return nil, fmt.Errorf("%w: vk.CreateInstance(): %s", ErrInstanceCreation, err)
	}
	vk.InitInstance(instance)

	v := &VulkanInstance{configuration: cfg}
	v.instance = NewOwner(func(obj vk.Instance) {
		vk.DestroyInstance(obj, nil)
	})
	v.surface = NewInstanceOwner(v.instance, func(parent vk.Instance, obj vk.Surface) {
		vk.DestroySurface(parent, obj, nil)
	})
	v.instance.Set(instance)

	if v.availableDevices, err = enumerateDevices(instance); err != nil {
		v.Destroy()
		return nil, err
	}

	return v, nil
}

// VulkanInstance describes a Vulkan API Instance
type VulkanInstance struct {
	configuration InstanceConfiguration

	availableDevices []vk.PhysicalDevice
	instance         *Owner[vk.Instance]
	surface          *Owner[vk.Surface]
}

func enumerateDevices(instance vk.Instance) ([]vk.PhysicalDevice, error) {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, nil)); err != nil {
		return nil, fmt.Errorf("%w: vk.EnumeratePhysicalDevices(): %s", ErrNoCompatibleGPU, err)
	}
	if deviceCount == 0 {
		return nil, ErrNoCompatibleGPU
	}
	availableDevices := make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, availableDevices)); err != nil {
		return nil, fmt.Errorf("%w: vk.EnumeratePhysicalDevices(): %s", ErrNoCompatibleGPU, err)
	}
	return availableDevices, nil
}

// SetSurface implements interface
func (v *VulkanInstance) SetSurface(pSurface unsafe.Pointer) {
	v.surface.Set(vk.SurfaceFromPointer(uintptr(pSurface)))
}

// Surface implements interface
func (v *VulkanInstance) Surface() vk.Surface {
	if v.surface.Empty() {
		return vk.NullSurface
	}
	return v.surface.Get()
}

// Inner implements interface
func (v *VulkanInstance) Inner() interface{} {
	return v.instance.Get()
}

// Extensions implements interface
func (v *VulkanInstance) Extensions() []string {
	return v.configuration.Extensions
}

// Layers implements interface
func (v *VulkanInstance) Layers() []string {
	return v.configuration.Layers
}

// PhysicalDevices implements interface
func (v *VulkanInstance) PhysicalDevices() []vk.PhysicalDevice {
	return v.availableDevices
}

// Destroy implements interface
func (v *VulkanInstance) Destroy() {
	v.availableDevices = nil
	v.surface.Destroy()
	v.instance.Destroy()
}

// NewVulkanRenderer selects the most suitable physical device and
// prepares a not yet initialised Vulkan API renderer around it.
func NewVulkanRenderer(instance Instance, cfg RendererConfiguration) (Renderer, error) {
	physicalDevice, err := PickBest(instance.PhysicalDevices(), instance.Surface(), cfg.DeviceExtensions)
	if err != nil {
		return nil, err
	}

	v := &VulkanRenderer{
		configuration:  cfg,
		surface:        instance.Surface(),
		layers:         instance.Layers(),
		physicalDevice: physicalDevice,
	}

	// Destructors are bound up front, values arrive step by step
	// during Initialise. Destruction happens in exact reverse.
	v.device = NewOwner(func(obj vk.Device) {
		vk.DestroyDevice(obj, nil)
	})
	v.swapchain = NewDeviceOwner(v.device, func(parent vk.Device, obj vk.Swapchain) {
		vk.DestroySwapchain(parent, obj, nil)
	})
	v.renderPass = NewDeviceOwner(v.device, func(parent vk.Device, obj vk.RenderPass) {
		vk.DestroyRenderPass(parent, obj, nil)
	})
	v.pipelineLayout = NewDeviceOwner(v.device, func(parent vk.Device, obj vk.PipelineLayout) {
		vk.DestroyPipelineLayout(parent, obj, nil)
	})
	v.pipeline = NewDeviceOwner(v.device, func(parent vk.Device, obj vk.Pipeline) {
		vk.DestroyPipeline(parent, obj, nil)
	})
	v.commandPool = NewDeviceOwner(v.device, func(parent vk.Device, obj vk.CommandPool) {
		vk.DestroyCommandPool(parent, obj, nil)
	})
	return v, nil
}

// VulkanRenderer is a Vulkan API renderer
type VulkanRenderer struct {
	configuration RendererConfiguration

	surface        vk.Surface
	layers         []string
	physicalDevice vk.PhysicalDevice
	selection      QueueFamilySelection

	device        *Owner[vk.Device]
	graphicsQueue vk.Queue
	presentQueue  vk.Queue

	swapchainConfig SwapchainConfig
	swapchain       *Owner[vk.Swapchain]
	swapchainImages []vk.Image
	imageViews      []*Owner[vk.ImageView]

	renderPass     *Owner[vk.RenderPass]
	pipelineLayout *Owner[vk.PipelineLayout]
	pipeline       *Owner[vk.Pipeline]

	framebuffers []*Owner[vk.Framebuffer]

	commandPool    *Owner[vk.CommandPool]
	commandBuffers []vk.CommandBuffer
}

// Initialise implements interface. It walks the whole setup sequence
// in order, any failure aborts initialisation for good and leaves the
// already created resources to Destroy.
func (v *VulkanRenderer) Initialise() error {
	v.selection = FindQueueFamilies(v.physicalDevice, v.surface)
	if !v.selection.Complete() {
		return ErrNoSuitableGPU
	}

	device, graphicsQueue, presentQueue, err := CreateLogicalDevice(
		v.physicalDevice, v.selection, v.configuration.DeviceExtensions, v.layers)
	if err != nil {
		return err
	}
	v.device.Set(device)
	v.graphicsQueue = graphicsQueue
	v.presentQueue = presentQueue

	if err := v.createSwapchain(); err != nil {
		return err
	}
	if err := v.createImageViews(); err != nil {
		return err
	}

	renderPass, err := createRenderPass(device, v.swapchainConfig.Format.Format)
	if err != nil {
		return err
	}
	v.renderPass.Set(renderPass)

	if err := v.createPipeline(); err != nil {
		return err
	}
	if err := v.createFramebuffers(); err != nil {
		return err
	}

	commandPool, err := createCommandPool(device, uint32(v.selection.Graphics))
	if err != nil {
		return err
	}
	v.commandPool.Set(commandPool)

	return v.recordFrames()
}

func (v *VulkanRenderer) createSwapchain() error {
	// Support data is queried fresh, capabilities can change between
	// device selection and swapchain creation.
	support, err := QuerySwapchainSupport(v.physicalDevice, v.surface)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSwapchainCreation, err)
	}
	v.swapchainConfig = NegotiateSwapchain(support,
		v.configuration.ScreenWidth, v.configuration.ScreenHeight)

	swapchain, err := CreateSwapchain(v.device.Get(), v.surface, v.swapchainConfig, v.selection)
	if err != nil {
		return err
	}
	v.swapchain.Set(swapchain)

	if v.swapchainImages, err = SwapchainImages(v.device.Get(), swapchain); err != nil {
		return err
	}
	return nil
}

func (v *VulkanRenderer) createImageViews() error {
	for _, image := range v.swapchainImages {
		view, err := createImageView(v.device.Get(), image, v.swapchainConfig.Format.Format)
		if err != nil {
			return err
		}
		owner := NewDeviceOwner(v.device, func(parent vk.Device, obj vk.ImageView) {
			vk.DestroyImageView(parent, obj, nil)
		})
		owner.Set(view)
		v.imageViews = append(v.imageViews, owner)
	}
	return nil
}

func (v *VulkanRenderer) createPipeline() error {
	shaders, err := v.loadShaders()
	if err != nil {
		return err
	}
	// Shader modules only live for the duration of pipeline assembly.
	defer destroyShaders(shaders)

	layout, err := createPipelineLayout(v.device.Get())
	if err != nil {
		return err
	}
	v.pipelineLayout.Set(layout)

	pipeline, err := createPipeline(v.device.Get(), shaders,
		v.swapchainConfig.Extent, layout, v.renderPass.Get())
	if err != nil {
		return err
	}
	v.pipeline.Set(pipeline)
	return nil
}

func (v *VulkanRenderer) loadShaders() ([]Shader, error) {
	if v.configuration.ShaderBundle != "" {
		return LoadShaderBundle(v.configuration.ShaderBundle, v.device.Get())
	}
	return LoadShaderDirectory(v.configuration.ShaderDirectory, v.device.Get())
}

func (v *VulkanRenderer) createFramebuffers() error {
	for _, view := range v.imageViews {
		framebuffer, err := createFramebuffer(v.device.Get(), view.Get(),
			v.renderPass.Get(), v.swapchainConfig.Extent)
		if err != nil {
			return err
		}
		owner := NewDeviceOwner(v.device, func(parent vk.Device, obj vk.Framebuffer) {
			vk.DestroyFramebuffer(parent, obj, nil)
		})
		owner.Set(framebuffer)
		v.framebuffers = append(v.framebuffers, owner)
	}
	return nil
}

func (v *VulkanRenderer) recordFrames() error {
	buffers, err := allocateCommandBuffers(v.device.Get(), v.commandPool.Get(), len(v.framebuffers))
	if err != nil {
		return err
	}
	v.commandBuffers = buffers

	framebuffers := make([]vk.Framebuffer, len(v.framebuffers))
	for idx, owner := range v.framebuffers {
		framebuffers[idx] = owner.Get()
	}
	return recordCommandBuffers(buffers, framebuffers,
		v.renderPass.Get(), v.pipeline.Get(), v.swapchainConfig.Extent)
}

// SwapchainConfig returns the negotiated swapchain configuration.
func (v *VulkanRenderer) SwapchainConfig() SwapchainConfig {
	return v.swapchainConfig
}

// CommandBuffers returns the recorded per-image command buffers. They
// are owned by the command pool and freed with it.
func (v *VulkanRenderer) CommandBuffers() []vk.CommandBuffer {
	return v.commandBuffers
}

// Destroy implements interface. Owners fire in strict reverse order of
// creation, no matter how far Initialise got before failing.
func (v *VulkanRenderer) Destroy() {
	if !v.device.Empty() {
		vk.DeviceWaitIdle(v.device.Get())
	}

	v.commandBuffers = nil
	v.commandPool.Destroy()
	destroyAll(v.framebuffers)
	v.framebuffers = nil
	v.pipeline.Destroy()
	v.pipelineLayout.Destroy()
	v.renderPass.Destroy()
	destroyAll(v.imageViews)
	v.imageViews = nil
	v.swapchainImages = nil
	v.swapchain.Destroy()
	v.device.Destroy()
}
