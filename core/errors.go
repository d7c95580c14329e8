package core

import "errors"

// Initialisation errors. Every step of the pipeline setup fails with
// exactly one of these, wrapped with the driver call that rejected it.
// None of them are recoverable, the caller is expected to tear down
// and exit.
var (
	ErrInstanceCreation           = errors.New("instance creation failed")
	ErrMissingRequiredExtension   = errors.New("required instance extension missing")
	ErrValidationLayerUnavailable = errors.New("validation layer unavailable")
	ErrNoCompatibleGPU            = errors.New("no GPU with Vulkan support found")
	ErrNoSuitableGPU              = errors.New("no suitable GPU found")
	ErrDeviceCreation             = errors.New("logical device creation failed")
	ErrSurfaceCreation            = errors.New("surface creation failed")
	ErrSwapchainCreation          = errors.New("swapchain creation failed")
	ErrImageViewCreation          = errors.New("image view creation failed")
	ErrShaderFileNotFound         = errors.New("shader file not found")
	ErrShaderModuleCreation       = errors.New("shader module creation failed")
	ErrRenderPassCreation         = errors.New("render pass creation failed")
	ErrPipelineLayoutCreation     = errors.New("pipeline layout creation failed")
	ErrGraphicsPipelineCreation   = errors.New("graphics pipeline creation failed")
	ErrFramebufferCreation        = errors.New("framebuffer creation failed")
	ErrCommandPoolCreation        = errors.New("command pool creation failed")
	ErrCommandBufferAllocation    = errors.New("command buffer allocation failed")
	ErrCommandBufferRecording     = errors.New("command buffer recording failed")
)
