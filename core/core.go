package core

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// Instance describes a Vulkan instance and supporting methods.
// Once created it is ready to use.
type Instance interface {
	// PhysicalDevices returns handles of Physical Devices
	// from the Vulkan API
	PhysicalDevices() []vk.PhysicalDevice

	// SetSurface binds the window surface for rendering.
	// The instance takes ownership and destroys it before itself
	SetSurface(unsafe.Pointer)

	// Surface returns the window surface, if it's not set
	// it returns a valid but null surface
	Surface() vk.Surface

	// Extensions returns the instance extensions that were enabled
	Extensions() []string

	// Layers returns the instance layers that were enabled
	Layers() []string

	// Inner returns the inner handle of the underlying API
	Inner() interface{}

	// Destroy destroys internal members
	Destroy()
}

// Renderer describes the rendering machinery.
// It's created only with internal values set,
// it needs to be initialised with Initialise() before use.
type Renderer interface {
	// Initialise sets up the configured rendering pipeline
	Initialise() error

	// Destroy destroys internal members
	Destroy()
}

// ShaderType represents the type of shader thats loaded
type ShaderType int

// Identifies shader objects with their types
const (
	VertexShaderType ShaderType = iota
	FragmentShaderType
	UnknownShaderType
)

// Shader describes a loaded shader module
type Shader interface {
	// Type returns the pipeline stage this shader belongs to
	Type() ShaderType

	// Name returns the shader name, derived from its file name
	Name() string

	// Module is an accessor to the internal vk.ShaderModule
	Module() vk.ShaderModule

	// Destroy destroys internal members
	Destroy()
}
