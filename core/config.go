package core

// Configuration defines a global engine configuration setting
type Configuration struct {
	Time     TimeConfiguration
	Instance InstanceConfiguration
	Renderer RendererConfiguration
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the interval between window event
	// pumps, in milliseconds
	EventPollDelay int
}

// InstanceConfiguration is used to configure the Vulkan instance.
// DebugMode is decided once at process start and never mutated,
// it pulls in the validation layer and the debug report extension.
type InstanceConfiguration struct {
	DebugMode  bool
	Extensions []string
	Layers     []string
}

// RendererConfiguration is used to configure the renderer
type RendererConfiguration struct {
	DeviceExtensions []string

	ScreenWidth  uint32
	ScreenHeight uint32

	// ShaderDirectory is walked for compiled .spv shaders
	ShaderDirectory string

	// ShaderBundle optionally points to a pak archive with the
	// compiled shaders. Takes precedence over ShaderDirectory
	ShaderBundle string
}
