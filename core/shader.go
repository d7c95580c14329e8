package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	vk "github.com/vulkan-go/vulkan"

	"github.com/devblok/hellovk/pak"
)

// spirvWordSize is the code unit the driver expects, shader binaries
// must be a whole multiple of it.
const spirvWordSize = 4

// LoadShaderBinary reads a compiled shader fully into memory.
func LoadShaderBinary(path string) ([]byte, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrShaderFileNotFound, err)
	}
	return contents, nil
}

// NewVulkanShader creates a Vulkan specific shader wrapper from a
// compiled binary. The name identifies the shader in diagnostics.
func NewVulkanShader(name string, shaderType ShaderType, contents []byte, device vk.Device) (Shader, error) {
	if len(contents) == 0 || len(contents)%spirvWordSize != 0 {
		return nil, fmt.Errorf("%w: %s: code size %d is not a multiple of %d",
			ErrShaderModuleCreation, name, len(contents), spirvWordSize)
	}

	smci := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(contents)),
		PCode:    SliceUint32(contents),
	}

	var module vk.ShaderModule
	if err := vk.Error(vk.CreateShaderModule(device, &smci, nil, &module)); err != nil {
		return nil, fmt.Errorf("%w: vk.CreateShaderModule(%s): %s", ErrShaderModuleCreation, name, err)
	}

	return &VulkanShader{
		module:     module,
		shaderType: shaderType,
		name:       name,
		device:     device,
	}, nil
}

// LoadShaderFile reads a compiled shader from disk and wraps it.
func LoadShaderFile(path string, shaderType ShaderType, device vk.Device) (Shader, error) {
	contents, err := LoadShaderBinary(path)
	if err != nil {
		return nil, err
	}
	return NewVulkanShader(shaderBaseName(path), shaderType, contents, device)
}

// LoadShaderBundle loads every shader packed into a pak archive.
// Entries are named the same way loose files are, name.vert.spv
// and name.frag.spv.
func LoadShaderBundle(path string, device vk.Device) ([]Shader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrShaderFileNotFound, err)
	}
	defer f.Close()

	archive, err := pak.Open(f)
	if err != nil {
		return nil, fmt.Errorf("shader bundle %s: %w", path, err)
	}

	var shaders []Shader
	for _, name := range archive.Names() {
		shaderType := shaderTypeOf(name)
		if shaderType == UnknownShaderType {
			continue
		}
		contents, err := archive.ReadAll(name)
		if err != nil {
			destroyShaders(shaders)
			return nil, fmt.Errorf("shader bundle %s: %w", path, err)
		}
		shader, err := NewVulkanShader(shaderBaseName(name), shaderType, contents, device)
		if err != nil {
			destroyShaders(shaders)
			return nil, err
		}
		shaders = append(shaders, shader)
	}
	return shaders, nil
}

// LoadShaderDirectory walks a directory and wraps every compiled
// shader found in it.
func LoadShaderDirectory(dir string, device vk.Device) ([]Shader, error) {
	files, types, err := findShaderFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrShaderFileNotFound, err)
	}

	var shaders []Shader
	for idx, path := range files {
		shader, err := LoadShaderFile(path, types[idx], device)
		if err != nil {
			destroyShaders(shaders)
			return nil, err
		}
		shaders = append(shaders, shader)
	}
	return shaders, nil
}

func destroyShaders(shaders []Shader) {
	for idx := len(shaders) - 1; idx >= 0; idx-- {
		shaders[idx].Destroy()
	}
}

func shaderBaseName(path string) string {
	return strings.Split(filepath.Base(path), ".")[0]
}

func shaderTypeOf(name string) ShaderType {
	trimmed := strings.TrimSuffix(name, shaderSuffix)
	switch {
	case strings.HasSuffix(trimmed, ".vert"):
		return VertexShaderType
	case strings.HasSuffix(trimmed, ".frag"):
		return FragmentShaderType
	default:
		return UnknownShaderType
	}
}

// VulkanShader is a Vulkan specific shader
type VulkanShader struct {
	name       string
	shaderType ShaderType
	device     vk.Device
	module     vk.ShaderModule
}

// Type implements interface
func (v *VulkanShader) Type() ShaderType {
	return v.shaderType
}

// Module implements interface
func (v *VulkanShader) Module() vk.ShaderModule {
	return v.module
}

// Name implements interface
func (v *VulkanShader) Name() string {
	return v.name
}

// Destroy implements interface
func (v *VulkanShader) Destroy() {
	vk.DestroyShaderModule(v.device, v.module, nil)
	v.module = vk.NullShaderModule
}
