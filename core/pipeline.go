package core

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// createRenderPass describes a single color attachment that is cleared
// on load, stored on end and handed over ready to present. One graphics
// subpass references it as its sole color output.
func createRenderPass(device vk.Device, colorFormat vk.Format) (vk.RenderPass, error) {
	attachments := []vk.AttachmentDescription{{
		Format:         colorFormat,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}}

	colorAttachmentRef := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: uint32(len(colorAttachmentRef)),
		PColorAttachments:    colorAttachmentRef,
	}

	rpci := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
	}

	var renderPass vk.RenderPass
	if err := vk.Error(vk.CreateRenderPass(device, &rpci, nil, &renderPass)); err != nil {
		return vk.NullRenderPass, fmt.Errorf("%w: vk.CreateRenderPass(): %s", ErrRenderPassCreation, err)
	}
	return renderPass, nil
}

// createPipelineLayout builds an empty layout. The triangle pipeline
// binds no descriptor sets and pushes no constants.
func createPipelineLayout(device vk.Device) (vk.PipelineLayout, error) {
	plci := vk.PipelineLayoutCreateInfo{
		SType: vk.StructureTypePipelineLayoutCreateInfo,
	}

	var layout vk.PipelineLayout
	if err := vk.Error(vk.CreatePipelineLayout(device, &plci, nil, &layout)); err != nil {
		return vk.NullPipelineLayout, fmt.Errorf("%w: vk.CreatePipelineLayout(): %s", ErrPipelineLayoutCreation, err)
	}
	return layout, nil
}

// createPipeline assembles the complete graphics pipeline. The vertex
// stage generates the triangle procedurally, so there are no vertex
// input bindings. Viewport and scissor are fixed to the swapchain
// extent, the pipeline is rebuilt from scratch rather than resized.
func createPipeline(device vk.Device, shaders []Shader, extent vk.Extent2D,
	layout vk.PipelineLayout, renderPass vk.RenderPass) (vk.Pipeline, error) {

	stages := make([]vk.PipelineShaderStageCreateInfo, len(shaders))
	for idx, shader := range shaders {
		var stage vk.ShaderStageFlagBits
		switch shader.Type() {
		case VertexShaderType:
			stage = vk.ShaderStageVertexBit
		case FragmentShaderType:
			stage = vk.ShaderStageFragmentBit
		default:
			return vk.NullPipeline, fmt.Errorf("%w: unsupported shader type for %s",
				ErrGraphicsPipelineCreation, shader.Name())
		}

		stages[idx] = vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  stage,
			Module: shader.Module(),
			PName:  safeString("main"),
		}
	}

	viewports := []vk.Viewport{{
		X:        0,
		Y:        0,
		Width:    float32(extent.Width),
		Height:   float32(extent.Height),
		MinDepth: 0,
		MaxDepth: 1,
	}}
	scissors := []vk.Rect2D{{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: extent,
	}}

	gpci := []vk.GraphicsPipelineCreateInfo{{
		SType:      vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount: uint32(len(stages)),
		PStages:    stages,
		PVertexInputState: &vk.PipelineVertexInputStateCreateInfo{
			SType: vk.StructureTypePipelineVertexInputStateCreateInfo,
		},
		PInputAssemblyState: &vk.PipelineInputAssemblyStateCreateInfo{
			SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
			Topology: vk.PrimitiveTopologyTriangleList,
		},
		PViewportState: &vk.PipelineViewportStateCreateInfo{
			SType:         vk.StructureTypePipelineViewportStateCreateInfo,
			ViewportCount: 1,
			PViewports:    viewports,
			ScissorCount:  1,
			PScissors:     scissors,
		},
		PRasterizationState: &vk.PipelineRasterizationStateCreateInfo{
			SType:       vk.StructureTypePipelineRasterizationStateCreateInfo,
			PolygonMode: vk.PolygonModeFill,
			CullMode:    vk.CullModeFlags(vk.CullModeBackBit),
			FrontFace:   vk.FrontFaceClockwise,
			LineWidth:   1.0,
		},
		PMultisampleState: &vk.PipelineMultisampleStateCreateInfo{
			SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
			RasterizationSamples: vk.SampleCount1Bit,
		},
		PColorBlendState: &vk.PipelineColorBlendStateCreateInfo{
			SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
			AttachmentCount: 1,
			PAttachments: []vk.PipelineColorBlendAttachmentState{{
				ColorWriteMask: vk.ColorComponentFlags(
					vk.ColorComponentRBit | vk.ColorComponentGBit |
						vk.ColorComponentBBit | vk.ColorComponentABit),
				BlendEnable:         vk.True,
				SrcColorBlendFactor: vk.BlendFactorSrcAlpha,
				DstColorBlendFactor: vk.BlendFactorOneMinusSrcAlpha,
				ColorBlendOp:        vk.BlendOpAdd,
				SrcAlphaBlendFactor: vk.BlendFactorOne,
				DstAlphaBlendFactor: vk.BlendFactorZero,
				AlphaBlendOp:        vk.BlendOpAdd,
			}},
		},
		Layout:     layout,
		RenderPass: renderPass,
	}}

	pipelines := make([]vk.Pipeline, len(gpci))
	if err := vk.Error(vk.CreateGraphicsPipelines(device, nil, uint32(len(gpci)), gpci, nil, pipelines)); err != nil {
		return vk.NullPipeline, fmt.Errorf("%w: vk.CreateGraphicsPipelines(): %s", ErrGraphicsPipelineCreation, err)
	}
	return pipelines[0], nil
}

// createFramebuffer binds one image view to the render pass's single
// attachment slot.
func createFramebuffer(device vk.Device, view vk.ImageView, renderPass vk.RenderPass, extent vk.Extent2D) (vk.Framebuffer, error) {
	attachments := []vk.ImageView{view}
	fci := vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      renderPass,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		Width:           extent.Width,
		Height:          extent.Height,
		Layers:          1,
	}

	var framebuffer vk.Framebuffer
	if err := vk.Error(vk.CreateFramebuffer(device, &fci, nil, &framebuffer)); err != nil {
		return vk.NullFramebuffer, fmt.Errorf("%w: vk.CreateFramebuffer(): %s", ErrFramebufferCreation, err)
	}
	return framebuffer, nil
}
