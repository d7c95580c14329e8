package core

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// createCommandPool allocates a pool on the graphics family. All
// per-frame command buffers come out of it and are freed with it.
func createCommandPool(device vk.Device, graphicsFamily uint32) (vk.CommandPool, error) {
	cpci := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: graphicsFamily,
	}

	var pool vk.CommandPool
	if err := vk.Error(vk.CreateCommandPool(device, &cpci, nil, &pool)); err != nil {
		return vk.NullCommandPool, fmt.Errorf("%w: vk.CreateCommandPool(): %s", ErrCommandPoolCreation, err)
	}
	return pool, nil
}

// allocateCommandBuffers allocates one primary level buffer per
// swapchain image.
func allocateCommandBuffers(device vk.Device, pool vk.CommandPool, count int) ([]vk.CommandBuffer, error) {
	cbai := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: uint32(count),
	}

	buffers := make([]vk.CommandBuffer, count)
	if err := vk.Error(vk.AllocateCommandBuffers(device, &cbai, buffers)); err != nil {
		return nil, fmt.Errorf("%w: vk.AllocateCommandBuffers(): %s", ErrCommandBufferAllocation, err)
	}
	return buffers, nil
}

// recordCommandBuffers writes the fixed frame into each buffer: one
// render pass over the whole extent, cleared to opaque black, a single
// three vertex draw of the shader-procedural triangle. The buffers may
// be resubmitted while a prior submission still executes. A recording
// failure aborts the whole batch.
func recordCommandBuffers(buffers []vk.CommandBuffer, framebuffers []vk.Framebuffer,
	renderPass vk.RenderPass, pipeline vk.Pipeline, extent vk.Extent2D) error {

	var clearValues [1]vk.ClearValue
	clearValues[0].SetColor([]float32{0, 0, 0, 1})

	for idx, buffer := range buffers {
		cbbi := vk.CommandBufferBeginInfo{
			SType: vk.StructureTypeCommandBufferBeginInfo,
			Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageSimultaneousUseBit),
		}
		if err := vk.Error(vk.BeginCommandBuffer(buffer, &cbbi)); err != nil {
			return fmt.Errorf("%w: vk.BeginCommandBuffer()[%d]: %s", ErrCommandBufferRecording, idx, err)
		}

		rpbi := vk.RenderPassBeginInfo{
			SType:       vk.StructureTypeRenderPassBeginInfo,
			RenderPass:  renderPass,
			Framebuffer: framebuffers[idx],
			RenderArea: vk.Rect2D{
				Offset: vk.Offset2D{X: 0, Y: 0},
				Extent: extent,
			},
			ClearValueCount: uint32(len(clearValues)),
			PClearValues:    clearValues[:],
		}
		vk.CmdBeginRenderPass(buffer, &rpbi, vk.SubpassContentsInline)
		vk.CmdBindPipeline(buffer, vk.PipelineBindPointGraphics, pipeline)
		vk.CmdDraw(buffer, 3, 1, 0, 0)
		vk.CmdEndRenderPass(buffer)

		if err := vk.Error(vk.EndCommandBuffer(buffer)); err != nil {
			return fmt.Errorf("%w: vk.EndCommandBuffer()[%d]: %s", ErrCommandBufferRecording, idx, err)
		}
	}
	return nil
}
