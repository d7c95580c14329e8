package main

import (
	"flag"
	"runtime"
	"strconv"
	"unsafe"

	"github.com/gobuffalo/envy"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/hellovk/core"
)

func init() {
	runtime.LockOSThread()
}

// Essential globals
var (
	vkInstance core.Instance
	vkRenderer core.Renderer
	sdlWindow  *sdl.Window
	sdlSurface unsafe.Pointer
)

var debug = flag.Bool("vkdbg", false, "Load Vulkan validation layers")

func configure() core.Configuration {
	width, err := strconv.Atoi(envy.Get("HELLOVK_WIDTH", "800"))
	if err != nil {
		log.WithError(err).Fatal("HELLOVK_WIDTH is not a number")
	}
	height, err := strconv.Atoi(envy.Get("HELLOVK_HEIGHT", "600"))
	if err != nil {
		log.WithError(err).Fatal("HELLOVK_HEIGHT is not a number")
	}

	return core.Configuration{
		Time: core.TimeConfiguration{
			FramesPerSecond: 60,
			EventPollDelay:  10,
		},
		Instance: core.InstanceConfiguration{
			DebugMode: *debug,
		},
		Renderer: core.RendererConfiguration{
			ScreenWidth:  uint32(width),
			ScreenHeight: uint32(height),
			DeviceExtensions: []string{
				"VK_KHR_swapchain",
			},
			ShaderDirectory: envy.Get("HELLOVK_SHADER_DIR", "./shaders"),
			ShaderBundle:    envy.Get("HELLOVK_SHADER_PAK", ""),
		},
	}
}

func newWindow(cfg core.RendererConfiguration) *sdl.Window {
	window, err := sdl.CreateWindow("HelloVK",
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.ScreenWidth),
		int32(cfg.ScreenHeight),
		sdl.WINDOW_VULKAN)
	if err != nil {
		log.WithError(err).Fatal("sdl.CreateWindow()")
	}
	return window
}

func main() {
	flag.Parse()
	configuration := configure()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		log.WithError(err).Fatal("sdl.Init()")
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		log.WithError(err).Fatal("sdl.VulkanLoadLibrary()")
	}
	defer sdl.VulkanUnloadLibrary()

	sdlWindow = newWindow(configuration.Renderer)

	{
		cfg := configuration.Instance
		cfg.Extensions = append(cfg.Extensions, sdlWindow.VulkanGetInstanceExtensions()...)

		vi, err := core.NewVulkanInstance(core.DefaultVulkanApplicationInfo,
			sdl.VulkanGetVkGetInstanceProcAddr(), cfg)
		if err != nil {
			log.WithError(err).Fatal("core.NewVulkanInstance()")
		}
		vkInstance = vi
	}

	if srf, err := sdlWindow.VulkanCreateSurface(vkInstance.Inner()); err != nil {
		log.WithError(err).Fatal("sdl.VulkanCreateSurface()")
	} else {
		sdlSurface = srf
		vkInstance.SetSurface(sdlSurface)
	}

	var rendererErr error
	vkRenderer, rendererErr = core.NewVulkanRenderer(vkInstance, configuration.Renderer)
	if rendererErr != nil {
		vkInstance.Destroy()
		log.WithError(rendererErr).Fatal("core.NewVulkanRenderer()")
	}

	if err := vkRenderer.Initialise(); err != nil {
		vkRenderer.Destroy()
		vkInstance.Destroy()
		log.WithError(err).Fatal("renderer initialisation")
	}
	log.Info("render pipeline ready")

	time := core.NewTime(configuration.Time)
	exitC := make(chan struct{}, 2)

EventLoop:
	for {
		select {
		case <-exitC:
			log.Info("event loop exited")
			break EventLoop
		case <-time.EventTicker().C:
			var event sdl.Event
			for event = sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch et := event.(type) {
				case *sdl.KeyboardEvent:
					if et.Keysym.Sym == sdl.K_ESCAPE {
						exitC <- struct{}{}
						continue EventLoop
					}
				case *sdl.QuitEvent:
					exitC <- struct{}{}
					continue EventLoop
				}
			}
		}
	}

	time.Stop()
	vkRenderer.Destroy()
	vkInstance.Destroy()
	sdlWindow.Destroy()
}
