package main

import (
	"encoding/json"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/hellovk/device"
)

func main() {
	appDevice, err := device.NewVulkanDevice(device.DefaultVulkanApplicationInfo)
	if err != nil {
		log.WithError(err).Fatal("vulkan probe failed")
	}
	defer appDevice.Destroy()

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(appDevice.PhysicalDevices()); err != nil {
		log.WithError(err).Fatal("encoding device info failed")
	}
}
