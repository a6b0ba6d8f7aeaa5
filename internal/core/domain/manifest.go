package domain

import (
	"fmt"
	"strconv"
)

// ChipFamily identifies the target SoC in an install manifest.
type ChipFamily string

const (
	ChipESP32   ChipFamily = "ESP32"
	ChipESP32C3 ChipFamily = "ESP32-C3"
	ChipESP32S3 ChipFamily = "ESP32-S3"
)

const bootAppPath = "/static/boot_app0.bin"

// Part is a single image written at a flash offset.
type Part struct {
	Path   string
	Offset int
}

// Build lists the images flashed for one chip family.
type Build struct {
	ChipFamily ChipFamily
	Parts      []Part
}

// Manifest is the install description consumed by the web flasher.
type Manifest struct {
	Name                  string
	NewInstallPromptErase bool
	Builds                []Build
}

type chipLayout struct {
	bootloader Part
	partitions Part
	bootApp    Part
	appOffset  int
}

var chipLayouts = map[ChipFamily]chipLayout{
	ChipESP32: {
		bootloader: Part{Path: "/static/esp32/bootloader.bin", Offset: 4096},
		partitions: Part{Path: "/static/esp32/partitions.bin", Offset: 32768},
		bootApp:    Part{Path: bootAppPath, Offset: 57344},
		appOffset:  65536,
	},
	ChipESP32C3: {
		bootloader: Part{Path: "/static/esp32c3/bootloader.bin", Offset: 0x0000},
		partitions: Part{Path: "/static/esp32c3/partitions.bin", Offset: 0x8000},
		bootApp:    Part{Path: bootAppPath, Offset: 0xe000},
		appOffset:  0x10000,
	},
	// Not selected by the manifest builder yet.
	ChipESP32S3: {
		bootloader: Part{Path: "/static/esp32s3/bootloader.bin", Offset: 0x0000},
		partitions: Part{Path: "/static/esp32s3/partitions.bin", Offset: 0x8000},
		bootApp:    Part{Path: bootAppPath, Offset: 0xe000},
		appOffset:  0x10000,
	},
}

// NewBuild lays out the fixed bootloader, partition table and boot selector
// for chip, followed by the application image at appPath.
func NewBuild(chip ChipFamily, appPath string) (Build, error) {
	layout, ok := chipLayouts[chip]
	if !ok {
		return Build{}, fmt.Errorf("%w: %q", ErrUnknownChipFamily, chip)
	}
	return Build{
		ChipFamily: chip,
		Parts: []Part{
			layout.bootloader,
			layout.partitions,
			layout.bootApp,
			{Path: appPath, Offset: layout.appOffset},
		},
	}, nil
}

// AssetPath is the manifest-relative download path for an artifact.
func AssetPath(a *Artifact) string {
	return "download/" + strconv.FormatInt(a.ID, 10) + "/" + a.Name
}
