// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devconf

import (
	"os"
	"time"

	"github.com/linuxdeepin/go-lib/utils"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

const configSuffix = "dde-devicekeys/devicekeys.yaml"

type Config struct {
	Touchscreen TouchscreenConfig `yaml:"touchscreen"`
	Input       InputConfig       `yaml:"input"`
	Proximity   ProximityConfig   `yaml:"proximity"`
	Camera      CameraConfig      `yaml:"camera"`
	Torch       TorchConfig       `yaml:"torch"`
	Power       PowerConfig       `yaml:"power"`
	Keyguard    KeyguardConfig    `yaml:"keyguard"`
	Vibrator    VibratorConfig    `yaml:"vibrator"`
}

// TouchscreenConfig holds the firmware gesture switches.
type TouchscreenConfig struct {
	CameraNode     string `yaml:"camera_node"`
	FlashlightNode string `yaml:"flashlight_node"`
	MusicNode      string `yaml:"music_node"`
}

type InputConfig struct {
	// Devices lists event nodes to read; empty means every node that
	// reports one of the gesture key codes.
	Devices []string `yaml:"devices"`
}

type ProximityConfig struct {
	MaxRange float64       `yaml:"max_range"`
	Timeout  time.Duration `yaml:"timeout"`
}

type CameraConfig struct {
	Command []string `yaml:"command"`
}

type TorchConfig struct {
	LED string `yaml:"led"`
}

type PowerConfig struct {
	Backlight string `yaml:"backlight"`
}

type KeyguardConfig struct {
	Secure bool `yaml:"secure"`
}

type VibratorConfig struct {
	Node     string        `yaml:"node"`
	Duration time.Duration `yaml:"duration"`
}

func Default() *Config {
	return &Config{
		Touchscreen: TouchscreenConfig{
			CameraNode:     "/proc/touchpanel/camera_enable",
			FlashlightNode: "/proc/touchpanel/flashlight_enable",
			MusicNode:      "/proc/touchpanel/music_enable",
		},
		Proximity: ProximityConfig{
			MaxRange: 5,
			Timeout:  time.Second,
		},
		Camera: CameraConfig{
			Command: []string{"deepin-camera"},
		},
		Torch: TorchConfig{
			LED: "/sys/class/leds/led:torch_0",
		},
		Keyguard: KeyguardConfig{
			Secure: true,
		},
		Vibrator: VibratorConfig{
			Node:     "/sys/class/timed_output/vibrator/enable",
			Duration: 50 * time.Millisecond,
		},
	}
}

// Load reads filename over the defaults. Fields missing from the file keep
// their default value.
func Load(filename string) (*Config, error) {
	conf := Default()
	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(contents, conf)
	if err != nil {
		return nil, xerrors.Errorf("parse %s: %w", filename, err)
	}
	if conf.Proximity.Timeout <= 0 {
		conf.Proximity.Timeout = Default().Proximity.Timeout
	}
	if conf.Proximity.MaxRange <= 0 {
		conf.Proximity.MaxRange = Default().Proximity.MaxRange
	}
	return conf, nil
}

func GetConfigPath() string {
	filename := "/etc/" + configSuffix
	if utils.IsFileExist(filename) {
		return filename
	}
	return "/usr/share/" + configSuffix
}

// LoadDefault loads the system configuration, falling back to the built-in
// defaults when no file is installed.
func LoadDefault() (*Config, string) {
	filename := GetConfigPath()
	conf, err := Load(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warning("failed to load config:", err)
		}
		return Default(), filename
	}
	return conf, filename
}
