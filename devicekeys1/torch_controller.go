// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"path/filepath"
	"strconv"
	"sync"

	"github.com/linuxdeepin/dde-devicekeys/common/sysfs"
	"golang.org/x/xerrors"
)

// torchController drives a LED class device and toggles it on every
// torch broadcast.
type torchController struct {
	store sysfs.Store

	mu  sync.Mutex
	led string
}

func newTorchController(store sysfs.Store, led string) *torchController {
	return &torchController{
		store: store,
		led:   led,
	}
}

func (t *torchController) setLED(led string) {
	t.mu.Lock()
	t.led = led
	t.mu.Unlock()
}

func (t *torchController) files() (brightness, maxBrightness string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return filepath.Join(t.led, "brightness"), filepath.Join(t.led, "max_brightness")
}

func (t *torchController) Available() bool {
	t.mu.Lock()
	led := t.led
	t.mu.Unlock()
	if led == "" {
		return false
	}
	brightness, _ := t.files()
	return t.store.IsFileWritable(brightness)
}

func (t *torchController) readInt(file string) (int, error) {
	line, err := t.store.ReadOneLine(file)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(line)
	if err != nil {
		return 0, xerrors.Errorf("parse %s: %w", file, err)
	}
	return v, nil
}

func (t *torchController) toggle() error {
	brightnessFile, maxFile := t.files()
	brightness, err := t.readInt(brightnessFile)
	if err != nil {
		return err
	}
	target := 0
	if brightness == 0 {
		target, err = t.readInt(maxFile)
		if err != nil || target <= 0 {
			target = 1
		}
	}
	logger.Debugf("torch brightness %d -> %d", brightness, target)
	return t.store.WriteLine(brightnessFile, strconv.Itoa(target))
}

// run toggles the torch for each action received until ch is closed.
func (t *torchController) run(ch <-chan string) {
	for action := range ch {
		if action != BroadcastActionToggleTorch {
			continue
		}
		err := t.toggle()
		if err != nil {
			logger.Warning("failed to toggle torch:", err)
		}
	}
}
