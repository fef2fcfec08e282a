// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/viamrobotics/evdev"
)

const (
	inputDeviceGlob = "/dev/input/event*"

	keyValueUp     = 0
	keyValueDown   = 1
	keyValueRepeat = 2
)

// inputReader feeds EV_KEY events from the touch panel event nodes into
// handle.
type inputReader struct {
	handle func(ev KeyEvent) bool

	mu      sync.Mutex
	devices []*evdev.InputDevice
	closing bool
	wg      sync.WaitGroup
}

func newInputReader(handle func(ev KeyEvent) bool) *inputReader {
	return &inputReader{handle: handle}
}

func supportsGestureKeys(dev *evdev.InputDevice) bool {
	for capType, codes := range dev.Capabilities {
		if capType.Type != evdev.EV_KEY {
			continue
		}
		for _, code := range codes {
			if _, ok := Classify(Scancode(code.Code)); ok {
				return true
			}
		}
	}
	return false
}

// start opens paths, or every event node when paths is empty, and keeps
// the ones that report gesture scancodes.
func (r *inputReader) start(paths []string) int {
	if len(paths) == 0 {
		paths, _ = filepath.Glob(inputDeviceGlob)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, path := range paths {
		dev, err := evdev.Open(path)
		if err != nil {
			logger.Debugf("failed to open %s: %v", path, err)
			continue
		}
		if !supportsGestureKeys(dev) {
			_ = dev.File.Close()
			continue
		}
		logger.Infof("read gestures from %s (%s)", dev.Fn, dev.Name)
		r.devices = append(r.devices, dev)
		r.wg.Add(1)
		go r.readLoop(dev)
	}
	return len(r.devices)
}

func (r *inputReader) readLoop(dev *evdev.InputDevice) {
	defer r.wg.Done()
	for {
		events, err := dev.Read()
		if err != nil {
			r.mu.Lock()
			closing := r.closing
			r.mu.Unlock()
			if !closing {
				logger.Warningf("stop reading %s: %v", dev.Fn, err)
			}
			return
		}
		for _, ev := range events {
			keyEv, ok := toKeyEvent(ev)
			if !ok {
				continue
			}
			r.handle(keyEv)
		}
	}
}

func toKeyEvent(ev evdev.InputEvent) (KeyEvent, bool) {
	if ev.Type != evdev.EV_KEY || ev.Value == keyValueRepeat {
		return KeyEvent{}, false
	}
	action := KeyDown
	if ev.Value == keyValueUp {
		action = KeyUp
	}
	return KeyEvent{
		Scancode: Scancode(ev.Code),
		Action:   action,
		Time:     time.Unix(int64(ev.Time.Sec), int64(ev.Time.Usec)*int64(time.Microsecond)),
	}, true
}

func (r *inputReader) stop() {
	r.mu.Lock()
	r.closing = true
	for _, dev := range r.devices {
		_ = dev.File.Close()
	}
	r.devices = nil
	r.mu.Unlock()
	r.wg.Wait()
}
