// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"github.com/benbjohnson/clock"
)

// actionDispatcher performs a confirmed action against the platform
// services. Looper only.
type actionDispatcher struct {
	clock     clock.Clock
	power     PowerService
	audio     AudioService
	broadcast BroadcastBus
	torch     TorchService
	deferral  *keyguardDeferral
}

func (d *actionDispatcher) dispatch(action ScancodeAction) {
	logger.Debug("dispatch", action)
	switch action.Kind {
	case ActionLaunchCamera:
		d.launchCamera()
	case ActionToggleTorch:
		d.toggleTorch()
	case ActionMediaPlayPause:
		d.dispatchMediaKey(KEY_PLAYPAUSE)
	case ActionMediaPrevious:
		d.dispatchMediaKey(KEY_PREVIOUSSONG)
	case ActionMediaNext:
		d.dispatchMediaKey(KEY_NEXTSONG)
	case ActionWakeDevice:
		d.wakeDevice()
	default:
		logger.Warning("unknown action", action)
	}
}

func (d *actionDispatcher) launchCamera() {
	intent := newActivityIntent(IntentActionStillImageCamera)
	d.power.WakeUp(d.clock.Now())
	d.deferral.launch(intent)
}

func (d *actionDispatcher) toggleTorch() {
	if d.torch == nil || !d.torch.Available() {
		logger.Debug("torch not available")
		return
	}
	d.broadcast.SendBroadcast(BroadcastActionToggleTorch)
}

func (d *actionDispatcher) dispatchMediaKey(code MediaKeyCode) {
	if d.audio == nil {
		logger.Debug("no audio service, drop media key", code)
		return
	}
	now := d.clock.Now()
	ev := MediaKeyEvent{
		Code:      code,
		Action:    KeyDown,
		DownTime:  now,
		EventTime: now,
	}
	err := d.audio.DispatchMediaKeyEventUnderWakelock(ev)
	if err != nil {
		logger.Warningf("failed to dispatch %v down: %v", code, err)
		return
	}
	ev.Action = KeyUp
	err = d.audio.DispatchMediaKeyEventUnderWakelock(ev)
	if err != nil {
		logger.Warningf("failed to dispatch %v up: %v", code, err)
	}
}

func (d *actionDispatcher) wakeDevice() {
	if d.power.IsScreenOn() {
		return
	}
	d.power.WakeUp(d.clock.Now())
}
