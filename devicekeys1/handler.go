// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

const defaultHapticDuration = 50 * time.Millisecond

type Options struct {
	Launcher  ActivityLauncher
	Keyguard  KeyguardService
	Power     PowerService
	Audio     AudioService
	Broadcast BroadcastBus
	Torch     TorchService
	Sensor    ProximitySensor

	Vibrator       Vibrator
	Preferences    Preferences
	HapticDuration time.Duration

	Clock            clock.Clock
	ProximityTimeout time.Duration

	// OnHandled is called on the looper after an action was dispatched.
	OnHandled func(action ScancodeAction)
}

// KeyHandler turns gesture scancodes into actions. HandleKeyEvent,
// OnUserPresent and OnScreenOff may be called from any goroutine.
type KeyHandler struct {
	loop       *looper
	gate       *proximityGate
	dispatcher *actionDispatcher
	deferral   *keyguardDeferral

	vibrator       Vibrator
	prefs          Preferences
	hapticDuration time.Duration
	onHandled      func(action ScancodeAction)

	stopOnce sync.Once
}

func NewKeyHandler(opts Options) *KeyHandler {
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}
	hapticDuration := opts.HapticDuration
	if hapticDuration <= 0 {
		hapticDuration = defaultHapticDuration
	}

	loop := newLooper()
	deferral := &keyguardDeferral{
		launcher: opts.Launcher,
		keyguard: opts.Keyguard,
		power:    opts.Power,
	}
	h := &KeyHandler{
		loop:     loop,
		gate:     newProximityGate(loop, opts.Sensor, clk),
		deferral: deferral,
		dispatcher: &actionDispatcher{
			clock:     clk,
			power:     opts.Power,
			audio:     opts.Audio,
			broadcast: opts.Broadcast,
			torch:     opts.Torch,
			deferral:  deferral,
		},
		vibrator:       opts.Vibrator,
		prefs:          opts.Preferences,
		hapticDuration: hapticDuration,
		onHandled:      opts.OnHandled,
	}
	if opts.ProximityTimeout > 0 {
		h.gate.setTimeout(opts.ProximityTimeout)
	}
	return h
}

func (h *KeyHandler) Start() {
	h.loop.start()
}

func (h *KeyHandler) Stop() {
	h.stopOnce.Do(h.loop.stop)
}

// HandleKeyEvent reports whether the event was consumed. Actions fire on
// key up, except the camera flip switch which fires on key down and
// swallows its key up.
func (h *KeyHandler) HandleKeyEvent(ev KeyEvent) bool {
	if ev.Action != KeyUp && ev.Scancode != ScancodeFlipCamera {
		return false
	}
	action, ok := Classify(ev.Scancode)
	if !ok {
		return false
	}
	if ev.Scancode == ScancodeFlipCamera && ev.Action == KeyUp {
		return true
	}

	logger.Debugf("key %d %v at %v", ev.Scancode, ev.Action, ev.Time)
	h.loop.post(msgKeyEvent, func() {
		h.processAction(action)
	})
	return true
}

func (h *KeyHandler) processAction(action ScancodeAction) {
	if !action.RequiresProximityGate {
		h.perform(action)
		return
	}
	h.gate.checkProximityThenRun(action, func() {
		h.perform(action)
	})
}

func (h *KeyHandler) perform(action ScancodeAction) {
	h.dispatcher.dispatch(action)
	h.hapticFeedback()
	if h.onHandled != nil {
		h.onHandled(action)
	}
}

func (h *KeyHandler) hapticFeedback() {
	if h.vibrator == nil || h.prefs == nil || !h.prefs.HapticFeedbackEnabled() {
		return
	}
	err := h.vibrator.Vibrate(h.hapticDuration)
	if err != nil {
		logger.Debug("failed to vibrate:", err)
	}
}

func (h *KeyHandler) OnUserPresent() {
	h.loop.post(msgUserPresent, h.deferral.onUserPresent)
}

func (h *KeyHandler) OnScreenOff() {
	h.loop.post(msgScreenOff, h.deferral.onScreenOff)
}

func (h *KeyHandler) SetProximityTimeout(timeout time.Duration) {
	h.loop.post(msgConfig, func() {
		h.gate.setTimeout(timeout)
	})
}

func (h *KeyHandler) SetHapticDuration(duration time.Duration) {
	h.loop.post(msgConfig, func() {
		if duration <= 0 {
			duration = defaultHapticDuration
		}
		h.hapticDuration = duration
	})
}

// PendingIntent returns a copy of the launch waiting for unlock, or nil.
func (h *KeyHandler) PendingIntent() *ActivityIntent {
	var intent *ActivityIntent
	h.loop.runSync(func() {
		intent = h.deferral.pendingIntent()
	})
	return intent
}
