// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrActivityNotFound        = errors.New("no activity found to handle intent")
	ErrAudioServiceUnavailable = errors.New("audio service is unavailable")
	ErrSensorUnavailable       = errors.New("proximity sensor is unavailable")
)

const (
	IntentActionStillImageCamera = "org.deepin.dde.DeviceKeys1.STILL_IMAGE_CAMERA"
	BroadcastActionToggleTorch   = "org.deepin.dde.DeviceKeys1.TOGGLE_TORCH"
)

// ActivityIntent is a request to bring an application to the foreground.
type ActivityIntent struct {
	ID     string
	Action string
	// SingleInstance asks the launcher to reuse a running instance.
	SingleInstance bool
}

func newActivityIntent(action string) *ActivityIntent {
	return &ActivityIntent{
		ID:             uuid.New().String(),
		Action:         action,
		SingleInstance: true,
	}
}

type ActivityLauncher interface {
	// StartActivity returns an error wrapping ErrActivityNotFound when
	// nothing can handle the intent.
	StartActivity(intent *ActivityIntent) error
	DismissKeyguardOnNextActivity() error
}

type KeyguardService interface {
	IsKeyguardSecure() bool
	IsKeyguardLocked() bool
}

type PowerService interface {
	IsScreenOn() bool
	WakeUp(when time.Time)
}

type AudioService interface {
	DispatchMediaKeyEventUnderWakelock(ev MediaKeyEvent) error
}

type BroadcastBus interface {
	SendBroadcast(action string)
	// RegisterReceiver delivers every broadcast whose action is in filter
	// until the returned cancel func is called.
	RegisterReceiver(filter ...string) (<-chan string, func())
}

type TorchService interface {
	Available() bool
}

// SensorListener receives proximity distances, in the unit of the
// sensor's maximum range.
type SensorListener interface {
	OnSensorChanged(distance float64)
}

type ProximitySensor interface {
	MaximumRange() float64
	RegisterListener(l SensorListener) error
	UnregisterListener(l SensorListener)
}

// ProximityReading only lives for the duration of one sensor callback.
type ProximityReading struct {
	Distance     float64
	MaximumRange float64
}

// Obstructed is true for anything but the far reading; binary proximity
// sensors only ever report 0 or their maximum range.
func (r ProximityReading) Obstructed() bool {
	return r.Distance != r.MaximumRange
}

type Vibrator interface {
	Vibrate(duration time.Duration) error
}

type Preferences interface {
	HapticFeedbackEnabled() bool
}
