// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"fmt"
	"time"
)

// Scancode is the key code reported by the touch panel driver for a
// recognized gesture.
type Scancode uint32

// 触摸屏手势按键码
// nolint
const (
	ScancodeFlipCamera       Scancode = 249
	ScancodeGestureCircle    Scancode = 250
	ScancodeGestureSwipeDown Scancode = 251
	ScancodeGestureV         Scancode = 252
	ScancodeGestureLTR       Scancode = 253
	ScancodeGestureGTR       Scancode = 254
	ScancodeDoubleTap        Scancode = 255
)

type ActionKind int

const (
	ActionLaunchCamera ActionKind = iota
	ActionToggleTorch
	ActionMediaPlayPause
	ActionMediaPrevious
	ActionMediaNext
	ActionWakeDevice
)

func (k ActionKind) String() string {
	switch k {
	case ActionLaunchCamera:
		return "launch-camera"
	case ActionToggleTorch:
		return "toggle-torch"
	case ActionMediaPlayPause:
		return "media-play-pause"
	case ActionMediaPrevious:
		return "media-previous"
	case ActionMediaNext:
		return "media-next"
	case ActionWakeDevice:
		return "wake-device"
	default:
		return fmt.Sprintf("invalid-action(%d)", int(k))
	}
}

// requiresProximityGate is false only for waking, an accidental wake costs
// nothing.
func (k ActionKind) requiresProximityGate() bool {
	return k != ActionWakeDevice
}

type ScancodeAction struct {
	Kind                  ActionKind
	Scancode              Scancode
	RequiresProximityGate bool
}

func (a ScancodeAction) String() string {
	return fmt.Sprintf("%s(%d)", a.Kind, a.Scancode)
}

var scancodeTable = map[Scancode]ActionKind{
	ScancodeFlipCamera:       ActionLaunchCamera,
	ScancodeGestureCircle:    ActionLaunchCamera,
	ScancodeGestureSwipeDown: ActionMediaPlayPause,
	ScancodeGestureV:         ActionToggleTorch,
	ScancodeGestureLTR:       ActionMediaPrevious,
	ScancodeGestureGTR:       ActionMediaNext,
	ScancodeDoubleTap:        ActionWakeDevice,
}

// Classify resolves a scancode to its action. ok is false for every
// scancode the panel does not produce.
func Classify(scancode Scancode) (action ScancodeAction, ok bool) {
	kind, ok := scancodeTable[scancode]
	if !ok {
		return ScancodeAction{}, false
	}
	return ScancodeAction{
		Kind:                  kind,
		Scancode:              scancode,
		RequiresProximityGate: kind.requiresProximityGate(),
	}, true
}

type KeyAction int

const (
	KeyDown KeyAction = iota
	KeyUp
)

func (a KeyAction) String() string {
	if a == KeyDown {
		return "down"
	}
	return "up"
}

type KeyEvent struct {
	Scancode Scancode
	Action   KeyAction
	Time     time.Time
}

// MediaKeyCode values follow linux/input-event-codes.h.
type MediaKeyCode uint32

// nolint
const (
	KEY_NEXTSONG     MediaKeyCode = 163
	KEY_PLAYPAUSE    MediaKeyCode = 164
	KEY_PREVIOUSSONG MediaKeyCode = 165
)

func (c MediaKeyCode) String() string {
	switch c {
	case KEY_NEXTSONG:
		return "next"
	case KEY_PLAYPAUSE:
		return "play-pause"
	case KEY_PREVIOUSSONG:
		return "previous"
	}
	return fmt.Sprintf("media-key(%d)", uint32(c))
}

// MediaKeyEvent is one half of the synthesized press/release pair handed
// to the audio service. Both halves share DownTime and EventTime.
type MediaKeyEvent struct {
	Code      MediaKeyCode
	Action    KeyAction
	DownTime  time.Time
	EventTime time.Time
}
