// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"time"

	dbus "github.com/godbus/dbus/v5"
)

// HandleKeyEvent lets a compositor forward gesture scancodes it grabbed
// itself.
func (m *Manager) HandleKeyEvent(scancode uint32, pressed bool) (handled bool, busErr *dbus.Error) {
	action := KeyUp
	if pressed {
		action = KeyDown
	}
	handled = m.handler.HandleKeyEvent(KeyEvent{
		Scancode: Scancode(scancode),
		Action:   action,
		Time:     time.Now(),
	})
	return handled, nil
}

func (m *Manager) GetPendingIntent() (id string, action string, busErr *dbus.Error) {
	intent := m.handler.PendingIntent()
	if intent == nil {
		return "", "", nil
	}
	return intent.ID, intent.Action, nil
}
