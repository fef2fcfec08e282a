// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"testing"

	dbus "github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
)

type countingEvents struct {
	userPresent int
	screenOff   int
}

func (e *countingEvents) OnUserPresent() { e.userPresent++ }
func (e *countingEvents) OnScreenOff()   { e.screenOff++ }

func TestSessionWatcher_HandleSessionChanged(t *testing.T) {
	events := &countingEvents{}
	w := newSessionWatcher(nil, nil, events)

	w.handleSessionChanged(map[string]dbus.Variant{
		"LockedHint": dbus.MakeVariant(true),
	})
	assert.Equal(t, 0, events.userPresent)

	w.handleSessionChanged(map[string]dbus.Variant{
		"LockedHint": dbus.MakeVariant(false),
		"IdleHint":   dbus.MakeVariant(false),
	})
	assert.Equal(t, 1, events.userPresent)
	assert.Equal(t, 0, events.screenOff)

	w.handleSessionChanged(map[string]dbus.Variant{
		"IdleHint": dbus.MakeVariant(true),
		"Active":   dbus.MakeVariant(true),
	})
	assert.Equal(t, 1, events.screenOff)

	w.handleSessionChanged(nil)
	assert.Equal(t, 1, events.userPresent)
}
