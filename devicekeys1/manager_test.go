// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"testing"

	"github.com/linuxdeepin/dde-devicekeys/common/dconfig"
	"github.com/linuxdeepin/dde-devicekeys/devicesettings1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHapticPreference(t *testing.T) {
	store := dconfig.NewMemoryStore(nil)
	pref := newHapticPreference(store)
	assert.True(t, pref.HapticFeedbackEnabled())

	require.NoError(t, store.SetValue(devicesettings1.KeyHapticFeedback, false))
	assert.False(t, pref.HapticFeedbackEnabled())
}

func TestGetInterfaceName(t *testing.T) {
	m := newManager(nil)
	assert.Equal(t, "org.deepin.dde.DeviceKeys1", m.GetInterfaceName())
}

func TestManager_HandleKeyEvent(t *testing.T) {
	e := newTestEnv(t)
	m := &Manager{handler: e.handler}

	// gestures fire on release only
	handled, busErr := m.HandleKeyEvent(uint32(ScancodeGestureGTR), true)
	assert.Nil(t, busErr)
	assert.False(t, handled)

	handled, busErr = m.HandleKeyEvent(uint32(ScancodeGestureGTR), false)
	assert.Nil(t, busErr)
	assert.True(t, handled)

	// the flip switch fires on press
	handled, _ = m.HandleKeyEvent(uint32(ScancodeFlipCamera), true)
	assert.True(t, handled)

	handled, _ = m.HandleKeyEvent(1000, false)
	assert.False(t, handled)

	e.sync()
	registered, _ := e.sensor.counts()
	assert.Equal(t, 2, registered)
}

func TestManager_GetPendingIntent(t *testing.T) {
	e := newTestEnv(t)
	m := &Manager{handler: e.handler}

	id, action, busErr := m.GetPendingIntent()
	assert.Nil(t, busErr)
	assert.Empty(t, id)
	assert.Empty(t, action)

	e.keyguard.set(true, true)
	m.HandleKeyEvent(uint32(ScancodeGestureCircle), false)
	e.sync()
	e.sensor.emit(far)
	e.sync()

	id, action, busErr = m.GetPendingIntent()
	assert.Nil(t, busErr)
	assert.NotEmpty(t, id)
	assert.Equal(t, IntentActionStillImageCamera, action)
}
