// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicesettings1

import (
	dbus "github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/dde-devicekeys/common/dconfig"
	"github.com/linuxdeepin/go-lib/dbusutil"
)

//go:generate dbusutil-gen em -type Manager

type Manager struct {
	service  *dbusutil.Service
	settings *Settings
	dconfig  *dconfig.DConfig

	// nolint
	signals *struct {
		Changed struct {
			key string
		}
	}
}

func newManager(service *dbusutil.Service) *Manager {
	return &Manager{service: service}
}

func (*Manager) GetInterfaceName() string {
	return dbusInterface
}

func (m *Manager) init(systemConn *dbus.Conn) {
	var store dconfig.Store
	dc, err := dconfig.NewDConfig(DConfigAppID, DConfigName, "")
	if err != nil {
		logger.Warning("failed to open dconfig, settings are not saved:", err)
		store = dconfig.NewMemoryStore(nil)
	} else {
		m.dconfig = dc
		store = dc
	}

	m.settings = NewSettings(store, newGesturesClient(systemConn), m.emitChanged)
	go m.settings.RestoreGestures()
}

func (m *Manager) emitChanged(key string) {
	err := m.service.Emit(m, "Changed", key)
	if err != nil {
		logger.Warning(err)
	}
}

func (m *Manager) destroy() {
	if m.dconfig != nil {
		m.dconfig.Destroy()
	}
}

func (m *Manager) GetNotificationSliderIgnoreAuto() (ignore bool, busErr *dbus.Error) {
	return m.settings.NotificationSliderIgnoreAuto(), nil
}

func (m *Manager) SetNotificationSliderIgnoreAuto(ignore bool) *dbus.Error {
	return dbusutil.ToError(m.settings.SetNotificationSliderIgnoreAuto(ignore))
}

func (m *Manager) GetHapticFeedback() (enabled bool, busErr *dbus.Error) {
	return m.settings.HapticFeedback(), nil
}

func (m *Manager) SetHapticFeedback(enabled bool) *dbus.Error {
	return dbusutil.ToError(m.settings.SetHapticFeedback(enabled))
}

func (m *Manager) GetGestureEnabled(id int32) (enabled bool, busErr *dbus.Error) {
	return m.settings.GestureEnabled(id), nil
}

func (m *Manager) SetGestureEnabled(id int32, enabled bool) *dbus.Error {
	err := m.settings.SetGestureEnabled(id, enabled)
	if err != nil {
		logger.Warning(err)
	}
	return dbusutil.ToError(err)
}
