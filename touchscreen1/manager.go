// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchscreen1

import (
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/dde-devicekeys/common/devconf"
	"github.com/linuxdeepin/dde-devicekeys/common/sysfs"
	"github.com/linuxdeepin/go-lib/dbusutil"
)

//go:generate dbusutil-gen em -type Manager

type Manager struct {
	service  *dbusutil.Service
	mu       sync.Mutex
	gestures *Gestures
	watcher  *devconf.Watcher

	// nolint
	signals *struct {
		GestureEnabledChanged struct {
			id      int32
			enabled bool
		}
	}
}

func newManager(service *dbusutil.Service, store sysfs.Store, conf *devconf.Config) *Manager {
	return &Manager{
		service:  service,
		gestures: NewGestures(store, conf.Touchscreen),
	}
}

func (*Manager) GetInterfaceName() string {
	return dbusInterface
}

func (m *Manager) init(configFile string) {
	if !m.gestures.IsSupported() {
		logger.Warning("touchscreen gesture nodes are not accessible")
	}

	var err error
	m.watcher, err = devconf.NewWatcher(configFile, func(conf *devconf.Config) {
		m.mu.Lock()
		m.gestures.SetNodes(conf.Touchscreen)
		m.mu.Unlock()
		logger.Info("touchscreen nodes reloaded")
	})
	if err != nil {
		logger.Warning("failed to watch config:", err)
	}
}

func (m *Manager) destroy() {
	if m.watcher != nil {
		m.watcher.Stop()
		m.watcher = nil
	}
}

func (m *Manager) IsSupported() (supported bool, busErr *dbus.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gestures.IsSupported(), nil
}

func (m *Manager) GetAvailableGestures() (gestures []Gesture, busErr *dbus.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gestures.AvailableGestures(), nil
}

func (m *Manager) IsGestureEnabled(id int32) (enabled bool, busErr *dbus.Error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gestures.IsGestureEnabled(id), nil
}

func (m *Manager) SetGestureEnabled(id int32, enabled bool) *dbus.Error {
	m.mu.Lock()
	err := m.gestures.SetGestureEnabled(id, enabled)
	m.mu.Unlock()
	if err != nil {
		logger.Warningf("set gesture %d to %v failed: %v", id, enabled, err)
		return dbusutil.ToError(err)
	}

	err = m.service.Emit(m, "GestureEnabledChanged", id, enabled)
	if err != nil {
		logger.Warning(err)
	}
	return nil
}
