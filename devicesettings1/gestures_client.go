// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicesettings1

import (
	dbus "github.com/godbus/dbus/v5"
)

const (
	touchscreenServiceName = "org.deepin.dde.TouchscreenGestures1"
	touchscreenPath        = "/org/deepin/dde/TouchscreenGestures1"
	touchscreenInterface   = touchscreenServiceName
)

// gesturesClient talks to the system touchscreen service.
type gesturesClient struct {
	obj dbus.BusObject
}

func newGesturesClient(systemConn *dbus.Conn) *gesturesClient {
	return &gesturesClient{
		obj: systemConn.Object(touchscreenServiceName, touchscreenPath),
	}
}

func (c *gesturesClient) IsGestureEnabled(id int32) (enabled bool, err error) {
	err = c.obj.Call(touchscreenInterface+".IsGestureEnabled", 0, id).Store(&enabled)
	return
}

func (c *gesturesClient) SetGestureEnabled(id int32, enabled bool) error {
	return c.obj.Call(touchscreenInterface+".SetGestureEnabled", 0, id, enabled).Err
}
