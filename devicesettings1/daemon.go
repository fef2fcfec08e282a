// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicesettings1

import (
	dbus "github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/dde-devicekeys/loader"
	"github.com/linuxdeepin/go-lib/log"
)

const (
	dbusServiceName = "org.deepin.dde.DeviceSettings1"
	dbusPath        = "/org/deepin/dde/DeviceSettings1"
	dbusInterface   = dbusServiceName
)

var logger = log.NewLogger("daemon/devicesettings")

func init() {
	loader.Register(NewDaemon(logger))
}

type Daemon struct {
	*loader.ModuleBase
	manager *Manager
}

func NewDaemon(logger *log.Logger) *Daemon {
	daemon := new(Daemon)
	daemon.ModuleBase = loader.NewModuleBase("devicesettings", daemon, logger)
	return daemon
}

func (d *Daemon) GetDependencies() []string {
	return []string{}
}

func (d *Daemon) Start() error {
	if d.manager != nil {
		return nil
	}
	systemConn, err := dbus.SystemBus()
	if err != nil {
		return err
	}

	service := loader.GetService()
	d.manager = newManager(service)
	d.manager.init(systemConn)

	err = service.Export(dbusPath, d.manager)
	if err != nil {
		d.manager.destroy()
		d.manager = nil
		return err
	}

	err = service.RequestName(dbusServiceName)
	if err != nil {
		logger.Error("failed to request name:", err)
		err1 := service.StopExport(d.manager)
		if err1 != nil {
			logger.Warning(err1)
		}
		d.manager.destroy()
		d.manager = nil
		return err
	}
	return nil
}

func (d *Daemon) Stop() error {
	if d.manager == nil {
		return nil
	}
	err := loader.GetService().StopExport(d.manager)
	d.manager.destroy()
	d.manager = nil
	return err
}
