// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"github.com/linuxdeepin/dde-devicekeys/common/devconf"
	"github.com/linuxdeepin/dde-devicekeys/loader"
	"github.com/linuxdeepin/go-lib/log"
)

const (
	dbusServiceName = "org.deepin.dde.DeviceKeys1"
	dbusPath        = "/org/deepin/dde/DeviceKeys1"
	dbusInterface   = dbusServiceName
)

var logger = log.NewLogger("daemon/devicekeys")

func init() {
	loader.Register(NewDaemon(logger))
}

type Daemon struct {
	*loader.ModuleBase
	manager *Manager
}

func NewDaemon(logger *log.Logger) *Daemon {
	daemon := new(Daemon)
	daemon.ModuleBase = loader.NewModuleBase("devicekeys", daemon, logger)
	return daemon
}

func (d *Daemon) GetDependencies() []string {
	return []string{"devicesettings"}
}

func (d *Daemon) Start() error {
	if d.manager != nil {
		return nil
	}
	service := loader.GetService()
	d.manager = newManager(service)
	conf, configFile := devconf.LoadDefault()
	d.manager.init(conf, configFile)

	err := service.Export(dbusPath, d.manager)
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
