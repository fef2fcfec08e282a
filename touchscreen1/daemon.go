// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchscreen1

import (
	"github.com/linuxdeepin/dde-devicekeys/common/devconf"
	"github.com/linuxdeepin/dde-devicekeys/common/sysfs"
	"github.com/linuxdeepin/dde-devicekeys/loader"
	"github.com/linuxdeepin/go-lib/log"
)

const (
	dbusServiceName = "org.deepin.dde.TouchscreenGestures1"
	dbusPath        = "/org/deepin/dde/TouchscreenGestures1"
	dbusInterface   = dbusServiceName
)

var logger = log.NewLogger("daemon/touchscreen")

func init() {
	loader.Register(NewDaemon(logger))
}

type Daemon struct {
	*loader.ModuleBase
	manager *Manager
}

func NewDaemon(logger *log.Logger) *Daemon {
	daemon := new(Daemon)
	daemon.ModuleBase = loader.NewModuleBase("touchscreen", daemon, logger)
	return daemon
}

func (d *Daemon) GetDependencies() []string {
	return []string{}
}

func (d *Daemon) Start() error {
	if d.manager != nil {
		return nil
	}
	service := loader.GetService()
	conf, configFile := devconf.LoadDefault()
	d.manager = newManager(service, sysfs.NewStore(), conf)

	err := service.Export(dbusPath, d.manager)
	if err != nil {
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
		d.manager = nil
		return err
	}

	d.manager.init(configFile)
	return nil
}

func (d *Daemon) Stop() error {
	if d.manager == nil {
		return nil
	}
	d.manager.destroy()
	err := loader.GetService().StopExport(d.manager)
	d.manager = nil
	return err
}
