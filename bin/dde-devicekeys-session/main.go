// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"flag"
	"os"

	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"

	"github.com/linuxdeepin/dde-devicekeys/common/cmdline"
	"github.com/linuxdeepin/dde-devicekeys/loader"

	// modules:
	_ "github.com/linuxdeepin/dde-devicekeys/devicekeys1"
	_ "github.com/linuxdeepin/dde-devicekeys/devicesettings1"
)

var logger = log.NewLogger("daemon/dde-devicekeys-session")

var _options cmdline.Options

func init() {
	_options.Register(flag.CommandLine)
}

func main() {
	flag.Parse()

	logLevel, err := _options.Level()
	if err != nil {
		logger.Warning("failed to parse loglevel:", err)
		os.Exit(1)
	}

	service, err := dbusutil.NewSessionService()
	if err != nil {
		logger.Fatal("failed to new session service:", err)
	}

	loader.SetService(service)
	loader.SetLogLevel(logLevel)
	logger.SetLogLevel(logLevel)

	if len(_options.EnablingModules()) > 0 || len(_options.DisabledModules()) > 0 {
		flags := loader.EnableFlagNone
		if _options.Ignore {
			flags = loader.EnableFlagIgnoreMissingModule
		}
		err = loader.EnableModules(_options.EnablingModules(), _options.DisabledModules(), flags)
	} else {
		err = loader.StartAll()
	}
	if err != nil {
		logger.Warning(err)
		os.Exit(1)
	}
	defer loader.StopAll()

	service.Wait()
}
