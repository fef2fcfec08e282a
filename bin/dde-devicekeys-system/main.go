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
	_ "github.com/linuxdeepin/dde-devicekeys/touchscreen1"
)

var logger = log.NewLogger("daemon/dde-devicekeys-system")

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

	service, err := dbusutil.NewSystemService()
	if err != nil {
		logger.Fatal("failed to new system service", err)
	}

	// fix no PATH when was launched by dbus
	if os.Getenv("PATH") == "" {
		err = os.Setenv("PATH", "/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin")
		if err != nil {
			logger.Warning(err)
		}
	}

	loader.SetService(service)
	loader.SetLogLevel(logLevel)
	logger.SetLogLevel(logLevel)

	err = loader.StartAll()
	if err != nil {
		logger.Warning(err)
		os.Exit(1)
	}
	defer loader.StopAll()

	service.Wait()
}
