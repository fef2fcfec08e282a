// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmdline

import (
	"flag"
	"fmt"
	"strings"

	"github.com/linuxdeepin/go-lib/log"
)

// Options are the flags shared by both daemons.
type Options struct {
	Verbose  bool
	LogLevel string
	Enable   string
	Disable  string
	Ignore   bool
}

func (o *Options) Register(fs *flag.FlagSet) {
	// -v | -verbose
	const verboseUsage = "Show much more message, shorthand for --loglevel debug."
	fs.BoolVar(&o.Verbose, "v", false, verboseUsage)
	fs.BoolVar(&o.Verbose, "verbose", false, verboseUsage)

	// -l | -loglevel
	const logLevelUsage = "Set log level, possible value is error/warn/info/debug/no, info is default"
	fs.StringVar(&o.LogLevel, "l", "", logLevelUsage)
	fs.StringVar(&o.LogLevel, "loglevel", "", logLevelUsage)

	// -i | -ignore
	const ignoreUsage = "Ignore missing modules."
	fs.BoolVar(&o.Ignore, "i", true, ignoreUsage)
	fs.BoolVar(&o.Ignore, "ignore", true, ignoreUsage)

	fs.StringVar(&o.Enable, "enable", "", "Enable modules and their dependencies.")
	fs.StringVar(&o.Disable, "disable", "", "Disable modules.")
}

func (o *Options) Level() (log.Priority, error) {
	if o.Verbose {
		return log.LevelDebug, nil
	}
	return ToLogLevel(o.LogLevel)
}

func splitModules(s string) []string {
	var modules []string
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			modules = append(modules, name)
		}
	}
	return modules
}

func (o *Options) EnablingModules() []string {
	return splitModules(o.Enable)
}

func (o *Options) DisabledModules() []string {
	return splitModules(o.Disable)
}

func ToLogLevel(name string) (log.Priority, error) {
	name = strings.ToLower(name)
	logLevel := log.LevelInfo
	var err error
	switch name {
	case "":
		logLevel = log.LevelInfo
	case "error":
		logLevel = log.LevelError
	case "warn":
		logLevel = log.LevelWarning
	case "info":
		logLevel = log.LevelInfo
	case "debug":
		logLevel = log.LevelDebug
	case "no":
		logLevel = log.LevelDisable
	default:
		err = fmt.Errorf("%s is not support", name)
	}

	return logLevel, err
}
