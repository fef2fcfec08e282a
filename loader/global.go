// SPDX-FileCopyrightText: 2018 - 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"sync"

	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"
)

var loaderInitializer sync.Once
var _loader *Loader

func getLoader() *Loader {
	loaderInitializer.Do(func() {
		_loader = newLoader()
	})
	return _loader
}

func SetService(s *dbusutil.Service) {
	getLoader().service = s
}

func GetService() *dbusutil.Service {
	return getLoader().service
}

func Register(m Module) {
	getLoader().AddModule(m)
}

func List() []Module {
	return getLoader().List()
}

func GetModule(name string) Module {
	return getLoader().GetModule(name)
}

func SetLogLevel(pri log.Priority) {
	getLoader().SetLogLevel(pri)
}

func EnableModules(enablingModules []string, disableModules []string, flag EnableFlag) error {
	return getLoader().EnableModules(enablingModules, disableModules, flag)
}

func StartAll() error {
	var names []string
	for _, module := range getLoader().List() {
		names = append(names, module.Name())
	}
	return getLoader().EnableModules(names, nil, EnableFlagNone)
}

// StopAll stops modules in reverse start order.
func StopAll() {
	l := getLoader()
	l.lock.Lock()
	order := make([]string, len(l.startOrder))
	copy(order, l.startOrder)
	l.lock.Unlock()

	for i := len(order) - 1; i >= 0; i-- {
		m := l.GetModule(order[i])
		if m == nil || !m.IsEnable() {
			continue
		}
		if err := m.Enable(false); err != nil {
			l.log.Warningf("stop module %s failed: %v", m.Name(), err)
		}
	}
}
