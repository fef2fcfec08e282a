// SPDX-FileCopyrightText: 2018 - 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"fmt"
	"sync"
	"time"

	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"
)

type EnableFlag int

const (
	EnableFlagNone EnableFlag = 1 << iota
	EnableFlagIgnoreMissingModule
	EnableFlagForceStart
)

func (flags EnableFlag) HasFlag(flag EnableFlag) bool {
	return flags&flag != 0
}

const (
	ErrorNoDependencies int = iota
	ErrorCircleDependencies
	ErrorMissingModule
	ErrorInternalError
	ErrorConflict
)

type EnableError struct {
	ModuleName string
	Code       int
	detail     string
}

func (e *EnableError) Error() string {
	switch e.Code {
	case ErrorNoDependencies:
		return fmt.Sprintf("%s's dependencies is not meet, %s is need", e.ModuleName, e.detail)
	case ErrorCircleDependencies:
		return "dependency circle"
	case ErrorMissingModule:
		return fmt.Sprintf("%s is missing", e.ModuleName)
	case ErrorInternalError:
		return fmt.Sprintf("%s started failed: %s", e.ModuleName, e.detail)
	case ErrorConflict:
		return fmt.Sprintf("trying to enable disabled module(%s)", e.ModuleName)
	}
	return fmt.Sprintf("unknown enable error %d", e.Code)
}

type Loader struct {
	modules    Modules
	startOrder []string
	log        *log.Logger
	lock       sync.Mutex
	service    *dbusutil.Service
}

func newLoader() *Loader {
	return &Loader{
		modules: Modules{},
		log:     log.NewLogger("daemon/loader"),
	}
}

func (l *Loader) SetLogLevel(pri log.Priority) {
	l.log.SetLogLevel(pri)

	l.lock.Lock()
	defer l.lock.Unlock()

	for _, module := range l.modules {
		module.SetLogLevel(pri)
	}
}

func (l *Loader) AddModule(m Module) {
	l.lock.Lock()
	defer l.lock.Unlock()
	name := m.Name()
	_, exist := l.modules[name]
	if exist {
		l.log.Debug("Register", name, "is already registered")
		return
	}
	l.log.Debug("Register module:", name)
	l.modules[name] = m
}

func (l *Loader) List() []Module {
	l.lock.Lock()
	defer l.lock.Unlock()
	modules := make([]Module, 0, len(l.modules))
	for _, m := range l.modules {
		modules = append(modules, m)
	}
	return modules
}

func (l *Loader) GetModule(name string) Module {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.modules[name]
}

func (l *Loader) waitDependencies(module Module) {
	for _, dependencyName := range module.GetDependencies() {
		dependency, ok := l.modules[dependencyName]
		if !ok {
			continue
		}
		dependency.WaitEnable()
	}
}

func (l *Loader) EnableModules(enablingModules []string, disableModules []string, flag EnableFlag) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	startTime := time.Now()
	builder := newDAGBuilder(l, enablingModules, disableModules, flag)
	err := builder.build()
	if err != nil {
		return err
	}

	order, ok := builder.sorted()
	if !ok {
		return &EnableError{Code: ErrorCircleDependencies}
	}
	l.log.Infof("topo sort done, cost %s", time.Since(startTime))

	var wg sync.WaitGroup
	for _, name := range order {
		module := l.modules[name]
		if module.IsEnable() {
			continue
		}
		wg.Add(1)
		go func(name string, module Module) {
			defer wg.Done()
			startTime := time.Now()
			l.waitDependencies(module)
			l.log.Debug("module", name, "wait done, cost", time.Since(startTime))

			err := module.Enable(true)
			if err != nil {
				l.log.Errorf("enable module %s failed: %s, cost %s", name, err, time.Since(startTime))
				return
			}
			l.log.Infof("enable module %s done, cost %s", name, time.Since(startTime))
		}(name, module)
	}
	wg.Wait()

	l.startOrder = append(l.startOrder, order...)
	l.log.Infof("enable modules done, cost add up to %s", time.Since(startTime))
	return nil
}
