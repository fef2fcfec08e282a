// SPDX-FileCopyrightText: 2018 - 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"fmt"
	"sync"

	"github.com/linuxdeepin/go-lib/log"
)

// Module is a unit of the daemon that owns one D-Bus object.
type Module interface {
	Name() string
	IsEnable() bool
	Enable(bool) error
	GetDependencies() []string
	SetLogLevel(log.Priority)
	LogLevel() log.Priority
	WaitEnable()
	ModuleImpl
}

type Modules map[string]Module

type ModuleImpl interface {
	Start() error // keep Start synchronous, the loader logs the returned error
	Stop() error
}

type ModuleBase struct {
	impl    ModuleImpl
	enabled bool
	name    string
	log     *log.Logger
	mu      sync.Mutex
	started chan struct{}
	once    sync.Once
}

func NewModuleBase(name string, impl ModuleImpl, logger *log.Logger) *ModuleBase {
	return &ModuleBase{
		name:    name,
		impl:    impl,
		log:     logger,
		started: make(chan struct{}),
	}
}

func (d *ModuleBase) doEnable(enable bool) error {
	if d.impl != nil {
		fn := d.impl.Stop
		if enable {
			fn = d.impl.Start
		}

		if err := fn(); err != nil {
			return err
		}
	}
	d.enabled = enable
	return nil
}

func (d *ModuleBase) Enable(enable bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.enabled == enable {
		return fmt.Errorf("%s daemon is already in state enabled=%v", d.name, enable)
	}
	err := d.doEnable(enable)
	// dependents wait on this, release them even when Start failed
	if enable {
		d.once.Do(func() { close(d.started) })
	}
	return err
}

func (d *ModuleBase) IsEnable() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

func (d *ModuleBase) WaitEnable() {
	<-d.started
}

func (d *ModuleBase) Name() string {
	return d.name
}

func (d *ModuleBase) SetLogLevel(pri log.Priority) {
	d.log.SetLogLevel(pri)
}

func (d *ModuleBase) LogLevel() log.Priority {
	return d.log.GetLogLevel()
}
