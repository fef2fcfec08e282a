// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package dconfig

import (
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
	DConfigManager "github.com/linuxdeepin/go-dbus-factory/org.desktopspec.ConfigManager"
	"github.com/linuxdeepin/go-lib/dbusutil"
)

// Store is the key/value surface of a dconfig resource.
type Store interface {
	GetValue(key string) (interface{}, error)
	SetValue(key string, value interface{}) error
	ConnectConfigChanged(key string, cb func(interface{}))
}

type DConfig struct {
	systemConn *dbus.Conn
	dbusPath   dbus.ObjectPath
	manager    DConfigManager.Manager
	sigLoop    *dbusutil.SignalLoop

	configChangedCbMap      map[string]func(interface{})
	configChangedCbMapMutex sync.Mutex
	configChangedOnce       sync.Once
}

func NewDConfig(appid, name, subPath string) (*DConfig, error) {
	var dConfig DConfig
	var err error
	dConfig.systemConn, err = dbus.SystemBus()
	if err != nil {
		return nil, err
	}

	dConfigManager := DConfigManager.NewConfigManager(dConfig.systemConn)
	dConfig.dbusPath, err = dConfigManager.AcquireManager(0, appid, name, subPath)
	if err != nil {
		return nil, err
	}
	dConfig.manager, err = DConfigManager.NewManager(dConfig.systemConn, dConfig.dbusPath)
	if err != nil {
		return nil, err
	}
	dConfig.configChangedCbMap = make(map[string]func(interface{}))
	return &dConfig, nil
}

func (dConfig *DConfig) GetValue(key string) (interface{}, error) {
	if dConfig.manager == nil {
		return nil, fmt.Errorf("dconfig not inited")
	}
	v, err := dConfig.manager.Value(0, key)
	if err != nil {
		return nil, err
	}
	return v.Value(), nil
}

func (dConfig *DConfig) SetValue(key string, value interface{}) error {
	if dConfig.manager == nil {
		return fmt.Errorf("dconfig not inited")
	}
	return dConfig.manager.SetValue(0, key, dbus.MakeVariant(value))
}

// ConnectConfigChanged replaces any callback already set for key. Callbacks
// run on their own goroutine.
func (dConfig *DConfig) ConnectConfigChanged(key string, cb func(interface{})) {
	dConfig.configChangedCbMapMutex.Lock()
	dConfig.configChangedCbMap[key] = cb
	dConfig.configChangedCbMapMutex.Unlock()

	dConfig.configChangedOnce.Do(func() {
		dConfig.sigLoop = dbusutil.NewSignalLoop(dConfig.systemConn, 10)
		dConfig.sigLoop.Start()
		dConfig.manager.InitSignalExt(dConfig.sigLoop, true)

		_, err := dConfig.manager.ConnectValueChanged(func(key string) {
			dConfig.configChangedCbMapMutex.Lock()
			cb := dConfig.configChangedCbMap[key]
			dConfig.configChangedCbMapMutex.Unlock()
			if cb == nil {
				return
			}
			value, err := dConfig.GetValue(key)
			if err != nil {
				return
			}
			go cb(value)
		})
		if err != nil {
			logger.Warning(err)
		}
	})
}

func (dConfig *DConfig) Destroy() {
	if dConfig.manager != nil {
		dConfig.manager.RemoveAllHandlers()
	}
	if dConfig.sigLoop != nil {
		dConfig.sigLoop.Stop()
	}
}

// GetValueBool, GetValueInt64 and GetValueString convert the variant
// payload of key.
func GetValueBool(s Store, key string) (bool, error) {
	value, err := s.GetValue(key)
	if err != nil {
		return false, err
	}
	v, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("dconfig %s: %T is not bool", key, value)
	}
	return v, nil
}

func GetValueInt64(s Store, key string) (int64, error) {
	value, err := s.GetValue(key)
	if err != nil {
		return 0, err
	}
	switch v := value.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	}
	return 0, fmt.Errorf("dconfig %s: %T is not integer", key, value)
}

func GetValueString(s Store, key string) (string, error) {
	value, err := s.GetValue(key)
	if err != nil {
		return "", err
	}
	v, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("dconfig %s: %T is not string", key, value)
	}
	return v, nil
}
