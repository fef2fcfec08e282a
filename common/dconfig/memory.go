// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package dconfig

import (
	"fmt"
	"sync"

	"github.com/linuxdeepin/go-lib/log"
)

var logger = log.NewLogger("daemon/dconfig")

// MemoryStore keeps values in process. It stands in for the config
// manager when the system bus has none.
type MemoryStore struct {
	mu       sync.Mutex
	values   map[string]interface{}
	handlers map[string]func(interface{})
}

func NewMemoryStore(defaults map[string]interface{}) *MemoryStore {
	values := make(map[string]interface{}, len(defaults))
	for k, v := range defaults {
		values[k] = v
	}
	return &MemoryStore{
		values:   values,
		handlers: make(map[string]func(interface{})),
	}
}

func (m *MemoryStore) GetValue(key string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("dconfig key %q not found", key)
	}
	return v, nil
}

func (m *MemoryStore) SetValue(key string, value interface{}) error {
	m.mu.Lock()
	m.values[key] = value
	cb := m.handlers[key]
	m.mu.Unlock()

	if cb != nil {
		cb(value)
	}
	return nil
}

func (m *MemoryStore) ConnectConfigChanged(key string, cb func(interface{})) {
	m.mu.Lock()
	m.handlers[key] = cb
	m.mu.Unlock()
}
