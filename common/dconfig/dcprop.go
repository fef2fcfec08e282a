// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package dconfig

import (
	"sync"
)

type base struct {
	mu                sync.Mutex
	store             Store
	key               string
	notifyChangedList []func(val interface{})
}

func (b *base) bind(store Store, key string) {
	b.store = store
	b.key = key

	store.ConnectConfigChanged(key, func(val interface{}) {
		b.mu.Lock()
		notifyChangedList := b.notifyChangedList
		b.mu.Unlock()

		for _, notifyChanged := range notifyChangedList {
			notifyChanged(val)
		}
	})
}

func (b *base) SetNotifyChangedFunc(fn func(val interface{})) {
	b.mu.Lock()
	b.notifyChangedList = append(b.notifyChangedList, fn)
	b.mu.Unlock()
}

// Bool is a boolean key with a fallback used when the store has none.
type Bool struct {
	base
	Default bool
}

func (b *Bool) Bind(store Store, key string) {
	b.bind(store, key)
}

func (b *Bool) Get() bool {
	v, err := GetValueBool(b.store, b.key)
	if err != nil {
		logger.Debug(err)
		return b.Default
	}
	return v
}

// Set reports whether the stored value changed.
func (b *Bool) Set(val bool) (bool, error) {
	if b.Get() == val {
		return false, nil
	}
	err := b.store.SetValue(b.key, val)
	return err == nil, err
}

type Int64 struct {
	base
	Default int64
}

func (i *Int64) Bind(store Store, key string) {
	i.bind(store, key)
}

func (i *Int64) Get() int64 {
	v, err := GetValueInt64(i.store, i.key)
	if err != nil {
		logger.Debug(err)
		return i.Default
	}
	return v
}

func (i *Int64) Set(val int64) (bool, error) {
	if i.Get() == val {
		return false, nil
	}
	err := i.store.SetValue(i.key, val)
	return err == nil, err
}

type String struct {
	base
	Default string
}

func (s *String) Bind(store Store, key string) {
	s.bind(store, key)
}

func (s *String) Get() string {
	v, err := GetValueString(s.store, s.key)
	if err != nil {
		logger.Debug(err)
		return s.Default
	}
	return v
}

func (s *String) Set(val string) (bool, error) {
	if s.Get() == val {
		return false, nil
	}
	err := s.store.SetValue(s.key, val)
	return err == nil, err
}
