// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"strconv"
	"sync"
	"time"

	"github.com/linuxdeepin/dde-devicekeys/common/sysfs"
)

// timedOutputVibrator writes the duration in milliseconds to a
// timed_output enable node.
type timedOutputVibrator struct {
	store sysfs.Store

	mu   sync.Mutex
	node string
}

func newTimedOutputVibrator(store sysfs.Store, node string) *timedOutputVibrator {
	return &timedOutputVibrator{
		store: store,
		node:  node,
	}
}

func (v *timedOutputVibrator) setNode(node string) {
	v.mu.Lock()
	v.node = node
	v.mu.Unlock()
}

func (v *timedOutputVibrator) Vibrate(duration time.Duration) error {
	v.mu.Lock()
	node := v.node
	v.mu.Unlock()
	if node == "" {
		return nil
	}
	ms := duration.Milliseconds()
	if ms <= 0 {
		ms = 1
	}
	return v.store.WriteLine(node, strconv.FormatInt(ms, 10))
}
