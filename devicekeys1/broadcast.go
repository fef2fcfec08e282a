// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"sync"
)

const receiverQueueSize = 8

type receiver struct {
	filter map[string]struct{}
	ch     chan string
}

// broadcastBus fans actions out to in-process receivers and to emit,
// which publishes them on the session bus.
type broadcastBus struct {
	mu        sync.Mutex
	nextID    int
	receivers map[int]*receiver
	emit      func(action string)
}

func newBroadcastBus(emit func(action string)) *broadcastBus {
	return &broadcastBus{
		receivers: make(map[int]*receiver),
		emit:      emit,
	}
}

func (b *broadcastBus) SendBroadcast(action string) {
	b.mu.Lock()
	for id, r := range b.receivers {
		if _, ok := r.filter[action]; !ok {
			continue
		}
		select {
		case r.ch <- action:
		default:
			logger.Warningf("receiver %d is full, drop %s", id, action)
		}
	}
	b.mu.Unlock()

	if b.emit != nil {
		b.emit(action)
	}
}

func (b *broadcastBus) RegisterReceiver(filter ...string) (<-chan string, func()) {
	r := &receiver{
		filter: make(map[string]struct{}, len(filter)),
		ch:     make(chan string, receiverQueueSize),
	}
	for _, action := range filter {
		r.filter[action] = struct{}{}
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.receivers[id] = r
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.receivers, id)
			b.mu.Unlock()
			close(r.ch)
		})
	}
	return r.ch, cancel
}
