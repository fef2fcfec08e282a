// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"sync"
)

type messageWhat int

const (
	msgKeyEvent messageWhat = iota + 1
	msgSensorChanged
	msgProximityTimeout
	msgDispatch
	msgUserPresent
	msgScreenOff
	msgConfig
	msgSync
)

type message struct {
	what messageWhat
	fn   func()
}

// looper runs posted messages one at a time on its own goroutine. All
// handler state is owned by that goroutine.
type looper struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []message
	busy    bool
	started bool
	stopped bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
	once sync.Once
}

func newLooper() *looper {
	l := &looper{
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	l.cond = sync.NewCond(&l.mu)
	return l
}

func (l *looper) start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started || l.stopped {
		return
	}
	l.started = true
	go l.loop()
}

func (l *looper) loop() {
	defer close(l.done)
	for {
		select {
		case <-l.quit:
			return
		case <-l.wake:
		}

		for {
			msg, ok := l.next()
			if !ok {
				break
			}
			msg.fn()
			l.mu.Lock()
			l.busy = false
			l.cond.Broadcast()
			l.mu.Unlock()
		}
	}
}

func (l *looper) next() (message, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped || len(l.queue) == 0 {
		return message{}, false
	}
	msg := l.queue[0]
	l.queue[0] = message{}
	l.queue = l.queue[1:]
	l.busy = true
	return msg, true
}

// post appends fn to the queue. It reports false once the looper has been
// stopped.
func (l *looper) post(what messageWhat, fn func()) bool {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, message{what: what, fn: fn})
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// removeMessages drops every queued message of kind what. A message that
// is already running is not affected.
func (l *looper) removeMessages(what messageWhat) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.queue[:0]
	for _, msg := range l.queue {
		if msg.what != what {
			kept = append(kept, msg)
		}
	}
	for i := len(kept); i < len(l.queue); i++ {
		l.queue[i] = message{}
	}
	l.queue = kept
	l.cond.Broadcast()
}

func (l *looper) hasMessages(what messageWhat) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, msg := range l.queue {
		if msg.what == what {
			return true
		}
	}
	return false
}

// runSync runs fn on the looper and waits for it. It must not be called
// from the looper goroutine.
func (l *looper) runSync(fn func()) bool {
	ch := make(chan struct{})
	ok := l.post(msgSync, func() {
		fn()
		close(ch)
	})
	if !ok {
		return false
	}
	select {
	case <-ch:
		return true
	case <-l.done:
		return false
	}
}

// waitIdle blocks until the queue is empty and no message is running.
func (l *looper) waitIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for !l.stopped && (l.busy || len(l.queue) > 0) {
		l.cond.Wait()
	}
}

// stop discards queued messages and waits for a running one to return.
func (l *looper) stop() {
	l.once.Do(func() {
		l.mu.Lock()
		l.stopped = true
		l.queue = nil
		l.cond.Broadcast()
		started := l.started
		l.mu.Unlock()
		close(l.quit)
		if !started {
			close(l.done)
		}
	})
	<-l.done
}
