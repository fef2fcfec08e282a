// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"errors"
	"time"

	"github.com/benbjohnson/clock"
)

const defaultProximityTimeout = time.Second

// proximityGate runs an action only once a single proximity reading says
// nothing covers the panel. Every method except OnSensorChanged runs on
// the looper.
type proximityGate struct {
	loop    *looper
	sensor  ProximitySensor
	clock   clock.Clock
	timeout time.Duration

	generation uint64
}

func newProximityGate(loop *looper, sensor ProximitySensor, clk clock.Clock) *proximityGate {
	return &proximityGate{
		loop:    loop,
		sensor:  sensor,
		clock:   clk,
		timeout: defaultProximityTimeout,
	}
}

func (g *proximityGate) setTimeout(timeout time.Duration) {
	if timeout <= 0 {
		timeout = defaultProximityTimeout
	}
	g.timeout = timeout
}

type gateListener struct {
	gate       *proximityGate
	action     ScancodeAction
	generation uint64
	run        func()
	timer      *clock.Timer
	done       bool
}

func (l *gateListener) OnSensorChanged(distance float64) {
	l.gate.loop.post(msgSensorChanged, func() {
		l.gate.handleReading(l, distance)
	})
}

// checkProximityThenRun registers a one-shot listener for action. A newer
// call supersedes any listener that has not yet confirmed.
func (g *proximityGate) checkProximityThenRun(action ScancodeAction, run func()) {
	if g.sensor == nil {
		logger.Debugf("no proximity sensor, run %v directly", action)
		run()
		return
	}

	g.generation++
	g.loop.removeMessages(msgDispatch)
	l := &gateListener{
		gate:       g,
		action:     action,
		generation: g.generation,
		run:        run,
	}
	err := g.sensor.RegisterListener(l)
	if err != nil {
		if errors.Is(err, ErrSensorUnavailable) {
			logger.Debugf("proximity sensor unavailable, run %v directly", action)
			run()
			return
		}
		logger.Warningf("failed to register proximity listener for %v: %v", action, err)
		return
	}

	l.timer = g.clock.AfterFunc(g.timeout, func() {
		g.loop.post(msgProximityTimeout, func() {
			g.handleTimeout(l)
		})
	})
}

func (g *proximityGate) finish(l *gateListener) bool {
	if l.done {
		return false
	}
	l.done = true
	if l.timer != nil {
		l.timer.Stop()
	}
	g.sensor.UnregisterListener(l)
	return true
}

func (g *proximityGate) handleReading(l *gateListener, distance float64) {
	if !g.finish(l) {
		return
	}
	if l.generation != g.generation {
		logger.Debugf("drop %v, superseded by a newer gesture", l.action)
		return
	}
	g.loop.removeMessages(msgDispatch)

	reading := ProximityReading{
		Distance:     distance,
		MaximumRange: g.sensor.MaximumRange(),
	}
	if reading.Obstructed() {
		logger.Debugf("drop %v, proximity sensor covered: %v/%v",
			l.action, reading.Distance, reading.MaximumRange)
		return
	}
	g.loop.post(msgDispatch, l.run)
}

func (g *proximityGate) handleTimeout(l *gateListener) {
	if !g.finish(l) {
		return
	}
	logger.Debugf("drop %v, no proximity reading within %v", l.action, g.timeout)
}
