// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The looper is never started here, so the gate is driven directly and
// queued messages can be inspected.
func newIdleGate() (*proximityGate, *fakeSensor, *looper) {
	loop := newLooper()
	sensor := &fakeSensor{maxRange: 5}
	return newProximityGate(loop, sensor, clock.NewMock()), sensor, loop
}

func gateListenerAt(t *testing.T, sensor *fakeSensor, i int) *gateListener {
	listeners := sensor.listeners()
	require.Greater(t, len(listeners), i)
	l, ok := listeners[i].(*gateListener)
	require.True(t, ok)
	return l
}

func TestProximityGate_NewGestureCancelsQueuedDispatch(t *testing.T) {
	g, sensor, loop := newIdleGate()
	prev, _ := Classify(ScancodeGestureLTR)
	next, _ := Classify(ScancodeGestureGTR)

	g.checkProximityThenRun(prev, func() {})
	g.handleReading(gateListenerAt(t, sensor, 0), far)
	assert.True(t, loop.hasMessages(msgDispatch))

	g.checkProximityThenRun(next, func() {})
	assert.False(t, loop.hasMessages(msgDispatch))
}

func TestProximityGate_StaleReadingKeepsNewerDispatch(t *testing.T) {
	g, sensor, loop := newIdleGate()
	prev, _ := Classify(ScancodeGestureLTR)
	next, _ := Classify(ScancodeGestureGTR)

	g.checkProximityThenRun(prev, func() {})
	g.checkProximityThenRun(next, func() {})
	stale := gateListenerAt(t, sensor, 0)
	current := gateListenerAt(t, sensor, 1)

	g.handleReading(current, far)
	assert.True(t, loop.hasMessages(msgDispatch))
	g.handleReading(stale, far)
	assert.True(t, loop.hasMessages(msgDispatch))

	registered, unregistered := sensor.counts()
	assert.Equal(t, 2, registered)
	assert.Equal(t, 2, unregistered)
}

func TestProximityGate_CoveredReadingCancelsQueuedDispatch(t *testing.T) {
	g, sensor, loop := newIdleGate()
	action, _ := Classify(ScancodeGestureV)

	g.checkProximityThenRun(action, func() {})
	l := gateListenerAt(t, sensor, 0)
	loop.post(msgDispatch, func() {})

	g.handleReading(l, near)
	assert.False(t, loop.hasMessages(msgDispatch))
	assert.True(t, l.done)
}

func TestProximityGate_TimeoutThenReading(t *testing.T) {
	g, sensor, loop := newIdleGate()
	action, _ := Classify(ScancodeGestureV)

	g.checkProximityThenRun(action, func() {})
	l := gateListenerAt(t, sensor, 0)

	g.handleTimeout(l)
	g.handleReading(l, far)
	g.handleTimeout(l)

	assert.False(t, loop.hasMessages(msgDispatch))
	_, unregistered := sensor.counts()
	assert.Equal(t, 1, unregistered)
}

func TestProximityReading_Obstructed(t *testing.T) {
	assert.False(t, ProximityReading{Distance: 5, MaximumRange: 5}.Obstructed())
	assert.True(t, ProximityReading{Distance: 0, MaximumRange: 5}.Obstructed())
	assert.True(t, ProximityReading{Distance: 3, MaximumRange: 5}.Obstructed())
}
