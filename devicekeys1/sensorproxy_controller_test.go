// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"errors"
	"sync"
	"testing"
	"time"

	dbus "github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSensorProxy answers the net.hadess.SensorProxy calls the controller
// makes. Other BusObject methods are left nil.
type fakeSensorProxy struct {
	dbus.BusObject

	mu           sync.Mutex
	hasProximity bool
	hasErr       error
	near         bool
	nearGate     chan struct{}
	calls        []string
}

func (o *fakeSensorProxy) GetProperty(p string) (dbus.Variant, error) {
	switch p {
	case sensorProxyInterface + ".HasProximity":
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.hasErr != nil {
			return dbus.Variant{}, o.hasErr
		}
		return dbus.MakeVariant(o.hasProximity), nil
	case sensorProxyInterface + ".ProximityNear":
		if o.nearGate != nil {
			<-o.nearGate
		}
		o.mu.Lock()
		defer o.mu.Unlock()
		return dbus.MakeVariant(o.near), nil
	}
	return dbus.Variant{}, errors.New("unknown property " + p)
}

func (o *fakeSensorProxy) Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	o.mu.Lock()
	o.calls = append(o.calls, method)
	o.mu.Unlock()
	return &dbus.Call{Method: method}
}

func (o *fakeSensorProxy) callCount(method string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	n := 0
	for _, call := range o.calls {
		if call == sensorProxyInterface+"."+method {
			n++
		}
	}
	return n
}

type recordingListener struct {
	mu       sync.Mutex
	readings []float64
}

func (l *recordingListener) OnSensorChanged(distance float64) {
	l.mu.Lock()
	l.readings = append(l.readings, distance)
	l.mu.Unlock()
}

func (l *recordingListener) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.readings)
}

func (l *recordingListener) last() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readings[len(l.readings)-1]
}

func newTestSensorProxy(obj *fakeSensorProxy) *sensorProxyController {
	return &sensorProxyController{
		obj:       obj,
		maxRange:  5,
		listeners: make(map[SensorListener]struct{}),
	}
}

func TestSensorProxy_RegisterErrors(t *testing.T) {
	obj := &fakeSensorProxy{}
	c := newTestSensorProxy(obj)

	err := c.RegisterListener(&recordingListener{})
	assert.Equal(t, ErrSensorUnavailable, err)

	obj.hasErr = dbus.Error{Name: dbusErrServiceUnknown}
	err = c.RegisterListener(&recordingListener{})
	assert.True(t, errors.Is(err, ErrSensorUnavailable))

	for _, name := range []string{
		"org.freedesktop.DBus.Error.NoReply",
		"org.freedesktop.DBus.Error.AccessDenied",
	} {
		obj.hasErr = dbus.Error{Name: name}
		err = c.RegisterListener(&recordingListener{})
		require.Error(t, err, name)
		assert.False(t, errors.Is(err, ErrSensorUnavailable), name)
	}

	assert.Equal(t, 0, obj.callCount("ClaimProximity"))
	assert.Empty(t, c.listeners)
}

func TestSensorProxy_ClaimRelease(t *testing.T) {
	obj := &fakeSensorProxy{hasProximity: true, near: true}
	c := newTestSensorProxy(obj)
	l1 := &recordingListener{}
	l2 := &recordingListener{}

	require.NoError(t, c.RegisterListener(l1))
	require.NoError(t, c.RegisterListener(l2))
	assert.Equal(t, 1, obj.callCount("ClaimProximity"))

	assert.Eventually(t, func() bool {
		return l1.count() == 1 && l2.count() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0.0, l1.last())

	c.notify(5)
	assert.Equal(t, 2, l1.count())
	assert.Equal(t, 2, l2.count())
	assert.Equal(t, 5.0, l2.last())

	c.UnregisterListener(l1)
	assert.Equal(t, 0, obj.callCount("ReleaseProximity"))
	c.notify(0)
	assert.Equal(t, 2, l1.count())
	assert.Equal(t, 3, l2.count())

	c.UnregisterListener(l2)
	assert.Equal(t, 1, obj.callCount("ReleaseProximity"))

	// the next listener claims again
	require.NoError(t, c.RegisterListener(l1))
	assert.Equal(t, 2, obj.callCount("ClaimProximity"))
	c.UnregisterListener(l1)
	assert.Equal(t, 2, obj.callCount("ReleaseProximity"))
}

func TestSensorProxy_NoReadingAfterUnregister(t *testing.T) {
	obj := &fakeSensorProxy{
		hasProximity: true,
		nearGate:     make(chan struct{}),
	}
	c := newTestSensorProxy(obj)
	l := &recordingListener{}

	require.NoError(t, c.RegisterListener(l))
	c.UnregisterListener(l)
	close(obj.nearGate)

	assert.Never(t, func() bool {
		return l.count() > 0
	}, 100*time.Millisecond, 10*time.Millisecond)
}
