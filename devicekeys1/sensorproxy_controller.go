// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"sync"

	dbus "github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"golang.org/x/xerrors"
)

const (
	sensorProxyServiceName = "net.hadess.SensorProxy"
	sensorProxyObjPath     = "/net/hadess/SensorProxy"
	sensorProxyInterface   = "net.hadess.SensorProxy"

	dbusErrServiceUnknown = "org.freedesktop.DBus.Error.ServiceUnknown"
)

// sensorProxyController is a binary proximity sensor backed by
// iio-sensor-proxy. Near reads as 0, far as the maximum range.
type sensorProxyController struct {
	sigLoop  *dbusutil.SignalLoop
	obj      dbus.BusObject
	maxRange float64

	mu        sync.Mutex
	listeners map[SensorListener]struct{}
	claimed   bool
	handlerId dbusutil.SignalHandlerId
}

func newSensorProxyController(sigLoop *dbusutil.SignalLoop, maxRange float64) *sensorProxyController {
	return &sensorProxyController{
		sigLoop:   sigLoop,
		obj:       sigLoop.Conn().Object(sensorProxyServiceName, sensorProxyObjPath),
		maxRange:  maxRange,
		listeners: make(map[SensorListener]struct{}),
	}
}

func (c *sensorProxyController) start() error {
	err := dbusutil.NewMatchRuleBuilder().ExtPropertiesChanged(
		sensorProxyObjPath, sensorProxyInterface).Build().AddTo(c.sigLoop.Conn())
	if err != nil {
		return err
	}
	c.handlerId = c.sigLoop.AddHandler(&dbusutil.SignalRule{
		Name: dbusPropertiesChanged,
		Path: sensorProxyObjPath,
	}, func(sig *dbus.Signal) {
		if len(sig.Body) < 2 {
			return
		}
		changed, _ := sig.Body[1].(map[string]dbus.Variant)
		v, ok := changed["ProximityNear"]
		if !ok {
			return
		}
		isNear, _ := v.Value().(bool)
		c.notify(c.distance(isNear))
	})
	return nil
}

func (c *sensorProxyController) stop() {
	if c.handlerId != 0 {
		c.sigLoop.RemoveHandler(c.handlerId)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = make(map[SensorListener]struct{})
	c.release()
}

func (c *sensorProxyController) distance(isNear bool) float64 {
	if isNear {
		return 0
	}
	return c.maxRange
}

func (c *sensorProxyController) MaximumRange() float64 {
	return c.maxRange
}

func (c *sensorProxyController) getBool(name string) (bool, error) {
	v, err := c.obj.GetProperty(sensorProxyInterface + "." + name)
	if err != nil {
		return false, err
	}
	b, ok := v.Value().(bool)
	if !ok {
		return false, xerrors.Errorf("sensor proxy property %s has type %s", name, v.Signature())
	}
	return b, nil
}

func isServiceUnknown(err error) bool {
	var busErr dbus.Error
	if xerrors.As(err, &busErr) {
		return busErr.Name == dbusErrServiceUnknown
	}
	var busErrPtr *dbus.Error
	if xerrors.As(err, &busErrPtr) {
		return busErrPtr.Name == dbusErrServiceUnknown
	}
	return false
}

// RegisterListener claims the sensor for the first listener and then
// delivers the current reading to l.
func (c *sensorProxyController) RegisterListener(l SensorListener) error {
	has, err := c.getBool("HasProximity")
	if err != nil {
		if isServiceUnknown(err) {
			return xerrors.Errorf("%v: %w", err, ErrSensorUnavailable)
		}
		return xerrors.Errorf("query proximity sensor: %w", err)
	}
	if !has {
		return ErrSensorUnavailable
	}

	c.mu.Lock()
	if !c.claimed {
		err = c.obj.Call(sensorProxyInterface+".ClaimProximity", 0).Err
		if err != nil {
			c.mu.Unlock()
			return xerrors.Errorf("claim proximity: %w", err)
		}
		c.claimed = true
	}
	c.listeners[l] = struct{}{}
	c.mu.Unlock()

	go func() {
		isNear, err := c.getBool("ProximityNear")
		if err != nil {
			logger.Warning("failed to read proximity:", err)
			return
		}
		c.mu.Lock()
		_, ok := c.listeners[l]
		c.mu.Unlock()
		if ok {
			l.OnSensorChanged(c.distance(isNear))
		}
	}()
	return nil
}

func (c *sensorProxyController) UnregisterListener(l SensorListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.listeners, l)
	if len(c.listeners) == 0 {
		c.release()
	}
}

// release needs c.mu held.
func (c *sensorProxyController) release() {
	if !c.claimed {
		return
	}
	c.claimed = false
	err := c.obj.Call(sensorProxyInterface+".ReleaseProximity", 0).Err
	if err != nil {
		logger.Warning("failed to release proximity:", err)
	}
}

func (c *sensorProxyController) notify(distance float64) {
	c.mu.Lock()
	listeners := make([]SensorListener, 0, len(c.listeners))
	for l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l.OnSensorChanged(distance)
	}
}
