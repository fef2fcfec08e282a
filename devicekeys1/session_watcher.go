// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	dbus "github.com/godbus/dbus/v5"
	login1 "github.com/linuxdeepin/go-dbus-factory/system/org.freedesktop.login1"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/dbusutil/proxy"
)

const dbusPropertiesChanged = "org.freedesktop.DBus.Properties.PropertiesChanged"

type sessionEvents interface {
	OnUserPresent()
	OnScreenOff()
}

// sessionWatcher maps logind state to user-present and screen-off events.
type sessionWatcher struct {
	sigLoop      *dbusutil.SignalLoop
	loginManager login1.Manager
	session      *loginSession
	events       sessionEvents
	handlerId    dbusutil.SignalHandlerId
}

func newSessionWatcher(sigLoop *dbusutil.SignalLoop, session *loginSession, events sessionEvents) *sessionWatcher {
	return &sessionWatcher{
		sigLoop: sigLoop,
		session: session,
		events:  events,
	}
}

func (w *sessionWatcher) start() error {
	conn := w.sigLoop.Conn()
	w.loginManager = login1.NewManager(conn)
	w.loginManager.InitSignalExt(w.sigLoop, true)
	_, err := w.loginManager.ConnectPrepareForSleep(func(before bool) {
		logger.Debug("prepare for sleep:", before)
		if before {
			w.events.OnScreenOff()
		}
	})
	if err != nil {
		return err
	}

	if w.session == nil {
		return nil
	}
	err = dbusutil.NewMatchRuleBuilder().ExtPropertiesChanged(
		string(w.session.path), login1SessionInterface).Build().AddTo(conn)
	if err != nil {
		return err
	}
	w.handlerId = w.sigLoop.AddHandler(&dbusutil.SignalRule{
		Name: dbusPropertiesChanged,
		Path: w.session.path,
	}, func(sig *dbus.Signal) {
		if len(sig.Body) < 2 {
			return
		}
		iface, _ := sig.Body[0].(string)
		if iface != login1SessionInterface {
			return
		}
		changed, _ := sig.Body[1].(map[string]dbus.Variant)
		w.handleSessionChanged(changed)
	})
	return nil
}

func (w *sessionWatcher) handleSessionChanged(changed map[string]dbus.Variant) {
	if v, ok := changed["LockedHint"]; ok {
		if locked, _ := v.Value().(bool); !locked {
			logger.Debug("session unlocked")
			w.events.OnUserPresent()
		}
	}
	if v, ok := changed["IdleHint"]; ok {
		if idle, _ := v.Value().(bool); idle {
			logger.Debug("session idle")
			w.events.OnScreenOff()
		}
	}
}

func (w *sessionWatcher) stop() {
	if w.loginManager != nil {
		w.loginManager.RemoveHandler(proxy.RemoveAllHandlers)
	}
	if w.handlerId != 0 {
		w.sigLoop.RemoveHandler(w.handlerId)
	}
}
