// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"os"

	dbus "github.com/godbus/dbus/v5"
	sessionmanager "github.com/linuxdeepin/go-dbus-factory/session/org.deepin.dde.sessionmanager1"
	login1 "github.com/linuxdeepin/go-dbus-factory/system/org.freedesktop.login1"
	"golang.org/x/xerrors"
)

const (
	login1ServiceName      = "org.freedesktop.login1"
	login1ObjPath          = "/org/freedesktop/login1"
	login1ManagerInterface = "org.freedesktop.login1.Manager"
	login1SessionInterface = "org.freedesktop.login1.Session"
)

// loginSession is the logind session this daemon runs in.
type loginSession struct {
	path    dbus.ObjectPath
	session login1.Session
	obj     dbus.BusObject
}

func newLoginSession(sessionConn, systemConn *dbus.Conn) (*loginSession, error) {
	path, err := findSessionPath(sessionConn, systemConn)
	if err != nil {
		return nil, err
	}
	session, err := login1.NewSession(systemConn, path)
	if err != nil {
		return nil, err
	}
	return &loginSession{
		path:    path,
		session: session,
		obj:     systemConn.Object(login1ServiceName, path),
	}, nil
}

func findSessionPath(sessionConn, systemConn *dbus.Conn) (dbus.ObjectPath, error) {
	if sessionConn != nil {
		sm := sessionmanager.NewSessionManager(sessionConn)
		path, err := sm.CurrentSessionPath().Get(0)
		if err == nil && path.IsValid() && path != "/" {
			return path, nil
		}
		logger.Debug("session manager has no current session:", err)
	}

	loginManager := login1.NewManager(systemConn)
	path, err := loginManager.GetSessionByPID(0, uint32(os.Getpid()))
	if err == nil {
		return path, nil
	}

	id := os.Getenv("XDG_SESSION_ID")
	if id == "" {
		id = "auto"
	}
	err = systemConn.Object(login1ServiceName, login1ObjPath).
		Call(login1ManagerInterface+".GetSession", 0, id).Store(&path)
	if err != nil {
		return "", xerrors.Errorf("failed to find login session %q: %w", id, err)
	}
	return path, nil
}

func (s *loginSession) getBool(name string) (bool, error) {
	v, err := s.obj.GetProperty(login1SessionInterface + "." + name)
	if err != nil {
		return false, err
	}
	b, ok := v.Value().(bool)
	if !ok {
		return false, xerrors.Errorf("session property %s has type %s", name, v.Signature())
	}
	return b, nil
}

func (s *loginSession) LockedHint() (bool, error) {
	return s.getBool("LockedHint")
}

func (s *loginSession) IdleHint() (bool, error) {
	return s.getBool("IdleHint")
}

func (s *loginSession) Unlock() error {
	return s.session.Unlock(0)
}

func (s *loginSession) SetIdleHint(idle bool) error {
	return s.obj.Call(login1SessionInterface+".SetIdleHint", 0, idle).Err
}
