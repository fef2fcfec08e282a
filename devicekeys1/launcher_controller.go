// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"os/exec"
	"strings"
	"sync"

	dbus "github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/dde-devicekeys/common/systemdunit"
	"golang.org/x/xerrors"
)

const unitPrefix = "dde-devicekeys-"

type unlocker interface {
	Unlock() error
}

// launcherController starts applications as transient units of the user
// systemd instance.
type launcherController struct {
	conn    *dbus.Conn
	session unlocker

	mu       sync.Mutex
	commands map[string][]string
	lookPath func(file string) (string, error)
	start    func(unit *systemdunit.TransientUnit) error
	running  func(name string) bool
}

func newLauncherController(sessionConn *dbus.Conn, session unlocker) *launcherController {
	return &launcherController{
		conn:     sessionConn,
		session:  session,
		commands: make(map[string][]string),
		lookPath: exec.LookPath,
		start: func(unit *systemdunit.TransientUnit) error {
			return unit.Start()
		},
		running: func(name string) bool {
			return systemdunit.IsUnitRunning(sessionConn, name)
		},
	}
}

func (c *launcherController) setCommand(action string, command []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(command) == 0 {
		delete(c.commands, action)
		return
	}
	c.commands[action] = append([]string(nil), command...)
}

func (c *launcherController) command(action string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commands[action]
}

func unitNameFor(intent *ActivityIntent, command []string) string {
	if intent.SingleInstance {
		return unitPrefix + systemdunit.EscapeUnitName(command[0]) + ".service"
	}
	return unitPrefix + systemdunit.EscapeUnitName(command[0]) + "-" +
		strings.ReplaceAll(intent.ID, "-", "") + ".service"
}

func (c *launcherController) StartActivity(intent *ActivityIntent) error {
	command := c.command(intent.Action)
	if len(command) == 0 {
		return xerrors.Errorf("%s: %w", intent.Action, ErrActivityNotFound)
	}
	path, err := c.lookPath(command[0])
	if err != nil {
		return xerrors.Errorf("%s: %v: %w", intent.Action, err, ErrActivityNotFound)
	}

	unitName := unitNameFor(intent, command)
	if intent.SingleInstance && c.running(unitName) {
		logger.Debug("already running:", unitName)
		return nil
	}

	args := append([]string{path}, command[1:]...)
	logger.Info("start activity", intent.Action, "as", unitName)
	return c.start(&systemdunit.TransientUnit{
		Conn:        c.conn,
		Commands:    args,
		UnitName:    unitName,
		Description: "launched by gesture " + intent.ID,
	})
}

func (c *launcherController) DismissKeyguardOnNextActivity() error {
	if c.session == nil {
		return nil
	}
	return c.session.Unlock()
}
