// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package systemdunit

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
	systemd1 "github.com/linuxdeepin/go-dbus-factory/system/org.freedesktop.systemd1"
)

const (
	unitTypeExec = "exec"

	unitStateActive     = "active"
	unitStateActivating = "activating"
)

// TransientUnit describes a command run by the systemd instance behind
// Conn as a transient service.
type TransientUnit struct {
	Conn        *dbus.Conn
	Commands    []string
	UnitName    string
	Description string
	Environment []string
}

type execStart struct {
	Path             string   // the binary path to execute
	Args             []string // an array with all arguments to pass to the executed command, starting with argument 0
	UncleanIsFailure bool     // a boolean whether it should be considered a failure if the process exits uncleanly
}

func CheckUnitExist(conn *dbus.Conn, name string) bool {
	systemd := systemd1.NewManager(conn)
	_, err := systemd.GetUnit(0, name)
	return err == nil
}

// IsUnitRunning reports whether a loaded unit is active or starting.
func IsUnitRunning(conn *dbus.Conn, name string) bool {
	systemd := systemd1.NewManager(conn)
	unitPath, err := systemd.GetUnit(0, name)
	if err != nil {
		return false
	}
	unit, err := systemd1.NewUnit(conn, unitPath)
	if err != nil {
		return false
	}
	state, err := unit.Unit().ActiveState().Get(0)
	if err != nil {
		return false
	}
	return state == unitStateActive || state == unitStateActivating
}

func (t *TransientUnit) Start() error {
	if len(t.Commands) == 0 {
		return fmt.Errorf("transient unit %s has no command", t.UnitName)
	}
	systemd := systemd1.NewManager(t.Conn)
	if CheckUnitExist(t.Conn, t.UnitName) {
		err := systemd.ResetFailedUnit(0, t.UnitName)
		if err != nil {
			return fmt.Errorf("failed to reset failed unit: %v", err)
		}
	}

	properties := []systemd1.Property{
		{Name: "Type", Value: dbus.MakeVariant(unitTypeExec)},
		{Name: "Description", Value: dbus.MakeVariant(t.Description)},
		{Name: "CollectMode", Value: dbus.MakeVariant("inactive-or-failed")},
	}
	if len(t.Environment) > 0 {
		properties = append(properties, systemd1.Property{Name: "Environment", Value: dbus.MakeVariant(t.Environment)})
	}
	properties = append(properties, systemd1.Property{Name: "ExecStart", Value: dbus.MakeVariant([]execStart{{
		Path:             t.Commands[0],
		Args:             t.Commands,
		UncleanIsFailure: false,
	}})})

	_, err := systemd.StartTransientUnit(0, t.UnitName, "fail", properties, nil)
	if err != nil {
		return fmt.Errorf("failed to start transient unit: %v", err)
	}
	return nil
}

// EscapeUnitName escapes s the way systemd-escape does for a unit name
// component.
func EscapeUnitName(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '/':
			b.WriteByte('-')
		case c == '.' && i == 0,
			!(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
				c == ':' || c == '_' || c == '.'):
			fmt.Fprintf(&b, `\x%02x`, c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
