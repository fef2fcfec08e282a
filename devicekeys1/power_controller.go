// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/linuxdeepin/dde-devicekeys/common/sysfs"
)

const (
	backlightGlob = "/sys/class/backlight/*"

	// FB_BLANK_UNBLANK
	blPowerOn = "0"
)

type idleHinter interface {
	SetIdleHint(idle bool) error
}

// powerController treats the panel backlight as the screen.
type powerController struct {
	store   sysfs.Store
	session idleHinter

	mu        sync.Mutex
	backlight string
}

func newPowerController(store sysfs.Store, session idleHinter, backlight string) *powerController {
	c := &powerController{
		store:   store,
		session: session,
	}
	c.setBacklight(backlight)
	return c
}

func findBacklight() string {
	matches, err := filepath.Glob(backlightGlob)
	if err != nil || len(matches) == 0 {
		return ""
	}
	return matches[0]
}

func (c *powerController) setBacklight(backlight string) {
	if backlight == "" {
		backlight = findBacklight()
	}
	c.mu.Lock()
	c.backlight = backlight
	c.mu.Unlock()
}

func (c *powerController) blPowerFile() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.backlight == "" {
		return ""
	}
	return filepath.Join(c.backlight, "bl_power")
}

// IsScreenOn reports true when the state cannot be read, so that an
// unknown panel is never woken twice.
func (c *powerController) IsScreenOn() bool {
	file := c.blPowerFile()
	if file == "" {
		return true
	}
	line, err := c.store.ReadOneLine(file)
	if err != nil {
		logger.Debug(err)
		return true
	}
	return line == blPowerOn
}

func (c *powerController) WakeUp(when time.Time) {
	logger.Debug("wake up at", when)
	if file := c.blPowerFile(); file != "" && c.store.IsFileWritable(file) {
		err := c.store.WriteLine(file, blPowerOn)
		if err != nil {
			logger.Warning("failed to unblank backlight:", err)
		}
	}
	if c.session != nil {
		err := c.session.SetIdleHint(false)
		if err != nil {
			logger.Warning("failed to clear idle hint:", err)
		}
	}
}
