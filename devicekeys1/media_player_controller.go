// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"strings"
	"sync"
	"syscall"

	dbus "github.com/godbus/dbus/v5"
	ofdbus "github.com/linuxdeepin/go-dbus-factory/session/org.freedesktop.dbus"
	mpris2 "github.com/linuxdeepin/go-dbus-factory/session/org.mpris.mediaplayer2"
	login1 "github.com/linuxdeepin/go-dbus-factory/system/org.freedesktop.login1"
	"golang.org/x/xerrors"
)

const (
	senderTypeMpris = "org.mpris.MediaPlayer2"

	playbackStatusPlaying = "Playing"
)

// mediaPlayerController forwards media keys to the active MPRIS player
// while holding a logind sleep inhibitor.
type mediaPlayerController struct {
	conn         *dbus.Conn
	dbusDaemon   ofdbus.DBus
	loginManager login1.Manager

	mu         sync.Mutex
	prevPlayer string
}

func newMediaPlayerController(sessionConn, systemConn *dbus.Conn) *mediaPlayerController {
	c := &mediaPlayerController{
		conn:       sessionConn,
		dbusDaemon: ofdbus.NewDBus(sessionConn),
	}
	if systemConn != nil {
		c.loginManager = login1.NewManager(systemConn)
	}
	return c
}

func (c *mediaPlayerController) DispatchMediaKeyEventUnderWakelock(ev MediaKeyEvent) error {
	release := c.acquireWakelock()
	defer release()

	if ev.Action != KeyDown {
		// MPRIS methods are not press/release pairs
		return nil
	}

	player, err := c.getActiveMpris()
	if err != nil {
		return err
	}
	logger.Debugf("send %v to %s", ev.Code, player.ServiceName_())

	switch ev.Code {
	case KEY_PLAYPAUSE:
		return player.Player().PlayPause(0)
	case KEY_PREVIOUSSONG:
		if err := player.Player().Previous(0); err != nil {
			return err
		}
		return player.Player().Play(0)
	case KEY_NEXTSONG:
		if err := player.Player().Next(0); err != nil {
			return err
		}
		return player.Player().Play(0)
	}
	return xerrors.Errorf("unsupported media key %v", ev.Code)
}

func (c *mediaPlayerController) acquireWakelock() func() {
	if c.loginManager == nil {
		return func() {}
	}
	fd, err := c.loginManager.Inhibit(0, "sleep", dbusServiceName,
		"dispatch media key", "block")
	if err != nil {
		logger.Debug("failed to inhibit sleep:", err)
		return func() {}
	}
	return func() {
		err := syscall.Close(int(fd))
		if err != nil {
			logger.Warning("failed to close inhibit fd:", err)
		}
	}
}

func (c *mediaPlayerController) getMprisSenders() ([]string, error) {
	names, err := c.dbusDaemon.ListNames(0)
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", err, ErrAudioServiceUnavailable)
	}
	var senders []string
	for _, name := range names {
		if strings.HasPrefix(name, senderTypeMpris) {
			senders = append(senders, name)
		}
	}
	return senders, nil
}

func (c *mediaPlayerController) getActiveMpris() (mpris2.MediaPlayer, error) {
	senders, err := c.getMprisSenders()
	if err != nil {
		return nil, err
	}
	if len(senders) == 0 {
		return nil, xerrors.Errorf("no player found: %w", ErrAudioServiceUnavailable)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	sender := pickPlayer(senders, c.prevPlayer, func(sender string) (string, error) {
		return mpris2.NewMediaPlayer(c.conn, sender).Player().PlaybackStatus().Get(0)
	})
	c.prevPlayer = sender
	return mpris2.NewMediaPlayer(c.conn, sender), nil
}

// pickPlayer prefers a playing player, then the one used last time, then
// the first one.
func pickPlayer(senders []string, prev string, status func(sender string) (string, error)) string {
	if len(senders) == 1 {
		return senders[0]
	}
	if len(senders) == 2 {
		for _, sender := range senders {
			if strings.Contains(sender, "vlc") {
				return sender
			}
		}
	}

	hasPrev := false
	for _, sender := range senders {
		if sender == prev {
			hasPrev = true
		}
		s, err := status(sender)
		if err != nil {
			logger.Warning(err)
			continue
		}
		if s == playbackStatusPlaying {
			return sender
		}
	}
	if hasPrev {
		return prev
	}
	return senders[0]
}
