// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicesettings1

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/linuxdeepin/dde-devicekeys/common/dconfig"
	"golang.org/x/xerrors"
)

const (
	DConfigAppID = "org.deepin.dde.devicekeys"
	DConfigName  = "org.deepin.dde.devicekeys.settings"

	KeyNotificationSliderIgnoreAuto = "notificationSliderIgnoreAuto"
	KeyHapticFeedback               = "hapticFeedback"
	KeyGestureEnabled               = "gestureEnabled"
)

// GestureSwitch is the firmware gesture switch service.
type GestureSwitch interface {
	IsGestureEnabled(id int32) (bool, error)
	SetGestureEnabled(id int32, enabled bool) error
}

type Settings struct {
	gestures GestureSwitch

	mu               sync.Mutex
	sliderIgnoreAuto dconfig.Int64
	hapticFeedback   dconfig.Bool
	gestureEnabled   dconfig.String

	onChanged func(key string)
}

func NewSettings(store dconfig.Store, gestures GestureSwitch, onChanged func(key string)) *Settings {
	s := &Settings{
		gestures:  gestures,
		onChanged: onChanged,
	}
	s.hapticFeedback.Default = true
	s.gestureEnabled.Default = "{}"
	s.sliderIgnoreAuto.Bind(store, KeyNotificationSliderIgnoreAuto)
	s.hapticFeedback.Bind(store, KeyHapticFeedback)
	s.gestureEnabled.Bind(store, KeyGestureEnabled)
	return s
}

func (s *Settings) changed(key string) {
	if s.onChanged != nil {
		s.onChanged(key)
	}
}

func (s *Settings) NotificationSliderIgnoreAuto() bool {
	return s.sliderIgnoreAuto.Get() != 0
}

func (s *Settings) SetNotificationSliderIgnoreAuto(ignore bool) error {
	var v int64
	if ignore {
		v = 1
	}
	changed, err := s.sliderIgnoreAuto.Set(v)
	if err != nil {
		return err
	}
	if changed {
		s.changed(KeyNotificationSliderIgnoreAuto)
	}
	return nil
}

func (s *Settings) HapticFeedback() bool {
	return s.hapticFeedback.Get()
}

func (s *Settings) SetHapticFeedback(enabled bool) error {
	changed, err := s.hapticFeedback.Set(enabled)
	if err != nil {
		return err
	}
	if changed {
		s.changed(KeyHapticFeedback)
	}
	return nil
}

// gestureStates needs s.mu held.
func (s *Settings) gestureStates() map[int32]bool {
	states := make(map[int32]bool)
	err := json.Unmarshal([]byte(s.gestureEnabled.Get()), &states)
	if err != nil {
		logger.Warning("invalid gesture states, ignore them:", err)
		return make(map[int32]bool)
	}
	return states
}

// GestureEnabled returns the saved state, or the live node state for a
// gesture that was never set.
func (s *Settings) GestureEnabled(id int32) bool {
	s.mu.Lock()
	enabled, ok := s.gestureStates()[id]
	s.mu.Unlock()
	if ok {
		return enabled
	}

	enabled, err := s.gestures.IsGestureEnabled(id)
	if err != nil {
		logger.Debugf("gesture %d state unknown: %v", id, err)
		return false
	}
	return enabled
}

// SetGestureEnabled writes to the node first and saves the state only when
// that succeeded.
func (s *Settings) SetGestureEnabled(id int32, enabled bool) error {
	err := s.gestures.SetGestureEnabled(id, enabled)
	if err != nil {
		return xerrors.Errorf("set gesture %d: %w", id, err)
	}

	s.mu.Lock()
	states := s.gestureStates()
	states[id] = enabled
	data, err := json.Marshal(states)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	changed, err := s.gestureEnabled.Set(string(data))
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if changed {
		s.changed(KeyGestureEnabled)
	}
	return nil
}

// RestoreGestures pushes every saved state back onto the nodes, which the
// firmware resets on boot.
func (s *Settings) RestoreGestures() {
	s.mu.Lock()
	states := s.gestureStates()
	s.mu.Unlock()

	ids := make([]int32, 0, len(states))
	for id := range states {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		err := s.gestures.SetGestureEnabled(id, states[id])
		if err != nil {
			logger.Warningf("failed to restore gesture %d: %v", id, err)
		}
	}
}
