// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"errors"
)

type deferralState int

const (
	deferralIdle deferralState = iota
	deferralAwaitingUnlock
)

func (s deferralState) String() string {
	if s == deferralAwaitingUnlock {
		return "awaiting-unlock"
	}
	return "idle"
}

// keyguardDeferral holds at most one activity launch while a secure
// keyguard is up and replays it when the user unlocks. Looper only.
type keyguardDeferral struct {
	launcher ActivityLauncher
	keyguard KeyguardService
	power    PowerService

	pending *ActivityIntent
}

func (k *keyguardDeferral) state() deferralState {
	if k.pending != nil {
		return deferralAwaitingUnlock
	}
	return deferralIdle
}

func (k *keyguardDeferral) launch(intent *ActivityIntent) {
	if k.keyguard.IsKeyguardSecure() && k.keyguard.IsKeyguardLocked() {
		if k.pending != nil {
			logger.Debugf("replace pending intent %s with %s", k.pending.ID, intent.ID)
		}
		k.pending = intent
		logger.Infof("keyguard locked, defer %s until unlock", intent.Action)
		return
	}

	k.pending = nil
	err := k.launcher.DismissKeyguardOnNextActivity()
	if err != nil {
		logger.Warning("failed to dismiss keyguard:", err)
	}
	k.start(intent)
}

func (k *keyguardDeferral) start(intent *ActivityIntent) {
	err := k.launcher.StartActivity(intent)
	if err == nil {
		return
	}
	if errors.Is(err, ErrActivityNotFound) {
		logger.Warningf("no activity for %s: %v", intent.Action, err)
		return
	}
	logger.Warningf("failed to start activity %s: %v", intent.Action, err)
}

func (k *keyguardDeferral) onUserPresent() {
	if k.pending == nil {
		return
	}
	intent := k.pending
	k.pending = nil
	logger.Debug("user present, start pending intent", intent.ID)
	k.start(intent)
}

func (k *keyguardDeferral) onScreenOff() {
	if k.pending == nil || k.power.IsScreenOn() {
		return
	}
	logger.Debug("screen off, discard pending intent", k.pending.ID)
	k.pending = nil
}

func (k *keyguardDeferral) pendingIntent() *ActivityIntent {
	if k.pending == nil {
		return nil
	}
	intent := *k.pending
	return &intent
}
