// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys1

import (
	"sync"
)

type lockedHinter interface {
	LockedHint() (bool, error)
}

// keyguardController reads the lock state from logind. Whether the lock
// needs authentication comes from configuration.
type keyguardController struct {
	session lockedHinter

	mu     sync.Mutex
	secure bool
}

func newKeyguardController(session lockedHinter, secure bool) *keyguardController {
	return &keyguardController{
		session: session,
		secure:  secure,
	}
}

func (k *keyguardController) setSecure(secure bool) {
	k.mu.Lock()
	k.secure = secure
	k.mu.Unlock()
}

func (k *keyguardController) IsKeyguardSecure() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.secure
}

// IsKeyguardLocked treats an unknown lock state as locked.
func (k *keyguardController) IsKeyguardLocked() bool {
	if k.session == nil {
		return false
	}
	locked, err := k.session.LockedHint()
	if err != nil {
		logger.Warning("failed to get LockedHint:", err)
		return true
	}
	return locked
}
