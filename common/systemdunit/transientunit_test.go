// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package systemdunit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeUnitName(t *testing.T) {
	assert.Equal(t, "deepin_camera", EscapeUnitName("deepin_camera"))
	assert.Equal(t, `deepin\x2dcamera`, EscapeUnitName("deepin-camera"))
	assert.Equal(t, "usr-bin-cheese", EscapeUnitName("usr/bin/cheese"))
	assert.Equal(t, `\x2ehidden.app`, EscapeUnitName(".hidden.app"))
	assert.Equal(t, `a\x20b`, EscapeUnitName("a b"))
}

func TestTransientUnit_NoCommand(t *testing.T) {
	u := &TransientUnit{UnitName: "x.service"}
	assert.Error(t, u.Start())
}
