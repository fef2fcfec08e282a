// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devicekeys

//go:generate go build -o target/ github.com/linuxdeepin/dde-devicekeys/bin/dde-devicekeys-session
//go:generate go build -o target/ github.com/linuxdeepin/dde-devicekeys/bin/dde-devicekeys-system
