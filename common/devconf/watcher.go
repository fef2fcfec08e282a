// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package devconf

import (
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/linuxdeepin/go-lib/log"
)

var logger = log.NewLogger("daemon/devconf")

const reloadDelay = 200 * time.Millisecond

// Watcher reloads the config file whenever it changes and hands the new
// value to onChange. Editors replace files, so the directory is watched.
type Watcher struct {
	filename string
	onChange func(*Config)
	watcher  *fsnotify.Watcher
	debounce func(func())
	quit     chan struct{}
}

func NewWatcher(filename string, onChange func(*Config)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	err = fsWatcher.Add(filepath.Dir(filename))
	if err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}

	w := &Watcher{
		filename: filename,
		onChange: onChange,
		watcher:  fsWatcher,
		debounce: debounce.New(reloadDelay),
		quit:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.quit:
			return
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warning("config watcher error:", err)
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.filename) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			logger.Debug("config changed:", ev)
			w.debounce(w.reload)
		}
	}
}

func (w *Watcher) reload() {
	conf, err := Load(w.filename)
	if err != nil {
		logger.Warning("reload config failed, keep current:", err)
		return
	}
	w.onChange(conf)
}

func (w *Watcher) Stop() {
	close(w.quit)
	err := w.watcher.Close()
	if err != nil {
		logger.Warning(err)
	}
}
