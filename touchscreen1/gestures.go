// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchscreen1

import (
	"fmt"

	"github.com/linuxdeepin/dde-devicekeys/common/devconf"
	"github.com/linuxdeepin/dde-devicekeys/common/sysfs"
)

// Gesture is a shape the touch firmware recognizes while the display is
// off. Names are not translated here, that is left to the settings panel.
type Gesture struct {
	Id   int32
	Name string
}

const (
	GestureCircle int32 = iota
	GestureV
	GestureRightSwipe
	GestureLeftSwipe
	GestureDownSwipe
)

var availableGestures = []Gesture{
	{GestureCircle, "Circle"},
	{GestureV, "V"},
	{GestureRightSwipe, "Right swipe"},
	{GestureLeftSwipe, "Left swipe"},
	{GestureDownSwipe, "Down swipe"},
}

type ErrInvalidGesture struct {
	Id int32
}

func (err ErrInvalidGesture) Error() string {
	return fmt.Sprintf("gesture id %d is invalid", err.Id)
}

// Gestures maps gestures onto the firmware switches. Several gestures can
// share one switch: all swipes are controlled by the music node.
type Gestures struct {
	store sysfs.Store
	nodes devconf.TouchscreenConfig
}

func NewGestures(store sysfs.Store, nodes devconf.TouchscreenConfig) *Gestures {
	return &Gestures{
		store: store,
		nodes: nodes,
	}
}

func (g *Gestures) nodeList() []string {
	return []string{g.nodes.CameraNode, g.nodes.MusicNode, g.nodes.FlashlightNode}
}

// IsSupported reports whether every switch can be read and written.
func (g *Gestures) IsSupported() bool {
	for _, node := range g.nodeList() {
		if !g.store.IsFileWritable(node) || !g.store.IsFileReadable(node) {
			return false
		}
	}
	return true
}

func (g *Gestures) AvailableGestures() []Gesture {
	result := make([]Gesture, len(availableGestures))
	copy(result, availableGestures)
	return result
}

func (g *Gestures) gesturePath(id int32) (string, error) {
	switch id {
	case GestureCircle:
		return g.nodes.CameraNode, nil
	case GestureV:
		return g.nodes.FlashlightNode, nil
	case GestureRightSwipe, GestureLeftSwipe, GestureDownSwipe:
		return g.nodes.MusicNode, nil
	default:
		return "", ErrInvalidGesture{id}
	}
}

// IsGestureEnabled is false when the gesture is disabled, unknown or the
// switch cannot be read.
func (g *Gestures) IsGestureEnabled(id int32) bool {
	path, err := g.gesturePath(id)
	if err != nil {
		return false
	}
	value, err := g.store.ReadOneLine(path)
	if err != nil {
		logger.Debug("read gesture node failed:", err)
		return false
	}
	return value == "1"
}

func (g *Gestures) SetGestureEnabled(id int32, enabled bool) error {
	path, err := g.gesturePath(id)
	if err != nil {
		return err
	}
	value := "0"
	if enabled {
		value = "1"
	}
	return g.store.WriteLine(path, value)
}

// SetNodes swaps the node paths after a config reload.
func (g *Gestures) SetNodes(nodes devconf.TouchscreenConfig) {
	g.nodes = nodes
}
