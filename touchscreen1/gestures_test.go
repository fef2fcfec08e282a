// SPDX-FileCopyrightText: 2023 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchscreen1

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/linuxdeepin/dde-devicekeys/common/devconf"
	"github.com/linuxdeepin/dde-devicekeys/common/sysfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	values   map[string]string
	readOnly map[string]bool
}

func newFakeStore(nodes ...string) *fakeStore {
	s := &fakeStore{values: map[string]string{}, readOnly: map[string]bool{}}
	for _, node := range nodes {
		s.values[node] = "0"
	}
	return s
}

func (s *fakeStore) ReadOneLine(path string) (string, error) {
	v, ok := s.values[path]
	if !ok {
		return "", os.ErrNotExist
	}
	return v, nil
}

func (s *fakeStore) WriteLine(path, value string) error {
	if _, ok := s.values[path]; !ok || s.readOnly[path] {
		return errors.New("permission denied")
	}
	s.values[path] = value
	return nil
}

func (s *fakeStore) IsFileReadable(path string) bool {
	_, ok := s.values[path]
	return ok
}

func (s *fakeStore) IsFileWritable(path string) bool {
	_, ok := s.values[path]
	return ok && !s.readOnly[path]
}

var testNodes = devconf.TouchscreenConfig{
	CameraNode:     "camera",
	FlashlightNode: "flashlight",
	MusicNode:      "music",
}

func Test_gesturePath(t *testing.T) {
	g := NewGestures(newFakeStore(), testNodes)
	tests := []struct {
		id   int32
		path string
	}{
		{GestureCircle, "camera"},
		{GestureV, "flashlight"},
		{GestureRightSwipe, "music"},
		{GestureLeftSwipe, "music"},
		{GestureDownSwipe, "music"},
	}
	for _, tt := range tests {
		path, err := g.gesturePath(tt.id)
		assert.NoError(t, err)
		assert.Equal(t, tt.path, path, "gesture %d", tt.id)
	}

	_, err := g.gesturePath(5)
	assert.Equal(t, ErrInvalidGesture{5}, err)
	_, err = g.gesturePath(-1)
	assert.Error(t, err)
}

func Test_IsSupported(t *testing.T) {
	store := newFakeStore("camera", "flashlight", "music")
	g := NewGestures(store, testNodes)
	assert.True(t, g.IsSupported())

	store.readOnly["music"] = true
	assert.False(t, g.IsSupported())

	g = NewGestures(newFakeStore("camera", "music"), testNodes)
	assert.False(t, g.IsSupported())
}

func Test_SetGestureEnabled(t *testing.T) {
	store := newFakeStore("camera", "flashlight", "music")
	g := NewGestures(store, testNodes)

	require.NoError(t, g.SetGestureEnabled(GestureV, true))
	assert.Equal(t, "1", store.values["flashlight"])
	assert.True(t, g.IsGestureEnabled(GestureV))
	assert.False(t, g.IsGestureEnabled(GestureCircle))

	// swipes share one switch
	require.NoError(t, g.SetGestureEnabled(GestureLeftSwipe, true))
	assert.True(t, g.IsGestureEnabled(GestureRightSwipe))
	assert.True(t, g.IsGestureEnabled(GestureDownSwipe))

	require.NoError(t, g.SetGestureEnabled(GestureDownSwipe, false))
	assert.Equal(t, "0", store.values["music"])

	assert.Error(t, g.SetGestureEnabled(42, true))
	assert.False(t, g.IsGestureEnabled(42))
}

func Test_IsGestureEnabledUnreadable(t *testing.T) {
	g := NewGestures(newFakeStore(), testNodes)
	assert.False(t, g.IsGestureEnabled(GestureCircle))
}

func Test_AvailableGestures(t *testing.T) {
	g := NewGestures(newFakeStore(), testNodes)
	gestures := g.AvailableGestures()
	require.Len(t, gestures, 5)
	assert.Equal(t, Gesture{0, "Circle"}, gestures[0])
	assert.Equal(t, Gesture{4, "Down swipe"}, gestures[4])

	gestures[0].Name = "changed"
	assert.Equal(t, "Circle", g.AvailableGestures()[0].Name)
}

func Test_GesturesOnFiles(t *testing.T) {
	dir := t.TempDir()
	nodes := devconf.TouchscreenConfig{
		CameraNode:     filepath.Join(dir, "camera_enable"),
		FlashlightNode: filepath.Join(dir, "flashlight_enable"),
		MusicNode:      filepath.Join(dir, "music_enable"),
	}
	for _, node := range []string{nodes.CameraNode, nodes.FlashlightNode, nodes.MusicNode} {
		require.NoError(t, os.WriteFile(node, []byte("0\n"), 0644))
	}

	g := NewGestures(sysfs.NewStore(), nodes)
	assert.True(t, g.IsSupported())
	require.NoError(t, g.SetGestureEnabled(GestureCircle, true))
	assert.True(t, g.IsGestureEnabled(GestureCircle))

	content, err := os.ReadFile(nodes.CameraNode)
	require.NoError(t, err)
	assert.Equal(t, "1\n", string(content))
}
